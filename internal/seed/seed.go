// Package seed loads sample roles and users through the services, so the
// same validation and hashing apply as for API writes. Rows that already
// exist are skipped.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"user_management/internal/model"
	"user_management/internal/service"
)

type sampleRole struct {
	name        string
	description string
}

type sampleUser struct {
	email    string
	fullName string
	password string
	rate     string
	roles    []string
}

var sampleRoles = []sampleRole{
	{"Admin", "System administrator with full access"},
	{"Manager", "Project manager with limited admin access"},
	{"Developer", "Software developer"},
	{"Designer", "UI/UX designer"},
	{"Tester", "Quality assurance tester"},
}

var sampleUsers = []sampleUser{
	{"admin@example.com", "System Administrator", "admin123", "100.00", []string{"Admin"}},
	{"manager@example.com", "Project Manager", "manager123", "80.00", []string{"Manager", "Developer"}},
	{"dev1@example.com", "John Developer", "dev123", "60.00", []string{"Developer"}},
	{"designer@example.com", "Jane Designer", "design123", "55.00", []string{"Designer"}},
	{"tester@example.com", "Bob Tester", "test123", "45.00", []string{"Tester"}},
}

// Result counts what Run created.
type Result struct {
	Roles       int
	Users       int
	Assignments int
}

// Run creates the sample data. Roles of users that already existed are left alone.
func Run(ctx context.Context, roles service.RoleService, users service.UserService, assignments service.AssignmentService, log zerolog.Logger) (Result, error) {
	var res Result

	for _, r := range sampleRoles {
		desc := r.description
		_, err := roles.CreateRole(ctx, model.CreateRoleRequest{Name: r.name, Description: &desc})
		switch {
		case err == nil:
			res.Roles++
			log.Info().Str("role", r.name).Msg("created role")
		case errors.Is(err, model.ErrConflict):
			log.Info().Str("role", r.name).Msg("role already exists")
		default:
			return res, err
		}
	}

	existing, err := roles.ListRoles(ctx)
	if err != nil {
		return res, err
	}
	roleIDs := make(map[string]int64, len(existing))
	for _, r := range existing {
		roleIDs[r.Name] = r.ID
	}

	for _, u := range sampleUsers {
		rate := decimal.RequireFromString(u.rate)
		user, err := users.CreateUser(ctx, model.CreateUserRequest{
			Email:      u.email,
			FullName:   u.fullName,
			Password:   u.password,
			HourlyRate: &rate,
		})
		if errors.Is(err, model.ErrConflict) {
			log.Info().Str("email", u.email).Msg("user already exists")
			continue
		}
		if err != nil {
			return res, err
		}
		res.Users++
		log.Info().Str("email", u.email).Msg("created user")

		for _, name := range u.roles {
			id, ok := roleIDs[name]
			if !ok {
				continue
			}
			if _, err := assignments.AssignRole(ctx, user.ID, model.AssignRoleRequest{RoleID: &id}); err != nil {
				return res, err
			}
			res.Assignments++
			log.Info().Str("email", u.email).Str("role", name).Msg("assigned role")
		}
	}
	return res, nil
}
