package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"

	"user_management/internal/config"
	"user_management/internal/logger"
	"user_management/internal/repository"
	"user_management/internal/seed"
	"user_management/internal/service"
	"user_management/internal/utils"
	"user_management/internal/validation"
)

func main() {
	var withSeed bool
	flag.BoolVar(&withSeed, "seed", false, "create sample roles and users after migrating up")
	flag.Parse()

	direction := "up"
	if flag.NArg() > 0 {
		direction = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	switch direction {
	case "up":
		if err := config.MigrateUp(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migrate up failed")
		}
	case "down":
		if withSeed {
			log.Fatal().Msg("-seed cannot be combined with down")
		}
		if err := migrateDown(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migrate down failed")
		}
		return
	default:
		log.Error().Str("direction", direction).Msg("usage: migrator [-seed] [up|down]")
		os.Exit(2)
	}

	if withSeed {
		if err := runSeed(ctx, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}
}

func migrateDown(cfg config.DBConfig, log zerolog.Logger) error {
	m, err := config.NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("nothing to roll back")
			return nil
		}
		return err
	}
	log.Info().Msg("migrations rolled back")
	return nil
}

func runSeed(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	validator := validation.New(cfg.PasswordMinLength)
	res, err := seed.Run(ctx,
		service.NewRoleService(repository.NewRoleRepository(pool), validator),
		service.NewUserService(repository.NewUserRepository(pool), validator, utils.NewPasswordHasher(cfg.BcryptCost)),
		service.NewAssignmentService(repository.NewAssignmentRepository(pool), validator),
		log,
	)
	if err != nil {
		return err
	}

	stats, err := repository.NewStatsRepository(pool).Summary(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int("roles_created", res.Roles).
		Int("users_created", res.Users).
		Int("assignments_created", res.Assignments).
		Int64("total_roles", stats.TotalRoles).
		Int64("total_users", stats.TotalUsers).
		Int64("total_assignments", stats.TotalRoleAssignments).
		Msg("seed complete")
	return nil
}
