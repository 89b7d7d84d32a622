package repository

import (
	"context"

	"user_management/internal/model"
)

// StatsRepository aggregates counts across the user management tables
type StatsRepository interface {
	Summary(ctx context.Context) (*model.Stats, error)
}

type statsRepository struct {
	db DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Summary(ctx context.Context) (*model.Stats, error) {
	sql := `SELECT
                (SELECT COUNT(*) FROM users),
                (SELECT COUNT(*) FROM users WHERE is_active),
                (SELECT COUNT(*) FROM roles),
                (SELECT COUNT(*) FROM user_roles)`

	stats := &model.Stats{}
	err := r.db.QueryRow(ctx, sql).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalRoles, &stats.TotalRoleAssignments)
	if err != nil {
		return nil, storageError("failed to fetch statistics", err)
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers
	return stats, nil
}
