package service

import (
	"context"

	"user_management/internal/model"
	"user_management/internal/repository"
)

// StatsService reports aggregate counts
type StatsService interface {
	GetStats(ctx context.Context) (*model.Stats, error)
}

type statsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context) (*model.Stats, error) {
	return s.repo.Summary(ctx)
}
