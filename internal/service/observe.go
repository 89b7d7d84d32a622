package service

import (
	"errors"

	"user_management/internal/metrics"
	"user_management/internal/model"
)

// observe records the outcome of a write and returns err unchanged.
func observe(entity, op string, err error) error {
	if err == nil {
		metrics.MutationsTotal.WithLabelValues(entity, op).Inc()
		return nil
	}
	metrics.MutationErrorsTotal.WithLabelValues(entity, errorKind(err)).Inc()
	return err
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrValidation):
		return "validation"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	default:
		return "storage"
	}
}
