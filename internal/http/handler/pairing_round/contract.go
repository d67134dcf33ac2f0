package pairinground

import (
	"context"

	"random-pairs-service/internal/domain"
)

type UseCase interface {
	GetRound(ctx context.Context, runID string, round int) (domain.Round, error)
}
