package pairingget

import (
	"context"

	"random-pairs-service/internal/domain"
)

type UseCase interface {
	GetRun(ctx context.Context, runID string) (domain.PairingRun, error)
}
