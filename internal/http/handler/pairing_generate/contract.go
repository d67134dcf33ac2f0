package pairinggenerate

import (
	"context"

	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/service"
)

type UseCase interface {
	GeneratePairings(ctx context.Context, in service.GenerateInput) (domain.PairingRun, error)
}
