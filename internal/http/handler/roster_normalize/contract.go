package rosternormalize

import (
	"context"

	"random-pairs-service/internal/domain"
)

type UseCase interface {
	NormalizeRoster(ctx context.Context, entries []domain.Entry) ([]domain.Participant, error)
}
