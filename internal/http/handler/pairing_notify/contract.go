package pairingnotify

import (
	"context"

	"random-pairs-service/internal/notifier"
	"random-pairs-service/internal/service"
)

type UseCase interface {
	NotifyRound(ctx context.Context, runID string, round int, in service.NotifyInput) (notifier.Result, error)
}
