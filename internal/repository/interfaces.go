package repository

import (
	"context"

	"random-pairs-service/internal/domain"
)

// Repository объединяет все доменные репозитории.
type Repository interface {
	RunRepository
	RoundRepository
}

// RunRepository содержит операции для работы с запусками генерации.
type RunRepository interface {
	CreateRun(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error)
	GetRun(ctx context.Context, runID string) (domain.PairingRun, error)
}

// RoundRepository содержит операции для чтения отдельных туров.
type RoundRepository interface {
	GetRoundRecords(ctx context.Context, runID string, round int) ([]domain.PairRecord, error)
}

// HealthChecker описывает метод проверки соединения.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
