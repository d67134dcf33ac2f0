package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"random-pairs-service/internal/config"
	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/infrastructure/randomizer"
	"random-pairs-service/internal/logging"
	"random-pairs-service/internal/metrics"
	"random-pairs-service/internal/notifier"
	"random-pairs-service/internal/pairing"
	"random-pairs-service/internal/repository"
	"random-pairs-service/internal/roster"
)

const (
	// DefaultOperationTimeout таймаут по умолчанию для обычных операций
	DefaultOperationTimeout = 30 * time.Second
	// DefaultLongOperationTimeout таймаут по умолчанию для длительных операций
	DefaultLongOperationTimeout = 60 * time.Second
)

// Repository описывает операции, которые требуются сервису.
type Repository interface {
	repository.Repository
}

// Service агрегирует бизнес-логику приложения.
type Service struct {
	repo     Repository
	health   repository.HealthChecker
	cfg      config.Config
	trMgr    trm.Manager
	notifier *notifier.Notifier

	// newRandomizer создаёт источник случайности на один вызов генерации.
	newRandomizer func(seed *int64) randomizer.Randomizer
	newID         func() string
}

func New(repo Repository, cfg config.Config, trMgr trm.Manager, sender notifier.Sender) *Service {
	svc := &Service{
		repo:          repo,
		cfg:           cfg,
		trMgr:         trMgr,
		notifier:      notifier.New(sender),
		newRandomizer: randomizer.ForSeed,
		newID:         func() string { return uuid.NewString() },
	}
	if svc.cfg.Timeouts.Operation <= 0 {
		svc.cfg.Timeouts.Operation = DefaultOperationTimeout
	}
	if svc.cfg.Timeouts.LongOperation <= 0 {
		svc.cfg.Timeouts.LongOperation = DefaultLongOperationTimeout
	}
	if checker, ok := repo.(repository.HealthChecker); ok {
		svc.health = checker
	}
	return svc
}

// GenerateInput описывает запрос на генерацию.
// Rounds == nil означает один полный цикл; Seed == nil означает случайный посев.
type GenerateInput struct {
	Entries []domain.Entry
	Rounds  *int
	Seed    *int64
}

// NotifyInput параметры рассылки. Пустые поля заполняются из конфигурации.
type NotifyInput struct {
	OperatorName  string
	OperatorEmail string
	SubjectPrefix string
}

// NormalizeRoster приводит сырой состав к виду, пригодному для генерации.
func (s *Service) NormalizeRoster(ctx context.Context, entries []domain.Entry) ([]domain.Participant, error) {
	people, err := roster.Normalize(entries)
	if err != nil {
		return nil, err
	}
	if err := s.checkRosterSize(len(people)); err != nil {
		return nil, err
	}
	slog.DebugContext(logging.WithLogRosterSize(ctx, len(people)), "roster normalized")
	return people, nil
}

// GeneratePairings нормализует состав, строит туры и сохраняет запуск в одной транзакции.
func (s *Service) GeneratePairings(ctx context.Context, in GenerateInput) (domain.PairingRun, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	people, err := s.NormalizeRoster(ctx, in.Entries)
	if err != nil {
		return domain.PairingRun{}, err
	}

	rounds := pairing.CycleLength(len(people))
	if in.Rounds != nil {
		rounds = *in.Rounds
	}
	if limit := s.cfg.Pairing.MaxRounds; limit > 0 && rounds > limit {
		return domain.PairingRun{}, fmt.Errorf("%w: %d rounds requested, limit is %d", domain.ErrInvalidRoundCount, rounds, limit)
	}
	ctx = logging.WithLogRosterSize(ctx, len(people))
	ctx = logging.WithLogRoundsRequested(ctx, rounds)

	started := time.Now()
	generated, err := pairing.Generate(people, rounds, s.newRandomizer(in.Seed))
	if err != nil {
		return domain.PairingRun{}, err
	}
	metrics.ObserveGeneration(time.Since(started))

	run := domain.PairingRun{
		ID:         s.newID(),
		Seed:       in.Seed,
		RosterSize: len(people),
		Rounds:     generated,
	}
	ctx = logging.WithLogRunID(ctx, run.ID)

	// Запуск и все пары сохраняются атомарно
	var created domain.PairingRun
	err = s.trMgr.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreateRun(ctx, run)
		return err
	})
	if err != nil {
		return domain.PairingRun{}, logging.WrapError(ctx, fmt.Errorf("persist run: %w", err))
	}

	metrics.IncRunsGenerated()
	metrics.AddRoundsGenerated(len(created.Rounds))
	metrics.AddParticipantsProcessed(created.RosterSize)
	slog.InfoContext(ctx, "pairing run generated")
	return created, nil
}

// GetRun возвращает сохранённый запуск со всеми турами.
func (s *Service) GetRun(ctx context.Context, runID string) (domain.PairingRun, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateRunID(runID); err != nil {
		return domain.PairingRun{}, err
	}
	return s.repo.GetRun(ctx, runID)
}

// GetRound возвращает один тур запуска.
func (s *Service) GetRound(ctx context.Context, runID string, round int) (domain.Round, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	records, err := s.roundRecords(ctx, runID, round)
	if err != nil {
		return domain.Round{}, err
	}
	return domain.RoundFromRecords(round, records)
}

// NotifyRound рассылает письма участникам тура.
// Некорректная запись в туре прерывает рассылку до отправки первого письма.
func (s *Service) NotifyRound(ctx context.Context, runID string, round int, in NotifyInput) (notifier.Result, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := ValidateSubjectPrefix(in.SubjectPrefix); err != nil {
		return notifier.Result{}, err
	}
	records, err := s.roundRecords(ctx, runID, round)
	if err != nil {
		return notifier.Result{}, err
	}
	ctx = logging.WithLogRunID(ctx, runID)
	ctx = logging.WithLogRoundNumber(ctx, round)

	opts := notifier.Options{
		Operator: notifier.Operator{
			Name:  firstNonEmpty(in.OperatorName, s.cfg.Mail.OperatorName),
			Email: firstNonEmpty(in.OperatorEmail, s.cfg.Mail.OperatorEmail),
		},
		SubjectPrefix: firstNonEmpty(in.SubjectPrefix, s.cfg.Mail.SubjectPrefix),
		RoundNumber:   round,
	}
	result, err := s.notifier.Notify(ctx, records, opts)
	metrics.AddMessagesSent(result.Sent)
	metrics.AddMessagesFailed(len(result.Failed))
	if err != nil {
		return notifier.Result{}, err
	}
	slog.InfoContext(ctx, "round notified", "sent", result.Sent, "failed", len(result.Failed))
	return result, nil
}

// HealthCheck возвращает состояние зависимостей сервиса.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()
	return s.health.Ping(ctx)
}

func (s *Service) roundRecords(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
	if err := ValidateRunID(runID); err != nil {
		return nil, err
	}
	if err := ValidateRoundNumber(round); err != nil {
		return nil, err
	}
	return s.repo.GetRoundRecords(ctx, runID, round)
}

func (s *Service) checkRosterSize(n int) error {
	if limit := s.cfg.Pairing.MaxRosterSize; limit > 0 && n > limit {
		return fmt.Errorf("%w: %d participants, limit is %d", domain.ErrRosterTooLarge, n, limit)
	}
	return nil
}

// shortOperationContext создаёт контекст с таймаутом для обычных операций.
func (s *Service) shortOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.Operation)
}

// longOperationContext создаёт контекст с таймаутом для длительных операций.
func (s *Service) longOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.LongOperation)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
