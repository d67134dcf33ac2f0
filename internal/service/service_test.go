package service

import (
	"context"
	"errors"
	"testing"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/stretchr/testify/require"

	"random-pairs-service/internal/config"
	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/notifier"
	"random-pairs-service/internal/repository"
)

const testRunID = "6f1c2a8e-3b7d-4e55-9c1a-0d2e4f6a8b10"

func entries(names ...string) []domain.Entry {
	out := make([]domain.Entry, len(names))
	for i, n := range names {
		out[i] = domain.Entry{Name: n, Email: n + "@example.com"}
	}
	return out
}

func TestService_GeneratePairings_DefaultsToFullCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var persisted domain.PairingRun
	fake := &fakeRepo{
		createRunFn: func(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
			persisted = run
			run.CreatedAt = time.Unix(0, 0)
			return run, nil
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})
	svc.newID = func() string { return testRunID }

	seed := int64(3)
	run, err := svc.GeneratePairings(ctx, GenerateInput{Entries: entries("d", "c", "b", "a"), Seed: &seed})
	require.NoError(t, err)
	require.Equal(t, testRunID, run.ID)
	require.Equal(t, 4, run.RosterSize)
	require.Len(t, run.Rounds, 3)
	require.Equal(t, &seed, persisted.Seed)
	require.Len(t, persisted.Rounds, 3)

	seen := map[string]bool{}
	for _, round := range run.Rounds {
		require.Len(t, round.Pairs, 2)
		for _, p := range round.Pairs {
			require.False(t, seen[p.Key()], "pair %s repeated", p.Key())
			seen[p.Key()] = true
		}
	}
	require.Len(t, seen, 6)
}

func TestService_GeneratePairings_SeedIsReproducible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake := &fakeRepo{
		createRunFn: func(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
			return run, nil
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})

	seed := int64(99)
	rounds := 10
	in := GenerateInput{Entries: entries("a", "b", "c", "d", "e", "f"), Rounds: &rounds, Seed: &seed}
	first, err := svc.GeneratePairings(ctx, in)
	require.NoError(t, err)
	second, err := svc.GeneratePairings(ctx, in)
	require.NoError(t, err)
	require.Equal(t, first.Rounds, second.Rounds)
	require.NotEqual(t, first.ID, second.ID)
}

func TestService_GeneratePairings_PadsOddRoster(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		createRunFn: func(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
			return run, nil
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})

	run, err := svc.GeneratePairings(context.Background(), GenerateInput{Entries: entries("a", "b", "c")})
	require.NoError(t, err)
	require.Equal(t, 4, run.RosterSize)
	require.Len(t, run.Rounds, 3)
	for _, round := range run.Rounds {
		byes := 0
		for _, p := range round.Pairs {
			if p.First.IsBye() || p.Second.IsBye() {
				byes++
			}
		}
		require.Equal(t, 1, byes)
	}
}

func TestService_GeneratePairings_RejectsBeforePersisting(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pairing = config.PairingConfig{MaxRosterSize: 4, MaxRounds: 5}
	tooMany := 6
	negative := -1

	cases := []struct {
		name    string
		in      GenerateInput
		wantErr error
	}{
		{name: "empty roster", in: GenerateInput{}, wantErr: domain.ErrInvalidRoster},
		{name: "duplicate", in: GenerateInput{Entries: entries("a", "a")}, wantErr: domain.ErrDuplicateParticipant},
		{name: "roster too large", in: GenerateInput{Entries: entries("a", "b", "c", "d", "e")}, wantErr: domain.ErrRosterTooLarge},
		{name: "too many rounds", in: GenerateInput{Entries: entries("a", "b"), Rounds: &tooMany}, wantErr: domain.ErrInvalidRoundCount},
		{name: "negative rounds", in: GenerateInput{Entries: entries("a", "b"), Rounds: &negative}, wantErr: domain.ErrInvalidRoundCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeRepo{
				createRunFn: func(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
					t.Fatal("run must not be persisted")
					return run, nil
				},
			}
			svc := New(fake, cfg, stubManager{}, &recordingSender{})
			_, err := svc.GeneratePairings(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestService_GeneratePairings_PropagatesRepoError(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		createRunFn: func(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
			return domain.PairingRun{}, repository.ErrExecuteQuery
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})
	_, err := svc.GeneratePairings(context.Background(), GenerateInput{Entries: entries("a", "b")})
	require.ErrorIs(t, err, repository.ErrExecuteQuery)
}

func TestService_GetRun_ValidatesID(t *testing.T) {
	t.Parallel()

	svc := New(&fakeRepo{}, testConfig(), stubManager{}, &recordingSender{})
	_, err := svc.GetRun(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetRound_RestoresPairs(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		getRoundRecordsFn: func(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
			require.Equal(t, testRunID, runID)
			require.Equal(t, 2, round)
			return []domain.PairRecord{
				{Name1: "Alice", Email1: "a@x.io", Name2: "Bob", Email2: "b@x.io"},
				{Name1: "Carol", Email1: "c@x.io"},
			}, nil
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})

	round, err := svc.GetRound(context.Background(), testRunID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, round.Number)
	require.Len(t, round.Pairs, 2)
	require.True(t, round.Pairs[1].Second.IsBye())

	_, err = svc.GetRound(context.Background(), testRunID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_NotifyRound_UsesConfiguredDefaults(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		getRoundRecordsFn: func(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
			return []domain.PairRecord{
				{Name1: "Alice", Email1: "a@x.io", Name2: "Op", Email2: "op@x.io"},
				{Name1: "Carol", Email1: "c@x.io", Name2: "Dan", Email2: "d@x.io"},
			}, nil
		},
	}
	cfg := testConfig()
	cfg.Mail = config.MailConfig{SubjectPrefix: "Coffee", OperatorName: "Op", OperatorEmail: "op@x.io"}
	sender := &recordingSender{}
	svc := New(fake, cfg, stubManager{}, sender)

	res, err := svc.NotifyRound(context.Background(), testRunID, 4, NotifyInput{})
	require.NoError(t, err)
	require.Equal(t, 2, res.Sent)
	require.Len(t, sender.sent, 2)
	require.Equal(t, "Coffee 4", sender.sent[0].Subject)
	require.Equal(t, []string{"a@x.io"}, sender.sent[0].To)
	require.ElementsMatch(t, []string{"c@x.io", "d@x.io"}, sender.sent[1].To)
}

func TestService_NotifyRound_MalformedRoundSendsNothing(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		getRoundRecordsFn: func(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
			return []domain.PairRecord{
				{Name1: "Alice", Email1: "a@x.io", Name2: "Bob", Email2: "b@x.io"},
				{Name1: "Carol", Name2: "Dan", Email2: "d@x.io"},
			}, nil
		},
	}
	sender := &recordingSender{}
	svc := New(fake, testConfig(), stubManager{}, sender)

	_, err := svc.NotifyRound(context.Background(), testRunID, 1, NotifyInput{})
	require.ErrorIs(t, err, domain.ErrMalformedPairRecord)
	require.Empty(t, sender.sent)
}

func TestService_NotifyRound_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	fake := &fakeRepo{
		getRoundRecordsFn: func(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
			return nil, domain.ErrRoundNotFound
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})
	_, err := svc.NotifyRound(context.Background(), testRunID, 7, NotifyInput{})
	require.ErrorIs(t, err, domain.ErrRoundNotFound)
}

func TestServiceHealthCheckUsesRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var called bool
	fake := &fakeRepo{
		pingFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})
	require.NoError(t, svc.HealthCheck(ctx))
	require.True(t, called)
}

func TestServiceHealthCheckPropagatesError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := &fakeRepo{
		pingFn: func(ctx context.Context) error {
			return context.DeadlineExceeded
		},
	}
	svc := New(fake, testConfig(), stubManager{}, &recordingSender{})
	require.Error(t, svc.HealthCheck(ctx))
}

func testConfig() config.Config {
	return config.Config{
		Timeouts: config.TimeoutConfig{
			Operation:     time.Second,
			LongOperation: 2 * time.Second,
		},
	}
}

type stubManager struct{}

func (stubManager) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (stubManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(context.Context) error) error {
	return fn(ctx)
}

type recordingSender struct {
	sent []notifier.Message
}

func (s *recordingSender) Send(_ context.Context, msg notifier.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

var (
	_ trm.Manager     = stubManager{}
	_ notifier.Sender = (*recordingSender)(nil)
)

// fakeRepo позволяет настраивать ответы для юнит-тестов.
type fakeRepo struct {
	createRunFn       func(context.Context, domain.PairingRun) (domain.PairingRun, error)
	getRunFn          func(context.Context, string) (domain.PairingRun, error)
	getRoundRecordsFn func(context.Context, string, int) ([]domain.PairRecord, error)
	pingFn            func(context.Context) error
}

var errNotConfigured = errors.New("fake repo: not configured")

func (f *fakeRepo) CreateRun(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
	if f.createRunFn == nil {
		return domain.PairingRun{}, errNotConfigured
	}
	return f.createRunFn(ctx, run)
}

func (f *fakeRepo) GetRun(ctx context.Context, runID string) (domain.PairingRun, error) {
	if f.getRunFn == nil {
		return domain.PairingRun{}, errNotConfigured
	}
	return f.getRunFn(ctx, runID)
}

func (f *fakeRepo) GetRoundRecords(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
	if f.getRoundRecordsFn == nil {
		return nil, errNotConfigured
	}
	return f.getRoundRecordsFn(ctx, runID, round)
}

func (f *fakeRepo) Ping(ctx context.Context) error {
	if f.pingFn == nil {
		return nil
	}
	return f.pingFn(ctx)
}
