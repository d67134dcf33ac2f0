package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/infrastructure/nower"
)

type pgxPool interface {
	trmpgx.Tr
	Close()
	Ping(ctx context.Context) error
}

// Storage инкапсулирует работу с PostgreSQL.
// Если в контексте открыта транзакция transaction manager'а, запросы идут через неё.
type Storage struct {
	pool   pgxPool
	getter *trmpgx.CtxGetter
	nower  nower.Nower
	sb     squirrel.StatementBuilderType
}

// New создаёт новый слой хранения.
func New(pool pgxPool, nower nower.Nower) *Storage {
	return &Storage{
		pool:   pool,
		getter: trmpgx.DefaultCtxGetter,
		nower:  nower,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Close освобождает соединения пула.
func (s *Storage) Close() {
	s.pool.Close()
}

// Ping проверяет доступность подключения к БД.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.pool)
}

// CreateRun сохраняет запуск и все пары всех туров. Время создания проставляется здесь.
func (s *Storage) CreateRun(ctx context.Context, run domain.PairingRun) (domain.PairingRun, error) {
	run.CreatedAt = s.nower.Now()
	db := s.conn(ctx)

	insertRunSQL, insertRunArgs, err := s.sb.
		Insert("pairing_runs").
		Columns("run_id", "seed", "roster_size", "rounds_count", "created_at").
		Values(run.ID, run.Seed, run.RosterSize, len(run.Rounds), run.CreatedAt).
		ToSql()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build insert run query", "error", err)
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := db.Exec(ctx, insertRunSQL, insertRunArgs...); err != nil {
		slog.ErrorContext(ctx, "failed to insert run", "error", err)
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}

	// Пары вставляются пачками, чтобы не упереться в лимит параметров
	insert := s.newPairsInsert()
	rows := 0
	for _, round := range run.Rounds {
		for pos, rec := range round.Records() {
			insert = insert.Values(run.ID, round.Number, pos+1,
				nullable(rec.Name1), nullable(rec.Email1), nullable(rec.Name2), nullable(rec.Email2))
			rows++
			if rows == insertChunkSize {
				if err := s.execInsert(ctx, db, insert); err != nil {
					return domain.PairingRun{}, err
				}
				insert, rows = s.newPairsInsert(), 0
			}
		}
	}
	if rows > 0 {
		if err := s.execInsert(ctx, db, insert); err != nil {
			return domain.PairingRun{}, err
		}
	}
	return run, nil
}

func (s *Storage) newPairsInsert() squirrel.InsertBuilder {
	return s.sb.
		Insert("pairing_pairs").
		Columns("run_id", "round_number", "position", "name_1", "email_1", "name_2", "email_2")
}

func (s *Storage) execInsert(ctx context.Context, db trmpgx.Tr, insert squirrel.InsertBuilder) error {
	sql, args, err := insert.ToSql()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build insert pairs query", "error", err)
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	if _, err := db.Exec(ctx, sql, args...); err != nil {
		slog.ErrorContext(ctx, "failed to insert pairs", "error", err)
		return fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	return nil
}

// GetRun возвращает запуск со всеми турами.
func (s *Storage) GetRun(ctx context.Context, runID string) (domain.PairingRun, error) {
	db := s.conn(ctx)

	selectRunSQL, selectRunArgs, err := s.sb.
		Select("run_id", "seed", "roster_size", "rounds_count", "created_at").
		From("pairing_runs").
		Where(squirrel.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	var (
		run         domain.PairingRun
		seed        pgtype.Int8
		roundsCount int
	)
	err = db.QueryRow(ctx, selectRunSQL, selectRunArgs...).
		Scan(&run.ID, &seed, &run.RosterSize, &roundsCount, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PairingRun{}, domain.ErrRunNotFound
		}
		slog.ErrorContext(ctx, "failed to select run", "error", err)
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}

	selectPairsSQL, selectPairsArgs, err := s.sb.
		Select("round_number", "name_1", "email_1", "name_2", "email_2").
		From("pairing_pairs").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("round_number ASC", "position ASC").
		ToSql()
	if err != nil {
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	rows, err := db.Query(ctx, selectPairsSQL, selectPairsArgs...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to select pairs", "error", err)
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	defer rows.Close()

	records := make([][]domain.PairRecord, roundsCount)
	for rows.Next() {
		var number int
		rec, err := scanRecord(rows, &number)
		if err != nil {
			return domain.PairingRun{}, err
		}
		if number < 1 || number > roundsCount {
			return domain.PairingRun{}, fmt.Errorf("%w: round %d outside 1..%d", ErrScanResult, number, roundsCount)
		}
		records[number-1] = append(records[number-1], rec)
	}
	if err := rows.Err(); err != nil {
		return domain.PairingRun{}, fmt.Errorf("%w: %v", ErrScanResult, err)
	}

	run.Rounds = make([]domain.Round, 0, roundsCount)
	for i, recs := range records {
		round, err := domain.RoundFromRecords(i+1, recs)
		if err != nil {
			return domain.PairingRun{}, err
		}
		run.Rounds = append(run.Rounds, round)
	}
	return run, nil
}

// GetRoundRecords возвращает записи одного тура в исходном (сохранённом) виде.
func (s *Storage) GetRoundRecords(ctx context.Context, runID string, round int) ([]domain.PairRecord, error) {
	db := s.conn(ctx)

	selectSQL, selectArgs, err := s.sb.
		Select("round_number", "name_1", "email_1", "name_2", "email_2").
		From("pairing_pairs").
		Where(squirrel.Eq{"run_id": runID, "round_number": round}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	rows, err := db.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to select round", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var records []domain.PairRecord
	for rows.Next() {
		var number int
		rec, err := scanRecord(rows, &number)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	if len(records) > 0 {
		return records, nil
	}

	// Тур не найден: различаем отсутствие запуска и выход за число туров
	existsSQL, existsArgs, err := s.sb.
		Select("1").
		From("pairing_runs").
		Where(squirrel.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}
	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS("+existsSQL+")", existsArgs...).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecuteQuery, err)
	}
	if !exists {
		return nil, domain.ErrRunNotFound
	}
	return nil, domain.ErrRoundNotFound
}

func scanRecord(rows pgx.Rows, number *int) (domain.PairRecord, error) {
	var name1, email1, name2, email2 pgtype.Text
	if err := rows.Scan(number, &name1, &email1, &name2, &email2); err != nil {
		return domain.PairRecord{}, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return domain.PairRecord{
		Name1:  textValue(name1),
		Email1: textValue(email1),
		Name2:  textValue(name2),
		Email2: textValue(email2),
	}, nil
}
