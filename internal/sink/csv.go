// Package sink сохраняет туры в файлы pairing_{k}.csv и читает их обратно для рассылки.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"random-pairs-service/internal/domain"
)

var header = []string{"Name_1", "Email_1", "Name_2", "Email_2"}

// ErrBadHeader возвращается, если у сохранённого тура неожиданный заголовок.
var ErrBadHeader = errors.New("unexpected pairing file header")

// FileName возвращает имя файла для тура с номером k (нумерация с 1).
func FileName(k int) string {
	return fmt.Sprintf("pairing_%d.csv", k)
}

// WriteRound записывает тур в CSV. Слот "bye" остаётся пустым.
func WriteRound(w io.Writer, round domain.Round) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range round.Records() {
		if err := cw.Write([]string{rec.Name1, rec.Email1, rec.Name2, rec.Email2}); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRun сохраняет все туры в каталог dir и возвращает пути созданных файлов.
// Файлы сначала пишутся во временный каталог рядом с dir, так что при ошибке
// в dir не остаётся частично записанного запуска. После успешной записи туры
// прошлого запуска с номерами, которых нет в новом, удаляются.
func WriteRun(dir string, rounds []domain.Round) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create pairings dir: %w", err)
	}
	staging, err := os.MkdirTemp(dir, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, round := range rounds {
		if err := writeRoundFile(filepath.Join(staging, FileName(round.Number)), round); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(rounds))
	for _, round := range rounds {
		target := filepath.Join(dir, FileName(round.Number))
		if err := os.Rename(filepath.Join(staging, FileName(round.Number)), target); err != nil {
			return paths, fmt.Errorf("move %s: %w", FileName(round.Number), err)
		}
		paths = append(paths, target)
	}
	if err := removeStaleRounds(dir, rounds); err != nil {
		return paths, err
	}
	return paths, nil
}

// removeStaleRounds удаляет pairing_{k}.csv, не принадлежащие текущему запуску.
func removeStaleRounds(dir string, rounds []domain.Round) error {
	keep := make(map[string]struct{}, len(rounds))
	for _, round := range rounds {
		keep[FileName(round.Number)] = struct{}{}
	}
	matches, err := filepath.Glob(filepath.Join(dir, "pairing_*.csv"))
	if err != nil {
		return fmt.Errorf("list pairing files: %w", err)
	}
	for _, path := range matches {
		name := filepath.Base(path)
		if _, ok := keep[name]; ok || !isRoundFile(name) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", name, err)
		}
	}
	return nil
}

func isRoundFile(name string) bool {
	num := strings.TrimSuffix(strings.TrimPrefix(name, "pairing_"), ".csv")
	k, err := strconv.Atoi(num)
	return err == nil && k > 0 && FileName(k) == name
}

func writeRoundFile(path string, round domain.Round) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRound(f, round); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadRound читает записи тура из CSV без проверки согласованности слотов:
// это делает тот, кто потребляет записи.
func ReadRound(r io.Reader) ([]domain.PairRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	got, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	for i := range header {
		if got[i] != header[i] {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, got)
		}
	}

	var records []domain.PairRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read pairing record: %w", err)
		}
		records = append(records, domain.PairRecord{Name1: row[0], Email1: row[1], Name2: row[2], Email2: row[3]})
	}
	return records, nil
}

// LoadRound читает тур k из каталога dir.
func LoadRound(dir string, k int) ([]domain.PairRecord, error) {
	f, err := os.Open(filepath.Join(dir, FileName(k)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %d", domain.ErrRoundNotFound, k)
		}
		return nil, fmt.Errorf("open pairing file: %w", err)
	}
	defer f.Close()
	return ReadRound(f)
}
