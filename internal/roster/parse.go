package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"random-pairs-service/internal/domain"
)

const (
	DefaultNameColumn  = "Name"
	DefaultEmailColumn = "Email"
)

// ErrMissingColumn возвращается, если в CSV нет колонки с именами.
var ErrMissingColumn = errors.New("required column is missing")

// Columns задаёт имена колонок CSV. Колонка с контактом необязательна.
type Columns struct {
	Name  string
	Email string
}

func (c Columns) withDefaults() Columns {
	if c.Name == "" {
		c.Name = DefaultNameColumn
	}
	if c.Email == "" {
		c.Email = DefaultEmailColumn
	}
	return c
}

// ParseCSV читает CSV с заголовком и возвращает записи из колонок имени и контакта.
func ParseCSV(r io.Reader, cols Columns) ([]domain.Entry, error) {
	cols = cols.withDefaults()
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, cols.Name)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	nameIdx, emailIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case cols.Name:
			nameIdx = i
		case cols.Email:
			emailIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, cols.Name)
	}

	var entries []domain.Entry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		entry := domain.Entry{Name: field(record, nameIdx)}
		if emailIdx >= 0 {
			entry.Email = field(record, emailIdx)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseLines читает по одному участнику на строку: "Имя" или "Имя <email>".
// Пустые строки и строки, начинающиеся с '#', пропускаются.
func ParseLines(r io.Reader) ([]domain.Entry, error) {
	var entries []domain.Entry
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !strings.Contains(text, "<") {
			entries = append(entries, domain.Entry{Name: text})
			continue
		}
		addr, err := mail.ParseAddress(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse address %q: %w", line, text, err)
		}
		entries = append(entries, domain.Entry{Name: addr.Name, Email: addr.Address})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster lines: %w", err)
	}
	return entries, nil
}

// LoadFile читает состав из файла: .csv разбирается как таблица, остальное построчно.
func LoadFile(path string, cols Columns) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(f, cols)
	}
	return ParseLines(f)
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
