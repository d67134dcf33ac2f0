package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
)

// Общие ошибки репозитория.
var (
	ErrBuildQuery   = errors.New("failed to build SQL query")
	ErrExecuteQuery = errors.New("failed to execute query")
	ErrScanResult   = errors.New("failed to scan result")
)

// insertChunkSize ограничивает число строк в одном INSERT: у PostgreSQL лимит 65535 параметров.
const insertChunkSize = 1000

// nullable превращает пустую строку в NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
