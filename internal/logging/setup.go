package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel переводит имя уровня в slog.Level. Неизвестное или пустое имя даёт fallback.
func ParseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// OpenOutput открывает приёмник логов: stdout, stderr или файл (каталог создаётся).
// Возвращаемая функция закрывает файл и безопасна для повторного вызова.
func OpenOutput(output string) (io.Writer, func(), error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	closed := false
	return f, func() {
		if !closed {
			closed = true
			_ = f.Close()
		}
	}, nil
}

// Install делает JSON-логгер с контекстными полями логгером по умолчанию.
func Install(w io.Writer, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(NewLoggerImpl(handler)))
}
