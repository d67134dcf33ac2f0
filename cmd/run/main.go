package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"random-pairs-service/internal/app"
	"random-pairs-service/internal/config"
	"random-pairs-service/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.MustLoad()
	cleanup, err := setupLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer cleanup()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to init app", "error", err)
		cleanup()
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application stopped with error", "error", err)
		cleanup()
		os.Exit(1)
	}
}

// setupLogger направляет логи сервиса туда, куда указывает секция logging.
// Уровень по умолчанию info.
func setupLogger(cfg config.LoggingConfig) (func(), error) {
	w, closeFn, err := logging.OpenOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	logging.Install(w, logging.ParseLevel(cfg.Level, slog.LevelInfo))
	return closeFn, nil
}
