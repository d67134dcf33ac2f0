// Command pairs строит расписание пар из файла состава и рассылает письма по сохранённым турам.
//
// Usage:
//
//	pairs generate --roster people.csv --out pairings [--rounds N] [--seed S] [--print]
//	pairs notify --dir pairings --round K [--my-name NAME] [--my-email EMAIL] [--dry-run=false]
//
// Настройки SMTP берутся из переменных окружения (SMTP_HOST, SMTP_PORT, MAIL_FROM, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
