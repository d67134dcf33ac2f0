package notifier

import (
	"context"
	"log/slog"
	"strings"

	"random-pairs-service/internal/domain"
)

// Sender доставляет одно письмо.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Result итог рассылки: число отправленных писем и ошибки по адресатам.
type Result struct {
	Sent   int               `json:"sent"`
	Failed map[string]string `json:"failed"`
}

// Notifier строит письма для тура и отправляет их через Sender.
type Notifier struct {
	sender Sender
}

func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify строит письма и отправляет их по очереди. Ошибка отправки одного письма
// не останавливает остальные; ошибка в записях тура останавливает всё до отправки.
func (n *Notifier) Notify(ctx context.Context, records []domain.PairRecord, opts Options) (Result, error) {
	messages, err := BuildMessages(records, opts)
	if err != nil {
		return Result{}, err
	}

	result := Result{Failed: map[string]string{}}
	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		to := strings.Join(msg.To, ",")
		if err := n.sender.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "failed to send pairing message", "to", to, "error", err)
			result.Failed[to] = err.Error()
			continue
		}
		result.Sent++
	}
	return result, nil
}
