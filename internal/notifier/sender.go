package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// LogSender ничего не отправляет и только пишет письмо в лог. Используется для пробного запуска.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "dry-run: pairing message",
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// SMTPConfig параметры SMTP-сервера.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender отправляет письма через SMTP.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPSender создаёт отправителя. Host и From обязательны.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send отправляет письмо. net/smtp не принимает контекст, поэтому отмена проверяется до отправки.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, msg.To, encode(s.cfg.From, msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// encode собирает RFC 5322 письмо с текстовым телом в UTF-8.
func encode(from string, msg Message) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}
