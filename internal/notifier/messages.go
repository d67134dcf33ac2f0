// Package notifier превращает сохранённый тур в письма участникам и отправляет их.
package notifier

import (
	"fmt"
	"strings"

	"random-pairs-service/internal/domain"
)

const DefaultSubjectPrefix = "Pairing"

// Operator тот, кто рассылает письма. Если его адрес встречается в паре,
// партнёр получает персональное письмо.
type Operator struct {
	Name  string
	Email string
}

// Options параметры рассылки одного тура.
type Options struct {
	Operator      Operator
	SubjectPrefix string
	RoundNumber   int
}

func (o Options) subject() string {
	prefix := o.SubjectPrefix
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return fmt.Sprintf("%s %d", prefix, o.RoundNumber)
}

// Message одно письмо.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// BuildMessages проверяет все записи тура и строит письма.
// Любая некорректная запись прерывает построение целиком, чтобы не разослать тур частично.
func BuildMessages(records []domain.PairRecord, opts Options) ([]Message, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	subject := opts.subject()
	signer := opts.Operator.Name
	messages := make([]Message, 0, len(records))
	for _, rec := range records {
		pair, err := rec.Pair()
		if err != nil {
			return nil, err
		}
		first, second := pair.First, pair.Second
		switch {
		case first.IsBye() && second.IsBye():
			continue
		case first.IsBye() || second.IsBye():
			person := first
			if person.IsBye() {
				person = second
			}
			messages = append(messages, Message{
				To:      []string{person.Email},
				Subject: subject,
				Body:    unpairedBody(person.Name, signer),
			})
		case isOperator(first, opts.Operator) || isOperator(second, opts.Operator):
			partner := first
			if isOperator(first, opts.Operator) {
				partner = second
			}
			messages = append(messages, Message{
				To:      []string{partner.Email},
				Subject: subject,
				Body:    operatorBody(partner.Name, signer),
			})
		default:
			messages = append(messages, Message{
				To:      []string{first.Email, second.Email},
				Subject: subject,
				Body:    pairedBody(first.Name, second.Name, signer),
			})
		}
	}
	return messages, nil
}

func validateRecords(records []domain.PairRecord) error {
	seen := make(map[string]int, 2*len(records))
	for i, rec := range records {
		if err := rec.RequireContacts(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		for _, email := range []string{rec.Email1, rec.Email2} {
			key := strings.ToLower(strings.TrimSpace(email))
			if key == "" {
				continue
			}
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("%w: %s appears in records %d and %d", domain.ErrDuplicateParticipant, key, prev, i+1)
			}
			seen[key] = i + 1
		}
	}
	return nil
}

func isOperator(p domain.Participant, op Operator) bool {
	return op.Email != "" && strings.EqualFold(p.Email, op.Email)
}

func unpairedBody(name, signer string) string {
	return fmt.Sprintf("Hi %s,\n\n"+
		"Unfortunately you do not have a partner this week. "+
		"But don't worry, you'll be paired with someone next week!\n\n"+
		"Best,\n%s", name, signer)
}

func operatorBody(name, signer string) string {
	return fmt.Sprintf("Hi %s,\n\n"+
		"You're paired with me this week! When would be a good time to chat?\n\n"+
		"Best,\n%s", name, signer)
}

func pairedBody(name1, name2, signer string) string {
	return fmt.Sprintf("Hi %s and %s,\n\n"+
		"You two are paired this week! Please try to find a time by the end of the week to meet.\n\n"+
		"Best,\n%s", name1, name2, signer)
}
