package domain

import (
	"fmt"
	"strings"
	"time"
)

// ParticipantKind различает реального участника и пустое место ("bye").
type ParticipantKind uint8

const (
	KindReal ParticipantKind = iota
	KindBye
)

// Participant описывает участника ротации: реального человека или заглушку "bye".
// Заглушка нужна только для чётного размера состава и не имеет ни имени, ни контакта.
type Participant struct {
	Kind  ParticipantKind
	Name  string
	Email string
}

// NewParticipant создаёт реального участника.
func NewParticipant(name, email string) Participant {
	return Participant{
		Kind:  KindReal,
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
}

// Bye возвращает участника-заглушку.
func Bye() Participant {
	return Participant{Kind: KindBye}
}

// IsBye сообщает, является ли участник заглушкой.
func (p Participant) IsBye() bool {
	return p.Kind == KindBye
}

// Key возвращает ключ идентичности: контакт в нижнем регистре, если он есть, иначе имя.
func (p Participant) Key() string {
	if p.IsBye() {
		return "\x00bye"
	}
	if p.Email != "" {
		return strings.ToLower(p.Email)
	}
	return p.Name
}

func (p Participant) String() string {
	switch {
	case p.IsBye():
		return "(bye)"
	case p.Email != "":
		return fmt.Sprintf("%s <%s>", p.Name, p.Email)
	default:
		return p.Name
	}
}

// Entry сырая запись состава до нормализации.
type Entry struct {
	Name  string
	Email string
}

// Pair неупорядоченная пара участников одного тура.
type Pair struct {
	First  Participant
	Second Participant
}

// Contains проверяет, входит ли участник в пару.
func (p Pair) Contains(x Participant) bool {
	return p.First.Key() == x.Key() || p.Second.Key() == x.Key()
}

// Key возвращает ключ пары, не зависящий от порядка участников.
func (p Pair) Key() string {
	a, b := p.First.Key(), p.Second.Key()
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Round полное разбиение состава на пары. Номер начинается с 1.
type Round struct {
	Number int
	Pairs  []Pair
}

// PairingRun результат одной генерации.
type PairingRun struct {
	ID         string
	Seed       *int64
	RosterSize int
	CreatedAt  time.Time
	Rounds     []Round
}

// PairRecord сохранённое представление пары: два слота имя/контакт.
// Пустой слот (без имени и контакта) обозначает "bye".
type PairRecord struct {
	Name1  string
	Email1 string
	Name2  string
	Email2 string
}

// RecordFromPair переводит пару в сохраняемую запись.
func RecordFromPair(p Pair) PairRecord {
	var r PairRecord
	if !p.First.IsBye() {
		r.Name1, r.Email1 = p.First.Name, p.First.Email
	}
	if !p.Second.IsBye() {
		r.Name2, r.Email2 = p.Second.Name, p.Second.Email
	}
	return r
}

// Pair восстанавливает пару из записи. Контакт без имени считается ошибкой.
func (r PairRecord) Pair() (Pair, error) {
	first, err := slotParticipant(r.Name1, r.Email1)
	if err != nil {
		return Pair{}, err
	}
	second, err := slotParticipant(r.Name2, r.Email2)
	if err != nil {
		return Pair{}, err
	}
	return Pair{First: first, Second: second}, nil
}

// RequireContacts проверяет, что в каждом слоте имя и контакт либо оба заданы, либо оба пусты.
func (r PairRecord) RequireContacts() error {
	if (strings.TrimSpace(r.Name1) == "") != (strings.TrimSpace(r.Email1) == "") {
		return fmt.Errorf("%w: slot 1 name=%q email=%q", ErrMalformedPairRecord, r.Name1, r.Email1)
	}
	if (strings.TrimSpace(r.Name2) == "") != (strings.TrimSpace(r.Email2) == "") {
		return fmt.Errorf("%w: slot 2 name=%q email=%q", ErrMalformedPairRecord, r.Name2, r.Email2)
	}
	return nil
}

func slotParticipant(name, email string) (Participant, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case name == "" && email == "":
		return Bye(), nil
	case name == "":
		return Participant{}, fmt.Errorf("%w: contact %q without name", ErrMalformedPairRecord, email)
	default:
		return NewParticipant(name, email), nil
	}
}

// RoundFromRecords собирает тур из сохранённых записей.
func RoundFromRecords(number int, records []PairRecord) (Round, error) {
	round := Round{Number: number, Pairs: make([]Pair, 0, len(records))}
	for i, rec := range records {
		pair, err := rec.Pair()
		if err != nil {
			return Round{}, fmt.Errorf("round %d record %d: %w", number, i+1, err)
		}
		round.Pairs = append(round.Pairs, pair)
	}
	return round, nil
}

// Records переводит тур в сохраняемые записи.
func (r Round) Records() []PairRecord {
	records := make([]PairRecord, len(r.Pairs))
	for i, p := range r.Pairs {
		records[i] = RecordFromPair(p)
	}
	return records
}
