// Package roster превращает сырой список участников в упорядоченный состав чётной длины.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"random-pairs-service/internal/domain"
)

// Normalize удаляет пустые записи, проверяет уникальность, сортирует по имени (затем по контакту)
// и добавляет участника-заглушку, если участников нечётное число.
func Normalize(entries []domain.Entry) ([]domain.Participant, error) {
	entries = lo.Filter(entries, func(e domain.Entry, _ int) bool {
		return strings.TrimSpace(e.Name) != "" || strings.TrimSpace(e.Email) != ""
	})
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: roster is empty", domain.ErrInvalidRoster)
	}

	people := make([]domain.Participant, 0, len(entries)+1)
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		p := domain.NewParticipant(e.Name, e.Email)
		if p.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has contact %q but no name", domain.ErrInvalidRoster, i+1, p.Email)
		}
		if prev, ok := seen[p.Key()]; ok {
			return nil, fmt.Errorf("%w: %q (entries %d and %d)", domain.ErrDuplicateParticipant, p.Key(), prev, i+1)
		}
		seen[p.Key()] = i + 1
		people = append(people, p)
	}

	sort.SliceStable(people, func(i, j int) bool {
		if people[i].Name != people[j].Name {
			return people[i].Name < people[j].Name
		}
		return people[i].Email < people[j].Email
	})

	if len(people)%2 == 1 {
		people = append(people, domain.Bye())
	}
	return people, nil
}
