// Package pairing строит расписание пар по круговой системе (round-robin).
//
// Один цикл для состава из n участников (n чётно) состоит из n-1 туров, и за цикл
// каждая пара участников встречается ровно один раз. На границе каждого цикла порядок
// участников перемешивается заново, поэтому между циклами уникальность пар не гарантируется.
package pairing

import (
	"fmt"

	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/infrastructure/randomizer"
)

// CycleLength возвращает число туров в полном цикле для состава размера n.
func CycleLength(n int) int {
	return n - 1
}

// ValidateRoster проверяет предусловия генерации: не меньше двух участников и чётный размер.
func ValidateRoster(roster []domain.Participant) error {
	n := len(roster)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 participants, got %d", domain.ErrInvalidRoster, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: odd number of participants (%d)", domain.ErrInvalidRoster, n)
	}
	return nil
}

// Generate возвращает rounds туров для состава roster.
//
// Все проверки выполняются до первого обращения к rnd, так что при ошибке источник
// случайности не тронут и ни один тур не построен. Входной срез не изменяется.
// rnd принадлежит вызову: для воспроизводимости передавайте randomizer.NewSeeded.
func Generate(roster []domain.Participant, rounds int, rnd randomizer.Randomizer) ([]domain.Round, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}
	if rounds < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidRoundCount, rounds)
	}
	if rounds == 0 {
		return []domain.Round{}, nil
	}
	if rnd == nil {
		rnd = randomizer.New()
	}

	people := append([]domain.Participant(nil), roster...)
	cycle := CycleLength(len(people))
	result := make([]domain.Round, 0, initialCapacity(rounds, cycle))
	for i := 0; i < rounds; i++ {
		offset := i % cycle
		// Новый цикл начинается с перемешивания
		if offset == 0 {
			rnd.Shuffle(len(people), func(a, b int) {
				people[a], people[b] = people[b], people[a]
			})
		}
		result = append(result, buildRound(people, offset+1, i+1))
	}
	return result, nil
}

// initialCapacity ограничивает предварительное выделение одним циклом:
// число туров приходит от вызывающего и может быть сколь угодно большим.
func initialCapacity(rounds, cycle int) int {
	return min(rounds, cycle)
}

// buildRound строит тур методом круга: people[0] неподвижен, остальные n-1 участников
// образуют кольцо, сдвинутое на shift позиций. Неподвижный участник играет с последним
// элементом кольца, остальные элементы кольца складываются попарно с двух концов.
func buildRound(people []domain.Participant, shift, number int) domain.Round {
	n := len(people)
	ring := n - 1
	at := func(k int) domain.Participant {
		return people[1+((k-shift)%ring+ring)%ring]
	}

	pairs := make([]domain.Pair, 0, n/2)
	pairs = append(pairs, domain.Pair{First: people[0], Second: at(ring - 1)})
	for k := 0; k < n/2-1; k++ {
		pairs = append(pairs, domain.Pair{First: at(k), Second: at(ring - 2 - k)})
	}
	return domain.Round{Number: number, Pairs: pairs}
}
