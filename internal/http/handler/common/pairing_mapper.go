package common

import (
	"github.com/samber/lo"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/domain"
)

// ToDomainEntries переводит участников запроса в сырые записи состава.
func ToDomainEntries(in []api.ParticipantInput) []domain.Entry {
	return lo.Map(in, func(p api.ParticipantInput, _ int) domain.Entry {
		return domain.Entry{Name: p.Name, Email: p.Email}
	})
}

// FromDomainParticipant конвертирует участника в DTO.
func FromDomainParticipant(p domain.Participant) api.Participant {
	if p.IsBye() {
		return api.Participant{Bye: true}
	}
	return api.Participant{Name: p.Name, Email: p.Email}
}

// FromDomainParticipants конвертирует состав в DTO.
func FromDomainParticipants(people []domain.Participant) []api.Participant {
	return lo.Map(people, func(p domain.Participant, _ int) api.Participant {
		return FromDomainParticipant(p)
	})
}

// FromDomainRound конвертирует тур в DTO.
func FromDomainRound(r domain.Round) api.Round {
	return api.Round{
		Round: r.Number,
		Pairs: lo.Map(r.Pairs, func(p domain.Pair, _ int) api.Pair {
			return api.Pair{First: FromDomainParticipant(p.First), Second: FromDomainParticipant(p.Second)}
		}),
	}
}

// FromDomainRun конвертирует запуск в DTO.
func FromDomainRun(run domain.PairingRun) api.PairingRun {
	return api.PairingRun{
		RunID:      run.ID,
		Seed:       run.Seed,
		RosterSize: run.RosterSize,
		CreatedAt:  run.CreatedAt,
		Rounds:     lo.Map(run.Rounds, func(r domain.Round, _ int) api.Round { return FromDomainRound(r) }),
	}
}
