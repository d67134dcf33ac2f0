// Package api содержит DTO HTTP-слоя. Схемы совпадают с openapi.yml.
package api

import "time"

// Participant участник в ответе. Для заглушки Bye=true, имя и контакт пустые.
type Participant struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Bye   bool   `json:"bye,omitempty"`
}

// Pair пара участников.
type Pair struct {
	First  Participant `json:"first"`
	Second Participant `json:"second"`
}

// Round тур.
type Round struct {
	Round int    `json:"round"`
	Pairs []Pair `json:"pairs"`
}

// PairingRun результат генерации.
type PairingRun struct {
	RunID      string    `json:"run_id"`
	Seed       *int64    `json:"seed,omitempty"`
	RosterSize int       `json:"roster_size"`
	CreatedAt  time.Time `json:"created_at"`
	Rounds     []Round   `json:"rounds"`
}

// ParticipantInput участник во входящем составе.
type ParticipantInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

// GenerateRequest тело POST /pairings/generate.
type GenerateRequest struct {
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
	Rounds       *int               `json:"rounds,omitempty"`
	Seed         *int64             `json:"seed,omitempty"`
}

// RunResponse обёртка ответа с запуском.
type RunResponse struct {
	Run PairingRun `json:"run"`
}

// RoundResponse обёртка ответа с туром.
type RoundResponse struct {
	RunID string `json:"run_id"`
	Round Round  `json:"round"`
}

// NormalizeRequest тело POST /roster/normalize.
type NormalizeRequest struct {
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
}

// RosterResponse нормализованный состав.
type RosterResponse struct {
	Participants []Participant `json:"participants"`
	CycleLength  int           `json:"cycle_length"`
}

// NotifyRequest тело POST /pairings/{run_id}/rounds/{round}/notify.
// Пустые поля заменяются значениями из конфигурации.
type NotifyRequest struct {
	OperatorName  string `json:"operator_name" validate:"omitempty,max=200"`
	OperatorEmail string `json:"operator_email" validate:"omitempty,email"`
	SubjectPrefix string `json:"subject_prefix" validate:"omitempty,max=100"`
}

// NotifyResponse итог рассылки.
type NotifyResponse struct {
	Sent   int               `json:"sent"`
	Failed map[string]string `json:"failed"`
}

// HealthResponse ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse единый формат ошибки.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
