package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsGenerated = promauto.NewCounter(
		prometheusCounterOpts("pairing_runs_generated_total", "Total number of generated pairing runs"),
	)
	roundsGenerated = promauto.NewCounter(
		prometheusCounterOpts("pairing_rounds_generated_total", "Total number of generated rounds"),
	)
	participantsProcessed = promauto.NewCounter(
		prometheusCounterOpts("participants_processed_total", "Total number of normalized participants"),
	)
	messagesSent = promauto.NewCounter(
		prometheusCounterOpts("pairing_messages_sent_total", "Total number of sent pairing messages"),
	)
	messagesFailed = promauto.NewCounter(
		prometheusCounterOpts("pairing_messages_failed_total", "Total number of pairing messages that failed to send"),
	)
)

// IncRunsGenerated увеличивает счётчик запусков генерации.
func IncRunsGenerated() {
	runsGenerated.Inc()
}

// AddRoundsGenerated увеличивает счётчик сгенерированных туров.
func AddRoundsGenerated(delta int) {
	if delta <= 0 {
		return
	}
	roundsGenerated.Add(float64(delta))
}

// AddParticipantsProcessed увеличивает счётчик обработанных участников.
func AddParticipantsProcessed(delta int) {
	if delta <= 0 {
		return
	}
	participantsProcessed.Add(float64(delta))
}

// AddMessagesSent увеличивает счётчик отправленных писем.
func AddMessagesSent(delta int) {
	if delta <= 0 {
		return
	}
	messagesSent.Add(float64(delta))
}

// AddMessagesFailed увеличивает счётчик неотправленных писем.
func AddMessagesFailed(delta int) {
	if delta <= 0 {
		return
	}
	messagesFailed.Add(float64(delta))
}

func prometheusCounterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Name: name,
		Help: help,
	}
}
