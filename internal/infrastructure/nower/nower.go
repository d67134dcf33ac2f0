package nower

import "time"

type nowerImpl struct{}

// New создаёт реализацию на базе системных часов в UTC.
func New() Nower {
	return &nowerImpl{}
}

// Now возвращает текущее системное время, усечённое до микросекунд (точность timestamptz).
func (n *nowerImpl) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type fixedNower struct {
	at time.Time
}

// Fixed возвращает Nower, всегда отдающий одно и то же время.
func Fixed(at time.Time) Nower {
	return fixedNower{at: at}
}

func (f fixedNower) Now() time.Time {
	return f.at
}
