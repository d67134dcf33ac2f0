package nower

import "time"

// Nower предоставляет абстракцию для получения текущего времени.
// Хранилище проставляет через него время создания запусков генерации.
type Nower interface {
	Now() time.Time
}
