package domain

import "errors"

// Доменные ошибки, используемые для обработки бизнес-логики.
// Эти ошибки преобразуются в HTTP-ответы в слое обработчиков и в код выхода в CLI.
var (
	ErrInvalidRoster        = errors.New("invalid roster")                         // Состав пуст, нечётный или короче двух участников.
	ErrInvalidRoundCount    = errors.New("invalid round count")                    // Запрошено отрицательное число туров.
	ErrDuplicateParticipant = errors.New("duplicate participant")                  // Два участника совпадают по идентичности.
	ErrMalformedPairRecord  = errors.New("malformed pair record")                  // Имя без контакта или контакт без имени.
	ErrRunNotFound          = errors.New("pairing run not found")                  // Запуск с таким ID не сохранён.
	ErrRoundNotFound        = errors.New("round not found")                        // В запуске нет тура с таким номером.
	ErrRosterTooLarge       = errors.New("roster exceeds configured maximum size") // Превышен лимит размера состава из конфигурации.
)
