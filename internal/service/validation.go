package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput ошибка валидации входных данных
	ErrInvalidInput = errors.New("invalid input")
)

// ValidateRunID проверяет, что ID запуска является UUID.
func ValidateRunID(runID string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return fmt.Errorf("%w: run ID cannot be empty", ErrInvalidInput)
	}
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("%w: run ID must be a UUID", ErrInvalidInput)
	}
	return nil
}

// ValidateRoundNumber проверяет номер тура: туры нумеруются с 1.
func ValidateRoundNumber(round int) error {
	if round < 1 {
		return fmt.Errorf("%w: round number must be >= 1, got %d", ErrInvalidInput, round)
	}
	return nil
}

// ValidateSubjectPrefix ограничивает длину префикса темы письма.
func ValidateSubjectPrefix(prefix string) error {
	if len(prefix) > 100 {
		return fmt.Errorf("%w: subject prefix too long (max 100 characters)", ErrInvalidInput)
	}
	return nil
}
