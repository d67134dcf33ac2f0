package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"random-pairs-service/internal/domain"
	"random-pairs-service/internal/logging"
	"random-pairs-service/internal/service"
)

type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON-ответ с указанным статус-кодом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// BadRequest отправляет JSON-ответ со статусом 400.
func BadRequest(w http.ResponseWriter, code, message string) {
	RespondJSON(w, http.StatusBadRequest, APIError{
		Error: APIErrorBody{Code: code, Message: message},
	})
}

// HTTPError описывает контролируемую HTTP-ошибку.
type HTTPError struct {
	status  int
	code    string
	message string
}

func (e *HTTPError) Error() string {
	return e.message
}

// NewHTTPError создаёт новую HTTP-ошибку.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		status:  status,
		code:    code,
		message: message,
	}
}

// NewBadRequestError создаёт 400 ошибку.
func NewBadRequestError(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

// WithErrorHandling оборачивает обработчик, централизуя выдачу ошибок.
// Преобразует доменные ошибки в HTTP-ответы с соответствующими статус-кодами.
func WithErrorHandling(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			var httpErr *HTTPError
			// Если ошибка уже является HTTPError, используем её статус и код
			if errors.As(err, &httpErr) {
				RespondJSON(w, httpErr.status, APIError{
					Error: APIErrorBody{Code: httpErr.code, Message: httpErr.message},
				})
				return
			}
			// Иначе преобразуем доменную ошибку в HTTP-ответ
			WriteDomainError(w, r, err)
		}
	}
}

// WriteDomainError преобразует доменные ошибки в HTTP-ответы.
// Ошибки приходят обёрнутыми, поэтому сравнение идёт через errors.Is.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	switch {
	case errors.Is(err, domain.ErrInvalidRoster):
		slog.DebugContext(ctx, "invalid roster", "request_id", requestID, "error", err)
		BadRequest(w, "INVALID_ROSTER", err.Error())
	case errors.Is(err, domain.ErrRosterTooLarge):
		slog.DebugContext(ctx, "roster too large", "request_id", requestID, "error", err)
		BadRequest(w, "ROSTER_TOO_LARGE", err.Error())
	case errors.Is(err, domain.ErrInvalidRoundCount):
		slog.DebugContext(ctx, "invalid round count", "request_id", requestID, "error", err)
		BadRequest(w, "INVALID_ROUNDS", err.Error())
	case errors.Is(err, domain.ErrDuplicateParticipant):
		slog.DebugContext(ctx, "duplicate participant", "request_id", requestID, "error", err)
		BadRequest(w, "DUPLICATE_PARTICIPANT", err.Error())
	case errors.Is(err, domain.ErrMalformedPairRecord):
		slog.WarnContext(ctx, "malformed pair record", "request_id", requestID, "error", err)
		BadRequest(w, "MALFORMED_RECORD", err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		slog.DebugContext(ctx, "validation failed", "request_id", requestID, "error", err)
		BadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrRoundNotFound):
		slog.DebugContext(ctx, "resource not found", "request_id", requestID, "error", err)
		RespondJSON(w, http.StatusNotFound, APIError{Error: APIErrorBody{Code: "NOT_FOUND", Message: err.Error()}})
	default:
		// Поля лога (run_id, размер состава) переносятся из места возникновения ошибки
		ctx = logging.ErrorCtx(ctx, err)
		slog.ErrorContext(ctx, "unhandled domain error", "request_id", requestID, "error", err)
		RespondJSON(w, http.StatusInternalServerError, APIError{Error: APIErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}})
	}
}
