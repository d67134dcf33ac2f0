package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON читает тело запроса в dst и проверяет его validate-тегами.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	if err := validate.Struct(dst); err != nil {
		return NewBadRequestError("VALIDATION_ERROR", validationMessage(err))
	}
	return nil
}

// RoundParam читает номер тура из пути.
func RoundParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "round")
	round, err := strconv.Atoi(raw)
	if err != nil || round < 1 {
		return 0, NewBadRequestError("VALIDATION_ERROR", fmt.Sprintf("round должен быть целым числом >= 1, получено %q", raw))
	}
	return round, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
