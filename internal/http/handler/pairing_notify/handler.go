package pairingnotify

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
	"random-pairs-service/internal/service"
)

// Handler запускает рассылку писем по туру.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /pairings/{run_id}/rounds/{round}/notify.
func (h *Handler) Register(router chi.Router) {
	router.Post("/{run_id}/rounds/{round}/notify", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	round, err := common.RoundParam(r)
	if err != nil {
		return err
	}
	// Тело необязательно: без него берутся значения из конфигурации
	var req api.NotifyRequest
	if r.ContentLength != 0 {
		if err := common.DecodeJSON(w, r, &req); err != nil {
			return err
		}
	}
	result, err := h.useCase.NotifyRound(r.Context(), chi.URLParam(r, "run_id"), round, service.NotifyInput{
		OperatorName:  req.OperatorName,
		OperatorEmail: req.OperatorEmail,
		SubjectPrefix: req.SubjectPrefix,
	})
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, api.NotifyResponse{Sent: result.Sent, Failed: result.Failed})
	return nil
}
