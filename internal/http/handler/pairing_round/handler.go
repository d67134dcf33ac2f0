package pairinground

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
)

// Handler отдаёт один тур запуска.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /pairings/{run_id}/rounds/{round}.
func (h *Handler) Register(router chi.Router) {
	router.Get("/{run_id}/rounds/{round}", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	round, err := common.RoundParam(r)
	if err != nil {
		return err
	}
	runID := chi.URLParam(r, "run_id")
	result, err := h.useCase.GetRound(r.Context(), runID, round)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, api.RoundResponse{RunID: runID, Round: common.FromDomainRound(result)})
	return nil
}
