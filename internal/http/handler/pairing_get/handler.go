package pairingget

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
)

// Handler отдаёт сохранённый запуск целиком.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт GET /pairings/{run_id}.
func (h *Handler) Register(router chi.Router) {
	router.Get("/{run_id}", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	run, err := h.useCase.GetRun(r.Context(), chi.URLParam(r, "run_id"))
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, api.RunResponse{Run: common.FromDomainRun(run)})
	return nil
}
