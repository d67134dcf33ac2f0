package pairinggenerate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
	"random-pairs-service/internal/service"
)

// Handler отвечает за HTTP-слой генерации пар.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /pairings/generate.
func (h *Handler) Register(router chi.Router) {
	router.Post("/generate", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req api.GenerateRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	run, err := h.useCase.GeneratePairings(r.Context(), service.GenerateInput{
		Entries: common.ToDomainEntries(req.Participants),
		Rounds:  req.Rounds,
		Seed:    req.Seed,
	})
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, api.RunResponse{Run: common.FromDomainRun(run)})
	return nil
}
