package rosternormalize

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
	"random-pairs-service/internal/pairing"
)

// Handler показывает, каким станет состав перед генерацией.
type Handler struct {
	useCase UseCase
}

// New создаёт новый feature-handler.
func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинт POST /roster/normalize.
func (h *Handler) Register(router chi.Router) {
	router.Post("/normalize", common.WithErrorHandling(h.handle))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) error {
	var req api.NormalizeRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	people, err := h.useCase.NormalizeRoster(r.Context(), common.ToDomainEntries(req.Participants))
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, api.RosterResponse{
		Participants: common.FromDomainParticipants(people),
		CycleLength:  pairing.CycleLength(len(people)),
	})
	return nil
}
