package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"random-pairs-service/internal/api"
	"random-pairs-service/internal/http/handler/common"
	pairinggenerate "random-pairs-service/internal/http/handler/pairing_generate"
	pairingget "random-pairs-service/internal/http/handler/pairing_get"
	pairingnotify "random-pairs-service/internal/http/handler/pairing_notify"
	pairinground "random-pairs-service/internal/http/handler/pairing_round"
	rosternormalize "random-pairs-service/internal/http/handler/roster_normalize"
	"random-pairs-service/internal/http/middleware"
	"random-pairs-service/internal/http/swagger"
	"random-pairs-service/internal/service"
)

// Handler агрегирует HTTP-эндпоинты.
type Handler struct {
	service     *service.Service
	swaggerSpec []byte
}

func New(service *service.Service, spec []byte) *Handler {
	return &Handler{service: service, swaggerSpec: spec}
}

// Router возвращает готовый chi.Router со всеми зарегистрированными маршрутами и middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Middleware применяются в порядке объявления
	r.Use(chimw.RequestID)              // Добавляет уникальный ID каждому запросу
	r.Use(chimw.RealIP)                 // Определяет реальный IP клиента
	r.Use(middleware.PanicMiddleware)   // Перехватывает паники
	r.Use(middleware.LoggerMiddleware)  // Логирует все запросы
	r.Use(middleware.MetricsMiddleware) // Собирает метрики Prometheus
	swagger.RegisterRoutes(r, h.swaggerSpec)

	// Health check эндпоинт для проверки доступности сервиса
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.HealthCheck(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.RespondJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
	})

	// Prometheus metrics endpoint для сбора метрик
	r.Handle("/metrics", promhttp.Handler())

	h.registerPairingRoutes(r)
	h.registerRosterRoutes(r)

	return r
}

func (h *Handler) registerPairingRoutes(r chi.Router) {
	r.Route("/pairings", func(router chi.Router) {
		pairinggenerate.New(h.service).Register(router)
		pairingget.New(h.service).Register(router)
		pairinground.New(h.service).Register(router)
		pairingnotify.New(h.service).Register(router)
	})
}

func (h *Handler) registerRosterRoutes(r chi.Router) {
	r.Route("/roster", func(router chi.Router) {
		rosternormalize.New(h.service).Register(router)
	})
}
