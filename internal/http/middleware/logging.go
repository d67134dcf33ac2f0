package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"random-pairs-service/internal/logging"
	"random-pairs-service/internal/metrics"
)

// LoggerMiddleware создаёт middleware для структурированного логирования HTTP запросов.
// Добавляет в контекст request ID, путь, метод и измеряет время выполнения запроса.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Получаем шаблон пути из роутера (например, "/pairings/{run_id}") вместо конкретного пути
		var pathTemplate string
		if rctx := chi.RouteContext(ctx); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				pathTemplate = pattern
			}
		}
		if pathTemplate == "" {
			pathTemplate = r.URL.Path
		}

		metrics.IncRestRequestsTotal(pathTemplate)

		// Берём ID запроса из chi, если RequestID middleware уже его выдал
		requestID := chimw.GetReqID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		slog.InfoContext(ctx, fmt.Sprintf("Start [%s] request processing", requestID))
		start := time.Now()

		// Добавляем метаданные запроса в контекст для последующего логирования
		ctx = logging.WithLogRequestID(ctx, requestID)
		ctx = logging.WithLogRequestPath(ctx, r.URL.Path)
		ctx = logging.WithLogRequestMethod(ctx, r.Method)

		rw := &responseWriter{w, http.StatusOK}
		r = r.WithContext(ctx)

		next.ServeHTTP(rw, r)

		timeServe := time.Since(start)
		ctx = r.Context()
		ctx = logging.WithLogRequestStatus(ctx, rw.statusCode)
		ctx = logging.WithLogRequestDuration(ctx, timeServe.String())

		slog.InfoContext(ctx, fmt.Sprintf("Ended [%s] request processing", requestID))

		metrics.IncRestResponsesDuration(pathTemplate, r.Method, timeServe)
		metrics.IncRestResponsesStatusesTotal(pathTemplate, rw.statusCode)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
