package swagger

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec спецификация не является корректным OpenAPI-документом.
var ErrInvalidSpec = errors.New("invalid openapi spec")

const uiHTML = `<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="UTF-8">
  <title>Random Pairs Service · Swagger</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        url: '/swagger/openapi.yml',
        dom_id: '#swagger-ui',
        presets: [
          SwaggerUIBundle.presets.apis,
          SwaggerUIBundle.SwaggerUIStandalonePreset
        ],
        layout: "BaseLayout"
      });
    };
  </script>
</body>
</html>`

// RegisterRoutes подключает эндпоинты Swagger UI.
func RegisterRoutes(mux chi.Router, spec []byte) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(uiHTML))
	})
	mux.HandleFunc("/swagger/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		if len(spec) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write(spec)
	})
}

// ValidateSpec проверяет, что спецификация разбирается как YAML и содержит поля openapi и paths.
func ValidateSpec(spec []byte) error {
	var doc struct {
		OpenAPI string         `yaml:"openapi"`
		Paths   map[string]any `yaml:"paths"`
	}
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if doc.OpenAPI == "" || len(doc.Paths) == 0 {
		return fmt.Errorf("%w: openapi version or paths missing", ErrInvalidSpec)
	}
	return nil
}
