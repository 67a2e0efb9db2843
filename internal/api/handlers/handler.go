// handler.go — обработчик JSON API открытых таблиц ресурсов.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/resource-browser/internal/service"
)

// APIHandler — обработчик JSON API Resource Browser.
type APIHandler struct {
	tables      *service.TableService
	pageSize    int
	openapiJSON []byte
	logger      *slog.Logger
}

// NewAPIHandler создаёт обработчик API.
// pageSize — размер страницы /rows по умолчанию, openapiJSON — контракт для /api/v1/openapi.json.
func NewAPIHandler(
	tables *service.TableService,
	pageSize int,
	openapiJSON []byte,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		tables:      tables,
		pageSize:    pageSize,
		openapiJSON: openapiJSON,
		logger:      logger.With(slog.String("component", "api_handler")),
	}
}

// Routes регистрирует маршруты /api/v1.
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/openapi.json", h.GetOpenAPI)
	r.Route("/views", func(r chi.Router) {
		r.Post("/", h.MountView)
		r.Get("/{view_id}", h.GetView)
		r.Delete("/{view_id}", h.UnmountView)
		r.Patch("/{view_id}/filters", h.SetFilter)
		r.Get("/{view_id}/rows", h.ListRows)
	})
}

// GetOpenAPI — встроенный OpenAPI-контракт.
func (h *APIHandler) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.openapiJSON)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
