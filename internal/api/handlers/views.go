// views.go — обработчики /api/v1/views: открытие таблицы, состояние,
// изменение фильтра, постраничные строки, закрытие.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/bigkaa/goartstore/resource-browser/internal/api/errors"
	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
	"github.com/bigkaa/goartstore/resource-browser/internal/service"
)

// maxPageSize — верхняя граница page_size.
const maxPageSize = 500

// mountRequest — тело POST /api/v1/views.
type mountRequest struct {
	Subject string `json:"subject"`
	Major   string `json:"major"`
}

// setFilterRequest — тело PATCH /api/v1/views/{view_id}/filters.
type setFilterRequest struct {
	Field *string `json:"field"`
	Value *string `json:"value"`
}

// viewResponse — состояние таблицы (ViewSnapshot в контракте).
type viewResponse struct {
	ID            string               `json:"id"`
	State         string               `json:"state"`
	OpenedAt      time.Time            `json:"opened_at"`
	Criteria      model.FilterCriteria `json:"criteria"`
	Subjects      []string             `json:"subjects"`
	FileTypes     []string             `json:"file_types"`
	Total         int                  `json:"total"`
	FilteredTotal int                  `json:"filtered_total"`
	Rows          []model.FileRow      `json:"rows"`
}

// rowsPageResponse — страница строк (RowsPage в контракте).
type rowsPageResponse struct {
	Rows       []model.FileRow `json:"rows"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

// MountView — POST /api/v1/views. Тело необязательно.
func (h *APIHandler) MountView(w http.ResponseWriter, r *http.Request) {
	var req mountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.ValidationError(w, "Некорректный JSON в теле запроса")
		return
	}

	view := h.tables.Mount(r.Context(), service.MountParams{
		Subject: req.Subject,
		Major:   req.Major,
	})
	writeJSON(w, http.StatusCreated, toViewResponse(view.Snapshot()))
}

// GetView — GET /api/v1/views/{view_id}.
func (h *APIHandler) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.tables.View(chi.URLParam(r, "view_id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(view.Snapshot()))
}

// SetFilter — PATCH /api/v1/views/{view_id}/filters.
// Пустое value сбрасывает поле.
func (h *APIHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON в теле запроса")
		return
	}
	if req.Field == nil || req.Value == nil {
		apierrors.ValidationError(w, "Поля field и value обязательны")
		return
	}

	snap, err := h.tables.SetFilter(chi.URLParam(r, "view_id"), *req.Field, *req.Value)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewResponse(snap))
}

// ListRows — GET /api/v1/views/{view_id}/rows?page=&page_size=.
func (h *APIHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	var page, pageSize *int
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		apierrors.ValidationError(w, "Некорректный параметр page")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page_size", query, &pageSize); err != nil {
		apierrors.ValidationError(w, "Некорректный параметр page_size")
		return
	}

	number, size, err := h.pagination(page, pageSize)
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	view, err := h.tables.View(chi.URLParam(r, "view_id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	p := service.Paginate(view.Snapshot().Rows, number, size)
	writeJSON(w, http.StatusOK, rowsPageResponse{
		Rows:       p.Rows,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalPages: p.TotalPages,
		Total:      p.TotalRows,
	})
}

// UnmountView — DELETE /api/v1/views/{view_id}.
func (h *APIHandler) UnmountView(w http.ResponseWriter, r *http.Request) {
	if err := h.tables.Unmount(chi.URLParam(r, "view_id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pagination проверяет параметры пагинации и подставляет значения по умолчанию.
func (h *APIHandler) pagination(page, pageSize *int) (number, size int, err error) {
	number, size = 1, h.pageSize
	if page != nil {
		if *page < 1 {
			return 0, 0, errors.New("page должен быть >= 1")
		}
		number = *page
	}
	if pageSize != nil {
		if *pageSize < 1 || *pageSize > maxPageSize {
			return 0, 0, errors.New("page_size должен быть в диапазоне 1-500")
		}
		size = *pageSize
	}
	return number, size, nil
}

// writeServiceError преобразует ошибку сервиса в HTTP-ответ.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrViewNotFound):
		apierrors.NotFound(w, "Таблица не найдена или истекла")
	case errors.Is(err, model.ErrUnknownField):
		apierrors.ValidationError(w, err.Error())
	default:
		h.logger.Error("Ошибка обработки запроса", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Внутренняя ошибка")
	}
}

// toViewResponse конвертирует снимок представления в API-тип.
func toViewResponse(s service.ViewSnapshot) viewResponse {
	subjects := s.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	fileTypes := s.FileTypes
	if fileTypes == nil {
		fileTypes = []string{}
	}
	rows := s.Rows
	if rows == nil {
		rows = []model.FileRow{}
	}
	return viewResponse{
		ID:            s.ID,
		State:         string(s.State),
		OpenedAt:      s.OpenedAt,
		Criteria:      s.Criteria,
		Subjects:      subjects,
		FileTypes:     fileTypes,
		Total:         s.Total,
		FilteredTotal: len(rows),
		Rows:          rows,
	}
}
