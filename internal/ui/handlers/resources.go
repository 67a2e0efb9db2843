// Пакет handlers — HTTP-обработчики страницы ресурсов.
// Файл resources.go — открытие таблицы, изменение фильтров,
// постраничная навигация, закрытие.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
	"github.com/bigkaa/goartstore/resource-browser/internal/service"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/pages"
)

// ResourcesHandler — обработчик страницы ресурсов.
type ResourcesHandler struct {
	tables      *service.TableService
	renderer    *pages.Renderer
	bundle      *i18n.Bundle
	pageSize    int
	dateFilters bool
	logger      *slog.Logger
}

// NewResourcesHandler создаёт обработчик.
// pageSize — строк на странице (RB_UI_PAGE_SIZE), dateFilters — показывать поля дат.
func NewResourcesHandler(
	tables *service.TableService,
	renderer *pages.Renderer,
	bundle *i18n.Bundle,
	pageSize int,
	dateFilters bool,
	logger *slog.Logger,
) *ResourcesHandler {
	return &ResourcesHandler{
		tables:      tables,
		renderer:    renderer,
		bundle:      bundle,
		pageSize:    pageSize,
		dateFilters: dateFilters,
		logger:      logger.With(slog.String("component", "ui.resources")),
	}
}

// Routes регистрирует маршруты /resources.
func (h *ResourcesHandler) Routes(r chi.Router) {
	r.Get("/", h.HandlePage)
	r.Post("/{viewID}/filters", h.HandleSetFilter)
	r.Get("/{viewID}/table", h.HandleTable)
	r.Post("/{viewID}/close", h.HandleClose)
}

// HandlePage обрабатывает GET /resources?subject=&major= — открывает новую таблицу.
// subject задаёт начальный фильтр, major принимается и не используется.
func (h *ResourcesHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view := h.tables.Mount(r.Context(), service.MountParams{
		Subject: query.Get("subject"),
		Major:   query.Get("major"),
	})
	snap := view.Snapshot()
	tr := h.bundle.For(r.Context())

	data := pages.PageData{
		Tr:          tr,
		OtherLang:   otherLang(tr.Lang()),
		ViewID:      snap.ID,
		Criteria:    snap.Criteria,
		Subjects:    snap.Subjects,
		FileTypes:   snap.FileTypes,
		DateFilters: h.dateFilters,
		Table:       h.tableData(tr, snap, 1),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Page(w, data); err != nil {
		h.logger.Error("Ошибка рендеринга страницы ресурсов", slog.String("error", err.Error()))
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}

// HandleSetFilter обрабатывает POST /resources/{viewID}/filters (form: field, value).
// Возвращает фрагмент таблицы с первой страницей.
func (h *ResourcesHandler) HandleSetFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAlert(w, r, http.StatusBadRequest, "error.bad_request")
		return
	}

	snap, err := h.tables.SetFilter(chi.URLParam(r, "viewID"), r.PostForm.Get("field"), r.PostForm.Get("value"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.renderTable(w, r, snap, 1)
}

// HandleTable обрабатывает GET /resources/{viewID}/table?page=N — фрагмент таблицы.
func (h *ResourcesHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	view, err := h.tables.View(chi.URLParam(r, "viewID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.renderTable(w, r, view.Snapshot(), page)
}

// HandleClose обрабатывает POST /resources/{viewID}/close — закрытие таблицы.
// Отвечает 204 даже для уже закрытой таблицы.
func (h *ResourcesHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	if err := h.tables.Unmount(id); err != nil {
		h.logger.Debug("Таблица уже закрыта", slog.String("view_id", id))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourcesHandler) renderTable(w http.ResponseWriter, r *http.Request, snap service.ViewSnapshot, page int) {
	data := h.tableData(h.bundle.For(r.Context()), snap, page)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Table(w, data); err != nil {
		h.logger.Error("Ошибка рендеринга таблицы", slog.String("error", err.Error()))
		http.Error(w, "Ошибка рендеринга таблицы", http.StatusInternalServerError)
	}
}

// tableData нарезает отфильтрованные строки на страницу.
func (h *ResourcesHandler) tableData(tr i18n.Translator, snap service.ViewSnapshot, page int) pages.TableData {
	p := service.Paginate(snap.Rows, page, h.pageSize)
	return pages.TableData{
		Tr:            tr,
		Rows:          p.Rows,
		Page:          p.Number,
		TotalPages:    p.TotalPages,
		HasPrev:       p.HasPrev(),
		HasNext:       p.HasNext(),
		FilteredTotal: p.TotalRows,
		Total:         snap.Total,
	}
}

// handleError показывает ошибку сервиса фрагментом alert.
func (h *ResourcesHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrViewNotFound):
		h.renderAlert(w, r, http.StatusNotFound, "error.view_not_found")
	case errors.Is(err, model.ErrUnknownField):
		h.renderAlert(w, r, http.StatusBadRequest, "error.unknown_field")
	default:
		h.logger.Error("Ошибка обработки запроса", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка", http.StatusInternalServerError)
	}
}

func (h *ResourcesHandler) renderAlert(w http.ResponseWriter, r *http.Request, status int, key string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Alert(w, h.bundle.For(r.Context()).T(key)); err != nil {
		h.logger.Error("Ошибка рендеринга alert", slog.String("error", err.Error()))
	}
}

// otherLang — язык для кнопки переключения.
func otherLang(lang string) string {
	if lang == "es" {
		return "en"
	}
	return "es"
}
