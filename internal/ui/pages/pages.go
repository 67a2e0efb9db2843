// Пакет pages — HTML-шаблоны страницы ресурсов (html/template, go:embed).
// "page" — полная страница, "table" — фрагмент таблицы для замены
// после изменения фильтра или страницы, "alert" — сообщение об ошибке.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/filter"
	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData — данные полной страницы.
type PageData struct {
	Tr          i18n.Translator
	OtherLang   string
	ViewID      string
	Criteria    model.FilterCriteria
	Subjects    []string
	FileTypes   []string
	DateFilters bool
	Table       TableData
}

// TableData — данные фрагмента таблицы.
type TableData struct {
	Tr            i18n.Translator
	Rows          []model.FileRow
	Page          int
	TotalPages    int
	HasPrev       bool
	HasNext       bool
	FilteredTotal int
	Total         int
}

// Renderer — набор разобранных шаблонов.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает встроенные шаблоны.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("разбор шаблонов: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page рендерит полную страницу.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.render(w, "page", data)
}

// Table рендерит фрагмент таблицы.
func (r *Renderer) Table(w io.Writer, data TableData) error {
	return r.render(w, "table", data)
}

// Alert рендерит сообщение об ошибке.
func (r *Renderer) Alert(w io.Writer, message string) error {
	return r.render(w, "alert", message)
}

// render выполняет шаблон в буфер: при ошибке в w ничего не пишется.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("рендеринг %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"formatDate": formatDate,
	}
}

// formatDate показывает дату загрузки как YYYY-MM-DD; неразборчивое значение — как есть.
func formatDate(raw string) string {
	t, ok := filter.ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format("2006-01-02")
}
