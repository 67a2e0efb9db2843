package pages

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
)

func testTranslator(t *testing.T, lang string) i18n.Translator {
	t.Helper()
	bundle, err := i18n.LoadFromEmbedFS(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("LoadFromEmbedFS: %v", err)
	}
	return bundle.For(i18n.WithLang(context.Background(), lang))
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderer_Table(t *testing.T) {
	r := testRenderer(t)
	var sb strings.Builder

	err := r.Table(&sb, TableData{
		Tr: testTranslator(t, "en"),
		Rows: []model.FileRow{
			{ID: "7", Name: "Lecture <Notes>", Subject: "Physics", Type: "Notes", UploadDate: "2024-01-10T08:00:00Z"},
		},
		Page:          1,
		TotalPages:    2,
		HasNext:       true,
		FilteredTotal: 6,
		Total:         10,
	})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		`data-row-id="7"`,
		`type="checkbox"`,
		"Lecture &lt;Notes&gt;",
		"2024-01-10",
		"6 of 10 resources",
		"Page 1 of 2",
		`data-page="2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("в фрагменте нет %q", want)
		}
	}
	if strings.Contains(out, "T08:00:00Z") {
		t.Error("дата не отформатирована")
	}
}

func TestRenderer_Table_Empty(t *testing.T) {
	r := testRenderer(t)
	var sb strings.Builder

	err := r.Table(&sb, TableData{
		Tr:         testTranslator(t, "es"),
		Page:       1,
		TotalPages: 1,
	})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	out := sb.String()
	if strings.Contains(out, `role="alert"`) {
		t.Error("пустая таблица не должна содержать alert")
	}
	if !strings.Contains(out, "Ningún recurso coincide con los filtros.") {
		t.Error("нет сообщения о пустой таблице")
	}
}

func TestRenderer_Page(t *testing.T) {
	r := testRenderer(t)
	tr := testTranslator(t, "en")

	render := func(dateFilters bool) string {
		var sb strings.Builder
		err := r.Page(&sb, PageData{
			Tr:          tr,
			OtherLang:   "es",
			ViewID:      "view-1",
			Criteria:    model.FilterCriteria{Subject: "Math"},
			Subjects:    []string{"Math", "Physics"},
			FileTypes:   []string{"Notes"},
			DateFilters: dateFilters,
			Table:       TableData{Tr: tr, Page: 1, TotalPages: 1},
		})
		if err != nil {
			t.Fatalf("Page: %v", err)
		}
		return sb.String()
	}

	out := render(false)
	for _, want := range []string{
		`data-view-id="view-1"`,
		`data-filter="subject" value="Math"`,
		`<option value="Physics">`,
		`id="resource-table"`,
		`<html lang="en">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("на странице нет %q", want)
		}
	}
	if strings.Contains(out, `data-filter="startDate"`) {
		t.Error("поля дат не должны отображаться по умолчанию")
	}

	if out := render(true); !strings.Contains(out, `data-filter="startDate"`) {
		t.Error("поля дат должны отображаться при DateFilters")
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-03-01":           "2024-03-01",
		"2024-03-01T10:00:00Z": "2024-03-01",
		"yesterday":            "yesterday",
		"":                     "",
	}
	for in, want := range tests {
		if got := formatDate(in); got != want {
			t.Errorf("formatDate(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}
