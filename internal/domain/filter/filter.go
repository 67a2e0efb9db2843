// Пакет filter — вычисление отфильтрованного представления таблицы ресурсов.
// DeriveFilteredRows — чистая функция без побочных эффектов: вызывается
// после каждого изменения исходных строк или критериев.
package filter

import (
	"strings"
	"time"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// dateLayouts — форматы дат, принимаемые фильтром. Даты без зоны считаются UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DeriveFilteredRows применяет критерии к исходным строкам.
// Шаги выполняются последовательно, каждый сужает результат предыдущего.
// Пустые критерии строки не исключают. Возвращается новый срез.
func DeriveFilteredRows(rows []model.FileRow, c model.FilterCriteria) []model.FileRow {
	filtered := make([]model.FileRow, 0, len(rows))
	filtered = append(filtered, rows...)

	filtered = byName(filtered, c.Name)
	// Дисциплина и тип сравниваются с именем строки, а не с полями Subject/Type.
	filtered = byName(filtered, c.Subject)
	filtered = byName(filtered, c.Type)

	if c.StartDate != "" {
		filtered = keep(filtered, func(r model.FileRow) bool {
			return compareDates(r.UploadDate, c.StartDate, func(a, b time.Time) bool { return !a.Before(b) })
		})
	}
	if c.EndDate != "" {
		filtered = keep(filtered, func(r model.FileRow) bool {
			return compareDates(r.UploadDate, c.EndDate, func(a, b time.Time) bool { return !a.After(b) })
		})
	}

	return filtered
}

// byName оставляет строки, имя которых содержит needle без учёта регистра.
func byName(rows []model.FileRow, needle string) []model.FileRow {
	if needle == "" {
		return rows
	}
	needle = strings.ToLower(needle)
	return keep(rows, func(r model.FileRow) bool {
		return strings.Contains(strings.ToLower(r.Name), needle)
	})
}

// keep фильтрует срез на месте.
func keep(rows []model.FileRow, pred func(model.FileRow) bool) []model.FileRow {
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// compareDates разбирает обе даты и применяет cmp.
// Некорректная дата с любой стороны — совпадения нет.
func compareDates(value, bound string, cmp func(a, b time.Time) bool) bool {
	v, ok := ParseDate(value)
	if !ok {
		return false
	}
	b, ok := ParseDate(bound)
	if !ok {
		return false
	}
	return cmp(v, b)
}

// ParseDate разбирает дату в одном из поддерживаемых форматов.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
