// Пакет catalogfixture — источник данных таблицы из YAML-файла.
// Используется вместо Catalog API при локальной разработке и в демо-стендах
// (RB_CATALOG_FIXTURE). Реализует те же операции, что и catalogclient.Client.
//
// Формат файла:
//
//	files:
//	  - id: 1
//	    name: Midterm Notes
//	    subject: Algebra
//	    type: Notes
//	    uploadDate: "2024-03-01"
//	fileTypes: [Notes, Exam]
//	subjects: [Algebra, Physics]
package catalogfixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// document — структура YAML-файла.
type document struct {
	Files     []map[string]any `yaml:"files"`
	FileTypes []string         `yaml:"fileTypes"`
	Subjects  []string         `yaml:"subjects"`
}

// Source — данные каталога, загруженные из YAML.
type Source struct {
	dataset model.Dataset
}

// Open читает и разбирает YAML-файл.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение fixture %s: %w", path, err)
	}
	src, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return src, nil
}

// Parse разбирает YAML-документ.
func Parse(data []byte) (*Source, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор YAML: %w", err)
	}

	rows := make([]model.FileRow, 0, len(doc.Files))
	for i, f := range doc.Files {
		row, err := toFileRow(f)
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		rows = append(rows, row)
	}

	return &Source{dataset: model.Dataset{
		Files:     rows,
		FileTypes: doc.FileTypes,
		Subjects:  doc.Subjects,
	}}, nil
}

// FetchAllFilesTable возвращает строки таблицы из файла.
func (s *Source) FetchAllFilesTable(ctx context.Context) ([]model.FileRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.FileRow(nil), s.dataset.Files...), nil
}

// FetchFileTypes возвращает типы файлов из файла.
func (s *Source) FetchFileTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.dataset.FileTypes...), nil
}

// GetSubjectsNames возвращает названия дисциплин из файла.
func (s *Source) GetSubjectsNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.dataset.Subjects...), nil
}

// toFileRow приводит YAML-объект к FileRow через тот же JSON-разбор,
// что и ответы Catalog API.
func toFileRow(m map[string]any) (model.FileRow, error) {
	for k, v := range m {
		if t, ok := v.(time.Time); ok {
			m[k] = formatTime(t)
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return model.FileRow{}, err
	}
	var row model.FileRow
	if err := json.Unmarshal(data, &row); err != nil {
		return model.FileRow{}, err
	}
	return row, nil
}

// formatTime — YAML timestamp без времени остаётся датой.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}
