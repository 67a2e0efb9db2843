package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

var errCatalogDown = errors.New("catalog недоступен")

// fakeCatalog — подменный Catalog API для тестов.
type fakeCatalog struct {
	files     []model.FileRow
	fileTypes []string
	subjects  []string

	filesErr    error
	typesErr    error
	subjectsErr error

	calls atomic.Int32
}

func (f *fakeCatalog) FetchAllFilesTable(ctx context.Context) ([]model.FileRow, error) {
	f.calls.Add(1)
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return f.files, ctx.Err()
}

func (f *fakeCatalog) FetchFileTypes(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.fileTypes, ctx.Err()
}

func (f *fakeCatalog) GetSubjectsNames(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	if f.subjectsErr != nil {
		return nil, f.subjectsErr
	}
	return f.subjects, ctx.Err()
}

func newTestCatalog() *fakeCatalog {
	return &fakeCatalog{
		files: []model.FileRow{
			{ID: "1", Name: "Lecture Notes", Subject: "Physics", Type: "Notes", UploadDate: "2024-01-10"},
			{ID: "2", Name: "Exam", Subject: "Math", Type: "Exam", UploadDate: "2024-03-05"},
			{ID: "3", Name: "notes-final", Subject: "Math", Type: "Notes", UploadDate: "2024-02-20"},
		},
		fileTypes: []string{"Notes", "Exam"},
		subjects:  []string{"Physics", "Math"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
