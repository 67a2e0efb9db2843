package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

func newTestTableService(catalog Catalog) *TableService {
	store := NewViewStore(10, time.Minute, nil)
	return NewTableService(NewLoader(catalog, discardLogger()), store, discardLogger())
}

func TestTableService_Mount(t *testing.T) {
	svc := newTestTableService(newTestCatalog())

	view := svc.Mount(context.Background(), MountParams{})
	snap := view.Snapshot()

	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, 3, snap.Total)
	assert.Len(t, snap.Rows, 3)
	assert.Equal(t, []string{"Physics", "Math"}, snap.Subjects)
	assert.Equal(t, []string{"Notes", "Exam"}, snap.FileTypes)
	assert.True(t, snap.Criteria.IsEmpty())

	got, err := svc.View(view.ID())
	require.NoError(t, err)
	assert.Same(t, view, got)
}

// Параметр subject задаёт начальный фильтр; фильтр сравнивается с именем строки.
func TestTableService_Mount_SubjectSeedsFilter(t *testing.T) {
	svc := newTestTableService(newTestCatalog())

	view := svc.Mount(context.Background(), MountParams{Subject: "Math", Major: "CS"})
	snap := view.Snapshot()

	assert.Equal(t, "Math", snap.Criteria.Subject)
	assert.Empty(t, snap.Rows)
	assert.Equal(t, 3, snap.Total)
}

// Ошибка загрузки не выходит наружу: строки остаются пустыми.
func TestTableService_Mount_LoadFailure(t *testing.T) {
	catalog := newTestCatalog()
	catalog.typesErr = errCatalogDown
	svc := newTestTableService(catalog)

	view := svc.Mount(context.Background(), MountParams{})
	snap := view.Snapshot()

	assert.Equal(t, StateFailed, snap.State)
	assert.Empty(t, snap.Rows)
	assert.Zero(t, snap.Total)

	// Фильтры продолжают работать на пустом наборе
	snap, err := svc.SetFilter(view.ID(), "name", "notes")
	require.NoError(t, err)
	assert.Empty(t, snap.Rows)
	assert.Equal(t, "notes", snap.Criteria.Name)
}

func TestTableService_SetFilter(t *testing.T) {
	svc := newTestTableService(newTestCatalog())
	view := svc.Mount(context.Background(), MountParams{})

	snap, err := svc.SetFilter(view.ID(), "name", "notes")
	require.NoError(t, err)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, "1", snap.Rows[0].ID)
	assert.Equal(t, "3", snap.Rows[1].ID)

	snap, err = svc.SetFilter(view.ID(), "startDate", "2024-02-01")
	require.NoError(t, err)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "3", snap.Rows[0].ID)

	// Сброс полей возвращает все строки
	_, err = svc.SetFilter(view.ID(), "name", "")
	require.NoError(t, err)
	snap, err = svc.SetFilter(view.ID(), "startDate", "")
	require.NoError(t, err)
	assert.Len(t, snap.Rows, 3)
}

func TestTableService_SetFilter_UnknownField(t *testing.T) {
	svc := newTestTableService(newTestCatalog())
	view := svc.Mount(context.Background(), MountParams{})

	_, err := svc.SetFilter(view.ID(), "author", "x")
	assert.ErrorIs(t, err, model.ErrUnknownField)

	// Состояние не изменилось
	assert.Len(t, view.Snapshot().Rows, 3)
}

func TestTableService_SetFilter_UnknownView(t *testing.T) {
	svc := newTestTableService(newTestCatalog())

	_, err := svc.SetFilter("missing", "name", "x")
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestTableService_Unmount(t *testing.T) {
	svc := newTestTableService(newTestCatalog())
	view := svc.Mount(context.Background(), MountParams{})

	require.NoError(t, svc.Unmount(view.ID()))

	_, err := svc.View(view.ID())
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.ErrorIs(t, svc.Unmount(view.ID()), ErrViewNotFound)
}
