// table.go — сервис таблицы ресурсов: открытие представления с загрузкой
// данных, изменение фильтров, закрытие.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// ErrViewNotFound — представление не найдено (закрыто или истекло).
var ErrViewNotFound = errors.New("представление таблицы не найдено")

// MountParams — параметры открытия таблицы (из query string страницы).
type MountParams struct {
	// Subject — начальное значение фильтра по дисциплине
	Subject string
	// Major — направление; принимается, но не используется
	Major string
}

// TableService — сервис открытых таблиц ресурсов.
type TableService struct {
	loader *Loader
	store  *ViewStore
	logger *slog.Logger
}

// NewTableService создаёт сервис.
func NewTableService(loader *Loader, store *ViewStore, logger *slog.Logger) *TableService {
	return &TableService{
		loader: loader,
		store:  store,
		logger: logger.With(slog.String("component", "table_service")),
	}
}

// Mount открывает новое представление и один раз загружает в него данные.
// Ошибка загрузки логируется и не возвращается: представление остаётся
// в состоянии failed с пустыми строками.
func (s *TableService) Mount(ctx context.Context, params MountParams) *TableView {
	criteria := model.FilterCriteria{Subject: params.Subject}
	view := newTableView(uuid.NewString(), criteria)
	s.store.Add(view)

	s.logger.Info("Таблица открыта",
		slog.String("view_id", view.ID()),
		slog.String("subject", params.Subject),
		slog.String("major", params.Major),
	)

	s.load(ctx, view)
	return view
}

// load выполняет загрузку данных в представление.
func (s *TableService) load(ctx context.Context, view *TableView) {
	view.beginLoad()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		view.failLoad()
		s.logger.Error("Ошибка загрузки данных таблицы",
			slog.String("view_id", view.ID()),
			slog.String("error", err.Error()),
		)
		return
	}

	view.applyDataset(ds)
}

// View возвращает открытое представление.
func (s *TableService) View(id string) (*TableView, error) {
	view, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return view, nil
}

// SetFilter меняет одно поле фильтра представления.
// Неизвестное поле — ошибка, оборачивающая model.ErrUnknownField.
func (s *TableService) SetFilter(id, field, value string) (ViewSnapshot, error) {
	f, err := model.ParseFilterField(field)
	if err != nil {
		return ViewSnapshot{}, err
	}

	view, err := s.View(id)
	if err != nil {
		return ViewSnapshot{}, err
	}

	snap, err := view.SetFilter(f, value)
	if err != nil {
		return ViewSnapshot{}, err
	}

	s.logger.Debug("Фильтр изменён",
		slog.String("view_id", id),
		slog.String("field", string(f)),
		slog.Int("rows", len(snap.Rows)),
	)
	return snap, nil
}

// Unmount закрывает представление.
func (s *TableService) Unmount(id string) error {
	if !s.store.Remove(id) {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return nil
}

// LogEvicted — callback хранилища: представление закрыто.
func LogEvicted(logger *slog.Logger) func(id string) {
	return func(id string) {
		logger.Info("Таблица закрыта", slog.String("view_id", id))
	}
}
