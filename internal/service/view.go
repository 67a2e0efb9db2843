// view.go — состояние одной открытой таблицы: исходные строки,
// варианты фильтров, критерии и вычисленное отфильтрованное представление.
package service

import (
	"sync"
	"time"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/filter"
	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// LoadState — состояние загрузки данных представления.
type LoadState string

// Состояния загрузки: idle → loading → loaded | failed.
const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateFailed  LoadState = "failed"
)

// TableView — открытая таблица ресурсов.
// Отфильтрованные строки пересчитываются после каждого изменения
// исходных строк или критериев и заменяются одним присваиванием.
type TableView struct {
	id       string
	openedAt time.Time

	mu        sync.RWMutex
	state     LoadState
	source    []model.FileRow
	subjects  []string
	fileTypes []string
	criteria  model.FilterCriteria
	filtered  []model.FileRow
}

// ViewSnapshot — согласованный срез состояния представления.
type ViewSnapshot struct {
	ID        string
	State     LoadState
	OpenedAt  time.Time
	Criteria  model.FilterCriteria
	Subjects  []string
	FileTypes []string
	// Total — количество исходных строк
	Total int
	// Rows — отфильтрованные строки
	Rows []model.FileRow
}

// newTableView создаёт представление с начальными критериями.
func newTableView(id string, criteria model.FilterCriteria) *TableView {
	return &TableView{
		id:       id,
		openedAt: time.Now().UTC(),
		state:    StateIdle,
		criteria: criteria,
		filtered: []model.FileRow{},
	}
}

// ID возвращает идентификатор представления.
func (v *TableView) ID() string {
	return v.id
}

// SetFilter меняет одно поле критериев и пересчитывает представление.
func (v *TableView) SetFilter(field model.FilterField, value string) (ViewSnapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	criteria := v.criteria
	if err := criteria.Set(field, value); err != nil {
		return ViewSnapshot{}, err
	}
	v.criteria = criteria
	v.rederive()
	return v.snapshotLocked(), nil
}

// Snapshot возвращает текущее состояние.
func (v *TableView) Snapshot() ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshotLocked()
}

// beginLoad переводит представление в состояние loading.
func (v *TableView) beginLoad() {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()
}

// applyDataset заменяет исходные строки и варианты фильтров одним обновлением.
func (v *TableView) applyDataset(ds *model.Dataset) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.source = ds.Files
	v.subjects = ds.Subjects
	v.fileTypes = ds.FileTypes
	v.state = StateLoaded
	v.rederive()
}

// failLoad фиксирует неудачную загрузку. Ранее показанные строки остаются.
func (v *TableView) failLoad() {
	v.mu.Lock()
	v.state = StateFailed
	v.mu.Unlock()
}

// rederive вызывается под write lock.
func (v *TableView) rederive() {
	v.filtered = filter.DeriveFilteredRows(v.source, v.criteria)
}

// snapshotLocked вызывается под lock. Строки неизменяемы,
// поэтому достаточно копировать заголовки срезов.
func (v *TableView) snapshotLocked() ViewSnapshot {
	return ViewSnapshot{
		ID:        v.id,
		State:     v.state,
		OpenedAt:  v.openedAt,
		Criteria:  v.criteria,
		Subjects:  v.subjects,
		FileTypes: v.fileTypes,
		Total:     len(v.source),
		Rows:      v.filtered,
	}
}
