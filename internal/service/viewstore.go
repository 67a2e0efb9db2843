// viewstore.go — хранилище открытых представлений таблицы.
// LRU с TTL поверх hashicorp/golang-lru/v2/expirable: вытеснение или
// истечение TTL закрывает представление.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики хранилища представлений.
var (
	viewLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rb_view_lookups_total",
		Help: "Обращения к открытым представлениям таблицы (hit/miss).",
	}, []string{"result"})
	viewsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rb_views_open",
		Help: "Количество открытых представлений таблицы в памяти.",
	})
)

// ViewStore — in-memory хранилище представлений (per-instance).
type ViewStore struct {
	cache *expirable.LRU[string, *TableView]
}

// NewViewStore создаёт хранилище.
// maxSize — максимальное количество представлений, ttl — время жизни с момента открытия.
// onEvict (может быть nil) вызывается при вытеснении, истечении или удалении.
func NewViewStore(maxSize int, ttl time.Duration, onEvict func(id string)) *ViewStore {
	cache := expirable.NewLRU[string, *TableView](maxSize, func(id string, _ *TableView) {
		viewsOpen.Dec()
		if onEvict != nil {
			onEvict(id)
		}
	}, ttl)
	return &ViewStore{cache: cache}
}

// Get возвращает представление по ID.
func (s *ViewStore) Get(id string) (*TableView, bool) {
	v, ok := s.cache.Get(id)
	if ok {
		viewLookupsTotal.WithLabelValues("hit").Inc()
		return v, true
	}
	viewLookupsTotal.WithLabelValues("miss").Inc()
	return nil, false
}

// Add сохраняет представление.
func (s *ViewStore) Add(v *TableView) {
	if s.cache.Contains(v.ID()) {
		s.cache.Add(v.ID(), v)
		return
	}
	viewsOpen.Inc()
	s.cache.Add(v.ID(), v)
}

// Remove удаляет представление. Возвращает false, если его не было.
func (s *ViewStore) Remove(id string) bool {
	return s.cache.Remove(id)
}

// Len возвращает количество представлений (включая ещё не вычищенные просроченные).
func (s *ViewStore) Len() int {
	return s.cache.Len()
}
