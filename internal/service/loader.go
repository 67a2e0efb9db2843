// loader.go — загрузка данных таблицы из Catalog API.
// Три независимых запроса выполняются параллельно; ошибка любого из них
// отменяет остальные и проваливает загрузку целиком.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// ErrDataLoad — не удалось загрузить данные таблицы.
var ErrDataLoad = errors.New("ошибка загрузки данных таблицы")

// Prometheus-метрики загрузки.
var (
	dataLoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rb_data_load_total",
		Help: "Количество загрузок данных таблицы из Catalog API.",
	}, []string{"result"})
	dataLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rb_data_load_duration_seconds",
		Help:    "Длительность загрузки данных таблицы.",
		Buckets: prometheus.DefBuckets,
	})
)

// Catalog — операции Catalog API, нужные таблице.
// Реализуется catalogclient.Client и catalogfixture.Source.
type Catalog interface {
	FetchAllFilesTable(ctx context.Context) ([]model.FileRow, error)
	FetchFileTypes(ctx context.Context) ([]string, error)
	GetSubjectsNames(ctx context.Context) ([]string, error)
}

// Loader — загрузчик данных таблицы.
type Loader struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewLoader создаёт загрузчик.
func NewLoader(catalog Catalog, logger *slog.Logger) *Loader {
	return &Loader{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "loader")),
	}
}

// Load запрашивает файлы, типы файлов и дисциплины.
// Возвращает ошибку, оборачивающую ErrDataLoad и причину.
func (l *Loader) Load(ctx context.Context) (*model.Dataset, error) {
	start := time.Now()
	var ds model.Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		files, err := l.catalog.FetchAllFilesTable(gctx)
		if err != nil {
			return err
		}
		ds.Files = files
		return nil
	})
	g.Go(func() error {
		types, err := l.catalog.FetchFileTypes(gctx)
		if err != nil {
			return err
		}
		ds.FileTypes = types
		return nil
	})
	g.Go(func() error {
		subjects, err := l.catalog.GetSubjectsNames(gctx)
		if err != nil {
			return err
		}
		ds.Subjects = subjects
		return nil
	})

	err := g.Wait()
	duration := time.Since(start)
	dataLoadDuration.Observe(duration.Seconds())

	if err != nil {
		dataLoadTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}

	dataLoadTotal.WithLabelValues("ok").Inc()
	l.logger.Debug("Данные таблицы загружены",
		slog.Int("files", len(ds.Files)),
		slog.Int("file_types", len(ds.FileTypes)),
		slog.Int("subjects", len(ds.Subjects)),
		slog.Duration("duration", duration),
	)
	return &ds, nil
}
