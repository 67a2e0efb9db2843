// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Resource Browser мониторит одну зависимость:
//   - Catalog API — HTTP checker к health endpoint (critical)
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками.
package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// Статусы readiness.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга Catalog API.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения ("resource-browser")
//   - group — имя группы в метриках (RB_DEPHEALTH_GROUP)
//   - catalogURL — базовый URL Catalog API
//   - healthPath — путь health endpoint Catalog API
//   - checkInterval — интервал проверки (RB_DEPHEALTH_CHECK_INTERVAL)
func NewDephealthService(
	serviceID string,
	group string,
	catalogURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, catalogURL, healthPath, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	catalogURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, catalogURL, healthPath, checkInterval,
		logger, dephealth.WithRegisterer(registerer))
}

// newDephealthService — внутренний конструктор.
func newDephealthService(
	serviceID string,
	group string,
	catalogURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	depOpts := []dephealth.DependencyOption{
		dephealth.FromURL(catalogURL),
		dephealth.WithHTTPHealthPath(catalogHealthPath(catalogURL, healthPath)),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if parsed, err := url.Parse(catalogURL); err == nil && parsed.Scheme == "https" {
		depOpts = append(depOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP("catalog-api", depOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (Catalog API)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady реализует handlers.ReadinessChecker.
func (ds *DephealthService) CheckReady() (status, message string) {
	return readinessFromHealth(ds.Health())
}

// readinessFromHealth сводит состояние зависимостей к статусу readiness.
// Пока не выполнено ни одной проверки — degraded.
func readinessFromHealth(health map[string]bool) (status, message string) {
	if len(health) == 0 {
		return statusDegraded, "проверки ещё не выполнялись"
	}
	for name, ok := range health {
		if !ok {
			return statusFail, name + " недоступен"
		}
	}
	return statusOK, ""
}

// catalogHealthPath добавляет health path к префиксу пути Catalog URL.
// http://catalog:8080/api + /health → /api/health
func catalogHealthPath(catalogURL, healthPath string) string {
	if !strings.HasPrefix(healthPath, "/") {
		healthPath = "/" + healthPath
	}
	parsed, err := url.Parse(catalogURL)
	if err != nil {
		return healthPath
	}
	return strings.TrimRight(parsed.Path, "/") + healthPath
}

// StaticChecker — readiness для источника без внешних зависимостей (fixture).
type StaticChecker struct {
	Message string
}

// CheckReady всегда возвращает ok.
func (c StaticChecker) CheckReady() (status, message string) {
	return statusOK, c.Message
}
