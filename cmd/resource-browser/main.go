// main.go — точка входа Resource Browser.
// Инициализация: config → logger → источник каталога → сервисы →
// шаблоны и i18n → мониторинг зависимостей → HTTP-сервер.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/bigkaa/goartstore/resource-browser/internal/api/apispec"
	apihandlers "github.com/bigkaa/goartstore/resource-browser/internal/api/handlers"
	"github.com/bigkaa/goartstore/resource-browser/internal/api/middleware"
	"github.com/bigkaa/goartstore/resource-browser/internal/catalogclient"
	"github.com/bigkaa/goartstore/resource-browser/internal/catalogfixture"
	"github.com/bigkaa/goartstore/resource-browser/internal/config"
	"github.com/bigkaa/goartstore/resource-browser/internal/server"
	"github.com/bigkaa/goartstore/resource-browser/internal/service"
	uihandlers "github.com/bigkaa/goartstore/resource-browser/internal/ui/handlers"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/pages"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Resource Browser запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Источник данных: YAML fixture или Catalog API
	var (
		catalog service.Catalog
		ready   apihandlers.ReadinessChecker
		dephSvc *service.DephealthService
	)
	if cfg.UsesFixture() {
		src, err := catalogfixture.Open(cfg.CatalogFixturePath)
		if err != nil {
			logger.Error("Ошибка загрузки fixture", slog.String("error", err.Error()))
			os.Exit(1)
		}
		catalog = src
		ready = service.StaticChecker{Message: "fixture"}
		logger.Info("Источник данных — YAML fixture", slog.String("path", cfg.CatalogFixturePath))
	} else {
		client, err := catalogclient.New(
			cfg.CatalogURL,
			catalogclient.Paths{
				Files:    cfg.CatalogFilesPath,
				Types:    cfg.CatalogTypesPath,
				Subjects: cfg.CatalogSubjectsPath,
			},
			cfg.CatalogCACertPath,
			cfg.CatalogTimeout,
			logger,
		)
		if err != nil {
			logger.Error("Ошибка создания Catalog клиента", slog.String("error", err.Error()))
			os.Exit(1)
		}
		catalog = client

		// 4. topologymetrics: мониторинг Catalog API
		dephSvc, err = service.NewDephealthService(
			"resource-browser",
			cfg.DephealthGroup,
			cfg.CatalogURL,
			cfg.CatalogHealthPath,
			cfg.DephealthCheckInterval,
			logger,
		)
		if err != nil {
			logger.Error("Ошибка создания dephealth сервиса", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := dephSvc.Start(ctx); err != nil {
			logger.Error("Ошибка запуска dephealth", slog.String("error", err.Error()))
			os.Exit(1)
		}
		ready = dephSvc
		logger.Info("Источник данных — Catalog API", slog.String("url", cfg.CatalogURL))
	}

	// 5. Сервисы таблицы
	loader := service.NewLoader(catalog, logger)
	store := service.NewViewStore(cfg.ViewCacheSize, cfg.ViewTTL, service.LogEvicted(logger))
	tables := service.NewTableService(loader, store, logger)

	// 6. OpenAPI-контракт
	doc, err := apispec.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI", slog.String("error", err.Error()))
		os.Exit(1)
	}
	openapiJSON, err := apispec.JSON(doc)
	if err != nil {
		logger.Error("Ошибка сериализации OpenAPI", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Шаблоны и переводы
	renderer, err := pages.NewRenderer()
	if err != nil {
		logger.Error("Ошибка разбора шаблонов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	bundle, err := i18n.LoadFromEmbedFS(logger)
	if err != nil {
		logger.Error("Ошибка загрузки i18n", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 8. HTTP-сервер
	srv := server.New(cfg, logger,
		server.Handlers{
			Health:    apihandlers.NewHealthHandler(ready),
			API:       apihandlers.NewAPIHandler(tables, cfg.UIPageSize, openapiJSON, logger),
			Resources: uihandlers.NewResourcesHandler(tables, renderer, bundle, cfg.UIPageSize, cfg.UIDateFilters, logger),
		},
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	// 9. Запуск сервера (блокирующий вызов с graceful shutdown)
	runErr := srv.Run()

	if dephSvc != nil {
		dephSvc.Stop()
	}
	if runErr != nil {
		logger.Error("Ошибка сервера", slog.String("error", runErr.Error()))
		cancel()
		log.Fatalf("Сервер завершился с ошибкой: %v", runErr)
	}

	logger.Info("Resource Browser остановлен")
}
