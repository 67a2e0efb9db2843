// Пакет server — HTTP-сервер Resource Browser с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	apihandlers "github.com/bigkaa/goartstore/resource-browser/internal/api/handlers"
	"github.com/bigkaa/goartstore/resource-browser/internal/config"
	uihandlers "github.com/bigkaa/goartstore/resource-browser/internal/ui/handlers"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
	"github.com/bigkaa/goartstore/resource-browser/internal/ui/static"
)

// Handlers — обработчики, монтируемые сервером.
type Handlers struct {
	Health    *apihandlers.HealthHandler
	API       *apihandlers.APIHandler
	Resources *uihandlers.ResourcesHandler
}

// Server — HTTP-сервер Resource Browser.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
// middlewares (metrics, logging) применяются ко всем маршрутам в порядке переданного среза.
func New(cfg *config.Config, logger *slog.Logger, h Handlers, middlewares ...func(http.Handler) http.Handler) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(h, middlewares...),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает chi router.
//
//	/health/live, /health/ready, /metrics — health
//	/api/v1/...                           — JSON API
//	/resources/...                        — страница ресурсов (i18n)
//	/static/*                             — встроенные CSS/JS
func NewRouter(h Handlers, middlewares ...func(http.Handler) http.Handler) http.Handler {
	router := chi.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}

	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)

	router.Route("/api/v1", h.API.Routes)

	router.Group(func(r chi.Router) {
		r.Use(i18n.Middleware())
		r.Route("/resources", h.Resources.Routes)
		r.Post("/set-language", uihandlers.HandleSetLanguage)
	})

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/resources", http.StatusFound)
	})

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
