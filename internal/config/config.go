// Пакет config — загрузка и валидация конфигурации Resource Browser
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Resource Browser.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (по умолчанию 8040)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// --- Catalog API ---

	// Базовый URL Catalog API (файлы, типы, дисциплины)
	CatalogURL string
	// Таймаут одного запроса к Catalog API
	CatalogTimeout time.Duration
	// Путь к CA-сертификату для TLS к Catalog API (опционально)
	CatalogCACertPath string
	// Пути endpoints относительно CatalogURL
	CatalogFilesPath    string
	CatalogTypesPath    string
	CatalogSubjectsPath string
	// Путь health endpoint Catalog API (для topologymetrics)
	CatalogHealthPath string
	// YAML-файл с данными вместо Catalog API (локальная разработка)
	CatalogFixturePath string

	// --- Представления таблицы ---

	// Максимальное количество открытых представлений в памяти
	ViewCacheSize int
	// Время жизни представления с момента открытия
	ViewTTL time.Duration

	// --- UI ---

	// Размер страницы таблицы
	UIPageSize int
	// Показывать поля фильтра по датам
	UIDateFilters bool

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// RB_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("RB_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("RB_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("RB_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// RB_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("RB_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("RB_LOG_LEVEL: %w", err)
	}

	// RB_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("RB_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("RB_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("RB_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("RB_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("RB_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Catalog API ---

	// RB_CATALOG_FIXTURE — YAML-файл вместо Catalog API (опционально)
	cfg.CatalogFixturePath = getEnvDefault("RB_CATALOG_FIXTURE", "")

	// RB_CATALOG_URL — обязателен, если не задан RB_CATALOG_FIXTURE
	if cfg.CatalogFixturePath == "" {
		cfg.CatalogURL, err = getEnvRequired("RB_CATALOG_URL")
		if err != nil {
			return nil, fmt.Errorf("%w (или задайте RB_CATALOG_FIXTURE)", err)
		}
	} else {
		cfg.CatalogURL = getEnvDefault("RB_CATALOG_URL", "")
	}
	cfg.CatalogURL = strings.TrimRight(cfg.CatalogURL, "/")
	if cfg.CatalogURL != "" && !strings.HasPrefix(cfg.CatalogURL, "http://") && !strings.HasPrefix(cfg.CatalogURL, "https://") {
		return nil, fmt.Errorf("RB_CATALOG_URL: ожидается http:// или https:// URL, получено %q", cfg.CatalogURL)
	}

	// RB_CATALOG_TIMEOUT — таймаут запроса к Catalog API (по умолчанию 10s)
	cfg.CatalogTimeout, err = getEnvDurationPositive("RB_CATALOG_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_CATALOG_TIMEOUT: %w", err)
	}

	cfg.CatalogCACertPath = getEnvDefault("RB_CATALOG_CA_CERT_PATH", "")
	cfg.CatalogFilesPath = getEnvDefault("RB_CATALOG_FILES_PATH", "/files/table")
	cfg.CatalogTypesPath = getEnvDefault("RB_CATALOG_TYPES_PATH", "/files/types")
	cfg.CatalogSubjectsPath = getEnvDefault("RB_CATALOG_SUBJECTS_PATH", "/subjects/names")
	cfg.CatalogHealthPath = getEnvDefault("RB_CATALOG_HEALTH_PATH", "/health")

	// --- Представления таблицы ---

	// RB_VIEW_CACHE_SIZE — количество представлений в памяти (по умолчанию 1000)
	cfg.ViewCacheSize, err = getEnvInt("RB_VIEW_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("RB_VIEW_CACHE_SIZE: %w", err)
	}
	if cfg.ViewCacheSize < 1 || cfg.ViewCacheSize > 100000 {
		return nil, fmt.Errorf("RB_VIEW_CACHE_SIZE: значение %d вне допустимого диапазона 1-100000", cfg.ViewCacheSize)
	}

	// RB_VIEW_TTL — время жизни представления (по умолчанию 30m)
	cfg.ViewTTL, err = getEnvDurationPositive("RB_VIEW_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("RB_VIEW_TTL: %w", err)
	}

	// --- UI ---

	// RB_UI_PAGE_SIZE — размер страницы таблицы (по умолчанию 5)
	cfg.UIPageSize, err = getEnvInt("RB_UI_PAGE_SIZE", 5)
	if err != nil {
		return nil, fmt.Errorf("RB_UI_PAGE_SIZE: %w", err)
	}
	if cfg.UIPageSize < 1 || cfg.UIPageSize > 500 {
		return nil, fmt.Errorf("RB_UI_PAGE_SIZE: значение %d вне допустимого диапазона 1-500", cfg.UIPageSize)
	}

	// RB_UI_DATE_FILTERS — показывать фильтр по датам (по умолчанию false)
	cfg.UIDateFilters, err = getEnvBool("RB_UI_DATE_FILTERS", false)
	if err != nil {
		return nil, fmt.Errorf("RB_UI_DATE_FILTERS: %w", err)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("RB_DEPHEALTH_GROUP", "resource-browser")
	cfg.DephealthCheckInterval, err = getEnvDurationPositive("RB_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// RB_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("RB_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("RB_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// UsesFixture возвращает true, если данные берутся из YAML-файла.
func (c *Config) UsesFixture() bool {
	return c.CatalogFixturePath != ""
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationPositive — как getEnvDuration, но значение должно быть > 0.
func getEnvDurationPositive(key string, defaultVal time.Duration) (time.Duration, error) {
	d, err := getEnvDuration(key, defaultVal)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
