// Пакет catalogclient — HTTP-клиент Catalog API.
// Читает список файлов для таблицы, типы файлов и названия дисциплин.
// Все три запроса — GET без параметров и тела.
package catalogclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// maxErrorBody — сколько байт тела ответа включать в текст ошибки.
const maxErrorBody = 512

// Paths — пути endpoints Catalog API относительно базового URL.
type Paths struct {
	Files    string
	Types    string
	Subjects string
}

// DefaultPaths — пути по умолчанию.
var DefaultPaths = Paths{
	Files:    "/files/table",
	Types:    "/files/types",
	Subjects: "/subjects/names",
}

// Client — HTTP-клиент Catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	paths      Paths
	logger     *slog.Logger
}

// New создаёт клиент Catalog API.
// baseURL — базовый URL (например, http://catalog-api:8080/api).
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// timeout — таймаут одного HTTP-запроса (RB_CATALOG_TIMEOUT).
func New(
	baseURL string,
	paths Paths,
	caCertPath string,
	timeout time.Duration,
	logger *slog.Logger,
) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата Catalog API: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат Catalog API добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		paths:      withDefaults(paths),
		logger:     logger.With(slog.String("component", "catalog_client")),
	}, nil
}

// FetchAllFilesTable возвращает все строки таблицы ресурсов.
// GET {base}/files/table
func (c *Client) FetchAllFilesTable(ctx context.Context) ([]model.FileRow, error) {
	var rows []model.FileRow
	if err := c.getJSON(ctx, c.paths.Files, &rows); err != nil {
		return nil, fmt.Errorf("FetchAllFilesTable: %w", err)
	}
	return rows, nil
}

// FetchFileTypes возвращает список различных типов файлов.
// GET {base}/files/types
func (c *Client) FetchFileTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.getJSON(ctx, c.paths.Types, &types); err != nil {
		return nil, fmt.Errorf("FetchFileTypes: %w", err)
	}
	return types, nil
}

// GetSubjectsNames возвращает список названий дисциплин.
// GET {base}/subjects/names
func (c *Client) GetSubjectsNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, c.paths.Subjects, &names); err != nil {
		return nil, fmt.Errorf("GetSubjectsNames: %w", err)
	}
	return names, nil
}

// getJSON выполняет GET и декодирует JSON-ответ в dst.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		return fmt.Errorf("запрос к %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("Catalog API вернул статус %d для %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("декодирование ответа %s: %w", path, err)
	}

	c.logger.Debug("Ответ Catalog API получен",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// withDefaults подставляет пути по умолчанию вместо пустых.
func withDefaults(p Paths) Paths {
	if p.Files == "" {
		p.Files = DefaultPaths.Files
	}
	if p.Types == "" {
		p.Types = DefaultPaths.Types
	}
	if p.Subjects == "" {
		p.Subjects = DefaultPaths.Subjects
	}
	return p
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}
