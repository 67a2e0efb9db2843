package catalogclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockCatalog создаёт mock HTTP-сервер Catalog API.
func setupMockCatalog(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// catalogHandler отвечает фиксированными данными на три endpoint.
func catalogHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("метод = %s, ожидался GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/files/table":
			_, _ = w.Write([]byte(`[
				{"id": 1, "name": "Midterm Notes", "subject": "Algebra", "type": "Notes", "uploadDate": "2024-03-01", "url": "/f/1"},
				{"id": "2", "name": "Syllabus", "subject": "Physics", "type": "Program", "uploadDate": "2024-01-10"}
			]`))
		case "/api/files/types":
			_, _ = w.Write([]byte(`["Notes","Program","Exam"]`))
		case "/api/subjects/names":
			_, _ = w.Write([]byte(`["Algebra","Physics"]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(baseURL, Paths{}, "", 2*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// TestClient_FetchAllFilesTable проверяет получение строк таблицы.
func TestClient_FetchAllFilesTable(t *testing.T) {
	server := setupMockCatalog(t, catalogHandler(t))
	client := newTestClient(t, server.URL+"/api/")

	rows, err := client.FetchAllFilesTable(context.Background())
	if err != nil {
		t.Fatalf("FetchAllFilesTable ошибка: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, ожидалось 2", len(rows))
	}
	if rows[0].ID != "1" || rows[0].Name != "Midterm Notes" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].Extra["url"] != "/f/1" {
		t.Errorf("rows[0].Extra[url] = %v, ожидалось /f/1", rows[0].Extra["url"])
	}
	if rows[1].ID != "2" || rows[1].UploadDate != "2024-01-10" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

// TestClient_FetchFileTypes проверяет получение типов файлов.
func TestClient_FetchFileTypes(t *testing.T) {
	server := setupMockCatalog(t, catalogHandler(t))
	client := newTestClient(t, server.URL+"/api")

	types, err := client.FetchFileTypes(context.Background())
	if err != nil {
		t.Fatalf("FetchFileTypes ошибка: %v", err)
	}
	if strings.Join(types, ",") != "Notes,Program,Exam" {
		t.Errorf("types = %v", types)
	}
}

// TestClient_GetSubjectsNames проверяет получение названий дисциплин.
func TestClient_GetSubjectsNames(t *testing.T) {
	server := setupMockCatalog(t, catalogHandler(t))
	client := newTestClient(t, server.URL+"/api")

	names, err := client.GetSubjectsNames(context.Background())
	if err != nil {
		t.Fatalf("GetSubjectsNames ошибка: %v", err)
	}
	if strings.Join(names, ",") != "Algebra,Physics" {
		t.Errorf("names = %v", names)
	}
}

// TestClient_CustomPaths проверяет переопределение путей endpoints.
func TestClient_CustomPaths(t *testing.T) {
	server := setupMockCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/types" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`["Exam"]`))
	})

	client, err := New(server.URL, Paths{Types: "/v2/types"}, "", time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	types, err := client.FetchFileTypes(context.Background())
	if err != nil {
		t.Fatalf("FetchFileTypes ошибка: %v", err)
	}
	if len(types) != 1 || types[0] != "Exam" {
		t.Errorf("types = %v", types)
	}
}

// TestClient_ErrorStatus проверяет обработку не-200 ответа.
func TestClient_ErrorStatus(t *testing.T) {
	server := setupMockCatalog(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("service unavailable"))
	})
	client := newTestClient(t, server.URL)

	_, err := client.FetchAllFilesTable(context.Background())
	if err == nil {
		t.Fatal("ожидалась ошибка, получен nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("ошибка %q должна содержать статус 503", err)
	}
	if !strings.Contains(err.Error(), "service unavailable") {
		t.Errorf("ошибка %q должна содержать тело ответа", err)
	}
}

// TestClient_InvalidJSON проверяет ошибку декодирования.
func TestClient_InvalidJSON(t *testing.T) {
	server := setupMockCatalog(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	client := newTestClient(t, server.URL)

	if _, err := client.GetSubjectsNames(context.Background()); err == nil {
		t.Fatal("ожидалась ошибка декодирования")
	}
}

// TestClient_ContextCancelled проверяет отмену запроса через контекст.
func TestClient_ContextCancelled(t *testing.T) {
	server := setupMockCatalog(t, catalogHandler(t))
	client := newTestClient(t, server.URL+"/api")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchFileTypes(ctx); err == nil {
		t.Fatal("ожидалась ошибка для отменённого контекста")
	}
}

// TestNew_BadCACert проверяет ошибку при отсутствующем CA-файле.
func TestNew_BadCACert(t *testing.T) {
	_, err := New("https://catalog", Paths{}, "/nonexistent/ca.pem", time.Second, testLogger())
	if err == nil {
		t.Fatal("ожидалась ошибка для несуществующего CA-сертификата")
	}
}
