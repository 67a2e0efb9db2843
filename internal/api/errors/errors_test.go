package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"validation", func(w http.ResponseWriter) { ValidationError(w, "плохо") }, http.StatusBadRequest, CodeValidationError},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "нет") }, http.StatusNotFound, CodeNotFound},
		{"catalog", func(w http.ResponseWriter) { CatalogUnavailable(w, "недоступен") }, http.StatusBadGateway, CodeCatalogUnavailable},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "сбой") }, http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("статус = %d, ожидался %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, ожидался application/json", ct)
			}

			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("ошибка декодирования: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, ожидался %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message == "" {
				t.Error("message пустой")
			}
		})
	}
}
