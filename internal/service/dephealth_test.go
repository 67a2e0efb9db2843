package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewDephealthService проверяет создание сервиса с изолированным registry.
func TestNewDephealthService(t *testing.T) {
	reg := prometheus.NewRegistry()

	ds, err := NewDephealthServiceWithRegisterer(
		"resource-browser",
		"test-group",
		"http://catalog:8080/api",
		"/health",
		15*time.Second,
		discardLogger(),
		reg,
	)
	if err != nil {
		t.Fatalf("NewDephealthServiceWithRegisterer: %v", err)
	}
	if ds == nil {
		t.Fatal("ожидался непустой сервис")
	}
}

func TestCatalogHealthPath(t *testing.T) {
	tests := []struct {
		url, path, want string
	}{
		{"http://catalog:8080", "/health", "/health"},
		{"http://catalog:8080/api", "/health", "/api/health"},
		{"http://catalog:8080/api/", "health/ready", "/api/health/ready"},
	}
	for _, tt := range tests {
		if got := catalogHealthPath(tt.url, tt.path); got != tt.want {
			t.Errorf("catalogHealthPath(%q, %q) = %q, ожидалось %q", tt.url, tt.path, got, tt.want)
		}
	}
}

func TestReadinessFromHealth(t *testing.T) {
	tests := []struct {
		name   string
		health map[string]bool
		want   string
	}{
		{"нет проверок", nil, statusDegraded},
		{"ok", map[string]bool{"catalog-api": true}, statusOK},
		{"fail", map[string]bool{"catalog-api": false}, statusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := readinessFromHealth(tt.health); got != tt.want {
				t.Errorf("status = %q, ожидался %q", got, tt.want)
			}
		})
	}
}

func TestStaticChecker(t *testing.T) {
	status, msg := StaticChecker{Message: "fixture"}.CheckReady()
	if status != statusOK || msg != "fixture" {
		t.Errorf("CheckReady() = (%q, %q), ожидалось (ok, fixture)", status, msg)
	}
}
