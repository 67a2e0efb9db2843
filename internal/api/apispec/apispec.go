// Пакет apispec — OpenAPI-контракт JSON API, встроенный в бинарник.
// Документ разбирается и валидируется kin-openapi при старте;
// некорректный контракт — ошибка запуска.
package apispec

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// Load разбирает и валидирует встроенный документ.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("разбор OpenAPI: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("валидация OpenAPI: %w", err)
	}
	return doc, nil
}

// JSON возвращает документ в JSON для отдачи клиентам.
func JSON(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("сериализация OpenAPI: %w", err)
	}
	return data, nil
}
