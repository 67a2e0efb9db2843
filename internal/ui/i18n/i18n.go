// Пакет i18n — интернационализация страницы ресурсов.
// Поддерживаемые языки: English (en), Español (es).
// Язык определяется middleware: cookie "lang" → Accept-Language → default "en".
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLang — язык по умолчанию и язык fallback.
const DefaultLang = "en"

var (
	// SupportedLanguages — поддерживаемые теги языков (первый — default для matcher).
	SupportedLanguages = []language.Tag{
		language.English,
		language.Spanish,
	}

	matcher = language.NewMatcher(SupportedLanguages)
)

// contextKey — тип ключа для контекста (избегаем коллизий).
type contextKey string

const contextKeyLang contextKey = "i18n_lang"

// Bundle — хранилище переводов для всех языков.
// Загружается один раз при старте приложения.
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]string // lang → key → translation
	logger   *slog.Logger
}

// NewBundle создаёт пустой Bundle.
func NewBundle(logger *slog.Logger) *Bundle {
	return &Bundle{
		catalogs: make(map[string]map[string]string),
		logger:   logger,
	}
}

// LoadMessages загружает плоский JSON-каталог {"key": "translation"} для языка.
func (b *Bundle) LoadMessages(lang string, data []byte) error {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", lang, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalogs[lang] = messages

	if b.logger != nil {
		b.logger.Debug("i18n каталог загружен",
			slog.String("lang", lang),
			slog.Int("keys", len(messages)),
		)
	}
	return nil
}

// Translate возвращает перевод по ключу для указанного языка.
// Fallback — английский, затем сам ключ.
func (b *Bundle) Translate(lang, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if catalog, ok := b.catalogs[lang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if lang != DefaultLang {
		if catalog, ok := b.catalogs[DefaultLang]; ok {
			if msg, ok := catalog[key]; ok {
				return msg
			}
		}
	}
	return key
}

// Translatef — Translate с подстановкой аргументов.
func (b *Bundle) Translatef(lang, key string, args ...any) string {
	template := b.Translate(lang, key)
	if len(args) == 0 {
		return template
	}
	return formatFunc(template, args...)
}

// Translator — переводчик, привязанный к одному языку (для шаблонов).
type Translator struct {
	bundle *Bundle
	lang   string
}

// For возвращает переводчик для языка из контекста.
func (b *Bundle) For(ctx context.Context) Translator {
	return Translator{bundle: b, lang: LangFromContext(ctx)}
}

// Lang возвращает язык переводчика.
func (t Translator) Lang() string { return t.lang }

// T возвращает перевод по ключу.
func (t Translator) T(key string) string {
	if t.bundle == nil {
		return key
	}
	return t.bundle.Translate(t.lang, key)
}

// Tf возвращает перевод с аргументами.
func (t Translator) Tf(key string, args ...any) string {
	if t.bundle == nil {
		return formatFunc(key, args...)
	}
	return t.bundle.Translatef(t.lang, key, args...)
}

// WithLang помещает язык в контекст.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, contextKeyLang, lang)
}

// LangFromContext извлекает язык из контекста. Default: "en".
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(contextKeyLang).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// formatFunc — fmt.Sprintf через переменную: формат-строки приходят из
// JSON-каталогов, go vet printf-анализатор их не проверит.
//
//nolint:govet // обход go vet printf-анализатора
var formatFunc = fmt.Sprintf

// IsSupported сообщает, поддерживается ли язык.
func IsSupported(lang string) bool {
	return lang == "en" || lang == "es"
}

// MatchLanguage определяет лучший язык из Accept-Language заголовка.
// Возвращает "en" или "es".
func MatchLanguage(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if lang := base.String(); IsSupported(lang) {
		return lang
	}
	return DefaultLang
}
