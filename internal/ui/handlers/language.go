// language.go — обработчик переключения языка UI.
package handlers

import (
	"net/http"
	"time"

	"github.com/bigkaa/goartstore/resource-browser/internal/ui/i18n"
)

// HandleSetLanguage обрабатывает POST /set-language.
// Устанавливает cookie "lang" и перенаправляет обратно.
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("lang")
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLang
	}

	// Cookie на 1 год
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	referer := r.Header.Get("Referer")
	if referer == "" {
		referer = "/resources"
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}
