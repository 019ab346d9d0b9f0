package middleware

import (
	"context"
	"net/http"
	"strings"

	"finitefield.org/hanko-headmeta/internal/i18n"
)

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLang ctxKey = "lang"

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale resolves the page language from the `hl` query parameter, the `hl`
// cookie, or Accept-Language, in that order.
func Locale(negotiator *i18n.Negotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(r.URL.Query().Get("hl")); q != "" && negotiator.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if c, err := r.Cookie("hl"); err == nil && negotiator.IsSupported(c.Value) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = negotiator.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// WithLang stores the resolved language in context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLang, lang)
}

// Lang returns the resolved language, or "" when Locale did not run.
func Lang(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyLang).(string)
	return v
}
