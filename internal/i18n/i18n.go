// Package i18n negotiates the page language from request preferences.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Negotiator picks a supported language for a request.
type Negotiator struct {
	fallback  string
	supported map[string]struct{}
}

// New returns a Negotiator. The fallback is always supported.
func New(fallback string, supported []string) (*Negotiator, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		return nil, fmt.Errorf("i18n: fallback language is required")
	}
	n := &Negotiator{fallback: fallback, supported: map[string]struct{}{fallback: {}}}
	for _, lang := range supported {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("i18n: unsupported language %q: %w", lang, err)
		}
		n.supported[lang] = struct{}{}
	}
	return n, nil
}

// Supported lists the supported languages in lexical order.
func (n *Negotiator) Supported() []string {
	out := make([]string, 0, len(n.supported))
	for k := range n.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (n *Negotiator) Fallback() string { return n.fallback }

// IsSupported reports whether lang is one of the configured languages.
func (n *Negotiator) IsSupported(lang string) bool {
	_, ok := n.supported[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// Resolve chooses the best language from an Accept-Language header.
// Entries are ranked by q-value, then by position; malformed entries are skipped.
func (n *Negotiator) Resolve(acceptLang string) string {
	type langPref struct {
		base string
		q    float32
		pos  int
	}
	prefs := make([]langPref, 0, 8)
	for i, raw := range strings.Split(acceptLang, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		tags, qs, err := language.ParseAcceptLanguage(raw)
		if err != nil || len(tags) == 0 {
			continue
		}
		base, _ := tags[0].Base()
		prefs = append(prefs, langPref{base: strings.ToLower(base.String()), q: qs[0], pos: i})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, lp := range prefs {
		if n.IsSupported(lp.base) {
			return lp.base
		}
	}
	return n.fallback
}
