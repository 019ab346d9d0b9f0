package seo

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ValidationError lists the metadata fields that violate the input contract.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("seo: invalid metadata fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the offending field paths.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

var (
	determiners  = map[string]struct{}{"": {}, "a": {}, "an": {}, "the": {}, "auto": {}}
	twitterCards = map[string]struct{}{
		"summary":             {},
		"summary_large_image": {},
		"app":                 {},
		"player":              {},
	}
	dateLayouts  = []string{time.RFC3339, "2006-01-02"}
)

// Validate reports contract violations. Absent optional data is never an error.
func (m PageMetadata) Validate() error {
	var bad []string
	if blank(m.Title) {
		bad = append(bad, "Title")
	}
	if og := m.OpenGraph; og != nil {
		bad = append(bad, validateOpenGraph(og)...)
	}
	if tw := m.Twitter; tw != nil {
		if _, ok := twitterCards[tw.Card]; !ok {
			bad = append(bad, "Twitter.Card")
		}
	}
	for i, alt := range m.Alternates {
		if blank(alt.Href) {
			bad = append(bad, fmt.Sprintf("Alternates[%d].Href", i))
		}
		if alt.Hreflang != "x-default" && !validLocale(alt.Hreflang) {
			bad = append(bad, fmt.Sprintf("Alternates[%d].Hreflang", i))
		}
	}
	for i, em := range m.Extend.Meta {
		if blank(em.Name) == blank(em.Property) {
			bad = append(bad, fmt.Sprintf("Extend.Meta[%d]", i))
		}
	}
	for i, el := range m.Extend.Link {
		if blank(el.Rel) || blank(el.Href) {
			bad = append(bad, fmt.Sprintf("Extend.Link[%d]", i))
		}
	}
	for i, data := range m.StructuredData {
		if data == nil || JSON(data) == "" {
			bad = append(bad, fmt.Sprintf("StructuredData[%d]", i))
		}
	}
	if len(bad) > 0 {
		return &ValidationError{fields: bad}
	}
	return nil
}

func validateOpenGraph(og *OpenGraph) []string {
	var bad []string
	if blank(og.Title) {
		bad = append(bad, "OpenGraph.Title")
	}
	if blank(og.Type) {
		bad = append(bad, "OpenGraph.Type")
	}
	if blank(og.URL) {
		bad = append(bad, "OpenGraph.URL")
	}
	bad = append(bad, validateImage(og.Image)...)
	if og.Determiner != nil {
		if _, ok := determiners[*og.Determiner]; !ok {
			bad = append(bad, "OpenGraph.Determiner")
		}
	}
	if og.Locale != nil && !validLocale(*og.Locale) {
		bad = append(bad, "OpenGraph.Locale")
	}
	for i, l := range og.AlternateLocales {
		if !validLocale(l) {
			bad = append(bad, fmt.Sprintf("OpenGraph.AlternateLocales[%d]", i))
		}
	}
	if a := og.Article; a != nil {
		dates := []struct {
			name  string
			value *string
		}{
			{"OpenGraph.Article.PublishedTime", a.PublishedTime},
			{"OpenGraph.Article.ModifiedTime", a.ModifiedTime},
			{"OpenGraph.Article.ExpirationTime", a.ExpirationTime},
		}
		for _, d := range dates {
			if d.value != nil && !validDate(*d.value) {
				bad = append(bad, d.name)
			}
		}
	}
	return bad
}

func validateImage(img Image) []string {
	obj, structured, ok := resolveImage(img)
	if !ok {
		return []string{"OpenGraph.Image"}
	}
	if !structured {
		if blank(obj.URL) {
			return []string{"OpenGraph.Image"}
		}
		return nil
	}
	var bad []string
	if blank(obj.URL) {
		bad = append(bad, "OpenGraph.Image.URL")
	}
	if obj.Width != nil && *obj.Width < 0 {
		bad = append(bad, "OpenGraph.Image.Width")
	}
	if obj.Height != nil && *obj.Height < 0 {
		bad = append(bad, "OpenGraph.Image.Height")
	}
	return bad
}

// validLocale accepts Open Graph style tags such as "en_US" as well as BCP 47.
func validLocale(tag string) bool {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return false
	}
	_, err := language.Parse(tag)
	return err == nil
}

func validDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return true
		}
	}
	return false
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
