// Package content loads localized pages whose front matter carries the head
// metadata rendered by package seo.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-headmeta/internal/seo"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	// ErrNotFound is returned when no page exists for a slug in any candidate language.
	ErrNotFound = errors.New("content: not found")

	markdown   = goldmark.New(goldmark.WithExtensions(extension.GFM))
	bodyPolicy = newBodyPolicy()
)

// ParseError reports a document that could not be decoded or whose metadata is invalid.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Page is a localized document together with its head metadata.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	Format    string
	HTML      template.HTML
	UpdatedAt time.Time
	Meta      seo.PageMetadata
}

// Tags renders the page's head tags.
func (p Page) Tags() []seo.Tag {
	return seo.Render(p.Meta)
}

// ParseOptions tunes Parse.
type ParseOptions struct {
	// Lang is used when the front matter does not declare one.
	Lang string
	// TitleTemplate applies when the document does not set seo.title_template.
	TitleTemplate string
}

// Parse decodes a document. Files ending in .yaml, .yml or .json are read as
// a bare metadata document; anything else is front matter plus a body.
func Parse(name string, data []byte, opts ParseOptions) (Page, error) {
	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))

	var fm, body string
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		fm = string(data)
	default:
		fm, body = splitFrontMatter(string(data))
	}

	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		dec := yaml.NewDecoder(strings.NewReader(fm))
		dec.KnownFields(true)
		if err := dec.Decode(&front); err != nil && !errors.Is(err, io.EOF) {
			return Page{}, &ParseError{Path: name, Err: err}
		}
	}

	page := Page{
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), opts.Lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    body,
		Format:  strings.ToLower(strings.TrimSpace(front.Format)),
	}
	if page.Format == "" {
		page.Format = FormatMarkdown
	}
	if page.Format != FormatMarkdown && page.Format != FormatHTML {
		return Page{}, &ParseError{Path: name, Err: fmt.Errorf("unsupported format %q", front.Format)}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	page.UpdatedAt = parseContentDate(front.UpdatedAt)

	meta, err := front.SEO.metadata()
	if err != nil {
		return Page{}, &ParseError{Path: name, Err: err}
	}
	page.Meta = meta
	if strings.TrimSpace(page.Meta.Title) == "" {
		page.Meta.Title = page.Title
	}
	if front.SEO.TitleTemplate == nil {
		page.Meta.TitleTemplate = opts.TitleTemplate
	}
	if err := page.Meta.Validate(); err != nil {
		return Page{}, &ParseError{Path: name, Err: err}
	}

	html, err := renderBody(page.Format, body)
	if err != nil {
		return Page{}, &ParseError{Path: name, Err: err}
	}
	page.HTML = html
	return page, nil
}

func renderBody(format, body string) (template.HTML, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	src := []byte(body)
	if format == FormatMarkdown {
		var buf bytes.Buffer
		if err := markdown.Convert(src, &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		src = buf.Bytes()
	}
	return template.HTML(bodyPolicy.SanitizeBytes(src)), nil
}

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	policy.RequireNoFollowOnLinks(false)
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	parts := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
