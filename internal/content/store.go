package content

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"finitefield.org/hanko-headmeta/internal/seo"
)

const defaultCacheTTL = 5 * time.Minute

// Store reads pages laid out as <lang>/<slug>.md under a filesystem root.
type Store struct {
	fsys          fs.FS
	fallback      []string
	titleTemplate string
	ttl           time.Duration
	now           func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithFallbackLangs sets the languages tried, in order, after the requested one.
func WithFallbackLangs(langs ...string) Option {
	return func(s *Store) {
		s.fallback = nil
		for _, lang := range langs {
			if lang = strings.TrimSpace(lang); lang != "" {
				s.fallback = append(s.fallback, lang)
			}
		}
	}
}

// WithTitleTemplate sets the site-wide title template for pages that do not declare one.
func WithTitleTemplate(tmpl string) Option {
	return func(s *Store) { s.titleTemplate = tmpl }
}

// WithCacheTTL sets how long parsed pages are reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store over fsys.
func NewStore(fsys fs.FS, opts ...Option) *Store {
	s := &Store{
		fsys:     fsys,
		fallback: []string{"en"},
		ttl:      defaultCacheTTL,
		now:      time.Now,
		items:    make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page returns the page for slug in lang, falling back through the configured
// languages. Parse failures stop the search.
func (s *Store) Page(ctx context.Context, slug, lang string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	for _, candidate := range s.priority(lang) {
		page, err := s.load(slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

// All parses every page in the store. Every parse failure is reported.
func (s *Store) All(ctx context.Context) ([]Page, error) {
	var (
		pages []Page
		errs  []error
	)
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		lang := path.Dir(p)
		if lang == "." || strings.Contains(lang, "/") {
			return nil
		}
		page, err := s.load(strings.TrimSuffix(path.Base(p), ".md"), lang)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Lang != pages[j].Lang {
			return pages[i].Lang < pages[j].Lang
		}
		return pages[i].Slug < pages[j].Slug
	})
	return pages, errors.Join(errs...)
}

func (s *Store) priority(lang string) []string {
	lang = strings.TrimSpace(lang)
	out := make([]string, 0, len(s.fallback)+1)
	if lang != "" {
		out = append(out, lang)
	}
	for _, fb := range s.fallback {
		if fb != lang {
			out = append(out, fb)
		}
	}
	return out
}

func (s *Store) load(slug, lang string) (Page, error) {
	key := lang + "/" + slug
	if page, ok := s.cached(key); ok {
		return page, nil
	}
	name := key + ".md"
	if !fs.ValidPath(name) {
		return Page{}, ErrNotFound
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	page, err := Parse(name, data, ParseOptions{Lang: lang, TitleTemplate: s.titleTemplate})
	if err != nil {
		return Page{}, err
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := fs.Stat(s.fsys, name); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	s.store(key, page)
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func (s *Store) store(key string, page Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{page: clonePage(page), expires: s.now().Add(s.ttl)}
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return "index"
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func clonePage(src Page) Page {
	cp := src
	cp.Meta = cloneMetadata(src.Meta)
	return cp
}

func cloneMetadata(src seo.PageMetadata) seo.PageMetadata {
	cp := src
	cp.Description = cloneString(src.Description)
	cp.Canonical = cloneString(src.Canonical)
	if og := src.OpenGraph; og != nil {
		o := *og
		o.Image = cloneImage(og.Image)
		o.Audio = cloneString(og.Audio)
		o.Description = cloneString(og.Description)
		o.Determiner = cloneString(og.Determiner)
		o.Locale = cloneString(og.Locale)
		o.AlternateLocales = slices.Clone(og.AlternateLocales)
		o.SiteName = cloneString(og.SiteName)
		o.Video = cloneString(og.Video)
		if a := og.Article; a != nil {
			art := *a
			art.PublishedTime = cloneString(a.PublishedTime)
			art.ModifiedTime = cloneString(a.ModifiedTime)
			art.ExpirationTime = cloneString(a.ExpirationTime)
			art.Authors = slices.Clone(a.Authors)
			art.Section = cloneString(a.Section)
			art.Tags = slices.Clone(a.Tags)
			o.Article = &art
		}
		cp.OpenGraph = &o
	}
	if tw := src.Twitter; tw != nil {
		t := *tw
		t.Site = cloneString(tw.Site)
		t.Creator = cloneString(tw.Creator)
		t.Title = cloneString(tw.Title)
		t.Description = cloneString(tw.Description)
		t.Image = cloneString(tw.Image)
		t.ImageAlt = cloneString(tw.ImageAlt)
		cp.Twitter = &t
	}
	cp.Alternates = slices.Clone(src.Alternates)
	cp.Extend.Meta = slices.Clone(src.Extend.Meta)
	cp.Extend.Link = slices.Clone(src.Extend.Link)
	if src.StructuredData != nil {
		cp.StructuredData = make([]map[string]any, len(src.StructuredData))
		for i, data := range src.StructuredData {
			cp.StructuredData[i] = cloneMap(data)
		}
	}
	return cp
}

func cloneImage(img seo.Image) seo.Image {
	switch v := img.(type) {
	case *seo.ImageURL:
		if v == nil {
			return v
		}
		u := *v
		return &u
	case seo.ImageObject:
		return cloneImageObject(v)
	case *seo.ImageObject:
		if v == nil {
			return v
		}
		obj := cloneImageObject(*v)
		return &obj
	default:
		return img
	}
}

func cloneImageObject(src seo.ImageObject) seo.ImageObject {
	cp := src
	cp.SecureURL = cloneString(src.SecureURL)
	cp.MIMEType = cloneString(src.MIMEType)
	cp.Width = cloneInt(src.Width)
	cp.Height = cloneInt(src.Height)
	cp.Alt = cloneString(src.Alt)
	return cp
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	cp := make(map[string]any, len(src))
	for k, v := range src {
		cp[k] = cloneValue(v)
	}
	return cp
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = cloneMap(item)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
