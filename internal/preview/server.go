// Package preview serves content pages with their rendered head metadata so
// the markup can be inspected in a browser or by crawler debuggers.
package preview

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"finitefield.org/hanko-headmeta/internal/content"
	"finitefield.org/hanko-headmeta/internal/httpx"
	"finitefield.org/hanko-headmeta/internal/i18n"
	mw "finitefield.org/hanko-headmeta/internal/middleware"
	"finitefield.org/hanko-headmeta/internal/observability"
)

// Config holds runtime options for the preview HTTP server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Routes maps fixed paths to page slugs. Other single-segment paths are
	// looked up by slug.
	Routes map[string]string
}

// Deps are the collaborators shared by the handlers.
type Deps struct {
	Store      *content.Store
	Negotiator *i18n.Negotiator
	Logger     *zap.Logger
	Metrics    *Metrics
}

// New constructs the HTTP server with its middleware stack.
func New(cfg Config, deps Deps) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg.Routes, deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// NewRouter builds the preview routes.
func NewRouter(routes map[string]string, deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if deps.Negotiator == nil {
		deps.Negotiator, _ = i18n.New("en", nil)
	}
	h := &handlers{store: deps.Store, metrics: deps.Metrics}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(deps.Logger))
	r.Use(observability.Trace)
	r.Use(observability.RequestLogger)
	r.Use(observability.Recovery)
	r.Use(mw.VaryLocale)
	r.Use(mw.Locale(deps.Negotiator))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/_meta/{slug}", h.meta)

	paths := make([]string, 0, len(routes))
	for path := range routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		r.Get(path, h.page(routes[path]))
	}
	r.Get("/{slug}", h.pageBySlug)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, httpx.NewError("not_found", "page not found", http.StatusNotFound))
	})
	return r
}
