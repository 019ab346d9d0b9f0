package preview

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-headmeta/internal/content"
	"finitefield.org/hanko-headmeta/internal/httpx"
	mw "finitefield.org/hanko-headmeta/internal/middleware"
	"finitefield.org/hanko-headmeta/internal/observability"
	"finitefield.org/hanko-headmeta/internal/seo"
)

const (
	formatHTML = "html"
	formatJSON = "json"
)

type handlers struct {
	store   *content.Store
	metrics *Metrics
}

// metaResponse is the body of GET /_meta/{slug}.
type metaResponse struct {
	Slug  string    `json:"slug"`
	Lang  string    `json:"lang"`
	Title string    `json:"title"`
	Tags  []seo.Tag `json:"tags"`
}

func (h *handlers) page(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.servePage(w, r, slug)
	}
}

func (h *handlers) pageBySlug(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, chi.URLParam(r, "slug"))
}

func (h *handlers) servePage(w http.ResponseWriter, r *http.Request, slug string) {
	page, tags, err := h.render(r.Context(), slug, formatHTML)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	templ.Handler(Document(page, tags)).ServeHTTP(w, r)
}

func (h *handlers) meta(w http.ResponseWriter, r *http.Request) {
	page, tags, err := h.render(r.Context(), chi.URLParam(r, "slug"), formatJSON)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, metaResponse{
		Slug:  page.Slug,
		Lang:  page.Lang,
		Title: page.Meta.Title,
		Tags:  tags,
	})
}

func (h *handlers) render(ctx context.Context, slug, format string) (content.Page, []seo.Tag, error) {
	ctx, span := observability.Tracer().Start(ctx, "headmeta.render",
		trace.WithAttributes(attribute.String("page.slug", slug), attribute.String("render.format", format)),
	)
	defer span.End()

	page, err := h.store.Page(ctx, slug, mw.Lang(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load page")
		h.metrics.RendersTotal.WithLabelValues(format, outcome(err)).Inc()
		return content.Page{}, nil, err
	}

	tags := page.Tags()
	span.SetAttributes(attribute.String("page.lang", page.Lang), attribute.Int("render.tags", len(tags)))
	h.metrics.RendersTotal.WithLabelValues(format, "ok").Inc()
	h.metrics.TagsEmitted.WithLabelValues(format).Observe(float64(len(tags)))
	observability.FromContext(ctx).Debug("rendered head",
		zap.String("slug", page.Slug),
		zap.String("lang", page.Lang),
		zap.Int("tags", len(tags)),
	)
	return page, tags, nil
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var (
		verr *seo.ValidationError
		perr *content.ParseError
	)
	switch {
	case errors.Is(err, content.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", "page not found", http.StatusNotFound))
	case errors.As(err, &verr):
		logger.Warn("invalid page metadata", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("invalid_metadata", err.Error(), http.StatusUnprocessableEntity).
			WithDetails(map[string]any{"fields": verr.Fields()}))
	case errors.As(err, &perr):
		logger.Warn("invalid page document", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("invalid_document", err.Error(), http.StatusUnprocessableEntity))
	default:
		logger.Error("render failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
	}
}

func outcome(err error) string {
	var perr *content.ParseError
	switch {
	case errors.Is(err, content.ErrNotFound):
		return "not_found"
	case errors.As(err, &perr):
		return "invalid"
	default:
		return "error"
	}
}

// Document renders a complete HTML page with the head tags in place.
func Document(page content.Page, tags []seo.Tag) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html>\n<html lang=\""+html.EscapeString(page.Lang)+"\">\n<head>\n<meta charset=\"utf-8\">\n"); err != nil {
			return err
		}
		if err := seo.Tags(tags).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head>\n<body>\n<main>\n"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, string(page.HTML)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}
