package seo

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Head renders the page metadata as a templ component.
func Head(meta PageMetadata) templ.Component {
	return Tags(Render(meta))
}

// Tags wraps already rendered tags as a templ component.
func Tags(tags []Tag) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return WriteHTML(w, tags)
	})
}
