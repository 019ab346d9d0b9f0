package seo

import (
	"bufio"
	"html"
	"html/template"
	"io"
	"strings"
)

// Kind identifies the element a Tag renders to.
type Kind string

const (
	KindTitle  Kind = "title"
	KindMeta   Kind = "meta"
	KindLink   Kind = "link"
	KindScript Kind = "script"
)

// Attr selects the attribute a meta tag is keyed by.
type Attr string

const (
	AttrName     Attr = "name"
	AttrProperty Attr = "property"
)

// Tag describes one element of the document head.
type Tag struct {
	Kind     Kind   `json:"kind"`
	Attr     Attr   `json:"attr,omitempty"`
	Key      string `json:"key,omitempty"`
	Content  string `json:"content,omitempty"`
	Rel      string `json:"rel,omitempty"`
	Href     string `json:"href,omitempty"`
	Hreflang string `json:"hreflang,omitempty"`
}

// TitleTag builds the <title> descriptor.
func TitleTag(text string) Tag {
	return Tag{Kind: KindTitle, Content: text}
}

// NameTag builds a <meta name=... content=...> descriptor.
func NameTag(name, content string) Tag {
	return Tag{Kind: KindMeta, Attr: AttrName, Key: name, Content: content}
}

// PropertyTag builds a <meta property=... content=...> descriptor.
func PropertyTag(property, content string) Tag {
	return Tag{Kind: KindMeta, Attr: AttrProperty, Key: property, Content: content}
}

// LinkTag builds a <link rel=... href=...> descriptor.
func LinkTag(rel, href string) Tag {
	return Tag{Kind: KindLink, Rel: rel, Href: href}
}

// JSONLDTag builds a structured data script descriptor around an encoded JSON payload.
func JSONLDTag(payload string) Tag {
	return Tag{Kind: KindScript, Key: "application/ld+json", Content: payload}
}

// Find returns every meta tag keyed by key, in document order.
func Find(tags []Tag, attr Attr, key string) []Tag {
	var out []Tag
	for _, t := range tags {
		if t.Kind == KindMeta && t.Attr == attr && t.Key == key {
			out = append(out, t)
		}
	}
	return out
}

// WriteHTML serialises tags as HTML, one element per line.
func WriteHTML(w io.Writer, tags []Tag) error {
	bw := bufio.NewWriter(w)
	for _, t := range tags {
		writeTag(bw, t)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// HTML renders tags for embedding into html/template layouts.
func HTML(tags []Tag) template.HTML {
	var sb strings.Builder
	_ = WriteHTML(&sb, tags)
	return template.HTML(sb.String())
}

func writeTag(w *bufio.Writer, t Tag) {
	switch t.Kind {
	case KindTitle:
		w.WriteString("<title>")
		w.WriteString(html.EscapeString(t.Content))
		w.WriteString("</title>")
	case KindMeta:
		w.WriteString("<meta ")
		w.WriteString(string(t.Attr))
		w.WriteString(`="`)
		w.WriteString(html.EscapeString(t.Key))
		w.WriteString(`" content="`)
		w.WriteString(html.EscapeString(t.Content))
		w.WriteString(`">`)
	case KindLink:
		w.WriteString(`<link rel="`)
		w.WriteString(html.EscapeString(t.Rel))
		w.WriteString(`"`)
		if t.Hreflang != "" {
			w.WriteString(` hreflang="`)
			w.WriteString(html.EscapeString(t.Hreflang))
			w.WriteString(`"`)
		}
		w.WriteString(` href="`)
		w.WriteString(html.EscapeString(t.Href))
		w.WriteString(`">`)
	case KindScript:
		w.WriteString(`<script type="`)
		w.WriteString(html.EscapeString(t.Key))
		w.WriteString(`">`)
		// keep the payload from closing the script element early
		w.WriteString(strings.ReplaceAll(t.Content, "</", `<\/`))
		w.WriteString("</script>")
	}
}
