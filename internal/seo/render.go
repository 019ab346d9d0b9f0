package seo

import (
	"strconv"
	"strings"
)

// Render maps meta onto head descriptors. Groups are emitted in a fixed order:
// basic, robots, Open Graph basic, Open Graph optional, Open Graph image,
// article, Twitter, alternates, extensions and structured data.
// Render is pure and safe for concurrent use.
func Render(meta PageMetadata) []Tag {
	out := make([]Tag, 0, 16)
	out = appendBasic(out, meta)
	out = append(out, NameTag("robots", meta.Robots.Content()))
	if og := meta.OpenGraph; og != nil {
		out = appendOpenGraphBasic(out, og)
		out = appendOpenGraphOptional(out, og)
		out = appendOpenGraphImage(out, og.Image)
		if og.Article != nil {
			out = appendArticle(out, og.Article)
		}
	}
	if meta.Twitter != nil {
		out = appendTwitter(out, meta.Twitter)
	}
	for _, alt := range meta.Alternates {
		out = append(out, Tag{Kind: KindLink, Rel: "alternate", Hreflang: alt.Hreflang, Href: alt.Href})
	}
	out = appendExtend(out, meta.Extend)
	for _, data := range meta.StructuredData {
		if data == nil {
			continue
		}
		// Entries that cannot be marshalled are reported by Validate.
		if payload := JSON(data); payload != "" {
			out = append(out, JSONLDTag(payload))
		}
	}
	return out
}

// Content returns the robots directive, e.g. "noindex,follow".
func (r Robots) Content() string {
	index, follow := "index", "follow"
	if r.NoIndex {
		index = "noindex"
	}
	if r.NoFollow {
		follow = "nofollow"
	}
	return index + "," + follow
}

// FormatTitle applies the template to the title. "%s" marks the title position.
func FormatTitle(title, template string) string {
	if template == "" {
		return title
	}
	if !strings.Contains(template, "%s") {
		return template
	}
	return strings.ReplaceAll(template, "%s", title)
}

func appendBasic(out []Tag, meta PageMetadata) []Tag {
	out = append(out, TitleTag(FormatTitle(meta.Title, meta.TitleTemplate)))
	out = appendName(out, "description", meta.Description)
	if meta.Canonical != nil {
		out = append(out, LinkTag("canonical", *meta.Canonical))
	}
	return out
}

func appendOpenGraphBasic(out []Tag, og *OpenGraph) []Tag {
	out = append(out,
		PropertyTag("og:title", og.Title),
		PropertyTag("og:type", og.Type),
	)
	if u, ok := imageURL(og.Image); ok {
		out = append(out, PropertyTag("og:image", u))
	}
	return append(out, PropertyTag("og:url", og.URL))
}

func appendOpenGraphOptional(out []Tag, og *OpenGraph) []Tag {
	out = appendProperty(out, "og:audio", og.Audio)
	out = appendProperty(out, "og:description", og.Description)
	out = appendProperty(out, "og:determiner", og.Determiner)
	out = appendProperty(out, "og:locale", og.Locale)
	out = appendEach(out, "og:locale:alternate", og.AlternateLocales)
	out = appendProperty(out, "og:site_name", og.SiteName)
	return appendProperty(out, "og:video", og.Video)
}

func appendOpenGraphImage(out []Tag, img Image) []Tag {
	obj, structured, ok := resolveImage(img)
	if !ok || !structured {
		return out
	}
	out = appendProperty(out, "og:image:secure_url", obj.SecureURL)
	out = appendProperty(out, "og:image:type", obj.MIMEType)
	out = appendInt(out, "og:image:width", obj.Width)
	out = appendInt(out, "og:image:height", obj.Height)
	return appendProperty(out, "og:image:alt", obj.Alt)
}

func imageURL(img Image) (string, bool) {
	obj, _, ok := resolveImage(img)
	return obj.URL, ok
}

func appendArticle(out []Tag, a *Article) []Tag {
	out = appendProperty(out, "article:published_time", a.PublishedTime)
	out = appendProperty(out, "article:modified_time", a.ModifiedTime)
	out = appendProperty(out, "article:expiration_time", a.ExpirationTime)
	out = appendEach(out, "article:author", a.Authors)
	out = appendProperty(out, "article:section", a.Section)
	return appendEach(out, "article:tag", a.Tags)
}

func appendTwitter(out []Tag, tw *Twitter) []Tag {
	out = append(out, NameTag("twitter:card", tw.Card))
	out = appendName(out, "twitter:site", tw.Site)
	out = appendName(out, "twitter:creator", tw.Creator)
	out = appendName(out, "twitter:title", tw.Title)
	out = appendName(out, "twitter:description", tw.Description)
	out = appendName(out, "twitter:image", tw.Image)
	return appendName(out, "twitter:image:alt", tw.ImageAlt)
}

func appendExtend(out []Tag, ext Extend) []Tag {
	for _, m := range ext.Meta {
		if m.Property != "" {
			out = append(out, PropertyTag(m.Property, m.Content))
			continue
		}
		out = append(out, NameTag(m.Name, m.Content))
	}
	for _, l := range ext.Link {
		out = append(out, Tag{Kind: KindLink, Rel: l.Rel, Href: l.Href, Hreflang: l.Hreflang})
	}
	return out
}

func appendName(out []Tag, name string, v *string) []Tag {
	if v == nil {
		return out
	}
	return append(out, NameTag(name, *v))
}

func appendProperty(out []Tag, property string, v *string) []Tag {
	if v == nil {
		return out
	}
	return append(out, PropertyTag(property, *v))
}

func appendInt(out []Tag, property string, v *int) []Tag {
	if v == nil {
		return out
	}
	return append(out, PropertyTag(property, strconv.Itoa(*v)))
}

// appendEach emits one tag per value; an empty slice emits nothing.
func appendEach(out []Tag, property string, values []string) []Tag {
	for _, v := range values {
		out = append(out, PropertyTag(property, v))
	}
	return out
}
