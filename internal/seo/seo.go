// Package seo maps page metadata onto the ordered set of <head> elements
// that search engines and social crawlers read.
package seo

// PageMetadata describes the metadata of a single rendered page.
type PageMetadata struct {
	Title string
	// TitleTemplate wraps Title when set, e.g. "%s | Hanko Field".
	TitleTemplate string
	Description   *string
	Canonical     *string
	Robots        Robots
	OpenGraph     *OpenGraph
	Twitter       *Twitter

	Alternates     []Alternate
	Extend         Extend
	StructuredData []map[string]any
}

// Robots holds the indexing directives. The zero value means "index,follow".
type Robots struct {
	NoIndex  bool
	NoFollow bool
}

// OpenGraph holds the og:* properties of a page.
type OpenGraph struct {
	Title string
	Type  string
	Image Image
	URL   string

	Audio            *string
	Description      *string
	Determiner       *string
	Locale           *string
	AlternateLocales []string
	SiteName         *string
	Video            *string

	Article *Article
}

// Image is an ImageURL or an ImageObject, or a pointer to either.
type Image interface {
	isImage()
}

// ImageURL is a bare og:image URL.
type ImageURL string

func (ImageURL) isImage() {}

// ImageObject is a structured og:image with optional sub-properties.
type ImageObject struct {
	URL       string
	SecureURL *string
	MIMEType  *string
	Width     *int
	Height    *int
	Alt       *string
}

func (ImageObject) isImage() {}

// resolveImage normalises the accepted Image forms. ok is false for an absent
// image, including typed nil pointers. structured reports an ImageObject form.
func resolveImage(img Image) (obj ImageObject, structured, ok bool) {
	switch v := img.(type) {
	case ImageURL:
		return ImageObject{URL: string(v)}, false, true
	case *ImageURL:
		if v == nil {
			return ImageObject{}, false, false
		}
		return ImageObject{URL: string(*v)}, false, true
	case ImageObject:
		return v, true, true
	case *ImageObject:
		if v == nil {
			return ImageObject{}, false, false
		}
		return *v, true, true
	}
	return ImageObject{}, false, false
}

// Article holds the article:* properties.
type Article struct {
	PublishedTime  *string
	ModifiedTime   *string
	ExpirationTime *string
	Authors        []string
	Section        *string
	Tags           []string
}

// Twitter holds the twitter:* card properties.
type Twitter struct {
	Card        string
	Site        *string
	Creator     *string
	Title       *string
	Description *string
	Image       *string
	ImageAlt    *string
}

// Alternate is a localized variant of the page.
type Alternate struct {
	Hreflang string
	Href     string
}

// Extend carries extra tags appended after the generated ones.
type Extend struct {
	Meta []ExtraMeta
	Link []ExtraLink
}

// ExtraMeta is a free-form meta tag. Exactly one of Name or Property is set.
type ExtraMeta struct {
	Name     string
	Property string
	Content  string
}

// ExtraLink is a free-form link tag.
type ExtraLink struct {
	Rel      string
	Href     string
	Hreflang string
}

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
