package content

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-headmeta/internal/seo"
)

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	Format    string `yaml:"format"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       seoDoc `yaml:"seo"`
}

type seoDoc struct {
	Title          string              `yaml:"title"`
	TitleTemplate  *string             `yaml:"title_template"`
	Description    *string             `yaml:"description"`
	Canonical      *string             `yaml:"canonical"`
	Robots         robotsDoc           `yaml:"robots"`
	OpenGraph      *openGraphDoc       `yaml:"open_graph"`
	Twitter        *twitterDoc         `yaml:"twitter"`
	Alternates     []alternateDoc      `yaml:"alternates"`
	Extend         extendDoc           `yaml:"extend"`
	StructuredData []structuredDataDoc `yaml:"structured_data"`
}

type robotsDoc struct {
	Index  *bool `yaml:"index"`
	Follow *bool `yaml:"follow"`
}

type openGraphDoc struct {
	Title            string      `yaml:"title"`
	Type             string      `yaml:"type"`
	Image            *imageDoc   `yaml:"image"`
	URL              string      `yaml:"url"`
	Audio            *string     `yaml:"audio"`
	Description      *string     `yaml:"description"`
	Determiner       *string     `yaml:"determiner"`
	Locale           *string     `yaml:"locale"`
	AlternateLocales []string    `yaml:"alternate_locales"`
	SiteName         *string     `yaml:"site_name"`
	Video            *string     `yaml:"video"`
	Article          *articleDoc `yaml:"article"`
}

// imageDoc accepts either a bare URL or a mapping with sub-properties.
type imageDoc struct {
	image seo.Image
}

var imageKeys = []string{"url", "secure_url", "type", "width", "height", "alt"}

type imageObjectDoc struct {
	URL       string  `yaml:"url"`
	SecureURL *string `yaml:"secure_url"`
	MIMEType  *string `yaml:"type"`
	Width     *int    `yaml:"width"`
	Height    *int    `yaml:"height"`
	Alt       *string `yaml:"alt"`
}

type articleDoc struct {
	PublishedTime  *string  `yaml:"published_time"`
	ModifiedTime   *string  `yaml:"modified_time"`
	ExpirationTime *string  `yaml:"expiration_time"`
	Authors        []string `yaml:"authors"`
	Section        *string  `yaml:"section"`
	Tags           []string `yaml:"tags"`
}

// structuredDataDoc is a raw JSON-LD object, or a mapping with a builder key
// that derives one, e.g. {builder: article}.
type structuredDataDoc struct {
	raw     map[string]any
	builder *builderDoc
}

var builderKeys = []string{"builder", "name", "url", "logo", "search_url", "items"}

type builderDoc struct {
	Builder   string          `yaml:"builder"`
	Name      string          `yaml:"name"`
	URL       string          `yaml:"url"`
	Logo      string          `yaml:"logo"`
	SearchURL string          `yaml:"search_url"`
	Items     []breadcrumbDoc `yaml:"items"`
}

type breadcrumbDoc struct {
	Name string `yaml:"name"`
	Item string `yaml:"item"`
}

type twitterDoc struct {
	Card        string  `yaml:"card"`
	Site        *string `yaml:"site"`
	Creator     *string `yaml:"creator"`
	Title       *string `yaml:"title"`
	Description *string `yaml:"description"`
	Image       *string `yaml:"image"`
	ImageAlt    *string `yaml:"image_alt"`
}

type alternateDoc struct {
	Hreflang string `yaml:"hreflang"`
	Href     string `yaml:"href"`
}

type extendDoc struct {
	Meta []extraMetaDoc `yaml:"meta"`
	Link []extraLinkDoc `yaml:"link"`
}

type extraMetaDoc struct {
	Name     string `yaml:"name"`
	Property string `yaml:"property"`
	Content  string `yaml:"content"`
}

type extraLinkDoc struct {
	Rel      string `yaml:"rel"`
	Href     string `yaml:"href"`
	Hreflang string `yaml:"hreflang"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *imageDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var u string
		if err := node.Decode(&u); err != nil {
			return err
		}
		d.image = seo.ImageURL(u)
	case yaml.MappingNode:
		if err := checkKeys(node, "open_graph.image", imageKeys); err != nil {
			return err
		}
		var obj imageObjectDoc
		if err := node.Decode(&obj); err != nil {
			return err
		}
		d.image = seo.ImageObject{
			URL:       obj.URL,
			SecureURL: obj.SecureURL,
			MIMEType:  obj.MIMEType,
			Width:     obj.Width,
			Height:    obj.Height,
			Alt:       obj.Alt,
		}
	default:
		return fmt.Errorf("line %d: open_graph.image must be a URL or a mapping", node.Line)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *structuredDataDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: structured_data entries must be mappings", node.Line)
	}
	if !hasKey(node, "builder") {
		return node.Decode(&d.raw)
	}
	if err := checkKeys(node, "structured_data", builderKeys); err != nil {
		return err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "items" || node.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		for _, item := range node.Content[i+1].Content {
			if err := checkKeys(item, "structured_data.items", []string{"name", "item"}); err != nil {
				return err
			}
		}
	}
	var b builderDoc
	if err := node.Decode(&b); err != nil {
		return err
	}
	d.builder = &b
	return nil
}

// build returns the JSON-LD object, deriving it from meta for builder entries.
func (d structuredDataDoc) build(meta seo.PageMetadata) (map[string]any, error) {
	b := d.builder
	if b == nil {
		return d.raw, nil
	}
	switch b.Builder {
	case "article":
		if schema := seo.ArticleSchema(meta); schema != nil {
			return schema, nil
		}
		return nil, errors.New("article builder needs open_graph.article")
	case "organization":
		if b.Name == "" {
			return nil, errors.New("organization builder needs a name")
		}
		return seo.Organization(b.Name, b.URL, b.Logo), nil
	case "website":
		if b.Name == "" {
			return nil, errors.New("website builder needs a name")
		}
		return seo.WebSite(b.Name, b.URL, b.SearchURL), nil
	case "breadcrumbs":
		if len(b.Items) == 0 {
			return nil, errors.New("breadcrumbs builder needs items")
		}
		items := make([]seo.BreadcrumbItem, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, seo.BreadcrumbItem{Name: it.Name, Item: it.Item})
		}
		return seo.BreadcrumbList(items), nil
	default:
		return nil, fmt.Errorf("unknown builder %q", b.Builder)
	}
}

// checkKeys rejects mapping keys outside known. Custom unmarshalers decode
// through a fresh decoder that does not inherit KnownFields.
func checkKeys(node *yaml.Node, section string, known []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(known, key.Value) {
			return fmt.Errorf("line %d: field %s not found in %s", key.Line, key.Value, section)
		}
	}
	return nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func (d seoDoc) metadata() (seo.PageMetadata, error) {
	meta := seo.PageMetadata{
		Title:       d.Title,
		Description: d.Description,
		Canonical:   d.Canonical,
		Robots:      d.Robots.robots(),
	}
	if d.TitleTemplate != nil {
		meta.TitleTemplate = *d.TitleTemplate
	}
	if og := d.OpenGraph; og != nil {
		meta.OpenGraph = &seo.OpenGraph{
			Title:            og.Title,
			Type:             og.Type,
			URL:              og.URL,
			Audio:            og.Audio,
			Description:      og.Description,
			Determiner:       og.Determiner,
			Locale:           og.Locale,
			AlternateLocales: og.AlternateLocales,
			SiteName:         og.SiteName,
			Video:            og.Video,
		}
		if og.Image != nil {
			meta.OpenGraph.Image = og.Image.image
		}
		if a := og.Article; a != nil {
			meta.OpenGraph.Article = &seo.Article{
				PublishedTime:  a.PublishedTime,
				ModifiedTime:   a.ModifiedTime,
				ExpirationTime: a.ExpirationTime,
				Authors:        a.Authors,
				Section:        a.Section,
				Tags:           a.Tags,
			}
		}
	}
	if tw := d.Twitter; tw != nil {
		meta.Twitter = &seo.Twitter{
			Card:        tw.Card,
			Site:        tw.Site,
			Creator:     tw.Creator,
			Title:       tw.Title,
			Description: tw.Description,
			Image:       tw.Image,
			ImageAlt:    tw.ImageAlt,
		}
	}
	for _, alt := range d.Alternates {
		meta.Alternates = append(meta.Alternates, seo.Alternate{Hreflang: alt.Hreflang, Href: alt.Href})
	}
	for _, m := range d.Extend.Meta {
		meta.Extend.Meta = append(meta.Extend.Meta, seo.ExtraMeta{Name: m.Name, Property: m.Property, Content: m.Content})
	}
	for _, l := range d.Extend.Link {
		meta.Extend.Link = append(meta.Extend.Link, seo.ExtraLink{Rel: l.Rel, Href: l.Href, Hreflang: l.Hreflang})
	}
	for i, sd := range d.StructuredData {
		data, err := sd.build(meta)
		if err != nil {
			return seo.PageMetadata{}, fmt.Errorf("structured_data[%d]: %w", i, err)
		}
		meta.StructuredData = append(meta.StructuredData, data)
	}
	return meta, nil
}

// robots treats a missing directive as the permissive default.
func (r robotsDoc) robots() seo.Robots {
	return seo.Robots{
		NoIndex:  r.Index != nil && !*r.Index,
		NoFollow: r.Follow != nil && !*r.Follow,
	}
}
