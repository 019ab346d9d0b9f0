package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleSchema derives an Article schema from the page's Open Graph data.
// It returns nil when the page carries no article block.
func ArticleSchema(meta PageMetadata) map[string]any {
	og := meta.OpenGraph
	if og == nil || og.Article == nil {
		return nil
	}
	a := og.Article
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": og.Title,
	}
	if og.URL != "" {
		m["url"] = og.URL
	}
	if u, ok := imageURL(og.Image); ok && u != "" {
		m["image"] = u
	}
	if len(a.Authors) > 0 {
		authors := make([]map[string]any, 0, len(a.Authors))
		for _, name := range a.Authors {
			authors = append(authors, map[string]any{"@type": "Person", "name": name})
		}
		m["author"] = authors
	}
	if a.PublishedTime != nil {
		m["datePublished"] = *a.PublishedTime
	}
	if a.ModifiedTime != nil {
		m["dateModified"] = *a.ModifiedTime
	}
	if a.Section != nil {
		m["articleSection"] = *a.Section
	}
	if len(a.Tags) > 0 {
		m["keywords"] = append([]string(nil), a.Tags...)
	}
	return m
}
