package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArticleSchemaFromOpenGraph(t *testing.T) {
	t.Parallel()

	meta := basicPage()
	require.Nil(t, ArticleSchema(meta))

	meta.OpenGraph.Article = &Article{
		PublishedTime: String("2021-09-22"),
		Authors:       []string{"Smiley", "Control"},
		Section:       String("Literature"),
		Tags:          []string{"Spy fiction"},
	}
	got := ArticleSchema(meta)

	require.Equal(t, "Article", got["@type"])
	require.Equal(t, "Tinker Tailor Soldier Spy", got["headline"])
	require.Equal(t, "https://example.com/cover.png", got["image"])
	require.Equal(t, "2021-09-22", got["datePublished"])
	require.NotContains(t, got, "dateModified")
	require.Equal(t, []map[string]any{
		{"@type": "Person", "name": "Smiley"},
		{"@type": "Person", "name": "Control"},
	}, got["author"])
	require.Equal(t, []string{"Spy fiction"}, got["keywords"])
}

func TestBreadcrumbListPositions(t *testing.T) {
	t.Parallel()

	got := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "/"}, {Name: "Guides", Item: "/guides"}})
	items, ok := got["itemListElement"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0]["position"])
	require.Equal(t, 2, items[1]["position"])
}

func TestWebSiteSearchAction(t *testing.T) {
	t.Parallel()

	got := WebSite("Hanko Field", "https://example.com", "https://example.com/search?q=")
	require.Equal(t, "WebSite", got["@type"])
	require.Equal(t, "https://example.com", got["url"])
	require.Equal(t, map[string]any{
		"@type":       "SearchAction",
		"target":      "https://example.com/search?q={search_term_string}",
		"query-input": "required name=search_term_string",
	}, got["potentialAction"])

	bare := WebSite("Hanko Field", "", "")
	require.NotContains(t, bare, "url")
	require.NotContains(t, bare, "potentialAction")
}

func TestJSONReturnsEmptyOnError(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", JSON(map[string]any{"bad": make(chan int)}))
	require.Equal(t, `{"a":1}`, JSON(map[string]int{"a": 1}))
}
