package fixtures_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-headmeta/internal/content"
	"finitefield.org/hanko-headmeta/internal/fixtures"
	"finitefield.org/hanko-headmeta/internal/seo"
)

func TestEveryRouteHasAValidPage(t *testing.T) {
	t.Parallel()

	store := content.NewStore(fixtures.FS())
	for route, slug := range fixtures.Routes {
		page, err := store.Page(context.Background(), slug, "en")
		require.NoError(t, err, route)
		require.Equal(t, "Francis York Morgan", page.Meta.Title, route)
		require.NoError(t, page.Meta.Validate(), route)
	}
}

func TestAllPagesParse(t *testing.T) {
	t.Parallel()

	pages, err := content.NewStore(fixtures.FS()).All(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, len(fixtures.Routes)+1)
}

func TestImageFixtureKeepsZeroHeight(t *testing.T) {
	t.Parallel()

	page, err := content.NewStore(fixtures.FS()).Page(context.Background(), "ogImageTags", "en")
	require.NoError(t, err)

	tags := page.Tags()
	require.Equal(t, "500", seo.Find(tags, seo.AttrProperty, "og:image:width")[0].Content)
	require.Equal(t, "0", seo.Find(tags, seo.AttrProperty, "og:image:height")[0].Content)
}

func TestJapaneseIndex(t *testing.T) {
	t.Parallel()

	page, err := content.NewStore(fixtures.FS()).Page(context.Background(), "index", "ja")
	require.NoError(t, err)
	require.Equal(t, "ja", page.Lang)
	require.Equal(t, "ja_JP", *page.Meta.OpenGraph.Locale)
}
