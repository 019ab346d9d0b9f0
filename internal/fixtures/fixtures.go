// Package fixtures embeds the demo pages served by the preview server.
package fixtures

import (
	"embed"
	"io/fs"
)

//go:embed pages
var pages embed.FS

// Routes maps each demo path to the page slug it renders.
var Routes = map[string]string{
	"/":                        "index",
	"/noindex":                 "noindex",
	"/noindexAndNofollow":      "noindexAndNofollow",
	"/ogImageTags":             "ogImageTags",
	"/ogArticleTags":           "ogArticleTags",
	"/ogArticleTagsEmtpyArray": "ogArticleTagsEmtpyArray",
	"/twitterTags":             "twitterTags",
}

// FS returns the pages rooted so that paths read <lang>/<slug>.md.
func FS() fs.FS {
	sub, err := fs.Sub(pages, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}
