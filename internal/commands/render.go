package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-headmeta/internal/content"
	"finitefield.org/hanko-headmeta/internal/seo"
)

type renderOptions struct {
	format string
	lang   string
	slug   string
}

func registerRenderCmd(parent *cobra.Command) {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print the head tags for a page document",
		Example: `  # Render a markdown page with front matter
  headmeta render content/en/about.md

  # Render a bare metadata document as tag JSON
  headmeta render meta.yaml --format json

  # Render a page from the configured content directory
  headmeta render --slug ogImageTags --lang en`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "Output format (html, json)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "Page language")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "Render a page from the content directory instead of a file")

	parent.AddCommand(cmd)
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	a, err := appFromCommand(cmd)
	if err != nil {
		return err
	}
	if opts.format != "html" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q (want html or json)", opts.format)
	}
	if (len(args) == 1) == (opts.slug != "") {
		return fmt.Errorf("provide either a file or --slug")
	}

	var page content.Page
	if opts.slug != "" {
		lang := opts.lang
		if lang == "" {
			lang = a.cfg.Content.FallbackLang
		}
		page, err = a.store().Page(cmd.Context(), opts.slug, lang)
	} else {
		page, err = parseFile(args[0], opts.lang, a.cfg.Site.TitleTemplate)
	}
	if err != nil {
		return err
	}

	tags := page.Tags()
	a.logger.Debug("rendered head", zap.String("slug", page.Slug), zap.Int("tags", len(tags)))

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	}
	return seo.WriteHTML(out, tags)
}

func parseFile(path, lang, titleTemplate string) (content.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return content.Page{}, fmt.Errorf("read %s: %w", path, err)
	}
	return content.Parse(path, data, content.ParseOptions{Lang: lang, TitleTemplate: titleTemplate})
}
