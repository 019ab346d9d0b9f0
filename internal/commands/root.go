// Package commands contains the headmeta CLI command definitions.
package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-headmeta/internal/config"
	"finitefield.org/hanko-headmeta/internal/content"
	"finitefield.org/hanko-headmeta/internal/fixtures"
	"finitefield.org/hanko-headmeta/internal/observability"
)

type appKey struct{}

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

type rootOptions struct {
	envFile string
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "headmeta",
		Short:         "Render and check HTML head metadata for content pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadApp(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with HEADMETA_ overrides")

	registerRenderCmd(rootCmd)
	registerValidateCmd(rootCmd)
	registerPreviewCmd(rootCmd)

	return rootCmd
}

func loadApp(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(config.WithEnvFile(opts.envFile))
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = observability.WithLogger(ctx, logger)
	cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, logger: logger}))
	return nil
}

func appFromCommand(cmd *cobra.Command) (*app, error) {
	if cmd.Context() != nil {
		if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("configuration not loaded")
}

// contentFS returns the configured content root and its fixed routes.
func (a *app) contentFS() (fs.FS, map[string]string) {
	if a.cfg.Content.Dir == "" {
		return fixtures.FS(), fixtures.Routes
	}
	return os.DirFS(a.cfg.Content.Dir), map[string]string{"/": "index"}
}

func (a *app) store() *content.Store {
	fsys, _ := a.contentFS()
	return content.NewStore(fsys,
		content.WithFallbackLangs(a.cfg.Content.FallbackLang),
		content.WithTitleTemplate(a.cfg.Site.TitleTemplate),
		content.WithCacheTTL(a.cfg.Content.CacheTTL),
	)
}
