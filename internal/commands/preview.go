package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-headmeta/internal/i18n"
	"finitefield.org/hanko-headmeta/internal/preview"
)

const shutdownTimeout = 10 * time.Second

type previewOptions struct {
	addr string
}

func registerPreviewCmd(parent *cobra.Command) {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve content pages with their rendered head tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides HEADMETA_PREVIEW_ADDR)")

	parent.AddCommand(cmd)
}

func runPreview(cmd *cobra.Command, opts *previewOptions) error {
	a, err := appFromCommand(cmd)
	if err != nil {
		return err
	}
	negotiator, err := i18n.New(a.cfg.Content.FallbackLang, a.cfg.Content.Languages)
	if err != nil {
		return err
	}

	addr := a.cfg.Preview.Addr
	if opts.addr != "" {
		addr = opts.addr
	}
	_, routes := a.contentFS()
	srv := preview.New(preview.Config{
		Addr:         addr,
		ReadTimeout:  a.cfg.Preview.ReadTimeout,
		WriteTimeout: a.cfg.Preview.WriteTimeout,
		IdleTimeout:  a.cfg.Preview.IdleTimeout,
		Routes:       routes,
	}, preview.Deps{
		Store:      a.store(),
		Negotiator: negotiator,
		Logger:     a.logger,
		Metrics:    preview.NewMetrics(),
	})

	return serve(cmd.Context(), srv, a.logger)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
