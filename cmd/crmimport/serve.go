package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/crmimport/internal/web"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP import server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	a, err := setup(ctx, opts, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := web.NewServer(a.importer, a.store, a.cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		guard := a.importer.Guard()
		if guard.Active() > 0 {
			slog.Info("waiting for import to complete")
			if err := guard.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("import did not complete in time", "error", err)
			} else {
				slog.Info("import completed")
			}
		}

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
