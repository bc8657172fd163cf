// Command crmimport imports CRM contacts from CSV files, either through an
// HTTP server or directly from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "crmimport",
		Short:         "Import CRM contacts from CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load before reading configuration (empty to skip)")

	root.AddCommand(
		newServeCmd(opts),
		newImportCmd(opts),
		newPreviewCmd(opts),
		newTemplateCmd(),
	)
	return root
}
