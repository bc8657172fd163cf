package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/crmimport/internal/core"
)

// errRowsInvalid makes preview exit non-zero when any row fails validation.
var errRowsInvalid = errors.New("some rows failed validation")

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import contacts from a CSV file into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := a.importer.Import(cmd.Context(), filepath.Base(args[0]), f)
			if res != nil {
				printImportResult(cmd.OutOrStdout(), res)
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), core.FormatUserError(err))
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return nil
		},
	}
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Validate a CSV file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := a.importer.Preview(cmd.Context(), f)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), core.FormatUserError(err))
				return fmt.Errorf("preview %s: %w", args[0], err)
			}

			printPreview(cmd.OutOrStdout(), p)
			if p.ErrorRows > 0 {
				return errRowsInvalid
			}
			return nil
		},
	}
}

func printImportResult(w io.Writer, res *core.ImportResult) {
	fmt.Fprintln(w, res.Summary())
	if len(res.UnknownHeaders) > 0 {
		fmt.Fprintf(w, "Ignored columns: %s\n", strings.Join(res.UnknownHeaders, ", "))
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}

func printPreview(w io.Writer, p *core.Preview) {
	fmt.Fprintf(w, "%d rows, %d valid, %d with errors\n", p.TotalRows, p.ValidRows, p.ErrorRows)
	if len(p.UnknownHeaders) > 0 {
		fmt.Fprintf(w, "Ignored columns: %s\n", strings.Join(p.UnknownHeaders, ", "))
	}
	for _, row := range p.Rows {
		if len(row.Errors) == 0 {
			continue
		}
		fmt.Fprintf(w, "  row %d: %s\n", row.Row, strings.Join(row.Errors, "; "))
	}
}
