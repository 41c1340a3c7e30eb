// Package cli implements the invoiceqc command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	"github.com/MrJamesThe3rd/invoiceqc/internal/document"
	"github.com/MrJamesThe3rd/invoiceqc/internal/extract"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// ErrInvalidInvoices is returned when a validated batch holds at least one
// invalid invoice. The summary has already been printed by then.
var ErrInvalidInvoices = errors.New("batch contains invalid invoices")

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "invoiceqc",
		Short: "Extract invoice fields from text documents and check them for errors",
		Long: `invoiceqc reads invoice text dumps (one .txt file per invoice, pages
separated by form feeds), extracts structured fields and runs the
validation rules over the batch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		},
	}

	root.AddCommand(a.extractCmd(), a.validateCmd(), a.fullRunCmd())

	return root
}

func (a *app) engine() *validation.Engine {
	return validation.NewEngine(a.cfg.DateParser())
}

func (a *app) extractDir(cmd *cobra.Command, dir string) ([]extract.Document, error) {
	provider := document.NewDirProvider(dir)

	ids, err := provider.List()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no %s documents in %s", document.Ext, dir)
	}

	svc := extract.NewService(provider, extract.NewExtractor(a.cfg.DateParser()), a.cfg.Extract.Workers, a.logger)
	docs, _ := svc.ExtractAll(cmd.Context(), ids)

	return docs, nil
}

// finish prints the summary, writes the requested report files and reports
// whether any invoice failed validation.
func (a *app) finish(cmd *cobra.Command, summary validation.Summary, jsonPath, xlsxPath string) error {
	if err := report.Text(cmd.OutOrStdout(), summary); err != nil {
		return fmt.Errorf("printing summary: %w", err)
	}

	if jsonPath != "" {
		if err := a.writeFile(jsonPath, func(w io.Writer) error { return report.JSON(w, summary) }); err != nil {
			return err
		}
	}

	if xlsxPath != "" {
		data, err := report.XLSX(summary)
		if err != nil {
			return err
		}

		if err := a.writeFile(xlsxPath, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}); err != nil {
			return err
		}
	}

	if summary.InvalidInvoices > 0 {
		return ErrInvalidInvoices
	}

	return nil
}

func (a *app) writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		a.logger.Info("wrote file", "path", path, "size", humanize.Bytes(uint64(info.Size())))
	}

	return nil
}
