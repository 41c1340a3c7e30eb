package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoiceqc/internal/extract"
	"github.com/MrJamesThe3rd/invoiceqc/internal/intake"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func (a *app) extractCmd() *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract invoices from a directory of text documents",
		Example: `  invoiceqc extract --dir ./invoices
  invoiceqc extract --dir ./invoices --output extracted.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := a.extractDir(cmd, dir)
			if err != nil {
				return err
			}

			invoices := extract.Invoices(docs)

			if output == "" {
				return intake.Encode(cmd.OutOrStdout(), invoices)
			}

			return a.writeFile(output, func(w io.Writer) error { return intake.Encode(w, invoices) })
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of .txt invoice documents")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file (default: stdout)")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var input, reportPath, xlsxPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON list of invoices",
		Example: `  invoiceqc validate --input invoices.json
  invoiceqc validate --input invoices.json --report report.json --xlsx report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()

			invoices, err := intake.Decode(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}

			summary := a.engine().ValidateBatch(validation.Entries(invoices))

			return a.finish(cmd, summary, reportPath, xlsxPath)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with a list of invoices")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the JSON report to this file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an XLSX report to this file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (a *app) fullRunCmd() *cobra.Command {
	var dir, output, reportPath, xlsxPath string

	cmd := &cobra.Command{
		Use:     "full-run",
		Short:   "Extract invoices from a directory and validate them",
		Example: `  invoiceqc full-run --dir ./invoices --report report.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := a.extractDir(cmd, dir)
			if err != nil {
				return err
			}

			if output != "" {
				invoices := extract.Invoices(docs)
				if err := a.writeFile(output, func(w io.Writer) error { return intake.Encode(w, invoices) }); err != nil {
					return err
				}
			}

			summary := a.engine().ValidateBatch(extract.Entries(docs))

			return a.finish(cmd, summary, reportPath, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of .txt invoice documents")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write the extracted invoices to this JSON file")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write the JSON report to this file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an XLSX report to this file")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
