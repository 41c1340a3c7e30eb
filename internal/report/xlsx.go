package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const (
	resultsSheet = "Results"
	countsSheet  = "Error Counts"
)

// XLSX returns a workbook with one sheet of per-invoice results and one of
// error counts.
func XLSX(s validation.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it rather than leave it empty.
	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if _, err := f.NewSheet(countsSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	w := &sheetWriter{f: f}

	w.row(resultsSheet, 1, "Invoice ID", "Valid", "Errors")

	for i, r := range s.Results {
		codes := make([]string, 0, len(r.Errors))
		for _, c := range r.Errors {
			codes = append(codes, c.String())
		}

		w.row(resultsSheet, i+2, r.InvoiceID, r.IsValid, strings.Join(codes, ", "))
	}

	w.row(countsSheet, 1, "Error Code", "Count")

	for i, c := range TopErrors(s, 0) {
		w.row(countsSheet, i+2, c.Code.String(), c.Count)
	}

	row := len(s.ErrorCounts) + 3
	w.row(countsSheet, row, "Total Invoices", s.TotalInvoices)
	w.row(countsSheet, row+1, "Valid Invoices", s.ValidInvoices)
	w.row(countsSheet, row+2, "Invalid Invoices", s.InvalidInvoices)

	if w.err != nil {
		return nil, fmt.Errorf("xlsx cells: %w", w.err)
	}

	_ = f.SetColWidth(resultsSheet, "A", "A", 24)
	_ = f.SetColWidth(resultsSheet, "B", "B", 8)
	_ = f.SetColWidth(resultsSheet, "C", "C", 80)
	_ = f.SetColWidth(countsSheet, "A", "A", 36)
	_ = f.SetColWidth(countsSheet, "B", "B", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetWriter keeps the first cell error and skips writes after it.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	for i, v := range values {
		if w.err != nil {
			return
		}

		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			w.err = err
			return
		}

		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			w.err = fmt.Errorf("setting %s!%s: %w", sheet, cell, err)
		}
	}
}
