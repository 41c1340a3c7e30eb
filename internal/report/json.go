package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// ResultJSON is the wire form of one validation result.
type ResultJSON struct {
	InvoiceID string   `json:"invoice_id"`
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
}

// SummaryJSON is the wire form of a summary. Codes are written as their
// stable strings.
type SummaryJSON struct {
	TotalInvoices   int            `json:"total_invoices"`
	ValidInvoices   int            `json:"valid_invoices"`
	InvalidInvoices int            `json:"invalid_invoices"`
	ErrorCounts     map[string]int `json:"error_counts"`
	Results         []ResultJSON   `json:"results"`
}

func ToJSON(s validation.Summary) SummaryJSON {
	out := SummaryJSON{
		TotalInvoices:   s.TotalInvoices,
		ValidInvoices:   s.ValidInvoices,
		InvalidInvoices: s.InvalidInvoices,
		ErrorCounts:     make(map[string]int, len(s.ErrorCounts)),
		Results:         make([]ResultJSON, 0, len(s.Results)),
	}

	for code, n := range s.ErrorCounts {
		out.ErrorCounts[code.String()] = n
	}

	for _, r := range s.Results {
		errs := make([]string, 0, len(r.Errors))
		for _, c := range r.Errors {
			errs = append(errs, c.String())
		}

		out.Results = append(out.Results, ResultJSON{InvoiceID: r.InvoiceID, IsValid: r.IsValid, Errors: errs})
	}

	return out
}

func (s SummaryJSON) Summary() validation.Summary {
	out := validation.Summary{
		TotalInvoices:   s.TotalInvoices,
		ValidInvoices:   s.ValidInvoices,
		InvalidInvoices: s.InvalidInvoices,
		ErrorCounts:     make(map[validation.Code]int, len(s.ErrorCounts)),
		Results:         make([]validation.Result, 0, len(s.Results)),
	}

	for code, n := range s.ErrorCounts {
		out.ErrorCounts[validation.Code(code)] = n
	}

	for _, r := range s.Results {
		var codes []validation.Code
		for _, c := range r.Errors {
			codes = append(codes, validation.Code(c))
		}

		out.Results = append(out.Results, validation.Result{InvoiceID: r.InvoiceID, IsValid: r.IsValid, Errors: codes})
	}

	return out
}

// JSON writes s as indented JSON.
func JSON(w io.Writer, s validation.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(ToJSON(s)); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	return nil
}

// ReadJSON reads a summary written by JSON.
func ReadJSON(r io.Reader) (validation.Summary, error) {
	var s SummaryJSON
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return validation.Summary{}, fmt.Errorf("decoding summary: %w", err)
	}

	return s.Summary(), nil
}

// CodeCount is one row of the error frequency table.
type CodeCount struct {
	Code  validation.Code
	Count int
}

// TopErrors returns the error counts sorted by count, highest first. Ties are
// ordered by code. n <= 0 returns all of them.
func TopErrors(s validation.Summary, n int) []CodeCount {
	counts := make([]CodeCount, 0, len(s.ErrorCounts))
	for code, c := range s.ErrorCounts {
		counts = append(counts, CodeCount{Code: code, Count: c})
	}

	slices.SortFunc(counts, func(a, b CodeCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		if a.Code < b.Code {
			return -1
		}

		if a.Code > b.Code {
			return 1
		}

		return 0
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}

	return counts
}
