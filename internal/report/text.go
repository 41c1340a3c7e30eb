package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const topErrorTypes = 10

// Text writes the human readable summary: the totals and the most frequent
// error types.
func Text(w io.Writer, s validation.Summary) error {
	rule := strings.Repeat("=", 60)

	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\nVALIDATION SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Total Invoices:   %d\n", s.TotalInvoices)
	fmt.Fprintf(&b, "Valid Invoices:   %d\n", s.ValidInvoices)
	fmt.Fprintf(&b, "Invalid Invoices: %d\n", s.InvalidInvoices)

	if top := TopErrors(s, topErrorTypes); len(top) > 0 {
		b.WriteString("\nTop Error Types:\n")

		for _, c := range top {
			fmt.Fprintf(&b, "  - %s: %d\n", c.Code, c.Count)
		}
	}

	fmt.Fprintf(&b, "%s\n\n", rule)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}
