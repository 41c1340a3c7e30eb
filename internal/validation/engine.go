// Package validation checks invoices against the rule catalog and aggregates
// the results of a batch.
package validation

import (
	"fmt"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
)

// UnknownID is the id reported for an invoice without a number.
const UnknownID = "UNKNOWN"

// Result is the outcome for one invoice.
type Result struct {
	InvoiceID string
	IsValid   bool
	Errors    []Code
}

// Summary is the outcome for a batch. Results follow the input order.
type Summary struct {
	TotalInvoices   int
	ValidInvoices   int
	InvalidInvoices int
	ErrorCounts     map[Code]int
	Results         []Result
}

// Entry pairs an invoice with the id of its source, such as a file name.
type Entry struct {
	ID      string
	Invoice invoice.Invoice
}

// Engine runs the rule catalog. It holds no mutable state and may be shared
// between goroutines.
type Engine struct {
	rules []rule
}

// NewEngine builds the catalog. dates supplies the year window used to judge
// present dates.
func NewEngine(dates normalize.DateParser) *Engine {
	return &Engine{rules: catalog(dates)}
}

// Validate runs every rule against inv and collects the codes in catalog order.
func (e *Engine) Validate(inv invoice.Invoice) Result {
	return e.validate(inv, UnknownID)
}

func (e *Engine) validate(inv invoice.Invoice, fallback string) Result {
	var codes []Code
	for _, r := range e.rules {
		codes = append(codes, r(inv)...)
	}

	id := fallback
	if inv.InvoiceNumber != nil {
		id = *inv.InvoiceNumber
	}

	return Result{
		InvoiceID: id,
		IsValid:   len(codes) == 0,
		Errors:    codes,
	}
}

// ValidateBatch validates every entry in order. An invoice without a number is
// reported under its entry id, or "unknown-<n>" when that is empty too.
func (e *Engine) ValidateBatch(entries []Entry) Summary {
	s := Summary{
		TotalInvoices: len(entries),
		ErrorCounts:   make(map[Code]int),
		Results:       make([]Result, 0, len(entries)),
	}

	for i, entry := range entries {
		fallback := entry.ID
		if fallback == "" {
			fallback = fmt.Sprintf("unknown-%d", i+1)
		}

		res := e.validate(entry.Invoice, fallback)
		if res.IsValid {
			s.ValidInvoices++
		} else {
			s.InvalidInvoices++
		}

		for _, c := range res.Errors {
			s.ErrorCounts[c]++
		}

		s.Results = append(s.Results, res)
	}

	return s
}

// Entries pairs invoices with positional placeholder ids.
func Entries(invoices []invoice.Invoice) []Entry {
	entries := make([]Entry, len(invoices))
	for i, inv := range invoices {
		entries[i] = Entry{Invoice: inv}
	}

	return entries
}
