// Package extract assembles invoice records from document text.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/locate"
	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reBlanks     = regexp.MustCompile(`[ \t\x{00A0}\x{2007}\x{202F}]{2,}|[\x{00A0}\x{2007}\x{202F}]`)
	reRule       = regexp.MustCompile(`(?m)^[ \t]*[_\-=]{3,}[ \t]*$`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Extractor turns page text into an Invoice. It never fails: anything it
// cannot read is left absent for the rule engine to report.
type Extractor struct {
	dates normalize.DateParser
}

func NewExtractor(dates normalize.DateParser) Extractor {
	return Extractor{dates: dates}
}

// Extract reads one document given as its pages in reading order.
func (e Extractor) Extract(pages []string) invoice.Invoice {
	c := locate.Locate(Normalize(strings.Join(pages, "\n")))

	return invoice.Invoice{
		InvoiceNumber:     invoice.Text(c.InvoiceNumber),
		ExternalReference: invoice.Text(c.ExternalReference),
		InvoiceDate:       e.date(c.InvoiceDate),
		DueDate:           e.date(c.DueDate),
		SellerName:        invoice.Text(c.SellerName),
		SellerAddress:     invoice.Text(c.SellerAddress),
		SellerTaxID:       invoice.Text(c.SellerTaxID),
		BuyerName:         invoice.Text(c.BuyerName),
		BuyerAddress:      invoice.Text(c.BuyerAddress),
		BuyerTaxID:        invoice.Text(c.BuyerTaxID),
		Currency:          invoice.Text(c.Currency),
		NetTotal:          amount(c.NetTotal),
		TaxAmount:         amount(c.TaxAmount),
		GrossTotal:        amount(c.GrossTotal),
		TaxRate:           amount(c.TaxRate),
		LineItems:         lineItems(c.LineItems),
	}
}

// Normalize unifies line endings and collapses runs of blanks. Line breaks
// are kept since the locator works line by line.
func Normalize(s string) string {
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reRule.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

func (e Extractor) date(token string) *invoice.Date {
	d, ok := e.dates.Parse(token)
	if !ok {
		return nil
	}

	return &d
}

func amount(token string) *decimal.Decimal {
	if token == "" {
		return nil
	}

	d, ok := normalize.ParseAmount(token)
	if !ok {
		return nil
	}

	return &d
}

func lineItems(rows []locate.RowCandidate) []invoice.LineItem {
	var items []invoice.LineItem

	for _, r := range rows {
		item := invoice.LineItem{
			Description: invoice.Text(r.Description),
			Quantity:    amount(r.Quantity),
			UnitPrice:   amount(r.UnitPrice),
			LineTotal:   amount(r.LineTotal),
		}

		if item.Empty() {
			continue
		}

		items = append(items, item)
	}

	return items
}
