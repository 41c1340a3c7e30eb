// Package locate finds invoice field candidates in plain text. It returns the
// raw text of each candidate; turning that text into typed values is left to
// the caller.
package locate

import "strings"

// Candidates are the raw field values found in one document. An empty string
// means the field was not found.
type Candidates struct {
	InvoiceNumber     string
	ExternalReference string
	InvoiceDate       string
	DueDate           string

	SellerName    string
	SellerAddress string
	SellerTaxID   string
	BuyerName     string
	BuyerAddress  string
	BuyerTaxID    string

	Currency   string
	NetTotal   string
	TaxAmount  string
	GrossTotal string
	TaxRate    string

	LineItems []RowCandidate
}

// Locate runs every field strategy over text.
func Locate(text string) Candidates {
	lines := splitLines(text)

	seller, buyer := locateParties(lines)

	excluded := make(map[int]bool)
	for _, b := range []block{findBlock(lines, sellerAnchors), findBlock(lines, buyerAnchors)} {
		for i := b.start; i < b.end; i++ {
			excluded[i] = true
		}
	}

	return Candidates{
		InvoiceNumber:     first(lines, invoiceNumberStrategies),
		ExternalReference: first(lines, externalReferenceStrategies),
		InvoiceDate:       first(lines, invoiceDateStrategies),
		DueDate:           first(lines, dueDateStrategies),
		SellerName:        seller.name,
		SellerAddress:     seller.address,
		SellerTaxID:       seller.taxID,
		BuyerName:         buyer.name,
		BuyerAddress:      buyer.address,
		BuyerTaxID:        buyer.taxID,
		Currency:          locateCurrency(lines),
		NetTotal:          first(lines, netTotalStrategies),
		TaxAmount:         first(lines, taxAmountStrategies),
		GrossTotal:        first(lines, grossTotalStrategies),
		TaxRate:           first(lines, taxRateStrategies),
		LineItems:         locateLineItems(lines, excluded),
	}
}

// splitLines trims every line and keeps blank ones, which separate blocks.
func splitLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return lines
}
