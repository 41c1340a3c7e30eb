// Package intake reads and writes invoices submitted as JSON data.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/encoding"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

var (
	ErrEmptyBatch     = errors.New("empty invoice list")
	ErrInvalidPayload = errors.New("invalid invoice payload")
)

// number is a decimal written as a bare JSON number. Reading accepts numbers
// and numeric strings.
type number struct {
	decimal.Decimal
}

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// LineItem is the JSON form of one invoice row.
type LineItem struct {
	Description *string `json:"description"`
	Quantity    *number `json:"quantity"`
	UnitPrice   *number `json:"unit_price"`
	LineTotal   *number `json:"line_total"`
}

// Record is the JSON form of an invoice. Dates are kept as text so that
// malformed values reach the rule engine.
type Record struct {
	InvoiceNumber     *string    `json:"invoice_number"`
	ExternalReference *string    `json:"external_reference"`
	InvoiceDate       *string    `json:"invoice_date"`
	DueDate           *string    `json:"due_date"`
	SellerName        *string    `json:"seller_name"`
	SellerAddress     *string    `json:"seller_address"`
	SellerTaxID       *string    `json:"seller_tax_id"`
	BuyerName         *string    `json:"buyer_name"`
	BuyerAddress      *string    `json:"buyer_address"`
	BuyerTaxID        *string    `json:"buyer_tax_id"`
	Currency          *string    `json:"currency"`
	NetTotal          *number    `json:"net_total"`
	TaxAmount         *number    `json:"tax_amount"`
	GrossTotal        *number    `json:"gross_total"`
	TaxRate           *number    `json:"tax_rate"`
	LineItems         []LineItem `json:"line_items"`
}

// Decode reads a JSON array of invoices. The payload is checked against the
// invoice schema first; blank strings are read as absent values.
func Decode(r io.Reader) ([]invoice.Invoice, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	invoices := make([]invoice.Invoice, len(records))
	for i, rec := range records {
		invoices[i] = rec.invoice()
	}

	return invoices, nil
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return nil
}

// Records converts invoices to their JSON form.
func Records(invoices []invoice.Invoice) []Record {
	records := make([]Record, len(invoices))
	for i, inv := range invoices {
		records[i] = fromInvoice(inv)
	}

	return records
}

// Encode writes invoices as an indented JSON array. Absent values are null.
func Encode(w io.Writer, invoices []invoice.Invoice) error {
	records := Records(invoices)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}

	return nil
}

func text(s *string) *string {
	if s == nil {
		return nil
	}

	return invoice.Text(*s)
}

func date(s *string) *invoice.Date {
	t := text(s)
	if t == nil {
		return nil
	}

	return new(invoice.Date(*t))
}

func amount(n *number) *decimal.Decimal {
	if n == nil {
		return nil
	}

	return invoice.Amount(n.Decimal)
}

func toNumber(d *decimal.Decimal) *number {
	if d == nil {
		return nil
	}

	return &number{*d}
}

func (r Record) invoice() invoice.Invoice {
	inv := invoice.Invoice{
		InvoiceNumber:     text(r.InvoiceNumber),
		ExternalReference: text(r.ExternalReference),
		InvoiceDate:       date(r.InvoiceDate),
		DueDate:           date(r.DueDate),
		SellerName:        text(r.SellerName),
		SellerAddress:     text(r.SellerAddress),
		SellerTaxID:       text(r.SellerTaxID),
		BuyerName:         text(r.BuyerName),
		BuyerAddress:      text(r.BuyerAddress),
		BuyerTaxID:        text(r.BuyerTaxID),
		Currency:          text(r.Currency),
		NetTotal:          amount(r.NetTotal),
		TaxAmount:         amount(r.TaxAmount),
		GrossTotal:        amount(r.GrossTotal),
		TaxRate:           amount(r.TaxRate),
	}

	for _, li := range r.LineItems {
		inv.LineItems = append(inv.LineItems, invoice.LineItem{
			Description: text(li.Description),
			Quantity:    amount(li.Quantity),
			UnitPrice:   amount(li.UnitPrice),
			LineTotal:   amount(li.LineTotal),
		})
	}

	return inv
}

func dateText(d *invoice.Date) *string {
	if d == nil {
		return nil
	}

	return new(d.String())
}

func fromInvoice(inv invoice.Invoice) Record {
	r := Record{
		InvoiceNumber:     inv.InvoiceNumber,
		ExternalReference: inv.ExternalReference,
		InvoiceDate:       dateText(inv.InvoiceDate),
		DueDate:           dateText(inv.DueDate),
		SellerName:        inv.SellerName,
		SellerAddress:     inv.SellerAddress,
		SellerTaxID:       inv.SellerTaxID,
		BuyerName:         inv.BuyerName,
		BuyerAddress:      inv.BuyerAddress,
		BuyerTaxID:        inv.BuyerTaxID,
		Currency:          inv.Currency,
		NetTotal:          toNumber(inv.NetTotal),
		TaxAmount:         toNumber(inv.TaxAmount),
		GrossTotal:        toNumber(inv.GrossTotal),
		TaxRate:           toNumber(inv.TaxRate),
		LineItems:         make([]LineItem, 0, len(inv.LineItems)),
	}

	for _, li := range inv.LineItems {
		r.LineItems = append(r.LineItems, LineItem{
			Description: li.Description,
			Quantity:    toNumber(li.Quantity),
			UnitPrice:   toNumber(li.UnitPrice),
			LineTotal:   toNumber(li.LineTotal),
		})
	}

	return r
}
