package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date carried as text. Dates produced by the normalizer are
// always canonical (YYYY-MM-DD); dates submitted as data may not be.
type Date string

// NewDate returns the canonical date for t.
func NewDate(t time.Time) Date {
	return Date(t.Format(time.DateOnly))
}

// Time parses the canonical form. It fails for any other layout.
func (d Date) Time() (time.Time, error) {
	return time.Parse(time.DateOnly, string(d))
}

func (d Date) String() string {
	return string(d)
}

// LineItem is one row of the invoice table. Rows may be partial, so no
// relation between the amounts is enforced here.
type LineItem struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	LineTotal   *decimal.Decimal
}

// Empty reports whether the row resolved none of its fields.
func (li LineItem) Empty() bool {
	return li.Description == nil && li.Quantity == nil && li.UnitPrice == nil && li.LineTotal == nil
}

// Invoice is the normalized record. A nil field means the value was not
// extracted or not provided; it never stands for an empty string or zero.
type Invoice struct {
	InvoiceNumber     *string
	ExternalReference *string

	InvoiceDate *Date
	DueDate     *Date

	SellerName    *string
	SellerAddress *string
	SellerTaxID   *string

	BuyerName    *string
	BuyerAddress *string
	BuyerTaxID   *string

	Currency   *string
	NetTotal   *decimal.Decimal
	TaxAmount  *decimal.Decimal
	GrossTotal *decimal.Decimal
	TaxRate    *decimal.Decimal

	LineItems []LineItem
}

// Text returns a pointer to the trimmed value, or nil when nothing is left.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

// Amount returns a pointer to d.
func Amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}
