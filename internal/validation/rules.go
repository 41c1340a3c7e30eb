package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/normalize"
)

// Tolerance is the largest difference accepted by the amount comparisons.
var Tolerance = decimal.New(1, -2)

// Currencies accepted by the currency rule.
var Currencies = []string{"EUR", "USD", "GBP", "INR", "CHF", "JPY", "AUD", "CAD"}

// rule inspects one invoice and returns the codes it raises, if any.
type rule func(inv invoice.Invoice) []Code

// catalog builds the rules in reporting order.
func catalog(dates normalize.DateParser) []rule {
	return []rule{
		missing(MissingInvoiceNumber, func(inv invoice.Invoice) bool { return inv.InvoiceNumber != nil }),
		missing(MissingInvoiceDate, func(inv invoice.Invoice) bool { return inv.InvoiceDate != nil }),
		missing(MissingSellerName, func(inv invoice.Invoice) bool { return inv.SellerName != nil }),
		missing(MissingBuyerName, func(inv invoice.Invoice) bool { return inv.BuyerName != nil }),
		invalidDate(InvalidInvoiceDate, dates, func(inv invoice.Invoice) *invoice.Date { return inv.InvoiceDate }),
		invalidDate(InvalidDueDate, dates, func(inv invoice.Invoice) *invoice.Date { return inv.DueDate }),
		currency,
		negative(NegativeNetTotal, func(inv invoice.Invoice) *decimal.Decimal { return inv.NetTotal }),
		negative(NegativeTaxAmount, func(inv invoice.Invoice) *decimal.Decimal { return inv.TaxAmount }),
		negative(NegativeGrossTotal, func(inv invoice.Invoice) *decimal.Decimal { return inv.GrossTotal }),
		totals,
		dueDateOrder(dates),
		lineItemsSum,
		sellerBuyer,
	}
}

func raise(ok bool, code Code) []Code {
	if ok {
		return nil
	}

	return []Code{code}
}

func missing(code Code, present func(invoice.Invoice) bool) rule {
	return func(inv invoice.Invoice) []Code {
		return raise(present(inv), code)
	}
}

// validDate parses d and checks it against the year window.
func validDate(dates normalize.DateParser, d invoice.Date) (time.Time, bool) {
	t, err := d.Time()
	if err != nil || !dates.InWindow(t) {
		return time.Time{}, false
	}

	return t, true
}

// invalidDate only judges dates that are present; absence is the job of the
// completeness rules.
func invalidDate(code Code, dates normalize.DateParser, get func(invoice.Invoice) *invoice.Date) rule {
	return func(inv invoice.Invoice) []Code {
		d := get(inv)
		if d == nil {
			return nil
		}

		_, ok := validDate(dates, *d)

		return raise(ok, code)
	}
}

func currency(inv invoice.Invoice) []Code {
	if inv.Currency == nil {
		return nil
	}

	code := strings.ToUpper(strings.TrimSpace(*inv.Currency))
	for _, c := range Currencies {
		if c == code {
			return nil
		}
	}

	return []Code{InvalidCurrency}
}

func negative(code Code, get func(invoice.Invoice) *decimal.Decimal) rule {
	return func(inv invoice.Invoice) []Code {
		v := get(inv)
		return raise(v == nil || !v.IsNegative(), code)
	}
}

func exceeds(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(Tolerance)
}

func totals(inv invoice.Invoice) []Code {
	if inv.NetTotal == nil || inv.TaxAmount == nil || inv.GrossTotal == nil {
		return nil
	}

	return raise(!exceeds(inv.NetTotal.Add(*inv.TaxAmount), *inv.GrossTotal), TotalsMismatch)
}

// dueDateOrder compares only dates that are themselves valid; a broken date
// is already reported by the date rules.
func dueDateOrder(dates normalize.DateParser) rule {
	return func(inv invoice.Invoice) []Code {
		if inv.InvoiceDate == nil || inv.DueDate == nil {
			return nil
		}

		issued, okIssued := validDate(dates, *inv.InvoiceDate)
		due, okDue := validDate(dates, *inv.DueDate)

		if !okIssued || !okDue {
			return nil
		}

		return raise(!due.Before(issued), DueDateBeforeInvoiceDate)
	}
}

// lineItemsSum adds up the line totals that are present; rows without one
// count as zero.
func lineItemsSum(inv invoice.Invoice) []Code {
	if len(inv.LineItems) == 0 || inv.NetTotal == nil {
		return nil
	}

	var sum decimal.Decimal

	for _, item := range inv.LineItems {
		if item.LineTotal == nil {
			continue
		}

		sum = sum.Add(*item.LineTotal)
	}

	return raise(!exceeds(sum, *inv.NetTotal), LineItemsSumMismatch)
}

// sameName compares names case-insensitively after collapsing whitespace.
func sameName(a, b string) bool {
	// A Caser keeps state, so each comparison gets its own.
	fold := cases.Fold()
	norm := func(s string) string {
		return fold.String(strings.Join(strings.Fields(s), " "))
	}

	return norm(a) == norm(b)
}

func sellerBuyer(inv invoice.Invoice) []Code {
	if inv.SellerName == nil || inv.BuyerName == nil {
		return nil
	}

	return raise(!sameName(*inv.SellerName, *inv.BuyerName), SellerBuyerIdentical)
}
