package validation

// Code identifies the rule that fired. The strings are part of the report
// format and must not change.
type Code string

const (
	MissingInvoiceNumber Code = "missing_field:invoice_number"
	MissingInvoiceDate   Code = "missing_field:invoice_date"
	MissingSellerName    Code = "missing_field:seller_name"
	MissingBuyerName     Code = "missing_field:buyer_name"

	InvalidInvoiceDate Code = "invalid_date:invoice_date"
	InvalidDueDate     Code = "invalid_date:due_date"

	InvalidCurrency Code = "invalid_currency"

	NegativeNetTotal   Code = "negative_amount:net_total"
	NegativeTaxAmount  Code = "negative_amount:tax_amount"
	NegativeGrossTotal Code = "negative_amount:gross_total"

	TotalsMismatch           Code = "totals_mismatch"
	DueDateBeforeInvoiceDate Code = "due_date_before_invoice_date"
	LineItemsSumMismatch     Code = "line_items_sum_mismatch"
	SellerBuyerIdentical     Code = "seller_buyer_identical"
)

// Codes lists every code in catalog order.
var Codes = []Code{
	MissingInvoiceNumber,
	MissingInvoiceDate,
	MissingSellerName,
	MissingBuyerName,
	InvalidInvoiceDate,
	InvalidDueDate,
	InvalidCurrency,
	NegativeNetTotal,
	NegativeTaxAmount,
	NegativeGrossTotal,
	TotalsMismatch,
	DueDateBeforeInvoiceDate,
	LineItemsSumMismatch,
	SellerBuyerIdentical,
}

func (c Code) String() string {
	return string(c)
}
