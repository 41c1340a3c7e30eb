package intake_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/intake"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

func TestDecode(t *testing.T) {
	input := `[
  {
    "invoice_number": "INV-001",
    "invoice_date": "2024-01-10",
    "due_date": "  ",
    "seller_name": "ACME GmbH",
    "buyer_name": "Example AG",
    "buyer_tax_id": null,
    "currency": "EUR",
    "net_total": 100.0,
    "tax_amount": "19.00",
    "gross_total": 119,
    "line_items": [
      {"description": "Widget", "quantity": 2, "unit_price": 50, "line_total": 100},
      {"description": ""}
    ],
    "notes": "ignored"
  },
  {}
]`

	got, err := intake.Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	inv := got[0]
	assert.Equal(t, new("INV-001"), inv.InvoiceNumber)
	assert.Equal(t, new(invoice.Date("2024-01-10")), inv.InvoiceDate)
	assert.Nil(t, inv.DueDate)
	assert.Nil(t, inv.BuyerTaxID)
	assert.Nil(t, inv.ExternalReference)
	assert.True(t, decimal.NewFromInt(100).Equal(*inv.NetTotal))
	assert.True(t, decimal.NewFromInt(19).Equal(*inv.TaxAmount))
	assert.True(t, decimal.NewFromInt(119).Equal(*inv.GrossTotal))
	assert.Nil(t, inv.TaxRate)

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, new("Widget"), inv.LineItems[0].Description)
	assert.True(t, decimal.NewFromInt(2).Equal(*inv.LineItems[0].Quantity))
	assert.True(t, inv.LineItems[1].Empty())

	assert.Equal(t, invoice.Invoice{}, got[1])
}

func TestDecode_TextFields(t *testing.T) {
	type testCase struct {
		name  string
		input string
		field func(inv invoice.Invoice) *string
		want  *string
	}

	tests := []testCase{
		{
			name:  "External reference",
			input: `[{"external_reference": "PO-77"}]`,
			field: func(inv invoice.Invoice) *string { return inv.ExternalReference },
			want:  new("PO-77"),
		},
		{
			name:  "Seller address",
			input: `[{"seller_address": "Hauptstr. 1, 10115 Berlin"}]`,
			field: func(inv invoice.Invoice) *string { return inv.SellerAddress },
			want:  new("Hauptstr. 1, 10115 Berlin"),
		},
		{
			name:  "Seller tax id",
			input: `[{"seller_tax_id": "DE123456789"}]`,
			field: func(inv invoice.Invoice) *string { return inv.SellerTaxID },
			want:  new("DE123456789"),
		},
		{
			name:  "Buyer address",
			input: `[{"buyer_address": "1 Main St"}]`,
			field: func(inv invoice.Invoice) *string { return inv.BuyerAddress },
			want:  new("1 Main St"),
		},
		{
			name:  "Currency",
			input: `[{"currency": "USD"}]`,
			field: func(inv invoice.Invoice) *string { return inv.Currency },
			want:  new("USD"),
		},
		{
			name:  "Blank seller name",
			input: `[{"seller_name": ""}]`,
			field: func(inv invoice.Invoice) *string { return inv.SellerName },
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := intake.Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, tt.want, tt.field(got[0]))
		})
	}
}

func TestDecode_KeepsNonCanonicalDates(t *testing.T) {
	got, err := intake.Decode(strings.NewReader(`[{"invoice_date": "10.01.2024"}]`))
	require.NoError(t, err)

	assert.Equal(t, new(invoice.Date("10.01.2024")), got[0].InvoiceDate)
}

func TestDecode_Errors(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr error
	}

	tests := []testCase{
		{name: "Empty list", input: `[]`, wantErr: intake.ErrEmptyBatch},
		{name: "Empty body", input: ``, wantErr: intake.ErrInvalidPayload},
		{name: "Malformed JSON", input: `[{"invoice_number": }]`, wantErr: intake.ErrInvalidPayload},
		{name: "Object instead of list", input: `{"invoice_number": "1"}`, wantErr: intake.ErrInvalidPayload},
		{name: "Number as invoice number", input: `[{"invoice_number": 12}]`, wantErr: intake.ErrInvalidPayload},
		{name: "Amount that is not a number", input: `[{"net_total": "twelve"}]`, wantErr: intake.ErrInvalidPayload},
		{name: "Line items not a list", input: `[{"line_items": {}}]`, wantErr: intake.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := intake.Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncode(t *testing.T) {
	inv := invoice.Invoice{
		InvoiceNumber: new("INV-9"),
		InvoiceDate:   new(invoice.Date("2024-03-15")),
		GrossTotal:    new(decimal.RequireFromString("357.50")),
		LineItems: []invoice.LineItem{
			{Description: new("Widget"), LineTotal: new(decimal.RequireFromString("-5"))},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, intake.Encode(&buf, []invoice.Invoice{inv, {}}))

	out := buf.String()
	assert.Contains(t, out, `"invoice_number": "INV-9"`)
	assert.Contains(t, out, `"invoice_date": "2024-03-15"`)
	assert.Contains(t, out, `"gross_total": 357.5`)
	assert.Contains(t, out, `"line_total": -5`)
	assert.Contains(t, out, `"seller_name": null`)
	assert.Contains(t, out, `"line_items": []`)

	back, err := intake.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, inv.InvoiceNumber, back[0].InvoiceNumber)
	assert.True(t, inv.GrossTotal.Equal(*back[0].GrossTotal))
}
