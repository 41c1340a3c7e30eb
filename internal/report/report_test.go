package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func sampleSummary() validation.Summary {
	return validation.Summary{
		TotalInvoices:   3,
		ValidInvoices:   1,
		InvalidInvoices: 2,
		ErrorCounts: map[validation.Code]int{
			validation.InvalidCurrency:      1,
			validation.TotalsMismatch:       2,
			validation.SellerBuyerIdentical: 1,
		},
		Results: []validation.Result{
			{InvoiceID: "INV-001", IsValid: true},
			{InvoiceID: "INV-002", Errors: []validation.Code{validation.InvalidCurrency, validation.TotalsMismatch, validation.SellerBuyerIdentical}},
			{InvoiceID: "unknown-3", Errors: []validation.Code{validation.TotalsMismatch}},
		},
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, sampleSummary()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, float64(3), got["total_invoices"])
	assert.Equal(t, float64(1), got["valid_invoices"])
	assert.Equal(t, float64(2), got["invalid_invoices"])
	assert.Equal(t, map[string]any{
		"invalid_currency":       float64(1),
		"totals_mismatch":        float64(2),
		"seller_buyer_identical": float64(1),
	}, got["error_counts"])

	results := got["results"].([]any)
	require.Len(t, results, 3)
	assert.Equal(t, map[string]any{"invoice_id": "INV-001", "is_valid": true, "errors": []any{}}, results[0])
	assert.Equal(t, "unknown-3", results[2].(map[string]any)["invoice_id"])

	back, err := report.ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleSummary().ErrorCounts, back.ErrorCounts)
	assert.Equal(t, sampleSummary().Results[1], back.Results[1])
}

func TestJSON_EmptySummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.JSON(&buf, validation.Summary{}))

	assert.JSONEq(t, `{"total_invoices":0,"valid_invoices":0,"invalid_invoices":0,"error_counts":{},"results":[]}`, buf.String())
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := report.ReadJSON(bytes.NewBufferString("{"))
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, sampleSummary()))

	want := "\n" +
		"============================================================\n" +
		"VALIDATION SUMMARY\n" +
		"============================================================\n" +
		"Total Invoices:   3\n" +
		"Valid Invoices:   1\n" +
		"Invalid Invoices: 2\n" +
		"\n" +
		"Top Error Types:\n" +
		"  - totals_mismatch: 2\n" +
		"  - invalid_currency: 1\n" +
		"  - seller_buyer_identical: 1\n" +
		"============================================================\n\n"

	assert.Equal(t, want, buf.String())
}

func TestText_NoErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Text(&buf, validation.Summary{TotalInvoices: 1, ValidInvoices: 1}))

	assert.NotContains(t, buf.String(), "Top Error Types")
}

func TestTopErrors(t *testing.T) {
	s := validation.Summary{ErrorCounts: map[validation.Code]int{}}
	for i, c := range validation.Codes {
		s.ErrorCounts[c] = i % 3
	}

	top := report.TopErrors(s, 10)
	require.Len(t, top, 10)

	for i := 1; i < len(top); i++ {
		prev, cur := top[i-1], top[i]
		assert.True(t, prev.Count > cur.Count || (prev.Count == cur.Count && prev.Code < cur.Code))
	}

	assert.Len(t, report.TopErrors(s, 0), len(validation.Codes))
}

func TestXLSX(t *testing.T) {
	data, err := report.XLSX(sampleSummary())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer f.Close()

	assert.Equal(t, []string{"Results", "Error Counts"}, f.GetSheetList())

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Invoice ID", "Valid", "Errors"}, rows[0])
	assert.Equal(t, "INV-002", rows[2][0])
	assert.Equal(t, "invalid_currency, totals_mismatch, seller_buyer_identical", rows[2][2])

	counts, err := f.GetRows("Error Counts")
	require.NoError(t, err)
	assert.Equal(t, []string{"totals_mismatch", "2"}, counts[1])
	assert.Contains(t, counts, []string{"Total Invoices", "3"})
}

func TestXLSX_Totals(t *testing.T) {
	type testCase struct {
		name    string
		summary validation.Summary
		want    map[string]string
	}

	tests := []testCase{
		{
			name:    "Empty batch",
			summary: validation.Summary{},
			want: map[string]string{
				"A1": "Error Code",
				"A3": "Total Invoices", "B3": "0",
				"A5": "Invalid Invoices", "B5": "0",
			},
		},
		{
			name:    "Totals follow the counts",
			summary: sampleSummary(),
			want: map[string]string{
				"A2": "totals_mismatch", "B2": "2",
				"A6": "Total Invoices", "B6": "3",
				"A7": "Valid Invoices", "B7": "1",
				"A8": "Invalid Invoices", "B8": "2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := report.XLSX(tt.summary)
			require.NoError(t, err)

			f, err := excelize.OpenReader(bytes.NewReader(data))
			require.NoError(t, err)

			defer f.Close()

			for cell, want := range tt.want {
				got, err := f.GetCellValue("Error Counts", cell)
				require.NoError(t, err)
				assert.Equal(t, want, got, cell)
			}
		})
	}
}
