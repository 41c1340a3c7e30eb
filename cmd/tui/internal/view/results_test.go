package view_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func sampleSummary() validation.Summary {
	return validation.Summary{
		TotalInvoices:   3,
		ValidInvoices:   1,
		InvalidInvoices: 2,
		ErrorCounts: map[validation.Code]int{
			validation.TotalsMismatch:       2,
			validation.MissingInvoiceNumber: 1,
		},
		Results: []validation.Result{
			{InvoiceID: "A-1", IsValid: true},
			{InvoiceID: "A-2", Errors: []validation.Code{validation.TotalsMismatch}},
			{InvoiceID: "unknown-3", Errors: []validation.Code{validation.MissingInvoiceNumber, validation.TotalsMismatch}},
		},
	}
}

func press(t *testing.T, m view.ResultsModel, key string) (view.ResultsModel, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	if key == "esc" {
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	next, cmd := m.Update(msg)

	rm, ok := next.(view.ResultsModel)
	require.True(t, ok)

	return rm, cmd
}

func ids(results []validation.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.InvoiceID
	}

	return out
}

func TestResultsModel_FilterCycle(t *testing.T) {
	m := view.NewResultsModel("report.json", sampleSummary())

	assert.Equal(t, validation.Code(""), m.Filter())
	assert.Equal(t, []string{"A-1", "A-2", "unknown-3"}, ids(m.Visible()))

	m, _ = press(t, m, "f")
	assert.Equal(t, validation.TotalsMismatch, m.Filter())
	assert.Equal(t, []string{"A-2", "unknown-3"}, ids(m.Visible()))
	assert.Contains(t, m.View(), "totals_mismatch (2)")

	m, _ = press(t, m, "f")
	assert.Equal(t, validation.MissingInvoiceNumber, m.Filter())
	assert.Equal(t, []string{"unknown-3"}, ids(m.Visible()))

	m, _ = press(t, m, "f")
	assert.Equal(t, validation.Code(""), m.Filter())
}

func TestResultsModel_Keys(t *testing.T) {
	m := view.NewResultsModel("report.json", sampleSummary())

	_, cmd := press(t, m, "esc")
	require.NotNil(t, cmd)
	assert.Equal(t, view.BackMsg{}, cmd())

	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestResultsModel_EmptySummary(t *testing.T) {
	m := view.NewResultsModel("empty.json", validation.Summary{})

	m, _ = press(t, m, "f")
	assert.Equal(t, validation.Code(""), m.Filter())
	assert.Empty(t, m.Visible())
}
