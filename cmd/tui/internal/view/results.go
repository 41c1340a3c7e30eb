package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle  = lipgloss.NewStyle().Bold(true).PaddingBottom(1)
)

// ResultsModel browses the per-invoice results of one summary.
type ResultsModel struct {
	CommonModel

	title   string
	summary validation.Summary
	table   table.Model

	// codes is the filter cycle, most frequent first. Index 0 of filterIdx
	// shows every invoice.
	codes     []validation.Code
	filterIdx int
}

func NewResultsModel(title string, s validation.Summary) ResultsModel {
	columns := []table.Column{
		{Title: "Invoice", Width: 24},
		{Title: "Valid", Width: 6},
		{Title: "Errors", Width: 70},
	}

	var codes []validation.Code
	for _, c := range report.TopErrors(s, 0) {
		codes = append(codes, c.Code)
	}

	m := ResultsModel{
		title:   title,
		summary: s,
		table:   newTable(columns),
		codes:   codes,
	}
	m.refreshTable()

	return m
}

func (m ResultsModel) Title() string { return "Validation Results" }

func (m ResultsModel) ShortHelp() string {
	return "Esc: back | f: error filter | q: quit"
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Filter returns the error code being filtered on, or "" when every invoice
// is shown.
func (m ResultsModel) Filter() validation.Code {
	if m.filterIdx == 0 {
		return ""
	}

	return m.codes[m.filterIdx-1]
}

// Visible returns the results that pass the current filter.
func (m ResultsModel) Visible() []validation.Result {
	code := m.Filter()
	if code == "" {
		return m.summary.Results
	}

	var out []validation.Result

	for _, r := range m.summary.Results {
		for _, c := range r.Errors {
			if c == code {
				out = append(out, r)
				break
			}
		}
	}

	return out
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "q", "ctrl+c":
			return m, tea.Quit
		case "f":
			m.filterIdx = (m.filterIdx + 1) % (len(m.codes) + 1)
			m.refreshTable()
			m.table.GotoTop()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ResultsModel) View() string {
	s := m.summary

	header := headerStyle.Render(fmt.Sprintf("%s  total %d | %s | %s",
		m.title,
		s.TotalInvoices,
		validStyle.Render(fmt.Sprintf("valid %d", s.ValidInvoices)),
		invalidStyle.Render(fmt.Sprintf("invalid %d", s.InvalidInvoices)),
	))

	filter := "All"
	if code := m.Filter(); code != "" {
		filter = fmt.Sprintf("%s (%d)", code, s.ErrorCounts[code])
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().PaddingBottom(1).Render("Filter: [f] Error: "+activeStyle(filter)),
		boxed(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ResultsModel) refreshTable() {
	visible := m.Visible()

	rows := make([]table.Row, 0, len(visible))
	for _, r := range visible {
		valid := "no"
		if r.IsValid {
			valid = "yes"
		}

		errs := make([]string, len(r.Errors))
		for i, c := range r.Errors {
			errs[i] = c.String()
		}

		rows = append(rows, table.Row{r.InvoiceID, valid, strings.Join(errs, ", ")})
	}

	m.table.SetRows(rows)
}
