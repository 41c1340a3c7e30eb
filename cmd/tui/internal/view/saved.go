package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

// SavedModel lists the reports stored by the API.
type SavedModel struct {
	CommonModel
	reportService *report.Service

	table   table.Model
	reports []*report.Report
	loading bool
	err     error
}

func NewSavedModel(svc *report.Service) SavedModel {
	columns := []table.Column{
		{Title: "Saved", Width: 16},
		{Title: "ID", Width: 10},
		{Title: "Total", Width: 7},
		{Title: "Valid", Width: 7},
		{Title: "Invalid", Width: 8},
	}

	return SavedModel{
		reportService: svc,
		table:         newTable(columns),
		loading:       true,
	}
}

func (m SavedModel) Title() string { return "Saved Reports" }

func (m SavedModel) ShortHelp() string {
	return "Esc: back | Enter: open | r: refresh"
}

func (m SavedModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SavedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSavedMsg:
		m.loading = false
		m.err = msg.err
		m.reports = msg.reports
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.reports) {
				return m, nil
			}

			rep := m.reports[idx]

			return m, func() tea.Msg {
				return OpenReportMsg{Title: "Report " + rep.ID.String()[:8], Summary: rep.Summary}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SavedModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.reports) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No saved reports.\n\n" + m.ShortHelp())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		boxed(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *SavedModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.reports))
	for _, r := range m.reports {
		rows = append(rows, table.Row{
			FormatAge(r.CreatedAt),
			r.ID.String()[:8],
			strconv.Itoa(r.Summary.TotalInvoices),
			strconv.Itoa(r.Summary.ValidInvoices),
			strconv.Itoa(r.Summary.InvalidInvoices),
		})
	}

	m.table.SetRows(rows)
}

type loadSavedMsg struct {
	reports []*report.Report
	err     error
}

func (m SavedModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		reports, err := m.reportService.List(ctx, report.MaxListLimit)

		return loadSavedMsg{reports: reports, err: err}
	}
}
