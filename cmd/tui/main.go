package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoiceqc/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	"github.com/MrJamesThe3rd/invoiceqc/internal/database"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	reportStore "github.com/MrJamesThe3rd/invoiceqc/internal/report/store"
)

type model struct {
	// reportService is nil when no database is configured.
	reportService *report.Service

	currentView View

	openView    view.OpenModel
	savedView   view.SavedModel
	resultsView view.ResultsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewOpen    View = 1
	ViewSaved   View = 2
	ViewResults View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	m := model{currentView: ViewMenu}

	if cfg.DB.Enabled {
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		m.reportService = report.NewService(reportStore.New(db))
	}

	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOpen
				m.openView = view.NewOpenModel()

				return m, m.openView.Init()
			case "2":
				if m.reportService == nil {
					return m, nil
				}

				m.currentView = ViewSaved
				m.savedView = view.NewSavedModel(m.reportService)

				return m, m.savedView.Init()
			}
		}
	case view.OpenReportMsg:
		m.currentView = ViewResults
		m.resultsView = view.NewResultsModel(msg.Title, msg.Summary)

		return m, m.resultsView.Init()
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOpen:
		var newModel tea.Model
		newModel, cmd = m.openView.Update(msg)
		m.openView = newModel.(view.OpenModel)
	case ViewSaved:
		var newModel tea.Model
		newModel, cmd = m.savedView.Update(msg)
		m.savedView = newModel.(view.SavedModel)
	case ViewResults:
		var newModel tea.Model
		newModel, cmd = m.resultsView.Update(msg)
		m.resultsView = newModel.(view.ResultsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		saved := "2. Browse Saved Reports\n\n"
		if m.reportService == nil {
			saved = lipgloss.NewStyle().Faint(true).Render("2. Browse Saved Reports (DB_ENABLED=false)") + "\n\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"InvoiceQC TUI\n\n" +
				"1. Open Report File\n" +
				saved +
				"q. Quit",
		)
	case ViewOpen:
		return m.openView.View()
	case ViewSaved:
		return m.savedView.View()
	case ViewResults:
		return m.resultsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
