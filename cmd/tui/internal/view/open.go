package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

// OpenModel asks for the path of a JSON report written by the CLI.
type OpenModel struct {
	CommonModel

	form *huh.Form
	path *string
	err  error
}

func NewOpenModel() OpenModel {
	m := OpenModel{path: new(string)}
	m.form = newPathForm(m.path)

	return m
}

func newPathForm(path *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Report file").
				Description("JSON report written by invoiceqc validate or full-run").
				Placeholder("report.json").
				Value(path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m OpenModel) Title() string { return "Open Report" }

func (m OpenModel) ShortHelp() string { return "Enter: open | Esc: back" }

func (m OpenModel) Init() tea.Cmd {
	return m.form.Init()
}

type fileLoadedMsg struct {
	msg OpenReportMsg
	err error
}

func (m OpenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.form = newPathForm(m.path)

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return msg.msg }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.err = nil

	return m, loadFileCmd(strings.TrimSpace(*m.path))
}

func (m OpenModel) View() string {
	content := m.form.View()

	if m.err != nil {
		content += "\n" + invalidStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		defer f.Close()

		s, err := report.ReadJSON(f)
		if err != nil {
			return fileLoadedMsg{err: err}
		}

		return fileLoadedMsg{msg: OpenReportMsg{Title: filepath.Base(path), Summary: s}}
	}
}
