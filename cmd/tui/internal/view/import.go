package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendy/internal/importer"
	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/tracker"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSetup importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	tracker       *tracker.Tracker
	importService *importer.Service

	state      importState
	form       *huh.Form
	filePicker filepicker.Model

	bank     importer.Bank
	category string

	status string
	err    error
}

func NewImportModel(t *tracker.Tracker, impSvc *importer.Service, themeSvc *theme.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		CommonModel:   CommonModel{theme: themeSvc},
		tracker:       t,
		importService: impSvc,
		form:          newImportForm(),
		filePicker:    fp,
	}
}

func newImportForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Bank]().
				Key("bank").
				Title("Bank").
				Options(huh.NewOption("Caixa Geral de Depósitos", importer.BankCGD)),

			huh.NewSelect[string]().
				Key("category").
				Title("File every row under").
				Options(huh.NewOptions(transaction.DefaultCategories...)...),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions into %s.", msg.count, m.category)

		return m, nil
	}

	switch m.state {
	case importStateSetup:
		return m.updateSetup(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateSetup
		m.form = newImportForm()
		m.err = nil
		m.status = ""

		return m, m.form.Init()
	}

	return m, Back
}

func (m ImportModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.bank, _ = m.form.Get("bank").(importer.Bank)
		m.category = m.form.GetString("category")
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	case huh.StateAborted:
		return m, Back
	}

	return m, cmd
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	p := m.palette()

	switch m.state {
	case importStateSetup:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s → %s):\n\n%s", m.bank, m.category, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		status := p.successText(m.status)
		if m.err != nil {
			status = p.errorText(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n" + p.muted("(Esc to go back)"))
	}

	return ""
}

// Messages

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank, category := m.bank, m.category

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(bank, f, category)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.tracker.Import(ctx, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(txs)}
	}
}
