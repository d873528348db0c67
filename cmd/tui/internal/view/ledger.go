package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/tracker"
	"github.com/MrJamesThe3rd/spendy/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
	ledgerStateConfirmClear
)

var typeFilters = []transaction.Type{transaction.TypeAll, transaction.TypeExpense, transaction.TypeIncome}

type LedgerModel struct {
	CommonModel
	tracker *tracker.Tracker

	state ledgerState
	table table.Model
	txs   []transaction.Transaction
	form  *huh.Form

	typeIdx  int
	category string

	status string
	err    error
}

func NewLedgerModel(t *tracker.Tracker, themeSvc *theme.Service) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Category", Width: 20},
		{Title: "Amount", Width: 14},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	m := LedgerModel{
		CommonModel: CommonModel{theme: themeSvc},
		tracker:     t,
		table:       tbl,
	}
	m.syncFilter()
	m.refresh()

	return m
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	switch m.state {
	case ledgerStateAdd:
		return "Tab: next field | Enter: save | Esc: cancel"
	case ledgerStateConfirmClear:
		return "←/→: choose | Enter: confirm | Esc: cancel"
	}

	return "a: add | x: delete | t: type | c: category | D: clear all | T: theme | i: import | e: export | q: quit"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerChangedMsg:
		m.err = msg.err
		m.status = msg.status
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()
		m.syncFilter()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case ledgerStateAdd, ledgerStateConfirmClear:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			return m.enterForm(ledgerStateAdd, newAddForm())
		case "D":
			return m.enterForm(ledgerStateConfirmClear, newClearForm())
		case "x", "delete":
			return m, m.deleteCmd()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.applyFilter()

			return m, nil
		case "c":
			m.category = nextCategory(m.category, m.tracker.Categories())
			m.applyFilter()

			return m, nil
		case "T":
			return m, m.toggleThemeCmd()
		case "i":
			return m, Navigate(ScreenImport)
		case "e":
			return m, Navigate(ScreenExport)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterForm(state ledgerState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.status = ""
	m.err = nil
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == ledgerStateAdd {
			return m, m.addCmd()
		}

		return m, m.clearCmd()
	case huh.StateAborted:
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, cmd
}

func (m LedgerModel) View() string {
	p := m.palette()

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(p),
		"",
		m.viewFilters(p),
		"",
		m.viewTable(p),
	)

	if m.form != nil {
		title := "Add Transaction"
		if m.state == ledgerStateConfirmClear {
			title = "Clear All Data"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	switch {
	case m.err != nil:
		content += "\n" + p.errorText(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		content += "\n" + p.muted(m.status)
	}

	content += "\n\n" + p.muted(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m LedgerModel) viewHeader(p Palette) string {
	s := m.tracker.BalanceSummary()

	balanceColor := p.Income
	if s.TotalBalance.IsNegative() {
		balanceColor = p.Expense
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("Spendy")
	mode := p.muted(fmt.Sprintf("[%s]", m.theme.Mode()))

	totals := fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Foreground(p.Income).Render("Income +"+transaction.FormatAmount(s.TotalIncome)),
		lipgloss.NewStyle().Foreground(p.Expense).Render("Expenses -"+transaction.FormatAmount(s.TotalExpenses)),
		lipgloss.NewStyle().Bold(true).Foreground(balanceColor).Render("Balance "+transaction.FormatAmount(s.TotalBalance)),
	)

	return title + " " + mode + "\n" + totals
}

func (m LedgerModel) viewFilters(p Palette) string {
	category := m.category
	if category == "" {
		category = "All"
	}

	return fmt.Sprintf("Filter: [t] Type: %s | [c] Category: %s  %s",
		p.accent(typeLabel(typeFilters[m.typeIdx])),
		p.accent(category),
		p.muted(fmt.Sprintf("(%d of %d)", len(m.txs), len(m.tracker.AllTransactions()))),
	)
}

func (m LedgerModel) viewTable(p Palette) string {
	if len(m.txs) == 0 {
		return p.muted("No transactions yet. Press a to add one.")
	}

	tbl := m.table
	tbl.SetStyles(p.tableStyles())

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Render(tbl.View())
}

// syncFilter pulls the tracker's filter into the cycling indices. ClearAllData
// resets it behind our back.
func (m *LedgerModel) syncFilter() {
	f := m.tracker.Filters()

	m.typeIdx = 0

	for i, t := range typeFilters {
		if t == f.Type {
			m.typeIdx = i
		}
	}

	m.category = f.Category
}

func (m *LedgerModel) applyFilter() {
	f := m.tracker.Filters()
	f.Type = typeFilters[m.typeIdx]
	f.Category = m.category

	if err := m.tracker.UpdateFilters(f); err != nil {
		m.err = err
	}

	m.refresh()
}

func (m *LedgerModel) refresh() {
	m.txs = m.tracker.Transactions()

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			transaction.FormatDate(tx.Date),
			typeLabel(tx.Type),
			transaction.CategoryIcon(tx.Category) + " " + tx.Category,
			signedAmount(tx),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m LedgerModel) selected() (uuid.UUID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return uuid.Nil, false
	}

	return m.txs[idx].ID, true
}

// nextCategory cycles "" (all), then each known category in order.
func nextCategory(current string, categories []string) string {
	options := append([]string{""}, categories...)

	for i, c := range options {
		if c == current {
			return options[(i+1)%len(options)]
		}
	}

	return ""
}

func typeLabel(t transaction.Type) string {
	switch t {
	case transaction.TypeIncome:
		return "Income"
	case transaction.TypeExpense:
		return "Expense"
	}

	return "All"
}

func signedAmount(tx transaction.Transaction) string {
	if tx.Type == transaction.TypeIncome {
		return "+" + transaction.FormatAmount(tx.Amount)
	}

	return "-" + transaction.FormatAmount(tx.Amount)
}

func newAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(transaction.DefaultCategories...)...),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				),
		),
	).WithWidth(45).WithShowHelp(false)
}

func newClearForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete every transaction and preference?").
				Affirmative("Delete").
				Negative("Cancel"),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validateAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}

	if d.IsNegative() {
		return transaction.ErrInvalidAmount
	}

	return nil
}

// parseAmount accepts a decimal comma as typed on European keyboards.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("amount must be a number")
	}

	return d, nil
}

// Messages

type ledgerChangedMsg struct {
	status string
	err    error
}

func (m LedgerModel) addCmd() tea.Cmd {
	amount, err := parseAmount(m.form.GetString("amount"))
	if err != nil {
		return func() tea.Msg { return ledgerChangedMsg{err: err} }
	}

	typ, _ := m.form.Get("type").(transaction.Type)

	params := transaction.NewParams{
		Amount:   amount,
		Category: m.form.GetString("category"),
		Type:     typ,
	}

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		tx, err := m.tracker.AddTransaction(ctx, params)
		if err != nil {
			return ledgerChangedMsg{err: err}
		}

		return ledgerChangedMsg{status: fmt.Sprintf("Added %s %s to %s.", typeLabel(tx.Type), signedAmount(tx), tx.Category)}
	}
}

func (m LedgerModel) deleteCmd() tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		m.tracker.DeleteTransaction(ctx, id)

		return ledgerChangedMsg{status: "Transaction deleted."}
	}
}

func (m LedgerModel) clearCmd() tea.Cmd {
	if !m.form.GetBool("confirm") {
		return func() tea.Msg { return ledgerChangedMsg{status: "Nothing cleared."} }
	}

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		m.tracker.ClearAllData(ctx)

		return ledgerChangedMsg{status: "All data cleared."}
	}
}

func (m LedgerModel) toggleThemeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		mode := m.theme.Toggle(ctx)

		return ledgerChangedMsg{status: fmt.Sprintf("Switched to %s mode.", mode)}
	}
}
