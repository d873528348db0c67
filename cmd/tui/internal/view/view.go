package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
)

const opTimeout = 5 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	theme *theme.Service
}

func (c CommonModel) palette() Palette {
	return PaletteFor(c.theme.Mode())
}

type Screen int

const (
	ScreenLedger Screen = iota
	ScreenImport
	ScreenExport
)

type NavigateMsg struct {
	To Screen
}

func Navigate(to Screen) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// opCtx bounds a single ledger or theme operation.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}
