package view

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendy/internal/theme"
)

// Palette is the set of colours a screen renders with.
type Palette struct {
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Income     lipgloss.Color
	Expense    lipgloss.Color
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color
}

var (
	lightPalette = Palette{
		Text:       lipgloss.Color("235"),
		Muted:      lipgloss.Color("245"),
		Accent:     lipgloss.Color("25"),
		Border:     lipgloss.Color("250"),
		Income:     lipgloss.Color("28"),
		Expense:    lipgloss.Color("160"),
		SelectedFg: lipgloss.Color("231"),
		SelectedBg: lipgloss.Color("25"),
	}

	darkPalette = Palette{
		Text:       lipgloss.Color("252"),
		Muted:      lipgloss.Color("240"),
		Accent:     lipgloss.Color("205"),
		Border:     lipgloss.Color("240"),
		Income:     lipgloss.Color("46"),
		Expense:    lipgloss.Color("196"),
		SelectedFg: lipgloss.Color("229"),
		SelectedBg: lipgloss.Color("57"),
	}
)

func PaletteFor(mode theme.Mode) Palette {
	if mode == theme.ModeDark {
		return darkPalette
	}

	return lightPalette
}

func (p Palette) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true).
		Foreground(p.Text).
		Bold(true)
	s.Cell = s.Cell.Foreground(p.Text)
	s.Selected = s.Selected.
		Foreground(p.SelectedFg).
		Background(p.SelectedBg).
		Bold(false)

	return s
}

func (p Palette) accent(s string) string {
	return lipgloss.NewStyle().Foreground(p.Accent).Render(s)
}

func (p Palette) muted(s string) string {
	return lipgloss.NewStyle().Foreground(p.Muted).Render(s)
}

func (p Palette) errorText(s string) string {
	return lipgloss.NewStyle().Foreground(p.Expense).Render(s)
}

func (p Palette) successText(s string) string {
	return lipgloss.NewStyle().Foreground(p.Income).Render(s)
}
