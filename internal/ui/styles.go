package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case; anything else is light.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(s)) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// palette is the set of colors one theme is built from.
type palette struct {
	background lipgloss.Color
	foreground lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Color
	accent     lipgloss.Color
	header     lipgloss.Color
	selectedBg lipgloss.Color
	selectedFg lipgloss.Color
	errorFg    lipgloss.Color
	axis       asciigraph.AnsiColor
}

var palettes = map[Theme]palette{
	ThemeLight: {
		background: lipgloss.Color("#F0F0F0"),
		foreground: lipgloss.Color("#000000"),
		muted:      lipgloss.Color("243"),
		border:     lipgloss.Color("#D0D0D0"),
		accent:     lipgloss.Color("#0072B2"),
		header:     lipgloss.Color("#009E73"),
		selectedBg: lipgloss.Color("#E0E0E0"),
		selectedFg: lipgloss.Color("#000000"),
		errorFg:    lipgloss.Color("160"),
		axis:       asciigraph.Black,
	},
	ThemeDark: {
		background: lipgloss.Color("#2E2E2E"),
		foreground: lipgloss.Color("#FFFFFF"),
		muted:      lipgloss.Color("245"),
		border:     lipgloss.Color("#4D4D4D"),
		accent:     lipgloss.Color("86"),
		header:     lipgloss.Color("205"),
		selectedBg: lipgloss.Color("#3D3D3D"),
		selectedFg: lipgloss.Color("#FFFFFF"),
		errorFg:    lipgloss.Color("196"),
		axis:       asciigraph.White,
	},
}

// Styles holds every style the views use, built for one theme.
type Styles struct {
	Base        lipgloss.Style
	Header      lipgloss.Style
	Title       lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Indicator   lipgloss.Style
	About       lipgloss.Style

	Table table.Styles

	axis asciigraph.AnsiColor
}

func NewStyles(t Theme) Styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[ThemeLight]
	}

	tab := lipgloss.NewStyle().
		Padding(0, 1).
		Margin(0, 1)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true).
		Foreground(p.header).
		Bold(true)
	tableStyles.Cell = tableStyles.Cell.
		Foreground(p.foreground)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(p.selectedFg).
		Background(p.selectedBg).
		Bold(false)

	return Styles{
		Base: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Foreground(p.foreground).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(p.header).
			Bold(true).
			Underline(true),
		Title: lipgloss.NewStyle().
			Foreground(p.foreground).
			Background(p.background).
			Bold(true).
			Align(lipgloss.Center),
		ActiveTab: tab.
			Foreground(p.accent).
			Bold(true).
			Underline(true),
		InactiveTab: tab.
			Foreground(p.muted),
		Label: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(p.foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Error: lipgloss.NewStyle().
			Foreground(p.errorFg),
		Indicator: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		About: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Foreground(p.foreground).
			Background(p.background).
			Padding(1, 3).
			Align(lipgloss.Center),
		Table: tableStyles,
		axis:  p.axis,
	}
}
