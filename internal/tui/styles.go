package tui

import (
	"github.com/amanthanvi/bloom/internal/records"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	primary   lipgloss.Color
	accent    lipgloss.Color
	text      lipgloss.Color
	subtext   lipgloss.Color
	border    lipgloss.Color
	success   lipgloss.Color
	errorText lipgloss.Color
}

var (
	lightPalette = palette{
		primary:   lipgloss.Color("#7C9885"), // sage
		accent:    lipgloss.Color("#D4A574"), // terracotta
		text:      lipgloss.Color("#3A3A3A"),
		subtext:   lipgloss.Color("#6B6B6B"),
		border:    lipgloss.Color("#E8DCC4"),
		success:   lipgloss.Color("#9BC4BC"),
		errorText: lipgloss.Color("#D4756E"),
	}
	darkPalette = palette{
		primary:   lipgloss.Color("#9BC4BC"), // teal
		accent:    lipgloss.Color("#D4A574"),
		text:      lipgloss.Color("#E8E8E8"),
		subtext:   lipgloss.Color("#B0B0B0"),
		border:    lipgloss.Color("#3A3A3A"),
		success:   lipgloss.Color("#9BC4BC"),
		errorText: lipgloss.Color("#E67E73"),
	}
)

type styles struct {
	app       lipgloss.Style
	header    lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	counter   lipgloss.Style
	label     lipgloss.Style
	stage     lipgloss.Style
	quote     lipgloss.Style
	author    lipgloss.Style
	celebrate lipgloss.Style
	help      lipgloss.Style
	errorMsg  lipgloss.Style
}

// newStyles builds the style set for a resolved light or dark scheme.
func newStyles(scheme records.ThemePreference) styles {
	p := lightPalette
	if scheme == records.ThemeDark {
		p = darkPalette
	}
	return styles{
		app: lipgloss.NewStyle().
			Foreground(p.text).
			Padding(1, 2),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.border).
			MarginBottom(1),
		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Underline(true).
			PaddingRight(2),
		tab: lipgloss.NewStyle().
			Foreground(p.subtext).
			PaddingRight(2),
		counter: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		label: lipgloss.NewStyle().
			Foreground(p.subtext),
		stage: lipgloss.NewStyle().
			Foreground(p.success).
			Italic(true),
		quote: lipgloss.NewStyle().
			Foreground(p.text).
			Italic(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.accent).
			PaddingLeft(1).
			MarginTop(1),
		author: lipgloss.NewStyle().
			Foreground(p.subtext).
			PaddingLeft(2),
		celebrate: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 2).
			MarginTop(1),
		help: lipgloss.NewStyle().
			Foreground(p.subtext).
			MarginTop(1),
		errorMsg: lipgloss.NewStyle().
			Foreground(p.errorText).
			Bold(true),
	}
}
