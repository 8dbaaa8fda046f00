package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles uses ANSI 256-color codes.
type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Faint        lipgloss.Style
	Candidate    lipgloss.Style
	Selected     lipgloss.Style
	Info         lipgloss.Style
	Error        lipgloss.Style
	Dialog       lipgloss.Style
	Help         lipgloss.Style
	Table        table.Styles
}

func DefaultStyles() Styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Label:        lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245")),
		FocusedLabel: lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("39")).Bold(true),
		Faint:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Candidate:    lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("250")),
		Selected:     lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("229")).Bold(true),
		Info:         lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Table: tableStyles,
	}
}
