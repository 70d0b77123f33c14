package tui

import "github.com/charmbracelet/lipgloss"

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	StyleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	StyleFocused = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	StyleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	StyleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	StyleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	StyleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	StyleAddButton    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("27"))
	StyleUpdateButton = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214"))
)
