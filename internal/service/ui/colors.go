package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (cyan), readable on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (bright black) keeps descriptions quieter than names
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (yellow)
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	BotNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
