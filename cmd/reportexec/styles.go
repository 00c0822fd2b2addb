package main

import "github.com/charmbracelet/lipgloss"

// Plan output styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD966"))

	pluginStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87D7FF"))

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFFFAF"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))
)
