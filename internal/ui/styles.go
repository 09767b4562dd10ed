package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	item     lipgloss.Style
	done     lipgloss.Style
	cursor   lipgloss.Style
	dragged  lipgloss.Style
	meta     lipgloss.Style
	footer   lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		item:     lipgloss.NewStyle(),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true),
		cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		dragged:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		footer:   lipgloss.NewStyle().Faint(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		help:     lipgloss.NewStyle().Faint(true),
	}
}
