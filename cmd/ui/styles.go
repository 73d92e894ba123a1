// Package ui holds the shared lipgloss styles for the command line
// surface.
package ui

import "github.com/charmbracelet/lipgloss"

// Icons used across commands
const (
	IconCommit = "✔"
	IconGraph  = "⎇"
	IconWarn   = "⚠"
)

var (
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF87"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0A0A0A")).
			Background(lipgloss.Color("#00D7FF")).
			Padding(0, 1)
)

// Yellow styles text in the accent color used for hashes
func Yellow(s string) string { return yellow.Render(s) }

// Cyan styles text in the color used for author names
func Cyan(s string) string { return cyan.Render(s) }

// Green styles text in the color used for refs and success output
func Green(s string) string { return green.Render(s) }

// Magenta styles text in the color used for dates
func Magenta(s string) string { return magenta.Render(s) }

// Red styles text in the color used for errors
func Red(s string) string { return red.Render(s) }

// Header renders a section header banner
func Header(s string) string { return headerStyle.Render(s) }
