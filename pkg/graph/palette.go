package graph

import "github.com/charmbracelet/lipgloss"

// Palette holds the lane colors, indexed by column modulo its length.
//
// Colors carry no semantic meaning beyond distinguishing adjacent
// lanes; two branches that reuse the same column index far apart in
// history render in the same color.
var Palette = []lipgloss.Color{
	lipgloss.Color("#00D7FF"), // Cyan
	lipgloss.Color("#AF87FF"), // Purple
	lipgloss.Color("#00FF87"), // Green
	lipgloss.Color("#FFD700"), // Gold
	lipgloss.Color("#FF5F87"), // Pink
	lipgloss.Color("#5FD7FF"), // Light Blue
	lipgloss.Color("#FFD787"), // Light Orange
	lipgloss.Color("#87FFD7"), // Aqua
}

// LaneColor returns the palette color for a column index
func LaneColor(column int) lipgloss.Color {
	return Palette[column%len(Palette)]
}
