package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	SlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(9).
			Align(lipgloss.Center)

	EmptySlotStyle = SlotStyle.
			Foreground(lipgloss.Color("#626262")).
			BorderForeground(lipgloss.Color("#3C3C3C"))

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	FreezeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B2FF")).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	// cardColors indexes the first feature of a card.
	cardColors = []lipgloss.Color{"#FF6B6B", "#96CEB4", "#B48EFF"}

	// tokenColors indexes player ids.
	tokenColors = []lipgloss.Color{"#FFD700", "#74B2FF", "#FF9F68", "#FF7AD9"}
)
