package tui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the review screen.
var (
	colorRed    = lipgloss.Color("#FF5F5F")
	colorGreen  = lipgloss.Color("#5FFF87")
	colorYellow = lipgloss.Color("#FFFF5F")
	colorBlue   = lipgloss.Color("#5FAFFF")
	colorGray   = lipgloss.Color("#666666")
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorAmber  = lipgloss.Color("#FFAF5F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(colorAmber).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("#003366"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	cutBadgeStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	keepBadgeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	disagreeStyle = lipgloss.NewStyle().
			Foreground(colorAmber)

	timecodeStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	notePromptStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
