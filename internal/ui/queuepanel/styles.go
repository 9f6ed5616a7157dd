package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

const (
	trackSymbol   = "♪"
	autoSymbol    = "✦"
	stopSymbol    = "■"
	delaySymbol   = "⏳"
	messageSymbol = "✉"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	autoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	markerStyle = lipgloss.NewStyle().
			Foreground(styles.T().Secondary)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
