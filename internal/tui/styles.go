package tui

import "github.com/charmbracelet/lipgloss"

var (
	colCyan    = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#8BE9FD"}
	colDimGray = lipgloss.AdaptiveColor{Light: "#A8A8A8", Dark: "#585858"}
	colGreen   = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#50FA7B"}
	colPurple  = lipgloss.AdaptiveColor{Light: "#5F00AF", Dark: "#BD93F9"}
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	okStyle         = lipgloss.NewStyle().Foreground(colGreen)
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C")).Bold(true)
	statusInfoStyle = lipgloss.NewStyle().Foreground(colCyan)
	boxTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colCyan)
	fillerStyle     = lipgloss.NewStyle().Faint(true)

	anchorStyle         = lipgloss.NewStyle().Foreground(colCyan)
	anchorHoverStyle    = lipgloss.NewStyle().Foreground(colCyan).Underline(true)
	anchorFocusedStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	anchorDisabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	statusFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(colPurple)
	statusStateStyle = lipgloss.NewStyle().Foreground(colGreen)
	statusNoteStyle  = lipgloss.NewStyle().Faint(true)

	helpBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colDimGray).Padding(0, 1)
	helpBoxTitle   = lipgloss.NewStyle().Bold(true).Underline(true)
	helpKeyStyle   = lipgloss.NewStyle().Bold(true).Foreground(colCyan)
	helpLabelStyle = lipgloss.NewStyle()
)
