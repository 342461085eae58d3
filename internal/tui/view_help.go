package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// placeHelp paints the key reference centered over base.
func (m model) placeHelp(base string) string {
	panel := buildHelpOverlayContent(m)
	if panel == "" {
		return base
	}
	x := (m.screen.width - lipgloss.Width(panel)) / 2
	y := (m.screen.height - lipgloss.Height(panel)) / 2
	if y < headerHeight() {
		y = headerHeight()
	}
	lines := strings.Split(base, "\n")
	for len(lines) < m.screen.height {
		lines = append(lines, "")
	}
	return strings.Join(placeOverlay(lines, x, y, m.screen.width, panel), "\n")
}

func buildHelpOverlayContent(m model) string {
	section := overlayHelpSection("Keys", m.keys.HelpEntries())
	if section == "" {
		return ""
	}
	return helpBoxStyle.Render(section)
}

func overlayHelpSection(title string, entries []HelpEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		combos := make([]string, 0, len(entry.Combos))
		for _, combo := range entry.Combos {
			combos = append(combos, combo.Display())
		}
		line := lipgloss.JoinHorizontal(lipgloss.Left,
			helpKeyStyle.Render(strings.Join(combos, " / ")),
			" ",
			helpLabelStyle.Render(entry.Label),
		)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		helpBoxTitle.Render(title),
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
