package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const title = "overlaykit — anchored overlays"

// footerHeight covers the status bar and the key hint line.
const footerHeight = 2

func headerHeight() int {
	return lipgloss.Height(titleStyle.Render(title))
}

var shortHelpActions = []Action{
	ActFocusNext, ActDismiss, ActCyclePlacement, ActToggleDisabled, ActCopyOverlay, ActHelp, ActQuit,
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.statusBar() + "\n")
	b.WriteString(helpStyle.Render(m.keys.ShortHelp(shortHelpActions...)))

	base := m.zones.Scan(b.String())
	if m.showHelp {
		base = m.placeHelp(base)
	}
	return m.layer.Composite(base, m.screen.width, m.screen.height)
}

func (m model) statusBar() string {
	focus := "no focus"
	state := ""
	coords := ""
	if f := m.focus.focused(); f >= 0 {
		item := m.anchors[f]
		focus = item.spec.Label
		state = item.binding.State().String()
		if pt, ok := item.binding.Coordinates(); ok {
			x, y := pt.Round()
			coords = fmt.Sprintf("@%d,%d %s", x, y, item.binding.Options().Placement)
		}
	}
	note := ""
	if m.activity.count > 0 {
		note = fmt.Sprintf("%s (%d)", m.activity.last, m.activity.count)
	}

	segments := []PowerlineSegment{
		{Text: focus, Style: statusFocusStyle},
		{Text: state, Style: statusStateStyle},
		{Text: coords, Style: statusStateStyle},
		{Text: note, Style: statusNoteStyle},
	}
	if m.status.Label != "" {
		segments = append(segments, PowerlineSegment{Text: m.status.Render(), Style: lipgloss.NewStyle()})
	}
	return NewPowerlineBar(segments).RenderFullWidth(m.screen.width)
}
