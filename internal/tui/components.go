package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// -----------------------------------------------------------------------------
// BorderedBox renders content in a bordered frame with optional title
// -----------------------------------------------------------------------------

type BorderedBox struct {
	Title       string
	Content     string
	Width       int
	Focused     bool
	BorderColor lipgloss.AdaptiveColor
}

func NewBorderedBox(title, content string) BorderedBox {
	return BorderedBox{
		Title:       title,
		Content:     content,
		BorderColor: colCyan,
	}
}

// FrameWidth is the number of cells the border and padding add to the
// content width.
func (b BorderedBox) FrameWidth() int {
	return b.style().GetHorizontalFrameSize()
}

func (b BorderedBox) style() lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	if b.Focused {
		style = style.BorderForeground(b.BorderColor)
	} else {
		style = style.BorderForeground(colDimGray)
	}
	return style
}

func (b BorderedBox) Render() string {
	style := b.style()
	if b.Width > 0 {
		style = style.Width(b.Width)
	}

	content := b.Content
	if b.Title != "" {
		titleLine := boxTitleStyle.Render(b.Title)
		content = titleLine + "\n" + content
	}

	return style.Render(content)
}

// -----------------------------------------------------------------------------
// PowerlineBar renders a status bar with powerline-style segments
// -----------------------------------------------------------------------------

type PowerlineSegment struct {
	Text  string
	Style lipgloss.Style
}

type PowerlineBar struct {
	Segments  []PowerlineSegment
	Separator string
}

func NewPowerlineBar(segments []PowerlineSegment) PowerlineBar {
	return PowerlineBar{
		Segments:  segments,
		Separator: " ",
	}
}

// RenderFullWidth renders the bar padded or truncated to width.
func (p PowerlineBar) RenderFullWidth(width int) string {
	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if seg.Text == "" {
			continue
		}
		parts = append(parts, seg.Style.Render(seg.Text))
	}
	if len(parts) == 0 {
		return ""
	}

	content := strings.Join(parts, p.Separator)
	if width <= 0 {
		return content
	}
	contentWidth := lipgloss.Width(content)
	if contentWidth > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(content)
	}
	return content + strings.Repeat(" ", width-contentWidth)
}

// -----------------------------------------------------------------------------
// StatusIndicator renders a simple status with icon
// -----------------------------------------------------------------------------

type StatusIndicator struct {
	Label  string
	Status string // "ok", "error", "warn", "info"
}

func (s StatusIndicator) Render() string {
	var icon string
	var style lipgloss.Style

	switch s.Status {
	case "ok":
		icon = "✓"
		style = okStyle
	case "error":
		icon = "✗"
		style = errorStyle
	case "warn":
		icon = "⚠"
		style = warnStyle
	default:
		icon = "●"
		style = statusInfoStyle
	}

	return style.Render(fmt.Sprintf("%s %s", icon, s.Label))
}
