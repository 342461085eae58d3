package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Text is plain overlay content, word wrapped to the overlay width.
type Text string

// Markdown is overlay content rendered with glamour.
type Markdown string

const minOverlayWidth = 8

// Renderer turns overlay content into a framed block no wider than the
// requested maximum.
type Renderer struct {
	// MarkdownStyle is a glamour standard style name.
	MarkdownStyle string
	// Interactive frames use the accent border color.
	Interactive bool

	markdown map[int]*glamour.TermRenderer
}

func NewRenderer() *Renderer {
	return &Renderer{
		MarkdownStyle: "dark",
		markdown:      make(map[int]*glamour.TermRenderer),
	}
}

// Render frames content so the result is at most maxWidth cells wide.
func (r *Renderer) Render(content any, maxWidth float64) string {
	box := NewBorderedBox("", "")
	box.Focused = r.Interactive

	inner := int(maxWidth) - box.FrameWidth()
	if inner < minOverlayWidth {
		inner = minOverlayWidth
	}

	var body string
	switch c := content.(type) {
	case Markdown:
		body = r.renderMarkdown(string(c), inner)
	case Text:
		body = wrapText(string(c), inner)
	case string:
		body = wrapText(c, inner)
	case fmt.Stringer:
		body = wrapText(c.String(), inner)
	case nil:
		body = ""
	default:
		body = wrapText(fmt.Sprint(c), inner)
	}

	box.Content = body
	return box.Render()
}

// PlainText strips styling from rendered overlay output and removes the
// frame characters.
func PlainText(rendered string) string {
	lines := strings.Split(ansi.Strip(rendered), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "╭╮╰╯─│")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func wrapText(text string, width int) string {
	text = strings.TrimSpace(text)
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func (r *Renderer) renderMarkdown(src string, width int) string {
	tr, err := r.markdownRenderer(width)
	if err != nil {
		log.Printf("tui: markdown renderer unavailable: %v", err)
		return wrapText(src, width)
	}
	out, err := tr.Render(src)
	if err != nil {
		log.Printf("tui: markdown render failed: %v", err)
		return wrapText(src, width)
	}

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[0])) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	body := strings.Join(lines, "\n")
	if lipgloss.Width(body) > width {
		body = lipgloss.NewStyle().MaxWidth(width).Render(body)
	}
	return body
}

func (r *Renderer) markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if r.markdown == nil {
		r.markdown = make(map[int]*glamour.TermRenderer)
	}
	if tr, ok := r.markdown[width]; ok {
		return tr, nil
	}
	style := r.MarkdownStyle
	if style == "" {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.markdown[width] = tr
	return tr, nil
}
