package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

type layerEntry struct {
	at       geometry.Point
	rendered string
	width    int
	height   int
}

// Layer is the render surface overlays are mounted on. It sits above the
// whole screen and is composited over the base view after layout, so
// overlays are never clipped by the containers their anchors live in.
type Layer struct {
	renderer *Renderer
	next     overlay.Handle
	entries  map[overlay.Handle]*layerEntry
	order    []overlay.Handle
}

func NewLayer(r *Renderer) *Layer {
	if r == nil {
		r = NewRenderer()
	}
	return &Layer{
		renderer: r,
		entries:  make(map[overlay.Handle]*layerEntry),
	}
}

func (l *Layer) Mount(content any, at geometry.Point, maxWidth float64) overlay.Handle {
	rendered := l.renderer.Render(content, maxWidth)
	l.next++
	h := l.next
	l.entries[h] = &layerEntry{
		at:       at,
		rendered: rendered,
		width:    lipgloss.Width(rendered),
		height:   lipgloss.Height(rendered),
	}
	l.order = append(l.order, h)
	return h
}

func (l *Layer) Update(h overlay.Handle, at geometry.Point) {
	if e, ok := l.entries[h]; ok {
		e.at = at
	}
}

// Unmount removes h. Unknown handles are ignored.
func (l *Layer) Unmount(h overlay.Handle) {
	if _, ok := l.entries[h]; !ok {
		return
	}
	delete(l.entries, h)
	for i, o := range l.order {
		if o == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *Layer) Measure(h overlay.Handle) (geometry.Rect, bool) {
	e, ok := l.entries[h]
	if !ok || e.width == 0 {
		return geometry.Rect{}, false
	}
	return geometry.Rect{
		X:      e.at.X,
		Y:      e.at.Y,
		Width:  float64(e.width),
		Height: float64(e.height),
	}, true
}

// Len returns the number of mounted overlays.
func (l *Layer) Len() int { return len(l.order) }

// Text returns the unstyled text of a mounted overlay.
func (l *Layer) Text(h overlay.Handle) (string, bool) {
	e, ok := l.entries[h]
	if !ok {
		return "", false
	}
	return PlainText(e.rendered), true
}

// HitTest returns the topmost overlay covering the cell (x, y).
func (l *Layer) HitTest(x, y int) (overlay.Handle, bool) {
	for i := len(l.order) - 1; i >= 0; i-- {
		h := l.order[i]
		e := l.entries[h]
		ex, ey := e.at.Round()
		if x >= ex && x < ex+e.width && y >= ey && y < ey+e.height {
			return h, true
		}
	}
	return 0, false
}

// Composite paints every mounted overlay over base in mount order. base is
// padded to height lines; overlay cells outside width x height are dropped.
func (l *Layer) Composite(base string, width, height int) string {
	if len(l.order) == 0 {
		return base
	}
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for _, h := range l.order {
		e := l.entries[h]
		x, y := e.at.Round()
		lines = placeOverlay(lines, x, y, width, e.rendered)
	}
	return strings.Join(lines, "\n")
}

func placeOverlay(bgLines []string, x, y, width int, fg string) []string {
	if x < 0 {
		x = 0
	}
	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		if width > 0 {
			if x >= width {
				continue
			}
			if x+ansi.StringWidth(fgLine) > width {
				fgLine = ansi.Cut(fgLine, 0, width-x)
			}
		}
		fgW := ansi.StringWidth(fgLine)
		bgLine := bgLines[row]
		bgW := ansi.StringWidth(bgLine)

		if x >= bgW {
			bgLines[row] = bgLine + strings.Repeat(" ", x-bgW) + fgLine
			continue
		}

		left := ansi.Cut(bgLine, 0, x)
		var right string
		if x+fgW < bgW {
			right = ansi.Cut(bgLine, x+fgW, bgW)
		}
		bgLines[row] = left + fgLine + right
	}
	return bgLines
}
