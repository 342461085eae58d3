package tui

import (
	zone "github.com/lrstanley/bubblezone"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// zoneLookup returns the on-screen cells occupied by a marked zone.
type zoneLookup func(id string) (geometry.Rect, bool)

// managerLookup reads zone bounds from a bubblezone manager. Zones that were
// never scanned, or have been cleared, are reported as unavailable.
func managerLookup(m *zone.Manager) zoneLookup {
	return func(id string) (geometry.Rect, bool) {
		info := m.Get(id)
		if info == nil || info.IsZero() {
			return geometry.Rect{}, false
		}
		// End coordinates are inclusive.
		return geometry.Rect{
			X:      float64(info.StartX),
			Y:      float64(info.StartY),
			Width:  float64(info.EndX - info.StartX + 1),
			Height: float64(info.EndY - info.StartY + 1),
		}, true
	}
}

// zoneAnchor is an overlay.Anchor for a label marked with bubblezone.
type zoneAnchor struct {
	id       string
	lookup   zoneLookup
	visible  func() bool
	handlers overlay.Handlers
}

func (a *zoneAnchor) Measure() (geometry.Rect, bool) {
	if a.lookup == nil {
		return geometry.Rect{}, false
	}
	if a.visible != nil && !a.visible() {
		return geometry.Rect{}, false
	}
	r, ok := a.lookup(a.id)
	if !ok || r.Empty() {
		return geometry.Rect{}, false
	}
	return r, true
}

func (a *zoneAnchor) Handlers() overlay.Handlers     { return a.handlers }
func (a *zoneAnchor) SetHandlers(h overlay.Handlers) { a.handlers = h }

// contains reports whether the cell (x, y) lies on the anchor.
func (a *zoneAnchor) contains(x, y int) bool {
	r, ok := a.Measure()
	return ok && r.Contains(float64(x), float64(y))
}

func (a *zoneAnchor) pointerEnter() { fire(a.handlers.PointerEnter) }
func (a *zoneAnchor) pointerLeave() { fire(a.handlers.PointerLeave) }
func (a *zoneAnchor) focus()        { fire(a.handlers.Focus) }
func (a *zoneAnchor) blur()         { fire(a.handlers.Blur) }

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}
