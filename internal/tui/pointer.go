package tui

import "github.com/SimoKiihamaki/overlaykit/internal/overlay"

type pointerEventKind int

const (
	anchorLeave pointerEventKind = iota
	overlayLeave
	anchorEnter
	overlayEnter
)

type pointerEvent struct {
	kind   pointerEventKind
	anchor int
	handle overlay.Handle
}

// pointerTracker turns absolute pointer positions into enter/leave edges.
// Terminals only report where the pointer is, so the previous target is kept
// to detect crossings.
type pointerTracker struct {
	anchor int
	handle overlay.Handle
}

func newPointerTracker() pointerTracker {
	return pointerTracker{anchor: -1}
}

// move records the targets under the pointer and returns the edges crossed,
// leaves before enters. anchor is -1 and handle is 0 when nothing is hit.
func (p *pointerTracker) move(anchor int, handle overlay.Handle) []pointerEvent {
	var events []pointerEvent
	if p.anchor != anchor && p.anchor >= 0 {
		events = append(events, pointerEvent{kind: anchorLeave, anchor: p.anchor})
	}
	if p.handle != handle && p.handle != 0 {
		events = append(events, pointerEvent{kind: overlayLeave, handle: p.handle})
	}
	if p.anchor != anchor && anchor >= 0 {
		events = append(events, pointerEvent{kind: anchorEnter, anchor: anchor})
	}
	if p.handle != handle && handle != 0 {
		events = append(events, pointerEvent{kind: overlayEnter, handle: handle})
	}
	p.anchor = anchor
	p.handle = handle
	return events
}

// forget drops the overlay target after its overlay was unmounted so a
// later overlay reusing the position still produces an enter edge.
func (p *pointerTracker) forget(handle overlay.Handle) {
	if p.handle == handle {
		p.handle = 0
	}
}

// hovered returns the anchor currently under the pointer, or -1.
func (p pointerTracker) hovered() int { return p.anchor }
