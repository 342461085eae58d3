package geometry

import (
	"math"
	"strings"
)

// DefaultMargin is the gap kept between an overlay and the viewport edges.
const DefaultMargin = 8

// Rect is an axis-aligned bounding box in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Point is the top-left position at which an overlay is painted.
type Point struct {
	X, Y float64
}

// Round returns the point snapped to the nearest integer cell.
func (p Point) Round() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Size is the extent of the visible viewport.
type Size struct {
	Width, Height float64
}

// Placement is the preferred side of the anchor for the overlay.
type Placement int

const (
	Top Placement = iota
	Bottom
	Left
	Right
)

var placementNames = []string{"top", "bottom", "left", "right"}

func (p Placement) String() string {
	if p < Top || p > Right {
		return placementNames[Top]
	}
	return placementNames[p]
}

// Valid reports whether p is one of the four known placements.
func (p Placement) Valid() bool {
	return p >= Top && p <= Right
}

// ParsePlacement maps a case-insensitive name to a Placement.
// Unknown or empty names fall back to Top.
func ParsePlacement(s string) Placement {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range placementNames {
		if candidate == name {
			return Placement(i)
		}
	}
	return Top
}

// Compute returns the raw top-left coordinates of the overlay for the given
// placement, before any viewport clamping.
func Compute(anchor, overlay Rect, p Placement, offset float64) Point {
	centerX := anchor.X + anchor.Width/2 - overlay.Width/2
	centerY := anchor.Y + anchor.Height/2 - overlay.Height/2

	switch p {
	case Bottom:
		return Point{X: centerX, Y: anchor.Y + anchor.Height + offset}
	case Left:
		return Point{X: anchor.X - overlay.Width - offset, Y: centerY}
	case Right:
		return Point{X: anchor.X + anchor.Width + offset, Y: centerY}
	default:
		return Point{X: centerX, Y: anchor.Y - overlay.Height - offset}
	}
}

// Clamp translates pt so the overlay stays inside a viewport of the given
// size, keeping margin on every side. When the viewport is smaller than the
// overlay plus both margins the overlay is pinned to the near margin and may
// still overflow the far edge.
func Clamp(pt Point, overlay Rect, viewportWidth, viewportHeight, margin float64) Point {
	return Point{
		X: clampAxis(pt.X, viewportWidth-overlay.Width-margin, margin),
		Y: clampAxis(pt.Y, viewportHeight-overlay.Height-margin, margin),
	}
}

func clampAxis(v, upper, margin float64) float64 {
	return math.Max(margin, math.Min(v, upper))
}

// Position runs Compute followed by Clamp.
func Position(anchor, overlay Rect, p Placement, offset float64, viewport Size, margin float64) Point {
	raw := Compute(anchor, overlay, p, offset)
	return Clamp(raw, overlay, viewport.Width, viewport.Height, margin)
}

// Fits reports whether an overlay of the given size can be shown without
// overflowing a viewport once margins are applied.
func Fits(overlay Rect, viewport Size, margin float64) bool {
	return viewport.Width >= overlay.Width+2*margin && viewport.Height >= overlay.Height+2*margin
}
