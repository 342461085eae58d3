// Package geometry holds the pure positioning math for anchored overlays.
//
// Compute places an overlay on one side of an anchor rectangle and Clamp
// keeps the result inside the visible viewport. Neither function has side
// effects, so both are safe to call from any goroutine.
package geometry
