// Package overlay implements the anchored overlay engine used for tooltips
// and popovers.
//
// A Binding ties one anchor to one overlay. Trigger events on the anchor
// (pointer enter/leave, focus/blur) are forwarded as show and hide intents to
// a small state machine:
//
//	Hidden --show--> PendingShow --timer--> Visible --hide--> Hidden
//	                      |                    |
//	                      +-------hide---------+ (cancels the timer)
//
// Interactive bindings insert a PendingHide grace period between Visible and
// Hidden so the pointer can travel from the anchor onto the overlay.
//
// The engine owns no goroutines. Every method must be called from the host's
// event loop, and timers are delegated to a host Scheduler that runs its
// callbacks on that same loop. At most one timer is outstanding per Binding
// and it is always stopped before a competing transition is applied.
//
// Rendering, measurement and ambient viewport signals are injected through
// the Surface, Anchor, Signals and Viewport collaborators bundled in Env.
package overlay
