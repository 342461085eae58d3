package overlay

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
)

var bindingSeq atomic.Uint64

// Binding is the lifecycle handle for one anchor/overlay pair.
type Binding struct {
	id      string
	env     Env
	anchor  Anchor
	content any
	opts    Options

	state State
	timer Timer
	subs  subscriptionManager

	handle  Handle
	mounted bool

	coords    geometry.Point
	hasCoords bool
	// needsPosition is set when a measurement was unavailable; the next
	// triggering event retries.
	needsPosition bool

	original Handlers
	unbound  bool
}

// Bind attaches show/hide intent hooks to anchor and returns the binding
// that owns the overlay's visibility. The anchor's existing handlers keep
// running ahead of the engine's.
func Bind(env Env, anchor Anchor, content any, opts ...Option) *Binding {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if !o.Placement.Valid() {
		o.Placement = geometry.Top
	}
	if o.ID == "" {
		o.ID = fmt.Sprintf("overlay-%d", bindingSeq.Add(1))
	}

	b := &Binding{
		id:      o.ID,
		env:     env,
		anchor:  anchor,
		content: content,
		opts:    o,
		subs:    subscriptionManager{signals: env.Signals},
	}
	if anchor != nil {
		b.original = anchor.Handlers()
		anchor.SetHandlers(b.original.Compose(Handlers{
			PointerEnter: b.ShowIntent,
			PointerLeave: b.HideIntent,
			Focus:        b.ShowIntent,
			Blur:         b.HideIntent,
		}))
	}
	return b
}

// ID returns the binding's identifier.
func (b *Binding) ID() string { return b.id }

// State returns the current visibility state.
func (b *Binding) State() State { return b.state }

// Options returns the effective settings.
func (b *Binding) Options() Options { return b.opts }

// Content returns the overlay content.
func (b *Binding) Content() any { return b.content }

// Handle returns the surface handle while the overlay is mounted.
func (b *Binding) Handle() (Handle, bool) {
	return b.handle, b.mounted
}

// Coordinates returns the last position published to the surface. ok is
// false while hidden or before the first successful measurement.
func (b *Binding) Coordinates() (geometry.Point, bool) {
	return b.coords, b.hasCoords
}

// ShowIntent requests the overlay to appear after the show delay.
func (b *Binding) ShowIntent() {
	if b.unbound || b.opts.Disabled {
		return
	}
	switch b.state {
	case Hidden:
		if b.opts.ShowDelay <= 0 {
			b.enterVisible()
			return
		}
		b.setState(PendingShow)
		b.schedule(b.opts.ShowDelay, b.onShowTimer)
	case PendingShow:
		// Already counting down.
	case Visible:
		b.retryPosition()
	case PendingHide:
		b.cancelTimer()
		b.setState(Visible)
		b.retryPosition()
	}
}

// HideIntent requests the overlay to disappear. Interactive bindings wait
// for the grace delay first.
func (b *Binding) HideIntent() {
	if b.unbound {
		return
	}
	switch b.state {
	case Hidden, PendingHide:
	case PendingShow:
		b.cancelTimer()
		b.setState(Hidden)
		if b.env.Observer != nil {
			b.env.Observer.ShowCancelled(b.id)
		}
	case Visible:
		if !b.opts.Interactive || b.opts.GraceDelay <= 0 {
			b.leaveVisible()
			return
		}
		b.setState(PendingHide)
		b.schedule(b.opts.GraceDelay, b.onGraceTimer)
	}
}

// OverlayEnter reports the pointer entering the overlay itself. Only
// interactive bindings treat it as show intent.
func (b *Binding) OverlayEnter() {
	if !b.opts.Interactive {
		return
	}
	b.ShowIntent()
}

// OverlayLeave reports the pointer leaving the overlay itself.
func (b *Binding) OverlayLeave() {
	if !b.opts.Interactive {
		return
	}
	b.HideIntent()
}

// Dismiss hides the overlay immediately from any state.
func (b *Binding) Dismiss() {
	if b.unbound {
		return
	}
	switch b.state {
	case Visible, PendingHide:
		b.cancelTimer()
		b.leaveVisible()
	case PendingShow:
		b.cancelTimer()
		b.setState(Hidden)
		if b.env.Observer != nil {
			b.env.Observer.ShowCancelled(b.id)
		}
	}
}

// SetDisabled toggles the disabled flag. Disabling a shown or pending
// overlay hides it at once.
func (b *Binding) SetDisabled(disabled bool) {
	if b.unbound {
		return
	}
	b.opts.Disabled = disabled
	if disabled {
		b.Dismiss()
	}
}

// SetContent replaces the overlay content, remounting it when shown.
func (b *Binding) SetContent(content any) {
	if b.unbound {
		return
	}
	b.content = content
	if !b.mounted {
		return
	}
	b.unmount()
	b.hasCoords = false
	b.reposition()
}

// Reposition recomputes the overlay position if it is shown.
func (b *Binding) Reposition() {
	if b.unbound {
		return
	}
	b.reposition()
}

// Unbind tears the binding down: the timer is stopped, subscriptions are
// removed, the overlay is unmounted and the anchor gets its original
// handlers back. Calling Unbind again is a no-op.
func (b *Binding) Unbind() {
	if b.unbound {
		return
	}
	b.cancelTimer()
	switch {
	case b.state.Shown():
		b.leaveVisible()
	case b.state == PendingShow:
		b.setState(Hidden)
		if b.env.Observer != nil {
			b.env.Observer.ShowCancelled(b.id)
		}
	}
	if b.anchor != nil {
		b.anchor.SetHandlers(b.original)
	}
	b.unbound = true
	b.tracef("unbound")
}

// Unbound reports whether Unbind has been called.
func (b *Binding) Unbound() bool { return b.unbound }

func (b *Binding) onShowTimer() {
	b.timer = nil
	if b.unbound || b.state != PendingShow {
		return
	}
	b.enterVisible()
}

func (b *Binding) onGraceTimer() {
	b.timer = nil
	if b.unbound || b.state != PendingHide {
		return
	}
	b.leaveVisible()
}

func (b *Binding) enterVisible() {
	b.setState(Visible)
	b.reposition()
	b.subs.activate(b.reposition)
}

func (b *Binding) leaveVisible() {
	b.subs.deactivate()
	b.unmount()
	b.coords = geometry.Point{}
	b.hasCoords = false
	b.needsPosition = false
	b.setState(Hidden)
}

func (b *Binding) retryPosition() {
	if b.needsPosition {
		b.reposition()
	}
}

// reposition measures the anchor and the overlay and publishes clamped
// coordinates. Missing measurements leave needsPosition set.
func (b *Binding) reposition() {
	if !b.state.Shown() || b.env.Surface == nil {
		return
	}
	if b.anchor == nil {
		b.needsPosition = true
		return
	}
	anchorRect, ok := b.anchor.Measure()
	if !ok {
		b.needsPosition = true
		b.tracef("anchor measurement unavailable")
		return
	}

	if !b.mounted {
		provisional := b.place(anchorRect, geometry.Rect{})
		b.handle = b.env.Surface.Mount(b.content, provisional, b.opts.MaxWidth)
		b.mounted = true
		if b.env.Observer != nil {
			b.env.Observer.Mounted(b.id)
		}
	}

	overlayRect, ok := b.env.Surface.Measure(b.handle)
	if !ok {
		b.needsPosition = true
		b.tracef("overlay measurement unavailable")
		return
	}
	b.needsPosition = false

	pt := b.place(anchorRect, overlayRect)
	if b.hasCoords && pt == b.coords {
		return
	}
	b.coords = pt
	b.hasCoords = true
	b.env.Surface.Update(b.handle, pt)
	if b.env.Observer != nil {
		b.env.Observer.Positioned(b.id, pt)
	}
}

func (b *Binding) place(anchor, overlay geometry.Rect) geometry.Point {
	if b.env.Viewport == nil {
		return geometry.Compute(anchor, overlay, b.opts.Placement, b.opts.Offset)
	}
	return geometry.Position(anchor, overlay, b.opts.Placement, b.opts.Offset, b.env.Viewport(), b.opts.Margin)
}

func (b *Binding) unmount() {
	if !b.mounted {
		return
	}
	b.env.Surface.Unmount(b.handle)
	b.mounted = false
	b.handle = 0
	if b.env.Observer != nil {
		b.env.Observer.Unmounted(b.id)
	}
}

// schedule starts the single timer this binding may own. Any timer still
// outstanding is stopped first.
func (b *Binding) schedule(d time.Duration, fn func()) {
	b.cancelTimer()
	if b.env.Scheduler == nil {
		fn()
		return
	}
	b.timer = b.env.Scheduler.After(d, fn)
}

func (b *Binding) cancelTimer() {
	if b.timer == nil {
		return
	}
	b.timer.Stop()
	b.timer = nil
}

func (b *Binding) setState(next State) {
	if b.state == next {
		return
	}
	prev := b.state
	b.state = next
	b.tracef("%s -> %s", prev, next)
	if b.env.Observer != nil {
		b.env.Observer.Transition(b.id, prev, next)
	}
}

func (b *Binding) tracef(format string, args ...any) {
	if b.env.Logger == nil {
		return
	}
	b.env.Logger.Printf("overlay: %s: "+format, append([]any{b.id}, args...)...)
}
