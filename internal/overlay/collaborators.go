package overlay

import (
	"log"
	"time"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
)

// Measurer reports the current bounding box of an element. ok is false while
// the element is not mounted or has no layout yet.
type Measurer interface {
	Measure() (rect geometry.Rect, ok bool)
}

// Handlers is the set of trigger callbacks carried by an anchor.
// Nil entries are allowed.
type Handlers struct {
	PointerEnter func()
	PointerLeave func()
	Focus        func()
	Blur         func()
}

// Compose returns handlers that run h first and then other, for every event.
func (h Handlers) Compose(other Handlers) Handlers {
	return Handlers{
		PointerEnter: Compose(h.PointerEnter, other.PointerEnter),
		PointerLeave: Compose(h.PointerLeave, other.PointerLeave),
		Focus:        Compose(h.Focus, other.Focus),
		Blur:         Compose(h.Blur, other.Blur),
	}
}

// Compose chains two callbacks so both run, existing first.
func Compose(existing, added func()) func() {
	switch {
	case existing == nil:
		return added
	case added == nil:
		return existing
	}
	return func() {
		existing()
		added()
	}
}

// Anchor is the element an overlay is positioned against. The engine reads
// its handlers once at bind time, installs composed ones, and restores the
// originals on unbind.
type Anchor interface {
	Measurer
	Handlers() Handlers
	SetHandlers(Handlers)
}

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Scheduler runs fn after d on the host event loop.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// Handle identifies one mounted overlay on a Surface. The zero Handle is
// never returned by Mount.
type Handle uint64

// Surface paints overlay content at absolute positions outside the normal
// layout flow. Mount and Unmount must be idempotent.
type Surface interface {
	Mount(content any, at geometry.Point, maxWidth float64) Handle
	Update(h Handle, at geometry.Point)
	Unmount(h Handle)
	// Measure returns the bounds of mounted content.
	Measure(h Handle) (geometry.Rect, bool)
}

// Signal is an ambient viewport change.
type Signal int

const (
	// Scroll is published for scrolling in any container, not only the
	// anchor's direct parent.
	Scroll Signal = iota
	Resize
)

func (s Signal) String() string {
	switch s {
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Subscription is returned by Signals.Subscribe and is the only way to
// remove the registered handler.
type Subscription struct {
	signal Signal
	id     uint64
}

// Valid reports whether the subscription was issued by a Signals source.
func (s Subscription) Valid() bool {
	return s.id != 0
}

// Signals is a source of ambient viewport change notifications.
type Signals interface {
	Subscribe(sig Signal, fn func()) Subscription
	Unsubscribe(sub Subscription)
}

// Observer receives lifecycle notifications from bindings. Every method is
// called on the event loop.
type Observer interface {
	Transition(id string, from, to State)
	Positioned(id string, at geometry.Point)
	Mounted(id string)
	Unmounted(id string)
	ShowCancelled(id string)
}

// Env bundles the host collaborators shared by every binding.
type Env struct {
	Scheduler Scheduler
	Surface   Surface
	Signals   Signals
	// Viewport returns the visible area. A nil Viewport disables clamping.
	Viewport func() geometry.Size
	Observer Observer
	// Logger receives transition traces when non-nil.
	Logger *log.Logger
}
