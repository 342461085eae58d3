package overlay

import (
	"time"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
)

// State is the visibility of a single binding.
type State int

const (
	Hidden State = iota
	PendingShow
	Visible
	PendingHide
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case PendingShow:
		return "pending-show"
	case Visible:
		return "visible"
	case PendingHide:
		return "pending-hide"
	default:
		return "unknown"
	}
}

// Shown reports whether the overlay is on screen in this state.
func (s State) Shown() bool {
	return s == Visible || s == PendingHide
}

// Default binding settings.
const (
	DefaultOffset     = 8
	DefaultShowDelay  = 300 * time.Millisecond
	DefaultGraceDelay = 100 * time.Millisecond
	DefaultMaxWidth   = 200
)

// Options configures a binding.
type Options struct {
	Placement geometry.Placement
	Offset    float64
	ShowDelay time.Duration
	// GraceDelay is how long an interactive overlay stays up after the
	// pointer leaves, waiting for it to reach the overlay.
	GraceDelay  time.Duration
	MaxWidth    float64
	Margin      float64
	Disabled    bool
	Interactive bool
	// ID names the binding in Observer callbacks and logs.
	ID string
}

// DefaultOptions returns the settings used when no Option overrides them.
func DefaultOptions() Options {
	return Options{
		Placement:  geometry.Top,
		Offset:     DefaultOffset,
		ShowDelay:  DefaultShowDelay,
		GraceDelay: DefaultGraceDelay,
		MaxWidth:   DefaultMaxWidth,
		Margin:     geometry.DefaultMargin,
	}
}

// Option mutates Options during Bind.
type Option func(*Options)

// WithOptions replaces every setting with o. Later options still apply.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

// WithPlacement sets the preferred side. Invalid values fall back to Top.
func WithPlacement(p geometry.Placement) Option {
	return func(o *Options) {
		if !p.Valid() {
			p = geometry.Top
		}
		o.Placement = p
	}
}

func WithOffset(offset float64) Option {
	return func(o *Options) { o.Offset = offset }
}

func WithShowDelay(d time.Duration) Option {
	return func(o *Options) { o.ShowDelay = d }
}

func WithGraceDelay(d time.Duration) Option {
	return func(o *Options) { o.GraceDelay = d }
}

func WithMaxWidth(w float64) Option {
	return func(o *Options) { o.MaxWidth = w }
}

func WithMargin(m float64) Option {
	return func(o *Options) { o.Margin = m }
}

func WithDisabled(disabled bool) Option {
	return func(o *Options) { o.Disabled = disabled }
}

func WithInteractive(interactive bool) Option {
	return func(o *Options) { o.Interactive = interactive }
}

func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}
