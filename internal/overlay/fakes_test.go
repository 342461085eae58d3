package overlay

import (
	"fmt"
	"sort"
	"time"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
)

// manualScheduler runs timers against a virtual clock advanced by tests.
type manualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	seq     int
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) After(d time.Duration, fn func()) Timer {
	s.seq++
	t := &manualTimer{seq: s.seq, at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in deadline order.
func (s *manualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = target
}

func (s *manualScheduler) nextDue(limit time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

// Pending returns the number of timers that are neither stopped nor fired.
func (s *manualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingSurface records every call so tests can assert on mount pairing.
type recordingSurface struct {
	next       Handle
	size       geometry.Rect
	measurable bool
	mounted    map[Handle]geometry.Point
	calls      []string
	mounts     int
	unmounts   int
	updates    int
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{
		size:       geometry.Rect{Width: w, Height: h},
		measurable: true,
		mounted:    make(map[Handle]geometry.Point),
	}
}

func (s *recordingSurface) Mount(content any, at geometry.Point, maxWidth float64) Handle {
	s.next++
	s.mounted[s.next] = at
	s.mounts++
	s.calls = append(s.calls, fmt.Sprintf("mount %v", content))
	return s.next
}

func (s *recordingSurface) Update(h Handle, at geometry.Point) {
	s.updates++
	s.calls = append(s.calls, fmt.Sprintf("update %d %v,%v", h, at.X, at.Y))
	if _, ok := s.mounted[h]; ok {
		s.mounted[h] = at
	}
}

func (s *recordingSurface) Unmount(h Handle) {
	s.calls = append(s.calls, fmt.Sprintf("unmount %d", h))
	if _, ok := s.mounted[h]; !ok {
		return
	}
	delete(s.mounted, h)
	s.unmounts++
}

func (s *recordingSurface) Measure(h Handle) (geometry.Rect, bool) {
	at, ok := s.mounted[h]
	if !ok || !s.measurable {
		return geometry.Rect{}, false
	}
	r := s.size
	r.X, r.Y = at.X, at.Y
	return r, true
}

type fakeAnchor struct {
	rect     geometry.Rect
	ok       bool
	handlers Handlers
}

func newFakeAnchor(r geometry.Rect) *fakeAnchor {
	return &fakeAnchor{rect: r, ok: true}
}

func (a *fakeAnchor) Measure() (geometry.Rect, bool) { return a.rect, a.ok }
func (a *fakeAnchor) Handlers() Handlers             { return a.handlers }
func (a *fakeAnchor) SetHandlers(h Handlers)         { a.handlers = h }

func (a *fakeAnchor) enter() { fire(a.handlers.PointerEnter) }
func (a *fakeAnchor) leave() { fire(a.handlers.PointerLeave) }
func (a *fakeAnchor) focus() { fire(a.handlers.Focus) }
func (a *fakeAnchor) blur()  { fire(a.handlers.Blur) }

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}

type transition struct {
	from, to State
}

type recordingObserver struct {
	transitions []transition
	cancelled   int
	positions   []geometry.Point
}

func (o *recordingObserver) Transition(_ string, from, to State) {
	o.transitions = append(o.transitions, transition{from: from, to: to})
}
func (o *recordingObserver) Positioned(_ string, at geometry.Point) {
	o.positions = append(o.positions, at)
}
func (o *recordingObserver) Mounted(string)       {}
func (o *recordingObserver) Unmounted(string)     {}
func (o *recordingObserver) ShowCancelled(string) { o.cancelled++ }

type harness struct {
	sched    *manualScheduler
	surface  *recordingSurface
	bus      *Bus
	anchor   *fakeAnchor
	observer *recordingObserver
	viewport geometry.Size
	env      Env
}

func newHarness() *harness {
	h := &harness{
		sched:    &manualScheduler{},
		surface:  newRecordingSurface(80, 30),
		bus:      NewBus(),
		anchor:   newFakeAnchor(geometry.Rect{X: 100, Y: 200, Width: 50, Height: 20}),
		observer: &recordingObserver{},
		viewport: geometry.Size{Width: 1024, Height: 768},
	}
	h.env = Env{
		Scheduler: h.sched,
		Surface:   h.surface,
		Signals:   h.bus,
		Viewport:  func() geometry.Size { return h.viewport },
		Observer:  h.observer,
	}
	return h
}

func (h *harness) bind(opts ...Option) *Binding {
	return Bind(h.env, h.anchor, "tip", opts...)
}
