package tui

import (
	"fmt"
	"io"
	"log"
	"strings"

	clipboard "github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/SimoKiihamaki/overlaykit/internal/config"
	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// Rows of filler text between consecutive anchors, so the list scrolls.
const anchorSpacing = 4

type anchorItem struct {
	spec    config.AnchorSpec
	line    int
	indent  int
	anchor  *zoneAnchor
	binding *overlay.Binding
}

// screen is shared by value copies of the model and by the engine's
// viewport callback.
type screen struct {
	width, height int
	// viewport geometry of the scroll container
	top, offset, rows int
}

// activity records what the anchors' own handlers observed. The engine
// composes its hooks after these, so both show up.
type activity struct {
	last  string
	count int
}

func (a *activity) note(s string) {
	a.last = s
	a.count++
}

type model struct {
	cfg    config.Config
	keys   KeyMap
	logger *log.Logger

	zones    *zone.Manager
	sched    *Scheduler
	renderer *Renderer
	layer    *Layer
	bus      *overlay.Bus
	observer overlay.Observer
	screen   *screen
	activity *activity
	copyText func(string) error

	anchors  []*anchorItem
	viewport viewport.Model
	pointer  pointerTracker
	focus    focusRing

	queued   [2]bool
	showHelp bool
	status   StatusIndicator
}

// Option customizes the model built by New.
type Option func(*model)

// WithObserver forwards every binding's lifecycle events to o.
func WithObserver(o overlay.Observer) Option {
	return func(m *model) { m.observer = o }
}

// WithLogger sets the logger used for engine traces. Traces are only
// emitted when the config log level is DEBUG.
func WithLogger(l *log.Logger) Option {
	return func(m *model) { m.logger = l }
}

// New builds the demo model: one bound anchor per configured AnchorSpec
// inside a scrollable viewport.
func New(cfg config.Config, opts ...Option) model {
	m := model{
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		logger:   log.Default(),
		zones:    zone.New(),
		sched:    NewScheduler(),
		bus:      overlay.NewBus(),
		screen:   &screen{},
		activity: &activity{},
		copyText: clipboard.WriteAll,
		viewport: viewport.New(0, 0),
		pointer:  newPointerTracker(),
		focus:    newFocusRing(len(cfg.Anchors)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}

	m.renderer = NewRenderer()
	m.renderer.MarkdownStyle = cfg.Overlay.MarkdownStyle
	m.renderer.Interactive = cfg.Overlay.Interactive
	m.layer = NewLayer(m.renderer)

	prefix := m.zones.NewPrefix()
	lookup := managerLookup(m.zones)
	act := m.activity
	for i, spec := range cfg.Anchors {
		item := &anchorItem{
			spec:   spec,
			line:   i*anchorSpacing + 1,
			indent: (i * 11) % 37,
		}
		item.anchor = &zoneAnchor{
			id:      fmt.Sprintf("%sanchor-%d", prefix, i),
			lookup:  lookup,
			visible: m.lineVisible(item.line),
		}
		label := spec.Label
		item.anchor.SetHandlers(overlay.Handlers{
			PointerEnter: func() { act.note("hover " + label) },
			Focus:        func() { act.note("focus " + label) },
		})
		item.binding = overlay.Bind(m.env(), item.anchor, anchorContent(spec), m.anchorOptions(i, spec)...)
		m.anchors = append(m.anchors, item)
	}
	m.refreshContent()
	return m
}

func anchorContent(spec config.AnchorSpec) any {
	if spec.Markdown {
		return Markdown(spec.Tip)
	}
	return Text(spec.Tip)
}

func (m model) anchorOptions(i int, spec config.AnchorSpec) []overlay.Option {
	opts := m.cfg.AnchorOptions(spec)
	return append(opts, overlay.WithID(fmt.Sprintf("anchor-%d", i)))
}

func (m model) env() overlay.Env {
	env := overlay.Env{
		Scheduler: m.sched,
		Surface:   m.layer,
		Signals:   m.bus,
		Observer:  m.observer,
		Viewport: func() geometry.Size {
			return geometry.Size{Width: float64(m.screen.width), Height: float64(m.screen.height)}
		},
	}
	if m.cfg.LogLevel == "DEBUG" && m.logger != nil && m.logger.Writer() != io.Discard {
		env.Logger = m.logger
	}
	return env
}

func (m model) lineVisible(line int) func() bool {
	s := m.screen
	return func() bool {
		if s.rows <= 0 {
			return true
		}
		return line >= s.offset && line < s.offset+s.rows
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// Close unbinds every anchor and stops the zone manager.
func (m model) Close() {
	for _, item := range m.anchors {
		item.binding.Unbind()
	}
	m.zones.Close()
}

// rebind replaces the binding of anchor i with one using extra options.
// The old binding restores the anchor's own handlers before the new one
// composes on top of them.
func (m *model) rebind(i int, extra ...overlay.Option) {
	item := m.anchors[i]
	prev := item.binding.Options()
	item.binding.Unbind()
	opts := append(m.anchorOptions(i, item.spec), overlay.WithDisabled(prev.Disabled))
	opts = append(opts, extra...)
	item.binding = overlay.Bind(m.env(), item.anchor, anchorContent(item.spec), opts...)
}

func (m model) bindingForHandle(h overlay.Handle) *overlay.Binding {
	for _, item := range m.anchors {
		if mounted, ok := item.binding.Handle(); ok && mounted == h {
			return item.binding
		}
	}
	return nil
}

func (m model) anchorAt(x, y int) int {
	for i, item := range m.anchors {
		if item.anchor.contains(x, y) {
			return i
		}
	}
	return -1
}

// copyTarget picks the overlay the copy action applies to: the focused
// anchor's overlay when shown, otherwise the most recently mounted one.
func (m model) copyTarget() (overlay.Handle, bool) {
	if f := m.focus.focused(); f >= 0 {
		if h, ok := m.anchors[f].binding.Handle(); ok {
			return h, true
		}
	}
	var best overlay.Handle
	for _, item := range m.anchors {
		if h, ok := item.binding.Handle(); ok && h > best {
			best = h
		}
	}
	return best, best != 0
}

func (m *model) copyOverlay() {
	h, ok := m.copyTarget()
	if !ok {
		m.status = StatusIndicator{Label: "No overlay to copy", Status: "warn"}
		return
	}
	text, _ := m.layer.Text(h)
	if err := m.copyText(text); err != nil {
		m.status = StatusIndicator{Label: "Failed to copy overlay: " + err.Error(), Status: "error"}
		return
	}
	m.status = StatusIndicator{Label: "Overlay text copied", Status: "ok"}
}

func (m *model) refreshContent() {
	var b strings.Builder
	hovered := m.pointer.hovered()
	focused := m.focus.focused()
	lines := len(m.anchors)*anchorSpacing + 1
	next := 0
	for row := 0; row < lines; row++ {
		if next < len(m.anchors) && m.anchors[next].line == row {
			item := m.anchors[next]
			style := anchorStyle
			switch {
			case item.binding.Options().Disabled:
				style = anchorDisabledStyle
			case next == focused:
				style = anchorFocusedStyle
			case next == hovered:
				style = anchorHoverStyle
			}
			b.WriteString(strings.Repeat(" ", item.indent))
			b.WriteString(m.zones.Mark(item.anchor.id, style.Render("[ "+item.spec.Label+" ]")))
			next++
		} else {
			b.WriteString(fillerStyle.Render(fillerLine(row)))
		}
		if row < lines-1 {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
}

func fillerLine(row int) string {
	words := []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit"}
	n := 3 + row%5
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, words[(row+i)%len(words)])
	}
	return strings.Join(out, " ")
}
