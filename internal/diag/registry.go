package diag

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// Coordinates is the last position an overlay was painted at.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OverlayStatus is the exported view of one binding.
type OverlayStatus struct {
	ID          string       `json:"id"`
	State       string       `json:"state"`
	Mounted     bool         `json:"mounted"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Transitions int          `json:"transitions"`
	Cancelled   int          `json:"show_cancelled"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Registry records binding lifecycle events. It implements overlay.Observer;
// events arrive on the UI goroutine while HTTP handlers read concurrently.
type Registry struct {
	mu       sync.RWMutex
	overlays map[string]*OverlayStatus
	now      func() time.Time

	prom          *prometheus.Registry
	transitions   *prometheus.CounterVec
	mounts        prometheus.Counter
	unmounts      prometheus.Counter
	showCancelled prometheus.Counter
	visible       prometheus.Gauge
}

var _ overlay.Observer = (*Registry)(nil)

func NewRegistry() *Registry {
	r := &Registry{
		overlays: make(map[string]*OverlayStatus),
		now:      time.Now,
		prom:     prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "overlay",
				Name:      "transitions_total",
				Help:      "Total number of visibility state transitions.",
			},
			[]string{"from", "to"},
		),
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "overlay",
			Name:      "mounts_total",
			Help:      "Total number of overlays mounted on the layer.",
		}),
		unmounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "overlay",
			Name:      "unmounts_total",
			Help:      "Total number of overlays removed from the layer.",
		}),
		showCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "overlay",
			Name:      "show_cancelled_total",
			Help:      "Total number of pending shows cancelled before the delay elapsed.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "overlay",
			Name:      "visible",
			Help:      "Number of overlays currently shown.",
		}),
	}
	r.prom.MustRegister(r.transitions, r.mounts, r.unmounts, r.showCancelled, r.visible)
	return r
}

// entry returns the status for id, creating it. Callers hold mu.
func (r *Registry) entry(id string) *OverlayStatus {
	s, ok := r.overlays[id]
	if !ok {
		s = &OverlayStatus{ID: id, State: overlay.Hidden.String()}
		r.overlays[id] = s
	}
	s.UpdatedAt = r.now()
	return s
}

func (r *Registry) Transition(id string, from, to overlay.State) {
	r.mu.Lock()
	s := r.entry(id)
	s.State = to.String()
	s.Transitions++
	if !to.Shown() {
		s.Coordinates = nil
	}
	r.mu.Unlock()

	r.transitions.WithLabelValues(from.String(), to.String()).Inc()
	switch {
	case !from.Shown() && to.Shown():
		r.visible.Inc()
	case from.Shown() && !to.Shown():
		r.visible.Dec()
	}
}

func (r *Registry) Positioned(id string, at geometry.Point) {
	r.mu.Lock()
	r.entry(id).Coordinates = &Coordinates{X: at.X, Y: at.Y}
	r.mu.Unlock()
}

func (r *Registry) Mounted(id string) {
	r.mu.Lock()
	r.entry(id).Mounted = true
	r.mu.Unlock()
	r.mounts.Inc()
}

func (r *Registry) Unmounted(id string) {
	r.mu.Lock()
	r.entry(id).Mounted = false
	r.mu.Unlock()
	r.unmounts.Inc()
}

func (r *Registry) ShowCancelled(id string) {
	r.mu.Lock()
	r.entry(id).Cancelled++
	r.mu.Unlock()
	r.showCancelled.Inc()
}

// Snapshot returns a copy of every known overlay sorted by ID.
func (r *Registry) Snapshot() []OverlayStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]OverlayStatus, 0, len(r.overlays))
	for _, s := range r.overlays {
		out = append(out, copyStatus(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the status of one overlay.
func (r *Registry) Get(id string) (OverlayStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.overlays[id]
	if !ok {
		return OverlayStatus{}, false
	}
	return copyStatus(s), true
}

// MetricsHandler exposes the registry's collectors in the Prometheus text
// format.
func (r *Registry) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}

func copyStatus(s *OverlayStatus) OverlayStatus {
	out := *s
	if s.Coordinates != nil {
		c := *s.Coordinates
		out.Coordinates = &c
	}
	return out
}
