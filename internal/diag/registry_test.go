package diag

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// metricValue reads a gathered counter or gauge. labels are name/value
// pairs the series must carry.
func metricValue(t *testing.T, reg *Registry, name string, labels ...string) float64 {
	t.Helper()
	families, err := reg.prom.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			have := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				have[lp.GetName()] = lp.GetValue()
			}
			for i := 0; i+1 < len(labels); i += 2 {
				if have[labels[i]] != labels[i+1] {
					continue series
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestRegistryTracksLifecycle(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return fixed }

	reg.Transition("save", overlay.Hidden, overlay.PendingShow)
	reg.Transition("save", overlay.PendingShow, overlay.Visible)
	reg.Mounted("save")
	reg.Positioned("save", geometry.Point{X: 85, Y: 162})

	got, ok := reg.Get("save")
	if !ok {
		t.Fatalf("expected save to be registered")
	}
	if got.State != "visible" || !got.Mounted || got.Transitions != 2 {
		t.Fatalf("unexpected status: %+v", got)
	}
	if got.Coordinates == nil || got.Coordinates.X != 85 || got.Coordinates.Y != 162 {
		t.Fatalf("coordinates = %+v, want (85,162)", got.Coordinates)
	}
	if !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("UpdatedAt = %s, want %s", got.UpdatedAt, fixed)
	}
	if v := metricValue(t, reg, "overlay_visible"); v != 1 {
		t.Fatalf("visible gauge = %v, want 1", v)
	}

	reg.Unmounted("save")
	reg.Transition("save", overlay.Visible, overlay.Hidden)
	got, _ = reg.Get("save")
	if got.Mounted || got.Coordinates != nil || got.State != "hidden" {
		t.Fatalf("hidden overlay kept stale data: %+v", got)
	}
	if v := metricValue(t, reg, "overlay_visible"); v != 0 {
		t.Fatalf("visible gauge = %v, want 0", v)
	}
	if v := metricValue(t, reg, "overlay_mounts_total"); v != 1 {
		t.Fatalf("mounts = %v, want 1", v)
	}
	if v := metricValue(t, reg, "overlay_transitions_total", "from", "pending-show", "to", "visible"); v != 1 {
		t.Fatalf("pending-show -> visible transitions = %v, want 1", v)
	}
}

func TestRegistryGraceKeepsOverlayVisible(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	reg.Transition("help", overlay.Hidden, overlay.Visible)
	reg.Transition("help", overlay.Visible, overlay.PendingHide)
	reg.Transition("help", overlay.PendingHide, overlay.Visible)

	if v := metricValue(t, reg, "overlay_visible"); v != 1 {
		t.Fatalf("visible gauge = %v, want 1 across the grace period", v)
	}
}

func TestRegistryShowCancelled(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	reg.Transition("x", overlay.Hidden, overlay.PendingShow)
	reg.ShowCancelled("x")
	reg.Transition("x", overlay.PendingShow, overlay.Hidden)

	got, _ := reg.Get("x")
	if got.Cancelled != 1 {
		t.Fatalf("Cancelled = %d, want 1", got.Cancelled)
	}
	if v := metricValue(t, reg, "overlay_show_cancelled_total"); v != 1 {
		t.Fatalf("show_cancelled_total = %v, want 1", v)
	}
}

func TestRegistrySnapshotIsSortedCopy(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Positioned("b", geometry.Point{X: 1, Y: 2})
	reg.Mounted("a")

	snap := reg.Snapshot()
	if len(snap) != 2 || snap[0].ID != "a" || snap[1].ID != "b" {
		t.Fatalf("snapshot not sorted: %+v", snap)
	}
	snap[1].Coordinates.X = 99
	if got, _ := reg.Get("b"); got.Coordinates.X != 1 {
		t.Fatalf("snapshot shares coordinates with the registry")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatalf("unknown overlay reported as present")
	}
}

func TestRegistryConcurrentReaders(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = reg.Snapshot()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		reg.Transition("save", overlay.Hidden, overlay.Visible)
		reg.Positioned("save", geometry.Point{X: float64(j)})
		reg.Transition("save", overlay.Visible, overlay.Hidden)
	}
	wg.Wait()

	if got, _ := reg.Get("save"); got.Transitions != 200 {
		t.Fatalf("transitions = %d, want 200", got.Transitions)
	}
}

func TestRegistryMetricNames(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Transition("save", overlay.Hidden, overlay.PendingShow)
	reg.Mounted("save")
	reg.Unmounted("save")
	reg.ShowCancelled("save")

	names, err := reg.prom.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var got []string
	for _, mf := range names {
		got = append(got, mf.GetName())
	}
	joined := strings.Join(got, ",")
	for _, want := range []string{
		"overlay_transitions_total",
		"overlay_mounts_total",
		"overlay_unmounts_total",
		"overlay_show_cancelled_total",
		"overlay_visible",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("metric %s not registered, got %s", want, joined)
		}
	}
}
