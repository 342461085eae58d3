package diag

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

func testRouter(reg *Registry) http.Handler {
	return newRouter(reg, log.New(io.Discard, "", 0))
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	router := testRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("security header missing, got %q", got)
	}
}

func TestListOverlays(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Transition("anchor-0", overlay.Hidden, overlay.Visible)
	reg.Mounted("anchor-0")
	reg.Positioned("anchor-0", geometry.Point{X: 12, Y: 4})
	reg.Transition("anchor-1", overlay.Hidden, overlay.PendingShow)

	rr := httptest.NewRecorder()
	testRouter(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/overlays", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body struct {
		Data    []OverlayStatus `json:"data"`
		Mounted int             `json:"mounted"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Data) != 2 || body.Mounted != 1 {
		t.Fatalf("unexpected listing: %+v", body)
	}
	if body.Data[0].ID != "anchor-0" || body.Data[0].Coordinates == nil || body.Data[0].Coordinates.X != 12 {
		t.Fatalf("unexpected first overlay: %+v", body.Data[0])
	}
	if body.Data[1].State != "pending-show" || body.Data[1].Coordinates != nil {
		t.Fatalf("unexpected second overlay: %+v", body.Data[1])
	}
}

func TestGetOverlay(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Transition("anchor-3", overlay.Hidden, overlay.Visible)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"known", "/api/overlays/anchor-3", http.StatusOK},
		{"unknown", "/api/overlays/nope", http.StatusNotFound},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		testRouter(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, rr.Code, tc.want)
		}
	}

	rr := httptest.NewRecorder()
	testRouter(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/overlays/anchor-3", nil))
	var got OverlayStatus
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "anchor-3" || got.State != "visible" {
		t.Fatalf("unexpected overlay: %+v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Transition("anchor-0", overlay.Hidden, overlay.PendingShow)
	reg.ShowCancelled("anchor-0")

	rr := httptest.NewRecorder()
	testRouter(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`overlay_transitions_total{from="hidden",to="pending-show"} 1`,
		"overlay_show_cancelled_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	t.Parallel()
	rr := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/overlays", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
