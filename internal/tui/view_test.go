package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestBuildHelpOverlayContentListsEveryAction(t *testing.T) {
	t.Parallel()
	m := model{keys: DefaultKeyMap()}

	content := ansi.Strip(buildHelpOverlayContent(m))
	if content == "" {
		t.Fatalf("expected help overlay content to render")
	}
	for _, want := range []string{"Keys", "Focus next anchor", "Cycle placement", "Shift+Tab", "Esc"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in help overlay, got:\n%s", want, content)
		}
	}
}

func TestPowerlineBarRenderFullWidth(t *testing.T) {
	t.Parallel()

	bar := NewPowerlineBar([]PowerlineSegment{{Text: "Save"}, {Text: ""}, {Text: "visible"}})
	got := ansi.Strip(bar.RenderFullWidth(20))
	if got != "Save visible        " {
		t.Fatalf("RenderFullWidth(20) = %q", got)
	}
	if got := ansi.StringWidth(bar.RenderFullWidth(6)); got > 6 {
		t.Fatalf("truncated bar is %d cells wide, want <= 6", got)
	}
	if got := NewPowerlineBar(nil).RenderFullWidth(10); got != "" {
		t.Fatalf("empty bar rendered %q", got)
	}
}

func TestStatusIndicatorIcons(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ok":    "✓ done",
		"error": "✗ done",
		"warn":  "⚠ done",
		"":      "● done",
	}
	for status, want := range tests {
		got := ansi.Strip(StatusIndicator{Label: "done", Status: status}.Render())
		if got != want {
			t.Errorf("status %q rendered %q, want %q", status, got, want)
		}
	}
}
