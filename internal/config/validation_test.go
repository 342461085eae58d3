package config

import (
	"strconv"
	"testing"
)

func hasIssue(issues []ValidationIssue, field string) bool {
	for _, issue := range issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

func TestValidateInterFieldDefaultsValid(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	result := cfg.ValidateInterField()

	if !result.Valid {
		t.Errorf("default config should be valid, got errors: %v", result.Errors())
	}
	if len(result.Warnings()) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", result.Warnings())
	}
}

func TestValidateInterFieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"placement", func(c *Config) { c.Overlay.Placement = "diagonal" }, "overlay.placement"},
		{"show delay", func(c *Config) { c.Overlay.ShowDelayMs = intPtr(-1) }, "overlay.show_delay_ms"},
		{"grace delay", func(c *Config) { c.Overlay.GraceDelayMs = intPtr(-1) }, "overlay.grace_delay_ms"},
		{"margin", func(c *Config) { c.Overlay.MarginCells = intPtr(-2) }, "overlay.margin_cells"},
		{"max width", func(c *Config) { c.Overlay.MaxWidthCells = intPtr(0) }, "overlay.max_width_cells"},
		{"anchor label", func(c *Config) { c.Anchors[0].Label = " " }, "anchors[0].label"},
		{"anchor placement", func(c *Config) { c.Anchors[1].Placement = "up" }, "anchors[1].placement"},
		{"log level", func(c *Config) { c.LogLevel = "LOUD" }, "log_level"},
		{"diag addr missing", func(c *Config) {
			c.Diagnostics.Enabled = true
			c.Diagnostics.Addr = ""
		}, "diagnostics.addr"},
		{"diag addr malformed", func(c *Config) {
			c.Diagnostics.Enabled = true
			c.Diagnostics.Addr = "localhost"
		}, "diagnostics.addr"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Defaults()
			tc.mutate(&cfg)
			result := cfg.ValidateInterField()
			if result.Valid {
				t.Fatalf("expected invalid config")
			}
			if !hasIssue(result.Errors(), tc.field) {
				t.Fatalf("expected error on %s, got %v", tc.field, result.Errors())
			}
		})
	}
}

func TestValidateInterFieldWarnings(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.Overlay.GraceDelayMs = intPtr(0)
	cfg.Overlay.MaxWidthCells = intPtr(10)
	cfg.Overlay.OffsetCells = intPtr(-1)
	cfg.Anchors = append(cfg.Anchors, AnchorSpec{Label: "save", Tip: ""})

	result := cfg.ValidateInterField()
	if !result.Valid {
		t.Fatalf("warnings alone should not invalidate, got %v", result.Errors())
	}
	warnings := result.Warnings()
	last := len(cfg.Anchors) - 1
	for _, field := range []string{
		"overlay.grace_delay_ms",
		"overlay.max_width_cells",
		"overlay.offset_cells",
		"anchors[" + strconv.Itoa(last) + "].label",
		"anchors[" + strconv.Itoa(last) + "].tip",
	} {
		if !hasIssue(warnings, field) {
			t.Errorf("expected warning on %s, got %v", field, warnings)
		}
	}
}

func TestValidateInterFieldGraceWithoutInteractive(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.Anchors = []AnchorSpec{{Label: "Save", Tip: "Save it"}}
	cfg.Overlay.GraceDelayMs = intPtr(400)

	result := cfg.ValidateInterField()
	found := false
	for _, issue := range result.Issues {
		if issue.Field == "overlay.grace_delay_ms" && issue.Severity == "info" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected info about unused grace delay, got %v", result.Issues)
	}
}
