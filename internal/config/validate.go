package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationIssue represents a configuration validation issue.
type ValidationIssue struct {
	Field    string
	Message  string
	Severity string // "error", "warning", "info"
}

// ValidationResult holds the results of inter-field validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// AddError adds an error-level issue.
func (v *ValidationResult) AddError(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{
		Field:    field,
		Message:  message,
		Severity: "error",
	})
	v.Valid = false
}

// AddWarning adds a warning-level issue.
func (v *ValidationResult) AddWarning(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{
		Field:    field,
		Message:  message,
		Severity: "warning",
	})
}

// AddInfo adds an informational issue.
func (v *ValidationResult) AddInfo(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{
		Field:    field,
		Message:  message,
		Severity: "info",
	})
}

// Errors returns only error-level issues.
func (v *ValidationResult) Errors() []ValidationIssue {
	return v.bySeverity("error")
}

// Warnings returns only warning-level issues.
func (v *ValidationResult) Warnings() []ValidationIssue {
	return v.bySeverity("warning")
}

func (v *ValidationResult) bySeverity(severity string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range v.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateInterField performs cross-field validation on the configuration.
// It checks for logical inconsistencies and potentially problematic combinations.
func (c Config) ValidateInterField() ValidationResult {
	result := ValidationResult{Valid: true}
	o := c.Overlay

	if _, ok := parsePlacement(o.Placement); !ok {
		result.AddError("overlay.placement", "must be one of: top, bottom, left, right")
	}

	if o.ShowDelayMs != nil && *o.ShowDelayMs < 0 {
		result.AddError("overlay.show_delay_ms", "must be >= 0")
	}
	if o.GraceDelayMs != nil && *o.GraceDelayMs < 0 {
		result.AddError("overlay.grace_delay_ms", "must be >= 0")
	}
	if o.MarginCells != nil && *o.MarginCells < 0 {
		result.AddError("overlay.margin_cells", "must be >= 0")
	}
	if o.OffsetCells != nil && *o.OffsetCells < 0 {
		result.AddWarning("overlay.offset_cells", "negative offset makes overlays cover their anchor")
	}

	if o.MaxWidthCells != nil {
		switch {
		case *o.MaxWidthCells <= 0:
			result.AddError("overlay.max_width_cells", "must be > 0")
		case *o.MaxWidthCells < 12:
			result.AddWarning("overlay.max_width_cells", "very narrow overlays (<12 cells) wrap almost every word")
		}
	}

	// Grace delay only matters when at least one overlay is interactive.
	anyInteractive := o.Interactive
	for _, a := range c.Anchors {
		if a.Interactive != nil && *a.Interactive {
			anyInteractive = true
			break
		}
	}
	grace := intValue(o.GraceDelayMs, DefaultGraceDelayMs)
	if !anyInteractive && o.GraceDelayMs != nil && grace != DefaultGraceDelayMs {
		result.AddInfo("overlay.grace_delay_ms", "has no effect when no overlay is interactive")
	}
	if anyInteractive && grace == 0 {
		result.AddWarning("overlay.grace_delay_ms", "interactive overlays close before the pointer can reach them when the grace delay is 0")
	}

	if o.Disabled {
		result.AddInfo("overlay.disabled", "every overlay starts disabled")
	}

	seen := make(map[string]int, len(c.Anchors))
	for i, a := range c.Anchors {
		field := fmt.Sprintf("anchors[%d]", i)
		label := strings.TrimSpace(a.Label)
		if label == "" {
			result.AddError(field+".label", "must not be empty")
			continue
		}
		if prev, ok := seen[strings.ToLower(label)]; ok {
			result.AddWarning(field+".label", fmt.Sprintf("duplicates anchors[%d] (%q)", prev, label))
		} else {
			seen[strings.ToLower(label)] = i
		}
		if a.Placement != "" {
			if _, ok := parsePlacement(a.Placement); !ok {
				result.AddError(field+".placement", "must be one of: top, bottom, left, right")
			}
		}
		if strings.TrimSpace(a.Tip) == "" {
			result.AddWarning(field+".tip", "empty tip renders an empty overlay")
		}
	}

	if c.Diagnostics.Enabled {
		if strings.TrimSpace(c.Diagnostics.Addr) == "" {
			result.AddError("diagnostics.addr", "required when diagnostics are enabled")
		} else if _, _, err := net.SplitHostPort(c.Diagnostics.Addr); err != nil {
			result.AddError("diagnostics.addr", "must be host:port")
		}
	}

	validLogLevels := map[string]bool{
		"DEBUG":   true,
		"INFO":    true,
		"WARNING": true,
		"ERROR":   true,
		"WARN":    true, // Alias
	}
	if !validLogLevels[strings.ToUpper(c.LogLevel)] {
		result.AddError("log_level", "must be one of: DEBUG, INFO, WARNING, ERROR")
	}

	return result
}
