package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SimoKiihamaki/overlaykit/internal/geometry"
	"github.com/SimoKiihamaki/overlaykit/internal/overlay"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "OVERLAYKIT_CONFIG"

// Default configuration values. Distances are terminal cells.
const (
	DefaultPlacement     = "top"
	DefaultOffsetCells   = 1
	DefaultShowDelayMs   = 300
	DefaultGraceDelayMs  = 100
	DefaultMaxWidthCells = 40
	DefaultMarginCells   = 1
	DefaultMarkdownStyle = "dark"
	DefaultDiagAddr      = "127.0.0.1:9464"
	ConfigVersion        = "1.0.0" // Increment when schema changes require migration
)

// Overlay holds the settings every anchor starts from.
type Overlay struct {
	Placement     string `yaml:"placement"`
	OffsetCells   *int   `yaml:"offset_cells"`
	ShowDelayMs   *int   `yaml:"show_delay_ms"`
	GraceDelayMs  *int   `yaml:"grace_delay_ms"`
	MaxWidthCells *int   `yaml:"max_width_cells"`
	MarginCells   *int   `yaml:"margin_cells"`
	Interactive   bool   `yaml:"interactive"`
	Disabled      bool   `yaml:"disabled"`
	MarkdownStyle string `yaml:"markdown_style"`
}

// AnchorSpec describes one labelled anchor and the overlay bound to it.
// Empty Placement and nil Interactive inherit from Overlay.
type AnchorSpec struct {
	Label       string `yaml:"label"`
	Tip         string `yaml:"tip"`
	Markdown    bool   `yaml:"markdown,omitempty"`
	Placement   string `yaml:"placement,omitempty"`
	Interactive *bool  `yaml:"interactive,omitempty"`
	Disabled    bool   `yaml:"disabled,omitempty"`
}

// Diagnostics configures the optional HTTP introspection server.
type Diagnostics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	Version     string       `yaml:"version,omitempty"` // Config schema version for migrations
	LogLevel    string       `yaml:"log_level"`
	Overlay     Overlay      `yaml:"overlay"`
	Anchors     []AnchorSpec `yaml:"anchors"`
	Diagnostics Diagnostics  `yaml:"diagnostics"`
}

// Defaults returns a sensible default config.
func Defaults() Config {
	return Config{
		Version:  ConfigVersion,
		LogLevel: "INFO",
		Overlay: Overlay{
			Placement:     DefaultPlacement,
			OffsetCells:   intPtr(DefaultOffsetCells),
			ShowDelayMs:   intPtr(DefaultShowDelayMs),
			GraceDelayMs:  intPtr(DefaultGraceDelayMs),
			MaxWidthCells: intPtr(DefaultMaxWidthCells),
			MarginCells:   intPtr(DefaultMarginCells),
			MarkdownStyle: DefaultMarkdownStyle,
		},
		Anchors: DefaultAnchors(),
		Diagnostics: Diagnostics{
			Addr: DefaultDiagAddr,
		},
	}
}

// DefaultAnchors is the demo screen shown when no anchors are configured.
func DefaultAnchors() []AnchorSpec {
	return []AnchorSpec{
		{Label: "Save", Tip: "Write the current buffer to disk."},
		{Label: "Export", Tip: "Export as CSV, JSON or YAML.", Placement: "right"},
		{Label: "Delete all", Tip: "Removes every entry. This cannot be undone.", Placement: "bottom"},
		{Label: "Shortcuts", Tip: "**Tab** focus next\n\n**Esc** dismiss\n\n**y** copy overlay text", Markdown: true, Interactive: boolPtr(true)},
		{Label: "Sync", Tip: "Push local changes to the remote.", Placement: "left"},
		{Label: "Archive", Tip: "Archiving is disabled in this workspace.", Disabled: true},
	}
}

func configDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "overlaykit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "overlaykit"), nil
}

// Path returns the config file location, honouring EnvConfigPath.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// migrateConfig applies any necessary migrations to bring the config up to the current version.
// Returns the migrated config and a list of warnings about migrations applied.
func migrateConfig(c Config) (Config, []string) {
	var warnings []string

	switch {
	case c.Version == "":
		c.Version = ConfigVersion
		warnings = append(warnings, "config upgraded to version "+ConfigVersion)
	case compareVersions(c.Version, ConfigVersion) < 0:
		warnings = append(warnings, fmt.Sprintf("config upgraded from %s to %s", c.Version, ConfigVersion))
		c.Version = ConfigVersion
	}

	return c, warnings
}

// compareVersions compares two semantic version strings.
// Returns -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2.
// Missing or malformed components count as 0.
func compareVersions(v1, v2 string) int {
	parse := func(v string) [3]int {
		var out [3]int
		parts := strings.Split(v, ".")
		for i := 0; i < len(parts) && i < 3; i++ {
			_, _ = fmt.Sscanf(parts[i], "%d", &out[i])
		}
		return out
	}

	a, b := parse(v1), parse(v2)
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// LoadResult holds the result of loading configuration, including any warnings
// that occurred during loading (e.g., partial parse failures).
type LoadResult struct {
	Config   Config
	Warnings []string
}

// Load reads the configuration from disk, falling back to defaults on error.
// Warnings are logged. Use LoadWithWarnings to surface them elsewhere.
func Load() Config {
	result := LoadWithWarnings()
	for _, warning := range result.Warnings {
		log.Printf("config: warning: %s", warning)
	}
	return result.Config
}

// LoadWithWarnings reads the configuration from the default location.
func LoadWithWarnings() LoadResult {
	p, err := Path()
	if err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{"could not determine config path: " + err.Error()},
		}
	}
	return LoadFile(p)
}

// LoadFile reads the configuration at p. It never fails: a missing file
// yields defaults, and unreadable or corrupt files yield defaults plus a
// warning.
func LoadFile(p string) LoadResult {
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return LoadResult{Config: Defaults()}
	}
	if err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{"could not read config file: " + err.Error()},
		}
	}
	return Parse(b)
}

// Parse decodes YAML and fills every unset field from Defaults.
func Parse(b []byte) LoadResult {
	// Start with empty config instead of defaults to preserve explicit zero values
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{fmt.Sprintf("config file corrupt (using defaults): %v", err)},
		}
	}

	c, warnings := migrateConfig(c)
	defaults := Defaults()

	setStringDefaultIfEmptyOrWhitespace := func(field *string, defaultValue string) {
		if strings.TrimSpace(*field) == "" {
			*field = defaultValue
		}
	}
	setStringDefaultIfEmptyOrWhitespace(&c.LogLevel, defaults.LogLevel)
	setStringDefaultIfEmptyOrWhitespace(&c.Overlay.Placement, defaults.Overlay.Placement)
	setStringDefaultIfEmptyOrWhitespace(&c.Overlay.MarkdownStyle, defaults.Overlay.MarkdownStyle)
	setStringDefaultIfEmptyOrWhitespace(&c.Diagnostics.Addr, defaults.Diagnostics.Addr)

	// Apply defaults for int pointer fields only when nil (preserves explicit zeros)
	setIntDefaultIfNil := func(field **int, defaultValue *int) {
		if *field == nil {
			*field = intPtr(*defaultValue)
		}
	}
	setIntDefaultIfNil(&c.Overlay.OffsetCells, defaults.Overlay.OffsetCells)
	setIntDefaultIfNil(&c.Overlay.ShowDelayMs, defaults.Overlay.ShowDelayMs)
	setIntDefaultIfNil(&c.Overlay.GraceDelayMs, defaults.Overlay.GraceDelayMs)
	setIntDefaultIfNil(&c.Overlay.MaxWidthCells, defaults.Overlay.MaxWidthCells)
	setIntDefaultIfNil(&c.Overlay.MarginCells, defaults.Overlay.MarginCells)

	if c.Anchors == nil {
		c.Anchors = defaults.Anchors
	}

	c.LogLevel = normalizeLogLevel(c.LogLevel)

	if _, ok := parsePlacement(c.Overlay.Placement); !ok {
		warnings = append(warnings, fmt.Sprintf("unknown overlay.placement %q; using %s", c.Overlay.Placement, DefaultPlacement))
		c.Overlay.Placement = DefaultPlacement
	}
	for _, field := range []struct {
		name string
		ptr  **int
		def  int
	}{
		{"overlay.show_delay_ms", &c.Overlay.ShowDelayMs, DefaultShowDelayMs},
		{"overlay.grace_delay_ms", &c.Overlay.GraceDelayMs, DefaultGraceDelayMs},
		{"overlay.margin_cells", &c.Overlay.MarginCells, DefaultMarginCells},
	} {
		if **field.ptr < 0 {
			warnings = append(warnings, fmt.Sprintf("%s must be >= 0, got %d; using default value %d", field.name, **field.ptr, field.def))
			*field.ptr = intPtr(field.def)
		}
	}
	if *c.Overlay.MaxWidthCells <= 0 {
		warnings = append(warnings, fmt.Sprintf("overlay.max_width_cells must be > 0, got %d; using default value %d", *c.Overlay.MaxWidthCells, DefaultMaxWidthCells))
		c.Overlay.MaxWidthCells = intPtr(DefaultMaxWidthCells)
	}

	anchors := make([]AnchorSpec, 0, len(c.Anchors))
	for i, a := range c.Anchors {
		a.Label = strings.TrimSpace(a.Label)
		if a.Label == "" {
			warnings = append(warnings, fmt.Sprintf("anchors[%d] has no label; skipped", i))
			continue
		}
		if a.Placement != "" {
			if _, ok := parsePlacement(a.Placement); !ok {
				warnings = append(warnings, fmt.Sprintf("anchors[%d] (%s): unknown placement %q; inheriting %s", i, a.Label, a.Placement, c.Overlay.Placement))
				a.Placement = ""
			}
		}
		anchors = append(anchors, a)
	}
	c.Anchors = anchors

	return LoadResult{Config: c, Warnings: warnings}
}

func normalizeLogLevel(level string) string {
	trim := strings.TrimSpace(level)
	if trim == "" {
		return "INFO"
	}
	upper := strings.ToUpper(trim)
	if upper == "WARN" {
		return "WARNING"
	}
	return upper
}

func parsePlacement(s string) (geometry.Placement, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return geometry.Top, true
	case "bottom":
		return geometry.Bottom, true
	case "left":
		return geometry.Left, true
	case "right":
		return geometry.Right, true
	default:
		return geometry.Top, false
	}
}

// OverlayOptions converts the shared overlay settings into binding options.
func (c Config) OverlayOptions() []overlay.Option {
	o := c.Overlay
	placement, _ := parsePlacement(o.Placement)
	return []overlay.Option{
		overlay.WithPlacement(placement),
		overlay.WithOffset(float64(intValue(o.OffsetCells, DefaultOffsetCells))),
		overlay.WithShowDelay(millis(intValue(o.ShowDelayMs, DefaultShowDelayMs))),
		overlay.WithGraceDelay(millis(intValue(o.GraceDelayMs, DefaultGraceDelayMs))),
		overlay.WithMaxWidth(float64(intValue(o.MaxWidthCells, DefaultMaxWidthCells))),
		overlay.WithMargin(float64(intValue(o.MarginCells, DefaultMarginCells))),
		overlay.WithInteractive(o.Interactive),
		overlay.WithDisabled(o.Disabled),
	}
}

// AnchorOptions returns OverlayOptions with the anchor's overrides applied.
func (c Config) AnchorOptions(a AnchorSpec) []overlay.Option {
	opts := c.OverlayOptions()
	if p, ok := parsePlacement(a.Placement); ok && a.Placement != "" {
		opts = append(opts, overlay.WithPlacement(p))
	}
	if a.Interactive != nil {
		opts = append(opts, overlay.WithInteractive(*a.Interactive))
	}
	if a.Disabled {
		opts = append(opts, overlay.WithDisabled(true))
	}
	return opts
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func intValue(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// DefaultSaveTimeout is the maximum time allowed for a config save operation.
const DefaultSaveTimeout = 5 * time.Second

// Save writes the configuration to the default location.
func Save(c Config) error {
	return SaveWithTimeout(c, DefaultSaveTimeout)
}

// SaveWithTimeout writes the configuration to the default location with a
// specified timeout.
func SaveWithTimeout(c Config, timeout time.Duration) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c, timeout)
}

// SaveFile writes the configuration to p, creating its directory.
// If the write takes longer than timeout, it returns a timeout error.
func SaveFile(p string, c Config, timeout time.Duration) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- os.WriteFile(p, b, 0o600)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return errors.New("config save timed out after " + timeout.String())
	}
}

// Clone returns a deep copy of the configuration so callers can mutate the
// returned value without affecting the receiver's slices or pointers.
func (c Config) Clone() Config {
	copyCfg := c
	copyCfg.Overlay.OffsetCells = cloneInt(c.Overlay.OffsetCells)
	copyCfg.Overlay.ShowDelayMs = cloneInt(c.Overlay.ShowDelayMs)
	copyCfg.Overlay.GraceDelayMs = cloneInt(c.Overlay.GraceDelayMs)
	copyCfg.Overlay.MaxWidthCells = cloneInt(c.Overlay.MaxWidthCells)
	copyCfg.Overlay.MarginCells = cloneInt(c.Overlay.MarginCells)

	if c.Anchors != nil {
		copyCfg.Anchors = make([]AnchorSpec, len(c.Anchors))
		for i, a := range c.Anchors {
			if a.Interactive != nil {
				a.Interactive = boolPtr(*a.Interactive)
			}
			copyCfg.Anchors[i] = a
		}
	}
	return copyCfg
}

// Equal reports whether two configurations contain the same values. Version
// is ignored, and nil and empty anchor lists are equivalent.
func (c Config) Equal(other Config) bool {
	if c.LogLevel != other.LogLevel || c.Diagnostics != other.Diagnostics {
		return false
	}

	a, b := c.Overlay, other.Overlay
	if a.Placement != b.Placement ||
		a.Interactive != b.Interactive ||
		a.Disabled != b.Disabled ||
		a.MarkdownStyle != b.MarkdownStyle {
		return false
	}
	if !equalIntPointers(a.OffsetCells, b.OffsetCells) ||
		!equalIntPointers(a.ShowDelayMs, b.ShowDelayMs) ||
		!equalIntPointers(a.GraceDelayMs, b.GraceDelayMs) ||
		!equalIntPointers(a.MaxWidthCells, b.MaxWidthCells) ||
		!equalIntPointers(a.MarginCells, b.MarginCells) {
		return false
	}

	if len(c.Anchors) != len(other.Anchors) {
		return false
	}
	for i := range c.Anchors {
		x, y := c.Anchors[i], other.Anchors[i]
		if x.Label != y.Label || x.Tip != y.Tip || x.Markdown != y.Markdown ||
			x.Placement != y.Placement || x.Disabled != y.Disabled ||
			!equalBoolPointers(x.Interactive, y.Interactive) {
			return false
		}
	}
	return true
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}

// equalIntPointers safely compares two int pointers.
// Two nil pointers are considered equal, a nil pointer is different from any non-nil pointer,
// and two non-nil pointers are equal if they point to the same int value.
func equalIntPointers(a, b *int) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func equalBoolPointers(a, b *bool) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
