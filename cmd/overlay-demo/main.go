package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/overlaykit/internal/config"
	"github.com/SimoKiihamaki/overlaykit/internal/diag"
	"github.com/SimoKiihamaki/overlaykit/internal/tui"
)

const (
	saveTimeout     = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

type options struct {
	configPath  string
	anchors     string
	placement   string
	interactive bool
	diagAddr    string
	logFile     string
	saveConfig  bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("overlay-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/overlaykit/config.yaml)")
	fs.StringVar(&opts.anchors, "anchors", "", `anchors to show, e.g. 'Save "Delete all=Removes every entry"'`)
	fs.StringVar(&opts.placement, "placement", "", "default placement: top, right, bottom or left")
	fs.BoolVar(&opts.interactive, "interactive", false, "keep overlays open while the pointer is over them")
	fs.StringVar(&opts.diagAddr, "diag-addr", "", "serve diagnostics on this address")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "write the effective config back to disk")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// buildConfig loads the config file and applies flag overrides on top.
func buildConfig(opts options) (config.Config, []string, error) {
	var res config.LoadResult
	if opts.configPath != "" {
		res = config.LoadFile(opts.configPath)
	} else {
		res = config.LoadWithWarnings()
	}
	cfg := res.Config

	if opts.set["anchors"] {
		anchors, err := config.ParseAnchorList(opts.anchors)
		if err != nil {
			return cfg, res.Warnings, err
		}
		if len(anchors) == 0 {
			return cfg, res.Warnings, errors.New("-anchors: no anchors given")
		}
		cfg.Anchors = anchors
	}
	if opts.set["placement"] {
		cfg.Overlay.Placement = strings.ToLower(strings.TrimSpace(opts.placement))
	}
	if opts.set["interactive"] {
		cfg.Overlay.Interactive = opts.interactive
	}
	if opts.set["diag-addr"] {
		cfg.Diagnostics.Enabled = opts.diagAddr != ""
		cfg.Diagnostics.Addr = opts.diagAddr
	}
	return cfg, res.Warnings, nil
}

// validate logs every issue and fails on the first error.
func validate(cfg config.Config) error {
	result := cfg.ValidateInterField()
	for _, issue := range result.Issues {
		log.Printf("config: %s: %s: %s", issue.Severity, issue.Field, issue.Message)
	}
	if errs := result.Errors(); len(errs) > 0 {
		return fmt.Errorf("invalid config: %s: %s", errs[0].Field, errs[0].Message)
	}
	return nil
}

// saveConfig writes cfg back to the file it was loaded from when
// -save-config is set.
func saveConfig(opts options, cfg config.Config) error {
	if !opts.saveConfig {
		return nil
	}
	var err error
	if opts.configPath != "" {
		err = config.SaveFile(opts.configPath, cfg, saveTimeout)
	} else {
		err = config.SaveWithTimeout(cfg, saveTimeout)
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func startDiagnostics(cfg config.Config, reg *diag.Registry) (*diag.Server, error) {
	if !cfg.Diagnostics.Enabled {
		return nil, nil
	}
	l, err := net.Listen("tcp", cfg.Diagnostics.Addr)
	if err != nil {
		return nil, fmt.Errorf("diagnostics listen: %w", err)
	}
	srv := diag.NewServer(diag.Config{Addr: l.Addr().String(), Logger: log.Default()}, reg)
	go func() {
		log.Printf("diag: serving on %s", srv.Addr())
		if err := srv.StartListener(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("diag: server error: %v", err)
		}
	}()
	return srv, nil
}

func run(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// stdout belongs to the renderer.
	if opts.logFile != "" {
		f, err := tea.LogToFile(opts.logFile, "overlaykit")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, warnings, err := buildConfig(opts)
	for _, w := range warnings {
		log.Printf("config: warning: %s", w)
	}
	if err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}
	if err := saveConfig(opts, cfg); err != nil {
		return err
	}

	reg := diag.NewRegistry()
	srv, err := startDiagnostics(cfg, reg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.New(cfg, tui.WithObserver(reg), tui.WithLogger(log.Default())),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	final, runErr := p.Run()
	if m, ok := final.(interface{ Close() }); ok {
		m.Close()
	}

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("diag: graceful shutdown failed: %v", err)
		}
	}
	return runErr
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "overlay-demo: %v\n", err)
		os.Exit(1)
	}
}
