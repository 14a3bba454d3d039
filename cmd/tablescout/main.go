// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

// tablescout is an interactive terminal UI for restaurant
// recommendations. Pick a city and up to five restaurants you already
// like there; the backend sweeps the city for candidates and ranks
// them against your picks by cuisine, description, and menu tag
// similarity.
//
// Configuration comes from the YAML file named by TABLESCOUT_CONFIG
// (built-in defaults apply when unset); flags override the file. While
// the alternate screen is active, log records are routed into the
// status bar instead of stderr, with --log-output capturing full JSON
// records to a file for post-mortem debugging.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tablescout/tablescout/lib/api"
	"github.com/tablescout/tablescout/lib/config"
	"github.com/tablescout/tablescout/lib/diningui"
	"github.com/tablescout/tablescout/lib/selection"
	"github.com/tablescout/tablescout/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var serverURL string
	var topK int
	var themeFile string
	var logOutput string

	flagSet := pflag.NewFlagSet("tablescout", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $TABLESCOUT_CONFIG)")
	flagSet.StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	flagSet.IntVar(&topK, "top-k", 0, "recommendations per fetch (overrides config)")
	flagSet.StringVar(&themeFile, "theme", "", "path to a JSONC theme file (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works even alongside
	// invalid flags.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("tablescout")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if topK > 0 {
		cfg.Search.TopK = topK
	}
	if themeFile != "" {
		cfg.UI.ThemeFile = themeFile
	}
	if logOutput != "" {
		cfg.Log.Output = logOutput
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The TUI takes over the whole terminal, so refuse to start when
	// stdout is a pipe or file.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tablescout needs an interactive terminal (stdout is not a TTY)")
	}

	// Until the program owns the terminal, warnings go to stderr as
	// plain text.
	setupLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	theme := diningui.DefaultTheme
	if cfg.UI.ThemeFile != "" {
		loaded, themeErr := diningui.LoadTheme(cfg.UI.ThemeFile)
		if themeErr != nil {
			setupLogger.Warn("theme file rejected, using the default theme",
				"file", cfg.UI.ThemeFile, "error", themeErr)
		} else {
			theme = loaded
		}
	}

	// Background logging goes through the TUI handler so warnings and
	// errors land in the status bar instead of corrupting the alt
	// screen. The file handler, when configured, captures everything at
	// debug level.
	tuiHandler := diningui.NewTUILogHandler(cfg.LogLevel())
	logger, closeLogger, err := buildLogger(tuiHandler, cfg.Log.Output)
	if err != nil {
		return err
	}
	defer closeLogger()

	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.Server.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.ServerTimeout()},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	store := selection.NewStore()

	model := diningui.New(diningui.Config{
		Client:     client,
		Store:      store,
		Theme:      theme,
		TopK:       cfg.Search.TopK,
		Debounce:   cfg.SearchDebounce(),
		MaxVisible: cfg.Search.MaxVisible,
		Logger:     logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	// The model already re-reads the store after its own mutations;
	// the subscription covers mutations from anywhere else. Send runs
	// on a fresh goroutine because notifications fire on the mutating
	// goroutine, and during a suggestion accept that is the update loop
	// itself, where a synchronous Send would deadlock.
	unsubscribe := store.Subscribe(func() {
		go program.Send(diningui.StoreChangedMsg{})
	})
	defer unsubscribe()

	// Wire the TUI handler to the program so log records flow into the
	// message loop. Must happen after NewProgram; records arriving
	// before this call are dropped, which is fine because nothing is
	// rendering yet.
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// loadConfig loads the configuration: an explicit --config path wins,
// otherwise TABLESCOUT_CONFIG, otherwise the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// buildLogger assembles the logger for everything running behind the
// TUI: the status bar handler always, plus a JSON file handler when an
// output path is configured. The returned close function flushes the
// file.
func buildLogger(tuiHandler *diningui.TUILogHandler, output string) (*slog.Logger, func(), error) {
	if output == "" {
		return slog.New(tuiHandler), func() {}, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", output, err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(fanoutHandler{tuiHandler, fileHandler})
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tablescout: find restaurants you will like in a city you are visiting.

Pick a city and up to five restaurants you already like there. The
backend sweeps the city for candidates and ranks them against your
picks. Results can be filtered, inspected, and re-ranked; past
searches reload from the history tab.

Configuration is read from the YAML file named by TABLESCOUT_CONFIG,
or from --config. Flags override the file.

Usage:
  tablescout [flags]

Examples:
  # Run against the default local backend
  tablescout

  # Point at a remote backend and ask for more results
  tablescout --server https://scout.example.net --top-k 20

  # Capture debug logs while reproducing a problem
  tablescout --log-output /tmp/tablescout.log.jsonl

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
