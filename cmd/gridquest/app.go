package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/grid-quest/internal/config"
	"github.com/vovakirdan/grid-quest/internal/logging"
	"github.com/vovakirdan/grid-quest/internal/platform/tui"
	"github.com/vovakirdan/grid-quest/internal/scenario"
	"github.com/vovakirdan/grid-quest/internal/storage"
	"github.com/vovakirdan/grid-quest/internal/telemetry"
)

// app holds what every command needs after startup.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	library  *scenario.Library
	tracer   trace.Tracer
	shutdown func(context.Context) error
	logFile  *os.File // Nil when logging to stderr
}

// setup loads .env, config, flags and the scenario library. Interactive
// commands pass a log file so output does not tear the alt screen. source
// tags traces with the storage source the command records runs under.
func setup(logFile, source string) (*app, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagScenarios != "" {
		cfg.Scenarios.Dir = flagScenarios
	}
	if flagTelemetry {
		cfg.Telemetry.Enabled = true
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Prefix: "gridquest"}
	var f *os.File
	if logFile != "" {
		f, err = openLogFile(logFile)
		if err != nil {
			return nil, err
		}
		logOpts.Output = f
	}
	logger := logging.New(logOpts)

	lib, err := scenario.NewLibrary(config.ExpandHome(cfg.Scenarios.Dir), logger)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		library:  lib,
		tracer:   telemetry.NoopTracer(),
		shutdown: func(context.Context) error { return nil },
		logFile:  f,
	}

	if cfg.Telemetry.Enabled {
		shutdown, telErr := telemetry.Setup(context.Background(), telemetry.Options{
			ServiceName: cfg.Telemetry.ServiceName,
			SampleRatio: cfg.Telemetry.SampleRatio,
			Source:      source,
		})
		if telErr != nil {
			logger.Warn("telemetry disabled", "error", telErr)
		} else {
			a.shutdown = shutdown
			a.tracer = telemetry.Tracer("quest")
		}
	}

	return a, nil
}

// mustSetup is setup for command Run functions.
func mustSetup(logFile, source string) *app {
	a, err := setup(logFile, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

func openLogFile(name string) (*os.File, error) {
	path := config.ExpandHome(filepath.Join("~/.gridquest", name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openStore opens run history. Commands keep working without it.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// playOptions builds TUI options from config.
func (a *app) playOptions(store *storage.Store) tui.Options {
	return tui.Options{
		Library:       a.library,
		Store:         store,
		Logger:        a.logger,
		Tracer:        a.tracer,
		Pace:          a.cfg.Pace,
		Pause:         a.cfg.Pause(),
		TeleportPause: a.cfg.TeleportPause(),
		Appearance:    a.cfg.Player.Appearance,
		Player:        a.cfg.Player.Name,
	}
}

// resolveScenario returns the scenario ID for arg. An existing file is
// loaded and added to the library; anything else is taken as an ID.
func (a *app) resolveScenario(arg string) (string, error) {
	if info, err := os.Stat(arg); err != nil || info.IsDir() {
		return arg, nil
	}
	sc, err := scenario.LoadPath(arg)
	if err != nil {
		return "", err
	}
	a.library.Add(sc)
	a.logger.Debug("loaded scenario file", "path", arg, "id", sc.ID)
	return sc.ID, nil
}

func (a *app) close() {
	if err := a.shutdown(context.Background()); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
