// Package config provides YAML-based configuration loading and pace
// presets for grid-quest.
package config

import (
	"fmt"
	"time"
)

// Config contains all grid-quest settings.
type Config struct {
	Timing    TimingConfig    `yaml:"timing"`
	Pace      Pace            `yaml:"pace"`
	Player    PlayerConfig    `yaml:"player"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	SSH       SSHConfig       `yaml:"ssh"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// TimingConfig defines the pauses between block actions, in milliseconds.
type TimingConfig struct {
	PauseMS         int `yaml:"pause_ms"`
	TeleportPauseMS int `yaml:"teleport_pause_ms"`
}

// PlayerConfig defines the character defaults.
type PlayerConfig struct {
	Appearance string `yaml:"appearance"`
	Name       string `yaml:"name"` // Stored with run history
}

// ScenariosConfig defines where scenarios come from.
type ScenariosConfig struct {
	Dir     string `yaml:"dir"`     // User scenario directory, merged over the embedded set
	Default string `yaml:"default"` // Scenario loaded by play and run when none is given
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
}

// StorageConfig defines the run history database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
}

// TelemetryConfig defines trace export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"` // Fraction of runs traced, 0..1
}

// Pause returns the standard pause, before pace scaling.
func (c Config) Pause() time.Duration {
	return time.Duration(c.Timing.PauseMS) * time.Millisecond
}

// TeleportPause returns the teleport pause, before pace scaling.
func (c Config) TeleportPause() time.Duration {
	return time.Duration(c.Timing.TeleportPauseMS) * time.Millisecond
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.Timing.PauseMS < 0 || c.Timing.TeleportPauseMS < 0 {
		return fmt.Errorf("config: timings must not be negative")
	}
	if _, err := ParsePace(string(c.Pace)); err != nil {
		return err
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("config: telemetry sample ratio %v is outside 0..1", c.Telemetry.SampleRatio)
	}
	switch c.Log.Format {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
