package config

import (
	_ "embed"
)

//go:embed defaults/gridquest.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when no YAML can be read.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			PauseMS:         500,
			TeleportPauseMS: 300,
		},
		Pace: PaceNormal,
		Player: PlayerConfig{
			Appearance: "player",
		},
		Scenarios: ScenariosConfig{
			Dir:     "~/.gridquest/scenarios",
			Default: "level1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Path: "~/.gridquest/runs.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			HostKeyPath: ".ssh/gridquest_ed25519",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "gridquest",
			SampleRatio: 1,
		},
	}
}
