// gridquest is a grid quest game for learning block programming in the terminal.
//
// Usage:
//
//	gridquest list                 - List available scenarios
//	gridquest blocks               - List available blocks
//	gridquest play [scenario]      - Play a scenario with the keyboard
//	gridquest menu                 - Pick scenarios interactively
//	gridquest run <program.yaml>   - Run a block program headless
//	gridquest results [scenario]   - Show run history
//	gridquest serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.gridquest/config.yaml)
//	--db <path>         - Run history database (default: ~/.gridquest/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--scenarios <dir>   - Extra scenario directory
//	--telemetry         - Export traces over OTLP HTTP
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLogLevel  string
	flagScenarios string
	flagTelemetry bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridquest",
	Short: "Grid Quest - Guide a character across the grid with blocks",
	Long: `Grid Quest is a terminal game for learning block programming.
Guide the character from the start tile to the arrival tile. Avoid lava,
and use portals to travel across the map.

Available commands:
  list     - Show all scenarios
  blocks   - Show all blocks
  play     - Play a scenario with the keyboard
  menu     - Interactive scenario picker
  run      - Run a block program file
  results  - View run history
  serve    - Start SSH server for remote play

Examples:
  gridquest list
  gridquest play level2
  gridquest run ./programs/lava.yaml --pace fast
  gridquest serve --ssh :2222
  gridquest results level2`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagScenarios, "scenarios", "", "Directory with extra scenario files")
	rootCmd.PersistentFlags().BoolVar(&flagTelemetry, "telemetry", false, "Export traces over OTLP HTTP")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
