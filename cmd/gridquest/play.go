package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-quest/internal/config"
	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/platform/tui"
	"github.com/vovakirdan/grid-quest/internal/storage"
)

var flagPlayPace string

var playCmd = &cobra.Command{
	Use:   "play [scenario|file.yaml]",
	Short: "Play a scenario",
	Long: `Guide the character with the keyboard. Every key runs one block.

Controls:
  Arrows/WASD        - Move one tile
  Shift+Arrows/HJKL  - Jump two tiles
  I                  - Change appearance
  N/P                - Next/previous scenario
  R                  - Restart the scenario
  Q/Ctrl+C           - Quit

Pace options:
  slow     - Pauses twice as long
  normal   - 500ms after a move, 300ms after a teleport
  fast     - Pauses half as long
  instant  - No pauses

Examples:
  gridquest play
  gridquest play level3
  gridquest play ./my-levels/maze.yaml
  gridquest play level2 --pace slow`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayPace, "pace", "", "Pace preset: slow, normal, fast, instant")
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	a := mustSetup("play.log", storage.SourcePlay)
	defer a.close()

	scenarioID := a.cfg.Scenarios.Default
	if len(args) > 0 {
		id, err := a.resolveScenario(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		scenarioID = id
	}

	if _, err := a.library.Get(scenarioID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'gridquest list' to see available scenarios.")
		os.Exit(1)
	}

	if flagPlayPace != "" {
		pace, err := config.ParsePace(flagPlayPace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		a.cfg.Pace = pace
	}

	store := a.openStore()

	opts := a.playOptions(store)
	opts.Runtime = terminalConfig()

	_, runErr := tui.Run(opts, scenarioID)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
