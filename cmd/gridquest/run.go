package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-quest/internal/blocks"
	"github.com/vovakirdan/grid-quest/internal/board"
	"github.com/vovakirdan/grid-quest/internal/config"
	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/program"
	"github.com/vovakirdan/grid-quest/internal/quest"
	"github.com/vovakirdan/grid-quest/internal/scenario"
	"github.com/vovakirdan/grid-quest/internal/storage"
)

var (
	flagRunPace     string
	flagRunNoSave   bool
	flagRunScenario string
)

var runCmd = &cobra.Command{
	Use:   "run <program.yaml>",
	Short: "Run a block program",
	Long: `Run a block program without the interactive screen.

A program names a scenario and lists blocks to execute:

  name: over the lava
  scenario: level2
  appearance: robot
  steps:
    - moveRight
    - moveRight
    - jumpRight
    - repeat: 2
      steps: [moveRight]

Each executed step is printed with the character's location. The run stops
when the character reaches lava or the arrival tile.

Examples:
  gridquest run lava.yaml
  gridquest run lava.yaml --pace instant
  gridquest run lava.yaml --no-save
  gridquest run walk.yaml --scenario-file ./my-levels/maze.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runProgram,
}

func init() {
	runCmd.Flags().StringVar(&flagRunPace, "pace", "", "Pace preset: slow, normal, fast, instant")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record the run")
	runCmd.Flags().StringVar(&flagRunScenario, "scenario-file", "", "Scenario file to run the program on, replacing its scenario")
}

func runProgram(cmd *cobra.Command, args []string) {
	a := mustSetup("", storage.SourceProgram)
	defer a.close()

	prog, err := program.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagRunScenario != "" {
		sc, scErr := scenario.LoadPath(flagRunScenario)
		if scErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", scErr)
			os.Exit(1)
		}
		a.library.Add(sc)
		prog.Scenario = sc.ID
	}

	if flagRunPace != "" {
		pace, paceErr := config.ParsePace(flagRunPace)
		if paceErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", paceErr)
			os.Exit(1)
		}
		a.cfg.Pace = pace
	}

	defaultScenario, err := a.library.Get(a.cfg.Scenarios.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img := core.DefaultImage()
	if found, ok := core.LookupImage(a.cfg.Player.Appearance); ok {
		img = found
	}

	b := board.New(
		board.WithPace(a.cfg.Pace.Multiplier()),
		board.WithLogger(a.logger),
	)
	controller := quest.New(b,
		quest.WithLogger(a.logger),
		quest.WithTracer(a.tracer),
		quest.WithTimings(a.cfg.Pause(), a.cfg.TeleportPause()),
		quest.WithDefaultImage(img),
		quest.WithDefaultTilemap(defaultScenario.Tilemap()),
	)

	var store *storage.Store
	if !flagRunNoSave {
		store = a.openStore()
	}

	runnerOpts := []program.RunnerOption{
		program.WithLogger(a.logger),
		program.WithTracer(a.tracer),
		program.WithStepFunc(func(i int, call program.Call, loc grid.Location) {
			fmt.Printf("  %3d  %-24s -> %s\n", i+1, call, loc)
		}),
	}
	var savedID string
	if store != nil {
		runnerOpts = append(runnerOpts, program.WithSaver(storeSaver(store, a.cfg.Player.Name, &savedID)))
	}

	runner := program.NewRunner(b, controller, blocks.Catalog{Scenarios: a.library}, runnerOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Program %q\n\n", prog.Name)
	res, runErr := runner.Run(ctx, prog)

	if store != nil {
		store.Close()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Scenario:  %s\n", res.Scenario)
	fmt.Printf("Outcome:   %s\n", res.Outcome)
	fmt.Printf("Steps:     %d", res.Steps)
	if res.Skipped > 0 {
		fmt.Printf(" (%d skipped after game over)", res.Skipped)
	}
	fmt.Println()
	fmt.Printf("Moves:     %d\n", res.Moves)
	fmt.Printf("Teleports: %d\n", res.Teleports)
	if savedID != "" {
		fmt.Printf("Saved as:  %s\n", savedID)
	}
}

// storeSaver records program results as runs and reports the run ID.
func storeSaver(store *storage.Store, player string, savedID *string) program.ResultSaver {
	return func(ctx context.Context, r program.Result) error {
		run, err := store.SaveRun(ctx, storage.Run{
			ScenarioID: r.Scenario,
			Outcome:    r.Outcome.String(),
			Moves:      r.Moves,
			Teleports:  r.Teleports,
			Steps:      r.Steps,
			Source:     storage.SourceProgram,
			Player:     player,
		})
		if err != nil {
			return err
		}
		*savedID = run.RunID
		return nil
	}
}
