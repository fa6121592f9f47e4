package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-quest/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsClear bool
	flagResultsRun   string
)

var resultsCmd = &cobra.Command{
	Use:   "results [scenario]",
	Short: "Show run history",
	Long: `Display recent runs and statistics, for one scenario or all of them.

Examples:
  gridquest results
  gridquest results level2 --limit 5
  gridquest results level2 --clear
  gridquest results --run 6f1c2e9a-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of runs to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the selected run history")
	resultsCmd.Flags().StringVar(&flagResultsRun, "run", "", "Show a single run by its ID")
}

func runResults(cmd *cobra.Command, args []string) {
	a := mustSetup("", "")
	defer a.close()

	scenarioID := ""
	title := "all scenarios"
	if len(args) > 0 {
		sc, err := a.library.Get(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'gridquest list' to see available scenarios.")
			os.Exit(1)
		}
		scenarioID = sc.ID
		title = sc.Name
	}

	store := a.openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	ctx := cmd.Context()

	if flagResultsRun != "" {
		showRun(cmd, store, flagResultsRun)
		return
	}

	if flagResultsClear {
		if err := store.ClearRuns(ctx, scenarioID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history for %s.\n", title)
		return
	}

	runs, err := store.RecentRuns(ctx, scenarioID, flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run History - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gridquest play' or run a program to record the first run!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-7s  %-5s  %-7s  %-8s  %s\n", "#", "Scenario", "Outcome", "Moves", "Portals", "Source", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %-5s  %-7s  %-8s  %s\n", "-", "--------", "-------", "-----", "-------", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-7s  %-5d  %-7d  %-8s  %s\n",
			i+1, r.ScenarioID, r.Outcome, r.Moves, r.Teleports, r.Source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenarioID == "" {
		return
	}

	stats, err := store.GetScenarioStats(ctx, scenarioID)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Won: %d  Lost: %d", stats.Runs, stats.Wins, stats.Losses)
		if stats.Wins > 0 {
			fmt.Printf("  Best: %d moves", stats.BestMoves)
		}
		fmt.Println()
	}
}

func showRun(cmd *cobra.Command, store *storage.Store, runID string) {
	run, err := store.RunByID(cmd.Context(), runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with ID %q\n", runID)
		os.Exit(1)
	}

	fmt.Printf("Run:       %s\n", run.RunID)
	fmt.Printf("Scenario:  %s\n", run.ScenarioID)
	fmt.Printf("Outcome:   %s\n", run.Outcome)
	fmt.Printf("Steps:     %d\n", run.Steps)
	fmt.Printf("Moves:     %d\n", run.Moves)
	fmt.Printf("Teleports: %d\n", run.Teleports)
	fmt.Printf("Source:    %s\n", run.Source)
	if run.Player != "" {
		fmt.Printf("Player:    %s\n", run.Player)
	}
	fmt.Printf("Date:      %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
}
