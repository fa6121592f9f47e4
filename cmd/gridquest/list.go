package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long:  `Shows the embedded scenarios merged with the user scenario directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	a := mustSetup("", "")
	defer a.close()

	scenarios := a.library.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, sc := range scenarios {
		if len(sc.ID) > maxIDLen {
			maxIDLen = len(sc.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Size", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "----")

	for _, sc := range scenarios {
		w, h := sc.Size()
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, sc.ID, fmt.Sprintf("%dx%d", w, h), sc.Name)
	}

	fmt.Println()
	fmt.Println("Run 'gridquest play <id>' to play a scenario.")
}
