package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Register blocks
	_ "github.com/vovakirdan/grid-quest/internal/blocks"
	"github.com/vovakirdan/grid-quest/internal/registry"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List all available blocks",
	Long:  `Shows every block a program can use, grouped by palette.`,
	Run:   runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) {
	list := registry.List()

	if len(list) == 0 {
		fmt.Println("No blocks available.")
		return
	}

	maxIDLen := 2
	for _, b := range list {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	var group registry.Group
	for _, b := range list {
		if b.Group != group {
			if group != "" {
				fmt.Println()
			}
			group = b.Group
			fmt.Printf("%s:\n", group)
		}
		id := b.ID
		if b.TakesArg() {
			id = fmt.Sprintf("%s(%s)", b.ID, b.Arg)
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen+10, id, b.Label)
	}
}
