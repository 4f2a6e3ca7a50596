package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/platform/tui"
	"github.com/vovakirdan/chorpolice/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List variants and built-in levels",
	Long:  `Shows every playable variant and the levels built into the binary.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Variants:")
	fmt.Println()

	maxIDLen := 2
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	levels := tui.BuiltinLevels()
	if len(levels) > 0 {
		fmt.Println()
		fmt.Println("Levels (use with --level):")
		fmt.Println()
		for _, l := range levels {
			fmt.Printf("  %-*s  %s\n", maxIDLen, l.ID, l.Name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'chorpolice play <id>' to play a variant.")
}
