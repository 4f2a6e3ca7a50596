package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 runs for a variant (the classic one by default).

Examples:
  chorpolice scores
  chorpolice scores chor_endless
  chorpolice scores chor --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run of the variant")
}

func runScores(_ *cobra.Command, args []string) {
	variant := config.VariantClassic
	if len(args) == 1 {
		variant = args[0]
	}

	game, err := registry.Create(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'chorpolice list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(variant); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return
	}

	scores, err := store.TopScores(variant, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'chorpolice play %s' to set the first high score!\n", variant)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "-------", "----", "----")
	for i, entry := range scores {
		secs := int(entry.Duration.Seconds())
		fmt.Printf("  %-4d  %-8d  %-8s  %-6s  %s\n",
			i+1, entry.Score, entry.Outcome,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	if st, ok := stats[variant]; ok {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Escapes: %d   Average: %.0f\n",
			st.HighScore, st.Runs, st.Escapes, st.AvgScore)
	}
}
