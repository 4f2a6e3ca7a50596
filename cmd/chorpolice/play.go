package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/platform/tui"
	"github.com/vovakirdan/chorpolice/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant. Without one, a mode picker lets you
choose between the classic level, the endless run and the built-in levels.

Variants:
  chor          - Classic: reach the flag at the end of the level
  chor_endless  - Endless: procedural rooftops, faster police the further you run

Controls:
  Left/A, Right/D  - Run
  Space/W/Up       - Jump (stomp police from above)
  P/Esc            - Pause
  R                - Restart after being caught or escaping
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  chorpolice play
  chorpolice play chor --level rooftops
  chorpolice play chor_endless --difficulty hard
  chorpolice play chor --config ./my-chor.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		playVariant(args[0])
		return
	}

	selection, err := tui.RunModeSelector(runtimeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selection == nil {
		return
	}
	if selection.Level != "" {
		flagLevel = selection.Level
	}
	playVariant(selection.Variant)
}

// playVariant runs one variant until the player quits.
func playVariant(variant string) {
	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'chorpolice list' to see available variants.")
		os.Exit(1)
	}

	e := newEnv()
	defer e.Close()

	game, err := registry.Create(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	e.logger.Info("starting", "variant", variant, "seed", e.cfg.Seed)
	runErr := tui.Run(game, e.cfg, tui.Options{
		Store:  e.store,
		Audio:  e.audio,
		Logger: e.logger,
	})
	if runErr != nil {
		e.Close()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
