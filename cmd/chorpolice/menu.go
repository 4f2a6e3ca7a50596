package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/platform/tui"
	"github.com/vovakirdan/chorpolice/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the variant menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
After quitting a run you return to the menu.

Examples:
  chorpolice menu
  chorpolice menu --fps 30 --mute`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	e := newEnv()
	defer e.Close()

	cfg := e.cfg
	lastVariant := ""

	for {
		menuResult, err := tui.RunMenu(e.store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(e.store, lastVariant, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		lastVariant = menuResult.GameID

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		err = tui.Run(game, cfg, tui.Options{
			Store:  e.store,
			Audio:  e.audio,
			Logger: e.logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
