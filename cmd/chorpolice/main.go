// chorpolice is a terminal platformer: steal, run and stay ahead of the police.
//
// Usage:
//
//	chorpolice                     - Play the classic level
//	chorpolice play [variant]      - Play a variant (mode picker without one)
//	chorpolice list                - List variants and built-in levels
//	chorpolice menu                - Start the interactive menu
//	chorpolice scores [variant]    - Show high scores
//	chorpolice config [variant]    - Print the default config as YAML
//	chorpolice serve               - Start the SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.chorpolice/scores.db)
//	--log <path>          - Set log file (default: ~/.chorpolice/chorpolice.log)
//	--mute                - Disable sound
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--level <name|path>   - Built-in level name or level YAML file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/config"

	// Register the game variants
	_ "github.com/vovakirdan/chorpolice/internal/games/chor"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagLogLevel   string
	flagMute       bool
	flagConfig     string
	flagDifficulty string
	flagLevel      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chorpolice",
	Short: "Chor Police - outrun the police in your terminal",
	Long: `Chor Police is a side-scrolling platformer for the terminal.
You are the thief: grab coins, stomp on officers and reach the flag
before the police catch you. Run with no arguments to play the classic level.

Available commands:
  play     - Play a variant directly
  list     - Show variants and levels
  menu     - Interactive menu with scoreboard
  scores   - View high scores
  config   - Print a default config to customize
  serve    - Start SSH server for remote play

Examples:
  chorpolice
  chorpolice play chor_endless --difficulty hard
  chorpolice play --level rooftops
  chorpolice serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		playVariant(config.VariantClassic)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.chorpolice/scores.db", "Path to scores database")
	pf.StringVar(&flagLogPath, "log", "~/.chorpolice/chorpolice.log", "Path to log file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects and music")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevel, "level", "", "Level for the classic variant: built-in name or YAML path")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
