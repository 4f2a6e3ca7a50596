package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chorpolice/internal/games/chor"
	"github.com/vovakirdan/chorpolice/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent session with the variant menu.
Scores are stored per-server (all users share the same leaderboard).
Sound is never played on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.chorpolice/host_key

Examples:
  chorpolice serve                           # Listen on :23234
  chorpolice serve --ssh :2222               # Listen on port 2222
  chorpolice serve --host-key ./my_host_key  # Use specific host key
  chorpolice serve --db ./scores.db          # Use specific database
  chorpolice serve --max-sessions 4          # At most four players at once

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 16, "Maximum concurrent players")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chorpolice-ssh",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	chor.SetLogger(logger)
	chor.SetConfigPath(flagConfig)
	chor.SetDifficultyPreset(flagDifficulty)
	chor.SetLevel(flagLevel)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		MaxSessions: flagMaxSessions,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Chor Police SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = server.ListenAndServe(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
