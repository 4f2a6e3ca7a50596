package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/chorpolice/internal/audio"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/games/chor"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

// env holds what every interactive command shares.
type env struct {
	logger  *log.Logger
	logFile io.Closer
	store   *storage.Store
	audio   audio.Player
	cfg     core.RuntimeConfig
}

// newEnv sets up logging, storage, audio and the game package settings.
// Nothing here is fatal: each collaborator degrades to a fallback.
func newEnv() *env {
	e := &env{}
	e.logger, e.logFile = openLogger(flagLogPath, flagLogLevel)

	chor.SetLogger(e.logger)
	chor.SetConfigPath(flagConfig)
	chor.SetDifficultyPreset(flagDifficulty)
	chor.SetLevel(flagLevel)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		e.logger.Warn("scores disabled", "error", err)
		store = nil
	}
	e.store = store

	e.audio = audio.Open(flagMute, audio.DefaultOptions(), e.logger)
	e.cfg = runtimeConfig()
	return e
}

// Close releases everything newEnv opened.
func (e *env) Close() {
	e.audio.Close()
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openLogger writes to a file so log lines never tear the alt screen.
// An unusable path falls back to a discarding logger.
func openLogger(path, level string) (*log.Logger, io.Closer) {
	var w io.Writer = io.Discard
	var closer io.Closer

	if path != "" {
		if f, err := openLogFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		} else {
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "chorpolice",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, closer
}

func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
