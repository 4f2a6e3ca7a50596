// Package registry maps variant IDs to game constructors. Variants register
// from init, so the CLI, the menus and the SSH server can offer every variant
// without importing the game package's internals.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/chorpolice/internal/core"
)

// Game is one playable variant as the platform layer sees it. Implementations
// are pure simulation: no terminal, no clock, no audio device. The platform
// feeds input and frame time and turns the returned events into sound and
// stored runs.
type Game interface {
	// ID is the stable variant name used on the command line and as the
	// score table key.
	ID() string

	// Title is shown in menus and score listings.
	Title() string

	// Reset loads configuration and returns to the start screen. The runtime
	// config carries the screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances by dt seconds of frame time with the frame's input.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports phase, score, high score and pause.
	State() core.GameState
}

// HighScoreSeeder is implemented by games that show a best score kept
// outside the game, such as the scores database.
type HighScoreSeeder interface {
	SetHighScore(score int)
}

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant. It panics on an empty ID, a nil factory or a
// duplicate ID, since all three are programming errors caught at init.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an ID and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// unregister removes a variant. Tests use it to undo Register.
func unregister(id string) {
	mu.Lock()
	delete(entries, id)
	mu.Unlock()
}

// List returns every registered variant ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Create returns a new instance of the variant.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
