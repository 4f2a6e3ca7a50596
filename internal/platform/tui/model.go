package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chorpolice/internal/audio"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

// DefaultScreenshotDir is where ctrl+s writes plain-text screen dumps.
const DefaultScreenshotDir = "~/.chorpolice/screenshots"

// Options are the collaborators of a game model. Every field is optional.
type Options struct {
	Store         *storage.Store
	Audio         audio.Player
	Logger        *log.Logger
	ScreenshotDir string

	// Embedded models run inside a SessionModel: b on a finished or paused
	// game returns to the menu instead of doing nothing.
	Embedded bool
}

func (o Options) withDefaults() Options {
	if o.Audio == nil {
		o.Audio = audio.Silent{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = DefaultScreenshotDir
	}
	return o
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	holds      *HoldTracker
	edges      core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	runStart   time.Time
	now        func() time.Time
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game. When a store is
// given the game's high score is seeded from it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()

	if opts.Store != nil {
		if seeder, ok := game.(registry.HighScoreSeeder); ok {
			high, err := opts.Store.HighScore(game.ID())
			if err != nil {
				opts.Logger.Warn("could not load high score", "game", game.ID(), "error", err)
			} else {
				seeder.SetHighScore(high)
			}
		}
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
		holds:  NewHoldTracker(DefaultHoldInitial, DefaultHoldRepeat),
		edges:  core.NewInputFrame(),
		now:    time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.opts.Embedded && (m.gameState.GameOver() || m.gameState.Paused) {
			m.opts.Audio.StopMusic()
			m.backToMenu = true
			return m, nil
		}
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.opts.Audio.StopMusic()
		m.quitting = true
		return m, tea.Quit
	}

	m.edges.Set(core.ActionAnyKey)
	switch {
	case IsHeld(action):
		m.holds.Press(action, m.now())
	case action != core.ActionNone:
		m.edges.Set(action)
	}

	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the
// previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameTime(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	frame := m.edges.Clone()
	m.holds.Apply(&frame, now)
	m.edges.Clear()

	result := m.game.Step(frame, dt)
	m.gameState = result.State
	m.handleEvents(result, now)

	return m, tickCmd(m.config.TickRate)
}

// handleEvents sounds the step's events, drives the music and records a
// finished run.
func (m *Model) handleEvents(result core.StepResult, now time.Time) {
	audio.PlayEvents(m.opts.Audio, result.Events)

	for _, e := range result.Events {
		if e == core.EventStart {
			m.runStart = now
			m.opts.Audio.PlayMusic(audio.MusicTheme)
		}
	}

	if outcome, ok := storage.OutcomeFromEvents(result.Events); ok {
		m.opts.Audio.StopMusic()
		m.holds.Reset()
		m.saveRun(outcome, result.State.Score, now.Sub(m.runStart))
	}
}

// saveRun stores a finished run. Failures are logged; the game goes on.
func (m *Model) saveRun(outcome storage.Outcome, score int, played time.Duration) {
	if m.opts.Store == nil || score <= 0 {
		return
	}
	if m.runStart.IsZero() || played < 0 {
		played = 0
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		Variant:  m.game.ID(),
		Score:    score,
		Outcome:  outcome,
		Duration: played,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		return
	}
	m.opts.Logger.Info("run saved", "game", m.game.ID(), "score", score, "outcome", outcome)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir, err := storage.ExpandHome(m.opts.ScreenshotDir)
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state the game reported.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
