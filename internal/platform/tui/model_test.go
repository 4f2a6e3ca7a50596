package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chorpolice/internal/audio"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

// fakeGame records what the model feeds it and replays scripted steps.
type fakeGame struct {
	frames    []core.InputFrame
	dts       []float64
	script    []core.StepResult
	state     core.GameState
	highScore int
	resets    int
}

func (g *fakeGame) ID() string    { return "chor" }
func (g *fakeGame) Title() string { return "Fake Chor" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.dts = append(g.dts, dt)
	if len(g.script) == 0 {
		return core.StepResult{State: g.state}
	}
	next := g.script[0]
	g.script = g.script[1:]
	g.state = next.State
	return next
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE") }

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) SetHighScore(score int) { g.highScore = score }

// recorder is an audio.Player that remembers calls.
type recorder struct {
	cues   []audio.Cue
	music  []string
	stops  int
	closed bool
}

func (r *recorder) Play(c audio.Cue)      { r.cues = append(r.cues, c) }
func (r *recorder) PlayMusic(name string) { r.music = append(r.music, name) }
func (r *recorder) StopMusic()            { r.stops++ }
func (r *recorder) Close()                { r.closed = true }

var t0 = time.Unix(1_700_000_000, 0)

func newTestModel(t *testing.T, g *fakeGame, opts Options) Model {
	t.Helper()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, opts)
	m.now = func() time.Time { return t0 }
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(at))
	return m
}

func tempStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelSeedsHighScoreFromStore(t *testing.T) {
	store := tempStore(t)
	_, err := store.SaveRun(storage.Run{Variant: "chor", Score: 900, Outcome: storage.OutcomeEscaped})
	require.NoError(t, err)

	g := &fakeGame{}
	newTestModel(t, g, Options{Store: store})

	assert.Equal(t, 900, g.highScore)
}

func TestModelInitResetsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	assert.NotNil(t, m.Init())
	assert.Equal(t, 1, g.resets)
}

func TestModelKeyPressBecomesHeldIntent(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, runeKey('d'))
	m = tick(t, m, t0.Add(10*time.Millisecond))
	m = tick(t, m, t0.Add(30*time.Millisecond))
	tick(t, m, t0.Add(time.Second))

	require.Len(t, g.frames, 3)
	assert.True(t, g.frames[0].Has(core.ActionAnyKey))
	assert.True(t, g.frames[0].Has(core.ActionRight))

	assert.False(t, g.frames[1].Has(core.ActionAnyKey), "edges last one tick")
	assert.True(t, g.frames[1].Has(core.ActionRight), "the key is still down")

	assert.False(t, g.frames[2].Has(core.ActionRight), "the hold expires without repeats")
}

func TestModelJumpPressFiresOnce(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, runeKey('d'))
	m, _ = update(t, m, runeKey(' '))
	for i := range 36 {
		m = tick(t, m, t0.Add(time.Duration(i)*time.Second/60))
	}

	require.Len(t, g.frames, 36)
	jumps := 0
	for _, f := range g.frames {
		if f.Has(core.ActionJump) {
			jumps++
		}
	}
	assert.Equal(t, 1, jumps, "one press asks for one jump")
	assert.True(t, g.frames[0].Intent().Jump)
	assert.True(t, g.frames[20].Has(core.ActionRight), "direction is still held")
}

func TestModelEdgeActions(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m, t0)
	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m, t0.Add(20*time.Millisecond))
	tick(t, m, t0.Add(40*time.Millisecond))

	require.Len(t, g.frames, 3)
	assert.True(t, g.frames[0].Has(core.ActionPause))
	assert.False(t, g.frames[0].Has(core.ActionRestart))
	assert.True(t, g.frames[1].Has(core.ActionRestart))
	assert.False(t, g.frames[1].Has(core.ActionPause))
	assert.False(t, g.frames[2].Has(core.ActionRestart))
}

func TestModelFrameTimeFromTicks(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m = tick(t, m, t0)
	m = tick(t, m, t0.Add(50*time.Millisecond))
	m = tick(t, m, t0.Add(60*time.Millisecond))
	tick(t, m, t0.Add(60*time.Millisecond))

	require.Len(t, g.dts, 4)
	assert.InDelta(t, 1.0/60, g.dts[0], 1e-9, "first tick gets one nominal frame")
	assert.InDelta(t, 0.05, g.dts[1], 1e-9)
	assert.InDelta(t, 0.01, g.dts[2], 1e-9)
	assert.Zero(t, g.dts[3], "the game sees the stall and clamps it")
}

func TestModelSoundsAndSavesFinishedRun(t *testing.T) {
	store := tempStore(t)
	rec := &recorder{}
	g := &fakeGame{script: []core.StepResult{
		{State: core.GameState{Phase: core.PhasePlaying}, Events: []core.Event{core.EventStart}},
		{State: core.GameState{Phase: core.PhasePlaying, Score: 10}, Events: []core.Event{core.EventJump, core.EventCoin}},
		{State: core.GameState{Phase: core.PhaseGameOver, Score: 110}, Events: []core.Event{core.EventStomp, core.EventCaught}},
		{State: core.GameState{Phase: core.PhaseGameOver, Score: 110}},
	}}
	m := newTestModel(t, g, Options{Store: store, Audio: rec})

	m = tick(t, m, t0)
	m = tick(t, m, t0.Add(2*time.Second))
	m = tick(t, m, t0.Add(3*time.Second))
	m = tick(t, m, t0.Add(4*time.Second))

	assert.Equal(t, []string{audio.MusicTheme}, rec.music)
	assert.Equal(t, []audio.Cue{audio.CueJump, audio.CueCoin, audio.CueStomp, audio.CueCaught}, rec.cues)
	assert.Equal(t, 1, rec.stops)
	assert.Equal(t, core.PhaseGameOver, m.State().Phase)

	runs, err := store.AllScores("chor")
	require.NoError(t, err)
	require.Len(t, runs, 1, "a finished run is saved exactly once")
	assert.Equal(t, 110, runs[0].Score)
	assert.Equal(t, storage.OutcomeCaught, runs[0].Outcome)
	assert.Equal(t, 3*time.Second, runs[0].Duration)
}

func TestModelSkipsZeroScoreRuns(t *testing.T) {
	store := tempStore(t)
	g := &fakeGame{script: []core.StepResult{
		{State: core.GameState{Phase: core.PhasePlaying}, Events: []core.Event{core.EventStart}},
		{State: core.GameState{Phase: core.PhaseGameOver}, Events: []core.Event{core.EventFell}},
	}}
	m := newTestModel(t, g, Options{Store: store})

	m = tick(t, m, t0)
	tick(t, m, t0.Add(time.Second))

	runs, err := store.AllScores("chor")
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestModelQuit(t *testing.T) {
	rec := &recorder{}
	m := newTestModel(t, &fakeGame{}, Options{Audio: rec})

	m, cmd := update(t, m, runeKey('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.IsQuitting())
	assert.Equal(t, 1, rec.stops)
	assert.Empty(t, m.View())
}

func TestModelBackToMenuOnlyWhenEmbeddedAndIdle(t *testing.T) {
	playing := &fakeGame{state: core.GameState{Phase: core.PhasePlaying}}
	m := newTestModel(t, playing, Options{Embedded: true})
	m = tick(t, m, t0)
	m, _ = update(t, m, runeKey('b'))
	assert.False(t, m.BackToMenu(), "b does nothing mid-run")

	over := &fakeGame{state: core.GameState{Phase: core.PhaseGameOver}}
	m = newTestModel(t, over, Options{Embedded: true})
	m = tick(t, m, t0)
	m, _ = update(t, m, runeKey('b'))
	assert.True(t, m.BackToMenu())

	standalone := newTestModel(t, over, Options{})
	standalone = tick(t, standalone, t0)
	standalone, _ = update(t, standalone, runeKey('b'))
	assert.False(t, standalone.BackToMenu())
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, &fakeGame{}, Options{ScreenshotDir: dir})

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := os.ReadFile(filepath.Join(dir, "chor_"+t0.Format("20060102_150405")+".txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "FAKE")
}

func TestModelResizeKeepsRunning(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 0, g.resets, "resizing never restarts the run")
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 30, m.screen.Height())
}
