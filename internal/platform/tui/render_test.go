package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chorpolice/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "chor", core.ColorBrightYellow)
	s.DrawTextColor(0, 1, "▀▀▀", core.ColorForest)

	lines := strings.Split(RenderScreen(s), "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "chor")
	assert.Contains(t, lines[1], "▀▀▀")
}

func TestEveryColorHasAStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorForest; c++ {
		_, ok := colorStyles[c]
		assert.True(t, ok, "color %d has no style", c)
	}
}

func TestStyleForUnknownColorFallsBack(t *testing.T) {
	assert.Equal(t, "x", styleFor(core.Color(250)).Render("x"))
}

func TestFrameTime(t *testing.T) {
	assert.InDelta(t, 1.0/30, frameTime(time.Time{}, t0, 30), 1e-9, "zero last tick")
	assert.InDelta(t, 1.0/60, frameTime(time.Time{}, t0, 0), 1e-9, "missing tick rate")
	assert.Zero(t, frameTime(t0, t0, 60), "a stalled clock is passed through")
	assert.Negative(t, frameTime(t0, t0.Add(-time.Millisecond), 60), "so is a clock that went back")
	assert.InDelta(t, 0.25, frameTime(t0, t0.Add(250*time.Millisecond), 60), 1e-9, "long stalls are left to the game")
}
