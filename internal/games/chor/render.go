package chor

import (
	"fmt"
	"math"

	"github.com/vovakirdan/chorpolice/internal/assets"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// Glyphs for level geometry.
const (
	GroundChar = '█'
	GrassChar  = '▀'
	LedgeChar  = '▬'
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// viewport maps world units onto screen cells below the HUD.
type viewport struct {
	cam    *Camera
	sx, sy float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		cam: g.sess.camera,
		sx:  float64(dst.Width()) / g.cfg.View.Width,
		sy:  float64(dst.Height()-hudRows) / g.cfg.View.Height,
	}
}

// cells converts a world box to the screen cells it covers. Anything with
// area covers at least one cell.
func (v viewport) cells(b core.Box) core.Rect {
	sx, sy := v.cam.ToScreen(b.X, b.Y)
	x := int(math.Floor(sx * v.sx))
	y := int(math.Floor(sy*v.sy)) + hudRows
	w := max(1, int(math.Round(b.W*v.sx)))
	h := max(1, int(math.Round(b.H*v.sy)))
	return core.NewRect(x, y, w, h)
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sess == nil {
		return
	}

	if g.phase == core.PhaseStart {
		g.drawTitle(dst)
		return
	}

	v := g.viewport(dst)
	g.drawPlatforms(dst, v)
	g.drawWorld(dst, v)
	g.drawHUD(dst)

	switch {
	case g.phase == core.PhaseGameOver:
		g.drawCenteredMessage(dst, core.ColorBrightRed,
			"CAUGHT BY POLICE!",
			fmt.Sprintf("Score: %d   High: %d", g.sess.score, g.highScore),
			"Press R to try escaping again")
	case g.phase == core.PhaseWin:
		g.drawCenteredMessage(dst, core.ColorBrightGreen,
			"YOU ESCAPED!",
			fmt.Sprintf("Final Score: %d   High: %d", g.sess.score, g.highScore),
			"Press R to play again")
	case g.paused:
		g.drawCenteredMessage(dst, core.ColorBrightYellow, "PAUSED", "", "Press P to resume")
	}
}

func (g *Game) drawTitle(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, g.title, core.ColorBrightYellow)
	dst.DrawTextCentered(mid, "Press any key to steal... I mean start!", core.ColorWhite)
	dst.DrawTextCentered(mid+2, "←/→ or A/D run   Space/W/↑ jump   P pause   Q quit", core.ColorGray)
	if g.highScore > 0 {
		dst.DrawTextCentered(mid+4, fmt.Sprintf("High score: %d", g.highScore), core.ColorCyan)
	}
}

func (g *Game) drawPlatforms(dst *core.Screen, v viewport) {
	for _, p := range g.sess.platforms.Rects() {
		r := v.cells(p)
		if r.Right() < 0 || r.X >= dst.Width() {
			continue
		}
		if world.IsGround(p) {
			dst.DrawRect(r, GroundChar, core.ColorForest)
			dst.DrawHLine(r.X, r.Y, r.W, GrassChar, core.ColorGreen)
		} else {
			dst.DrawRect(r, LedgeChar, core.ColorBrown)
		}
	}
}

func (g *Game) drawWorld(dst *core.Screen, v viewport) {
	s := g.sess
	lib := spriteLibrary()

	if s.goal != nil {
		r := v.cells(*s.goal)
		drawSprite(dst, lib.Load("flag", r.W, r.H), r.X, r.Y, core.ColorDefault)
	}

	for _, p := range s.pickups {
		r := v.cells(p.Box)
		drawSprite(dst, lib.Load(p.Kind.Sprite(), r.W, r.H), r.X, r.Y, core.ColorDefault)
	}

	for _, e := range s.enemies {
		r := v.cells(e.Bounds())
		sprite := lib.Load(e.Sprite, r.W, r.H)
		if e.Direction == FacingLeft {
			sprite = sprite.Mirror()
		}
		drawSprite(dst, sprite, r.X, r.Y, core.ColorDefault)
	}

	r := v.cells(s.player.Bounds())
	sprite := lib.Load(g.cfg.Player.Sprite, r.W, r.H)
	if s.player.Facing == FacingLeft {
		sprite = sprite.Mirror()
	}
	tint := core.ColorDefault
	if s.player.Invincible(s.clock) && int(s.clock*8)%2 == 0 {
		tint = core.ColorBrightMagenta
	}
	drawSprite(dst, sprite, r.X, r.Y, tint)
}

// drawSprite blits s with its top-left at (x, y). Spaces are transparent.
// A non-default tint overrides the sprite's own color.
func drawSprite(dst *core.Screen, s assets.Sprite, x, y int, tint core.Color) {
	c := s.Color
	if tint != core.ColorDefault {
		c = tint
	}
	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			if r := s.At(col, row); r != ' ' {
				dst.SetCell(x+col, y+row, r, c)
			}
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.sess
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d  High: %d", s.score, g.highScore), core.ColorBrightWhite)

	var right string
	if left := s.player.InvincibleLeft(s.clock); left > 0 {
		right = fmt.Sprintf("★ %.1fs  ", left)
	}
	if s.spawner != nil {
		right += fmt.Sprintf("Stage %d  Police %d", g.difficulty.Stage(s.distance()), len(s.enemies))
	}
	if right != "" {
		dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorBrightYellow)
	}
}

// drawCenteredMessage draws a framed message box in the middle of the
// screen. Empty lines are skipped.
func (g *Game) drawCenteredMessage(dst *core.Screen, titleColor core.Color, title, line, hint string) {
	boxW := max(len([]rune(title)), len([]rune(line)), len([]rune(hint))) + 6
	boxH := 7
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, titleColor)
	if line != "" {
		dst.DrawTextCentered(box.Y+3, line, core.ColorWhite)
	}
	dst.DrawTextCentered(box.Y+5, hint, core.ColorGray)
}
