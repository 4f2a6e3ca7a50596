// Package assets loads the glyph sprites the game draws with.
// A missing or broken sprite is replaced by a solid placeholder and logged;
// asset problems never reach gameplay.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chorpolice/internal/core"
)

//go:embed sprites.yaml
var defaultSpritesYAML []byte

// ErrUnknownSprite is returned by Lookup for names not in the library.
var ErrUnknownSprite = errors.New("assets: unknown sprite")

// PlaceholderRune fills placeholder sprites.
const PlaceholderRune = '▒'

// Sprite is a rectangular block of colored glyphs.
type Sprite struct {
	Name        string
	Rows        [][]rune
	Color       core.Color
	Placeholder bool
}

// Width returns the sprite width in cells.
func (s Sprite) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// Height returns the sprite height in cells.
func (s Sprite) Height() int {
	return len(s.Rows)
}

// At returns the glyph at (x, y), or space outside the sprite.
func (s Sprite) At(x, y int) rune {
	if y < 0 || y >= len(s.Rows) || x < 0 || x >= len(s.Rows[y]) {
		return ' '
	}
	return s.Rows[y][x]
}

// Scale resamples the sprite to w×h cells with nearest-neighbour sampling.
func (s Sprite) Scale(w, h int) Sprite {
	if w <= 0 || h <= 0 || s.Width() == 0 {
		return Sprite{Name: s.Name, Color: s.Color, Placeholder: s.Placeholder}
	}
	if w == s.Width() && h == s.Height() {
		return s
	}

	rows := make([][]rune, h)
	for y := range rows {
		srcY := y * s.Height() / h
		rows[y] = make([]rune, w)
		for x := range rows[y] {
			rows[y][x] = s.Rows[srcY][x*s.Width()/w]
		}
	}
	return Sprite{Name: s.Name, Rows: rows, Color: s.Color, Placeholder: s.Placeholder}
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'╱': '╲', '╲': '╱',
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'▶': '◀', '◀': '▶',
	'◓': '◓',
}

// Mirror flips the sprite horizontally, swapping directional glyphs.
func (s Sprite) Mirror() Sprite {
	rows := make([][]rune, len(s.Rows))
	for y, row := range s.Rows {
		out := make([]rune, len(row))
		for x, r := range row {
			if m, ok := mirrored[r]; ok {
				r = m
			}
			out[len(row)-1-x] = r
		}
		rows[y] = out
	}
	return Sprite{Name: s.Name, Rows: rows, Color: s.Color, Placeholder: s.Placeholder}
}

// Placeholder returns a solid w×h sprite standing in for a missing one.
func Placeholder(name string, w, h int) Sprite {
	w, h = max(w, 1), max(h, 1)
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = make([]rune, w)
		for x := range rows[y] {
			rows[y][x] = PlaceholderRune
		}
	}
	return Sprite{Name: name, Rows: rows, Color: core.ColorMagenta, Placeholder: true}
}

type spriteDef struct {
	Color string   `yaml:"color"`
	Rows  []string `yaml:"rows"`
}

type spriteFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
}

// Library is a named sprite collection.
type Library struct {
	sprites map[string]Sprite
	logger  *log.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// NewLibrary returns the built-in sprites. A nil logger discards warnings.
func NewLibrary(logger *log.Logger) *Library {
	lib, err := ParseLibrary(defaultSpritesYAML, logger)
	if err != nil {
		// The embedded file is part of the binary; fall back to an empty
		// library so every lookup yields a placeholder.
		lib = newLibrary(logger)
		lib.logger.Error("built-in sprites unreadable", "error", err)
	}
	return lib
}

func newLibrary(logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Library{
		sprites: make(map[string]Sprite),
		logger:  logger,
		warned:  make(map[string]bool),
	}
}

// ParseLibrary decodes a YAML sprite file. Malformed sprites are skipped with
// a warning; only an undecodable file is an error.
func ParseLibrary(data []byte, logger *log.Logger) (*Library, error) {
	var file spriteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("assets: parsing sprites: %w", err)
	}

	lib := newLibrary(logger)
	for name, def := range file.Sprites {
		sprite, err := buildSprite(name, def)
		if err != nil {
			lib.logger.Warn("skipping sprite", "name", name, "error", err)
			continue
		}
		lib.sprites[name] = sprite
	}
	return lib, nil
}

func buildSprite(name string, def spriteDef) (Sprite, error) {
	if len(def.Rows) == 0 {
		return Sprite{}, errors.New("no rows")
	}
	rows := make([][]rune, len(def.Rows))
	for i, r := range def.Rows {
		rows[i] = []rune(r)
		if len(rows[i]) != len(rows[0]) {
			return Sprite{}, fmt.Errorf("row %d has width %d, expected %d", i, len(rows[i]), len(rows[0]))
		}
	}
	if len(rows[0]) == 0 {
		return Sprite{}, errors.New("empty rows")
	}

	color := core.ColorDefault
	if def.Color != "" {
		c, ok := core.ParseColor(def.Color)
		if !ok {
			return Sprite{}, fmt.Errorf("unknown color %q", def.Color)
		}
		color = c
	}
	return Sprite{Name: name, Rows: rows, Color: color}, nil
}

// Lookup returns the native-size sprite.
func (l *Library) Lookup(name string) (Sprite, error) {
	s, ok := l.sprites[name]
	if !ok {
		return Sprite{}, fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}
	return s, nil
}

// Load returns the sprite scaled to w×h cells (native size when either is
// zero). Unknown names yield a placeholder; the first miss per name is logged.
func (l *Library) Load(name string, w, h int) Sprite {
	s, err := l.Lookup(name)
	if err != nil {
		l.warnOnce(name, err)
		if w <= 0 || h <= 0 {
			w, h = 1, 1
		}
		return Placeholder(name, w, h)
	}
	if w <= 0 || h <= 0 {
		return s
	}
	return s.Scale(w, h)
}

// Len returns how many sprites the library holds.
func (l *Library) Len() int {
	return len(l.sprites)
}

func (l *Library) warnOnce(name string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.warned[name] {
		return
	}
	l.warned[name] = true
	l.logger.Warn("sprite missing, using placeholder", "name", name, "error", err)
}
