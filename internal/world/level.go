package world

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chorpolice/internal/core"
)

//go:embed levels/*.yaml
var embeddedLevels embed.FS

var (
	// ErrUnknownLevel is returned when no level has the requested name.
	ErrUnknownLevel = errors.New("world: unknown level")
	// ErrInvalidLevel is wrapped by every level validation failure.
	ErrInvalidLevel = errors.New("world: invalid level")
)

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BoxDef is a rectangle in a level file.
type BoxDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Box converts the definition to a core.Box.
func (b BoxDef) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// TileRun lays identical ground tiles from From to To (exclusive) every Step units.
type TileRun struct {
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Step   float64 `yaml:"step"`
	Y      float64 `yaml:"y"`
	Height float64 `yaml:"height"`
}

// LevelDef is the on-disk description of a fixed level.
type LevelDef struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	KillY    float64   `yaml:"kill_y"` // Falling below this line ends the run
	Player   Point     `yaml:"player"`
	Ground   []TileRun `yaml:"ground"`
	Ledges   []BoxDef  `yaml:"ledges"`
	Goal     *BoxDef   `yaml:"goal"`
	Enemies  []Point   `yaml:"enemies"`
	Coins    []Point   `yaml:"coins"`
	PowerUps []Point   `yaml:"powerups"`
}

// Layout is a level ready to play: platforms plus spawn points.
type Layout struct {
	ID          string
	Name        string
	Platforms   *PlatformSet
	PlayerSpawn Point
	Goal        *core.Box
	Enemies     []Point
	Coins       []Point
	PowerUps    []Point
	KillY       float64
}

// Validate checks that the definition describes a playable level.
func (d LevelDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if len(d.Ground) == 0 && len(d.Ledges) == 0 {
		return fmt.Errorf("%w: %s has no platforms", ErrInvalidLevel, d.ID)
	}
	for i, run := range d.Ground {
		if run.Step <= 0 || run.To <= run.From || run.Height <= 0 {
			return fmt.Errorf("%w: %s ground run %d", ErrInvalidLevel, d.ID, i)
		}
	}
	for i, l := range d.Ledges {
		if l.W <= 0 || l.H <= 0 {
			return fmt.Errorf("%w: %s ledge %d has no area", ErrInvalidLevel, d.ID, i)
		}
	}
	if d.Goal != nil && (d.Goal.W <= 0 || d.Goal.H <= 0) {
		return fmt.Errorf("%w: %s goal has no area", ErrInvalidLevel, d.ID)
	}
	if d.KillY <= 0 {
		return fmt.Errorf("%w: %s kill_y must be positive", ErrInvalidLevel, d.ID)
	}
	return nil
}

// Build turns the definition into a fresh layout. Each call returns
// independent state, so a session reset never sees the previous run.
func (d LevelDef) Build() Layout {
	set := NewPlatformSet()
	for _, run := range d.Ground {
		for x := run.From; x < run.To; x += run.Step {
			w := min(run.Step, run.To-x)
			set.Add(core.NewBox(x, run.Y, w, run.Height))
		}
	}
	for _, l := range d.Ledges {
		set.Add(l.Box())
	}

	layout := Layout{
		ID:          d.ID,
		Name:        d.Name,
		Platforms:   set,
		PlayerSpawn: d.Player,
		Enemies:     append([]Point(nil), d.Enemies...),
		Coins:       append([]Point(nil), d.Coins...),
		PowerUps:    append([]Point(nil), d.PowerUps...),
		KillY:       d.KillY,
	}
	if d.Goal != nil {
		goal := d.Goal.Box()
		layout.Goal = &goal
	}
	return layout
}

// ParseLevel decodes and validates a YAML level.
func ParseLevel(data []byte) (LevelDef, error) {
	var def LevelDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return LevelDef{}, fmt.Errorf("world: parsing level: %w", err)
	}
	if err := def.Validate(); err != nil {
		return LevelDef{}, err
	}
	return def, nil
}

// LoadLevelFile reads a level from disk.
func LoadLevelFile(p string) (LevelDef, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return LevelDef{}, fmt.Errorf("world: reading level %s: %w", p, err)
	}
	def, err := ParseLevel(data)
	if err != nil {
		return LevelDef{}, fmt.Errorf("world: level %s: %w", p, err)
	}
	return def, nil
}

// LoadLevel returns a built-in level by name.
func LoadLevel(name string) (LevelDef, error) {
	data, err := embeddedLevels.ReadFile(path.Join("levels", name+".yaml"))
	if err != nil {
		return LevelDef{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return ParseLevel(data)
}

// Levels lists the names of the built-in levels, sorted.
func Levels() []string {
	entries, err := embeddedLevels.ReadDir("levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
