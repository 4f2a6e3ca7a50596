package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorForest
)

// ParseColor maps a color name used in data files to a Color.
// Unknown names map to ColorDefault and ok=false.
func ParseColor(name string) (c Color, ok bool) {
	c, ok = colorNames[name]
	return c, ok
}

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"brown":          ColorBrown,
	"forest":         ColorForest,
}
