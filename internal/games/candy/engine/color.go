package engine

import "strings"

// Color identifies a token color. It indexes the built-in palette.
type Color int8

// ColorNone marks a token without color identity (Rainbow).
const ColorNone Color = -1

const (
	ColorRed Color = iota
	ColorYellow
	ColorBlue
	ColorGreen
	ColorPurple
	ColorOrange
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorNone:
		return '*'
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	default:
		return '?'
	}
}

// Valid reports whether c is a real palette color.
func (c Color) Valid() bool {
	return c >= ColorRed && c < ColorCount
}

// ParseColor converts a string to a Color.
// Returns ColorNone and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "blue", "b":
		return ColorBlue, true
	case "green", "g":
		return ColorGreen, true
	case "purple", "p":
		return ColorPurple, true
	case "orange", "o":
		return ColorOrange, true
	default:
		return ColorNone, false
	}
}

// DefaultPalette returns the four-color palette the game ships with.
func DefaultPalette() []Color {
	return []Color{ColorRed, ColorYellow, ColorBlue, ColorGreen}
}
