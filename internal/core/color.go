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
)

// Bright returns the bright variant of a base color, used for highlights.
// Colors without a bright variant map to bright white.
func (c Color) Bright() Color {
	switch c {
	case ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan, ColorWhite:
		return c + (ColorBrightRed - ColorRed)
	case ColorBrightRed, ColorBrightGreen, ColorBrightYellow, ColorBrightBlue,
		ColorBrightMagenta, ColorBrightCyan, ColorBrightWhite:
		return c
	default:
		return ColorBrightWhite
	}
}
