package engine

// Special is the special kind carried by a token. At most one per token.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialStripedRow
	SpecialStripedColumn
	SpecialBomb
	SpecialRainbow
)

// String returns the string representation of a special kind.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialStripedRow:
		return "striped_row"
	case SpecialStripedColumn:
		return "striped_column"
	case SpecialBomb:
		return "bomb"
	case SpecialRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// IsStriped reports whether s clears a full line.
func (s Special) IsStriped() bool {
	return s == SpecialStripedRow || s == SpecialStripedColumn
}

// Token is a single piece on the board.
type Token struct {
	Color   Color
	Special Special
}

// Plain returns an ordinary token of the given color.
func Plain(c Color) Token {
	return Token{Color: c}
}

// Rainbow returns a rainbow token. Rainbows have no color.
func Rainbow() Token {
	return Token{Color: ColorNone, Special: SpecialRainbow}
}

// IsSpecial reports whether the token carries a special kind.
func (t Token) IsSpecial() bool {
	return t.Special != SpecialNone
}

// IsRainbow reports whether the token is a rainbow.
func (t Token) IsRainbow() bool {
	return t.Special == SpecialRainbow
}

// Matchable reports whether the token takes part in color runs.
func (t Token) Matchable() bool {
	return t.Special != SpecialRainbow && t.Color.Valid()
}

// Char returns a glyph for ASCII dumps: color letter, or a kind marker
// for specials.
func (t Token) Char() rune {
	switch t.Special {
	case SpecialStripedRow:
		return '='
	case SpecialStripedColumn:
		return '|'
	case SpecialBomb:
		return '@'
	case SpecialRainbow:
		return '*'
	default:
		return t.Color.Char()
	}
}
