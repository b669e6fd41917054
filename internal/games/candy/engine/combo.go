package engine

// Combo is the outcome of swapping two special tokens together.
type Combo uint8

const (
	ComboNone           Combo = iota
	ComboDoubleRainbow        // Clears the board
	ComboRainbowSpecial       // Converts a color to the partner's kind and detonates it
	ComboDoubleBomb           // 5×5 blast
	ComboCrossClear           // One row and one column
	ComboStripedBomb          // Three rows and three columns
)

// String returns the string representation of a combo.
func (c Combo) String() string {
	switch c {
	case ComboNone:
		return "none"
	case ComboDoubleRainbow:
		return "double_rainbow"
	case ComboRainbowSpecial:
		return "rainbow_special"
	case ComboDoubleBomb:
		return "double_bomb"
	case ComboCrossClear:
		return "cross_clear"
	case ComboStripedBomb:
		return "striped_bomb"
	default:
		return "unknown"
	}
}

// ClassifyCombo returns the combo for two swapped specials. The result does
// not depend on argument order. Either side being SpecialNone yields ComboNone.
func ClassifyCombo(a, b Special) Combo {
	switch {
	case a == SpecialNone || b == SpecialNone:
		return ComboNone
	case a == SpecialRainbow && b == SpecialRainbow:
		return ComboDoubleRainbow
	case a == SpecialRainbow || b == SpecialRainbow:
		return ComboRainbowSpecial
	case a == SpecialBomb && b == SpecialBomb:
		return ComboDoubleBomb
	case a.IsStriped() && b.IsStriped():
		return ComboCrossClear
	default:
		return ComboStripedBomb
	}
}

// ApplyCombo resolves a swap of two specials. first and second are the
// post-swap positions of the first- and second-named tokens. Area effects
// center on the second-named token. Both participants are removed; in a
// rainbow combo the partner fires along with the tokens converted to its kind.
func (r *Resolution) ApplyCombo(first, second Pos) Combo {
	a, _ := r.grid.Get(first)
	b, _ := r.grid.Get(second)
	combo := ClassifyCombo(a.Special, b.Special)
	if combo == ComboNone {
		return combo
	}

	center := second
	switch combo {
	case ComboDoubleRainbow:
		r.consumePair(first, second)
		r.AffectAll()
	case ComboRainbowSpecial:
		rainbow, partner := first, b
		if partner.IsRainbow() {
			rainbow, partner = second, a
		}
		r.Consume(rainbow)
		r.convertAndDetonate(partner)
	case ComboDoubleBomb:
		r.consumePair(first, second)
		r.AffectArea(center, 2)
	case ComboCrossClear:
		r.consumePair(first, second)
		r.AffectRows(center.Row, center.Row)
		r.AffectCols(center.Col, center.Col)
	case ComboStripedBomb:
		r.consumePair(first, second)
		r.AffectRows(center.Row-1, center.Row+1)
		r.AffectCols(center.Col-1, center.Col+1)
	}
	r.blasts = append(r.blasts, Blast{At: center, Combo: combo})
	return combo
}

func (r *Resolution) consumePair(a, b Pos) {
	r.Consume(a)
	r.Consume(b)
}

// convertAndDetonate turns every token sharing the partner's color into the
// partner's kind and detonates each in place, the partner included.
func (r *Resolution) convertAndDetonate(partner Token) {
	for _, p := range r.grid.PositionsOfColor(partner.Color) {
		if r.Triggered(p) {
			continue
		}
		r.grid.Set(p, Token{Color: partner.Color, Special: partner.Special})
		r.Detonate(p)
	}
}
