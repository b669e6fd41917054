package engine

import "testing"

func TestClassifyCombo(t *testing.T) {
	tests := []struct {
		a, b Special
		want Combo
	}{
		{SpecialNone, SpecialBomb, ComboNone},
		{SpecialRainbow, SpecialNone, ComboNone},
		{SpecialRainbow, SpecialRainbow, ComboDoubleRainbow},
		{SpecialRainbow, SpecialBomb, ComboRainbowSpecial},
		{SpecialStripedRow, SpecialRainbow, ComboRainbowSpecial},
		{SpecialBomb, SpecialBomb, ComboDoubleBomb},
		{SpecialStripedRow, SpecialStripedColumn, ComboCrossClear},
		{SpecialStripedColumn, SpecialStripedColumn, ComboCrossClear},
		{SpecialStripedRow, SpecialBomb, ComboStripedBomb},
		{SpecialBomb, SpecialStripedColumn, ComboStripedBomb},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.b.String(), func(t *testing.T) {
			if got := ClassifyCombo(tt.a, tt.b); got != tt.want {
				t.Errorf("ClassifyCombo(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
			if got := ClassifyCombo(tt.b, tt.a); got != tt.want {
				t.Errorf("ClassifyCombo(%s, %s) = %s, want %s (order)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestApplyComboAreas(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		first, second Pos
		firstKind     Special
		secondKind    Special
		want          Combo
		covers        func(p Pos) bool
	}{
		{
			name:       "double bomb is 5x5 around the second token",
			size:       7,
			first:      P(3, 4),
			second:     P(3, 3),
			firstKind:  SpecialBomb,
			secondKind: SpecialBomb,
			want:       ComboDoubleBomb,
			covers:     func(p Pos) bool { return p.Chebyshev(P(3, 3)) <= 2 },
		},
		{
			name:       "cross clear",
			size:       6,
			first:      P(2, 3),
			second:     P(2, 2),
			firstKind:  SpecialStripedColumn,
			secondKind: SpecialStripedRow,
			want:       ComboCrossClear,
			covers:     func(p Pos) bool { return p.Row == 2 || p.Col == 2 },
		},
		{
			name:       "striped bomb clears three rows and columns",
			size:       7,
			first:      P(4, 3),
			second:     P(3, 3),
			firstKind:  SpecialStripedRow,
			secondKind: SpecialBomb,
			want:       ComboStripedBomb,
			covers: func(p Pos) bool {
				return (p.Row >= 2 && p.Row <= 4) || (p.Col >= 2 && p.Col <= 4)
			},
		},
		{
			name:       "striped bomb clipped at the corner",
			size:       7,
			first:      P(0, 1),
			second:     P(0, 0),
			firstKind:  SpecialBomb,
			secondKind: SpecialStripedColumn,
			want:       ComboStripedBomb,
			covers:     func(p Pos) bool { return p.Row <= 1 || p.Col <= 1 },
		},
		{
			name:       "double rainbow clears the board",
			size:       5,
			first:      P(1, 1),
			second:     P(1, 2),
			firstKind:  SpecialRainbow,
			secondKind: SpecialRainbow,
			want:       ComboDoubleRainbow,
			covers:     func(Pos) bool { return true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := pattern(tt.size, tt.size)
			for p, kind := range map[Pos]Special{tt.first: tt.firstKind, tt.second: tt.secondKind} {
				tok, _ := g.Get(p)
				if kind == SpecialRainbow {
					g.Set(p, Rainbow())
					continue
				}
				g.Set(p, Token{Color: tok.Color, Special: kind})
			}

			r := newTestResolution(g, nil)
			if got := r.ApplyCombo(tt.first, tt.second); got != tt.want {
				t.Fatalf("ApplyCombo() = %s, want %s", got, tt.want)
			}
			r.Settle()

			marked := posSet(r.MarkedCells())
			for _, p := range g.Positions() {
				if marked[p] != tt.covers(p) {
					t.Errorf("cell %s marked = %v, want %v", p, marked[p], tt.covers(p))
				}
			}
			if !marked[tt.first] || !marked[tt.second] {
				t.Error("both participants must be removed")
			}

			// Participants are consumed; only the combo itself is recorded.
			blasts := r.Blasts()
			if len(blasts) != 1 || blasts[0].Combo != tt.want || blasts[0].At != tt.second {
				t.Errorf("blasts = %+v, want one %s at %s", blasts, tt.want, tt.second)
			}
		})
	}
}

func TestApplyComboRainbowConvertsPartnerColor(t *testing.T) {
	g := pattern(5, 5)
	// Yellow cells in the pattern sit in rows 1 and 3.
	g.Set(P(1, 1), Rainbow())
	g.Set(P(1, 2), Token{Color: ColorYellow, Special: SpecialStripedRow})

	r := newTestResolution(g, nil)
	if got := r.ApplyCombo(P(1, 1), P(1, 2)); got != ComboRainbowSpecial {
		t.Fatalf("ApplyCombo() = %s, want %s", got, ComboRainbowSpecial)
	}
	r.Settle()

	marked := posSet(r.MarkedCells())
	for _, p := range g.Positions() {
		want := p.Row == 1 || p.Row == 3
		if marked[p] != want {
			t.Errorf("cell %s marked = %v, want %v", p, marked[p], want)
		}
	}

	converted := 0
	partnerFired := false
	for _, b := range r.Blasts() {
		if b.Special == SpecialStripedRow {
			converted++
		}
		if b.At == P(1, 2) && b.Special == SpecialStripedRow {
			partnerFired = true
		}
	}
	if converted != 5 {
		t.Errorf("converted detonations = %d, want 5 yellow tokens", converted)
	}
	if !partnerFired {
		t.Error("partner should fire with the converted tokens")
	}

	for _, p := range g.PositionsOfColor(ColorYellow) {
		tok, _ := g.Get(p)
		if tok.Special != SpecialStripedRow {
			t.Errorf("yellow token at %s not converted: %+v", p, tok)
		}
	}
}
