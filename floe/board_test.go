package floe

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

const midgame = `
3 3 1 2
1 2 1
1 0 3
2 1 1
. . .
0 . 1
. . .
0 0
`

func TestApplyUndoSlide(t *testing.T) {
	b := mustBoard(t, midgame)
	before := b.Clone()

	m := Move{Type: Slide, Who: 0, Dest: Point{0, 0}}
	u, err := b.Apply(0, m)
	if err != nil {
		t.Fatal("apply:", err)
	}
	if b.Score(0) != 1 {
		t.Errorf("score(0) = %d, want 1", b.Score(0))
	}
	if b.FishAt(Point{1, 0}) != 0 {
		t.Error("vacated tile keeps its fish")
	}
	if b.Occupant(Point{0, 0}) != 0 || b.Occupant(Point{1, 0}) != -1 {
		t.Error("occupancy not moved")
	}
	if b.Penguin(0) != (Point{0, 0}) {
		t.Error("penguin position not updated")
	}
	if b.Equal(before) {
		t.Error("apply left the board unchanged")
	}

	b.UndoMove(0, m, u)
	if !b.Equal(before) {
		t.Errorf("undo did not restore the board:\n%s", FormatBoard(b))
	}
	if b.Hash() != before.Hash() {
		t.Error("undo did not restore the hash")
	}
}

func TestApplyUndoPlacement(t *testing.T) {
	b := New(3, 3, 2, 2)
	for y := int8(0); y < 3; y++ {
		for x := int8(0); x < 3; x++ {
			b.SetFish(Point{y, x}, 1)
		}
	}
	before := b.Clone()

	m := Move{Type: Place, Dest: Point{2, 2}}
	u, err := b.Apply(1, m)
	if err != nil {
		t.Fatal("apply:", err)
	}
	if b.NumPenguins() != 1 || b.Owner(0) != 1 {
		t.Error("penguin not recorded")
	}
	if b.FishAt(Point{2, 2}) != 1 {
		t.Error("placement must not capture fish")
	}
	b.UndoMove(1, m, u)
	if !b.Equal(before) {
		t.Error("undo did not restore the board")
	}
}

func TestFishConservation(t *testing.T) {
	b := mustBoard(t, midgame)
	total := b.RemainingFish() + b.Score(0) + b.Score(1)

	moves := b.AllMoves(0, nil)
	for _, m := range moves {
		u, err := b.Apply(0, m)
		if err != nil {
			t.Fatal("apply:", err)
		}
		got := b.RemainingFish() + b.Score(0) + b.Score(1)
		if got != total {
			t.Errorf("fish not conserved after %s: %d != %d", FormatMove(m), got, total)
		}
		b.UndoMove(0, m, u)
	}
}

func TestApplyRejectsIllegal(t *testing.T) {
	b := mustBoard(t, midgame)
	before := b.Clone()
	cases := []struct {
		player int
		m      Move
	}{
		// not a hex line: (1,0) -> (0,1) is the anti-diagonal
		{0, Move{Type: Slide, Who: 0, Dest: Point{0, 1}}},
		// crosses the removed center
		{1, Move{Type: Slide, Who: 1, Dest: Point{1, 0}}},
		// path blocked before the destination
		{0, Move{Type: Slide, Who: 0, Dest: Point{1, 2}}},
		// penguin owned by the other player
		{0, Move{Type: Slide, Who: 1, Dest: Point{0, 2}}},
		// penguin indices out of range (ParseMove accepts "-1>0,0")
		{0, Move{Type: Slide, Who: -1, Dest: Point{0, 0}}},
		{0, Move{Type: Slide, Who: 2, Dest: Point{0, 0}}},
		// placement after the placement phase
		{0, Move{Type: Place, Dest: Point{0, 0}}},
		// pass is not applicable
		{0, Move{Type: Pass}},
	}
	for _, tc := range cases {
		if _, err := b.Apply(tc.player, tc.m); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Apply(%d, %s) = %v, want ErrIllegalMove", tc.player, FormatMove(tc.m), err)
		}
		if !b.Equal(before) {
			t.Fatalf("failed Apply(%d, %s) mutated the board", tc.player, FormatMove(tc.m))
		}
	}
}

func TestTerminal(t *testing.T) {
	b := mustBoard(t, midgame)
	if b.Terminal() {
		t.Error("midgame board reported terminal")
	}
	// Strand both penguins: remove everything except the cells they stand on.
	stuck := mustBoard(t, `
3 3 1 2
0 0 0
1 0 3
0 0 0
. . .
0 . 1
. . .
0 0
`)
	if !stuck.Terminal() {
		t.Error("fully stuck board not reported terminal")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	b := mustBoard(t, midgame)
	b2, err := ParseBoard(FormatBoard(b))
	if err != nil {
		t.Fatal("reparse:", err)
	}
	if !b.Equal(b2) {
		t.Error("format/parse did not round-trip")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(8, 6, 2, 4, 7)
	b := Generate(8, 6, 2, 4, 7)
	if !a.Equal(b) {
		t.Error("same seed produced different boards")
	}
	if a.RemainingFish() == 0 {
		t.Error("generated board has no fish")
	}
}
