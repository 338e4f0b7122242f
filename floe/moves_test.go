package floe

import "testing"

func TestSlidesStopAtObstacles(t *testing.T) {
	b := mustBoard(t, `
5 5 1 2
1 1 1 1 1
1 1 0 1 1
1 1 1 2 1
1 1 1 1 1
1 1 1 1 1
. . . . .
. . . . .
. . 0 . 1
. . . . .
. . . . .
0 0
`)
	moves := b.AllMoves(0, nil)
	for _, m := range moves {
		if m.Type != Slide {
			t.Fatalf("movement phase produced %s", FormatMove(m))
		}
		// Re-validate every generated move through Apply.
		u, err := b.Apply(0, m)
		if err != nil {
			t.Errorf("generated illegal move %s: %v", FormatMove(m), err)
			continue
		}
		b.UndoMove(0, m, u)
	}
	seen := make(map[Point]bool)
	for _, m := range moves {
		seen[m.Dest] = true
	}
	// Rightward from (2,2) stops before the opponent on (2,4).
	if seen[Point{2, 4}] {
		t.Error("slide onto an occupied cell generated")
	}
	if !seen[Point{2, 3}] {
		t.Error("slide short of the opponent missing")
	}
	// Upward stops at the removed (1,2).
	if seen[Point{1, 2}] || seen[Point{0, 2}] {
		t.Error("slide across a removed tile generated")
	}
}

func TestMoveOrderDeterministic(t *testing.T) {
	b := mustBoard(t, midgame)
	a := b.AllMoves(0, nil)
	c := b.AllMoves(0, nil)
	if len(a) != len(c) {
		t.Fatalf("lengths differ: %d != %d", len(a), len(c))
	}
	for i := range a {
		if !a[i].Equal(c[i]) {
			t.Fatalf("enumeration order unstable at %d: %s != %s", i, FormatMove(a[i]), FormatMove(c[i]))
		}
	}
}

func TestNoMovesIsEmptyNotError(t *testing.T) {
	b := mustBoard(t, `
3 3 1 2
0 0 0
1 0 3
0 0 0
. . .
0 . 1
. . .
0 0
`)
	if ms := b.AllMoves(0, nil); len(ms) != 0 {
		t.Errorf("stranded player got %d moves", len(ms))
	}
	if b.HasMove(0) || b.HasMove(1) {
		t.Error("HasMove disagrees with AllMoves")
	}
}

func TestPlacementsPreferOneFish(t *testing.T) {
	b := New(2, 2, 2, 1)
	b.SetFish(Point{0, 0}, 3)
	b.SetFish(Point{0, 1}, 1)
	b.SetFish(Point{1, 0}, 1)

	ms := b.AllMoves(0, nil)
	if len(ms) != 2 {
		t.Fatalf("got %d placements, want 2", len(ms))
	}
	for _, m := range ms {
		if m.Type != Place || b.FishAt(m.Dest) != 1 {
			t.Errorf("placement %s not on a one-fish tile", FormatMove(m))
		}
	}

	// With no one-fish tile left, fall back to any live tile.
	b.SetFish(Point{0, 1}, 2)
	b.SetFish(Point{1, 0}, 0)
	ms = b.AllMoves(0, ms[:0])
	if len(ms) != 2 {
		t.Fatalf("fallback placements = %d, want 2", len(ms))
	}
}

func TestHasMoveMatchesAllMoves(t *testing.T) {
	boards := []string{midgame, `
3 3 1 2
0 1 0
1 1 1
0 1 3
. . .
0 . .
. . 1
0 0
`}
	for _, s := range boards {
		b := mustBoard(t, s)
		for p := 0; p < b.Players(); p++ {
			if got, want := b.HasMove(p), len(b.AllMoves(p, nil)) > 0; got != want {
				t.Errorf("HasMove(%d) = %v, AllMoves disagrees", p, got)
			}
		}
	}
}
