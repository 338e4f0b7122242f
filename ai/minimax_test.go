package ai

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/net/context"

	"manchot/floe"
	"manchot/floetest"
)

func TestReturnsLegalMove(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		m := NewMinimax(MinimaxConfig{Depth: depth})
		b := floetest.Board(midgame)
		before := b.Clone()
		got := m.GetMove(context.Background(), b, 0)
		if !b.Equal(before) {
			t.Fatalf("depth %d: search did not restore the board", depth)
		}
		legal := false
		for _, lm := range b.AllMoves(0, nil) {
			if lm.Equal(got) {
				legal = true
			}
		}
		if !legal {
			t.Errorf("depth %d: returned %s, not a legal move", depth, floe.FormatMove(got))
		}
	}
}

func TestPassExactlyWhenStuck(t *testing.T) {
	m := NewMinimax(MinimaxConfig{Depth: 3})
	b := floetest.Board(`
3 3 1 2
0 0 0
1 0 3
0 0 0
. . .
0 . 1
. . .
0 0
`)
	if got := m.GetMove(context.Background(), b, 0); got.Type != floe.Pass {
		t.Errorf("stuck seat got %s, want pass", floe.FormatMove(got))
	}
	live := floetest.Board(midgame)
	if got := m.GetMove(context.Background(), live, 0); got.Type == floe.Pass {
		t.Error("mobile seat passed")
	}
}

// Player 0 can trap player 1 by stepping down onto the two-fish tile; any
// other slide lets player 1 collect the three-fish corner and win. Every
// depth from one up must find the trap.
func TestFindsWinningTrap(t *testing.T) {
	const trap = `
3 3 1 2
1 1 1
0 2 0
0 3 0
. 0 .
. . .
. 1 .
0 0
`
	want := floetest.Move("0>1,1")
	for depth := 1; depth <= 5; depth++ {
		m := NewMinimax(MinimaxConfig{Depth: depth})
		b := floetest.Board(trap)
		got := m.GetMove(context.Background(), b, 0)
		if !got.Equal(want) {
			t.Errorf("depth %d: played %s, want %s", depth, floe.FormatMove(got), floe.FormatMove(want))
		}
	}
}

func TestDeterministicTieBreak(t *testing.T) {
	b := floetest.Board(midgame)
	first := NewMinimax(MinimaxConfig{Depth: 4}).GetMove(context.Background(), b, 0)
	for i := 0; i < 3; i++ {
		again := NewMinimax(MinimaxConfig{Depth: 4}).GetMove(context.Background(), b, 0)
		if !first.Equal(again) {
			t.Fatalf("run %d: %s != %s", i, floe.FormatMove(again), floe.FormatMove(first))
		}
	}
}

func TestExpiredDeadlineStillMoves(t *testing.T) {
	m := NewMinimax(MinimaxConfig{})
	b := floetest.Board(midgame)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	got := m.GetMove(ctx, b, 0)
	if got.Type == floe.Pass {
		t.Fatal("expired budget produced a pass despite legal moves")
	}
	if _, err := b.Clone().Apply(0, got); err != nil {
		t.Fatalf("expired budget produced illegal move %s: %v", floe.FormatMove(got), err)
	}
}

// A budget that expires partway through an iteration must discard that
// iteration entirely: the move, value and stats all come from the last
// deepening pass that ran to completion.
func TestCancelMidIteration(t *testing.T) {
	var baseline uint64
	counting := func(m *MinimaxAI, b *floe.Board, root int) int64 {
		baseline++
		return DefaultEvaluate(m, b, root)
	}
	ref := NewMinimax(MinimaxConfig{Depth: 2, Evaluate: counting})
	refPV, refVal, refSt := ref.Analyze(context.Background(), floetest.Board(midgame), 0)
	if refSt.Depth != 2 || len(refPV) == 0 {
		t.Fatalf("reference search: depth=%d pv=%s", refSt.Depth, formatpv(refPV))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var evals uint64
	interrupting := func(m *MinimaxAI, b *floe.Board, root int) int64 {
		if evals++; evals == baseline+1 {
			// First leaf of the depth-3 iteration: expire the budget
			// and wait until the search has noticed.
			cancel()
			for atomic.LoadInt32(m.cancel) == 0 {
				runtime.Gosched()
			}
		}
		return DefaultEvaluate(m, b, root)
	}
	m := NewMinimax(MinimaxConfig{Depth: 3, Evaluate: interrupting})
	pv, val, st := m.Analyze(ctx, floetest.Board(midgame), 0)
	if st.Depth != 2 {
		t.Errorf("stats depth = %d, want 2, the last completed iteration", st.Depth)
	}
	if len(pv) == 0 || !pv[0].Equal(refPV[0]) || val != refVal {
		t.Errorf("interrupted search returned %s val=%d, want the depth-2 result %s val=%d",
			formatpv(pv), val, formatpv(refPV), refVal)
	}
}

func TestAnalyzeReportsCompletedDepth(t *testing.T) {
	m := NewMinimax(MinimaxConfig{Depth: 3})
	b := floetest.Board(midgame)
	pv, _, st := m.Analyze(context.Background(), b, 0)
	if st.Depth != 3 {
		t.Errorf("stats depth = %d, want 3", st.Depth)
	}
	if len(pv) == 0 || len(pv) > 3 {
		t.Errorf("pv length %d out of range", len(pv))
	}
}

func TestKeySeparatesCaptureSplits(t *testing.T) {
	even := floetest.Board(midgame)
	split := floetest.Board(`
3 3 1 2
1 2 1
1 0 3
2 1 1
. . .
0 . 1
. . .
2 0
`)
	if even.Hash() != split.Hash() {
		t.Fatal("fixtures differ in layout, not just captured totals")
	}
	m := NewMinimax(MinimaxConfig{})
	m.b = even
	k := m.key(0)
	m.b = split
	if got := m.key(0); got == k {
		t.Error("same table key for boards with different capture splits")
	}
}

func TestSearchDuringPlacement(t *testing.T) {
	b := floe.Generate(6, 6, 2, 2, 11)
	m := NewMinimax(MinimaxConfig{Depth: 3})
	got := m.GetMove(context.Background(), b, 0)
	if got.Type != floe.Place {
		t.Fatalf("placement phase returned %s", floe.FormatMove(got))
	}
	if _, err := b.Apply(0, got); err != nil {
		t.Fatalf("illegal placement %s: %v", floe.FormatMove(got), err)
	}
}

func BenchmarkMinimax(b *testing.B) {
	board := floe.Generate(8, 8, 2, 4, 1)
	for i := 0; i < 4; i++ {
		ms := board.AllMoves(i%2, nil)
		if _, err := board.Apply(i%2, ms[0]); err != nil {
			b.Fatal(err)
		}
	}
	m := NewMinimax(MinimaxConfig{Depth: 5})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.GetMove(context.Background(), board, 0)
	}
}
