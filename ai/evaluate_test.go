package ai

import (
	"testing"

	"manchot/floetest"
)

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

func TestEvaluateMonotonicInFish(t *testing.T) {
	m := NewMinimax(MinimaxConfig{})
	base := floetest.Board(midgame)
	ahead := floetest.Board(`
3 3 1 2
1 2 1
1 0 3
2 1 1
. . .
0 . 1
. . .
2 0
`)
	behind := floetest.Board(`
3 3 1 2
1 2 1
1 0 3
2 1 1
. . .
0 . 1
. . .
0 2
`)
	v0 := evaluate(&DefaultWeights, m, base, 0)
	va := evaluate(&DefaultWeights, m, ahead, 0)
	vb := evaluate(&DefaultWeights, m, behind, 0)
	if !(va > v0 && v0 > vb) {
		t.Errorf("not monotonic in captured fish: ahead=%d base=%d behind=%d", va, v0, vb)
	}
}

func TestEvaluateAntisymmetric(t *testing.T) {
	m := NewMinimax(MinimaxConfig{})
	b := floetest.Board(midgame)
	v0 := evaluate(&DefaultWeights, m, b, 0)
	v1 := evaluate(&DefaultWeights, m, b, 1)
	if v0 != -v1 {
		t.Errorf("two-player eval not antisymmetric: %d vs %d", v0, v1)
	}
}

func TestEvaluateTerminalDominates(t *testing.T) {
	m := NewMinimax(MinimaxConfig{})
	won := floetest.Board(`
3 3 1 2
0 0 0
1 0 3
0 0 0
. . .
0 . 1
. . .
9 2
`)
	if v := evaluate(&DefaultWeights, m, won, 0); v <= WinThreshold {
		t.Errorf("decided win scored %d, want > WinThreshold", v)
	}
	if v := evaluate(&DefaultWeights, m, won, 1); v >= -WinThreshold {
		t.Errorf("decided loss scored %d, want < -WinThreshold", v)
	}
}

func TestEvaluateCountsStandingFishAtEnd(t *testing.T) {
	m := NewMinimax(MinimaxConfig{})
	// Captured fish tie 5-5, but player 1 stands on a 3 against a 1.
	b := floetest.Board(`
3 3 1 2
0 0 0
1 0 3
0 0 0
. . .
0 . 1
. . .
5 5
`)
	if v := evaluate(&DefaultWeights, m, b, 1); v <= WinThreshold {
		t.Errorf("standing fish ignored at the end: %d", v)
	}
}
