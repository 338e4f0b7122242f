package ai

import (
	"fmt"
	"io"
	"text/tabwriter"

	"manchot/floe"
)

type Weights struct {
	Fish      int
	Mobility  int
	Territory int
	Isolated  int
}

var DefaultWeights = Weights{
	Fish:      1000,
	Mobility:  20,
	Territory: 8,
	Isolated:  -150,
}

func MakeEvaluator(w *Weights) EvaluationFunc {
	return func(m *MinimaxAI, b *floe.Board, root int) int64 {
		return evaluate(w, m, b, root)
	}
}

var DefaultEvaluate = MakeEvaluator(&DefaultWeights)

// evaluate scores b from root's perspective. Fish already captured dominate;
// mobility, territory and stranded penguins refine the ordering between
// positions with equal fish. The function never looks ahead; depth is the
// search's business.
func evaluate(w *Weights, m *MinimaxAI, b *floe.Board, root int) int64 {
	if b.Terminal() {
		diff := int64(finalScore(b, root) - bestOtherFinal(b, root))
		switch {
		case diff > 0:
			return WinThreshold + diff
		case diff < 0:
			return -WinThreshold + diff
		}
		return 0
	}

	fish := int64(b.Score(root) - bestOtherScore(b, root))

	m.evalMoves = b.AllMoves(root, m.evalMoves[:0])
	myMoves := len(m.evalMoves)
	otherMoves := 0
	for p := 0; p < b.Players(); p++ {
		if p == root {
			continue
		}
		m.evalMoves = b.AllMoves(p, m.evalMoves[:0])
		if n := len(m.evalMoves); n > otherMoves {
			otherMoves = n
		}
	}

	mine, theirs := m.territory(b, root)

	stuck := 0
	for who := 0; who < b.NumPenguins(); who++ {
		if !m.canStep(b, b.Penguin(who)) {
			if b.Owner(who) == root {
				stuck++
			} else {
				stuck--
			}
		}
	}

	return int64(w.Fish)*fish +
		int64(w.Mobility)*int64(myMoves-otherMoves) +
		int64(w.Territory)*int64(mine-theirs) +
		int64(w.Isolated)*int64(stuck)
}

// finalScore is a player's captured fish plus the tiles its penguins stand
// on, which it collects when the game ends.
func finalScore(b *floe.Board, player int) int {
	total := b.Score(player)
	for who := 0; who < b.NumPenguins(); who++ {
		if b.Owner(who) == player {
			total += b.FishAt(b.Penguin(who))
		}
	}
	return total
}

func bestOtherFinal(b *floe.Board, root int) int {
	best := 0
	for p := 0; p < b.Players(); p++ {
		if p != root {
			if s := finalScore(b, p); s > best {
				best = s
			}
		}
	}
	return best
}

func bestOtherScore(b *floe.Board, root int) int {
	best := 0
	for p := 0; p < b.Players(); p++ {
		if p != root {
			if s := b.Score(p); s > best {
				best = s
			}
		}
	}
	return best
}

func (m *MinimaxAI) canStep(b *floe.Board, from floe.Point) bool {
	for _, d := range floe.Directions {
		p := floe.Point{Y: from.Y + d.DY, X: from.X + d.DX}
		if b.InBounds(p) && b.FishAt(p) > 0 && b.Occupant(p) == -1 {
			return true
		}
	}
	return false
}

// territory counts fish-bearing cells each side reaches strictly faster than
// everyone else, measured in slides. Contested cells count for no one.
func (m *MinimaxAI) territory(b *floe.Board, root int) (mine, theirs int) {
	cells := b.Width() * b.Height()
	if len(m.dist) < b.Players() {
		m.dist = make([][]int16, b.Players())
	}
	for p := 0; p < b.Players(); p++ {
		if len(m.dist[p]) < cells {
			m.dist[p] = make([]int16, cells)
		}
		m.bfs(b, p, m.dist[p])
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			pt := floe.Point{Y: int8(y), X: int8(x)}
			i := y*b.Width() + x
			if b.FishAt(pt) == 0 || b.Occupant(pt) != -1 {
				continue
			}
			d := m.dist[root][i]
			winner, best := root, d
			unique := d >= 0
			for p := 0; p < b.Players(); p++ {
				if p == root {
					continue
				}
				od := m.dist[p][i]
				if od < 0 {
					continue
				}
				if best < 0 || od < best {
					winner, best, unique = p, od, true
				} else if od == best {
					unique = false
				}
			}
			if best < 0 || !unique {
				continue
			}
			if winner == root {
				mine++
			} else {
				theirs++
			}
		}
	}
	return mine, theirs
}

func (m *MinimaxAI) bfs(b *floe.Board, player int, dist []int16) {
	for i := range dist[:b.Width()*b.Height()] {
		dist[i] = -1
	}
	m.queue = m.queue[:0]
	for who := 0; who < b.NumPenguins(); who++ {
		if b.Owner(who) == player {
			pt := b.Penguin(who)
			dist[int(pt.Y)*b.Width()+int(pt.X)] = 0
			m.queue = append(m.queue, pt)
		}
	}
	for qi := 0; qi < len(m.queue); qi++ {
		from := m.queue[qi]
		d := dist[int(from.Y)*b.Width()+int(from.X)]
		for _, dir := range floe.Directions {
			p := from
			for {
				p.Y += dir.DY
				p.X += dir.DX
				if !b.InBounds(p) || b.FishAt(p) == 0 || b.Occupant(p) != -1 {
					break
				}
				i := int(p.Y)*b.Width() + int(p.X)
				if dist[i] < 0 {
					dist[i] = d + 1
					m.queue = append(m.queue, p)
				}
			}
		}
	}
}

// ExplainScore prints the evaluation terms for a position.
func ExplainScore(m *MinimaxAI, out io.Writer, b *floe.Board, root int) {
	tw := tabwriter.NewWriter(out, 4, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "\tme\tbest other\n")
	fmt.Fprintf(tw, "captured\t%d\t%d\n", b.Score(root), bestOtherScore(b, root))
	fmt.Fprintf(tw, "final\t%d\t%d\n", finalScore(b, root), bestOtherFinal(b, root))
	my := len(b.AllMoves(root, nil))
	other := 0
	for p := 0; p < b.Players(); p++ {
		if p != root {
			if n := len(b.AllMoves(p, nil)); n > other {
				other = n
			}
		}
	}
	fmt.Fprintf(tw, "mobility\t%d\t%d\n", my, other)
	mine, theirs := m.territory(b, root)
	fmt.Fprintf(tw, "territory\t%d\t%d\n", mine, theirs)
	fmt.Fprintf(tw, "total\t%d\t\n", m.evaluate(m, b, root))
	tw.Flush()
}
