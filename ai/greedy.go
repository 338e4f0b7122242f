package ai

import (
	"golang.org/x/net/context"

	"manchot/floe"
)

// GreedyAI takes the legal move with the most fish on its destination and
// ignores everything else. It is the classic baseline opponent for this
// game; selfplay uses it to sanity-check search strength.
type GreedyAI struct{}

func NewGreedy() *GreedyAI { return &GreedyAI{} }

func (g *GreedyAI) GetMove(ctx context.Context, b *floe.Board, player int) floe.Move {
	moves := b.AllMoves(player, nil)
	if len(moves) == 0 {
		return floe.Move{Type: floe.Pass}
	}
	best := moves[0]
	bestFish := b.FishAt(best.Dest)
	for _, m := range moves[1:] {
		if f := b.FishAt(m.Dest); f > bestFish {
			best, bestFish = m, f
		}
	}
	return best
}
