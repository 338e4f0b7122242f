package ai

import (
	"math/rand"

	"golang.org/x/net/context"

	"manchot/floe"
)

type RandomAI struct {
	r *rand.Rand
}

func NewRandom(seed int64) *RandomAI {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomAI) GetMove(ctx context.Context, b *floe.Board, player int) floe.Move {
	moves := b.AllMoves(player, nil)
	if len(moves) == 0 {
		return floe.Move{Type: floe.Pass}
	}
	return moves[r.r.Int31n(int32(len(moves)))]
}
