package ai

import (
	"golang.org/x/net/context"

	"manchot/floe"
)

// Player selects a move for the given seat. Implementations return a Pass
// move, never an error, when the seat has no legal move, and leave the board
// exactly as they found it.
type Player interface {
	GetMove(ctx context.Context, b *floe.Board, player int) floe.Move
}
