// Package floetest builds boards and moves from strings for tests.
package floetest

import (
	"strings"

	"manchot/floe"
)

func Board(s string) *floe.Board {
	b, err := floe.ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

func Move(s string) floe.Move {
	m, err := floe.ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

func Moves(s string) []floe.Move {
	if s == "" {
		return nil
	}
	var ms []floe.Move
	for _, w := range strings.Fields(s) {
		ms = append(ms, Move(w))
	}
	return ms
}

func FormatMoves(ms []floe.Move) string {
	var bits []string
	for _, m := range ms {
		bits = append(bits, floe.FormatMove(m))
	}
	return strings.Join(bits, " ")
}
