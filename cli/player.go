package cli

import (
	"bufio"
	"fmt"
	"io"

	"manchot/floe"
)

// NewCLIPlayer reads moves typed by a human: "y,x" to place, "who>y,x" to
// slide, "-" to pass.
func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(b *floe.Board, player int) floe.Move {
	for {
		fmt.Fprintf(c.out, "%c> ", seatGlyphs[player])
		line, err := c.in.ReadString('\n')
		if err != nil {
			return floe.Move{Type: floe.Pass}
		}
		m, err := floe.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error:", err)
			continue
		}
		if b.PlacementPhase() != (m.Type == floe.Place) && m.Type != floe.Pass {
			fmt.Fprintln(c.out, "wrong move kind for this phase")
			continue
		}
		return m
	}
}
