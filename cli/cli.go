package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"manchot/floe"
)

// Player supplies a move for one seat; the CLI enforces legality and keeps
// asking a human player until the move applies.
type Player interface {
	GetMove(b *floe.Board, player int) floe.Move
}

type CLI struct {
	Board   *floe.Board
	Out     io.Writer
	Players []Player

	moves []floe.Move
}

var seatGlyphs = [floe.MaxPlayers]byte{'a', 'b', 'c', 'd'}

// Play runs a full game on c.Board and returns it in its final state.
func (c *CLI) Play() *floe.Board {
	b := c.Board
	for b.PlacementPhase() {
		seat := b.NumPenguins() % b.Players()
		c.render()
		m := c.Players[seat].GetMove(b, seat)
		if m.Type == floe.Pass {
			break
		}
		if _, err := b.Apply(seat, m); err != nil {
			fmt.Fprintln(c.Out, "illegal move:", err)
			continue
		}
		fmt.Fprintf(c.Out, "%c places %s\n", seatGlyphs[seat], floe.FormatMove(m))
		c.moves = append(c.moves, m)
	}

	seat := 0
	for !b.Terminal() {
		if !b.HasMove(seat) {
			fmt.Fprintf(c.Out, "%c has no move\n", seatGlyphs[seat])
			seat = (seat + 1) % b.Players()
			continue
		}
		c.render()
		m := c.Players[seat].GetMove(b, seat)
		if m.Type == floe.Pass {
			seat = (seat + 1) % b.Players()
			continue
		}
		if _, err := b.Apply(seat, m); err != nil {
			fmt.Fprintln(c.Out, "illegal move:", err)
			continue
		}
		fmt.Fprintf(c.Out, "%c plays %s\n", seatGlyphs[seat], floe.FormatMove(m))
		c.moves = append(c.moves, m)
		seat = (seat + 1) % b.Players()
	}

	c.render()
	fmt.Fprintf(c.Out, "Game over!\n")
	best, winner := -1, -1
	for p := 0; p < b.Players(); p++ {
		final := FinalScore(b, p)
		fmt.Fprintf(c.Out, "%c: %d fish\n", seatGlyphs[p], final)
		switch {
		case final > best:
			best, winner = final, p
		case final == best:
			winner = -1
		}
	}
	if winner < 0 {
		fmt.Fprintln(c.Out, "Draw.")
	} else {
		fmt.Fprintf(c.Out, "%c wins!\n", seatGlyphs[winner])
	}
	return b
}

func (c *CLI) Moves() []floe.Move {
	return c.moves
}

// FinalScore is captured fish plus the tiles the player's penguins end the
// game standing on.
func FinalScore(b *floe.Board, player int) int {
	total := b.Score(player)
	for who := 0; who < b.NumPenguins(); who++ {
		if b.Owner(who) == player {
			total += b.FishAt(b.Penguin(who))
		}
	}
	return total
}

// render draws the grid: fish counts on open tiles, one letter per seat's
// penguins (the penguin's global index follows it), dots for open water.
func (c *CLI) render() {
	b := c.Board
	tw := tabwriter.NewWriter(c.Out, 2, 8, 1, ' ', 0)
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			pt := floe.Point{Y: int8(y), X: int8(x)}
			switch {
			case b.Occupant(pt) != -1:
				fmt.Fprintf(tw, "%c\t", seatGlyphs[b.Occupant(pt)])
			case b.FishAt(pt) == 0:
				fmt.Fprintf(tw, ".\t")
			default:
				fmt.Fprintf(tw, "%d\t", b.FishAt(pt))
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	for p := 0; p < b.Players(); p++ {
		fmt.Fprintf(c.Out, "%c=%d ", seatGlyphs[p], b.Score(p))
	}
	fmt.Fprintln(c.Out)
}
