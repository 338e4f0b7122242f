package judge

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"manchot/floe"
)

// Client is the judge side of the protocol: it feeds an agent its view of
// the game and reads the agent's replies. Tests drive an Engine through a
// Client over in-memory pipes; selfplay can wrap an external agent process.
type Client struct {
	out io.Writer
	in  *Scanner

	me  int
	cmd *exec.Cmd

	stdin  io.WriteCloser
	stdout io.ReadCloser
}

// NewClient wraps an agent reachable over the given streams: from is the
// agent's stdout, to its stdin.
func NewClient(from io.Reader, to io.Writer, me int) *Client {
	return &Client{out: to, in: NewScanner(from), me: me}
}

// NewClientCmd launches cmdline as a child agent process playing seat me.
func NewClientCmd(cmdline []string, me int) (*Client, error) {
	cmd := exec.Command(cmdline[0], cmdline[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, err
	}
	c := NewClient(stdout, stdin, me)
	c.cmd = cmd
	c.stdin = stdin
	c.stdout = stdout
	return c, nil
}

func (c *Client) Close() error {
	if c.stdin != nil {
		c.stdin.Close()
	}
	if c.stdout != nil {
		c.stdout.Close()
	}
	if c.cmd != nil {
		return c.cmd.Wait()
	}
	return nil
}

// Init sends the header and both matrices for a board with no penguins yet.
func (c *Client) Init(b *floe.Board) error {
	if _, err := fmt.Fprintf(c.out, "%d %d %d %d %d\n",
		b.Width(), b.Height(), b.PerPlayer(), c.me, b.Players()); err != nil {
		return err
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if _, err := fmt.Fprintf(c.out, "%d ", b.FishAt(floe.Point{Y: int8(y), X: int8(x)})); err != nil {
				return err
			}
		}
		fmt.Fprintln(c.out)
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			broken := 0
			if b.FishAt(floe.Point{Y: int8(y), X: int8(x)}) == 0 {
				broken = 1
			}
			if _, err := fmt.Fprintf(c.out, "%d ", broken); err != nil {
				return err
			}
		}
		fmt.Fprintln(c.out)
	}
	return nil
}

// Place asks the agent for a placement within budget. ok is false when the
// agent passed.
func (c *Client) Place(budget time.Duration) (pt floe.Point, ok bool, err error) {
	if _, err = fmt.Fprintf(c.out, "%d %d\n", c.me, budget/time.Millisecond); err != nil {
		return
	}
	y, err := c.in.Int()
	if err != nil {
		return
	}
	if y == -1 {
		return floe.Point{}, false, nil
	}
	x, err := c.in.Int()
	if err != nil {
		return
	}
	return floe.Point{Y: int8(y), X: int8(x)}, true, nil
}

// ObservePlace notifies the agent of another player's placement.
func (c *Client) ObservePlace(player int, pt floe.Point) error {
	_, err := fmt.Fprintf(c.out, "%d %d %d\n", player, pt.Y, pt.X)
	return err
}

// EndPlacements sends the phase sentinel.
func (c *Client) EndPlacements() error {
	_, err := fmt.Fprintln(c.out, "-1")
	return err
}

// Move asks the agent for a slide within budget. ok is false on a pass.
func (c *Client) Move(budget time.Duration) (m floe.Move, ok bool, err error) {
	if _, err = fmt.Fprintf(c.out, "%d %d\n", c.me, budget/time.Millisecond); err != nil {
		return
	}
	who, err := c.in.Int()
	if err != nil {
		return
	}
	if who == -1 {
		return floe.Move{Type: floe.Pass}, false, nil
	}
	y, err := c.in.Int()
	if err != nil {
		return
	}
	x, err := c.in.Int()
	if err != nil {
		return
	}
	return floe.Move{Type: floe.Slide, Who: int8(who), Dest: floe.Point{Y: int8(y), X: int8(x)}}, true, nil
}

// ObserveMove notifies the agent of another player's slide, or of a pass
// when who is -1.
func (c *Client) ObserveMove(player, who int, dest floe.Point) error {
	if who == -1 {
		_, err := fmt.Fprintf(c.out, "%d -1\n", player)
		return err
	}
	_, err := fmt.Fprintf(c.out, "%d %d %d %d\n", player, who, dest.Y, dest.X)
	return err
}

// End sends the game-over sentinel.
func (c *Client) End() error {
	_, err := fmt.Fprintln(c.out, "-1")
	return err
}
