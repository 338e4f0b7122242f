// Package judge speaks the external judge's line protocol: an integer
// stream on stdin carrying the initial board and turn notifications, and
// one move (or pass) per decision on stdout.
package judge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"manchot/ai"
	"manchot/floe"
)

// ErrProtocol marks malformed or unexpected judge input. It is fatal: the
// agent must never answer a message it could not parse.
var ErrProtocol = errors.New("protocol error")

const maxSide = 64

// Engine runs the agent side of a game: it consumes the init message, then
// alternates between applying opponent actions to the board and asking the
// player for a move within the judge's per-turn budget.
type Engine struct {
	in  *Scanner
	out io.Writer

	player ai.Player

	// Margin is shaved off every budget so the reply is on the wire
	// before the judge's deadline.
	Margin time.Duration

	b  *floe.Board
	me int
}

func NewEngine(in io.Reader, out io.Writer, player ai.Player) *Engine {
	return &Engine{
		in:     NewScanner(in),
		out:    out,
		player: player,
		Margin: 50 * time.Millisecond,
	}
}

// Board exposes the tracked game state; selfplay and tests inspect it after
// a run.
func (e *Engine) Board() *floe.Board { return e.b }

func (e *Engine) Run(ctx context.Context) error {
	if err := e.readInit(); err != nil {
		return err
	}
	if err := e.placements(ctx); err != nil {
		return err
	}
	return e.movements(ctx)
}

// readToken wraps scanner failures, EOF included, as protocol errors; use
// it wherever the stream must continue.
func (e *Engine) readToken(what string) (int, error) {
	n, err := e.in.Int()
	if err != nil {
		if errors.Is(err, ErrProtocol) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: reading %s: %v", ErrProtocol, what, err)
	}
	return n, nil
}

func (e *Engine) readInit() error {
	var hdr [5]int
	names := [5]string{"width", "height", "penguins", "me", "players"}
	for i := range hdr {
		n, err := e.readToken(names[i])
		if err != nil {
			return err
		}
		hdr[i] = n
	}
	width, height, perPlayer, me, players := hdr[0], hdr[1], hdr[2], hdr[3], hdr[4]
	if width < 1 || width > maxSide || height < 1 || height > maxSide {
		return fmt.Errorf("%w: board %dx%d", ErrProtocol, width, height)
	}
	if players < 2 || players > floe.MaxPlayers || me < 0 || me >= players || perPlayer < 1 {
		return fmt.Errorf("%w: players=%d me=%d penguins=%d", ErrProtocol, players, me, perPlayer)
	}
	// Penguin indices travel as int8; the total must also fit the board.
	if perPlayer*players > width*height || perPlayer*players > 127 {
		return fmt.Errorf("%w: %d penguins on a %dx%d board", ErrProtocol, perPlayer*players, width, height)
	}
	e.b = floe.New(width, height, players, perPlayer)
	e.me = me

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n, err := e.readToken("fish")
			if err != nil {
				return err
			}
			if n < 0 || n > 3 {
				return fmt.Errorf("%w: fish count %d at (%d,%d)", ErrProtocol, n, y, x)
			}
			e.b.SetFish(floe.Point{Y: int8(y), X: int8(x)}, n)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n, err := e.readToken("broken")
			if err != nil {
				return err
			}
			switch n {
			case 0:
			case 1:
				e.b.SetFish(floe.Point{Y: int8(y), X: int8(x)}, 0)
			default:
				return fmt.Errorf("%w: broken flag %d at (%d,%d)", ErrProtocol, n, y, x)
			}
		}
	}
	log.Debug().Msgf("init: %dx%d players=%d me=%d penguins=%d fish=%d",
		width, height, players, me, perPlayer, e.b.RemainingFish())
	return nil
}

func (e *Engine) placements(ctx context.Context) error {
	for e.b.PlacementPhase() {
		p, err := e.readToken("placement turn")
		if err != nil {
			return err
		}
		switch {
		case p == -1:
			return nil
		case p == e.me:
			if err := e.myTurn(ctx); err != nil {
				return err
			}
		case p >= 0 && p < e.b.Players():
			pt, err := e.readPoint()
			if err != nil {
				return err
			}
			if _, err := e.b.Apply(p, floe.Move{Type: floe.Place, Dest: pt}); err != nil {
				return fmt.Errorf("%w: enemy placement (%d,%d): %v", ErrProtocol, pt.Y, pt.X, err)
			}
			log.Debug().Msgf("enemy %d placed at (%d,%d)", p, pt.Y, pt.X)
		default:
			return fmt.Errorf("%w: placement by player %d", ErrProtocol, p)
		}
	}
	// All penguins down; consume the phase sentinel.
	p, err := e.readToken("placement end")
	if err != nil {
		return err
	}
	if p != -1 {
		return fmt.Errorf("%w: expected end of placements, got %d", ErrProtocol, p)
	}
	return nil
}

func (e *Engine) movements(ctx context.Context) error {
	for {
		p, err := e.in.Int()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, ErrProtocol) {
				return err
			}
			return fmt.Errorf("%w: reading move turn: %v", ErrProtocol, err)
		}
		switch {
		case p == -1:
			return nil
		case p == e.me:
			if err := e.myTurn(ctx); err != nil {
				return err
			}
		case p >= 0 && p < e.b.Players():
			if err := e.enemyMove(p); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: move by player %d", ErrProtocol, p)
		}
	}
}

func (e *Engine) enemyMove(p int) error {
	who, err := e.readToken("penguin index")
	if err != nil {
		return err
	}
	if who == -1 {
		log.Debug().Msgf("enemy %d passed", p)
		return nil
	}
	dest, err := e.readPoint()
	if err != nil {
		return err
	}
	m := floe.Move{Type: floe.Slide, Who: int8(who), Dest: dest}
	if who < 0 || who >= e.b.NumPenguins() {
		return fmt.Errorf("%w: penguin index %d", ErrProtocol, who)
	}
	if _, err := e.b.Apply(p, m); err != nil {
		return fmt.Errorf("%w: enemy move %s: %v", ErrProtocol, floe.FormatMove(m), err)
	}
	log.Debug().Msgf("enemy %d moved %s", p, floe.FormatMove(m))
	return nil
}

// myTurn reads the remaining budget, runs the player, applies the chosen
// move locally and writes it out as one complete line.
func (e *Engine) myTurn(ctx context.Context) error {
	ms, err := e.readToken("budget")
	if err != nil {
		return err
	}
	budget := time.Duration(ms)*time.Millisecond - e.Margin

	start := time.Now()
	tctx, cancel := context.WithTimeout(ctx, budget)
	m := e.player.GetMove(tctx, e.b, e.me)
	cancel()
	log.Debug().Msgf("turn: budget=%dms move=%s elapsed=%s", ms, floe.FormatMove(m), time.Since(start))

	if m.Type == floe.Pass {
		_, err := fmt.Fprintln(e.out, "-1")
		return err
	}
	// A move the board rejects here was not produced by move generation;
	// abort without emitting anything rather than corrupt the game.
	if _, err := e.b.Apply(e.me, m); err != nil {
		return err
	}
	switch m.Type {
	case floe.Place:
		_, err = fmt.Fprintf(e.out, "%d %d\n", m.Dest.Y, m.Dest.X)
	case floe.Slide:
		_, err = fmt.Fprintf(e.out, "%d %d %d\n", m.Who, m.Dest.Y, m.Dest.X)
	}
	return err
}

func (e *Engine) readPoint() (floe.Point, error) {
	y, err := e.readToken("y")
	if err != nil {
		return floe.Point{}, err
	}
	x, err := e.readToken("x")
	if err != nil {
		return floe.Point{}, err
	}
	if y < 0 || y > maxSide || x < 0 || x > maxSide {
		return floe.Point{}, fmt.Errorf("%w: coordinate (%d,%d)", ErrProtocol, y, x)
	}
	return floe.Point{Y: int8(y), X: int8(x)}, nil
}
