package selfplay

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"manchot/ai"
	"manchot/cli"
	"manchot/floe"
)

type Config struct {
	Games int

	Verbose bool

	Boards []*floe.Board

	F1, F2 AIFactory

	Swap    bool
	Threads int
	Seed    int64
	Cutoff  int
	Limit   time.Duration
}

type Stats struct {
	Players [2]struct {
		Wins       int
		FirstWins  int
		SecondWins int
	}
	Ties   int
	Cutoff int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return len(s.Games)
}

type gameSpec struct {
	c      *Config
	board  *floe.Board
	bi     int
	i      int
	r      *rand.Rand
	p1seat int
}

type Result struct {
	spec   gameSpec
	Final  *floe.Board
	Moves  []floe.Move
	Winner int
}

func Simulate(c *Config) Stats {
	var st Stats
	rc := make(chan Result)
	go startGames(c, rc)
	for r := range rc {
		if c.Verbose {
			log.Info().Msgf("game board=%d n=%d plies=%d p1seat=%d winner=%d s0=%d s1=%d",
				r.spec.bi, r.spec.i, len(r.Moves),
				r.spec.p1seat,
				r.Winner,
				cli.FinalScore(r.Final, 0),
				cli.FinalScore(r.Final, 1),
			)
		}
		if !r.Final.Terminal() {
			st.Cutoff++
		} else if r.Winner < 0 {
			st.Ties++
		} else {
			pst := &st.Players[0]
			if r.Winner != r.spec.p1seat {
				pst = &st.Players[1]
			}
			pst.Wins++
			if r.Winner == 0 {
				pst.FirstWins++
			} else {
				pst.SecondWins++
			}
		}
		st.Games = append(st.Games, r)
	}

	return st
}

func startGames(c *Config, rc chan<- Result) {
	gc := make(chan gameSpec)
	var grp errgroup.Group
	for i := 0; i < c.Threads; i++ {
		grp.Go(func() error {
			worker(c, gc, rc)
			return nil
		})
	}
	r := rand.New(rand.NewSource(c.Seed))
	for bi, b := range c.Boards {
		n := c.Games
		if c.Swap {
			n *= 2
		}
		for g := 0; g < n; g++ {
			p1seat := 0
			if c.Swap && g%2 == 1 {
				p1seat = 1
			}
			gc <- gameSpec{
				c:      c,
				board:  b,
				bi:     bi,
				i:      g,
				p1seat: p1seat,
				r:      rand.New(rand.NewSource(r.Int63())),
			}
		}
	}
	close(gc)
	grp.Wait()
	close(rc)
}

func worker(c *Config, games <-chan gameSpec, out chan<- Result) {
	for g := range games {
		var players [2]ai.Player
		players[g.p1seat] = c.F1.GetPlayer(g.r.Int63())
		players[1-g.p1seat] = c.F2.GetPlayer(g.r.Int63())
		out <- playGame(g, players)
	}
}

func playGame(g gameSpec, players [2]ai.Player) Result {
	b := g.board.Clone()
	var ms []floe.Move

	for b.PlacementPhase() {
		seat := b.NumPenguins() % b.Players()
		m := pickMove(g, players[seat], b, seat)
		if m.Type == floe.Pass {
			panic(fmt.Sprintf("seat %d passed during placement", seat))
		}
		if _, err := b.Apply(seat, m); err != nil {
			panic(fmt.Sprintf("illegal placement %s: %v", floe.FormatMove(m), err))
		}
		ms = append(ms, m)
	}

	seat := 0
	plies := 0
	for !b.Terminal() && plies < g.c.Cutoff {
		if !b.HasMove(seat) {
			seat = (seat + 1) % b.Players()
			continue
		}
		m := pickMove(g, players[seat], b, seat)
		plies++
		if m.Type != floe.Pass {
			if _, err := b.Apply(seat, m); err != nil {
				panic(fmt.Sprintf("illegal move %s: %v", floe.FormatMove(m), err))
			}
			ms = append(ms, m)
		}
		seat = (seat + 1) % b.Players()
	}

	winner := -1
	if b.Terminal() {
		best := -1
		for p := 0; p < b.Players(); p++ {
			final := cli.FinalScore(b, p)
			switch {
			case final > best:
				best, winner = final, p
			case final == best:
				winner = -1
			}
		}
	}
	return Result{
		spec:   g,
		Final:  b,
		Moves:  ms,
		Winner: winner,
	}
}

func pickMove(g gameSpec, p ai.Player, b *floe.Board, seat int) floe.Move {
	ctx := context.Background()
	if g.c.Limit != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.c.Limit)
		defer cancel()
	}
	return p.GetMove(ctx, b, seat)
}
