package play

import (
	"bufio"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"context"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"manchot/ai"
	"manchot/cli"
	"manchot/cmd/internal/opt"
	"manchot/floe"
)

type Command struct {
	players  string
	width    int
	height   int
	penguins int
	seed     int64
	limit    time.Duration
	opt      opt.Minimax
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play a game from the command line" }
func (*Command) Usage() string {
	return `play [flags]

Play on the terminal, against a human or AI. Player specs are "human",
"greedy", "rand[:seed]" or "minimax[:depth]", comma-separated per seat.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.players, "players", "human,minimax", "comma-separated player spec per seat")
	flags.IntVar(&c.width, "width", 8, "board width")
	flags.IntVar(&c.height, "height", 8, "board height")
	flags.IntVar(&c.penguins, "penguins", 2, "penguins per player")
	flags.Int64Var(&c.seed, "seed", 0, "board seed (0 = time-based)")
	flags.DurationVar(&c.limit, "limit", 5*time.Second, "ai time limit per move")
	c.opt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	specs := strings.Split(c.players, ",")
	if len(specs) < 2 || len(specs) > floe.MaxPlayers {
		log.Fatal().Msgf("need 2-%d players, got %q", floe.MaxPlayers, c.players)
	}
	seed := c.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	in := bufio.NewReader(os.Stdin)
	st := &cli.CLI{
		Board: floe.Generate(c.width, c.height, len(specs), c.penguins, seed),
		Out:   os.Stdout,
	}
	for _, s := range specs {
		st.Players = append(st.Players, c.parsePlayer(in, s))
	}
	st.Play()
	return subcommands.ExitSuccess
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiWrapper) GetMove(b *floe.Board, player int) floe.Move {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(a.limit))
	defer cancel()
	return a.p.GetMove(ctx, b, player)
}

func (c *Command) parsePlayer(in *bufio.Reader, s string) cli.Player {
	if s == "human" {
		return cli.NewCLIPlayer(os.Stdout, in)
	}
	if s == "greedy" {
		return &aiWrapper{c.limit, ai.NewGreedy()}
	}
	if strings.HasPrefix(s, "rand") {
		var seed int64
		if len(s) > len("rand") {
			i, err := strconv.Atoi(s[len("rand:"):])
			if err != nil {
				log.Fatal().Err(err).Msg("bad player spec")
			}
			seed = int64(i)
		}
		return &aiWrapper{c.limit, ai.NewRandom(seed)}
	}
	if strings.HasPrefix(s, "minimax") {
		cfg := c.opt.BuildConfig()
		if len(s) > len("minimax") {
			i, err := strconv.Atoi(s[len("minimax:"):])
			if err != nil {
				log.Fatal().Err(err).Msg("bad player spec")
			}
			cfg.Depth = i
		}
		return &aiWrapper{c.limit, ai.NewMinimax(cfg)}
	}
	log.Fatal().Msgf("unparseable player: %s", s)
	return nil
}
