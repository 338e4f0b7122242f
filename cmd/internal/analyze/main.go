package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"manchot/ai"
	"manchot/cmd/internal/opt"
	"manchot/floe"
)

type Command struct {
	quiet   bool
	explain bool

	seat      int
	variation string

	timeLimit time.Duration

	mmopt opt.Minimax
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Evaluate a position from a board dump" }
func (*Command) Usage() string {
	return `analyze [options] FILE

Evaluate a board dump using the minimax engine. FILE may be "-" for stdin.

Use -seat to pick the player to move, and -variation to play additional
moves prior to analysis.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.BoolVar(&c.explain, "explain", false, "explain scoring")

	flags.IntVar(&c.seat, "seat", 0, "player to move")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves before analyzing")

	flags.DurationVar(&c.timeLimit, "limit", time.Minute, "limit of how much time to use")

	c.mmopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var data []byte
	var err error
	if flag.Arg(0) == "" || flag.Arg(0) == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(flag.Arg(0))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("read board")
	}
	b, err := floe.ParseBoard(string(data))
	if err != nil {
		log.Fatal().Err(err).Msg("parse board")
	}
	if c.seat < 0 || c.seat >= b.Players() {
		log.Fatal().Msgf("-seat: board has %d players", b.Players())
	}

	seat := c.seat
	if c.variation != "" {
		seat, err = applyVariation(b, seat, c.variation)
		if err != nil {
			log.Fatal().Err(err).Msg("-variation")
		}
	}

	c.analyze(ctx, b, seat)
	return subcommands.ExitSuccess
}

func (c *Command) analyze(ctx context.Context, b *floe.Board, seat int) {
	player := ai.NewMinimax(c.mmopt.BuildConfig())
	if !c.quiet {
		fmt.Print(floe.FormatBoard(b))
	}
	if c.explain {
		ai.ExplainScore(player, os.Stdout, b, seat)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeLimit)
	defer cancel()
	pv, val, st := player.Analyze(ctx, b, seat)

	fmt.Printf("AI analysis:\n")
	fmt.Printf(" pv=")
	for _, m := range pv {
		fmt.Printf("%s ", floe.FormatMove(m))
	}
	fmt.Printf("\n")
	fmt.Printf(" value=%d depth=%d visited=%d evaluated=%d\n",
		val, st.Depth, st.Visited, st.Evaluated)

	if c.quiet {
		return
	}

	after := b.Clone()
	who := seat
	for _, m := range pv {
		if m.Type == floe.Pass {
			who = (who + 1) % after.Players()
			continue
		}
		if _, e := after.Apply(who, m); e != nil {
			log.Error().Err(e).Msgf("illegal move in pv: %s", floe.FormatMove(m))
			return
		}
		who = (who + 1) % after.Players()
	}
	fmt.Println("Resulting position:")
	fmt.Print(floe.FormatBoard(after))
}

func applyVariation(b *floe.Board, seat int, variant string) (int, error) {
	for _, moveStr := range strings.Fields(variant) {
		m, err := floe.ParseMove(moveStr)
		if err != nil {
			return 0, err
		}
		if m.Type != floe.Pass {
			if _, err := b.Apply(seat, m); err != nil {
				return 0, fmt.Errorf("bad move `%s': %w", moveStr, err)
			}
		}
		seat = (seat + 1) % b.Players()
	}
	return seat, nil
}
