package selfplay

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"manchot/floe"
)

type Command struct {
	width    int
	height   int
	penguins int

	p1 string
	p2 string
	w1 string
	w2 string

	seed int64

	games  int
	boards int
	board  string
	cutoff int
	swap   bool

	depth int
	limit time.Duration

	threads int

	summary string
	verbose bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.width, "width", 8, "board width")
	flags.IntVar(&c.height, "height", 8, "board height")
	flags.IntVar(&c.penguins, "penguins", 2, "penguins per player")

	flags.StringVar(&c.p1, "p1", "minimax", "player1 engine (minimax|greedy|rand)")
	flags.StringVar(&c.p2, "p2", "minimax", "player2 engine (minimax|greedy|rand)")
	flags.StringVar(&c.w1, "w1", "", "player1 evaluation weights (JSON)")
	flags.StringVar(&c.w2, "w2", "", "player2 evaluation weights (JSON)")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games per board/seat order")
	flags.IntVar(&c.boards, "boards", 1, "number of random starting boards")
	flags.StringVar(&c.board, "board", "", "file with a starting board dump")
	flags.IntVar(&c.cutoff, "cutoff", 200, "cut games off after how many plies")
	flags.BoolVar(&c.swap, "swap", true, "swap seat order each game")
	flags.IntVar(&c.depth, "depth", 4, "minimax depth")
	flags.DurationVar(&c.limit, "limit", 0, "amount of time to search each move")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel threads")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}

	var boards []*floe.Board
	if c.board != "" {
		data, err := os.ReadFile(c.board)
		if err != nil {
			log.Fatal().Err(err).Msg("-board")
		}
		b, err := floe.ParseBoard(string(data))
		if err != nil {
			log.Fatal().Err(err).Msg("-board")
		}
		if b.Players() != 2 {
			log.Fatal().Msgf("-board: selfplay needs a 2-player board, got %d", b.Players())
		}
		boards = []*floe.Board{b}
	} else {
		for i := 0; i < c.boards; i++ {
			boards = append(boards, floe.Generate(c.width, c.height, 2, c.penguins, c.seed+int64(i)))
		}
	}

	cfg := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		Boards:  boards,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
		Limit:   c.limit,
	}
	cfg.F1 = buildFactory(cfg, c.p1, c.depth, c.w1)
	cfg.F2 = buildFactory(cfg, c.p2, c.depth, c.w2)

	st := Simulate(cfg)

	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}

	log.Info().Msgf("done games=%d seed=%d ties=%d cutoff=%d limit=%s",
		st.Count(), c.seed, st.Ties, st.Cutoff, c.limit)
	tw := tabwriter.NewWriter(os.Stderr, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\tfirst\tsecond\tsum\n")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", cfg.F1, st.Players[0].FirstWins, st.Players[0].SecondWins, st.Players[0].Wins)
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", cfg.F2, st.Players[1].FirstWins, st.Players[1].SecondWins, st.Players[1].Wins)
	fmt.Fprintf(tw, "sum\t%d\t%d\t%d\n",
		st.Players[0].FirstWins+st.Players[1].FirstWins,
		st.Players[0].SecondWins+st.Players[1].SecondWins,
		st.Players[0].Wins+st.Players[1].Wins,
	)
	tw.Flush()

	return subcommands.ExitSuccess
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Limit   time.Duration
	Stats   *Stats
}

func (c *Command) writeSummary(path string, stats *Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Limit:   c.limit,
		Stats:   stats,
	}

	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	f.Write(bs)
	return nil
}
