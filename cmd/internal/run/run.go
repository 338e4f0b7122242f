// Package run implements the competitive mode: speak the judge protocol on
// stdin/stdout until the game ends.
package run

import (
	"flag"
	"os"
	"time"

	"context"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"manchot/ai"
	"manchot/cmd/internal/opt"
	"manchot/judge"
)

type Command struct {
	opt    opt.Minimax
	margin time.Duration
}

func (*Command) Name() string     { return "run" }
func (*Command) Synopsis() string { return "Play a game against the external judge on stdin/stdout" }
func (*Command) Usage() string {
	return `run [flags]

Read the judge protocol from stdin and write one move per turn to stdout.
This is the mode the judge harness launches.
`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
	fs.DurationVar(&c.margin, "margin", 50*time.Millisecond,
		"time reserved out of each budget for writing the reply")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := judge.NewEngine(os.Stdin, os.Stdout, ai.NewMinimax(c.opt.BuildConfig()))
	engine.Margin = c.margin
	if err := engine.Run(ctx); err != nil {
		log.Error().Msgf("run: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
