package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"manchot/cmd/internal/analyze"
	"manchot/cmd/internal/play"
	"manchot/cmd/internal/run"
	"manchot/cmd/internal/selfplay"
)

// Logging stays on stderr: when talking to a judge, stdout carries only
// protocol lines.
var logLevel = flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&run.Command{}, "")
	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")

	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	os.Exit(int(subcommands.Execute(context.Background())))
}
