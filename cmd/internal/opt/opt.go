// Package opt holds the search flags shared by every subcommand that
// builds a minimax player.
package opt

import (
	"encoding/json"
	"flag"

	"github.com/rs/zerolog/log"

	"manchot/ai"
)

type Minimax struct {
	Seed    int64
	Debug   int
	Depth   int
	Sort    bool
	Table   bool
	Weights string
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.Int64Var(&o.Seed, "seed", 0, "shuffle root moves with this seed (0 = deterministic)")
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.IntVar(&o.Depth, "depth", 0, "maximum search depth (0 = unlimited)")
	flags.BoolVar(&o.Sort, "sort", true, "order moves by PV and table hits")
	flags.BoolVar(&o.Table, "table", true, "use the transposition table")
	flags.StringVar(&o.Weights, "weights", "", "JSON-encoded evaluation weights")
}

func (o *Minimax) BuildConfig() ai.MinimaxConfig {
	w := ai.DefaultWeights
	if o.Weights != "" {
		if err := json.Unmarshal([]byte(o.Weights), &w); err != nil {
			log.Fatal().Msgf("parse weights: %v", err)
		}
	}
	return ai.MinimaxConfig{
		Depth: o.Depth,
		Seed:  o.Seed,
		Debug: o.Debug,

		NoSort:  !o.Sort,
		NoTable: !o.Table,

		Evaluate: ai.MakeEvaluator(&w),
	}
}
