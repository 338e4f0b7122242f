package selfplay

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"manchot/ai"
)

// AIFactory builds one player per game. Seeds come from the per-game RNG so
// reruns with the same -seed replay the same games.
type AIFactory interface {
	GetPlayer(seed int64) ai.Player
	String() string
}

func buildFactory(cfg *Config, engine string, depth int, ws string) AIFactory {
	switch engine {
	case "minimax":
		return buildMinimaxFactory(cfg, depth, ws)
	case "greedy":
		return GreedyFactory{}
	case "rand":
		return RandomFactory{}
	default:
		panic(fmt.Sprintf("unknown engine: %s", engine))
	}
}

type MinimaxFactory struct {
	cfg ai.MinimaxConfig
}

func (m *MinimaxFactory) GetPlayer(seed int64) ai.Player {
	cfg := m.cfg
	cfg.Seed = seed
	return ai.NewMinimax(cfg)
}

func (m *MinimaxFactory) String() string {
	return fmt.Sprintf("minimax@%d", m.cfg.Depth)
}

func buildMinimaxFactory(cfg *Config, depth int, ws string) AIFactory {
	weights := ai.DefaultWeights
	if ws != "" {
		if err := json.Unmarshal([]byte(ws), &weights); err != nil {
			log.Fatal().Err(err).Msg("parsing weights")
		}
	}
	mmcfg := ai.MinimaxConfig{
		Depth:    depth,
		Evaluate: ai.MakeEvaluator(&weights),
	}
	return &MinimaxFactory{mmcfg}
}

type GreedyFactory struct{}

func (GreedyFactory) GetPlayer(seed int64) ai.Player { return ai.NewGreedy() }
func (GreedyFactory) String() string                 { return "greedy" }

type RandomFactory struct{}

func (RandomFactory) GetPlayer(seed int64) ai.Player { return ai.NewRandom(seed) }
func (RandomFactory) String() string                 { return "rand" }
