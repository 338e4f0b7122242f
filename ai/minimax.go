package ai

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/context"

	"manchot/floe"
)

const (
	MaxEval      int64 = 1 << 30
	MinEval            = -MaxEval
	WinThreshold int64 = 1 << 29

	tableSize uint64 = 1 << 20

	maxDepth = 32
)

type EvaluationFunc func(m *MinimaxAI, b *floe.Board, root int) int64

// MinimaxAI is the time-bounded decision engine: iterative-deepening
// minimax with alpha-beta pruning over the legal moves of a single board,
// mutated in place through apply/undo pairs. With more than two seats every
// opponent minimizes the root's score.
type MinimaxAI struct {
	cfg  MinimaxConfig
	rand *rand.Rand

	st Stats

	evaluate EvaluationFunc

	table []tableEntry
	stack [maxDepth]struct {
		moves []floe.Move
		pv    [maxDepth]floe.Move
	}

	b    *floe.Board
	root int

	cancel        *int32
	interruptible bool

	// evaluator scratch, reused across calls
	dist      [][]int16
	queue     []floe.Point
	evalMoves []floe.Move
}

type tableEntry struct {
	hash  uint64
	depth int
	value int64
	bound boundType
	m     floe.Move
}

type boundType byte

const (
	lowerBound boundType = iota
	exactBound
	upperBound
)

type Stats struct {
	Depth     int
	Visited   uint64
	Evaluated uint64
	Terminal  uint64
	CutNodes  uint64
	TTHits    uint64

	Elapsed time.Duration
}

type MinimaxConfig struct {
	Depth int
	Seed  int64
	Debug int

	NoSort  bool
	NoTable bool

	Evaluate EvaluationFunc
}

func NewMinimax(cfg MinimaxConfig) *MinimaxAI {
	m := &MinimaxAI{cfg: cfg}
	if m.cfg.Depth == 0 || m.cfg.Depth >= maxDepth {
		m.cfg.Depth = maxDepth - 1
	}
	m.evaluate = cfg.Evaluate
	if m.evaluate == nil {
		m.evaluate = DefaultEvaluate
	}
	if !cfg.NoTable {
		m.table = make([]tableEntry, tableSize)
	}
	if cfg.Seed != 0 {
		m.rand = rand.New(rand.NewSource(cfg.Seed))
	}
	return m
}

var playerKeys = [floe.MaxPlayers]uint64{
	0x9e3779b97f4a7c15,
	0xbf58476d1ce4e5b9,
	0x94d049bb133111eb,
	0xd6e8feb86659fd93,
}

var scoreKeys = [floe.MaxPlayers]uint64{
	0xa0761d6478bd642f,
	0xe7037ed1a0b428db,
	0x8ebc6af09c88c6e3,
	0x589965cc75374cc3,
}

// key mixes the side to move and each player's captured total into the
// board hash: two boards with the same layout but a different capture split
// are different search positions.
func (m *MinimaxAI) key(player int) uint64 {
	h := m.b.Hash() ^ playerKeys[player]
	for p := 0; p < m.b.Players(); p++ {
		h ^= (uint64(m.b.Score(p)) + 1) * scoreKeys[p]
	}
	return h
}

func (m *MinimaxAI) ttGet(h uint64) *tableEntry {
	if m.cfg.NoTable {
		return nil
	}
	te := &m.table[h%tableSize]
	if te.hash != h {
		return nil
	}
	return te
}

func (m *MinimaxAI) ttPut(h uint64) *tableEntry {
	if m.cfg.NoTable {
		return nil
	}
	if atomic.LoadInt32(m.cancel) != 0 {
		return nil
	}
	return &m.table[h%tableSize]
}

func formatpv(ms []floe.Move) string {
	var out strings.Builder
	out.WriteString("[")
	for i, m := range ms {
		if i != 0 {
			out.WriteString(" ")
		}
		out.WriteString(floe.FormatMove(m))
	}
	out.WriteString("]")
	return out.String()
}

// GetMove returns the best root move found within ctx's deadline, or a Pass
// move when the seat has nothing to play.
func (m *MinimaxAI) GetMove(ctx context.Context, b *floe.Board, player int) floe.Move {
	ms, _, _ := m.Analyze(ctx, b, player)
	return ms[0]
}

// Analyze deepens one ply at a time and returns the principal variation of
// the last iteration that ran to completion, its value, and search stats. An
// already-expired deadline still yields the depth-1 best move: the first
// iteration is never interrupted.
func (m *MinimaxAI) Analyze(ctx context.Context, b *floe.Board, player int) ([]floe.Move, int64, Stats) {
	top := time.Now()
	m.b = b
	m.root = player

	rootMoves := b.AllMoves(player, m.stack[0].moves[:0])
	m.stack[0].moves = rootMoves
	if len(rootMoves) == 0 {
		return []floe.Move{{Type: floe.Pass}}, 0, Stats{Elapsed: time.Since(top)}
	}

	var cancel int32
	m.cancel = &cancel
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			atomic.StoreInt32(&cancel, 1)
		case <-stop:
		}
	}()

	deadline, limited := ctx.Deadline()

	var best []floe.Move
	var v int64
	var done Stats
	var prevEval uint64
	var branchSum uint64

	for i := 1; i <= m.cfg.Depth; i++ {
		m.interruptible = i > 1
		m.st = Stats{Depth: i}
		start := time.Now()
		pv, val := m.minimax(player, 0, i, best, MinEval-1, MaxEval+1)
		if pv == nil {
			break
		}
		best = append(best[:0:0], pv...)
		v = val
		done = m.st
		iterTime := time.Since(start)
		if m.cfg.Debug > 0 {
			log.Debug().Msgf("deepen: depth=%d val=%d pv=%s time=%s total=%s evaluated=%d tt=%d",
				i, v, formatpv(best), iterTime, time.Since(top), m.st.Evaluated, m.st.TTHits)
		}
		if atomic.LoadInt32(&cancel) != 0 {
			break
		}
		if v > WinThreshold || v < -WinThreshold {
			break
		}
		if i > 1 {
			branchSum += m.st.Evaluated / (prevEval + 1)
		}
		prevEval = m.st.Evaluated
		if limited && i != m.cfg.Depth {
			var branch uint64
			if i > 2 {
				// conservatively double the observed factor,
				// deepening cost is uneven between plies
				branch = 2 * branchSum / uint64(i-1)
			} else {
				branch = 8
			}
			estimate := time.Now().Add(iterTime * time.Duration(branch))
			if estimate.After(deadline) {
				if m.cfg.Debug > 0 {
					log.Debug().Msgf("time cutoff: depth=%d total=%s", i, time.Since(top))
				}
				break
			}
		}
	}

	// Stats describe the last iteration whose move survived, not the one a
	// deadline may have cut short.
	done.Elapsed = time.Since(top)
	r := append([]floe.Move(nil), best...)
	return r, v, done
}

func (m *MinimaxAI) minimax(player, ply, depth int, pv []floe.Move, α, β int64) ([]floe.Move, int64) {
	if depth == 0 {
		m.st.Evaluated++
		return m.stack[ply].pv[:0], m.evaluate(m, m.b, m.root)
	}
	m.st.Visited++

	h := m.key(player)
	te := m.ttGet(h)
	if te != nil && te.depth >= depth {
		if te.bound == exactBound ||
			(te.bound == upperBound && te.value <= α) ||
			(te.bound == lowerBound && te.value >= β) {
			if u, err := m.b.Apply(player, te.m); err == nil {
				m.b.UndoMove(player, te.m, u)
				m.st.TTHits++
				m.stack[ply].pv[0] = te.m
				return m.stack[ply].pv[:1], te.value
			}
			te = nil
		}
	}

	ms := m.b.AllMoves(player, m.stack[ply].moves[:0])
	m.stack[ply].moves = ms
	if len(ms) == 0 {
		if m.b.Terminal() {
			m.st.Evaluated++
			m.st.Terminal++
			return m.stack[ply].pv[:0], m.evaluate(m, m.b, m.root)
		}
		// Only this seat is stuck: pass through to the next player.
		return m.minimax(m.next(player), ply+1, depth-1, pv, α, β)
	}

	if m.rand != nil && ply == 0 {
		for i := len(ms) - 1; i > 0; i-- {
			j := m.rand.Int31n(int32(i + 1))
			ms[i], ms[j] = ms[j], ms[i]
		}
	}
	if !m.cfg.NoSort {
		if len(pv) > 0 {
			promote(ms, pv[0])
		}
		if te != nil {
			promote(ms, te.m)
		}
	}

	max := player == m.root
	var bestV int64
	if max {
		bestV = MinEval - 1
	} else {
		bestV = MaxEval + 1
	}
	best := m.stack[ply].pv[:0]
	improved := false
	cut := false

	for _, mv := range ms {
		u, err := m.b.Apply(player, mv)
		if err != nil {
			panic(fmt.Sprintf("search applied an ungenerated move %s: %v", floe.FormatMove(mv), err))
		}
		var childpv []floe.Move
		if len(pv) > 0 && mv.Equal(pv[0]) {
			childpv = pv[1:]
		}
		sub, v := m.minimax(m.next(player), ply+1, depth-1, childpv, α, β)
		m.b.UndoMove(player, mv, u)
		if m.interruptible && atomic.LoadInt32(m.cancel) != 0 {
			return nil, 0
		}

		if max {
			if v > bestV {
				bestV = v
				best = append(best[:0], mv)
				best = append(best, sub...)
			}
			if v > α {
				α = v
				improved = true
			}
		} else {
			if v < bestV {
				bestV = v
				best = append(best[:0], mv)
				best = append(best, sub...)
			}
			if v < β {
				β = v
				improved = true
			}
		}
		if α >= β {
			m.st.CutNodes++
			cut = true
			break
		}
	}

	if te := m.ttPut(h); te != nil && len(best) > 0 {
		te.hash = h
		te.depth = depth
		te.m = best[0]
		te.value = bestV
		switch {
		case cut && max:
			te.bound = lowerBound
		case cut:
			te.bound = upperBound
		case improved:
			te.bound = exactBound
		case max:
			te.bound = upperBound
		default:
			te.bound = lowerBound
		}
	}

	return best, bestV
}

func (m *MinimaxAI) next(player int) int {
	return (player + 1) % m.b.Players()
}

// promote moves mv to the front of ms, keeping the order of everything else.
func promote(ms []floe.Move, mv floe.Move) {
	for i := range ms {
		if ms[i].Equal(mv) {
			copy(ms[1:i+1], ms[:i])
			ms[0] = mv
			return
		}
	}
}
