package floe

import "errors"

// MaxPlayers is the largest player count the judge protocol admits.
const MaxPlayers = 4

// Point is a cell coordinate, row-major, matching the judge's (y, x) order.
type Point struct {
	Y, X int8
}

// Dir is one of the six hex directions, encoded on the rectangular grid the
// judge uses: the two diagonals (-1,-1) and (1,1) complete the hex adjacency.
type Dir struct {
	DY, DX int8
}

var Directions = [6]Dir{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
	{-1, -1},
	{1, 1},
}

// Board is the full game state: per-cell fish counts (0 = removed), per-cell
// occupancy, the global penguin list in placement order (the judge identifies
// penguins by index into this list), and per-player captured-fish totals.
//
// A Board is built once from the judge's init message and then mutated in
// place by Apply/Undo for the rest of the game.
type Board struct {
	width, height int
	players       int
	perPlayer     int

	fish []int8
	occ  []int8

	penguins []Point
	owner    []int8
	scores   []int

	hash uint64
	keys *zobrist
}

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrBadBoard    = errors.New("bad board")
)

// New returns an empty board; fish counts start at zero (removed) and are
// filled in with SetFish while consuming the init message.
func New(width, height, players, perPlayer int) *Board {
	b := &Board{
		width:     width,
		height:    height,
		players:   players,
		perPlayer: perPlayer,
		fish:      make([]int8, width*height),
		occ:       make([]int8, width*height),
		scores:    make([]int, players),
		keys:      newZobrist(width * height),
	}
	for i := range b.occ {
		b.occ[i] = -1
	}
	return b
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) Players() int   { return b.players }
func (b *Board) PerPlayer() int { return b.perPlayer }

func (b *Board) index(p Point) int {
	return int(p.Y)*b.width + int(p.X)
}

func (b *Board) InBounds(p Point) bool {
	return p.Y >= 0 && int(p.Y) < b.height && p.X >= 0 && int(p.X) < b.width
}

// FishAt returns the fish count at p; 0 means the tile is removed.
func (b *Board) FishAt(p Point) int {
	return int(b.fish[b.index(p)])
}

// Occupant returns the player standing at p, or -1.
func (b *Board) Occupant(p Point) int {
	return int(b.occ[b.index(p)])
}

// SetFish writes the initial fish count for a cell. It is only meaningful
// while building the board from the init message, before any penguin exists.
func (b *Board) SetFish(p Point, n int) {
	i := b.index(p)
	b.hash ^= b.keys.fish(i, int(b.fish[i])) ^ b.keys.fish(i, n)
	b.fish[i] = int8(n)
}

// NumPenguins returns how many penguins have been placed so far, by anyone.
func (b *Board) NumPenguins() int { return len(b.penguins) }

// Penguin returns the position of the penguin with the given global index.
func (b *Board) Penguin(who int) Point { return b.penguins[who] }

// Owner returns the player owning the penguin with the given global index.
func (b *Board) Owner(who int) int { return int(b.owner[who]) }

// Score returns the fish captured by player so far.
func (b *Board) Score(player int) int { return b.scores[player] }

// PlacementPhase reports whether penguins are still being distributed.
func (b *Board) PlacementPhase() bool {
	return len(b.penguins) < b.players*b.perPlayer
}

// RemainingFish counts fish still on the board, including cells a penguin is
// standing on (those are captured only when the penguin slides away).
func (b *Board) RemainingFish() int {
	total := 0
	for _, f := range b.fish {
		total += int(f)
	}
	return total
}

func (b *Board) Hash() uint64 { return b.hash }

// Clone returns an independent copy sharing only the (immutable) hash keys.
func (b *Board) Clone() *Board {
	c := *b
	c.fish = append([]int8(nil), b.fish...)
	c.occ = append([]int8(nil), b.occ...)
	c.penguins = append([]Point(nil), b.penguins...)
	c.owner = append([]int8(nil), b.owner...)
	c.scores = append([]int(nil), b.scores...)
	return &c
}

// Equal reports bit-for-bit equality of the game state.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height ||
		b.players != o.players || b.perPlayer != o.perPlayer {
		return false
	}
	if b.hash != o.hash || len(b.penguins) != len(o.penguins) {
		return false
	}
	for i := range b.fish {
		if b.fish[i] != o.fish[i] || b.occ[i] != o.occ[i] {
			return false
		}
	}
	for i := range b.penguins {
		if b.penguins[i] != o.penguins[i] || b.owner[i] != o.owner[i] {
			return false
		}
	}
	for i := range b.scores {
		if b.scores[i] != o.scores[i] {
			return false
		}
	}
	return true
}

// Terminal reports whether the game is over: movement phase, and no player
// has any legal move left.
func (b *Board) Terminal() bool {
	if b.PlacementPhase() {
		return false
	}
	for p := 0; p < b.players; p++ {
		if b.HasMove(p) {
			return false
		}
	}
	return true
}
