package floe

import "fmt"

type MoveType byte

const (
	// Pass is the designated no-legal-move outcome. It is never produced
	// by AllMoves and never applied to a board; it exists so that search
	// and protocol code can hand the skip condition around as a value.
	Pass MoveType = 1 + iota
	Place
	Slide
)

// Move is either a Placement of a new penguin at Dest, or a Slide of the
// penguin with global index Who to Dest. Moves are value objects; the slide
// origin lives on the board and is recorded in the Undo when applied.
type Move struct {
	Type MoveType
	Who  int8
	Dest Point
}

func (m Move) Equal(o Move) bool {
	if m.Type != o.Type {
		return false
	}
	if m.Type == Slide && m.Who != o.Who {
		return false
	}
	return m.Type == Pass || m.Dest == o.Dest
}

// Undo records exactly what Apply changed, so that the search can roll a
// board back without copying it.
type Undo struct {
	From Point
	Fish int8
}

// Apply mutates the board by m, played by player, and returns the undo
// record. A move that violates phase, ownership, occupancy or path
// constraints is a caller bug (search must only apply generated moves); it
// returns an ErrIllegalMove-wrapped error and leaves the board untouched.
func (b *Board) Apply(player int, m Move) (Undo, error) {
	switch m.Type {
	case Place:
		return b.applyPlace(player, m)
	case Slide:
		return b.applySlide(player, m)
	}
	return Undo{}, fmt.Errorf("%w: apply of move type %d", ErrIllegalMove, m.Type)
}

func (b *Board) applyPlace(player int, m Move) (Undo, error) {
	if !b.PlacementPhase() {
		return Undo{}, fmt.Errorf("%w: placement after phase end", ErrIllegalMove)
	}
	if !b.InBounds(m.Dest) {
		return Undo{}, fmt.Errorf("%w: placement off board at (%d,%d)", ErrIllegalMove, m.Dest.Y, m.Dest.X)
	}
	i := b.index(m.Dest)
	if b.fish[i] == 0 {
		return Undo{}, fmt.Errorf("%w: placement on removed tile (%d,%d)", ErrIllegalMove, m.Dest.Y, m.Dest.X)
	}
	if b.occ[i] != -1 {
		return Undo{}, fmt.Errorf("%w: placement on occupied tile (%d,%d)", ErrIllegalMove, m.Dest.Y, m.Dest.X)
	}
	b.occ[i] = int8(player)
	b.penguins = append(b.penguins, m.Dest)
	b.owner = append(b.owner, int8(player))
	b.hash ^= b.keys.occ(i, player)
	return Undo{}, nil
}

func (b *Board) applySlide(player int, m Move) (Undo, error) {
	if b.PlacementPhase() {
		return Undo{}, fmt.Errorf("%w: slide during placement", ErrIllegalMove)
	}
	if m.Who < 0 || int(m.Who) >= len(b.penguins) || b.owner[m.Who] != int8(player) {
		return Undo{}, fmt.Errorf("%w: player %d does not own penguin %d", ErrIllegalMove, player, m.Who)
	}
	from := b.penguins[m.Who]
	if err := b.checkPath(from, m.Dest); err != nil {
		return Undo{}, err
	}
	fi := b.index(from)
	ti := b.index(m.Dest)
	u := Undo{From: from, Fish: b.fish[fi]}

	b.scores[player] += int(b.fish[fi])
	b.hash ^= b.keys.fish(fi, int(b.fish[fi])) ^
		b.keys.occ(fi, player) ^ b.keys.occ(ti, player)
	b.fish[fi] = 0
	b.occ[fi] = -1
	b.occ[ti] = int8(player)
	b.penguins[m.Who] = m.Dest
	return u, nil
}

// UndoMove reverses Apply given the same move, player and returned record,
// restoring the board bit for bit.
func (b *Board) UndoMove(player int, m Move, u Undo) {
	switch m.Type {
	case Place:
		i := b.index(m.Dest)
		b.occ[i] = -1
		b.penguins = b.penguins[:len(b.penguins)-1]
		b.owner = b.owner[:len(b.owner)-1]
		b.hash ^= b.keys.occ(i, player)
	case Slide:
		fi := b.index(u.From)
		ti := b.index(m.Dest)
		b.scores[player] -= int(u.Fish)
		b.fish[fi] = u.Fish
		b.occ[fi] = int8(player)
		b.occ[ti] = -1
		b.penguins[m.Who] = u.From
		b.hash ^= b.keys.fish(fi, int(u.Fish)) ^
			b.keys.occ(fi, player) ^ b.keys.occ(ti, player)
	}
}

// checkPath verifies that to is reachable from from by one straight slide
// over fish-bearing, unoccupied cells.
func (b *Board) checkPath(from, to Point) error {
	if !b.InBounds(to) || (from == to) {
		return fmt.Errorf("%w: slide to (%d,%d)", ErrIllegalMove, to.Y, to.X)
	}
	dy := sign(to.Y - from.Y)
	dx := sign(to.X - from.X)
	ok := false
	for _, d := range Directions {
		if d.DY == dy && d.DX == dx {
			ok = true
			break
		}
	}
	// Straightness: equal steps on any moving axis.
	if !ok ||
		(dy != 0 && dx != 0 && to.Y-from.Y != to.X-from.X) {
		return fmt.Errorf("%w: slide (%d,%d)->(%d,%d) is not a hex line", ErrIllegalMove, from.Y, from.X, to.Y, to.X)
	}
	p := from
	for {
		p.Y += dy
		p.X += dx
		i := b.index(p)
		if b.fish[i] == 0 || b.occ[i] != -1 {
			return fmt.Errorf("%w: slide (%d,%d)->(%d,%d) crosses (%d,%d)", ErrIllegalMove,
				from.Y, from.X, to.Y, to.X, p.Y, p.X)
		}
		if p == to {
			return nil
		}
	}
}

func sign(v int8) int8 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
