package floe

// AllMoves appends every legal move for player to buf and returns it.
//
// Enumeration order is fixed so that search tie-breaking is reproducible:
// placements in row-major cell order; slides by increasing global penguin
// index, then direction-table order, then increasing distance. An empty
// result is the normal skip condition, not an error.
func (b *Board) AllMoves(player int, buf []Move) []Move {
	if b.PlacementPhase() {
		return b.placements(buf)
	}
	for who := 0; who < len(b.penguins); who++ {
		if b.owner[who] != int8(player) {
			continue
		}
		buf = b.slides(int8(who), buf)
	}
	return buf
}

// placements enumerates one-fish cells, the only legal placement targets
// under standard rules. If the board has none left, any fish-bearing
// unoccupied cell is offered instead so the agent can still answer a judge
// that dealt a short-handed board.
func (b *Board) placements(buf []Move) []Move {
	start := len(buf)
	for i, f := range b.fish {
		if f == 1 && b.occ[i] == -1 {
			buf = append(buf, Move{Type: Place, Dest: b.point(i)})
		}
	}
	if len(buf) > start {
		return buf
	}
	for i, f := range b.fish {
		if f >= 1 && b.occ[i] == -1 {
			buf = append(buf, Move{Type: Place, Dest: b.point(i)})
		}
	}
	return buf
}

func (b *Board) slides(who int8, buf []Move) []Move {
	from := b.penguins[who]
	for _, d := range Directions {
		p := from
		for {
			p.Y += d.DY
			p.X += d.DX
			if !b.InBounds(p) {
				break
			}
			i := b.index(p)
			if b.fish[i] == 0 || b.occ[i] != -1 {
				break
			}
			buf = append(buf, Move{Type: Slide, Who: who, Dest: p})
		}
	}
	return buf
}

// HasMove reports whether player has at least one legal move, without
// enumerating them all.
func (b *Board) HasMove(player int) bool {
	if b.PlacementPhase() {
		for i, f := range b.fish {
			if f >= 1 && b.occ[i] == -1 {
				return true
			}
		}
		return false
	}
	for who := 0; who < len(b.penguins); who++ {
		if b.owner[who] != int8(player) {
			continue
		}
		from := b.penguins[who]
		for _, d := range Directions {
			p := Point{from.Y + d.DY, from.X + d.DX}
			if b.InBounds(p) {
				i := b.index(p)
				if b.fish[i] != 0 && b.occ[i] == -1 {
					return true
				}
			}
		}
	}
	return false
}

func (b *Board) point(i int) Point {
	return Point{int8(i / b.width), int8(i % b.width)}
}
