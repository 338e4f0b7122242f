package floe

import (
	"fmt"
	"strconv"
	"strings"
)

// Board dumps use a compact text form consumed by the analyze subcommand and
// the test fixtures:
//
//	width height perPlayer players
//	height rows of fish counts (0 = water)
//	height rows of occupants ('.' or a player digit)
//	one row of captured-fish totals
//
// Penguin indices are assigned in row-major order when parsing, which is
// stable but generally different from the judge's placement order; offline
// analysis does not care.

// FormatBoard renders b in the dump format.
func FormatBoard(b *Board) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%d %d %d %d\n", b.width, b.height, b.perPlayer, b.players)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if x > 0 {
				out.WriteByte(' ')
			}
			fmt.Fprintf(&out, "%d", b.fish[y*b.width+x])
		}
		out.WriteByte('\n')
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if x > 0 {
				out.WriteByte(' ')
			}
			if o := b.occ[y*b.width+x]; o == -1 {
				out.WriteByte('.')
			} else {
				fmt.Fprintf(&out, "%d", o)
			}
		}
		out.WriteByte('\n')
	}
	for p := 0; p < b.players; p++ {
		if p > 0 {
			out.WriteByte(' ')
		}
		fmt.Fprintf(&out, "%d", b.scores[p])
	}
	out.WriteByte('\n')
	return out.String()
}

// ParseBoard parses the dump format produced by FormatBoard.
func ParseBoard(s string) (*Board, error) {
	toks := strings.Fields(s)
	next := func() (string, error) {
		if len(toks) == 0 {
			return "", fmt.Errorf("%w: truncated dump", ErrBadBoard)
		}
		t := toks[0]
		toks = toks[1:]
		return t, nil
	}
	nextInt := func() (int, error) {
		t, err := next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("%w: bad integer %q", ErrBadBoard, t)
		}
		return n, nil
	}

	var hdr [4]int
	for i := range hdr {
		n, err := nextInt()
		if err != nil {
			return nil, err
		}
		hdr[i] = n
	}
	width, height, perPlayer, players := hdr[0], hdr[1], hdr[2], hdr[3]
	if width <= 0 || height <= 0 || players < 2 || players > MaxPlayers || perPlayer < 1 {
		return nil, fmt.Errorf("%w: header %v", ErrBadBoard, hdr)
	}
	b := New(width, height, players, perPlayer)
	for i := 0; i < width*height; i++ {
		n, err := nextInt()
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 3 {
			return nil, fmt.Errorf("%w: fish count %d", ErrBadBoard, n)
		}
		b.SetFish(b.point(i), n)
	}
	for i := 0; i < width*height; i++ {
		t, err := next()
		if err != nil {
			return nil, err
		}
		if t == "." {
			continue
		}
		p, err := strconv.Atoi(t)
		if err != nil || p < 0 || p >= players {
			return nil, fmt.Errorf("%w: occupant %q", ErrBadBoard, t)
		}
		if b.fish[i] == 0 {
			return nil, fmt.Errorf("%w: penguin on removed tile %d", ErrBadBoard, i)
		}
		b.occ[i] = int8(p)
		b.penguins = append(b.penguins, b.point(i))
		b.owner = append(b.owner, int8(p))
		b.hash ^= b.keys.occ(i, p)
	}
	for p := 0; p < players; p++ {
		n, err := nextInt()
		if err != nil {
			return nil, err
		}
		b.scores[p] = n
	}
	if len(toks) != 0 {
		return nil, fmt.Errorf("%w: %d trailing tokens", ErrBadBoard, len(toks))
	}
	return b, nil
}

// FormatMove renders a move: "-" for a pass, "y,x" for a placement,
// "who>y,x" for a slide.
func FormatMove(m Move) string {
	switch m.Type {
	case Pass:
		return "-"
	case Place:
		return fmt.Sprintf("%d,%d", m.Dest.Y, m.Dest.X)
	case Slide:
		return fmt.Sprintf("%d>%d,%d", m.Who, m.Dest.Y, m.Dest.X)
	}
	return fmt.Sprintf("move(%d)", m.Type)
}

// ParseMove parses the format produced by FormatMove.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return Move{Type: Pass}, nil
	}
	m := Move{Type: Place}
	if i := strings.IndexByte(s, '>'); i >= 0 {
		who, err := strconv.Atoi(s[:i])
		if err != nil {
			return Move{}, fmt.Errorf("bad move %q: %v", s, err)
		}
		m.Type = Slide
		m.Who = int8(who)
		s = s[i+1:]
	}
	y, x, ok := strings.Cut(s, ",")
	if !ok {
		return Move{}, fmt.Errorf("bad move %q", s)
	}
	yy, err1 := strconv.Atoi(y)
	xx, err2 := strconv.Atoi(x)
	if err1 != nil || err2 != nil {
		return Move{}, fmt.Errorf("bad move coordinates %q", s)
	}
	m.Dest = Point{int8(yy), int8(xx)}
	return m, nil
}
