package judge

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Scanner reads the judge's whitespace-separated integer stream; line
// boundaries carry no meaning, exactly as in the reference harness.
type Scanner struct {
	s *bufio.Scanner
}

func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &Scanner{s: s}
}

// Int returns the next integer. io.EOF is returned as-is so callers can
// distinguish a clean end of stream from a malformed token.
func (s *Scanner) Int() (int, error) {
	if !s.s.Scan() {
		if err := s.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	n, err := strconv.Atoi(s.s.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: bad token %q", ErrProtocol, s.s.Text())
	}
	return n, nil
}
