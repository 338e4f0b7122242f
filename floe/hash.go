package floe

import "math/rand"

// zobrist holds the random keys backing incremental board hashing. Keys are
// derived from a fixed seed so that equal boards hash equally across
// processes, which keeps tests and analysis dumps reproducible.
type zobrist struct {
	keys []uint64
}

const keysPerCell = 4 + MaxPlayers

func newZobrist(cells int) *zobrist {
	r := rand.New(rand.NewSource(0x4d61))
	z := &zobrist{keys: make([]uint64, cells*keysPerCell)}
	for i := range z.keys {
		z.keys[i] = uint64(r.Int63())<<1 | uint64(r.Int63n(2))
	}
	return z
}

// fish returns the key for cell i holding n fish. The zero-fish key is zero
// so that an all-water board hashes to zero.
func (z *zobrist) fish(i, n int) uint64 {
	if n == 0 {
		return 0
	}
	return z.keys[i*keysPerCell+n-1]
}

// occ returns the key for player standing on cell i.
func (z *zobrist) occ(i, player int) uint64 {
	return z.keys[i*keysPerCell+4+player]
}
