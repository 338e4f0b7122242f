package floe

import "math/rand"

// Generate deals a random board with the standard 3:2:1 mix of one-, two-
// and three-fish tiles, the distribution the physical game uses.
func Generate(width, height, players, perPlayer int, seed int64) *Board {
	r := rand.New(rand.NewSource(seed))
	b := New(width, height, players, perPlayer)
	for i := 0; i < width*height; i++ {
		var n int
		switch v := r.Intn(6); {
		case v < 3:
			n = 1
		case v < 5:
			n = 2
		default:
			n = 3
		}
		b.SetFish(b.point(i), n)
	}
	return b
}
