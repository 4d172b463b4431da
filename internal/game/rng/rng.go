package rng

import (
	"encoding/binary"
	"math/rand/v2"
)

// Stream is a deterministic random stream backed by a seeded ChaCha8
// generator. One game owns exactly one Stream; nothing is shared across
// concurrent games, so identical seeds yield bit-identical draw sequences
// regardless of how many other games are running.
type Stream struct {
	r *rand.Rand
}

// New creates a stream from a single uint64 seed. The 32-byte ChaCha8 key is
// expanded from the seed with splitmix64 steps.
func New(seed uint64) *Stream {
	var key [32]byte
	s := seed
	for i := 0; i < 4; i++ {
		s = splitmix64(s)
		binary.LittleEndian.PutUint64(key[i*8:], s)
	}
	return &Stream{r: rand.New(rand.NewChaCha8(key))}
}

// IntN returns a uniform int in [0, n). Panics if n <= 0.
func (s *Stream) IntN(n int) int {
	return s.r.IntN(n)
}

// Coin returns a fair coin flip.
func (s *Stream) Coin() bool {
	return s.r.IntN(2) == 0
}

// Shuffle performs a Fisher-Yates shuffle over n elements, walking from the
// last index down to 1 and swapping with a uniformly drawn earlier-or-equal
// index. The explicit loop pins the draw order to the reproducibility
// contract.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i >= 1; i-- {
		j := s.r.IntN(i + 1)
		swap(i, j)
	}
}

// DeriveSeed mixes a base seed with a game index to produce a distinct,
// deterministic per-game seed for batch runs.
func DeriveSeed(base uint64, index int) uint64 {
	return splitmix64(base + uint64(index) + 0x9e3779b97f4a7c15)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
