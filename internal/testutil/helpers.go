package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// SequenceRand replays fixed values. Intn returns the next value modulo n,
// Perm and Shuffle keep the identity order.
type SequenceRand struct {
	Values []int
	next   int
}

func (r *SequenceRand) Intn(n int) int {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.next%len(r.Values)]
	r.next++
	return v % n
}

func (r *SequenceRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func (r *SequenceRand) Shuffle(int, func(i, j int)) {}
