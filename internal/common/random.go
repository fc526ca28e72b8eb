package common

import (
	"math/rand"
	"sync"
)

// Rand is the subset of *rand.Rand used by path generation, dice rolls and
// color shuffling. Tests pass a seeded *rand.Rand directly.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

// LockedRand is a Rand safe for use by many room goroutines at once.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand seeds a LockedRand.
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *LockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Perm(n)
}

func (r *LockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
