package common

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/stretchr/testify/assert"
)

var _ Rand = (*rand.Rand)(nil)
var _ Rand = (*LockedRand)(nil)

func TestLockedRand_Deterministic(t *testing.T) {
	a := NewLockedRand(42)
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		assert.Equal(t, b.Intn(100), a.Intn(100))
	}
	assert.Equal(t, b.Perm(10), a.Perm(10))
}

func TestLockedRand_Concurrent(t *testing.T) {
	r := NewLockedRand(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := r.Intn(6)
				assert.True(t, v >= 0 && v < 6)
			}
		}()
	}
	wg.Wait()
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mx"+Reset, Colorize(core.ColorRed, "x"))
	assert.Equal(t, "x", Colorize(core.Color("pink"), "x"))
	for _, c := range core.AllColors {
		assert.Contains(t, PlayerColors, c)
	}
}
