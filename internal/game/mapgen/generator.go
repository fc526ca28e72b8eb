package mapgen

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

// ErrAttemptsExhausted is returned when no valid path was found within MaxAttempts.
var ErrAttemptsExhausted = errors.New("path generation attempts exhausted")

// WaterTiles is the number of core tiles turned into water.
const WaterTiles = 3

// CoreValues are assigned to the core tiles in path order.
var CoreValues = [core.CoreTiles]int{2, 2, 3, 3, 4, 4, 5, 5, 6, 6}

// startOffsets are the fixed start tile positions, in path order.
var startOffsets = [core.StartTiles]core.Coordinate{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

// seedTile is the first core tile; the random walk grows from it.
var seedTile = core.Coordinate{X: 1, Y: 2}

// PathConfig holds configuration for path generation
type PathConfig struct {
	// MaxAttempts bounds the number of walk restarts. Zero or less means unbounded.
	MaxAttempts int
	// MaxY is the largest y a recentered path may reach.
	MaxY int
}

// DefaultPathConfig returns the configuration used by live games
func DefaultPathConfig() PathConfig {
	return PathConfig{
		MaxAttempts: 10000,
		MaxY:        5,
	}
}

// Generator builds paths with an injected RNG
type Generator struct {
	config PathConfig
	rng    common.Rand
}

// NewGenerator creates a new path generator
func NewGenerator(config PathConfig, rng common.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GeneratePath returns a fresh path and its grid size.
func (g *Generator) GeneratePath() (core.Path, core.GridSize, error) {
	for attempt := 0; g.config.MaxAttempts <= 0 || attempt < g.config.MaxAttempts; attempt++ {
		coords, ok := g.tryShape()
		if !ok {
			continue
		}

		path := g.buildPath(coords)
		return path, path.GridSize(), nil
	}
	return core.Path{}, core.GridSize{}, fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, g.config.MaxAttempts)
}

// tryShape produces the recentered coordinates of all 16 tiles, or false when
// the walk got stuck or the shape is too tall.
func (g *Generator) tryShape() ([core.PathLength]core.Coordinate, bool) {
	var coords [core.PathLength]core.Coordinate

	occupied := make(map[core.Coordinate]bool, core.PathLength)
	for i, c := range startOffsets {
		coords[i] = c
		occupied[c] = true
	}

	walk := g.walkCore(occupied)
	if walk == nil {
		return coords, false
	}
	copy(coords[core.FirstCoreTile:], walk)

	last, beforeLast := walk[len(walk)-1], walk[len(walk)-2]
	dir := beforeLast.DirectionTo(last)
	overflow := last.Move(dir)
	finish := overflow.Move(dir)
	if occupied[overflow] || occupied[finish] {
		return coords, false
	}
	coords[core.LastTile-1] = overflow
	coords[core.LastTile] = finish

	recenter(coords[:])
	for _, c := range coords {
		if c.Y > g.config.MaxY {
			return coords, false
		}
	}
	return coords, true
}

// walkCore grows CoreTiles tiles from the seed, marking them in occupied.
// It returns nil when the walk runs out of open neighbors, including when
// the last core tile has none left.
func (g *Generator) walkCore(occupied map[core.Coordinate]bool) []core.Coordinate {
	walk := make([]core.Coordinate, 0, core.CoreTiles)
	walk = append(walk, seedTile)
	occupied[seedTile] = true

	for len(walk) < core.CoreTiles {
		candidates := openNeighbors(walk[len(walk)-1], occupied)
		if len(candidates) == 0 {
			return nil
		}
		next := candidates[g.rng.Intn(len(candidates))]
		occupied[next] = true
		walk = append(walk, next)
	}
	if !hasExit(walk[len(walk)-1], occupied) {
		return nil
	}
	return walk
}

// hasExit reports whether the walk could take one more step from c.
func hasExit(c core.Coordinate, occupied map[core.Coordinate]bool) bool {
	return len(openNeighbors(c, occupied)) > 0
}

// openNeighbors returns the free neighbors of c that would keep exactly three
// free neighbors of their own once entered.
func openNeighbors(c core.Coordinate, occupied map[core.Coordinate]bool) []core.Coordinate {
	var open []core.Coordinate
	for _, n := range c.Neighbors() {
		if occupied[n] {
			continue
		}
		if freeNeighbors(n, occupied) == 3 {
			open = append(open, n)
		}
	}
	return open
}

func freeNeighbors(c core.Coordinate, occupied map[core.Coordinate]bool) int {
	free := 0
	for _, n := range c.Neighbors() {
		if !occupied[n] {
			free++
		}
	}
	return free
}

// recenter shifts coords so the minimum x and y are zero.
func recenter(coords []core.Coordinate) {
	minX, minY := coords[0].X, coords[0].Y
	for _, c := range coords[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	shift := core.Coordinate{X: -minX, Y: -minY}
	for i := range coords {
		coords[i] = coords[i].Add(shift)
	}
}

// buildPath types the tiles, places water and assigns core values.
func (g *Generator) buildPath(coords [core.PathLength]core.Coordinate) core.Path {
	var path core.Path

	water := g.pickWater()
	for i, c := range coords {
		switch {
		case i < core.FirstCoreTile:
			path[i] = core.NewTile(c.X, c.Y, 0, core.TileStart)
		case i <= core.LastCoreTile:
			tileType := core.TileGround
			if water[i-core.FirstCoreTile] {
				tileType = core.TileWater
			}
			path[i] = core.NewTile(c.X, c.Y, CoreValues[i-core.FirstCoreTile], tileType)
		default:
			path[i] = core.NewTile(c.X, c.Y, 0, core.TileFinish)
		}
	}
	// The tile before the finish only ever holds finish overflow.
	path[core.LastTile-1].Length = 0

	return path
}

// pickWater draws WaterTiles core indices with no two of them adjacent.
func (g *Generator) pickWater() [core.CoreTiles]bool {
	for {
		var water [core.CoreTiles]bool
		for _, idx := range g.rng.Perm(core.CoreTiles)[:WaterTiles] {
			water[idx] = true
		}
		if validWater(water) {
			return water
		}
	}
}

func validWater(water [core.CoreTiles]bool) bool {
	for i := 1; i < len(water); i++ {
		if water[i] && water[i-1] {
			return false
		}
	}
	return true
}
