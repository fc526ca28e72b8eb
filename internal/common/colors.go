package common

import "github.com/mitchelldurbincs/kingdomrun/internal/game/core"

// ANSI escape sequences used by the terminal path renderer.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"
)

// PlayerColors maps a token color to its ANSI foreground sequence.
var PlayerColors = map[core.Color]string{
	core.ColorBlue:   "\033[34m",
	core.ColorRed:    "\033[31m",
	core.ColorGreen:  "\033[32m",
	core.ColorYellow: "\033[33m",
}

// Tile backgrounds
var TileColors = map[core.TileType]string{
	core.TileStart:  "\033[47m",
	core.TileGround: "\033[43m",
	core.TileWater:  "\033[44m",
	core.TileFinish: "\033[45m",
}

// Colorize wraps s in the sequence for c. Unknown colors are returned unchanged.
func Colorize(c core.Color, s string) string {
	seq, ok := PlayerColors[c]
	if !ok {
		return s
	}
	return seq + s + Reset
}
