package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
)

const emptySymbol = "·"

// RenderOptions controls terminal output
type RenderOptions struct {
	// Color enables ANSI escape sequences.
	Color bool
}

// RenderPath draws the path as a grid of tile indexes followed by one line
// per tile listing its tokens. Awake tokens are shown with an upper case
// color initial, asleep ones in lower case.
func RenderPath(g *core.Game, opts RenderOptions) string {
	var sb strings.Builder

	cells := make(map[core.Coordinate]int, core.PathLength)
	for i := range g.Path {
		cells[g.Path[i].Coordinate()] = i
	}

	sb.WriteString("   ")
	for x := 0; x < g.GridSize.W; x++ {
		sb.WriteString(fmt.Sprintf("%4d", x))
	}
	sb.WriteString("\n")

	for y := 0; y < g.GridSize.H; y++ {
		sb.WriteString(fmt.Sprintf("%2d ", y))
		for x := 0; x < g.GridSize.W; x++ {
			idx, ok := cells[core.Coordinate{X: x, Y: y}]
			if !ok {
				sb.WriteString("   " + emptySymbol)
				continue
			}
			cell := fmt.Sprintf(" %02d ", idx)
			if opts.Color {
				cell = common.TileColors[g.Path[idx].Type] + cell + common.Reset
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for i := range g.Path {
		tile := &g.Path[i]
		sb.WriteString(fmt.Sprintf("%2d %-6s %d %s\n", i, tile.Type, tile.Value, renderTokens(tile.Tokens, opts)))
	}

	return sb.String()
}

func renderTokens(tokens []core.Token, opts RenderOptions) string {
	if len(tokens) == 0 {
		return emptySymbol
	}
	symbols := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		s := tokenSymbol(tok)
		if opts.Color {
			s = common.Colorize(tok.Color, s)
		}
		symbols = append(symbols, s)
	}
	return strings.Join(symbols, " ")
}

func tokenSymbol(tok core.Token) string {
	if tok.Color == "" {
		return "?"
	}
	initial := string(tok.Color)[:1]
	if tok.Awake {
		return strings.ToUpper(initial)
	}
	return initial
}
