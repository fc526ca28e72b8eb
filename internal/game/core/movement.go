package core

import "slices"

// AddToken appends a token to the tile at idx.
func (p *Path) AddToken(idx int, token Token) {
	p[idx].Tokens = append(p[idx].Tokens, token)
}

// RemoveTokens removes the tokens at the given indexes from the tile at idx,
// keeping the remaining tokens in their original order.
func (p *Path) RemoveTokens(idx int, tokenIndexes ...int) {
	kept := make([]Token, 0, len(p[idx].Tokens))
	for i, tok := range p[idx].Tokens {
		if !slices.Contains(tokenIndexes, i) {
			kept = append(kept, tok)
		}
	}
	p[idx].Tokens = kept
}

// MoveToken moves one token from tile `from` to the end of tile `to`.
func (p *Path) MoveToken(from, tokenIndex, to int) {
	token := p[from].Tokens[tokenIndex]
	p.RemoveTokens(from, tokenIndex)
	p.AddToken(to, token)
}

// RemovePlayerTokens strips every token owned by playerID from the path.
func (p *Path) RemovePlayerTokens(playerID string) {
	for i := range p {
		kept := p[i].Tokens[:0:0]
		for _, tok := range p[i].Tokens {
			if tok.PlayerID != playerID {
				kept = append(kept, tok)
			}
		}
		p[i].Tokens = kept
	}
}

// PlaceStartTokens puts one awake token of the given color on each start tile.
func (p *Path) PlaceStartTokens(color Color, playerID string) {
	for i := 0; i < StartTiles; i++ {
		p.AddToken(i, Token{Color: color, PlayerID: playerID, Awake: true})
	}
}
