package core

// TileType is the kind of a path tile.
type TileType string

const (
	TileStart  TileType = "start"
	TileGround TileType = "ground"
	TileWater  TileType = "water"
	TileFinish TileType = "finish"
)

const (
	// MaxTokens is the capacity of start, ground and water tiles.
	MaxTokens = 4
	// FinishMaxTokens is the capacity of the finish tile.
	FinishMaxTokens = 8
	// PathLength is the number of tiles in every generated path.
	PathLength = 16
	// LastTile is the index of the finish tile.
	LastTile = PathLength - 1
	// StartTiles is the number of start tiles at the head of the path.
	StartTiles = 4
	// CoreTiles is the number of ground/water tiles between start and finish.
	CoreTiles = 10
	// FirstCoreTile is the index of the first ground/water tile.
	FirstCoreTile = StartTiles
	// LastCoreTile is the index of the last ground/water tile.
	LastCoreTile = FirstCoreTile + CoreTiles - 1
)

// FakePlayerID owns the filler tokens placed on empty seats when a game starts.
const FakePlayerID = "fake"

// Token is a playing piece sitting on a tile.
type Token struct {
	Color    Color  `json:"color"`
	PlayerID string `json:"playerId"`
	Awake    bool   `json:"awake"`
}

// Tile represents a single cell of the path.
// Tokens are kept in arrival order; the finish tile scores by that order.
// Length is the tile capacity, a zero length disables the tile as a destination.
type Tile struct {
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Value  int      `json:"value"`
	Type   TileType `json:"type"`
	Tokens []Token  `json:"tokens"`
	Length int      `json:"length"`
}

// Path is the fixed board: 4 start tiles, 10 core tiles and 2 finish tiles.
type Path [PathLength]Tile

// GridSize is the bounding box of a recentered path.
type GridSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// NewTile returns an empty tile with the default capacity for its type.
func NewTile(x, y, value int, tileType TileType) Tile {
	length := MaxTokens
	if tileType == TileFinish {
		length = FinishMaxTokens
	}
	return Tile{X: x, Y: y, Value: value, Type: tileType, Tokens: []Token{}, Length: length}
}

func (t *Tile) IsWater() bool  { return t.Type == TileWater }
func (t *Tile) IsFinish() bool { return t.Type == TileFinish }
func (t *Tile) IsEmpty() bool  { return len(t.Tokens) == 0 }

// IsFull reports whether the tile holds as many tokens as its capacity.
func (t *Tile) IsFull() bool { return len(t.Tokens) >= t.Length }

// HasRoom reports whether a token may land on the tile.
func (t *Tile) HasRoom() bool { return t.Length > 0 && len(t.Tokens) < t.Length }

// Coordinate returns the tile position on the grid.
func (t *Tile) Coordinate() Coordinate { return Coordinate{X: t.X, Y: t.Y} }

// HasToken reports whether tokenIndex addresses an existing token on the tile.
func (t *Tile) HasToken(tokenIndex int) bool {
	return tokenIndex >= 0 && tokenIndex < len(t.Tokens)
}

// CountFor returns how many tokens on the tile belong to playerID.
func (t *Tile) CountFor(playerID string) int {
	n := 0
	for _, tok := range t.Tokens {
		if tok.PlayerID == playerID {
			n++
		}
	}
	return n
}

// Finish returns the finish tile.
func (p *Path) Finish() *Tile { return &p[LastTile] }

// InRange reports whether idx is a valid tile index.
func (p *Path) InRange(idx int) bool { return idx >= 0 && idx < PathLength }

// GridSize computes the bounding box of the path.
func (p *Path) GridSize() GridSize {
	size := GridSize{}
	for i := range p {
		if p[i].X >= size.W {
			size.W = p[i].X + 1
		}
		if p[i].Y >= size.H {
			size.H = p[i].Y + 1
		}
	}
	return size
}

// NextAvailableTile returns the first tile at or after start that can take a
// token, or -1 when none exists.
func (p *Path) NextAvailableTile(start int) int {
	for i := max(start, 0); i < PathLength; i++ {
		if p[i].HasRoom() {
			return i
		}
	}
	return -1
}

// NextWaterTile returns the first water tile at or after start with fewer
// than MaxTokens tokens, or -1.
func (p *Path) NextWaterTile(start int) int {
	for i := max(start, 0); i < PathLength; i++ {
		if p[i].IsWater() && len(p[i].Tokens) < MaxTokens {
			return i
		}
	}
	return -1
}

// NextOccupiedTile returns the first tile at or after start holding at least
// one token, or -1.
func (p *Path) NextOccupiedTile(start int) int {
	for i := max(start, 0); i < PathLength; i++ {
		if !p[i].IsEmpty() {
			return i
		}
	}
	return -1
}
