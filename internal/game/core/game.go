package core

import "time"

// Color identifies a player's tokens.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
)

// AllColors is the color set a new game shuffles into its queue.
var AllColors = []Color{ColorBlue, ColorRed, ColorGreen, ColorYellow}

// Status is the lifecycle status of a game.
type Status string

const (
	StatusOpen     Status = "open"
	StatusStarted  Status = "started"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

const (
	// MaxPlayers is the number of seats in a game.
	MaxPlayers = 4
	// DiceCount is the number of action dice.
	DiceCount = 4
	// MaxRolls caps dice rolls per turn and per die.
	MaxRolls = 2
	// MaxActionPlays caps how often one action may be played in a turn.
	MaxActionPlays = 2
	// StartingPoints is the wagerable balance of a new player.
	StartingPoints = 6
)

// Dice is one action die. An empty Value means the die has not been rolled.
// RepeatValue records the action a played repeat die was resolved against.
type Dice struct {
	Value       Action `json:"value"`
	Rolls       int    `json:"rolls"`
	Played      bool   `json:"played"`
	RepeatValue Action `json:"repeatValue"`
}

// IsRolled reports whether the die shows an action.
func (d Dice) IsRolled() bool { return d.Value != "" }

// Player is a seated participant. PathPoints is derived from the path.
type Player struct {
	ID         string `json:"id"`
	Points     int    `json:"points"`
	PathPoints int    `json:"pathPoints"`
	Color      Color  `json:"color"`
	Connected  bool   `json:"connected"`
}

// Total is the score used to pick a winner.
func (p Player) Total() int { return p.Points + p.PathPoints }

// Turn tracks the active player's rolls and per-action play counts.
type Turn struct {
	PlayerID string         `json:"playerId"`
	Rolls    int            `json:"rolls"`
	Actions  map[Action]int `json:"actions"`
}

// Winner is set when the game finishes.
type Winner struct {
	PlayerID string `json:"playerId"`
	Points   int    `json:"points"`
}

// Game is the authoritative snapshot of one game.
// Players are kept in join order, which is also the turn order.
type Game struct {
	ID        string          `json:"id"`
	StartDate time.Time       `json:"startDate"`
	Path      Path            `json:"path"`
	GridSize  GridSize        `json:"gridSize"`
	Dices     [DiceCount]Dice `json:"dices"`
	Colors    []Color         `json:"colors"`
	Players   Players         `json:"players"`
	Status    Status          `json:"status"`
	Turn      Turn            `json:"turn"`
	Winner    *Winner         `json:"winner,omitempty"`
}

// NewTurn returns a fresh turn for playerID with every dice action zeroed.
func NewTurn(playerID string) Turn {
	actions := make(map[Action]int, len(DiceActions))
	for _, a := range DiceActions {
		actions[a] = 0
	}
	return Turn{PlayerID: playerID, Actions: actions}
}

// ResetDices returns the dice to their unrolled state.
func (g *Game) ResetDices() {
	for i := range g.Dices {
		g.Dices[i] = Dice{}
	}
}

// Player returns the player with the given id.
func (g *Game) Player(id string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// PlayerIndex returns the join-order position of id, or -1.
func (g *Game) PlayerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// AllConnected reports whether every seated player is connected.
// It is true for a game without players.
func (g *Game) AllConnected() bool {
	for _, p := range g.Players {
		if !p.Connected {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so that handlers can mutate freely.
func (g *Game) Clone() *Game {
	c := *g
	for i := range c.Path {
		c.Path[i].Tokens = append([]Token{}, g.Path[i].Tokens...)
	}
	c.Colors = append([]Color{}, g.Colors...)
	c.Players = append(Players{}, g.Players...)
	c.Turn.Actions = make(map[Action]int, len(g.Turn.Actions))
	for k, v := range g.Turn.Actions {
		c.Turn.Actions[k] = v
	}
	if g.Winner != nil {
		w := *g.Winner
		c.Winner = &w
	}
	return &c
}
