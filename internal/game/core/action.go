package core

// Action is the name of a command a player can send during a turn.
type Action string

const (
	ActionRollDice Action = "rollDice"
	ActionEndTurn  Action = "endTurn"
	ActionPoints   Action = "points"
	ActionSleep    Action = "sleep"
	ActionWater    Action = "water"
	ActionGrapple  Action = "grapple"
	ActionBoot     Action = "boot"
	ActionRepeat   Action = "repeat"
)

// DiceActions are the faces of an action die, in definition order.
var DiceActions = []Action{
	ActionPoints,
	ActionSleep,
	ActionWater,
	ActionGrapple,
	ActionBoot,
	ActionRepeat,
}

// AllActions lists every action name the engine accepts.
var AllActions = append([]Action{ActionEndTurn, ActionRollDice}, DiceActions...)

// IsKnown reports whether a is one of the accepted action names.
func (a Action) IsKnown() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// IsDiceAction reports whether a can appear on a die face.
func (a Action) IsDiceAction() bool {
	for _, face := range DiceActions {
		if a == face {
			return true
		}
	}
	return false
}

// IsRepeatable reports whether a may be the target of a repeat command.
func (a Action) IsRepeatable() bool {
	return a.IsDiceAction() && a != ActionRepeat
}

func (a Action) String() string { return string(a) }
