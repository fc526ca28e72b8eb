package command

import (
	"math"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/tidwall/gjson"
)

// FieldType is the JSON shape a command option must have.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldIntList
	FieldString
	FieldObject
)

// Field describes one required option. Min and Max bound integers and the
// elements of integer lists.
type Field struct {
	Name string
	Type FieldType
	Min  int
	Max  int
}

var (
	tileField  = Field{Name: "targetTile", Type: FieldInt, Min: 0, Max: core.LastCoreTile}
	tokenField = Field{Name: "targetTokenIndex", Type: FieldInt, Min: 0, Max: core.MaxTokens - 1}
)

// Schemas lists the required options of every action.
var Schemas = map[core.Action][]Field{
	core.ActionEndTurn:  {},
	core.ActionRollDice: {{Name: "dices", Type: FieldIntList, Min: 0, Max: core.DiceCount - 1}},
	core.ActionPoints:   {{Name: "targetPlayer", Type: FieldString}},
	core.ActionSleep:    {tileField, tokenField},
	core.ActionWater:    {tileField, tokenField},
	core.ActionGrapple:  {tileField, tokenField},
	core.ActionBoot: {
		tileField,
		{Name: "tokenIndexList", Type: FieldIntList, Min: 0, Max: core.MaxTokens - 1},
	},
	core.ActionRepeat: {
		{Name: "targetAction", Type: FieldString},
		{Name: "targetActionOptions", Type: FieldObject},
	},
}

// Validate reports whether opts carries every option action requires.
// Unknown extra keys are ignored.
func Validate(action core.Action, opts gjson.Result) bool {
	fields, ok := Schemas[action]
	if !ok || !opts.IsObject() {
		return false
	}
	for _, f := range fields {
		if !f.matches(opts.Get(f.Name)) {
			return false
		}
	}
	return true
}

func (f Field) matches(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch f.Type {
	case FieldInt:
		return f.inRange(v)
	case FieldString:
		return v.Type == gjson.String
	case FieldObject:
		return v.IsObject()
	case FieldIntList:
		items := v.Array()
		if !v.IsArray() || len(items) == 0 {
			return false
		}
		for _, item := range items {
			if !f.inRange(item) {
				return false
			}
		}
		return true
	}
	return false
}

func (f Field) inRange(v gjson.Result) bool {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return false
	}
	return v.Num >= float64(f.Min) && v.Num <= float64(f.Max)
}
