package command

import (
	"fmt"
	"slices"

	"github.com/mitchelldurbincs/kingdomrun/internal/game/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Envelope is an inbound message whose action name is known but whose
// options have not been checked yet.
type Envelope struct {
	Action core.Action
	raw    gjson.Result
}

// Decode reads the action name of a raw command.
func Decode(data []byte) (Envelope, error) {
	if !gjson.ValidBytes(data) {
		return Envelope{}, core.NewCommandError(core.KindSchema, "invalid command")
	}
	msg := gjson.ParseBytes(data)
	name := msg.Get("action")
	action := core.Action(name.String())
	if name.Type != gjson.String || !action.IsKnown() {
		return Envelope{}, core.NewCommandError(core.KindSchema, "invalid action %s", name.String())
	}
	return Envelope{Action: action, raw: msg}, nil
}

// Parse checks the options against the action schema and builds the typed command.
func (e Envelope) Parse() (Command, error) {
	cmd, ok := build(e.Action, e.raw)
	if !ok {
		return nil, core.SchemaError(e.Action)
	}
	return cmd, nil
}

func build(action core.Action, opts gjson.Result) (Command, bool) {
	if !Validate(action, opts) {
		return nil, false
	}

	switch action {
	case core.ActionRollDice:
		return RollDice{Dices: ints(opts.Get("dices"))}, true
	case core.ActionEndTurn:
		return EndTurn{}, true
	case core.ActionPoints:
		return Points{TargetPlayer: opts.Get("targetPlayer").String()}, true
	case core.ActionSleep:
		return Sleep{tokenTarget(opts)}, true
	case core.ActionWater:
		return Water{tokenTarget(opts)}, true
	case core.ActionGrapple:
		return Grapple{tokenTarget(opts)}, true
	case core.ActionBoot:
		return Boot{
			TargetTile:     int(opts.Get("targetTile").Int()),
			TokenIndexList: ints(opts.Get("tokenIndexList")),
		}, true
	case core.ActionRepeat:
		target := core.Action(opts.Get("targetAction").String())
		if !target.IsRepeatable() {
			return nil, false
		}
		inner, ok := build(target, opts.Get("targetActionOptions"))
		if !ok {
			return nil, false
		}
		return Repeat{TargetAction: target, Target: inner}, true
	}
	return nil, false
}

func tokenTarget(opts gjson.Result) TokenTarget {
	return TokenTarget{
		TargetTile:       int(opts.Get("targetTile").Int()),
		TargetTokenIndex: int(opts.Get("targetTokenIndex").Int()),
	}
}

func ints(v gjson.Result) []int {
	items := v.Array()
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = int(item.Int())
	}
	return out
}

// Encode renders cmd in the wire format accepted by Decode.
func Encode(cmd Command) ([]byte, error) {
	data, err := sjson.SetBytes([]byte(`{}`), "action", string(cmd.Action()))
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}
	opts := cmd.options()
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		data, err = sjson.SetBytes(data, key, opts[key])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
	}
	return data, nil
}

// Chat returns the text of a chat message. Chat messages carry a string
// "chat" field and never reach the engine.
func Chat(data []byte) (string, bool) {
	if !gjson.ValidBytes(data) {
		return "", false
	}
	v := gjson.GetBytes(data, "chat")
	if v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}
