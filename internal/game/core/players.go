package core

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var errInvalidPlayers = errors.New("players must be an object keyed by player id")

// Players is the seat list in join order. On the wire it is an object keyed
// by player id whose key order is the join order.
type Players []Player

// MarshalJSON writes the players as an object keyed by id.
func (ps Players) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the keyed object in document order. Snapshots written
// as a plain array are still accepted.
func (ps *Players) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errInvalidPlayers
	}
	res := gjson.ParseBytes(data)
	switch {
	case res.Type == gjson.Null:
		*ps = nil
		return nil
	case res.IsArray():
		var list []Player
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*ps = list
		return nil
	case !res.IsObject():
		return errInvalidPlayers
	}

	var (
		out Players
		err error
	)
	res.ForEach(func(key, value gjson.Result) bool {
		var p Player
		if err = json.Unmarshal([]byte(value.Raw), &p); err != nil {
			return false
		}
		if p.ID == "" {
			p.ID = key.String()
		}
		out = append(out, p)
		return true
	})
	if err != nil {
		return err
	}
	*ps = out
	return nil
}
