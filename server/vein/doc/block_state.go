package doc

import (
	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/world"
)

// BlockState decodes a block state. The value is either a string such as minecraft:stone[stone_type=granite], or
// an object with a "block" name, an optional "properties" object and an optional "version". States with a version
// are upgraded to the latest block state version.
func BlockState(v any) (world.BlockState, error) {
	if s, ok := v.(string); ok {
		return world.ParseBlockState(s)
	}
	d, ok := As(v)
	if !ok {
		return world.BlockState{}, errors.Newf("expected a block state, got %T", v)
	}
	name, err := d.String("block", "")
	if err != nil {
		return world.BlockState{}, err
	}
	if name == "" {
		return world.BlockState{}, errors.New("block state object requires a \"block\" field")
	}
	var props map[string]any
	if raw, ok := d.Get("properties"); ok {
		p, ok := As(raw)
		if !ok {
			return world.BlockState{}, errors.Newf("field \"properties\": expected an object, got %T", raw)
		}
		props = p
	}
	if !d.Has("version") {
		return world.NewBlockState(name, props), nil
	}
	version, err := d.Int("version", 0)
	if err != nil {
		return world.BlockState{}, err
	}
	return world.UpgradeBlockState(name, props, int32(version)), nil
}

// BlockStates decodes a single block state or a list of block states.
func BlockStates(v any) ([]world.BlockState, error) {
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	states := make([]world.BlockState, 0, len(list))
	for i, e := range list {
		s, err := BlockState(e)
		if err != nil {
			return nil, errors.Wrapf(err, "block state %d", i)
		}
		states = append(states, s)
	}
	return states, nil
}
