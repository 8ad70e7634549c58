package rule

import (
	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Target is the value tested by block rules: a position in a world that a vein is about to place a block at.
type Target struct {
	World world.BlockReader
	Pos   cube.Pos
}

// Block is a rule over block positions.
type Block = Node[Target]

// Blocks is the Family of block rules, read from the "rules" field of a vein definition.
var Blocks = NewFamily[Target]("rules", nil, nil)

func init() {
	Blocks.Register("stone", constant(func(t Target) bool {
		return world.StoneLike(t.World.Block(t.Pos))
	}))
	Blocks.Register("air", constant(func(t Target) bool {
		return t.World.Block(t.Pos) == world.Air
	}))
	Blocks.Register("solid", constant(func(t Target) bool {
		return world.Solid(t.World.Block(t.Pos))
	}))
	Blocks.Register("replace", replaceRule)
	Blocks.Register("touching", touchingRule)
	Blocks.Register("height", heightRule)
}

func constant(p Predicate[Target]) LeafFunc[Target] {
	return func(doc.Document) (Predicate[Target], error) { return p, nil }
}

// replaceRule matches positions that currently hold one of the blocks listed.
func replaceRule(params doc.Document) (Predicate[Target], error) {
	states, err := blockParam(params, "blocks")
	if err != nil {
		return nil, err
	}
	return func(t Target) bool {
		return states.Contains(t.World.Block(t.Pos))
	}, nil
}

// touchingRule matches positions with between min and max (inclusive) of the six adjacent blocks being one of
// the blocks listed.
func touchingRule(params doc.Document) (Predicate[Target], error) {
	states, err := blockParam(params, "blocks")
	if err != nil {
		return nil, err
	}
	lo, err := params.Int("min", 1)
	if err != nil {
		return nil, err
	}
	hi, err := params.Int("max", 6)
	if err != nil {
		return nil, err
	}
	if lo < 0 || hi > 6 || lo > hi {
		return nil, errors.Newf("touching requires 0 <= min <= max <= 6, got min %d, max %d", lo, hi)
	}
	return func(t Target) bool {
		n := 0
		t.Pos.Neighbours(func(neighbour cube.Pos) {
			if states.Contains(t.World.Block(neighbour)) {
				n++
			}
		})
		return n >= lo && n <= hi
	}, nil
}

// heightRule matches positions with a Y coordinate between min and max (inclusive).
func heightRule(params doc.Document) (Predicate[Target], error) {
	lo, err := params.Int("min", 0)
	if err != nil {
		return nil, err
	}
	hi, err := params.Int("max", 256)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, errors.Newf("height requires min <= max, got min %d, max %d", lo, hi)
	}
	return func(t Target) bool {
		y := t.Pos.Y()
		return y >= lo && y <= hi
	}, nil
}

func blockParam(params doc.Document, key string) (*world.StateSet, error) {
	raw, ok := params.Get(key)
	if !ok {
		return nil, errors.Newf("missing field %q", key)
	}
	states, err := doc.BlockStates(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "field %q", key)
	}
	return world.NewStateSet(states...), nil
}
