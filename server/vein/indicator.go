package vein

import (
	"math/rand/v2"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/vein/weighted"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Indicator is a block placed on the surface above a vein to hint at the ores below.
type Indicator struct {
	// Blocks holds the block states of which one is placed.
	Blocks *weighted.List[world.BlockState]
	// Rarity is the inverse chance of a placed ore producing an indicator.
	Rarity int
	// MaxDepth is the maximum distance from an ore to the surface for an indicator to be placed.
	MaxDepth int
	// IgnoreVegetation allows indicators to replace plants on the surface.
	IgnoreVegetation bool
	// IgnoreLiquids allows indicators to be placed at the bottom of liquids.
	IgnoreLiquids bool
	// BlocksUnder, if not empty, limits the blocks an indicator may be placed on.
	BlocksUnder *world.StateSet
}

func decodeIndicator(v any) (*Indicator, error) {
	d, ok := doc.As(v)
	if !ok {
		return nil, errors.Newf("expected an indicator object, got %T", v)
	}
	raw, ok := d.Get("blocks")
	if !ok {
		return nil, errors.New("indicator requires a \"blocks\" field")
	}
	ind := &Indicator{}
	var err error
	if ind.Blocks, err = decodeWeighted(raw, doc.BlockState); err != nil {
		return nil, errors.Wrap(err, "field \"blocks\"")
	}
	if ind.Blocks.Empty() {
		return nil, errors.New("field \"blocks\" requires at least one block state")
	}
	if ind.Rarity, err = d.Int("rarity", 10); err != nil {
		return nil, err
	}
	if ind.Rarity <= 0 {
		return nil, errors.Newf("indicator rarity must be > 0, got %d", ind.Rarity)
	}
	if ind.MaxDepth, err = d.Int("max_depth", 32); err != nil {
		return nil, err
	}
	if ind.MaxDepth <= 0 {
		return nil, errors.Newf("indicator max_depth must be > 0, got %d", ind.MaxDepth)
	}
	if ind.IgnoreVegetation, err = d.Bool("ignore_vegetation", true); err != nil {
		return nil, err
	}
	if ind.IgnoreLiquids, err = d.Bool("ignore_liquids", false); err != nil {
		return nil, err
	}
	if raw, ok := d.Get("blocks_under"); ok {
		states, err := doc.BlockStates(raw)
		if err != nil {
			return nil, errors.Wrap(err, "field \"blocks_under\"")
		}
		ind.BlocksUnder = world.NewStateSet(states...)
	}
	return ind, nil
}

// Roll checks if a placed ore produces this Indicator.
func (ind *Indicator) Roll(r *rand.Rand) bool {
	return r.IntN(ind.Rarity) == 0
}

// Block draws the block state to place.
func (ind *Indicator) Block(r *rand.Rand) world.BlockState {
	s, _ := ind.Blocks.Get(r)
	return s
}

// Surface searches upwards from an ore at the position passed for the position to place the Indicator at: the
// first free position above the ore within MaxDepth. The bool returned is false if no such position exists, or if
// the block below it is not one the Indicator may be placed on.
func (ind *Indicator) Surface(w world.BlockReader, ore cube.Pos) (cube.Pos, bool) {
	for dy := 1; dy <= ind.MaxDepth+1; dy++ {
		pos := ore.Add(cube.Pos{0, dy, 0})
		s := w.Block(pos)
		switch {
		case s == world.Air, ind.IgnoreVegetation && world.Vegetation(s):
		case world.Liquid(s):
			if !ind.IgnoreLiquids {
				return cube.Pos{}, false
			}
			// The indicator goes at the bottom of the liquid, which must be right above solid ground.
			if !world.Solid(w.Block(pos.Sub(cube.Pos{0, 1, 0}))) {
				continue
			}
		default:
			continue
		}
		below := w.Block(pos.Sub(cube.Pos{0, 1, 0}))
		if !world.Solid(below) || (ind.BlocksUnder.Len() > 0 && !ind.BlocksUnder.Contains(below)) {
			return cube.Pos{}, false
		}
		if ind.Blocks != nil && slices.Contains(ind.Blocks.Values(), below) {
			// The column already has an indicator.
			return cube.Pos{}, false
		}
		return pos, true
	}
	return cube.Pos{}, false
}
