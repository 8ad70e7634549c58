package vein

import (
	"fmt"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/vein/rule"
	"github.com/df-mc/oreveins/server/vein/weighted"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Type is the definition of a kind of vein, decoded from a document. Types are immutable after decoding: neither
// the Type nor any of the values it points to may be modified.
type Type struct {
	// Count is the amount of attempts made per chunk to place a vein.
	Count int
	// Rarity is the inverse chance of each attempt succeeding: an attempt succeeds with a chance of 1/Rarity.
	Rarity int
	// MinY and MaxY bound the Y coordinate of vein origins.
	MinY, MaxY int
	// VerticalSize and HorizontalSize are the size of a vein in blocks, the meaning of which depends on the Shape.
	VerticalSize, HorizontalSize int
	// Density scales the chance of ores being placed.
	Density float64

	// Biomes, Dimensions and OriginDistance gate where veins of the Type are placed at all.
	Biomes         *rule.Biome
	Dimensions     *rule.Dimension
	OriginDistance *rule.Distance
	// Rules must all pass for a single ore to be placed.
	Rules []*rule.Block

	// Ores holds the block states placed by veins of the Type.
	Ores *weighted.List[world.BlockState]
	// Indicators holds the surface indicators of the Type. It may be empty.
	Indicators *weighted.List[*Indicator]

	Shape Shape

	oreStates *world.StateSet
}

// Decode decodes a Type from a document. The "type" field selects the Shape and "ore" lists the block states
// placed. All other fields are optional; numeric fields are validated and a single invalid value rejects the whole
// document.
func Decode(d doc.Document) (*Type, error) {
	shapeName, err := d.String("type", "")
	if err != nil {
		return nil, err
	}
	if shapeName == "" {
		return nil, errors.WithHintf(errors.New("missing field \"type\""), "registered shapes: %v", Shapes())
	}
	dec, ok := shapeDecoder(shapeName)
	if !ok {
		return nil, errors.WithHintf(errors.Newf("unknown vein type %q", shapeName), "registered shapes: %v", Shapes())
	}

	t := &Type{
		Biomes:         rule.DefaultBiome,
		Dimensions:     rule.DefaultDimension,
		OriginDistance: rule.DefaultDistance,
		Indicators:     weighted.Empty[*Indicator](),
	}
	if err := t.decodeBounds(d); err != nil {
		return nil, err
	}
	if err := t.decodeRules(d); err != nil {
		return nil, err
	}

	ore, ok := d.Get("ore")
	if !ok {
		return nil, errors.New("missing field \"ore\"")
	}
	if t.Ores, err = decodeWeighted(ore, doc.BlockState); err != nil {
		return nil, errors.Wrap(err, "field \"ore\"")
	}
	if t.Ores.Empty() {
		return nil, errors.New("field \"ore\" requires at least one block state")
	}
	t.oreStates = world.NewStateSet(t.Ores.Values()...)

	if raw, ok := d.Get("indicator"); ok {
		if t.Indicators, err = decodeWeighted(raw, decodeIndicator); err != nil {
			return nil, errors.Wrap(err, "field \"indicator\"")
		}
	}

	if t.Shape, err = dec(d); err != nil {
		return nil, errors.Wrapf(err, "%v shape", shapeName)
	}
	return t, nil
}

// decodeBounds decodes and validates the numeric fields shared by all shapes.
func (t *Type) decodeBounds(d doc.Document) error {
	var err error
	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"count", 1, &t.Count},
		{"rarity", 10, &t.Rarity},
		{"min_y", 16, &t.MinY},
		{"max_y", 64, &t.MaxY},
		{"vertical_size", 8, &t.VerticalSize},
		{"horizontal_size", 15, &t.HorizontalSize},
	}
	for _, f := range ints {
		if *f.dst, err = d.Int(f.key, f.def); err != nil {
			return err
		}
	}
	if t.Density, err = d.Float("density", 20); err != nil {
		return err
	}

	switch {
	case t.Count <= 0:
		return errors.Newf("count must be > 0, got %d", t.Count)
	case t.Rarity <= 0:
		return errors.Newf("rarity must be > 0, got %d", t.Rarity)
	case t.MinY < 0 || t.MaxY > 256 || t.MinY > t.MaxY:
		return errors.Newf("min_y and max_y must be within [0, 256] with min_y <= max_y, got %d and %d", t.MinY, t.MaxY)
	case t.VerticalSize <= 0:
		return errors.Newf("vertical_size must be > 0, got %d", t.VerticalSize)
	case t.HorizontalSize <= 0:
		return errors.Newf("horizontal_size must be > 0, got %d", t.HorizontalSize)
	case !(t.Density > 0):
		return errors.Newf("density must be > 0, got %v", t.Density)
	}
	return nil
}

func (t *Type) decodeRules(d doc.Document) error {
	var err error
	if raw, ok := d.Get(rule.Biomes.Name()); ok {
		if t.Biomes, err = rule.Biomes.Decode(raw); err != nil {
			return err
		}
	}
	if raw, ok := d.Get(rule.Dimensions.Name()); ok {
		if t.Dimensions, err = rule.Dimensions.Decode(raw); err != nil {
			return err
		}
	}
	if raw, ok := d.Get(rule.Distances.Name()); ok {
		if t.OriginDistance, err = rule.Distances.Decode(raw); err != nil {
			return err
		}
	}
	if raw, ok := d.Get(rule.Blocks.Name()); ok {
		if t.Rules, err = rule.Blocks.DecodeList(raw); err != nil {
			return err
		}
	}
	return nil
}

// CreateVeins makes Count attempts to place a vein with its origin in the chunk passed, each succeeding with a
// chance of 1/Rarity. Veins whose origin passes the origin distance rule are appended to dst, which is returned.
func (t *Type) CreateVeins(dst []*Vein, chunk world.ChunkPos, r *rand.Rand, avoidCutoffs bool) []*Vein {
	for i := 0; i < t.Count; i++ {
		if r.IntN(t.Rarity) != 0 {
			continue
		}
		v := t.Shape.NewVein(t, chunk, r, avoidCutoffs)
		if t.IsValidPos(v.Pos) {
			dst = append(dst, v)
		}
	}
	return dst
}

// InRange checks if the block column at the horizontal offset passed from the origin of a vein can hold ores.
func (t *Type) InRange(v *Vein, xOffset, zOffset int) bool {
	return t.Shape.InRange(v, xOffset, zOffset)
}

// ChanceToGenerate returns the chance in [0, 1] that an ore of the vein is placed at the position passed.
func (t *Type) ChanceToGenerate(v *Vein, pos cube.Pos) float64 {
	c := t.Shape.Chance(v, pos)
	if !(c > 0) {
		return 0
	}
	return min(c, 1)
}

// CanGenerateAt checks if all rules of the Type pass for the position passed.
func (t *Type) CanGenerateAt(w world.BlockReader, pos cube.Pos) bool {
	target := rule.Target{World: w, Pos: pos}
	for _, r := range t.Rules {
		if !r.Test(target) {
			return false
		}
	}
	return true
}

// StateToGenerate draws the ore state to place at a position of a vein.
func (t *Type) StateToGenerate(_ *Vein, _ cube.Pos, r *rand.Rand) (world.BlockState, bool) {
	return t.Ores.Get(r)
}

// Indicator draws an indicator of the Type. The bool returned is false if the Type has no indicators.
func (t *Type) Indicator(r *rand.Rand) (*Indicator, bool) {
	return t.Indicators.Get(r)
}

// IsValidPos checks if a vein may have its origin at the position passed.
func (t *Type) IsValidPos(pos cube.Pos) bool {
	return t.OriginDistance.Test(pos)
}

// MatchesDimension checks if veins of the Type generate in the Dimension passed.
func (t *Type) MatchesDimension(d world.Dimension) bool {
	return t.Dimensions.Test(d)
}

// MatchesBiome checks if veins of the Type generate in a biome. The biome is only looked up if the Type has a
// biome rule other than rule.DefaultBiome.
func (t *Type) MatchesBiome(biome func() world.Biome) bool {
	return t.Biomes == rule.DefaultBiome || t.Biomes.Test(biome())
}

// ChunkRadius returns the radius in chunks around a chunk that veins of the Type placed in it may reach.
func (t *Type) ChunkRadius() int {
	return 1 + t.HorizontalSize>>4
}

// OreStates returns the set of all block states veins of the Type may place.
func (t *Type) OreStates() *world.StateSet {
	return t.oreStates
}

// String ...
func (t *Type) String() string {
	return fmt.Sprintf("%v: count %d, rarity %d, y %d-%d, size %d/%d, density %.2f, ores %v",
		t.Shape.Name(), t.Count, t.Rarity, t.MinY, t.MaxY, t.HorizontalSize, t.VerticalSize, t.Density, t.Ores)
}

// decodeWeighted decodes a weighted list. A list of values is decoded to a list holding each value, where object
// values may carry a "weight" (1 if absent). Any other value is decoded to a singleton list.
func decodeWeighted[T any](raw any, elem func(v any) (T, error)) (*weighted.List[T], error) {
	list, ok := raw.([]any)
	if !ok {
		v, err := elem(raw)
		if err != nil {
			return nil, err
		}
		return weighted.Singleton(v), nil
	}
	l := weighted.New[T]()
	for i, e := range list {
		weight := 1.0
		if d, ok := doc.As(e); ok {
			w, err := d.Float("weight", 1)
			if err != nil {
				return nil, errors.Wrapf(err, "entry %d", i)
			}
			if !(w > 0) {
				return nil, errors.Newf("entry %d: weight must be > 0, got %v", i, w)
			}
			weight = w
		}
		v, err := elem(e)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		l.Add(weight, v)
	}
	return l, nil
}
