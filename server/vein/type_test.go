package vein

import (
	"math/rand/v2"
	"testing"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/vein/rule"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coneDoc(extra map[string]any) doc.Document {
	d := doc.Document{"type": "cone", "ore": "minecraft:iron_ore"}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

func mustDecode(t *testing.T, d doc.Document) *Type {
	t.Helper()
	typ, err := Decode(d)
	require.NoError(t, err)
	return typ
}

func TestDecodeDefaults(t *testing.T) {
	typ := mustDecode(t, coneDoc(nil))
	assert.Equal(t, 1, typ.Count)
	assert.Equal(t, 10, typ.Rarity)
	assert.Equal(t, 16, typ.MinY)
	assert.Equal(t, 64, typ.MaxY)
	assert.Equal(t, 8, typ.VerticalSize)
	assert.Equal(t, 15, typ.HorizontalSize)
	assert.Equal(t, 20.0, typ.Density)
	assert.Same(t, rule.DefaultBiome, typ.Biomes)
	assert.Same(t, rule.DefaultDimension, typ.Dimensions)
	assert.Same(t, rule.DefaultDistance, typ.OriginDistance)
	assert.Empty(t, typ.Rules)
	assert.True(t, typ.Indicators.Empty())
	assert.Equal(t, Cone{Shape: 0.5}, typ.Shape)
	assert.Equal(t, []world.BlockState{world.IronOre}, typ.Ores.Values())
	assert.True(t, typ.OreStates().Contains(world.IronOre))
	assert.Equal(t, 1, typ.ChunkRadius())
}

func TestDecodeRejectsInvalidBounds(t *testing.T) {
	for name, extra := range map[string]map[string]any{
		"count":           {"count": 0},
		"rarity":          {"rarity": 0},
		"min_y":           {"min_y": -1},
		"max_y":           {"max_y": 300},
		"min_y > max_y":   {"min_y": 50, "max_y": 40},
		"vertical_size":   {"vertical_size": 0},
		"horizontal_size": {"horizontal_size": 0},
		"density":         {"density": 0},
		"fractional int":  {"count": 1.5},
		"cone shape type": {"shape": "wide"},
		"inverted type":   {"inverted": "yes"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(coneDoc(extra))
			assert.Error(t, err)
		})
	}
}

func TestDecodeRequiredFields(t *testing.T) {
	_, err := Decode(doc.Document{"ore": "minecraft:iron_ore"})
	assert.ErrorContains(t, err, "type")

	_, err = Decode(doc.Document{"type": "pyramid", "ore": "minecraft:iron_ore"})
	assert.ErrorContains(t, err, "pyramid")

	_, err = Decode(doc.Document{"type": "cone"})
	assert.ErrorContains(t, err, "ore")

	_, err = Decode(coneDoc(map[string]any{"ore": []any{}}))
	assert.Error(t, err)
}

func TestDecodeWeightedOres(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{"ore": []any{
		map[string]any{"block": "minecraft:iron_ore", "weight": 3},
		"minecraft:gold_ore",
	}}))
	assert.Equal(t, 2, typ.Ores.Len())
	assert.Equal(t, 4.0, typ.Ores.Weight())
	assert.True(t, typ.OreStates().Contains(world.GoldOre))

	_, err := Decode(coneDoc(map[string]any{"ore": []any{
		map[string]any{"block": "minecraft:iron_ore", "weight": 0},
	}}))
	assert.Error(t, err, "a weight of zero is rejected in documents")
}

func TestDecodeRules(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{
		"rules":      []any{"stone"},
		"dimensions": "the_nether",
		"biomes":     map[string]any{"not": "#ocean"},
	}))
	require.Len(t, typ.Rules, 1)
	assert.True(t, typ.MatchesDimension(world.Nether))
	assert.False(t, typ.MatchesDimension(world.Overworld))
	assert.False(t, typ.MatchesBiome(func() world.Biome { return world.NewBiome("minecraft:ocean", "ocean") }))
	assert.True(t, typ.MatchesBiome(func() world.Biome { return world.NewBiome("minecraft:plains", "plains") }))

	_, err := Decode(coneDoc(map[string]any{"rules": []any{"granite_only"}}))
	var decodeErr *rule.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestMatchesBiomeSkipsLookupForDefault(t *testing.T) {
	typ := mustDecode(t, coneDoc(nil))
	assert.True(t, typ.MatchesBiome(func() world.Biome {
		t.Fatal("biome looked up for a type without biome rule")
		return nil
	}))
}

func TestCanGenerateAt(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{"rules": []any{"stone", map[string]any{"type": "height", "max": 30}}}))
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(60)})
	assert.True(t, typ.CanGenerateAt(w, cube.Pos{0, 20, 0}))
	assert.False(t, typ.CanGenerateAt(w, cube.Pos{0, 40, 0}), "above max height")
	assert.False(t, typ.CanGenerateAt(w, cube.Pos{0, 58, 0}), "dirt is not stone")
}

func TestCreateVeins(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{"count": 5, "rarity": 1}))
	chunk := world.ChunkPos{3, -2}

	veins := typ.CreateVeins(nil, chunk, rand.New(rand.NewPCG(7, 7)), false)
	require.Len(t, veins, 5)
	for _, v := range veins {
		assert.True(t, chunk.Contains(v.Pos), "origin %v outside chunk %v", v.Pos, chunk)
		assert.GreaterOrEqual(t, v.Pos.Y(), typ.MinY)
		assert.Less(t, v.Pos.Y(), typ.MaxY)
		assert.Same(t, typ, v.Type)
	}

	again := typ.CreateVeins(nil, chunk, rand.New(rand.NewPCG(7, 7)), false)
	for i := range veins {
		assert.Equal(t, veins[i].Pos, again[i].Pos)
	}
}

func TestCreateVeinsRespectsOriginDistance(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{
		"count": 10, "rarity": 1,
		"origin_distance": map[string]any{"minimum": 1000},
	}))
	assert.Empty(t, typ.CreateVeins(nil, world.ChunkPos{0, 0}, rand.New(rand.NewPCG(1, 1)), false))
	assert.Len(t, typ.CreateVeins(nil, world.ChunkPos{100, 0}, rand.New(rand.NewPCG(1, 1)), false), 10)
}

func TestAvoidCutoffs(t *testing.T) {
	typ := mustDecode(t, coneDoc(map[string]any{"min_y": 10, "max_y": 50, "vertical_size": 8}))
	r := rand.New(rand.NewPCG(3, 4))
	for range 200 {
		pos := DefaultOrigin(typ, world.ChunkPos{}, r, true)
		assert.GreaterOrEqual(t, pos.Y(), 18)
		assert.Less(t, pos.Y(), 42)
	}

	narrow := mustDecode(t, coneDoc(map[string]any{"min_y": 10, "max_y": 20, "vertical_size": 8}))
	for range 20 {
		assert.Equal(t, 15, DefaultOrigin(narrow, world.ChunkPos{}, r, true).Y(), "collapses to the midpoint")
	}
}
