package rule

import (
	"testing"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDistanceAcceptsEverything(t *testing.T) {
	for _, pos := range []cube.Pos{{0, 0, 0}, {1 << 20, 64, -1 << 20}, {-5, 255, 3}} {
		assert.True(t, DefaultDistance.Test(pos))
	}
}

func TestDefaultDimensionIsOverworldOnly(t *testing.T) {
	assert.True(t, DefaultDimension.Test(world.Overworld))
	assert.False(t, DefaultDimension.Test(world.Nether))
	assert.False(t, DefaultDimension.Test(world.End))
	assert.False(t, DefaultDimension.Test(world.NewDimension("custom:mining", cube.Range{0, 128})))
}

func TestDistanceBand(t *testing.T) {
	r, err := Distances.Decode(map[string]any{"minimum": 10.0, "maximum": 20.0})
	require.NoError(t, err)
	assert.False(t, r.Test(cube.Pos{5, 40, 0}))
	assert.True(t, r.Test(cube.Pos{10, 40, 0}))
	assert.True(t, r.Test(cube.Pos{12, 0, 12}))
	assert.False(t, r.Test(cube.Pos{15, 40, 15}), "euclidean distance is ~21.2")

	cheb, err := Distances.Decode(map[string]any{"type": "band", "maximum": 20.0, "metric": "chebyshev"})
	require.NoError(t, err)
	assert.True(t, cheb.Test(cube.Pos{15, 40, 15}))
	assert.False(t, cheb.Test(cube.Pos{21, 40, 0}))

	_, err = Distances.Decode(map[string]any{"minimum": 30.0, "maximum": 20.0})
	assert.Error(t, err)
	_, err = Distances.Decode(map[string]any{"metric": "manhattan"})
	assert.Error(t, err)
}

func TestDimensionRules(t *testing.T) {
	r, err := Dimensions.Decode("the_nether")
	require.NoError(t, err)
	assert.True(t, r.Test(world.Nether))
	assert.False(t, r.Test(world.Overworld))

	anyOf, err := Dimensions.Decode(map[string]any{"type": "dimension", "names": []any{"overworld", "minecraft:the_end"}})
	require.NoError(t, err)
	assert.True(t, anyOf.Test(world.Overworld))
	assert.True(t, anyOf.Test(world.End))
	assert.False(t, anyOf.Test(world.Nether))
}

func TestBiomeRules(t *testing.T) {
	plains := world.NewBiome("plains", "plains")
	forest := world.NewBiome("birch_forest", "forest")

	byName, err := Biomes.Decode("minecraft:plains")
	require.NoError(t, err)
	assert.True(t, byName.Test(plains))
	assert.False(t, byName.Test(forest))

	byCategory, err := Biomes.Decode("#forest")
	require.NoError(t, err)
	assert.True(t, byCategory.Test(forest))
	assert.False(t, byCategory.Test(plains))

	notForest, err := Biomes.Decode(map[string]any{"not": map[string]any{"type": "category", "categories": []any{"forest"}}})
	require.NoError(t, err)
	assert.True(t, notForest.Test(plains))
	assert.False(t, notForest.Test(forest))
}

func TestBlockRules(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(64)})
	w.SetBlock(cube.Pos{0, 30, 1}, world.Air)

	stone, err := Blocks.Decode("stone")
	require.NoError(t, err)
	assert.True(t, stone.Test(Target{World: w, Pos: cube.Pos{0, 30, 0}}))
	assert.False(t, stone.Test(Target{World: w, Pos: cube.Pos{0, 62, 0}}), "dirt is not stone")

	touching, err := Blocks.Decode(map[string]any{"type": "touching", "blocks": "minecraft:air", "min": 1.0})
	require.NoError(t, err)
	assert.True(t, touching.Test(Target{World: w, Pos: cube.Pos{0, 30, 0}}))
	assert.False(t, touching.Test(Target{World: w, Pos: cube.Pos{5, 30, 5}}))

	replace, err := Blocks.Decode(map[string]any{"type": "replace", "blocks": []any{"dirt", map[string]any{"block": "minecraft:grass_block"}}})
	require.NoError(t, err)
	assert.True(t, replace.Test(Target{World: w, Pos: cube.Pos{0, 64, 0}}))
	assert.False(t, replace.Test(Target{World: w, Pos: cube.Pos{0, 30, 0}}))

	_, err = Blocks.Decode(map[string]any{"type": "touching", "blocks": "air", "min": 4.0, "max": 2.0})
	assert.Error(t, err)
	_, err = Blocks.Decode(map[string]any{"type": "replace"})
	assert.Error(t, err)
}
