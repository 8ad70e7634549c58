package populate

import (
	"math/rand/v2"
	"testing"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/stretchr/testify/assert"
)

func TestOreReplacesOnlyTarget(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(64)})
	o := &Ore{Material: world.IronOre, Replaces: world.Stone, ClusterCount: 20, ClusterSize: 8, MinHeight: 0, MaxHeight: 64}
	o.Populate(w, world.ChunkPos{0, 0}, rand.New(rand.NewPCG(1, 2)))

	assert.Positive(t, w.Count(world.IronOre))
	for pos, s := range w.Changes() {
		assert.Equal(t, world.IronOre, s)
		assert.Less(t, pos.Y(), 61, "ore at %v replaced a block that was not stone", pos)
		assert.Positive(t, pos.Y())
	}
}

func TestOreStaysWithinChunk(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(64)})
	o := &Ore{Material: world.Dirt, Replaces: world.Stone, ClusterCount: 20, ClusterSize: 33, MinHeight: 0, MaxHeight: 60}
	for seed := range uint64(10) {
		o.Populate(w, world.ChunkPos{3, -2}, rand.New(rand.NewPCG(seed, 7)))
	}
	assert.Positive(t, w.Count(world.Dirt))
	for pos := range w.Changes() {
		assert.True(t, world.ChunkPos{3, -2}.Contains(pos), "cluster block at %v outside the chunk", pos)
	}
}

func TestOreFeatureKinds(t *testing.T) {
	var features = []OreFeature{
		&Ore{Material: world.CoalOre},
		&EmeraldOre{Material: world.EmeraldOre},
	}
	assert.Equal(t, KindOre, features[0].Kind())
	assert.Equal(t, world.CoalOre, features[0].State())
	assert.Equal(t, KindEmeraldOre, features[1].Kind())
	assert.Equal(t, "emerald_ore", features[1].Kind().String())
}

func TestEmeraldOreCount(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: func(cube.Pos) world.BlockState { return world.Stone }})
	e := &EmeraldOre{Material: world.EmeraldOre, Replaces: world.Stone, MinCount: 3, MaxCount: 8, MinHeight: 4, MaxHeight: 32}
	e.Populate(w, world.ChunkPos{2, 2}, rand.New(rand.NewPCG(4, 4)))

	n := w.Count(world.EmeraldOre)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 8)
	for pos := range w.Changes() {
		assert.True(t, world.ChunkPos{2, 2}.Contains(pos))
		assert.True(t, pos.Y() >= 4 && pos.Y() <= 32)
	}
}

func TestTallGrassGrowsOnGrass(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(64)})
	(&TallGrass{Amount: 5}).Populate(w, world.ChunkPos{0, 0}, rand.New(rand.NewPCG(3, 3)))

	assert.GreaterOrEqual(t, w.Count(world.ShortGrass), 1)
	for pos, s := range w.Changes() {
		assert.Equal(t, world.ShortGrass, s)
		assert.Equal(t, 65, pos.Y())
	}
}
