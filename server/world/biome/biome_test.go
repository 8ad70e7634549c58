package biome

import (
	"testing"

	"github.com/df-mc/oreveins/server/world/generator/populate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverworldSetsAreIndependent(t *testing.T) {
	a, b := Overworld(1), Overworld(1)
	pa, ok := a.ByName("plains")
	require.True(t, ok)
	pb, _ := b.ByName("minecraft:plains")

	pa.SetFeatures(nil)
	assert.Empty(t, pa.Features())
	assert.NotEmpty(t, pb.Features())
}

func TestFeaturesReturnsCopy(t *testing.T) {
	b := New("test", "test", 60, 70, &populate.TallGrass{Amount: 1})
	f := b.Features()
	f[0] = nil
	assert.NotNil(t, b.Features()[0])
}

func TestMountainsHaveEmeralds(t *testing.T) {
	s := Overworld(0)
	hills, ok := s.ByName("windswept_hills")
	require.True(t, ok)
	var kinds []populate.Kind
	for _, f := range hills.Features() {
		if o, ok := f.(populate.OreFeature); ok {
			kinds = append(kinds, o.Kind())
		}
	}
	assert.Contains(t, kinds, populate.KindEmeraldOre)

	plains, _ := s.ByName("plains")
	for _, f := range plains.Features() {
		if o, ok := f.(populate.OreFeature); ok {
			assert.Equal(t, populate.KindOre, o.Kind())
		}
	}
}

func TestPickIsDeterministic(t *testing.T) {
	a, b := Overworld(42), Overworld(42)
	seen := map[string]bool{}
	for x := -2048; x < 2048; x += 61 {
		for z := -2048; z < 2048; z += 67 {
			assert.Equal(t, a.Pick(x, z).Name(), b.Pick(x, z).Name())
			seen[a.Pick(x, z).Name()] = true
		}
	}
	assert.Greater(t, len(seen), 1)
}
