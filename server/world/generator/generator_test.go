package generator

import (
	"io"
	"log/slog"
	"testing"

	"github.com/df-mc/oreveins/server/config"
	"github.com/df-mc/oreveins/server/vein"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/vein/rule"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/df-mc/oreveins/server/world/generator/populate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newGenerator(t *testing.T, docs map[string]doc.Document, metrics *Metrics) *Generator {
	t.Helper()
	reg := vein.NewRegistry(vein.RegistryConfig{Log: discard})
	res := reg.Reload(docs)
	require.Empty(t, res.Failed)
	return New(Config{Seed: 99, Registry: reg, Log: discard, Metrics: metrics})
}

func goldVein(extra map[string]any) doc.Document {
	d := doc.Document{
		"type": "cone", "ore": "minecraft:gold_ore",
		"count": 1, "rarity": 1, "density": 100,
		"min_y": 20, "max_y": 50,
		"rules": []any{"stone"},
	}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

func newWorld(dim world.Dimension) *world.Memory {
	return world.NewMemory(world.MemoryConfig{Dimension: dim, Terrain: world.LayeredTerrain(64)})
}

func TestPlaceVeinsRespectsRules(t *testing.T) {
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(nil)}, nil)
	w := newWorld(world.Overworld)

	n := g.PlaceVeins(w, world.ChunkPos{0, 0})
	assert.Positive(t, n)
	assert.Equal(t, n, w.Count(world.GoldOre))
	for pos, s := range w.Changes() {
		assert.Equal(t, world.GoldOre, s)
		assert.True(t, world.ChunkPos{0, 0}.Contains(pos), "ore at %v outside the chunk", pos)
		assert.True(t, pos.Y() > 0 && pos.Y() < 61, "ore at %v did not replace stone", pos)
	}
}

func TestPlaceVeinsIsDeterministicAcrossChunks(t *testing.T) {
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(map[string]any{"horizontal_size": 24})}, nil)

	a := newWorld(world.Overworld)
	g.PlaceVeins(a, world.ChunkPos{0, 0})
	g.PlaceVeins(a, world.ChunkPos{1, 0})

	b := newWorld(world.Overworld)
	g.PlaceVeins(b, world.ChunkPos{1, 0})

	target := world.ChunkPos{1, 0}
	for pos, s := range b.Changes() {
		assert.Equal(t, s, a.Block(pos))
	}
	for pos, s := range a.Changes() {
		if target.Contains(pos) {
			assert.Equal(t, s, b.Block(pos))
		}
	}
}

func TestPlaceVeinsSkipsOtherDimensions(t *testing.T) {
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(nil)}, nil)
	w := newWorld(world.Nether)
	assert.Zero(t, g.PlaceVeins(w, world.ChunkPos{0, 0}))

	g = newGenerator(t, map[string]doc.Document{"gold": goldVein(map[string]any{"dimensions": "the_nether"})}, nil)
	assert.Positive(t, g.PlaceVeins(w, world.ChunkPos{0, 0}))
}

func TestPlaceVeinsBiomeGate(t *testing.T) {
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(map[string]any{"biomes": "#ocean"})}, nil)
	w := newWorld(world.Overworld)
	assert.Zero(t, g.PlaceVeins(w, world.ChunkPos{0, 0}), "memory worlds are plains by default")
}

func TestIndicatorsAndMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(map[string]any{
		"min_y": 50, "max_y": 58,
		"indicator": map[string]any{"blocks": "minecraft:gravel", "rarity": 1},
	})}, m)
	w := newWorld(world.Overworld)

	n := g.PlaceVeins(w, world.ChunkPos{0, 0})
	require.Positive(t, n)
	indicators := 0
	for pos, s := range w.Changes() {
		if s == world.Gravel {
			assert.Equal(t, 65, pos.Y())
			indicators++
		}
	}
	assert.Positive(t, indicators)
	assert.Equal(t, float64(n), testutil.ToFloat64(m.blocks.WithLabelValues("gold")))
	assert.Equal(t, float64(indicators), testutil.ToFloat64(m.indicators.WithLabelValues("gold")))
	assert.Positive(t, testutil.ToFloat64(m.veins.WithLabelValues("gold")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.AddBlocks("gold", 3) })
}

func TestReconfigureDisablesVanillaOres(t *testing.T) {
	g := newGenerator(t, nil, nil)
	plains, ok := g.Biomes().ByName("plains")
	require.True(t, ok)
	before := len(plains.Features())

	require.NoError(t, g.Reconfigure(config.Default()))
	for _, f := range plains.Features() {
		if o, ok := f.(populate.OreFeature); ok {
			assert.NotContains(t, []world.BlockState{world.CoalOre, world.IronOre, world.DiamondOre}, o.State())
		}
	}
	assert.NotEmpty(t, g.Disabler().Disabled(plains.Name()))

	w := newWorld(world.Overworld)
	g.GenerateChunk(w, world.ChunkPos{0, 0})
	assert.Zero(t, w.Count(world.IronOre))
	assert.Zero(t, w.Count(world.CoalOre))

	c := config.Default()
	c.DisabledBlockStates = nil
	require.NoError(t, g.Reconfigure(c))
	assert.Len(t, plains.Features(), before)
	assert.Empty(t, g.Disabler().Disabled(plains.Name()))

	c.NoOres = true
	require.NoError(t, g.Reconfigure(c))
	for _, f := range plains.Features() {
		_, ok := f.(populate.OreFeature)
		assert.False(t, ok, "no_ores leaves no ore features")
	}

	c.DisabledBlockStates = []string{"minecraft:iron_ore["}
	assert.Error(t, g.Reconfigure(c))
}

func TestGenerateChunkRunsVanillaFeatures(t *testing.T) {
	g := newGenerator(t, nil, nil)
	w := newWorld(world.Overworld)
	assert.Zero(t, g.GenerateChunk(w, world.ChunkPos{0, 0}))
	assert.Positive(t, w.Count(world.ShortGrass))
	assert.Positive(t, w.Count(world.CoalOre)+w.Count(world.IronOre))
	for pos, s := range w.Changes() {
		assert.True(t, world.ChunkPos{0, 0}.Contains(pos), "%v at %v outside the chunk", s, pos)
	}
}

func TestPlaceVeinsTestsRulesBeforeChance(t *testing.T) {
	var calls int
	rule.Blocks.Register("counted_stone", func(doc.Document) (rule.Predicate[rule.Target], error) {
		return func(target rule.Target) bool {
			calls++
			return target.World.Block(target.Pos) == world.Stone
		}, nil
	})
	g := newGenerator(t, map[string]doc.Document{"gold": goldVein(map[string]any{"rules": []any{"counted_stone"}})}, nil)

	n := g.PlaceVeins(newWorld(world.Overworld), world.ChunkPos{0, 0})
	assert.Positive(t, n)
	assert.Greater(t, calls, n, "rules are tested for positions whose chance roll would fail")
}

func TestStrip(t *testing.T) {
	w := world.NewMemory(world.MemoryConfig{Terrain: world.LayeredTerrain(10)})
	w.SetBlock(cube.Pos{0, 5, 0}, world.GoldOre)
	w.SetBlock(cube.Pos{1, 3, 1}, world.IronOre)

	n := Strip(w, cube.Pos{0, 5, 0}, 1, world.NewStateSet(world.GoldOre))
	assert.Equal(t, 9*11-1, n, "bedrock, stone, dirt and grass of 9 columns except the gold ore")
	assert.Equal(t, world.GoldOre, w.Block(cube.Pos{0, 5, 0}))
	assert.Equal(t, world.Air, w.Block(cube.Pos{1, 3, 1}))
	assert.Equal(t, world.Stone, w.Block(cube.Pos{2, 3, 2}), "outside the radius")
}
