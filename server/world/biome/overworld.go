package biome

import (
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/generator/populate"
)

// Overworld creates the Set of built-in overworld biomes. Every call returns biomes with their own feature lists,
// so that disabling features in one Set does not affect another.
func Overworld(seed int64) *Set {
	ores := VanillaOres()
	with := func(extra ...populate.Populator) []populate.Populator {
		return append(append([]populate.Populator{}, ores...), extra...)
	}
	return NewSet(seed,
		New("ocean", "ocean", 46, 58, with(&populate.TallGrass{Amount: 5})...),
		New("plains", "plains", 63, 68, with(&populate.TallGrass{Amount: 12})...),
		New("desert", "desert", 63, 74, with()...),
		New("forest", "forest", 63, 81, with(&populate.TallGrass{Amount: 3})...),
		New("birch_forest", "forest", 63, 81, with(&populate.TallGrass{Amount: 3})...),
		New("taiga", "taiga", 63, 81, with(&populate.TallGrass{Amount: 3})...),
		New("swamp", "swamp", 62, 63, with(&populate.TallGrass{Amount: 3})...),
		New("river", "river", 58, 62, with(&populate.TallGrass{Amount: 5})...),
		New("snowy_plains", "icy", 63, 74, with()...),
		New("windswept_hills", "extreme_hills", 63, 127, with(Emeralds())...),
		New("windswept_forest", "extreme_hills", 63, 97, with(Emeralds(), &populate.TallGrass{Amount: 3})...),
	)
}

// VanillaOres returns the ore features shared by all overworld biomes.
func VanillaOres() []populate.Populator {
	return []populate.Populator{
		&populate.Ore{Material: world.CoalOre, Replaces: world.Stone, ClusterCount: 20, ClusterSize: 16, MaxHeight: 128},
		&populate.Ore{Material: world.IronOre, Replaces: world.Stone, ClusterCount: 20, ClusterSize: 8, MaxHeight: 64},
		&populate.Ore{Material: world.RedstoneOre, Replaces: world.Stone, ClusterCount: 8, ClusterSize: 7, MaxHeight: 16},
		&populate.Ore{Material: world.LapisOre, Replaces: world.Stone, ClusterCount: 1, ClusterSize: 6, MaxHeight: 32},
		&populate.Ore{Material: world.GoldOre, Replaces: world.Stone, ClusterCount: 2, ClusterSize: 8, MaxHeight: 32},
		&populate.Ore{Material: world.DiamondOre, Replaces: world.Stone, ClusterCount: 1, ClusterSize: 7, MaxHeight: 16},
		&populate.Ore{Material: world.Dirt, Replaces: world.Stone, ClusterCount: 20, ClusterSize: 32, MaxHeight: 128},
		&populate.Ore{Material: world.Gravel, Replaces: world.Stone, ClusterCount: 10, ClusterSize: 16, MaxHeight: 128},
	}
}

// Emeralds returns the emerald ore feature of mountain biomes.
func Emeralds() populate.Populator {
	return &populate.EmeraldOre{Material: world.EmeraldOre, Replaces: world.Stone, MinCount: 3, MaxCount: 8, MinHeight: 4, MaxHeight: 32}
}
