package populate

import (
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/world"
)

// Populator is a feature that decorates a generated chunk, such as ore clusters or grass. Populators are compared
// by identity, so implementations are used through pointers.
type Populator interface {
	Populate(w world.Writer, pos world.ChunkPos, r *rand.Rand)
}

// Kind is the kind of an OreFeature.
type Kind uint8

const (
	// KindOre is an ore cluster feature.
	KindOre Kind = iota
	// KindEmeraldOre is a feature placing single emerald ores.
	KindEmeraldOre
)

// String ...
func (k Kind) String() string {
	switch k {
	case KindOre:
		return "ore"
	case KindEmeraldOre:
		return "emerald_ore"
	}
	panic("unknown ore feature kind")
}

// OreFeature is a Populator that places a single block state in the terrain of a chunk.
type OreFeature interface {
	Populator
	// Kind returns the kind of the feature.
	Kind() Kind
	// State returns the block state the feature places.
	State() world.BlockState
}
