package world

import (
	"iter"
	"maps"

	"github.com/df-mc/oreveins/server/world/cube"
)

// MemoryConfig holds the settings of a Memory world.
type MemoryConfig struct {
	// Dimension is the Dimension of the world. If nil, Overworld is used.
	Dimension Dimension
	// Terrain returns the block state of a position that has not been set yet. If nil, LayeredTerrain(64) is used.
	Terrain func(pos cube.Pos) BlockState
	// Biomes returns the Biome at a position. If nil, every position is in a plains biome.
	Biomes func(pos cube.Pos) Biome
}

// Memory is a Writer that keeps every block that was set in memory, on top of a terrain function that supplies
// blocks that were never set. It is used to run generation outside a server, for example in tests and tools.
// Memory is not safe for concurrent use.
type Memory struct {
	conf   MemoryConfig
	blocks map[cube.Pos]BlockState
}

// NewMemory creates an empty Memory world using the MemoryConfig passed.
func NewMemory(conf MemoryConfig) *Memory {
	if conf.Dimension == nil {
		conf.Dimension = Overworld
	}
	if conf.Terrain == nil {
		conf.Terrain = LayeredTerrain(64)
	}
	if conf.Biomes == nil {
		plains := NewBiome("minecraft:plains", "plains")
		conf.Biomes = func(cube.Pos) Biome { return plains }
	}
	return &Memory{conf: conf, blocks: make(map[cube.Pos]BlockState)}
}

// Block ...
func (m *Memory) Block(pos cube.Pos) BlockState {
	if pos.OutOfBounds(m.conf.Dimension.Range()) {
		return Air
	}
	if s, ok := m.blocks[pos]; ok {
		return s
	}
	return m.conf.Terrain(pos)
}

// SetBlock ...
func (m *Memory) SetBlock(pos cube.Pos, s BlockState) {
	if pos.OutOfBounds(m.conf.Dimension.Range()) {
		return
	}
	m.blocks[pos] = s
}

// Biome ...
func (m *Memory) Biome(pos cube.Pos) Biome {
	return m.conf.Biomes(pos)
}

// Dimension ...
func (m *Memory) Dimension() Dimension {
	return m.conf.Dimension
}

// Changes returns an iterator over every position that was set and the state it was set to.
func (m *Memory) Changes() iter.Seq2[cube.Pos, BlockState] {
	return maps.All(m.blocks)
}

// Count returns how many set positions currently hold the state passed.
func (m *Memory) Count(s BlockState) int {
	n := 0
	for _, st := range m.blocks {
		if st == s {
			n++
		}
	}
	return n
}

// LayeredTerrain returns a terrain function with bedrock at the bottom of the world, stone up to three blocks
// below the surface height passed, a dirt layer, a grass block at the surface and air above it.
func LayeredTerrain(surface int) func(pos cube.Pos) BlockState {
	return func(pos cube.Pos) BlockState {
		switch y := pos.Y(); {
		case y <= 0:
			return Bedrock
		case y < surface-3:
			return Stone
		case y < surface:
			return Dirt
		case y == surface:
			return Grass
		default:
			return Air
		}
	}
}
