package world

import "github.com/df-mc/oreveins/server/world/cube"

// BlockReader provides read access to the block states of a world.
type BlockReader interface {
	// Block returns the block state at the position passed. Positions outside the world return Air.
	Block(pos cube.Pos) BlockState
}

// Reader provides read access to the blocks, biomes and dimension of a world.
type Reader interface {
	BlockReader
	// Biome returns the Biome at the position passed.
	Biome(pos cube.Pos) Biome
	// Dimension returns the Dimension of the world.
	Dimension() Dimension
}

// Writer is a Reader that also allows setting blocks. World generation only ever writes through a Writer.
type Writer interface {
	Reader
	// SetBlock sets the block state at the position passed. Positions outside the world are ignored.
	SetBlock(pos cube.Pos, s BlockState)
}
