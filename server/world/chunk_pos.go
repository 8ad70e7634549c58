package world

import (
	"fmt"

	"github.com/df-mc/oreveins/server/world/cube"
)

// ChunkPos holds the position of a chunk. The type is provided as a utility struct for keeping track of a
// chunk's position. Chunks do not themselves keep track of that. Chunk positions are different from block
// positions in the way that increasing the X/Z by one means increasing the absolute value on the X/Z axis in
// terms of blocks by 16.
type ChunkPos [2]int32

// String implements fmt.Stringer and returns (x, z).
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%v, %v)", p[0], p[1])
}

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 {
	return p[1]
}

// BlockX returns the X coordinate of the first block column of the chunk.
func (p ChunkPos) BlockX() int {
	return int(p[0]) << 4
}

// BlockZ returns the Z coordinate of the first block column of the chunk.
func (p ChunkPos) BlockZ() int {
	return int(p[1]) << 4
}

// Contains checks if the block position passed lies within the chunk.
func (p ChunkPos) Contains(pos cube.Pos) bool {
	return int32(pos[0]>>4) == p[0] && int32(pos[2]>>4) == p[1]
}

// ChunkPosOf returns the ChunkPos of the chunk that the block position passed is in.
func ChunkPosOf(pos cube.Pos) ChunkPos {
	return ChunkPos{int32(pos[0] >> 4), int32(pos[2] >> 4)}
}
