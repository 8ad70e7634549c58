package biome

import (
	"slices"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Set is a fixed collection of biomes, such as the biomes of one world.
type Set struct {
	seed   int64
	biomes []*Biome
	byName map[string]*Biome
}

// NewSet creates a Set of the biomes passed. The seed decides how Pick spreads the biomes over a world.
func NewSet(seed int64, biomes ...*Biome) *Set {
	s := &Set{seed: seed, biomes: biomes, byName: make(map[string]*Biome, len(biomes))}
	for _, b := range biomes {
		s.byName[b.Name()] = b
	}
	return s
}

// ByName looks up a biome by its name. Names without namespace are looked up in the minecraft namespace.
func (s *Set) ByName(name string) (*Biome, bool) {
	b, ok := s.byName[world.Namespaced(name)]
	return b, ok
}

// All returns all biomes in the Set in the order they were added.
func (s *Set) All() []*Biome {
	return slices.Clone(s.biomes)
}

// Pick returns the biome at a block column. Biomes are laid out in cells of 64x64 blocks with some noise on the
// cell borders.
func (s *Set) Pick(x, z int) *Biome {
	hash := int64(x)*2345803 ^ int64(z)*9236449 ^ s.seed
	hash *= hash + 223
	xNoise, zNoise := hash>>20&3, hash>>22&3
	if xNoise == 3 {
		xNoise = 1
	}
	if zNoise == 3 {
		zNoise = 1
	}
	cx, cz := (int64(x)+xNoise-1)>>6, (int64(z)+zNoise-1)>>6
	cell := cx*73856093 ^ cz*19349663 ^ s.seed
	cell ^= cell >> 17
	return s.biomes[uint64(cell)%uint64(len(s.biomes))]
}

// At returns a function returning the biome at a position, for use as biome source of a world.Memory.
func (s *Set) At() func(pos cube.Pos) world.Biome {
	return func(pos cube.Pos) world.Biome { return s.Pick(pos.X(), pos.Z()) }
}
