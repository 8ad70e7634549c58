// Package biome holds the biomes of the built-in overworld generator together with the vanilla features each of
// them populates chunks with.
package biome

import (
	"slices"
	"sync"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/generator/populate"
)

// Biome is a world.Biome with a list of features that decorate chunks of the biome. The feature list may be
// changed while the Biome is in use, for example to disable vanilla ores. Biome is safe for concurrent use.
type Biome struct {
	name, category string
	elevation      [2]int

	mu       sync.RWMutex
	features []populate.Populator
}

// New creates a Biome. The minimum and maximum elevation are the bounds of the surface height in the biome.
func New(name, category string, minElevation, maxElevation int, features ...populate.Populator) *Biome {
	return &Biome{
		name:      world.Namespaced(name),
		category:  category,
		elevation: [2]int{minElevation, maxElevation},
		features:  features,
	}
}

// Name ...
func (b *Biome) Name() string { return b.name }

// Category ...
func (b *Biome) Category() string { return b.category }

// String ...
func (b *Biome) String() string { return b.name }

// Elevation returns the minimum and maximum surface height of the biome.
func (b *Biome) Elevation() (int, int) {
	return b.elevation[0], b.elevation[1]
}

// Features returns the features currently populating chunks of the biome, in order.
func (b *Biome) Features() []populate.Populator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.features)
}

// SetFeatures replaces the features of the biome.
func (b *Biome) SetFeatures(features []populate.Populator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.features = slices.Clone(features)
}
