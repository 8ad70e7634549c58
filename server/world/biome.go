package world

// Biome is a region in a world with distinct properties. Biomes are identified by their namespaced name and belong
// to a broader category, such as forest or ocean.
type Biome interface {
	// Name returns the namespaced name of the Biome, such as minecraft:plains.
	Name() string
	// Category returns the category the Biome belongs to, such as plains or forest.
	Category() string
}

type biome struct {
	name, category string
}

// Name ...
func (b biome) Name() string { return b.name }

// Category ...
func (b biome) Category() string { return b.category }

// String ...
func (b biome) String() string { return b.name }

// NewBiome returns a Biome with the name and category passed, for biomes that carry no further data.
func NewBiome(name, category string) Biome {
	return biome{name: Namespaced(name), category: category}
}
