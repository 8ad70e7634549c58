package world

import (
	"strings"
	"sync"

	"github.com/df-mc/oreveins/server/world/cube"
)

// Dimension is a dimension of a world. Dimensions are identified by their namespaced name.
type Dimension interface {
	// Name returns the namespaced name of the Dimension, such as minecraft:overworld.
	Name() string
	// Range returns the lowest and highest valid Y coordinates of a block in the Dimension.
	Range() cube.Range
}

type dimension struct {
	name string
	r    cube.Range
}

// Name ...
func (d dimension) Name() string { return d.name }

// Range ...
func (d dimension) Range() cube.Range { return d.r }

// String ...
func (d dimension) String() string { return d.name }

var (
	// Overworld is the Dimension implementation of a normal overworld. It has a blue sky under normal circumstances
	// and is the dimension veins generate in by default.
	Overworld Dimension = dimension{name: "minecraft:overworld", r: cube.Range{0, 255}}
	// Nether is a Dimension implementation with a lower base height (0-127).
	Nether Dimension = dimension{name: "minecraft:the_nether", r: cube.Range{0, 127}}
	// End is a Dimension implementation for the End.
	End Dimension = dimension{name: "minecraft:the_end", r: cube.Range{0, 255}}
)

var (
	dimensionMu sync.RWMutex
	dimensions  = map[string]Dimension{
		Overworld.Name(): Overworld,
		Nether.Name():    Nether,
		End.Name():       End,
	}
)

// NewDimension creates a custom Dimension with the name and height range passed. The Dimension is not registered;
// use RegisterDimension to make it resolvable by name.
func NewDimension(name string, r cube.Range) Dimension {
	return dimension{name: Namespaced(name), r: r}
}

// RegisterDimension registers a Dimension so that it can be looked up using DimensionByName.
func RegisterDimension(d Dimension) {
	dimensionMu.Lock()
	defer dimensionMu.Unlock()
	dimensions[d.Name()] = d
}

// DimensionByName looks up a registered Dimension by its name. Names without a namespace are looked up in the
// minecraft namespace.
func DimensionByName(name string) (Dimension, bool) {
	dimensionMu.RLock()
	defer dimensionMu.RUnlock()
	d, ok := dimensions[Namespaced(strings.ToLower(name))]
	return d, ok
}

// SameDimension checks if two dimensions have the same name.
func SameDimension(a, b Dimension) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}
