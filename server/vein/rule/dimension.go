package rule

import (
	"strings"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
)

// Dimension is a rule over dimensions.
type Dimension = Node[world.Dimension]

// Dimensions is the Family of dimension rules, read from the "dimensions" field of a vein definition. A string
// names a dimension. Names that do not refer to a registered dimension are accepted and never match.
var Dimensions = NewFamily[world.Dimension]("dimensions", func(s string) (Predicate[world.Dimension], error) {
	name := world.Namespaced(strings.ToLower(s))
	return func(d world.Dimension) bool { return d != nil && d.Name() == name }, nil
}, nil)

// DefaultDimension matches only the overworld.
var DefaultDimension = Leaf[world.Dimension]("minecraft:overworld", func(d world.Dimension) bool {
	return world.SameDimension(d, world.Overworld)
})

func init() {
	Dimensions.Register("dimension", func(params doc.Document) (Predicate[world.Dimension], error) {
		names, err := stringsParam(params, "names")
		if err != nil {
			return nil, err
		}
		for i, n := range names {
			names[i] = world.Namespaced(strings.ToLower(n))
		}
		return func(d world.Dimension) bool { return d != nil && containsString(names, d.Name()) }, nil
	})
}
