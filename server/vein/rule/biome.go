package rule

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
)

// Biome is a rule over biomes.
type Biome = Node[world.Biome]

// Biomes is the Family of biome rules, read from the "biomes" field of a vein definition. A string names a biome,
// or a biome category if prefixed with #.
var Biomes = NewFamily[world.Biome]("biomes", biomeString, nil)

// DefaultBiome matches every biome. Veins using it never look up the biome they generate in.
var DefaultBiome = Always[world.Biome]()

func init() {
	Biomes.Register("biome", func(params doc.Document) (Predicate[world.Biome], error) {
		names, err := stringsParam(params, "names")
		if err != nil {
			return nil, err
		}
		for i, n := range names {
			names[i] = world.Namespaced(strings.ToLower(n))
		}
		return func(b world.Biome) bool { return containsString(names, b.Name()) }, nil
	})
	Biomes.Register("category", func(params doc.Document) (Predicate[world.Biome], error) {
		categories, err := stringsParam(params, "categories")
		if err != nil {
			return nil, err
		}
		return func(b world.Biome) bool { return containsString(categories, b.Category()) }, nil
	})
}

func biomeString(s string) (Predicate[world.Biome], error) {
	if category, ok := strings.CutPrefix(s, "#"); ok {
		if category == "" {
			return nil, errors.New("empty biome category")
		}
		return func(b world.Biome) bool { return b.Category() == category }, nil
	}
	name := world.Namespaced(strings.ToLower(s))
	return func(b world.Biome) bool { return b.Name() == name }, nil
}

func stringsParam(params doc.Document, key string) ([]string, error) {
	list := params.List(key)
	if len(list) == 0 {
		return nil, errors.Newf("field %q requires at least one value", key)
	}
	out := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Newf("field %q: value %d: expected a string, got %T", key, i, v)
		}
		out = append(out, s)
	}
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
