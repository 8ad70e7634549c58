package world

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/worldupgrader/blockupgrader"
	"github.com/segmentio/fasthash/fnv1a"
)

// BlockState is a single state of a block: a namespaced block name with an optional, canonically ordered set of
// properties. BlockState values are comparable, so two states with the same name and properties are equal (==).
type BlockState struct {
	// Name is the namespaced name of the block, such as minecraft:iron_ore.
	Name string
	// Properties holds the properties of the state in the canonical form k=v,k2=v2, sorted by key. It is empty
	// for blocks without properties.
	Properties string
}

// NewBlockState creates a BlockState from a block name and a property map. Names without a namespace are placed
// in the minecraft namespace.
func NewBlockState(name string, properties map[string]any) BlockState {
	return BlockState{Name: Namespaced(name), Properties: encodeProperties(properties)}
}

// UpgradeBlockState creates a BlockState like NewBlockState, but first upgrades the name and properties from the
// block state version passed to the latest version known. States that need no upgrade are returned unchanged.
func UpgradeBlockState(name string, properties map[string]any, version int32) BlockState {
	upgraded := blockupgrader.Upgrade(blockupgrader.BlockState{
		Name:       Namespaced(name),
		Properties: properties,
		Version:    version,
	})
	return NewBlockState(upgraded.Name, upgraded.Properties)
}

// ParseBlockState parses a BlockState from its string form, for example minecraft:stone or
// minecraft:stone[stone_type=granite].
func ParseBlockState(s string) (BlockState, error) {
	s = strings.TrimSpace(s)
	name, props, hasProps := strings.Cut(s, "[")
	if name == "" {
		return BlockState{}, errors.Newf("block state %q has no block name", s)
	}
	if !hasProps {
		return BlockState{Name: Namespaced(name)}, nil
	}
	props, ok := strings.CutSuffix(props, "]")
	if !ok {
		return BlockState{}, errors.Newf("block state %q: unterminated property list", s)
	}
	m := make(map[string]any)
	if props != "" {
		for _, kv := range strings.Split(props, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || strings.TrimSpace(k) == "" {
				return BlockState{}, errors.Newf("block state %q: malformed property %q", s, kv)
			}
			m[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return NewBlockState(name, m), nil
}

// String returns the BlockState in the form accepted by ParseBlockState.
func (s BlockState) String() string {
	if s.Properties == "" {
		return s.Name
	}
	return s.Name + "[" + s.Properties + "]"
}

// Hash returns a 64-bit FNV-1a hash of the BlockState.
func (s BlockState) Hash() uint64 {
	h := fnv1a.AddString64(fnv1a.Init64, s.Name)
	if s.Properties != "" {
		h = fnv1a.AddString64(fnv1a.AddString64(h, "["), s.Properties)
	}
	return h
}

// Namespaced places names without a namespace in the minecraft namespace.
func Namespaced(name string) string {
	name = strings.TrimSpace(name)
	if !strings.Contains(name, ":") {
		return "minecraft:" + name
	}
	return name
}

func encodeProperties(properties map[string]any) string {
	if len(properties) == 0 {
		return ""
	}
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		fmt.Fprint(&b, properties[k])
	}
	return b.String()
}
