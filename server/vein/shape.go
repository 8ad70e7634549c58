package vein

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Shape is the geometry of a vein type. Each Shape decides where veins of its type are placed within a chunk
// and, for every position around a vein, the chance that an ore is placed there.
type Shape interface {
	// Name returns the name the Shape is registered under, which documents select in their "type" field.
	Name() string
	// NewVein creates a vein of the Type passed with its origin in the chunk passed. Any geometry of the vein is
	// computed before NewVein returns, using randomness drawn from r.
	NewVein(t *Type, chunk world.ChunkPos, r *rand.Rand, avoidCutoffs bool) *Vein
	// InRange checks if the block column at the horizontal offset passed from the vein origin can hold any ores
	// of the vein.
	InRange(v *Vein, xOffset, zOffset int) bool
	// Chance returns the chance for an ore to be placed at a position. Values at or below zero never place ores.
	Chance(v *Vein, pos cube.Pos) float64
	// VerticalRange returns the lowest and highest Y coordinate the vein can place ores at.
	VerticalRange(v *Vein) (int, int)
}

// ShapeDecoder decodes the shape specific fields of a vein definition.
type ShapeDecoder func(d doc.Document) (Shape, error)

var (
	shapeMu sync.RWMutex
	shapes  = map[string]ShapeDecoder{}
)

// RegisterShape registers a ShapeDecoder under the name passed, so that definitions with that "type" decode to
// the Shape it returns. Registering a name twice replaces the earlier decoder.
func RegisterShape(name string, dec ShapeDecoder) {
	shapeMu.Lock()
	defer shapeMu.Unlock()
	shapes[name] = dec
}

// Shapes returns the names of all registered shapes, sorted.
func Shapes() []string {
	shapeMu.RLock()
	defer shapeMu.RUnlock()
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func shapeDecoder(name string) (ShapeDecoder, bool) {
	shapeMu.RLock()
	defer shapeMu.RUnlock()
	dec, ok := shapes[name]
	return dec, ok
}

func init() {
	RegisterShape("cone", decodeCone)
	RegisterShape("curve", decodeCurve)
	RegisterShape("sphere", decodeSphere)
}

// DefaultOrigin picks the origin of a vein of the Type passed: uniformly within the horizontal area of the chunk,
// and uniformly between the minimum and maximum Y of the Type. If avoidCutoffs is true, the vertical range is
// shrunk by the vertical size of the Type on both ends so that veins are not cut off by the Y bounds, or collapsed
// to its midpoint if it is too small to shrink.
func DefaultOrigin(t *Type, chunk world.ChunkPos, r *rand.Rand, avoidCutoffs bool) cube.Pos {
	spawnRange, minY := t.MaxY-t.MinY, t.MinY
	if avoidCutoffs {
		if t.VerticalSize*2 < spawnRange {
			spawnRange -= t.VerticalSize * 2
			minY += t.VerticalSize
		} else {
			minY = t.MinY + (t.MaxY-t.MinY)/2
			spawnRange = 1
		}
	}
	spawnRange = max(spawnRange, 1)

	x := chunk.BlockX() + r.IntN(16)
	y := minY + r.IntN(spawnRange)
	z := chunk.BlockZ() + r.IntN(16)
	return cube.Pos{x, y, z}
}

// DefaultInRange checks if the horizontal offset passed lies within a circle with the horizontal size of the vein
// type as radius.
func DefaultInRange(v *Vein, xOffset, zOffset int) bool {
	h := v.Type.HorizontalSize
	return xOffset*xOffset+zOffset*zOffset < h*h
}

// DefaultVerticalRange returns the Y range spanning one vertical size of the vein type above and below the vein
// origin.
func DefaultVerticalRange(v *Vein) (int, int) {
	return v.Pos.Y() - v.Type.VerticalSize, v.Pos.Y() + v.Type.VerticalSize
}
