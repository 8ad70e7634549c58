package vein

import (
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Sphere is a Shape of ellipsoid veins with the horizontal size of the vein type as horizontal radius and the
// vertical size as vertical radius.
type Sphere struct {
	// Uniform makes the chance constant within the ellipsoid instead of falling off towards its surface.
	Uniform bool
}

func decodeSphere(d doc.Document) (Shape, error) {
	uniform, err := d.Bool("uniform", false)
	if err != nil {
		return nil, err
	}
	return Sphere{Uniform: uniform}, nil
}

// Name ...
func (Sphere) Name() string { return "sphere" }

// NewVein ...
func (Sphere) NewVein(t *Type, chunk world.ChunkPos, r *rand.Rand, avoidCutoffs bool) *Vein {
	return &Vein{Type: t, Pos: DefaultOrigin(t, chunk, r, avoidCutoffs)}
}

// InRange ...
func (Sphere) InRange(v *Vein, xOffset, zOffset int) bool {
	return DefaultInRange(v, xOffset, zOffset)
}

// VerticalRange ...
func (Sphere) VerticalRange(v *Vein) (int, int) {
	return DefaultVerticalRange(v)
}

// Chance ...
func (s Sphere) Chance(v *Vein, pos cube.Pos) float64 {
	t := v.Type
	h, vs := float64(t.HorizontalSize), float64(t.VerticalSize)
	dx, dy, dz := float64(pos.X()-v.Pos.X()), float64(pos.Y()-v.Pos.Y()), float64(pos.Z()-v.Pos.Z())

	dist := (dx*dx+dz*dz)/(h*h) + dy*dy/(vs*vs)
	if dist >= 1 {
		return 0
	}
	if s.Uniform {
		return 0.005 * t.Density
	}
	return 0.005 * t.Density * (1 - dist)
}
