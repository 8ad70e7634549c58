package vein

import (
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Cone is a Shape of veins that narrow towards the top, or towards the bottom if Inverted is true. At the wide end
// the radius equals the horizontal size of the vein type.
type Cone struct {
	// Shape controls how much the cone narrows: at the narrow end the radius is (1-Shape) times the horizontal size.
	Shape float64
	// Inverted flips the cone so that it narrows towards the bottom.
	Inverted bool
}

func decodeCone(d doc.Document) (Shape, error) {
	c := Cone{}
	var err error
	if c.Shape, err = d.Float("shape", 0.5); err != nil {
		return nil, err
	}
	if c.Inverted, err = d.Bool("inverted", false); err != nil {
		return nil, err
	}
	return c, nil
}

// Name ...
func (Cone) Name() string { return "cone" }

// NewVein ...
func (Cone) NewVein(t *Type, chunk world.ChunkPos, r *rand.Rand, avoidCutoffs bool) *Vein {
	return &Vein{Type: t, Pos: DefaultOrigin(t, chunk, r, avoidCutoffs)}
}

// InRange ...
func (Cone) InRange(v *Vein, xOffset, zOffset int) bool {
	return DefaultInRange(v, xOffset, zOffset)
}

// VerticalRange ...
func (Cone) VerticalRange(v *Vein) (int, int) {
	return DefaultVerticalRange(v)
}

// Chance returns the chance for an ore at a position. The height of the position is normalised to [0, 1] over
// twice the vertical size of the vein type, centred on the origin. The radius of the cone shrinks linearly with that
// height and the chance falls off quadratically from the axis of the cone to its edge.
func (c Cone) Chance(v *Vein, pos cube.Pos) float64 {
	t := v.Type
	dx, dz := float64(v.Pos.X()-pos.X()), float64(v.Pos.Z()-pos.Z())

	dy := 0.5 + float64(pos.Y()-v.Pos.Y())/float64(t.VerticalSize*2)
	if c.Inverted {
		dy = 1 - dy
	}
	if dy < 0 || dy > 1 {
		return 0
	}
	maxR := (1 - c.Shape*dy) * float64(t.HorizontalSize)
	if maxR <= 0 {
		return 0
	}
	return 0.005 * t.Density * (1 - (dx*dx+dz*dz)/(maxR*maxR))
}
