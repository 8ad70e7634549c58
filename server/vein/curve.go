package vein

import (
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Curve is a Shape of veins following a cubic Bezier curve through a box around the vein origin. The curve is
// approximated by straight segments, each of which holds ores within Radius of its axis.
type Curve struct {
	// Radius is the distance from the curve within which ores are placed.
	Radius float64
	// Angle bounds the slope of the curve. The value is passed to the tangent function as is.
	Angle float64
}

func decodeCurve(d doc.Document) (Shape, error) {
	c := Curve{}
	var err error
	if c.Radius, err = d.Float("radius", 5); err != nil {
		return nil, err
	}
	if !(c.Radius > 0) {
		return nil, errors.Newf("radius must be > 0, got %v", c.Radius)
	}
	if c.Angle, err = d.Float("angle", 45); err != nil {
		return nil, err
	}
	if c.Angle < 0 || c.Angle > 360 {
		return nil, errors.Newf("angle must be within [0, 360], got %v", c.Angle)
	}
	return c, nil
}

// Name ...
func (Curve) Name() string { return "curve" }

// NewVein places the origin of the vein so that the vertical size of the vein type fits between its minimum and
// maximum Y, and computes the segments of the curve from a stream seeded by r.
func (c Curve) NewVein(t *Type, chunk world.ChunkPos, r *rand.Rand, _ bool) *Vein {
	y := t.MinY + t.VerticalSize/2
	if maxOffY := t.MaxY - t.MinY - t.VerticalSize; maxOffY > 0 {
		y += r.IntN(maxOffY)
	}
	pos := cube.Pos{chunk.BlockX() + r.IntN(16), y, chunk.BlockZ() + r.IntN(16)}

	sub := rand.New(rand.NewPCG(r.Uint64(), r.Uint64()))
	return &Vein{Type: t, Pos: pos, segments: c.segments(pos.Vec3(), float64(t.HorizontalSize), float64(t.VerticalSize), sub)}
}

// segments approximates a cubic Bezier curve with straight segments. The end points of the curve lie on opposite
// sides of a box of the sizes passed around the origin and the control points are picked randomly in the cuboid
// spanned by the end points.
func (c Curve) segments(origin mgl64.Vec3, h, v float64, r *rand.Rand) []CurveSegment {
	kxy := math.Tan(c.Angle * (1 - 2*r.Float64()))
	kyz := math.Tan(c.Angle * (1 - 2*r.Float64()))
	h2, v2 := h/2, v/2

	var x1, y1, z1 float64
	if v2 >= h2*math.Abs(kyz) {
		z1, y1 = -h2, h2*kyz
	} else {
		z1, y1 = -v2*math.Abs(kyz), v2*sign(kyz)
	}
	x1 = h2
	if math.Abs(kxy) > 1 {
		x1 = h2 * kxy
	}

	p1 := origin.Add(mgl64.Vec3{x1, y1, z1})
	p4 := origin.Sub(mgl64.Vec3{x1, y1, z1})
	lo := mgl64.Vec3{min(p1[0], p4[0]), min(p1[1], p4[1]), min(p1[2], p4[2])}
	hi := mgl64.Vec3{max(p1[0], p4[0]), max(p1[1], p4[1]), max(p1[2], p4[2])}
	p2, p3 := pointInCuboid(r, lo, hi), pointInCuboid(r, lo, hi)

	step := 5 / h2
	segments := make([]CurveSegment, 0, int(math.Ceil(1/step)))
	begin := p1
	for t := 0.0; t < 1; {
		t = min(t+step, 1)
		s := 1 - t
		end := p1.Mul(s * s * s).Add(p2.Mul(3 * t * s * s)).Add(p3.Mul(3 * t * t * s)).Add(p4.Mul(t * t * t))

		axis := end.Sub(begin)
		yaw := math.Atan(axis[2] / axis[0])
		axisX := mgl64.Rotate3DY(yaw).Mul3x1(axis)
		pitch := math.Atan(axisX[0] / axisX[1])
		axisY := mgl64.Rotate3DZ(pitch).Mul3x1(axisX)

		segments = append(segments, newCurveSegment(begin, axisY[1], yaw, pitch))
		begin = end
	}
	return segments
}

// InRange checks if the offset lies within the box of the horizontal size of the vein type around the origin.
func (Curve) InRange(v *Vein, xOffset, zOffset int) bool {
	h := v.Type.HorizontalSize
	return abs(xOffset) < h && abs(zOffset) < h
}

// VerticalRange ...
func (c Curve) VerticalRange(v *Vein) (int, int) {
	extent := v.Type.VerticalSize/2 + int(math.Ceil(c.Radius))
	return v.Pos.Y() - extent, v.Pos.Y() + extent
}

// Chance returns the chance for an ore at a position, based on its distance to the axis of the first segment of the
// vein that the position lies alongside. Later segments are not considered once one matches.
func (c Curve) Chance(v *Vein, pos cube.Pos) float64 {
	p := pos.Vec3()
	for _, seg := range v.segments {
		local := seg.Local(p)
		rad := math.Sqrt(local[0]*local[0] + local[2]*local[2])
		along := (local[1] >= 0 && local[1] <= seg.Length) || (local[1] < 0 && local[1] >= seg.Length)
		if along && rad < c.Radius {
			return 0.005 * v.Type.Density * (1 - 0.9*rad/c.Radius)
		}
	}
	return 0
}

func pointInCuboid(r *rand.Rand, lo, hi mgl64.Vec3) mgl64.Vec3 {
	x := lo[0] + (hi[0]-lo[0])*r.Float64()
	y := lo[1] + (hi[1]-lo[1])*r.Float64()
	z := lo[2] + (hi[2]-lo[2])*r.Float64()
	return mgl64.Vec3{x, y, z}
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
