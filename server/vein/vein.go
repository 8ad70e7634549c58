package vein

import (
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Vein is a single placement of a Type: the Type with an origin position and any geometry computed for the
// placement. Veins are created while generating a chunk and are discarded once the chunk is generated. A Vein must
// not be shared between goroutines generating different chunks.
type Vein struct {
	Type *Type
	Pos  cube.Pos

	segments []CurveSegment
}

// InRange checks if the block column at the x and z coordinates passed can hold ores of the vein.
func (v *Vein) InRange(x, z int) bool {
	return v.Type.InRange(v, v.Pos.X()-x, v.Pos.Z()-z)
}

// ChanceToGenerate returns the chance in [0, 1] that an ore of the vein is placed at the position passed.
func (v *Vein) ChanceToGenerate(pos cube.Pos) float64 {
	return v.Type.ChanceToGenerate(v, pos)
}

// VerticalRange returns the lowest and highest Y coordinate the vein can place ores at.
func (v *Vein) VerticalRange() (int, int) {
	return v.Type.Shape.VerticalRange(v)
}

// Segments returns the segments of the path of a vein with a curve shape. It is nil for other shapes.
func (v *Vein) Segments() []CurveSegment {
	return v.segments
}

// CurveSegment is one straight piece of the path of a curve vein.
type CurveSegment struct {
	// Begin is the start point of the segment.
	Begin mgl64.Vec3
	// Length is the length of the segment along its own axis. It may be negative, in which case the segment runs
	// in the opposite direction of the axis.
	Length float64
	// Yaw and Pitch are the rotations around the Y and Z axes that align the segment with the Y axis.
	Yaw, Pitch float64

	// frame rotates a position relative to Begin into the frame of the segment.
	frame mgl64.Mat3
}

func newCurveSegment(begin mgl64.Vec3, length, yaw, pitch float64) CurveSegment {
	return CurveSegment{
		Begin:  begin,
		Length: length,
		Yaw:    yaw,
		Pitch:  pitch,
		frame:  mgl64.Rotate3DZ(pitch).Mul3(mgl64.Rotate3DY(yaw)),
	}
}

// Local transforms a world position into the frame of the segment, in which the segment runs from the origin
// along the Y axis.
func (s CurveSegment) Local(pos mgl64.Vec3) mgl64.Vec3 {
	return s.frame.Mul3x1(pos.Sub(s.Begin))
}
