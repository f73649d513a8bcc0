package symxform

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'symxform'
func tracer() tracing.Trace {
	return tracing.Select("symxform")
}

// Epsilon is the tolerance below which reals are considered equal / zero.
var Epsilon float64 = 0.0000001

// Vec3 is a 3-component real vector, used for points, directions and poles.
type Vec3 struct {
	X, Y, Z float64
}

// V is a quick constructor for a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Origin is the zero vector.
var Origin = Vec3{}

// String is a pretty Stringer for a Vec3, used for trace output.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns v scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return Vec3{v.X * a, v.Y * a, v.Z * a}
}

// Negated returns -v.
func (v Vec3) Negated() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar product v . w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// SquaredLength returns |v|^2.
func (v Vec3) SquaredLength() float64 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.SquaredLength())
}

// Normalized returns v scaled to unit length. It is a no-op (returns v
// unchanged) if v has zero length, matching the source's defensive
// behaviour for degenerate poles.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l <= Epsilon {
		tracer().Debugf("normalize of near-zero vector %s is a no-op", v)
		return v
	}
	return v.Scaled(1.0 / l)
}

// At returns the i-th component (0=x, 1=y, 2=z), panicking outside [0,2]
// as a programmer-error signal, like slice indexing would.
func (v Vec3) At(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("Vec3.At: index %d out of range", i))
}

// Equal compares two vectors within Epsilon.
func (v Vec3) Equal(w Vec3) bool {
	return math.Abs(v.X-w.X) <= Epsilon && math.Abs(v.Y-w.Y) <= Epsilon && math.Abs(v.Z-w.Z) <= Epsilon
}

// IsZero is a predicate: is this vector the zero vector?
func (v Vec3) IsZero() bool {
	return v.Equal(Origin)
}
