package symxform

import (
	"fmt"
	"math"
)

// Transform is a 4x4 affine matrix: a 3x3 rotation-and-scale block R, a
// total translation column t_total, and a post-translation row p_post used
// to recover the pre-translation on demand. Row-major indexing: T[i][j].
//
// Invariant: t_total = p_post + R . p_pre, where p_pre is derived as
// p_pre = R^-1 (t_total - p_post). Transform is value-semantic: copying a
// Transform copies its storage, and all mutators are methods on *Transform
// so callers opt into mutation explicitly.
type Transform struct {
	m [4][4]float64
}

// Identity returns the identity transform: R=I, pre/post-translation zero.
func Identity() Transform {
	var t Transform
	t.ToIdentity()
	return t
}

// ToIdentity resets a transform in place to the identity transform.
func (t *Transform) ToIdentity() {
	t.m = [4][4]float64{}
	t.m[0][0], t.m[1][1], t.m[2][2], t.m[3][3] = 1, 1, 1, 1
}

// IsIdentity reports whether t is the identity transform within Epsilon.
func (t Transform) IsIdentity() bool {
	id := Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(t.m[i][j]-id.m[i][j]) > Epsilon {
				return false
			}
		}
	}
	return true
}

// At returns the entry at row i, column j (0..3).
func (t Transform) At(i, j int) float64 {
	return t.m[i][j]
}

// set is an internal helper; callers use the typed setters below.
func (t *Transform) set(i, j int, v float64) {
	t.m[i][j] = v
}

func (t Transform) rotBlock() [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = t.m[i][j]
		}
	}
	return r
}

func (t *Transform) setRotBlock(r [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.m[i][j] = r[i][j]
		}
	}
}

// GetPosttrans returns the post-translation p_post.
func (t Transform) GetPosttrans() Vec3 {
	return Vec3{t.m[3][0], t.m[3][1], t.m[3][2]}
}

func (t Transform) totalTrans() Vec3 {
	return Vec3{t.m[0][3], t.m[1][3], t.m[2][3]}
}

func (t *Transform) setTotalTrans(v Vec3) {
	t.m[0][3], t.m[1][3], t.m[2][3] = v.X, v.Y, v.Z
}

// GetPretrans returns the pre-translation p_pre, derived from the stored
// post- and total-translation via p_pre = R^-1 (t_total - p_post).
func (t Transform) GetPretrans() Vec3 {
	rinv, ok := invert3(t.rotBlock())
	if !ok {
		tracer().Errorf("GetPretrans: rotation block is singular, returning zero")
		return Origin
	}
	diff := t.totalTrans().Sub(t.GetPosttrans())
	return apply3(rinv, diff)
}

// SetPretrans sets the pre-translation, holding post-translation fixed and
// updating the total translation: t_total = p_post + R . v.
func (t *Transform) SetPretrans(v Vec3) {
	post := t.GetPosttrans()
	rv := apply3(t.rotBlock(), v)
	t.setTotalTrans(post.Add(rv))
}

// SetPosttrans sets the post-translation, holding pre-translation fixed
// (computed from the current state before the change) and updating the
// total translation: t_total = v + R . p_pre.
func (t *Transform) SetPosttrans(v Vec3) {
	pre := t.GetPretrans()
	t.m[3][0], t.m[3][1], t.m[3][2] = v.X, v.Y, v.Z
	rv := apply3(t.rotBlock(), pre)
	t.setTotalTrans(v.Add(rv))
}

// GetScale returns sqrt(sum R_ij^2 / 3), the uniform scale factor implied
// by the rotation-and-scale block.
func (t Transform) GetScale() float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += t.m[i][j] * t.m[i][j]
		}
	}
	return math.Sqrt(sum / 3)
}

// SetScale uniformly rescales the 3x3 block so that GetScale() returns s.
func (t *Transform) SetScale(s float64) error {
	cur := t.GetScale()
	if cur <= Epsilon {
		return fmt.Errorf("%w: cannot rescale a degenerate (zero-scale) rotation block", ErrNumeric)
	}
	factor := s / cur
	r := t.rotBlock()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] *= factor
		}
	}
	t.setRotBlock(r)
	return nil
}

// ApplyScale multiplies the 3x3 block and the total-translation column by s.
func (t *Transform) ApplyScale(s float64) {
	r := t.rotBlock()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] *= s
		}
	}
	t.setRotBlock(r)
	t.setTotalTrans(t.totalTrans().Scaled(s))
}

// Transpose transposes the 3x3 rotation-and-scale block in place.
func (t *Transform) Transpose() {
	r := t.rotBlock()
	var rt [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rt[j][i] = r[i][j]
		}
	}
	t.setRotBlock(rt)
}

// Inverse returns the full affine inverse of t, computed via cofactor
// expansion of the 3x3 rotation block. The inverse's post-translation is
// defined to be zero, so GetPretrans() on the result recovers the whole
// inverse translation; this is a deliberate simplification since the
// pre/post split has no canonical meaning for an inverted transform.
func (t Transform) Inverse() (Transform, error) {
	rinv, ok := invert3(t.rotBlock())
	if !ok {
		return Transform{}, fmt.Errorf("%w: singular rotation block, cannot invert", ErrNumeric)
	}
	var inv Transform
	inv.ToIdentity()
	inv.setRotBlock(rinv)
	negRinvT := apply3(rinv, t.totalTrans()).Negated()
	inv.setTotalTrans(negRinvT)
	return inv, nil
}

// Compose returns a.B, i.e. the transform that applies b first, then a.
// The result's post-translation equals a's; its total translation is
// a.R*b.t_total + a.t_total.
func Compose(a, b Transform) Transform {
	ar, br := a.rotBlock(), b.rotBlock()
	var cr [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += ar[i][k] * br[k][j]
			}
			cr[i][j] = sum
		}
	}
	var c Transform
	c.ToIdentity()
	c.setRotBlock(cr)
	c.m[3][0], c.m[3][1], c.m[3][2] = a.m[3][0], a.m[3][1], a.m[3][2]
	tTotal := apply3(ar, b.totalTrans()).Add(a.totalTrans())
	c.setTotalTrans(tTotal)
	return c
}

// Compose is the method form of Compose(t, other): t applied after other.
func (t Transform) Compose(other Transform) Transform {
	return Compose(t, other)
}

// TransformPoint applies the full affine map: R v + t_total.
func (t Transform) TransformPoint(v Vec3) Vec3 {
	return apply3(t.rotBlock(), v).Add(t.totalTrans())
}

// Rotate applies only the 3x3 block: R v.
func (t Transform) Rotate(v Vec3) Vec3 {
	return apply3(t.rotBlock(), v)
}

// String is a debug Stringer rendering the full 4x4 matrix row by row.
func (t Transform) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g]",
		t.m[0][0], t.m[0][1], t.m[0][2], t.m[0][3],
		t.m[1][0], t.m[1][1], t.m[1][2], t.m[1][3],
		t.m[2][0], t.m[2][1], t.m[2][2], t.m[2][3],
		t.m[3][0], t.m[3][1], t.m[3][2], t.m[3][3])
}

// === 3x3 helpers ============================================================

func apply3(r [3][3]float64, v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

func det3(r [3][3]float64) float64 {
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// invert3 inverts a 3x3 matrix via the adjugate/determinant method. Returns
// ok=false for a (near-)singular matrix.
func invert3(r [3][3]float64) ([3][3]float64, bool) {
	d := det3(r)
	if math.Abs(d) <= Epsilon {
		return [3][3]float64{}, false
	}
	invD := 1.0 / d
	var adj [3][3]float64
	adj[0][0] = (r[1][1]*r[2][2] - r[1][2]*r[2][1]) * invD
	adj[0][1] = (r[0][2]*r[2][1] - r[0][1]*r[2][2]) * invD
	adj[0][2] = (r[0][1]*r[1][2] - r[0][2]*r[1][1]) * invD
	adj[1][0] = (r[1][2]*r[2][0] - r[1][0]*r[2][2]) * invD
	adj[1][1] = (r[0][0]*r[2][2] - r[0][2]*r[2][0]) * invD
	adj[1][2] = (r[0][2]*r[1][0] - r[0][0]*r[1][2]) * invD
	adj[2][0] = (r[1][0]*r[2][1] - r[1][1]*r[2][0]) * invD
	adj[2][1] = (r[0][1]*r[2][0] - r[0][0]*r[2][1]) * invD
	adj[2][2] = (r[0][0]*r[1][1] - r[0][1]*r[1][0]) * invD
	return adj, true
}
