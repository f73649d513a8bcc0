package symmetry

import (
	"fmt"

	"github.com/emgeom/symxform"
)

// CSym is the cyclic point group Cn: n rotations by k*360/n degrees about
// the Z axis.
type CSym struct {
	n int
}

// NewCSym constructs a Cn symmetry group.
func NewCSym(n int) (*CSym, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %w (n=%d)", symxform.ErrInvalidParameter, errBadOrder, n)
	}
	return &CSym{n: n}, nil
}

func (c *CSym) Name() string                { return fmt.Sprintf("c%d", c.n) }
func (c *CSym) NSym() int                   { return c.n }
func (c *CSym) PrincipalCSym() int          { return c.n }
func (c *CSym) AzAlignmentOffset() float64  { return 0 }

func (c *CSym) Get(k int) (symxform.Transform, error) {
	if k < 0 || k >= c.n {
		return symxform.Transform{}, errIndex(k, c.n)
	}
	t := symxform.Identity()
	phi := float64(k) * 360.0 / float64(c.n)
	if err := t.SetRotation(symxform.EMAN, symxform.EulerParams{"az": 0, "alt": 0, "phi": phi}); err != nil {
		return symxform.Transform{}, err
	}
	return t, nil
}

// Delimiters bounds the asymmetric unit: the full altitude range [0,90] if
// the up/down mirror is excluded, [0,180] if it's folded in, and one
// azimuthal wedge of width 360/n.
func (c *CSym) Delimiters(incMirror bool) Delimiters {
	altMax := 90.0
	if incMirror {
		altMax = 180.0
	}
	return Delimiters{AltMin: 0, AltMax: altMax, AzMax: 360.0 / float64(c.n)}
}

// InAsymUnit reports whether (alt, az) lies in the altitude/azimuth box
// Delimiters describes. For c1 with incMirror, the box is the whole sphere.
func (c *CSym) InAsymUnit(alt, az float64, incMirror bool) bool {
	az = normalizeAz(az)
	d := c.Delimiters(incMirror)
	return az >= -symxform.Epsilon && az < d.AzMax-symxform.Epsilon &&
		alt >= d.AltMin-symxform.Epsilon && alt <= d.AltMax+symxform.Epsilon
}

func (c *CSym) AsymUnitPoints(incMirror bool) ([]symxform.Vec3, error) {
	return boxPoints(c.Delimiters(incMirror)), nil
}

func (c *CSym) AsymUnitTriangles(incMirror bool) ([]Triangle, error) {
	pts, err := c.AsymUnitPoints(incMirror)
	if err != nil {
		return nil, err
	}
	return fanTriangles(pts), nil
}

func (c *CSym) Reduce(t symxform.Transform, k int) (symxform.Transform, error) {
	return reduceGeneric(c, t, k)
}

// normalizeAz folds az into [0, 360).
func normalizeAz(az float64) float64 {
	for az < 0 {
		az += 360
	}
	for az >= 360 {
		az -= 360
	}
	return az
}
