package symmetry

import (
	"fmt"

	"github.com/emgeom/symxform"
)

// DSym is the dihedral point group Dn: the n rotations of Cn about Z, plus
// those n rotations each followed by a 180-degree flip about the X axis.
type DSym struct {
	n int
}

// NewDSym constructs a Dn symmetry group.
func NewDSym(n int) (*DSym, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %w (n=%d)", symxform.ErrInvalidParameter, errBadOrder, n)
	}
	return &DSym{n: n}, nil
}

func (d *DSym) Name() string               { return fmt.Sprintf("d%d", d.n) }
func (d *DSym) NSym() int                  { return 2 * d.n }
func (d *DSym) PrincipalCSym() int         { return d.n }
func (d *DSym) AzAlignmentOffset() float64 { return 0 }

func (d *DSym) Get(k int) (symxform.Transform, error) {
	if k < 0 || k >= 2*d.n {
		return symxform.Transform{}, errIndex(k, 2*d.n)
	}
	phi := float64(k%d.n) * 360.0 / float64(d.n)
	cn := symxform.Identity()
	if err := cn.SetRotation(symxform.EMAN, symxform.EulerParams{"az": 0, "alt": 0, "phi": phi}); err != nil {
		return symxform.Transform{}, err
	}
	if k < d.n {
		return cn, nil
	}
	flip := symxform.Identity()
	if err := flip.SetRotation(symxform.EMAN, symxform.EulerParams{"az": 0, "alt": 180, "phi": 0}); err != nil {
		return symxform.Transform{}, err
	}
	return flip.Compose(cn), nil
}

// Delimiters bounds the asymmetric unit: the X-axis flip halves the sphere
// in altitude regardless of mirror inclusion, but the azimuthal wedge is
// half as wide (180/n) without the mirror as with it (360/n), since folding
// the mirror in doubles the azimuthal range a single element needs to cover.
func (d *DSym) Delimiters(incMirror bool) Delimiters {
	azMax := 180.0 / float64(d.n)
	if incMirror {
		azMax = 360.0 / float64(d.n)
	}
	return Delimiters{AltMin: 0, AltMax: 90, AzMax: azMax}
}

func (d *DSym) InAsymUnit(alt, az float64, incMirror bool) bool {
	az = normalizeAz(az)
	dl := d.Delimiters(incMirror)
	return az >= -symxform.Epsilon && az < dl.AzMax-symxform.Epsilon && alt <= dl.AltMax+symxform.Epsilon
}

func (d *DSym) AsymUnitPoints(incMirror bool) ([]symxform.Vec3, error) {
	return boxPoints(d.Delimiters(incMirror)), nil
}

func (d *DSym) AsymUnitTriangles(incMirror bool) ([]Triangle, error) {
	pts, err := d.AsymUnitPoints(incMirror)
	if err != nil {
		return nil, err
	}
	return fanTriangles(pts), nil
}

func (d *DSym) Reduce(t symxform.Transform, k int) (symxform.Transform, error) {
	return reduceGeneric(d, t, k)
}
