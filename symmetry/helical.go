package symmetry

import (
	"fmt"

	"github.com/emgeom/symxform"
)

// HSym is a helical (screw) symmetry: a truncated list of nsym subunits,
// each related to the previous by a rotation of daz degrees about Z and a
// translation of dz/apix along Z. Unlike Cn/Dn/platonic groups, this is not
// a finite point group; nsym is the caller-chosen truncation (e.g. the
// number of asymmetric units actually present in a filament segment).
//
// apix is the pixel size (in whatever length unit dz is given in); Get
// divides dz by it, so the rise it applies is in pixels. equatorRange is
// the half-width, in degrees, of the equatorial fundamental domain around
// alt=90.
type HSym struct {
	nsym         int
	daz          float64
	dz           float64
	apix         float64
	equatorRange float64
}

// NewHSym constructs a helical symmetry with an explicit rise. daz is the
// azimuthal rotation per subunit in degrees; if zero, it defaults to a pure
// Cn-equivalent step of 360/nsym. apix is the pixel size used to interpret
// dz physically; equatorRange is the half-width of the equatorial
// fundamental domain, in degrees.
func NewHSym(nsym int, daz, dz, apix, equatorRange float64) (*HSym, error) {
	if nsym <= 0 {
		return nil, fmt.Errorf("%w: %w (nsym=%d)", symxform.ErrInvalidParameter, errBadOrder, nsym)
	}
	if daz == 0 {
		daz = 360.0 / float64(nsym)
	}
	if apix == 0 {
		apix = 1
	}
	return &HSym{nsym: nsym, daz: daz, dz: dz, apix: apix, equatorRange: equatorRange}, nil
}

func (h *HSym) Name() string       { return fmt.Sprintf("h%d", h.nsym) }
func (h *HSym) NSym() int          { return h.nsym }
func (h *HSym) PrincipalCSym() int { return h.nsym }
func (h *HSym) AzAlignmentOffset() float64 { return 0 }

// Get returns the k-th subunit transform: a rotation of k*daz about Z
// composed with a rise of k*dz along Z, enumerated bidirectionally around
// the equator (k runs over both senses of the screw axis, centered at the
// equator rather than starting from one end).
func (h *HSym) Get(k int) (symxform.Transform, error) {
	if k < 0 || k >= h.nsym {
		return symxform.Transform{}, errIndex(k, h.nsym)
	}
	offset := k - h.nsym/2
	t := symxform.Identity()
	phi := float64(offset) * h.daz
	if err := t.SetRotation(symxform.EMAN, symxform.EulerParams{"az": 0, "alt": 0, "phi": phi}); err != nil {
		return symxform.Transform{}, err
	}
	t.SetPosttrans(symxform.V(0, 0, float64(offset)*h.dz/h.apix))
	return t, nil
}

// Delimiters bounds the asymmetric unit to the equatorial fundamental
// domain: alt in [90, 90+equatorRange] without the mirror, widened down to
// [90-equatorRange, 90+equatorRange] with it. Azimuth carries no
// restriction: the screw axis has no discrete azimuthal period to fold on.
func (h *HSym) Delimiters(incMirror bool) Delimiters {
	altMin := 90.0
	if incMirror {
		altMin = 90.0 - h.equatorRange
	}
	return Delimiters{AltMin: altMin, AltMax: 90.0 + h.equatorRange, AzMax: 360}
}

func (h *HSym) InAsymUnit(alt, az float64, incMirror bool) bool {
	d := h.Delimiters(incMirror)
	return alt >= d.AltMin-symxform.Epsilon && alt <= d.AltMax+symxform.Epsilon
}

func (h *HSym) AsymUnitPoints(incMirror bool) ([]symxform.Vec3, error) {
	return boxPoints(h.Delimiters(incMirror)), nil
}

func (h *HSym) AsymUnitTriangles(incMirror bool) ([]Triangle, error) {
	pts, err := h.AsymUnitPoints(incMirror)
	if err != nil {
		return nil, err
	}
	return fanTriangles(pts), nil
}

func (h *HSym) Reduce(t symxform.Transform, k int) (symxform.Transform, error) {
	return reduceGeneric(h, t, k)
}
