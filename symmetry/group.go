package symmetry

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	"github.com/emgeom/symxform"
)

func tracer() tracing.Trace {
	return tracing.Select("symmetry")
}

// Delimiters bounds the (altitude, azimuth) box a group's asymmetric unit
// lives in, in degrees: alt in [AltMin, AltMax], az in [0, AzMax). Cn, Dn
// and Hn's asymmetric units are exactly this box; the platonic groups
// narrow it further with a closed-form predicate.
type Delimiters struct {
	AltMin, AltMax float64
	AzMax          float64
}

// Triangle is a flat (chordal) triangle on the unit sphere, used both to
// describe the boundary of an asymmetric unit (AsymUnitTriangles) and as the
// hosting region a Reduce lookup searches.
type Triangle struct {
	A, B, C symxform.Vec3
}

// Group is a point-group symmetry: a finite (or, for Helical, truncated)
// list of symmetry-related transforms, an asymmetric-unit predicate and
// delimiter box over (altitude, azimuth) orientation angles (degrees), a
// boundary description of that unit as a spherical polygon, and a reduction
// of an arbitrary rotation into a canonical representative inside it.
//
// Every predicate, delimiter and boundary query takes an incMirror flag: it
// decides whether the group's own up/down mirror plane (present in Cn, Dn
// and the helical equatorial band; the T group's extra azimuthal split) is
// folded into the unit or left as a separate half.
type Group interface {
	// Name is the canonical group name, e.g. "c4", "d3", "icos".
	Name() string
	// NSym is the number of symmetry-related transforms in the group.
	NSym() int
	// Get returns the n-th symmetry-related transform, n in [0, NSym()).
	Get(n int) (symxform.Transform, error)
	// PrincipalCSym is the order of the highest-order rotation about Z this
	// group contains: n for Cn/Dn, 3/4/5 for T/O/I.
	PrincipalCSym() int
	// AzAlignmentOffset is the azimuthal rotation, in degrees, that aligns
	// this group's table/construction with az=0; 0 for every group built
	// here.
	AzAlignmentOffset() float64
	// Delimiters returns the (alt, az) box the asymmetric unit is bounded
	// by, for the given mirror inclusion.
	Delimiters(incMirror bool) Delimiters
	// InAsymUnit reports whether the orientation (alt, az), in degrees,
	// lies within this group's asymmetric unit.
	InAsymUnit(alt, az float64, incMirror bool) bool
	// AsymUnitPoints returns the vertices of the spherical polygon bounding
	// the asymmetric unit, as unit direction vectors.
	AsymUnitPoints(incMirror bool) ([]symxform.Vec3, error)
	// AsymUnitTriangles fans AsymUnitPoints into oriented triangles sharing
	// the polygon's first vertex: (v0,v2,v1), (v0,v3,v2), ...
	AsymUnitTriangles(incMirror bool) ([]Triangle, error)
	// Reduce rotates the Z pole by t's transpose, finds the group element
	// whose (mirror-included) asymmetric-unit triangle hosts the rotated
	// pole, and returns t . g_soln^T . g_k.
	Reduce(t symxform.Transform, k int) (symxform.Transform, error)
}

var nameRe = regexp.MustCompile(`^(c|d|h)([0-9]+)$`)

// Parse constructs a Group from its canonical name: c<n>, d<n>, h<n>, tet,
// oct, icos. The bare name "i" denotes the trivial group C1 ("no symmetry
// imposed"), not icos.
func Parse(name string) (Group, error) {
	switch name {
	case "tet":
		return newPlatonic("tet", tetTable, 3)
	case "oct":
		return newPlatonic("oct", octTable, 4)
	case "icos":
		return newPlatonic("icos", icosTable, 5)
	case "i":
		return NewCSym(1)
	}
	m := nameRe.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	switch m[1] {
	case "c":
		return NewCSym(n)
	case "d":
		return NewDSym(n)
	case "h":
		return NewHSym(n, 0, 0, 1, 0)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
}

// direction converts an (az, alt) orientation, in degrees, to the unit
// vector it points to under the standard spherical parametrization: alt is
// the polar angle from the Z axis, az the azimuth around it.
func direction(az, alt float64) symxform.Vec3 {
	a := deg2rad(az)
	b := deg2rad(alt)
	sb := math.Sin(b)
	return symxform.V(sb*math.Cos(a), sb*math.Sin(a), math.Cos(b))
}

// dirToAzAlt is the inverse of direction.
func dirToAzAlt(v symxform.Vec3) (az, alt float64) {
	z := v.Z
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	alt = rad2deg(math.Acos(z))
	az = rad2deg(math.Atan2(v.Y, v.X))
	return normalizeAz(az), alt
}

func deg2rad(d float64) float64 { return math.Pi / 180 * d }
func rad2deg(r float64) float64 { return 180 / math.Pi * r }

// rotateOrientation applies t's rotation to the direction described by
// (az, alt) and reads the result back off as (az, alt).
func rotateOrientation(t symxform.Transform, az, alt float64) (float64, float64) {
	return dirToAzAlt(t.Rotate(direction(az, alt)))
}

// boxPoints builds the four corners of a (az, alt) delimiter box, ordered
// for fanTriangles: (0,altMin), (azMax,altMin), (azMax,altMax), (0,altMax).
func boxPoints(d Delimiters) []symxform.Vec3 {
	return []symxform.Vec3{
		direction(0, d.AltMin),
		direction(d.AzMax, d.AltMin),
		direction(d.AzMax, d.AltMax),
		direction(0, d.AltMax),
	}
}

// fanTriangles fans a polygon (v0, v1, ..., vn) into oriented triangles
// sharing the first vertex: (v0,v2,v1), (v0,v3,v2), ...
func fanTriangles(pts []symxform.Vec3) []Triangle {
	if len(pts) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(pts)-2)
	for i := 2; i < len(pts); i++ {
		tris = append(tris, Triangle{pts[0], pts[i], pts[i-1]})
	}
	return tris
}

// sphericalTriangleContains reports whether the direction p lies within the
// spherical triangle tri, by checking that p sits on a consistent side of
// the three great circles through tri's edges: the chordal analogue of a
// barycentric ray-triangle test, since tri's vertices and p are already
// unit vectors.
func sphericalTriangleContains(tri Triangle, p symxform.Vec3, eps float64) bool {
	s1 := tri.A.Cross(tri.B).Dot(p)
	s2 := tri.B.Cross(tri.C).Dot(p)
	s3 := tri.C.Cross(tri.A).Dot(p)
	if s1 >= -eps && s2 >= -eps && s3 >= -eps {
		return true
	}
	if s1 <= eps && s2 <= eps && s3 <= eps {
		return true
	}
	return false
}

// reduceGeneric is the shared Reduce() implementation. It rotates the north
// pole by t's transpose, then walks the group elements in index order,
// testing the rotated pole against each element's image of the (mirror
// included) asymmetric-unit triangle fan; the first hosting element found
// is g_soln, so ties at a shared edge are broken by lowest index.
func reduceGeneric(g Group, t symxform.Transform, k int) (symxform.Transform, error) {
	tt := t
	tt.Transpose()
	p := tt.Rotate(symxform.V(0, 0, 1))

	base, err := g.AsymUnitTriangles(true)
	if err != nil {
		return symxform.Transform{}, err
	}
	for idx := 0; idx < g.NSym(); idx++ {
		elem, err := g.Get(idx)
		if err != nil {
			continue
		}
		for _, tri := range base {
			rotated := Triangle{elem.Rotate(tri.A), elem.Rotate(tri.B), elem.Rotate(tri.C)}
			if !sphericalTriangleContains(rotated, p, symxform.Epsilon*10) {
				continue
			}
			gSoln := elem
			gSoln.Transpose()
			gk, err := g.Get(k)
			if err != nil {
				return symxform.Transform{}, err
			}
			return t.Compose(gSoln).Compose(gk), nil
		}
	}
	tracer().Errorf("Reduce: no symmetry element of %s hosts the rotated pole in its asymmetric-unit triangle", g.Name())
	return symxform.Transform{}, fmt.Errorf("%w: reduce found no hosting asymmetric-unit triangle", symxform.ErrNumeric)
}
