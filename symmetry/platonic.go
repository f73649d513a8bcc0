package symmetry

import (
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/emgeom/symxform"
)

// eulerTriple is one (az, alt, phi) rotation, in degrees, of a platonic
// group's precomputed table.
type eulerTriple struct{ az, alt, phi float64 }

// tetTable holds the 12 rotations of the tetrahedral group T: the 3
// rotations about the Z axis at alt=0 (az 0, 120, 240) and the 9 remaining
// rotations at alt=acos(-1/3) ≈ 109.47°, the angle between two vertex
// directions of the tetrahedron.
var tetTable = buildTetTable()

func buildTetTable() []eulerTriple {
	const lvl1 = 109.47122063449069 // acos(-1/3) in degrees
	azs := []float64{0, 120, 240}
	t := make([]eulerTriple, 0, 12)
	for _, az := range azs {
		t = append(t, eulerTriple{az, 0, 0})
	}
	for _, az := range azs {
		for _, phi := range []float64{60, 180, 300} {
			t = append(t, eulerTriple{az, lvl1, phi})
		}
	}
	return t
}

// octTable holds the 24 rotations of the octahedral group O, in three
// altitude bands (0, 90, 180) matching the cube's face/vertex structure.
var octTable = buildOctTable()

func buildOctTable() []eulerTriple {
	azs := []float64{0, 90, 180, 270}
	t := make([]eulerTriple, 0, 24)
	for _, az := range azs {
		t = append(t, eulerTriple{az, 0, 0})
	}
	for _, az := range azs {
		for _, phi := range []float64{0, 90, 180, 270} {
			t = append(t, eulerTriple{az, 90, phi})
		}
	}
	for _, az := range azs {
		t = append(t, eulerTriple{az, 180, 0})
	}
	return t
}

// icosTable holds the 60 rotations of the icosahedral group I, in four
// altitude bands built from the icosahedron's vertex geometry (atan(2) is
// the angle between neighbouring 5-fold axes; the third band uses its
// supplement).
var icosTable = buildIcosTable()

func buildIcosTable() []eulerTriple {
	const lvl1 = 63.43494882292201  // atan(2) in degrees
	const lvl2 = 180 - lvl1
	azA := []float64{0, 72, 144, 216, 288}
	azB := []float64{36, 108, 180, 252, 324}
	phiSet := []float64{0, 288, 216, 144, 72}
	phiSetB := []float64{36, 324, 252, 180, 108}

	t := make([]eulerTriple, 0, 60)
	for _, phi := range phiSet {
		t = append(t, eulerTriple{0, 0, phi})
	}
	for _, az := range azA {
		for _, phi := range phiSetB {
			t = append(t, eulerTriple{az, lvl1, phi})
		}
	}
	for _, az := range azB {
		for _, phi := range phiSet {
			t = append(t, eulerTriple{az, lvl2, phi})
		}
	}
	for _, phi := range phiSet {
		t = append(t, eulerTriple{0, 180, phi})
	}
	return t
}

// Platonic is a T/O/I point group, backed by a treemap from element index
// to its precomputed Euler triple: the table is small and dense, but a
// treemap keeps lookup uniform with the rest of this package's ordered
// traversal style and leaves room for sparse/lazy tables.
//
// principalCSym is the order of the highest-order rotation about Z (3 for
// T, 4 for O, 5 for I); sigmaRad/sigmaDeg, alphaRad and thetaCHalfRad are
// the Baldwin-Penczek constants for this group's asymmetric-unit predicate,
// precomputed once from principalCSym.
type Platonic struct {
	name          string
	table         *treemap.Map
	n             int
	principalCSym int
	sigmaRad      float64
	sigmaDeg      float64
	alphaRad      float64
	thetaCHalfRad float64
}

func newPlatonic(name string, rows []eulerTriple, principalCSym int) (*Platonic, error) {
	tm := treemap.NewWith(utils.IntComparator)
	for i, r := range rows {
		tm.Put(i, r)
	}
	sigmaRad := 2 * math.Pi / float64(principalCSym)
	alphaRad := math.Acos(1 / (math.Sqrt(3) * math.Tan(sigmaRad/2)))
	thetaCHalfRad := 0.5 * math.Acos(math.Cos(sigmaRad)/(1-math.Cos(sigmaRad)))
	return &Platonic{
		name:          name,
		table:         tm,
		n:             len(rows),
		principalCSym: principalCSym,
		sigmaRad:      sigmaRad,
		sigmaDeg:      rad2deg(sigmaRad),
		alphaRad:      alphaRad,
		thetaCHalfRad: thetaCHalfRad,
	}, nil
}

func (p *Platonic) Name() string               { return p.name }
func (p *Platonic) NSym() int                  { return p.n }
func (p *Platonic) PrincipalCSym() int         { return p.principalCSym }
func (p *Platonic) AzAlignmentOffset() float64 { return 0 }

func (p *Platonic) Get(k int) (symxform.Transform, error) {
	v, found := p.table.Get(k)
	if !found {
		return symxform.Transform{}, errIndex(k, p.n)
	}
	row := v.(eulerTriple)
	return symxform.FromEuler(symxform.EMAN, row.az, row.alt, row.phi)
}

// Delimiters bounds the coarse box the Baldwin-Penczek predicate further
// narrows: the full altitude range and one principal-symmetry wedge of
// azimuth (2*pi/principalCSym, the capital-Sigma of the formula).
func (p *Platonic) Delimiters(incMirror bool) Delimiters {
	return Delimiters{AltMin: 0, AltMax: 180, AzMax: p.sigmaDeg}
}

// InAsymUnit applies the Baldwin-Penczek closed-form membership test.
func (p *Platonic) InAsymUnit(alt, az float64, incMirror bool) bool {
	return platonicMember(p, alt, az, incMirror)
}

func (p *Platonic) AsymUnitPoints(incMirror bool) ([]symxform.Vec3, error) {
	return platonicAsymUnitPoints(p, incMirror), nil
}

func (p *Platonic) AsymUnitTriangles(incMirror bool) ([]Triangle, error) {
	pts, err := p.AsymUnitPoints(incMirror)
	if err != nil {
		return nil, err
	}
	return fanTriangles(pts), nil
}

func (p *Platonic) Reduce(t symxform.Transform, k int) (symxform.Transform, error) {
	return reduceGeneric(p, t, k)
}
