package orientgen

import (
	"math"
	"math/rand"

	"github.com/emgeom/symxform"
	"github.com/emgeom/symxform/symmetry"
)

// RandomGenerator draws N orientations uniformly distributed over the
// sphere by rejection sampling inside the unit disk (Marsaglia's method:
// draw (u1,u2) uniformly in [-1,1]^2 until u1^2+u2^2 <= 1, then map to a
// unit direction), reduces each draw through the group into its
// asymmetric-unit representative, and keeps it once the reduction lands in
// the unit under the requested mirror policy.
type RandomGenerator struct {
	Config
	Rand *rand.Rand
}

func (r *RandomGenerator) Name() string { return "rand" }

func (r *RandomGenerator) rng() *rand.Rand {
	if r.Rand != nil {
		return r.Rand
	}
	return rand.New(rand.NewSource(r.Seed))
}

func (r *RandomGenerator) Generate(g symmetry.Group) ([]symxform.Transform, error) {
	if r.N <= 0 {
		return nil, ErrInvalidDelta
	}
	rng := r.rng()
	orients := make([]Orientation, 0, r.N)
	const maxTries = 1_000_000
	tries := 0
	for len(orients) < r.N && tries < maxTries {
		tries++
		u1 := 2*rng.Float64() - 1
		u2 := 2*rng.Float64() - 1
		s := u1*u1 + u2*u2
		if s > 1 {
			continue
		}
		root := math.Sqrt(1 - s)
		dir := symxform.V(2*u1*root, 2*u2*root, 2*s-1)
		az, alt := dirToAzAlt(dir)
		t, err := symxform.FromEuler(symxform.EMAN, az, alt, 0)
		if err != nil {
			return nil, err
		}
		reduced, err := g.Reduce(t, 0)
		if err != nil {
			continue
		}
		pole := reduced
		pole.Transpose()
		razAz, razAlt := dirToAzAlt(pole.Rotate(symxform.V(0, 0, 1)))
		if !g.InAsymUnit(razAlt, razAz, r.IncMirror) {
			continue
		}
		orients = append(orients, Orientation{Az: razAz, Alt: razAlt})
	}
	if len(orients) < r.N {
		tracer().Errorf("Random.Generate: only found %d/%d points within rejection budget", len(orients), r.N)
	}
	return buildTransforms(orients, r.Config, rng)
}

// dirToAzAlt is the local (az, alt) readback of a unit direction, kept here
// rather than imported from symmetry since that package's version is
// unexported.
func dirToAzAlt(v symxform.Vec3) (az, alt float64) {
	z := v.Z
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	alt = rad2deg(math.Acos(z))
	az = rad2deg(math.Atan2(v.Y, v.X))
	if az < 0 {
		az += 360
	}
	return az, alt
}
