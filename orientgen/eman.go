package orientgen

import (
	"math"
	"math/rand"

	"github.com/emgeom/symxform"
	"github.com/emgeom/symxform/symmetry"
)

// LatticeGenerator tiles a symmetry group's asymmetric unit in latitude
// bands of Delta degrees. When Hex is true (the "Eman" variant) the
// azimuthal step follows a hexagonal-mesh correction that keeps neighboring
// points roughly equidistant on the sphere; when false (the "Even" variant)
// each band gets a simpler, still latitude-scaled, constant step.
type LatticeGenerator struct {
	Config
	Delta float64
	Hex   bool
	Rand  *rand.Rand
}

func (l *LatticeGenerator) Name() string {
	if l.Hex {
		return "eman"
	}
	return "even"
}

func (l *LatticeGenerator) rng() *rand.Rand {
	if l.Rand != nil {
		return l.Rand
	}
	return rand.New(rand.NewSource(l.Seed))
}

// Generate resolves Delta directly, or by bisecting against N using
// generateAt as the tally oracle, then applies the phi policy (RandomPhi /
// Phitoo) to turn the resulting (az, alt) samples into transforms.
func (l *LatticeGenerator) Generate(g symmetry.Group) ([]symxform.Transform, error) {
	delta, err := resolveDelta(l.Config, g, func(d float64) (int, error) {
		pts, err := l.generateAt(g, d)
		return len(pts), err
	})
	if err != nil {
		return nil, err
	}
	pts, err := l.generateAt(g, delta)
	if err != nil {
		return nil, err
	}
	return buildTransforms(pts, l.Config, l.rng())
}

// generateAt is the tally-equivalent core loop: it scans latitude in steps
// of delta from the group's asymmetric-unit AltMin to AltMax, computing an
// azimuthal step per band, and keeps samples the group's own predicate
// accepts (a no-op for the box-shaped Cn/Dn/Hn units, a real filter for the
// platonic groups' curved boundary).
func (l *LatticeGenerator) generateAt(g symmetry.Group, delta float64) ([]Orientation, error) {
	if delta <= 0 {
		return nil, ErrInvalidDelta
	}
	d := g.Delimiters(l.IncMirror)
	principal := float64(g.PrincipalCSym())
	rng := l.rng()

	var out []Orientation
	for alt := d.AltMin; alt <= d.AltMax+1e-9; alt += delta {
		atBoundary := alt <= d.AltMin+1e-9 || alt >= d.AltMax-1e-9
		azMax := d.AzMax
		var step float64
		if l.Hex {
			h := math.Round(360.0/(delta*2/math.Sqrt(3))*math.Sin(deg2rad(alt))) * principal
			if h < principal {
				h = principal
			}
			step = 360.0 / h
		} else {
			s := math.Max(math.Sin(deg2rad(alt)), 0.05)
			nAz := int(math.Floor(azMax/(delta/s))) - 1
			if nAz < 1 {
				nAz = 1
			}
			step = azMax / float64(nAz)
		}
		if atBoundary {
			azMax -= step / 4
		}
		for az := 0.0; az < azMax-1e-9; az += step {
			sampleAlt, sampleAz := alt, az
			if l.Perturb && alt > d.AltMin+1e-9 {
				sampleAlt += rng.NormFloat64() * (delta / 4)
				sampleAz += rng.NormFloat64() * (step / 4)
			}
			if !g.InAsymUnit(sampleAlt, sampleAz, l.IncMirror) {
				continue
			}
			out = append(out, Orientation{Az: sampleAz, Alt: sampleAlt})
		}
	}
	return out, nil
}
