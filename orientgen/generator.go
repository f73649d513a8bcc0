package orientgen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/npillmayer/schuko/tracing"

	"github.com/emgeom/symxform"
	"github.com/emgeom/symxform/symmetry"
)

func tracer() tracing.Trace {
	return tracing.Select("orientgen")
}

// Orientation is a single azimuth/altitude sample, in degrees, before the
// phi policy (RandomPhi / Phitoo) has been applied to turn it into a
// Transform.
type Orientation struct {
	Az, Alt float64
}

// Generator tiles the asymmetric unit of a symmetry group with sample
// orientations and returns them as fully-formed Transforms.
type Generator interface {
	Name() string
	Generate(g symmetry.Group) ([]symxform.Transform, error)
}

// Config bundles the parameters shared across generators. Exactly one of
// Delta (an angular step in degrees) or N (a target point count) must be
// set for Eman, Even and Saff; Random always takes N directly. IncMirror,
// RandomPhi and Phitoo apply uniformly across generators; Perturb is read
// only by the Eman/Even lattice; Use names Optimum's inner generator
// (default "saff"). EquatorRange is carried in the config but no generator
// reads it: a helical group's equatorial range is the one it was built with
// by symmetry.NewHSym.
type Config struct {
	Delta        float64
	N            int
	IncMirror    bool
	Perturb      bool
	RandomPhi    bool
	Phitoo       float64
	Use          string
	EquatorRange float64
	Seed         int64
	Iterations   int
}

// Parse constructs a Generator by name: eman, even, saff, rand, opt.
func Parse(name string, cfg Config) (Generator, error) {
	if cfg.Phitoo < 0 {
		return nil, ErrInvalidDelta
	}
	switch name {
	case "eman", "even":
		if err := validateDeltaOrN(cfg); err != nil {
			return nil, err
		}
		return &LatticeGenerator{Config: cfg, Delta: cfg.Delta, Hex: name == "eman", Rand: rand.New(rand.NewSource(cfg.Seed))}, nil
	case "saff":
		if err := validateDeltaOrN(cfg); err != nil {
			return nil, err
		}
		return &SaffGenerator{Config: cfg, Rand: rand.New(rand.NewSource(cfg.Seed))}, nil
	case "rand":
		if cfg.N <= 0 {
			return nil, ErrInvalidDelta
		}
		return &RandomGenerator{Config: cfg, Rand: rand.New(rand.NewSource(cfg.Seed))}, nil
	case "opt":
		useName := cfg.Use
		if useName == "" {
			useName = "saff"
		}
		baseCfg := cfg
		baseCfg.IncMirror = true
		base, err := Parse(useName, baseCfg)
		if err != nil {
			return nil, err
		}
		iters := cfg.Iterations
		if iters <= 0 {
			iters = 1000
		}
		return &OptimumGenerator{Base: base, Config: cfg, Iterations: iters, Rand: rand.New(rand.NewSource(cfg.Seed))}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
}

// validateDeltaOrN enforces the "exactly one of delta, n" rule shared by
// Eman, Even and Saff.
func validateDeltaOrN(cfg Config) error {
	if (cfg.Delta > 0) == (cfg.N > 0) {
		return ErrInvalidDelta
	}
	return nil
}

// resolveDelta returns cfg.Delta directly when set; otherwise it bisects
// for the delta whose point count (as reported by tally) matches cfg.N,
// bracketed to [0, 360/principalCSym] per the group's principal rotation.
func resolveDelta(cfg Config, g symmetry.Group, tally func(delta float64) (int, error)) (float64, error) {
	if cfg.Delta > 0 {
		return cfg.Delta, nil
	}
	if cfg.N <= 0 {
		return 0, ErrInvalidDelta
	}
	var tallyErr error
	delta := bisectDelta(cfg.N, g.PrincipalCSym(), func(d float64) int {
		n, err := tally(d)
		if err != nil {
			tallyErr = err
		}
		return n
	})
	if tallyErr != nil {
		return 0, tallyErr
	}
	return delta, nil
}

// bisectDelta finds the angular step that makes tally(step) equal to n, by
// bisection on the (monotone decreasing) point-count-vs-step relationship,
// bracketed to [0, 360/principalCSym].
func bisectDelta(n, principalCSym int, tally func(delta float64) int) float64 {
	lo, hi := 1e-6, 360.0/float64(principalCSym)
	for hi-lo > 1e-4 {
		mid := (lo + hi) / 2
		c := tally(mid)
		if c == n {
			return mid
		}
		if c > n {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// buildTransforms turns each (az, alt) sample into one or more Transforms
// per the phi policy: a single random phi (RandomPhi), a fan of phi,
// phi+Phitoo, ..., phi+(360-Phitoo) (Phitoo), or plain phi=0.
func buildTransforms(orients []Orientation, cfg Config, rng *rand.Rand) ([]symxform.Transform, error) {
	out := make([]symxform.Transform, 0, len(orients))
	for _, o := range orients {
		for _, phi := range phiValues(cfg, rng) {
			t, err := symxform.FromEuler(symxform.EMAN, o.Az, o.Alt, phi)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

func phiValues(cfg Config, rng *rand.Rand) []float64 {
	switch {
	case cfg.RandomPhi:
		return []float64{rng.Float64() * 360}
	case cfg.Phitoo > 0:
		var phis []float64
		for phi := 0.0; phi < 360-1e-9; phi += cfg.Phitoo {
			phis = append(phis, phi)
		}
		return phis
	default:
		return []float64{0}
	}
}

func deg2rad(d float64) float64 { return math.Pi / 180 * d }
func rad2deg(r float64) float64 { return 180 / math.Pi * r }
