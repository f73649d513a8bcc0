package orientgen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/emgeom/symxform"
	"github.com/emgeom/symxform/symmetry"
)

// sampleAzAlt reads back the EMAN (az, alt) Euler angles of a transform,
// ignoring phi, for asymmetric-unit membership checks in these tests.
func sampleAzAlt(t symxform.Transform) (az, alt float64) {
	p, _ := t.GetRotation(symxform.EMAN)
	return p["az"], p["alt"]
}

func TestParseUnknownGenerator(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Parse("nonesuch", Config{Delta: 5})
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}

func TestParseRejectsBothDeltaAndN(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Parse("eman", Config{Delta: 5, N: 10})
	assert.ErrorIs(t, err, ErrInvalidDelta)
	_, err = Parse("saff", Config{})
	assert.ErrorIs(t, err, ErrInvalidDelta)
}

func TestEmanGeneratesPointsInAsymUnit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(4)
	assert.NoError(t, err)
	gen, err := Parse("eman", Config{Delta: 15})
	assert.NoError(t, err)
	pts, err := gen.Generate(g)
	assert.NoError(t, err)
	assert.NotEmpty(t, pts)
	for _, p := range pts {
		az, alt := sampleAzAlt(p)
		assert.True(t, g.InAsymUnit(alt, az, false), "point (az=%v, alt=%v) not in asymmetric unit", az, alt)
	}
}

func TestEvenGeneratesPointsInAsymUnit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(4)
	assert.NoError(t, err)
	gen, err := Parse("even", Config{Delta: 10})
	assert.NoError(t, err)
	pts, err := gen.Generate(g)
	assert.NoError(t, err)
	assert.NotEmpty(t, pts)
	for _, p := range pts {
		az, alt := sampleAzAlt(p)
		assert.True(t, g.InAsymUnit(alt, az, false))
	}
}

func TestEmanRespectsIncMirror(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(4)
	assert.NoError(t, err)
	genMirror, err := Parse("eman", Config{Delta: 15, IncMirror: true})
	assert.NoError(t, err)
	ptsMirror, err := genMirror.Generate(g)
	assert.NoError(t, err)

	genPlain, err := Parse("eman", Config{Delta: 15})
	assert.NoError(t, err)
	ptsPlain, err := genPlain.Generate(g)
	assert.NoError(t, err)

	assert.Greater(t, len(ptsMirror), len(ptsPlain))
}

func TestSaffGeneratesRoughlyNPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(4)
	assert.NoError(t, err)
	gen, err := Parse("saff", Config{N: 400})
	assert.NoError(t, err)
	pts, err := gen.Generate(g)
	assert.NoError(t, err)
	assert.InDelta(t, 400, len(pts), 40)
}

func TestRandomGeneratesExactCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(3)
	assert.NoError(t, err)
	gen, err := Parse("rand", Config{N: 50, Seed: 42})
	assert.NoError(t, err)
	pts, err := gen.Generate(g)
	assert.NoError(t, err)
	assert.Len(t, pts, 50)
	for _, p := range pts {
		az, alt := sampleAzAlt(p)
		assert.True(t, g.InAsymUnit(alt, az, false))
	}
}

func TestOptimumKeepsPointsInAsymUnit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(2)
	assert.NoError(t, err)
	base, err := Parse("saff", Config{N: 60})
	assert.NoError(t, err)
	basePts, err := base.Generate(g)
	assert.NoError(t, err)

	opt, err := Parse("opt", Config{N: 60, Seed: 7, Iterations: 3})
	assert.NoError(t, err)
	optPts, err := opt.Generate(g)
	assert.NoError(t, err)

	assert.NotEmpty(t, basePts)
	assert.NotEmpty(t, optPts)
	for _, p := range optPts {
		az, alt := sampleAzAlt(p)
		assert.True(t, g.InAsymUnit(alt, az, false))
	}
}

func TestOptimumDefaultsUseToSaff(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opt, err := Parse("opt", Config{N: 30})
	assert.NoError(t, err)
	og, ok := opt.(*OptimumGenerator)
	assert.True(t, ok)
	assert.Equal(t, "saff", og.Base.Name())
}

func TestBisectDeltaConverges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := symmetry.NewCSym(4)
	assert.NoError(t, err)
	l := &LatticeGenerator{Hex: true}
	count := func(delta float64) int {
		pts, _ := l.generateAt(g, delta)
		return len(pts)
	}
	delta := bisectDelta(50, g.PrincipalCSym(), count)
	assert.Greater(t, delta, 0.0)
}
