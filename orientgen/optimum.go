package orientgen

import (
	"math"
	"math/rand"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"

	"github.com/emgeom/symxform"
	"github.com/emgeom/symxform/symmetry"
)

// OptimumGenerator starts from a Base generator's sampling over the full
// sphere (a trivial C1 group, inc_mirror true, regardless of the target
// group g) and iteratively nudges close pairs of points apart, repeating
// for Iterations rounds, before keeping only the points that fall in g's
// own asymmetric unit. Each round enqueues every pair in a priorityqueue
// ordered by the pair's geodesic distance at the start of the round, then
// relaxes as many of the closest pairs as there are points, closest first;
// distances are not re-ranked within a round.
type OptimumGenerator struct {
	Base       Generator
	Config
	Iterations int
	Rand       *rand.Rand
}

func (o *OptimumGenerator) Name() string { return "opt" }

func (o *OptimumGenerator) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(o.Seed))
}

type candidatePair struct {
	dist float64
	i, j int
}

func (o *OptimumGenerator) Generate(g symmetry.Group) ([]symxform.Transform, error) {
	full, err := symmetry.NewCSym(1)
	if err != nil {
		return nil, err
	}
	base, err := o.Base.Generate(full)
	if err != nil {
		return nil, err
	}
	rng := o.rng()
	if len(base) < 2 {
		return filterAndBuild(base, g, o.Config, rng)
	}

	dirs := make([]dir3, len(base))
	for i, t := range base {
		p, err := t.GetRotation(symxform.EMAN)
		if err != nil {
			return nil, err
		}
		dirs[i] = toDir(Orientation{Az: p["az"], Alt: p["alt"]})
	}

	relaxRounds := o.Iterations
	if relaxRounds <= 0 {
		relaxRounds = 1000
	}
	movesPerRound := len(dirs)

	for round := 0; round < relaxRounds; round++ {
		pq := priorityqueue.NewWith(func(a, b interface{}) int {
			return utils.Float64Comparator(a.(candidatePair).dist, b.(candidatePair).dist)
		})
		for i := 0; i < len(dirs); i++ {
			for j := i + 1; j < len(dirs); j++ {
				pq.Enqueue(candidatePair{dist: dirs[i].angleTo(dirs[j]), i: i, j: j})
			}
		}
		for m := 0; m < movesPerRound; m++ {
			v, ok := pq.Dequeue()
			if !ok {
				break
			}
			cp := v.(candidatePair)
			nudgeApart(&dirs[cp.i], &dirs[cp.j], cp.dist, rng)
		}
	}

	orients := make([]Orientation, len(dirs))
	for i, d := range dirs {
		az, alt := d.toAzAlt()
		orients[i] = Orientation{Az: az, Alt: alt}
	}
	return filterOrientsAndBuild(orients, g, o.Config, rng)
}

func filterAndBuild(transforms []symxform.Transform, g symmetry.Group, cfg Config, rng *rand.Rand) ([]symxform.Transform, error) {
	orients := make([]Orientation, len(transforms))
	for i, t := range transforms {
		p, err := t.GetRotation(symxform.EMAN)
		if err != nil {
			return nil, err
		}
		orients[i] = Orientation{Az: p["az"], Alt: p["alt"]}
	}
	return filterOrientsAndBuild(orients, g, cfg, rng)
}

func filterOrientsAndBuild(orients []Orientation, g symmetry.Group, cfg Config, rng *rand.Rand) ([]symxform.Transform, error) {
	kept := make([]Orientation, 0, len(orients))
	for _, o := range orients {
		if g.InAsymUnit(o.Alt, o.Az, cfg.IncMirror) {
			kept = append(kept, o)
		}
	}
	return buildTransforms(kept, cfg, rng)
}

// dir3 is a unit direction vector; kept local to avoid a hard dependency of
// this repulsion pass on symxform.Vec3's fuller API.
type dir3 struct{ x, y, z float64 }

func toDir(o Orientation) dir3 {
	a := math.Pi / 180 * o.Az
	b := math.Pi / 180 * o.Alt
	s := math.Sin(b)
	return dir3{s * math.Cos(a), s * math.Sin(a), math.Cos(b)}
}

func (d dir3) toAzAlt() (az, alt float64) {
	alt = math.Acos(clamp(d.z, -1, 1)) * 180 / math.Pi
	az = math.Atan2(d.y, d.x) * 180 / math.Pi
	if az < 0 {
		az += 360
	}
	return az, alt
}

func (d dir3) angleTo(o dir3) float64 {
	dot := clamp(d.x*o.x+d.y*o.y+d.z*o.z, -1, 1)
	return math.Acos(dot)
}

func (d dir3) normalized() dir3 {
	l := math.Sqrt(d.x*d.x + d.y*d.y + d.z*d.z)
	if l == 0 {
		return d
	}
	return dir3{d.x / l, d.y / l, d.z / l}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nudgeApart moves a and b further apart by about 1% of their current
// separation (each takes half of that step along the chord between them),
// then renormalizes both to stay on the sphere, on the great circle through
// them.
func nudgeApart(a, b *dir3, dist float64, rng *rand.Rand) {
	const fraction = 0.01
	step := fraction * dist / 2
	diff := dir3{a.x - b.x, a.y - b.y, a.z - b.z}
	if diff.x == 0 && diff.y == 0 && diff.z == 0 {
		// Coincident points: push them apart in a random direction to break
		// the tie.
		diff = dir3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
		step = fraction / 2
	}
	diff = diff.normalized()
	*a = dir3{a.x + step*diff.x, a.y + step*diff.y, a.z + step*diff.z}.normalized()
	*b = dir3{b.x - step*diff.x, b.y - step*diff.y, b.z - step*diff.z}.normalized()
}
