package symmetry

import (
	"math"

	"github.com/emgeom/symxform"
)

// baldwinPenczekB computes the lower-altitude boundary (radians) of a
// platonic asymmetric unit's wedge at folded azimuth azPrime, per Baldwin
// and Penczek's closed-form description of the fundamental domain:
//
//	B(az', alpha) = atan( 1 / ( (sin(Sigma/2-az')/tan(thetaC/2) +
//	                             sin(az')/tan(alpha)) / sin(Sigma/2) ) )
func baldwinPenczekB(azPrime, alpha, halfSigma, thetaCHalf float64) float64 {
	denom := (math.Sin(halfSigma-azPrime)/math.Tan(thetaCHalf) + math.Sin(azPrime)/math.Tan(alpha)) / math.Sin(halfSigma)
	return math.Atan(1 / denom)
}

// platonicMember reports whether (altDeg, azDeg) lies in platonic group p's
// asymmetric unit: az is folded into the first half of the principal wedge
// (az' = min(az, Sigma-az)), and alt must clear the Baldwin-Penczek lower
// bound B(az', alpha). The tetrahedral group T lacks the up/down mirror the
// other platonic groups get for free from their table, so without
// incMirror an additional upper bound B(az', alpha/2) confines the point to
// one of T's two mirror-equivalent halves.
func platonicMember(p *Platonic, altDeg, azDeg float64, incMirror bool) bool {
	az := normalizeAz(azDeg)
	if az < -symxform.Epsilon || az > p.sigmaDeg+symxform.Epsilon {
		return false
	}
	azRad := deg2rad(az)
	altRad := deg2rad(altDeg)
	halfSigma := p.sigmaRad / 2
	azPrime := math.Min(azRad, p.sigmaRad-azRad)

	lower := baldwinPenczekB(azPrime, p.alphaRad, halfSigma, p.thetaCHalfRad)
	if altRad < lower-symxform.Epsilon {
		return false
	}
	if p.name == "tet" && !incMirror {
		upper := baldwinPenczekB(azPrime, p.alphaRad/2, halfSigma, p.thetaCHalfRad)
		if altRad > upper+symxform.Epsilon {
			return false
		}
	}
	return true
}

// platonicAsymUnitPoints approximates the boundary of a platonic group's
// spherical-triangle asymmetric unit as a polygon: an apex at az=0 (the top
// of the wedge, narrowed to T's upper mirror bound when incMirror is
// false), followed by a polyline sampling the Baldwin-Penczek lower
// boundary curve from az=0 to az=Sigma.
func platonicAsymUnitPoints(p *Platonic, incMirror bool) []symxform.Vec3 {
	topAlt := 180.0
	if p.name == "tet" && !incMirror {
		topAlt = rad2deg(baldwinPenczekB(0, p.alphaRad/2, p.sigmaRad/2, p.thetaCHalfRad))
	}
	const steps = 8
	pts := make([]symxform.Vec3, 0, steps+2)
	pts = append(pts, direction(0, topAlt))
	for i := 0; i <= steps; i++ {
		azDeg := p.sigmaDeg * float64(i) / float64(steps)
		azRad := deg2rad(azDeg)
		azPrime := math.Min(azRad, p.sigmaRad-azRad)
		altDeg := rad2deg(baldwinPenczekB(azPrime, p.alphaRad, p.sigmaRad/2, p.thetaCHalfRad))
		pts = append(pts, direction(azDeg, altDeg))
	}
	return pts
}
