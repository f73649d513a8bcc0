package symxform

import (
	"fmt"
	"math"
)

// RotationKind identifies one of the Euler-angle (or direct) rotation
// conventions supported by SetRotation/GetRotation.
type RotationKind int

const (
	EMAN RotationKind = iota
	IMAGIC
	SPIDER
	MRC
	XYZ
	QUATERNION
	SPIN
	SGIROT
	MATRIX
)

func (k RotationKind) String() string {
	switch k {
	case EMAN:
		return "eman"
	case IMAGIC:
		return "imagic"
	case SPIDER:
		return "spider"
	case MRC:
		return "mrc"
	case XYZ:
		return "xyz"
	case QUATERNION:
		return "quaternion"
	case SPIN:
		return "spin"
	case SGIROT:
		return "sgirot"
	case MATRIX:
		return "matrix"
	}
	return "unknown"
}

// EulerParams is a small typed-map for rotation parameters, keyed by the
// convention-specific names used throughout this package ("az", "alt",
// "phi", "e0".."e3", "m11".."m33", ...). It is the lightweight stand-in for
// the source's mutable params dictionary, scoped to exactly what a
// rotation conversion needs.
type EulerParams map[string]float64

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

func normalizeDeg(a float64) float64 {
	a = math.Mod(a+180.0, 360.0)
	if a < 0 {
		a += 360.0
	}
	return a - 180.0
}

// FromEuler constructs an identity-translation Transform with rotation set
// from the given convention and angles (degrees).
func FromEuler(kind RotationKind, a1, a2, a3 float64) (Transform, error) {
	t := Identity()
	var p EulerParams
	switch kind {
	case EMAN, IMAGIC:
		p = EulerParams{namesFor(kind)[0]: a1, namesFor(kind)[1]: a2, namesFor(kind)[2]: a3}
	case SPIDER:
		p = EulerParams{"phi": a1, "theta": a2, "psi": a3}
	case MRC:
		p = EulerParams{"phi": a1, "theta": a2, "omega": a3}
	case XYZ:
		p = EulerParams{"xtilt": a1, "ytilt": a2, "ztilt": a3}
	default:
		return Transform{}, fmt.Errorf("%w: %s takes a different parameter shape, use SetRotation directly", ErrInvalidConvention, kind)
	}
	if err := t.SetRotation(kind, p); err != nil {
		return Transform{}, err
	}
	return t, nil
}

func namesFor(kind RotationKind) [3]string {
	if kind == IMAGIC {
		return [3]string{"alpha", "beta", "gamma"}
	}
	return [3]string{"az", "alt", "phi"}
}

// FromMatrix constructs a Transform directly from nine rotation-matrix
// entries (row-major m11..m33).
func FromMatrix(m11, m12, m13, m21, m22, m23, m31, m32, m33 float64) Transform {
	t := Identity()
	_ = t.SetRotation(MATRIX, EulerParams{
		"m11": m11, "m12": m12, "m13": m13,
		"m21": m21, "m22": m22, "m23": m23,
		"m31": m31, "m32": m32, "m33": m33,
	})
	return t
}

// FromAxisAngle constructs a Transform rotating by omegaDeg degrees around
// axis (need not be pre-normalized).
func FromAxisAngle(axis Vec3, omegaDeg float64) (Transform, error) {
	n := axis.Normalized()
	if n.IsZero() {
		return Transform{}, fmt.Errorf("%w: axis-angle rotation needs a non-zero axis", ErrNumeric)
	}
	t := Identity()
	err := t.SetRotation(SPIN, EulerParams{"n1": n.X, "n2": n.Y, "n3": n.Z, "Omega": omegaDeg})
	return t, err
}

// FromQuaternion constructs a Transform from unit quaternion components.
func FromQuaternion(e0, e1, e2, e3 float64) Transform {
	t := Identity()
	_ = t.SetRotation(QUATERNION, EulerParams{"e0": e0, "e1": e1, "e2": e2, "e3": e3})
	return t
}

// SetRotation sets t's rotation-and-scale block from the given convention
// and parameter dict. The internal representation is always the 3x3
// matrix; the Euler-angle conventions (EMAN, IMAGIC, SPIDER, MRC, XYZ)
// route through EMAN (az, alt, phi) as the canonical intermediate form,
// SPIN/SGIROT route through a unit quaternion, and MATRIX is copied as is.
func (t *Transform) SetRotation(kind RotationKind, p EulerParams) error {
	var r [3][3]float64
	switch kind {
	case EMAN, IMAGIC, SPIDER, MRC, XYZ:
		az, alt, phi, err := toEman(kind, p)
		if err != nil {
			return err
		}
		r = emanToR(az, alt, phi)
	case QUATERNION:
		e0, e1, e2, e3 := p["e0"], p["e1"], p["e2"], p["e3"]
		r = quaternionToR(normalizeQuaternion(e0, e1, e2, e3))
	case SPIN, SGIROT:
		omegaKey := "Omega"
		if kind == SGIROT {
			omegaKey = "q"
		}
		omega := p[omegaKey]
		n := V(p["n1"], p["n2"], p["n3"]).Normalized()
		half := deg2rad * omega / 2
		e0 := math.Cos(half)
		s := math.Sin(half)
		r = quaternionToR([4]float64{e0, s * n.X, s * n.Y, s * n.Z})
	case MATRIX:
		r = [3][3]float64{
			{p["m11"], p["m12"], p["m13"]},
			{p["m21"], p["m22"], p["m23"]},
			{p["m31"], p["m32"], p["m33"]},
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConvention, kind)
	}
	// Preserve the existing pre/post-translation split: recompute t_total
	// from the new rotation block and the currently stored p_pre, p_post.
	pre, post := t.GetPretrans(), t.GetPosttrans()
	t.setRotBlock(r)
	t.setTotalTrans(post.Add(apply3(r, pre)))
	return nil
}

// GetRotation extracts the rotation in the requested convention.
func (t Transform) GetRotation(kind RotationKind) (EulerParams, error) {
	scale := t.GetScale()
	if scale <= Epsilon {
		return nil, fmt.Errorf("%w: cannot extract rotation from a degenerate (zero-scale) transform", ErrNumeric)
	}
	r := t.rotBlock()
	az, alt, phi := rFromEmanCanonical(r, scale)
	switch kind {
	case EMAN:
		return EulerParams{"az": az, "alt": alt, "phi": phi}, nil
	case IMAGIC:
		return EulerParams{"alpha": az, "beta": alt, "gamma": phi}, nil
	case SPIDER:
		phiS, psiS := emanToSpider(az, phi, alt)
		return EulerParams{"phi": phiS, "theta": alt, "psi": psiS}, nil
	case MRC:
		phiS, _ := emanToSpider(az, phi, alt)
		// Chosen consistently with SetRotation's MRC forward formula
		// (az = phi_mrc+90, phi_eman = -omega+90): the inverse of that
		// map is omega = 90 - phi_eman. See DESIGN.md for the resolved
		// sign anomaly noted in spec.
		omega := 90.0 - phi
		return EulerParams{"phi": phiS, "theta": alt, "omega": omega}, nil
	case XYZ:
		xtilt, ytilt, ztilt := emanToXYZ(az, alt, phi)
		return EulerParams{"xtilt": xtilt, "ytilt": ytilt, "ztilt": ztilt}, nil
	case QUATERNION:
		q := rToQuaternionViaEman(az, alt, phi)
		return EulerParams{"e0": q[0], "e1": q[1], "e2": q[2], "e3": q[3]}, nil
	case SPIN, SGIROT:
		q := rToQuaternionViaEman(az, alt, phi)
		omega, n := quaternionToAxisAngle(q)
		key := "Omega"
		if kind == SGIROT {
			key = "q"
		}
		return EulerParams{key: omega, "n1": n.X, "n2": n.Y, "n3": n.Z}, nil
	case MATRIX:
		return EulerParams{
			"m11": r[0][0], "m12": r[0][1], "m13": r[0][2],
			"m21": r[1][0], "m22": r[1][1], "m23": r[1][2],
			"m31": r[2][0], "m32": r[2][1], "m33": r[2][2],
		}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidConvention, kind)
}

// toEman converts any of the angle-based conventions to canonical EMAN
// (az, alt, phi), in degrees.
func toEman(kind RotationKind, p EulerParams) (az, alt, phi float64, err error) {
	switch kind {
	case EMAN:
		return p["az"], p["alt"], p["phi"], nil
	case IMAGIC:
		return p["alpha"], p["beta"], p["gamma"], nil
	case SPIDER:
		az = p["phi"] + 90.0
		alt = p["theta"]
		phi = p["psi"] - 90.0
		return az, alt, phi, nil
	case MRC:
		az = p["phi"] + 90.0
		alt = p["theta"]
		phi = -p["omega"] + 90.0
		return az, alt, phi, nil
	case XYZ:
		cx, sx := math.Cos(deg2rad*p["xtilt"]), math.Sin(deg2rad*p["xtilt"])
		cy, sy := math.Cos(deg2rad*p["ytilt"]), math.Sin(deg2rad*p["ytilt"])
		az = rad2deg*math.Atan2(-cy*sx, sy) + 90.0
		alt = rad2deg * math.Acos(cy*cx)
		phi = p["ztilt"] + rad2deg*math.Atan2(sx, cx*sy) - 90.0
		return az, alt, phi, nil
	}
	return 0, 0, 0, fmt.Errorf("%w: %v", ErrInvalidConvention, kind)
}

// emanToSpider converts canonical EMAN angles to SPIDER's (phi, psi); theta
// is identical to alt and is returned by the caller directly.
func emanToSpider(az, phi, alt float64) (phiS, psiS float64) {
	const maxC = 1 - 1e-6
	cosalt := math.Cos(deg2rad * alt)
	if math.Abs(cosalt) > maxC {
		// pole: SPIDER's phi/psi split is degenerate, fold everything into psi
		return 0, normalizeDeg(phi)
	}
	phiS = normalizeDeg(az - 90.0)
	psiS = normalizeDeg(phi + 90.0)
	return phiS, psiS
}

// emanToXYZ recovers the XYZ tilt triple from canonical EMAN angles. This
// is the algebraic inverse of toEman's XYZ branch, ported from the
// original's get_rotation(XYZ) (see original_source/libEM/transform.cpp),
// since spec.md defines only the forward (XYZ->EMAN) direction.
func emanToXYZ(az, alt, phi float64) (xtilt, ytilt, ztilt float64) {
	phiS, psiS := emanToSpider(az, phi, alt)
	phiSr := deg2rad * phiS
	altr := deg2rad * alt
	xt := math.Atan2(-math.Sin(phiSr)*math.Sin(altr), math.Cos(altr))
	yt := math.Asin(math.Cos(phiSr) * math.Sin(altr))
	zt := deg2rad*psiS - math.Atan2(math.Sin(xt), math.Cos(xt)*math.Sin(yt))
	xtilt = normalizeDeg(rad2deg * xt)
	ytilt = rad2deg * yt
	ztilt = normalizeDeg(rad2deg * zt)
	return xtilt, ytilt, ztilt
}

// emanToR builds the 3x3 rotation-and-scale block for canonical EMAN
// angles (az, alt, phi), in degrees, using R = Rz(phi).Rx(alt).Rz(az).
func emanToR(azDeg, altDeg, phiDeg float64) [3][3]float64 {
	a := deg2rad * math.Mod(azDeg, 360.0)
	b := deg2rad * altDeg
	f := deg2rad * math.Mod(phiDeg, 360.0)
	ca, sa := math.Cos(a), math.Sin(a)
	cb, sb := math.Cos(b), math.Sin(b)
	cf, sf := math.Cos(f), math.Sin(f)
	return [3][3]float64{
		{cf*ca - cb*sa*sf, cf*sa + cb*ca*sf, sb * sf},
		{-sf*ca - cb*sa*cf, -sf*sa + cb*ca*cf, sb * cf},
		{sb * sa, -sb * ca, cb},
	}
}

// rFromEmanCanonical extracts (az, alt, phi) in degrees from a scaled
// rotation block, per spec.md's degenerate-pole handling.
func rFromEmanCanonical(r [3][3]float64, scale float64) (az, alt, phi float64) {
	const maxC = 1 - 1e-6
	c := r[2][2] / scale
	switch {
	case c > maxC:
		alt = 0
		az = 0
		phi = normalizeDeg(rad2deg * math.Atan2(r[0][1], r[0][0]))
	case c < -maxC:
		alt = 180
		az = 0
		phi = normalizeDeg(360.0 - rad2deg*math.Atan2(r[0][1], r[0][0]))
	default:
		alt = rad2deg * math.Acos(c)
		az = normalizeDeg(rad2deg * math.Atan2(r[2][0], -r[2][1]))
		phi = normalizeDeg(rad2deg * math.Atan2(r[0][2], r[1][2]))
	}
	return az, alt, phi
}

// === Quaternion / axis-angle =================================================

func normalizeQuaternion(e0, e1, e2, e3 float64) [4]float64 {
	n := math.Sqrt(e0*e0 + e1*e1 + e2*e2 + e3*e3)
	if n <= Epsilon {
		tracer().Errorf("normalizeQuaternion: degenerate quaternion, defaulting to identity")
		return [4]float64{1, 0, 0, 0}
	}
	return [4]float64{e0 / n, e1 / n, e2 / n, e3 / n}
}

func quaternionToR(q [4]float64) [3][3]float64 {
	e0, e1, e2, e3 := q[0], q[1], q[2], q[3]
	return [3][3]float64{
		{e0*e0 + e1*e1 - e2*e2 - e3*e3, 2 * (e1*e2 + e0*e3), 2 * (e1*e3 - e0*e2)},
		{2 * (e2*e1 - e0*e3), e0*e0 - e1*e1 + e2*e2 - e3*e3, 2 * (e2*e3 + e0*e1)},
		{2 * (e3*e1 + e0*e2), 2 * (e3*e2 - e0*e1), e0*e0 - e1*e1 - e2*e2 + e3*e3},
	}
}

// rToQuaternionViaEman ports the source's az/alt/phi-composite quaternion
// extraction (see original_source/libEM/transform.cpp, get_rotation case
// QUATERNION), which is numerically distinct from (but equivalent to) the
// textbook matrix-trace method.
func rToQuaternionViaEman(az, alt, phi float64) [4]float64 {
	nphi := (az - phi) / 2.0
	cosOover2 := math.Cos((az+phi)*math.Pi/360.0) * math.Cos(alt*math.Pi/360.0)
	if cosOover2 > 1 {
		cosOover2 = 1
	} else if cosOover2 < -1 {
		cosOover2 = -1
	}
	sinOover2 := math.Sqrt(math.Max(0, 1-cosOover2*cosOover2))
	var n1, n2, n3 float64
	if sinOover2 <= Epsilon {
		n1, n2, n3 = 0, 0, 1
	} else {
		cosnTheta := math.Sin((az+phi)*math.Pi/360.0) * math.Cos(alt*math.Pi/360.0) / sinOover2
		if cosnTheta > 1 {
			cosnTheta = 1
		} else if cosnTheta < -1 {
			cosnTheta = -1
		}
		sinnTheta := math.Sqrt(math.Max(0, 1-cosnTheta*cosnTheta))
		n1 = sinnTheta * math.Cos(nphi*math.Pi/180.0)
		n2 = sinnTheta * math.Sin(nphi*math.Pi/180.0)
		n3 = cosnTheta
	}
	if cosOover2 < 0 {
		cosOover2, n1, n2, n3 = -cosOover2, -n1, -n2, -n3
	}
	return [4]float64{cosOover2, sinOover2 * n1, sinOover2 * n2, sinOover2 * n3}
}

// quaternionToAxisAngle returns Omega in degrees and a unit axis.
func quaternionToAxisAngle(q [4]float64) (omegaDeg float64, axis Vec3) {
	e0 := q[0]
	if e0 > 1 {
		e0 = 1
	} else if e0 < -1 {
		e0 = -1
	}
	omegaDeg = 2 * rad2deg * math.Acos(e0)
	half := math.Sin(deg2rad * omegaDeg / 2)
	if half <= Epsilon {
		return omegaDeg, V(0, 0, 1)
	}
	return omegaDeg, V(q[1]/half, q[2]/half, q[3]/half)
}
