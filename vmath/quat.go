package vmath

import "math"

// Quat is a unit quaternion orientation (X,Y,Z vector part, W scalar)
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity faces V3FForward with V3FUp as up
var QuatIdentity = Quat{0, 0, 0, 1}

func QuatDot(a, b Quat) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(QuatDot(q, q))
	if mag == 0 {
		return QuatIdentity
	}
	inv := 1.0 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatRotate applies q to v
func QuatRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QuatForward returns the facing direction of q
func QuatForward(q Quat) Vec3F {
	return QuatRotate(q, V3FForward)
}

// QuatLookRotation builds the orientation whose forward axis is forward and whose
// up axis is as close to up as possible
// Degenerate forward returns identity; forward parallel to up picks a fallback up
func QuatLookRotation(forward, up Vec3F) Quat {
	f := V3FNormalize(forward)
	if V3FMagSq(f) == 0 {
		return QuatIdentity
	}

	r := V3FCross(up, f)
	if V3FMagSq(r) < 1e-12 {
		// Looking straight up or down
		r = V3FCross(Vec3F{0, 0, 1}, f)
		if V3FMagSq(r) < 1e-12 {
			r = V3FCross(Vec3F{1, 0, 0}, f)
		}
	}
	r = V3FNormalize(r)
	u := V3FCross(f, r)

	// Columns r, u, f form the rotation matrix
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
	return QuatNormalize(q)
}

// QuatSlerp interpolates along the shortest arc, t clamped to [0,1]
func QuatSlerp(a, b Quat, t float64) Quat {
	t = Clamp01(t)
	d := QuatDot(a, b)
	if d < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
		d = -d
	}

	// Nearly parallel: nlerp avoids division by a vanishing sine
	if d > 0.9995 {
		return QuatNormalize(Quat{
			a.X + (b.X-a.X)*t,
			a.Y + (b.Y-a.Y)*t,
			a.Z + (b.Z-a.Z)*t,
			a.W + (b.W-a.W)*t,
		})
	}

	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quat{
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
		a.W*wa + b.W*wb,
	}
}

// QuatAngle returns the angle in radians between two orientations
func QuatAngle(a, b Quat) float64 {
	d := math.Abs(QuatDot(a, b))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}
