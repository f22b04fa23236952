package vmath

// CatmullRom evaluates a uniform Catmull-Rom segment between p1 and p2 at u in [0,1]
func CatmullRom(p0, p1, p2, p3 Vec3F, u float64) Vec3F {
	u2 := u * u
	u3 := u2 * u
	return Vec3F{
		X: catmullRom1(p0.X, p1.X, p2.X, p3.X, u, u2, u3),
		Y: catmullRom1(p0.Y, p1.Y, p2.Y, p3.Y, u, u2, u3),
		Z: catmullRom1(p0.Z, p1.Z, p2.Z, p3.Z, u, u2, u3),
	}
}

// CatmullRomTangent returns the derivative of the segment at u (not normalized)
func CatmullRomTangent(p0, p1, p2, p3 Vec3F, u float64) Vec3F {
	u2 := u * u
	return Vec3F{
		X: catmullRomD1(p0.X, p1.X, p2.X, p3.X, u, u2),
		Y: catmullRomD1(p0.Y, p1.Y, p2.Y, p3.Y, u, u2),
		Z: catmullRomD1(p0.Z, p1.Z, p2.Z, p3.Z, u, u2),
	}
}

func catmullRom1(p0, p1, p2, p3, u, u2, u3 float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*u +
		(2*p0-5*p1+4*p2-p3)*u2 +
		(-p0+3*p1-3*p2+p3)*u3)
}

func catmullRomD1(p0, p1, p2, p3, u, u2 float64) float64 {
	return 0.5 * ((-p0 + p2) +
		2*(2*p0-5*p1+4*p2-p3)*u +
		3*(-p0+3*p1-3*p2+p3)*u2)
}
