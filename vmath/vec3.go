package vmath

import (
	"math"
)

// Vec3 is a 3D vector in Q32.32 fixed-point
// Installation positions stay fixed-point so spatial hashing and the
// per-connection direction hash are bit-reproducible across runs
type Vec3 struct {
	X, Y, Z int64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s int64) Vec3 {
	return Vec3{Mul(v.X, s), Mul(v.Y, s), Mul(v.Z, s)}
}

func V3Dot(a, b Vec3) int64 {
	return Mul(a.X, b.X) + Mul(a.Y, b.Y) + Mul(a.Z, b.Z)
}

func V3MagSq(v Vec3) int64 {
	return Mul(v.X, v.X) + Mul(v.Y, v.Y) + Mul(v.Z, v.Z)
}

func V3Mag(v Vec3) int64 {
	return Sqrt(V3MagSq(v))
}

// V3DistSq returns squared distance between two points
func V3DistSq(a, b Vec3) int64 {
	return V3MagSq(V3Sub(a, b))
}

// V3Normalize normalizes a 3D vector
// Inverse magnitude computed once in float, three multiplies after
func V3Normalize(v Vec3) Vec3 {
	fx, fy, fz := float64(v.X), float64(v.Y), float64(v.Z)
	mag := math.Sqrt(fx*fx + fy*fy + fz*fz)

	if mag == 0 {
		return Vec3{}
	}

	inv := ScaleF / mag
	return Vec3{
		int64(fx * inv),
		int64(fy * inv),
		int64(fz * inv),
	}
}

// V3ClampBox limits each component to [min, max] per axis
func V3ClampBox(v, min, max Vec3) Vec3 {
	return Vec3{
		Clamp(v.X, min.X, max.X),
		Clamp(v.Y, min.Y, max.Y),
		Clamp(v.Z, min.Z, max.Z),
	}
}
