package common

import "math"

type Vec3 struct {
	X, Y, Z float64
}

var (
	Vec3Zero  = Vec3{0, 0, 0}
	Vec3One   = Vec3{1, 1, 1}
	Vec3Up    = Vec3{0, 1, 0}
	Vec3Right = Vec3{1, 0, 0}
	Vec3Front = Vec3{0, 0, 1}
)

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Mul(scalar float64) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

func (v Vec3) MulVec(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length > 0 {
		return v.Mul(1.0 / length)
	}
	return v
}

func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Add(other.Sub(v).Mul(t))
}

func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// RotateEuler rotates v by the Euler angles in r (radians), applied
// X first, then Y, then Z.
func (v Vec3) RotateEuler(r Vec3) Vec3 {
	out := v
	if r.X != 0 {
		s, c := math.Sincos(r.X)
		out = Vec3{X: out.X, Y: out.Y*c - out.Z*s, Z: out.Y*s + out.Z*c}
	}
	if r.Y != 0 {
		s, c := math.Sincos(r.Y)
		out = Vec3{X: out.X*c + out.Z*s, Y: out.Y, Z: -out.X*s + out.Z*c}
	}
	if r.Z != 0 {
		s, c := math.Sincos(r.Z)
		out = Vec3{X: out.X*c - out.Y*s, Y: out.X*s + out.Y*c, Z: out.Z}
	}
	return out
}

// LookDirection returns the normalized forward direction from eye towards target.
// When eye and target coincide it returns -Z.
func LookDirection(eye, target Vec3) Vec3 {
	d := target.Sub(eye)
	if d.Length() == 0 {
		return Vec3{Z: -1}
	}
	return d.Normalize()
}
