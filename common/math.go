package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the downward acceleration used by scenes that simulate in
	// the vertical plane, in units per second squared.
	Gravity = -9.81
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
