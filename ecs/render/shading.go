package render

import (
	"image/color"
	"math"

	"github.com/milk9111/enginedemos/common"
)

const (
	ambient = 0.1
	// lightScale converts a point light's intensity into the radiance
	// units the framebuffer stores.
	lightScale = 0.4
)

// RGB is a linear colour whose channels may exceed 1.
type RGB struct {
	R, G, B float64
}

func RGBOf(c color.Color) RGB {
	if c == nil {
		return RGB{1, 1, 1}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGB{}
	}
	// unpremultiply
	return RGB{float64(r) / float64(a), float64(g) / float64(a), float64(b) / float64(a)}
}

func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

func (c RGB) Mul(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Light is a point light in world space.
type Light struct {
	Position  common.Vec3
	Intensity float64
	Range     float64
	Color     RGB
	Shadows   bool
}

// Box is an axis-aligned occluder used for shadow rays.
type Box struct {
	Min, Max common.Vec3
}

// rangeFalloff fades a light smoothly to zero at its range.
func rangeFalloff(d, r float64) float64 {
	if r <= 0 {
		return 1
	}
	f := d / r
	f = common.Clamp(1-f*f*f*f, 0, 1)
	return f * f
}

// Shade lights a surface point p with normal n. Boxes containing p are
// ignored as occluders.
func Shade(base RGB, p, n common.Vec3, lights []Light, occluders []Box) RGB {
	out := base.Scale(ambient)
	for _, l := range lights {
		toLight := l.Position.Sub(p)
		d := toLight.Length()
		if d == 0 {
			continue
		}
		dir := toLight.Mul(1 / d)
		lambert := n.Dot(dir)
		if lambert <= 0 {
			continue
		}
		if l.Shadows && shadowed(p.Add(n.Mul(1e-4)), l.Position, occluders) {
			continue
		}
		radiance := l.Intensity / (4 * math.Pi * d * d) * rangeFalloff(d, l.Range) * lightScale
		out = out.Add(base.Mul(l.Color).Scale(lambert * radiance))
	}
	return out
}

func shadowed(from, to common.Vec3, occluders []Box) bool {
	for _, b := range occluders {
		if b.contains(from) {
			continue
		}
		if segmentHitsBox(from, to, b) {
			return true
		}
	}
	return false
}

func (b Box) contains(p common.Vec3) bool {
	const eps = 1e-3
	return p.X >= b.Min.X-eps && p.X <= b.Max.X+eps &&
		p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps &&
		p.Z >= b.Min.Z-eps && p.Z <= b.Max.Z+eps
}

// segmentHitsBox is the slab test for the segment from a to b.
func segmentHitsBox(a, b common.Vec3, box Box) bool {
	d := b.Sub(a)
	tmin, tmax := 0.0, 1.0
	axes := [3][4]float64{
		{a.X, d.X, box.Min.X, box.Max.X},
		{a.Y, d.Y, box.Min.Y, box.Max.Y},
		{a.Z, d.Z, box.Min.Z, box.Max.Z},
	}
	for _, ax := range axes {
		origin, dir, lo, hi := ax[0], ax[1], ax[2], ax[3]
		if dir == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		t1, t2 := (lo-origin)/dir, (hi-origin)/dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}
