package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3 is the simulation-space vector: X/Z span the ground plane, Y is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Planar projects the vector onto the ground plane.
func (v Vec3) Planar() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// PlanarDistance is the ground-plane distance between two points. Zone
// containment and AI ranges ignore height.
func PlanarDistance(a, b Vec3) float64 {
	return a.Planar().Distance(b.Planar())
}

// PlanarDirection is the normalized ground-plane direction from a to b,
// expressed as a Vec3 with Y zero.
func PlanarDirection(a, b Vec3) Vec3 {
	d := b.Planar().Sub(a.Planar())
	if d.Length() == 0 {
		return Vec3{}
	}
	n := d.Normalize()
	return Vec3{X: n.X, Z: n.Y}
}

// IsFinite reports whether every element is a finite number.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
