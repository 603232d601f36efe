package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a 2D vector. Arithmetic delegates to gonum's r2 package.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2(r2.Add(r2.Vec(v), r2.Vec(o))) }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(r2.Sub(r2.Vec(v), r2.Vec(o))) }
func (v Vec2) Neg() Vec2       { return Vec2{-v.X, -v.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2(r2.Scale(s, r2.Vec(v))) }

// Div divides both components by s. Division by zero yields the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Dot(o Vec2) float64 { return r2.Dot(r2.Vec(v), r2.Vec(o)) }

func (v Vec2) Len() float64   { return r2.Norm(r2.Vec(v)) }
func (v Vec2) LenSq() float64 { return r2.Norm2(r2.Vec(v)) }

func (v Vec2) DistanceTo(o Vec2) float64   { return o.Sub(v).Len() }
func (v Vec2) DistanceSqTo(o Vec2) float64 { return o.Sub(v).LenSq() }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
