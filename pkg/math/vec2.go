// Package math provides the float32 vector, matrix, and quaternion types
// used to build and transform the vehicle assembly.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. Pointer positions travel as Vec2 in normalized
// device coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// PixelToNDC converts a pixel position inside a w*h viewport to normalized
// device coordinates (-1..1, Y up).
func PixelToNDC(px, py, w, h float32) Vec2 {
	return Vec2{
		X: 2*px/w - 1,
		Y: 1 - 2*py/h,
	}
}
