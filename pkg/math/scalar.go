package math

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// Pi as float32.
const Pi = float32(math32.Pi)

// TwoPi is a full turn in radians.
const TwoPi = 2 * Pi

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// wrapEpsilon snaps values a hair below 1 back to 0 so a wrapped
// parameter never lands on both ends of the unit interval.
const wrapEpsilon = 1e-6

// Wrap01 returns x modulo 1 in [0, 1).
func Wrap01(x float64) float64 {
	f := x - gomath.Floor(x)
	if f >= 1-wrapEpsilon {
		return 0
	}
	return f
}

// WrapAngle maps an angle in radians to [0, 2π).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * Pi / 180
}
