// Package lighting describes the environment the vehicle is shown in: the
// light rig, fog, exposure and the star backdrop. Renderers apply it as is.
package lighting

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Light is an ambient light, or a directional light shining from Position
// towards the origin.
type Light struct {
	Color     string
	Intensity float32
	Position  math.Vec3
}

// Direction returns the unit vector from the origin towards the light.
func (l Light) Direction() math.Vec3 {
	return l.Position.Normalize()
}

// Fog is linear distance fog.
type Fog struct {
	Color string
	Near  float32
	Far   float32
}

// Rig is the full lighting setup.
type Rig struct {
	Background string
	Ambient    Light
	Key        Light
	Fog        Fog
	// Exposure is the tone mapping exposure.
	Exposure float32
}

// DefaultRig is a dark blue backdrop with a cool ambient fill and one white
// key light from above and to the side.
func DefaultRig() Rig {
	return Rig{
		Background: "#070b14",
		Ambient:    Light{Color: "#8aa2ff", Intensity: 0.35},
		Key:        Light{Color: "#ffffff", Intensity: 1.1, Position: math.Vec3{X: 120, Y: 140, Z: 80}},
		Fog:        Fog{Color: "#070b14", Near: 90, Far: 260},
		Exposure:   1.25,
	}
}

// Star backdrop defaults.
const (
	DefaultStars  = 1800
	StarRadius    = 900
	StarColor     = "#9fb0ff"
	StarSize      = 1.2
	StarOpacity   = 0.55
	starInnerFrac = 0.6
)

// Stars scatters n points uniformly over directions in a shell between
// 0.6 and 1 times StarRadius. The same seed gives the same sky.
func Stars(n int, seed uint64) []math.Vec3 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	stars := make([]math.Vec3, n)
	for i := range stars {
		r := StarRadius * (starInnerFrac + rng.Float32()*(1-starInnerFrac))
		theta := rng.Float32() * 2 * math.Pi
		u := rng.Float32()*2 - 1
		s := math32.Sqrt(1 - u*u)
		stars[i] = math.Vec3{
			X: r * s * math32.Cos(theta),
			Y: r * u,
			Z: r * s * math32.Sin(theta),
		}
	}
	return stars
}
