package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Material policy shared by every part so shading does not depend on draw
// order. Values suit an environment-lit PBR renderer.
const (
	DefaultRoughness       = 0.75
	DefaultMetalness       = 0.1
	DefaultEnvMapIntensity = 1.1
)

// Highlight applied to the selected pick group.
const (
	HighlightColor     = "#57d0ff"
	HighlightIntensity = 0.55
)

// Material describes how a part shades. Every part owns its own instance.
type Material struct {
	Color           colorful.Color
	Roughness       float32
	Metalness       float32
	EnvMapIntensity float32

	Opacity     float32
	Transparent bool

	Emissive          colorful.Color
	EmissiveIntensity float32
}

// NewMaterial returns the standard material for a #rrggbb color.
// A malformed color is a programming error and panics.
func NewMaterial(hex string) *Material {
	return &Material{
		Color:           mustHex(hex),
		Roughness:       DefaultRoughness,
		Metalness:       DefaultMetalness,
		EnvMapIntensity: DefaultEnvMapIntensity,
		Opacity:         1,
	}
}

var highlightColor = mustHex(HighlightColor)

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("scene: invalid material color %q: %v", hex, err))
	}
	return c
}

// SetHighlight turns the selection glow on or off.
func (m *Material) SetHighlight(on bool) {
	if on {
		m.Emissive = highlightColor
		m.EmissiveIntensity = HighlightIntensity
		return
	}
	m.Emissive = colorful.Color{}
	m.EmissiveIntensity = 0
}

// Highlighted reports whether the selection glow is on.
func (m *Material) Highlighted() bool {
	return m.EmissiveIntensity > 0
}

// SetCutaway applies shell transparency for a cutaway amount in [0, 1].
// Zero restores a fully opaque, non-transparent material.
func (m *Material) SetCutaway(amount float32) {
	m.Transparent = amount > 0
	m.Opacity = 1 - 0.85*amount
}

// ColorHex returns the base color as #rrggbb.
func (m *Material) ColorHex() string {
	return m.Color.Hex()
}

// EmissiveHex returns the emissive color as #rrggbb.
func (m *Material) EmissiveHex() string {
	return m.Emissive.Hex()
}
