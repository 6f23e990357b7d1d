package debug

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Ground grid defaults.
const (
	DefaultGridSize      = 260
	DefaultGridDivisions = 52
	DefaultGridCenter    = "#142048"
	DefaultGridLine      = "#0d1430"
	DefaultGridOpacity   = 0.22
)

// Grid is line geometry for the ground reference plane at y = 0.
// Positions and Colors hold [x, y, z] and [r, g, b] per vertex.
type Grid struct {
	Positions []float32
	Colors    []float32
	Opacity   float32
}

// VertexCount returns the number of line vertices.
func (g Grid) VertexCount() int {
	return len(g.Positions) / 3
}

// NewGrid builds a square grid of the given size centered on the origin,
// with divisions cells per side. The two center lines use centerHex.
// A malformed color is a programming error and panics.
func NewGrid(size float32, divisions int, centerHex, lineHex string) Grid {
	if divisions < 1 || !(size > 0) {
		panic(fmt.Sprintf("debug: invalid grid %v/%d", size, divisions))
	}
	center := mustHex(centerHex)
	line := mustHex(lineHex)

	n := divisions + 1
	g := Grid{
		Positions: make([]float32, 0, n*4*3),
		Colors:    make([]float32, 0, n*4*3),
		Opacity:   DefaultGridOpacity,
	}

	half := size / 2
	step := size / float32(divisions)
	for i := 0; i < n; i++ {
		k := -half + float32(i)*step
		c := line
		if i == divisions/2 {
			c = center
		}

		// Line along Z, then line along X
		g.Positions = append(g.Positions,
			k, 0, -half, k, 0, half,
			-half, 0, k, half, 0, k,
		)
		for v := 0; v < 4; v++ {
			g.Colors = append(g.Colors, float32(c.R), float32(c.G), float32(c.B))
		}
	}
	return g
}

// DefaultGrid is the standard ground reference.
func DefaultGrid() Grid {
	return NewGrid(DefaultGridSize, DefaultGridDivisions, DefaultGridCenter, DefaultGridLine)
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("debug: invalid grid color %q: %v", hex, err))
	}
	return c
}
