// Package model generates the triangle meshes for the primitive shapes the
// vehicle is assembled from.
package model

import (
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Vertex represents a mesh vertex with position and normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds triangle data in the shape's local space, ready for upload to
// an external renderer and for ray intersection.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns bounds that any point expands.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

// Expand grows the bounds to include p.
func (b *Bounds) Expand(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union grows the bounds to include other.
func (b *Bounds) Union(other Bounds) {
	b.Expand(other.Min)
	b.Expand(other.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the world-space AABB enclosing the box's eight corners
// after applying m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		c := math.Vec3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out.Expand(m.TransformPoint(c))
	}
	return out
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	return m.Vertices[m.Indices[i*3]].Position,
		m.Vertices[m.Indices[i*3+1]].Position,
		m.Vertices[m.Indices[i*3+2]].Position
}

// Flatten returns separate position and normal arrays, [x, y, z] per vertex.
func (m *Mesh) Flatten() (positions, normals []float32) {
	positions = make([]float32, 0, len(m.Vertices)*3)
	normals = make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		positions = append(positions, v.Position.X, v.Position.Y, v.Position.Z)
		normals = append(normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return positions, normals
}

func (m *Mesh) computeBounds() {
	m.Bounds = EmptyBounds()
	for _, v := range m.Vertices {
		m.Bounds.Expand(v.Position)
	}
}
