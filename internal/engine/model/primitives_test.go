package model

import (
	"testing"

	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

func approx(a, b float32) bool {
	d := a - b
	return d > -1e-4 && d < 1e-4
}

func checkBounds(t *testing.T, name string, got Bounds, min, max math.Vec3) {
	t.Helper()
	if !approx(got.Min.X, min.X) || !approx(got.Min.Y, min.Y) || !approx(got.Min.Z, min.Z) ||
		!approx(got.Max.X, max.X) || !approx(got.Max.Y, max.Y) || !approx(got.Max.Z, max.Z) {
		t.Errorf("%s bounds = %v..%v, want %v..%v", name, got.Min, got.Max, min, max)
	}
}

func TestPrimitiveBounds(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
		min  math.Vec3
		max  math.Vec3
	}{
		{"cylinder", Cylinder(2, 2, 10, 32), math.Vec3{X: -2, Y: -5, Z: -2}, math.Vec3{X: 2, Y: 5, Z: 2}},
		{"frustum", Cylinder(1, 3, 4, 32), math.Vec3{X: -3, Y: -2, Z: -3}, math.Vec3{X: 3, Y: 2, Z: 3}},
		{"cone", Cone(1.5, 3, 16), math.Vec3{X: -1.5, Y: -1.5, Z: -1.5}, math.Vec3{X: 1.5, Y: 1.5, Z: 1.5}},
		{"torus", Torus(4, 0.5, 32, 12), math.Vec3{X: -4.5, Y: -0.5, Z: -4.5}, math.Vec3{X: 4.5, Y: 0.5, Z: 4.5}},
		{"sphere", Sphere(2, 0, math.Pi, 16, 8), math.Vec3{X: -2, Y: -2, Z: -2}, math.Vec3{X: 2, Y: 2, Z: 2}},
		{"dome", Sphere(2, 0, math.Pi/2, 16, 8), math.Vec3{X: -2, Y: 0, Z: -2}, math.Vec3{X: 2, Y: 2, Z: 2}},
		{"box", Box(2, 4, 6), math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkBounds(t, tt.name, tt.mesh.Bounds, tt.min, tt.max)
			if tt.mesh.TriangleCount() == 0 {
				t.Errorf("%s has no triangles", tt.name)
			}
			for _, idx := range tt.mesh.Indices {
				if int(idx) >= len(tt.mesh.Vertices) {
					t.Fatalf("%s index %d out of range (%d vertices)", tt.name, idx, len(tt.mesh.Vertices))
				}
			}
		})
	}
}

func TestCylinderTriangleCount(t *testing.T) {
	// side quads + two caps
	m := Cylinder(1, 1, 1, 8)
	if got, want := m.TriangleCount(), 8*2+8+8; got != want {
		t.Errorf("TriangleCount() = %d, want %d", got, want)
	}
	// cone has no top cap
	c := Cone(1, 1, 8)
	if got, want := c.TriangleCount(), 8*2+8; got != want {
		t.Errorf("cone TriangleCount() = %d, want %d", got, want)
	}
}

func TestBoxNormalsPointOutward(t *testing.T) {
	m := Box(2, 2, 2)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Errorf("triangle %d winds inward", i)
		}
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Box(2, 2, 2).Bounds
	moved := b.Transform(math.Translate(math.Vec3{X: 10}))
	checkBounds(t, "translated", moved, math.Vec3{X: 9, Y: -1, Z: -1}, math.Vec3{X: 11, Y: 1, Z: 1})

	if !moved.Contains(math.Vec3{X: 10}) {
		t.Error("translated bounds should contain its center")
	}
	if moved.Contains(math.Vec3{}) {
		t.Error("translated bounds should not contain the origin")
	}
}

func TestFlatten(t *testing.T) {
	m := Box(1, 1, 1)
	pos, nrm := m.Flatten()
	if len(pos) != len(m.Vertices)*3 || len(nrm) != len(m.Vertices)*3 {
		t.Errorf("Flatten lengths = %d/%d, want %d", len(pos), len(nrm), len(m.Vertices)*3)
	}
}
