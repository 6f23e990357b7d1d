package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

func TestNodeWorldMatrix(t *testing.T) {
	root := NewNode("root")
	root.Position = math.Vec3{Y: 10}
	group := NewNode("group")
	group.Position = math.Vec3{X: 2}
	root.Add(group)
	leaf := NewNode("leaf")
	leaf.Position = math.Vec3{Y: 1}
	group.Add(leaf)

	got := leaf.WorldMatrix().TransformPoint(math.Vec3{})
	assert.Equal(t, math.Vec3{X: 2, Y: 11}, got)

	root.Rotation = math.QuatYaw(math.Pi / 2)
	got = leaf.WorldMatrix().TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, got.X, 1e-5)
	assert.InDelta(t, 11, got.Y, 1e-5)
	assert.InDelta(t, -2, got.Z, 1e-5)
}

func TestNodeMatrixTo(t *testing.T) {
	root := NewNode("root")
	root.Rotation = math.QuatYaw(1)
	group := NewNode("group")
	group.Position = math.Vec3{Y: 5}
	root.Add(group)
	leaf := NewNode("leaf")
	leaf.Position = math.Vec3{X: 1}
	group.Add(leaf)

	p := leaf.MatrixTo(root).TransformPoint(math.Vec3{})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 5, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)

	assert.Equal(t, leaf.WorldMatrix(), leaf.MatrixTo(nil))
}

func TestNodeAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.Add(child)
	b.Add(child)

	assert.Empty(t, a.Children)
	require.Len(t, b.Children, 1)
	assert.Same(t, b, child.Parent)
}

func TestWalkOrderAndParts(t *testing.T) {
	root := NewNode("root")
	p1 := NewShape(ShapeBox, BoxDims(1, 1, 1), "#ffffff", "first")
	group := NewNode("group")
	p2 := NewShape(ShapeSphere, SphereDims(1), "#ffffff", "second")
	p3 := NewShape(ShapeCone, ConeDims(1, 2), "#ffffff", "second")
	root.Add(p1.Node)
	root.Add(group)
	group.Add(p2.Node)
	group.Add(p3.Node)

	parts := root.Parts()
	require.Len(t, parts, 3)
	assert.Same(t, p1, parts[0])
	assert.Same(t, p2, parts[1])
	assert.Same(t, p3, parts[2])

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "group"
	})
	assert.Equal(t, []string{"root", "first", "group"}, names)
}

func TestNewShapeTagsAndMaterialPolicy(t *testing.T) {
	kinds := []struct {
		kind ShapeKind
		dims Dims
	}{
		{ShapeCylinder, CylinderDims(1, 2, 3)},
		{ShapeCone, ConeDims(1, 2)},
		{ShapeTorus, TorusDims(3, 0.5)},
		{ShapeSphere, SphereDims(1)},
		{ShapeSphere, DomeDims(1, true)},
		{ShapeBox, BoxDims(1, 2, 3)},
	}
	for _, k := range kinds {
		t.Run(k.kind.String(), func(t *testing.T) {
			p := NewShape(k.kind, k.dims, "#9fb0ff", "tagged")
			assert.Equal(t, "tagged", p.ID)
			assert.Equal(t, "tagged", p.Node.Name)
			assert.Same(t, p, p.Node.Part)
			assert.Equal(t, k.kind, p.Kind)
			assert.Equal(t, "#9fb0ff", p.Material.ColorHex())
			assert.InDelta(t, DefaultRoughness, p.Material.Roughness, 1e-6)
			assert.InDelta(t, DefaultMetalness, p.Material.Metalness, 1e-6)
			assert.Equal(t, float32(1), p.Material.Opacity)
			assert.False(t, p.Material.Transparent)
			assert.NotZero(t, p.Mesh.TriangleCount())
		})
	}
}

func TestNewShapeOwnMaterial(t *testing.T) {
	a := NewShape(ShapeBox, BoxDims(1, 1, 1), "#ffffff", "pod")
	b := NewShape(ShapeBox, BoxDims(1, 1, 1), "#ffffff", "pod")
	a.Material.SetHighlight(true)
	assert.False(t, b.Material.Highlighted())
}

func TestNewShapeDefects(t *testing.T) {
	assert.Panics(t, func() { NewShape(ShapeBox, BoxDims(1, 1, 1), "#ffffff", "") })
	assert.Panics(t, func() { NewShape(ShapeBox, BoxDims(0, 1, 1), "#ffffff", "box") })
	assert.Panics(t, func() { NewShape(ShapeCylinder, CylinderDims(0, 0, 1), "#ffffff", "cyl") })
	assert.Panics(t, func() { NewShape(ShapeSphere, SphereDims(1), "not-a-color", "sphere") })
	assert.Panics(t, func() { NewShape(ShapeKind(99), Dims{}, "#ffffff", "mystery") })
}

func TestNewMaterialColor(t *testing.T) {
	m := NewMaterial("#57d0ff")
	assert.Equal(t, "#57d0ff", m.ColorHex())
	assert.Equal(t, float32(1), m.Opacity)
	assert.False(t, m.Highlighted())

	assert.Panics(t, func() { NewMaterial("#12345") })
	assert.Panics(t, func() { NewMaterial("") })
}

func TestMaterialCutaway(t *testing.T) {
	m := NewMaterial("#ffffff")

	m.SetCutaway(1)
	assert.True(t, m.Transparent)
	assert.InDelta(t, 0.15, m.Opacity, 1e-6)

	m.SetCutaway(0)
	assert.False(t, m.Transparent)
	assert.Equal(t, float32(1), m.Opacity)
}

func TestMaterialHighlight(t *testing.T) {
	m := NewMaterial("#2a2f45")
	m.SetHighlight(true)
	assert.True(t, m.Highlighted())
	assert.Equal(t, HighlightColor, m.EmissiveHex())
	assert.InDelta(t, HighlightIntensity, m.EmissiveIntensity, 1e-6)

	m.SetHighlight(false)
	assert.False(t, m.Highlighted())
	assert.Equal(t, "#000000", m.EmissiveHex())
}

func TestPartWorldBoundsFollowNode(t *testing.T) {
	p := NewShape(ShapeBox, BoxDims(2, 2, 2), "#ffffff", "crate")
	p.Node.Position = math.Vec3{Y: 5}
	p.CaptureBase()
	assert.Equal(t, float32(5), p.BaseOffset)

	b := p.WorldBounds()
	assert.InDelta(t, 4, b.Min.Y, 1e-5)
	assert.InDelta(t, 6, b.Max.Y, 1e-5)
}
