// Package debug generates line geometry for visual aids: selection boxes
// and the ground reference grid.
package debug

import (
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/model"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 0.25

// BBoxWireframe creates line vertices for a box, as [x, y, z] per vertex,
// two vertices per edge. padding grows the box on all sides.
func BBoxWireframe(b model.Bounds, padding float32) []float32 {
	minX, minY, minZ := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	maxX, maxY, maxZ := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// GroupBounds returns the union of the parts' bounds in the frame of
// ancestor, usually the assembly root. ok is false for an empty group.
func GroupBounds(group []*scene.Part, ancestor *scene.Node) (b model.Bounds, ok bool) {
	if len(group) == 0 {
		return model.Bounds{}, false
	}
	b = model.EmptyBounds()
	for _, p := range group {
		b.Union(p.Mesh.Bounds.Transform(p.Node.MatrixTo(ancestor)))
	}
	return b, true
}

// SelectionBox is the padded wireframe around a pick group, in the frame of
// ancestor. It is nil for an empty group.
func SelectionBox(group []*scene.Part, ancestor *scene.Node) []float32 {
	b, ok := GroupBounds(group, ancestor)
	if !ok {
		return nil
	}
	return BBoxWireframe(b, DefaultBBoxPadding)
}
