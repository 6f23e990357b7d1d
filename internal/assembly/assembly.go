// Package assembly builds the vehicle hierarchy from a declarative section
// plan and holds the static explode and cutaway tables.
package assembly

import (
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/model"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Assembly is the built vehicle. The part set is fixed once built; only
// node positions, the root yaw and material state change afterwards.
type Assembly struct {
	Root   *scene.Node
	Parts  []*scene.Part
	Layout Layout

	yaw    float32
	groups map[string][]*scene.Part
	order  []string
}

func newAssembly(root *scene.Node, parts []*scene.Part, layout Layout) *Assembly {
	a := &Assembly{
		Root:   root,
		Parts:  parts,
		Layout: layout,
		groups: make(map[string][]*scene.Part),
	}
	for _, p := range parts {
		if _, ok := a.groups[p.ID]; !ok {
			a.order = append(a.order, p.ID)
		}
		a.groups[p.ID] = append(a.groups[p.ID], p)
	}
	return a
}

// Group returns every instance sharing the pick id.
func (a *Assembly) Group(id string) []*scene.Part {
	return a.groups[id]
}

// GroupIDs returns the pick ids in order of first appearance.
func (a *Assembly) GroupIDs() []string {
	ids := make([]string, len(a.order))
	copy(ids, a.order)
	return ids
}

// Groups returns the pick groups keyed by id. The map is shared; do not
// modify it.
func (a *Assembly) Groups() map[string][]*scene.Part {
	return a.groups
}

// Yaw is the root rotation about the vertical axis.
func (a *Assembly) Yaw() float32 {
	return a.yaw
}

// SetYaw rotates the whole vehicle about its axis.
func (a *Assembly) SetYaw(yaw float32) {
	a.yaw = yaw
	a.Root.Rotation = math.QuatYaw(yaw)
}

// Bounds returns the current world-space bounds of all parts.
func (a *Assembly) Bounds() model.Bounds {
	b := model.EmptyBounds()
	for _, p := range a.Parts {
		b.Union(p.WorldBounds())
	}
	return b
}
