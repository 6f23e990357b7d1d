package picking

import (
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/parts"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// TieEpsilon is the distance below which two hits count as equally near.
// Ties go to the candidate listed first.
const TieEpsilon = 1e-4

// Viewer supplies the transform pointer rays are unprojected through.
type Viewer interface {
	ViewProjection() math.Mat4
}

// Grouper resolves a pick id to every instance sharing it.
type Grouper interface {
	Group(id string) []*scene.Part
}

// Hit is the nearest intersection along a ray.
type Hit struct {
	Part     *scene.Part
	Distance float32
	Point    math.Vec3
}

// Info is published on every pick. An empty PartID means the selection
// was cleared.
type Info struct {
	PartID string
	Meta   parts.Metadata
	Known  bool
}

// InfoSink receives pick results.
type InfoSink func(Info)

// Selection is the currently selected part, if any.
type Selection struct {
	Part *scene.Part
	ID   string
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.Part == nil
}

// Resolver owns the single selection and its highlight.
type Resolver struct {
	candidates []*scene.Part
	groups     Grouper
	registry   *parts.Registry
	sink       InfoSink

	selection Selection
}

// NewResolver picks among candidates only, in list order.
func NewResolver(candidates []*scene.Part, groups Grouper, registry *parts.Registry) *Resolver {
	return &Resolver{
		candidates: candidates,
		groups:     groups,
		registry:   registry,
	}
}

// OnInfo sets the sink that receives pick results.
func (r *Resolver) OnInfo(sink InfoSink) {
	r.sink = sink
}

// Selection returns the current selection.
func (r *Resolver) Selection() Selection {
	return r.selection
}

// Pick casts a ray through the pointer position and updates the selection.
// It returns the selected part, or nil on a miss.
func (r *Resolver) Pick(ndc math.Vec2, v Viewer) *scene.Part {
	ray := NDCToRay(ndc, v.ViewProjection().Inverse())
	return r.PickRay(ray)
}

// PickRay updates the selection from a world-space ray.
func (r *Resolver) PickRay(ray Ray) *scene.Part {
	hit, ok := r.Intersect(ray)
	if !ok {
		r.Clear()
		return nil
	}
	r.Select(hit.Part)
	return hit.Part
}

// Intersect finds the nearest candidate along the ray without touching the
// selection.
func (r *Resolver) Intersect(ray Ray) (Hit, bool) {
	var best Hit
	found := false

	for _, p := range r.candidates {
		local := ray.Transform(p.WorldMatrix().Inverse())
		if _, ok := local.IntersectAABB(p.Mesh.Bounds); !ok {
			continue
		}

		t, ok := nearestTriangle(local, p)
		if !ok {
			continue
		}
		if !found || t < best.Distance-TieEpsilon {
			best = Hit{Part: p, Distance: t}
			found = true
		}
	}

	if found {
		best.Point = ray.At(best.Distance)
	}
	return best, found
}

func nearestTriangle(ray Ray, p *scene.Part) (float32, bool) {
	var best float32
	found := false
	for i := 0; i < p.Mesh.TriangleCount(); i++ {
		a, b, c := p.Mesh.Triangle(i)
		t, ok := ray.IntersectTriangle(a, b, c)
		if ok && (!found || t < best) {
			best = t
			found = true
		}
	}
	return best, found
}

// Select makes p the selection and highlights its whole pick group.
// Selecting the current selection again reapplies the same highlight.
func (r *Resolver) Select(p *scene.Part) {
	r.unhighlight()
	r.selection = Selection{Part: p, ID: p.ID}
	r.setGroupHighlight(p, true)

	meta, known := r.registry.Lookup(p.ID)
	if !known {
		meta = parts.Fallback(p.ID)
	}
	r.publish(Info{PartID: p.ID, Meta: meta, Known: known})
}

// Clear drops the selection and reverts its highlight.
func (r *Resolver) Clear() {
	r.unhighlight()
	r.selection = Selection{}
	r.publish(Info{})
}

func (r *Resolver) unhighlight() {
	if r.selection.Part != nil {
		r.setGroupHighlight(r.selection.Part, false)
	}
}

func (r *Resolver) setGroupHighlight(p *scene.Part, on bool) {
	group := r.groups.Group(p.ID)
	if len(group) == 0 {
		p.Material.SetHighlight(on)
		return
	}
	for _, member := range group {
		member.Material.SetHighlight(on)
	}
}

func (r *Resolver) publish(info Info) {
	if r.sink != nil {
		r.sink(info)
	}
}
