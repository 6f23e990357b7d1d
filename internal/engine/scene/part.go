package scene

import (
	"fmt"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/model"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// ShapeKind enumerates the primitives parts are built from.
type ShapeKind int

const (
	ShapeCylinder ShapeKind = iota // capped cylinder or frustum
	ShapeCone                      // apex up
	ShapeTorus                     // ring in the XZ plane
	ShapeSphere                    // full sphere or polar band
	ShapeBox                       // axis-aligned box
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	case ShapeTorus:
		return "torus"
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Dims carries the geometric parameters for a shape. Which fields matter
// depends on the kind; use the constructors below.
type Dims struct {
	Radius       float32 // cone, sphere, torus ring
	TopRadius    float32 // cylinder
	BottomRadius float32 // cylinder
	Tube         float32 // torus tube
	Height       float32 // cylinder, cone, box
	Width        float32 // box
	Depth        float32 // box

	// ThetaStart and ThetaLength bound a sphere from the +Y pole.
	// Zero ThetaLength means a full sphere.
	ThetaStart  float32
	ThetaLength float32

	// Segments overrides the radial resolution when non-zero.
	Segments int
}

// CylinderDims describes a cylinder, or a frustum when the radii differ.
func CylinderDims(top, bottom, height float32) Dims {
	return Dims{TopRadius: top, BottomRadius: bottom, Height: height}
}

// ConeDims describes a cone with its apex up.
func ConeDims(radius, height float32) Dims {
	return Dims{Radius: radius, Height: height}
}

// TorusDims describes a ring of the given radius and tube radius.
func TorusDims(radius, tube float32) Dims {
	return Dims{Radius: radius, Tube: tube}
}

// SphereDims describes a full sphere.
func SphereDims(radius float32) Dims {
	return Dims{Radius: radius}
}

// DomeDims describes a hemisphere, opening downward when upper is true.
func DomeDims(radius float32, upper bool) Dims {
	d := Dims{Radius: radius, ThetaLength: math.Pi / 2}
	if !upper {
		d.ThetaStart = math.Pi / 2
	}
	return d
}

// BoxDims describes a box.
func BoxDims(width, height, depth float32) Dims {
	return Dims{Width: width, Height: height, Depth: depth}
}

// Part is a pickable drawable leaf.
type Part struct {
	// ID is the pick group: every instance sharing it selects,
	// highlights, and looks up metadata together.
	ID   string
	Kind ShapeKind

	Node     *Node
	Mesh     *model.Mesh
	Material *Material

	// BaseOffset is the resting Y position, captured once when the
	// assembly is finished and never recomputed.
	BaseOffset float32

	// Shell marks exterior skins that fade under cutaway.
	Shell bool
}

// NewShape builds a tagged part with the standard material.
// Empty ids and non-positive dimensions are programming errors and panic.
func NewShape(kind ShapeKind, dims Dims, color, id string) *Part {
	if id == "" {
		panic("scene: shape without part id")
	}

	segs := dims.Segments
	if segs == 0 {
		segs = model.DefaultRadialSegs
	}

	var mesh *model.Mesh
	switch kind {
	case ShapeCylinder:
		mustPositive(id, dims.Height)
		if dims.TopRadius < 0 || dims.BottomRadius < 0 || dims.TopRadius+dims.BottomRadius == 0 {
			panic(fmt.Sprintf("scene: %s: invalid cylinder radii %v/%v", id, dims.TopRadius, dims.BottomRadius))
		}
		mesh = model.Cylinder(dims.TopRadius, dims.BottomRadius, dims.Height, segs)
	case ShapeCone:
		mustPositive(id, dims.Radius, dims.Height)
		mesh = model.Cone(dims.Radius, dims.Height, segs)
	case ShapeTorus:
		mustPositive(id, dims.Radius, dims.Tube)
		mesh = model.Torus(dims.Radius, dims.Tube, segs, model.DefaultTubeSegs)
	case ShapeSphere:
		mustPositive(id, dims.Radius)
		length := dims.ThetaLength
		if length == 0 {
			length = math.Pi
		}
		mesh = model.Sphere(dims.Radius, dims.ThetaStart, length, segs, model.DefaultSphereRows)
	case ShapeBox:
		mustPositive(id, dims.Width, dims.Height, dims.Depth)
		mesh = model.Box(dims.Width, dims.Height, dims.Depth)
	default:
		panic(fmt.Sprintf("scene: %s: unknown shape kind %d", id, kind))
	}

	node := NewNode(id)
	part := &Part{
		ID:       id,
		Kind:     kind,
		Node:     node,
		Mesh:     mesh,
		Material: NewMaterial(color),
	}
	node.Part = part
	return part
}

func mustPositive(id string, values ...float32) {
	for _, v := range values {
		if !(v > 0) {
			panic(fmt.Sprintf("scene: %s: non-positive dimension %v", id, v))
		}
	}
}

// WorldMatrix returns the part's current world transform.
func (p *Part) WorldMatrix() math.Mat4 {
	return p.Node.WorldMatrix()
}

// WorldBounds returns the part's current world-space AABB.
func (p *Part) WorldBounds() model.Bounds {
	return p.Mesh.Bounds.Transform(p.WorldMatrix())
}

// CaptureBase records the current Y position as the explode rest position.
func (p *Part) CaptureBase() {
	p.BaseOffset = p.Node.Position.Y
}
