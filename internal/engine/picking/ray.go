// Package picking turns pointer positions into rays and resolves them to
// the nearest part.
package picking

import (
	gomath "math"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/model"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
// Points on the ray are Origin + t*Direction for t >= 0.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	return NDCToRay(math.PixelToNDC(screenX, screenY, viewportW, viewportH), invViewProj)
}

// NDCToRay unprojects a normalized device coordinate (x right, y up, both
// in [-1, 1]) to a world-space ray with a unit direction.
func NDCToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	nearPoint := invViewProj.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1})
	farPoint := invViewProj.TransformPoint(math.Vec3{X: ndc.X, Y: ndc.Y, Z: 1})

	return Ray{
		Origin:    nearPoint,
		Direction: farPoint.Sub(nearPoint).Normalize(),
	}
}

// Transform maps the ray through m. The direction is deliberately left
// unnormalized so t values stay comparable with the untransformed ray.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box model.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	o := r.Origin.Array()
	d := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - o[axis]) / d[axis]
		t2 := (hi[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// triangleEpsilon rejects rays nearly parallel to a triangle.
const triangleEpsilon = 1e-7

// IntersectTriangle is a two-sided Möller-Trumbore test.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
