package flow

import (
	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// arcDivisions is the sampling density of the arc-length table.
const arcDivisions = 200

// Curve is an open centripetal Catmull-Rom spline through its control
// points, sampled by normalized arc length.
type Curve struct {
	Points []math.Vec3

	lengths []float32 // cumulative length at each division
}

// NewCurve builds a curve through at least two control points.
func NewCurve(points ...math.Vec3) *Curve {
	if len(points) < 2 {
		panic("flow: curve needs at least two control points")
	}
	c := &Curve{Points: append([]math.Vec3(nil), points...)}
	c.buildLengths()
	return c
}

// Length is the approximate arc length of the curve.
func (c *Curve) Length() float32 {
	return c.lengths[len(c.lengths)-1]
}

// Point evaluates the curve at parameter t in [0, 1]. Parameter spacing is
// uneven in space; use PointAt for uniform motion.
func (c *Curve) Point(t float32) math.Vec3 {
	n := len(c.Points)
	p := float32(n-1) * math.Clamp(t, 0, 1)
	seg := int(math32.Floor(p))
	w := p - float32(seg)
	if seg >= n-1 {
		seg = n - 2
		w = 1
	}

	p1 := c.Points[seg]
	p2 := c.Points[seg+1]

	var p0, p3 math.Vec3
	if seg > 0 {
		p0 = c.Points[seg-1]
	} else {
		p0 = p1.Scale(2).Sub(p2)
	}
	if seg+2 < n {
		p3 = c.Points[seg+2]
	} else {
		p3 = p2.Scale(2).Sub(p1)
	}

	// centripetal knot spacing: sqrt of chord length
	dt0 := math32.Sqrt(p0.Distance(p1))
	dt1 := math32.Sqrt(p1.Distance(p2))
	dt2 := math32.Sqrt(p2.Distance(p3))
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return math.Vec3{
		X: segment(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: segment(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: segment(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// segment evaluates one coordinate of a non-uniform Catmull-Rom span
// between x1 and x2 as a cubic Hermite.
func segment(x0, x1, x2, x3, dt0, dt1, dt2, t float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	return c0 + t*(c1+t*(c2+t*c3))
}

// PointAt returns the point a fraction u of the way along the curve by arc
// length.
func (c *Curve) PointAt(u float32) math.Vec3 {
	return c.Point(c.arcToParam(u))
}

func (c *Curve) buildLengths() {
	c.lengths = make([]float32, arcDivisions+1)
	prev := c.Point(0)
	for i := 1; i <= arcDivisions; i++ {
		p := c.Point(float32(i) / arcDivisions)
		c.lengths[i] = c.lengths[i-1] + p.Distance(prev)
		prev = p
	}
}

// arcToParam maps normalized arc length to the curve parameter.
func (c *Curve) arcToParam(u float32) float32 {
	u = math.Clamp(u, 0, 1)
	total := c.Length()
	if total == 0 {
		return u
	}
	target := u * total

	lo, hi := 0, len(c.lengths)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if c.lengths[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}

	before := c.lengths[lo-1]
	span := c.lengths[lo] - before
	frac := float32(0)
	if span > 0 {
		frac = (target - before) / span
	}
	return (float32(lo-1) + frac) / arcDivisions
}
