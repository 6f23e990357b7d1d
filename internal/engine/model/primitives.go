package model

import (
	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Segment counts. Engines and rings are small on screen, shells are not.
const (
	DefaultRadialSegs = 40
	DefaultTubeSegs   = 12
	DefaultSphereRows = 14
)

// Cylinder builds a capped cylinder along the Y axis centered on the origin.
// Different radii give a truncated cone; a zero radius skips that cap.
func Cylinder(topRadius, bottomRadius, height float32, radialSegs int) *Mesh {
	m := &Mesh{}
	half := height / 2
	slope := (bottomRadius - topRadius) / height

	// Side wall: two rings, top first.
	for row := 0; row <= 1; row++ {
		r := topRadius
		y := half
		if row == 1 {
			r = bottomRadius
			y = -half
		}
		for i := 0; i <= radialSegs; i++ {
			theta := float32(i) / float32(radialSegs) * math.TwoPi
			s, c := math32.Sincos(theta)
			m.Vertices = append(m.Vertices, Vertex{
				Position: math.Vec3{X: r * c, Y: y, Z: r * s},
				Normal:   math.Vec3{X: c, Y: slope, Z: s}.Normalize(),
			})
		}
	}
	stride := uint32(radialSegs + 1)
	for i := uint32(0); i < uint32(radialSegs); i++ {
		a := i
		b := i + stride
		c := i + stride + 1
		d := i + 1
		m.Indices = append(m.Indices, a, d, b, b, d, c)
	}

	if topRadius > 0 {
		m.addCap(topRadius, half, 1, radialSegs)
	}
	if bottomRadius > 0 {
		m.addCap(bottomRadius, -half, -1, radialSegs)
	}

	m.computeBounds()
	return m
}

// Cone builds a cone along the Y axis with its apex at +height/2.
func Cone(radius, height float32, radialSegs int) *Mesh {
	return Cylinder(0, radius, height, radialSegs)
}

func (m *Mesh) addCap(radius, y, sign float32, radialSegs int) {
	center := uint32(len(m.Vertices))
	normal := math.Vec3{Y: sign}
	m.Vertices = append(m.Vertices, Vertex{Position: math.Vec3{Y: y}, Normal: normal})
	for i := 0; i <= radialSegs; i++ {
		theta := float32(i) / float32(radialSegs) * math.TwoPi
		s, c := math32.Sincos(theta)
		m.Vertices = append(m.Vertices, Vertex{
			Position: math.Vec3{X: radius * c, Y: y, Z: radius * s},
			Normal:   normal,
		})
	}
	for i := uint32(1); i <= uint32(radialSegs); i++ {
		if sign > 0 {
			m.Indices = append(m.Indices, center, center+i+1, center+i)
		} else {
			m.Indices = append(m.Indices, center, center+i, center+i+1)
		}
	}
}

// Torus builds a ring lying in the XZ plane around the Y axis.
func Torus(radius, tubeRadius float32, radialSegs, tubeSegs int) *Mesh {
	m := &Mesh{}
	for j := 0; j <= tubeSegs; j++ {
		v := float32(j) / float32(tubeSegs) * math.TwoPi
		sv, cv := math32.Sincos(v)
		for i := 0; i <= radialSegs; i++ {
			u := float32(i) / float32(radialSegs) * math.TwoPi
			su, cu := math32.Sincos(u)
			center := math.Vec3{X: radius * cu, Z: radius * su}
			pt := math.Vec3{
				X: (radius + tubeRadius*cv) * cu,
				Y: tubeRadius * sv,
				Z: (radius + tubeRadius*cv) * su,
			}
			m.Vertices = append(m.Vertices, Vertex{Position: pt, Normal: pt.Sub(center).Normalize()})
		}
	}
	stride := uint32(radialSegs + 1)
	for j := uint32(1); j <= uint32(tubeSegs); j++ {
		for i := uint32(1); i <= uint32(radialSegs); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	m.computeBounds()
	return m
}

// Sphere builds a sphere, or a band of one when thetaLength is less than π.
// Theta is measured from the +Y pole; a hemisphere dome is (0, π/2).
func Sphere(radius, thetaStart, thetaLength float32, widthSegs, heightSegs int) *Mesh {
	m := &Mesh{}
	for row := 0; row <= heightSegs; row++ {
		theta := thetaStart + float32(row)/float32(heightSegs)*thetaLength
		st, ct := math32.Sincos(theta)
		for col := 0; col <= widthSegs; col++ {
			phi := float32(col) / float32(widthSegs) * math.TwoPi
			sp, cp := math32.Sincos(phi)
			n := math.Vec3{X: st * cp, Y: ct, Z: st * sp}
			m.Vertices = append(m.Vertices, Vertex{Position: n.Scale(radius), Normal: n})
		}
	}
	stride := uint32(widthSegs + 1)
	for row := uint32(0); row < uint32(heightSegs); row++ {
		for col := uint32(0); col < uint32(widthSegs); col++ {
			a := row*stride + col
			b := a + stride
			c := b + 1
			d := a + 1
			m.Indices = append(m.Indices, a, d, b, b, d, c)
		}
	}
	m.computeBounds()
	return m
}

// boxFaces lists each face as its outward normal and two in-plane axes.
var boxFaces = [6][3]math.Vec3{
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
}

// Box builds an axis-aligned box centered on the origin.
func Box(width, height, depth float32) *Mesh {
	m := &Mesh{}
	half := math.Vec3{X: width / 2, Y: height / 2, Z: depth / 2}
	for _, f := range boxFaces {
		normal, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := normal.Add(u.Scale(corner[0])).Add(v.Scale(corner[1])).Mul(half)
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.computeBounds()
	return m
}
