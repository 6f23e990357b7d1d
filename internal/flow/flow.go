// Package flow holds the cosmetic propellant paths: one oxidizer and one
// fuel curve per stage, each with a fixed buffer of animated points.
package flow

import (
	"fmt"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

const (
	// DefaultPoints is the buffer size of each path.
	DefaultPoints = 120

	// PointSize and Opacity are how renderers should draw flow points.
	PointSize = 0.6
	Opacity   = 0.9

	colorOxidizer = "#7fd0ff"
	colorKerosene = "#ffb86b"
	colorHydrogen = "#d7ddff"
)

// stageSpeeds are the per-stage advection speeds.
var stageSpeeds = map[assembly.Stage]float32{
	assembly.StageIC:  0.35,
	assembly.StageII:  0.28,
	assembly.StageIVB: 0.22,
}

// Path is one animated propellant line. Points are in the assembly root
// frame and are rewritten in place each frame the path is visible.
type Path struct {
	ID      string
	Stage   assembly.Stage
	Role    assembly.TankRole
	Color   string
	Speed   float32
	Curve   *Curve
	Points  []math.Vec3
	Visible bool
}

// Fill places point i at arc fraction (t0 + i/N) mod 1.
func (p *Path) Fill(t0 float64) {
	n := len(p.Points)
	for i := range p.Points {
		u := math.Wrap01(t0 + float64(i)/float64(n))
		p.Points[i] = p.Curve.PointAt(float32(u))
	}
}

// Registry is the fixed set of flow paths.
type Registry struct {
	paths []*Path
}

// NewRegistry derives two paths per stage from the layout's tanks and
// engine mounts. It panics if the layout lacks a stage or tank.
func NewRegistry(layout assembly.Layout, pointsPerPath int) *Registry {
	if pointsPerPath < 1 {
		panic(fmt.Sprintf("flow: invalid points per path %d", pointsPerPath))
	}

	r := &Registry{}
	for i, st := range assembly.Stages() {
		sec, ok := layout.StageSection(st)
		if !ok {
			panic(fmt.Sprintf("flow: layout has no section for %s", st))
		}
		for _, role := range []assembly.TankRole{assembly.Oxidizer, assembly.Fuel} {
			tank, ok := layout.Tank(st, role)
			if !ok {
				panic(fmt.Sprintf("flow: layout has no %s tank for %s", role, st))
			}
			r.paths = append(r.paths, &Path{
				ID:     pathID(i+1, role),
				Stage:  st,
				Role:   role,
				Color:  pathColor(st, role),
				Speed:  stageSpeeds[st],
				Curve:  NewCurve(route(sec, tank)...),
				Points: make([]math.Vec3, pointsPerPath),
			})
		}
	}
	return r
}

func pathID(stage int, role assembly.TankRole) string {
	if role == assembly.Oxidizer {
		return fmt.Sprintf("s%d_lox", stage)
	}
	return fmt.Sprintf("s%d_fuel", stage)
}

func pathColor(st assembly.Stage, role assembly.TankRole) string {
	switch {
	case role == assembly.Oxidizer:
		return colorOxidizer
	case st == assembly.StageIC:
		return colorKerosene
	default:
		return colorHydrogen
	}
}

// route runs from inside the tank out to the wall, down the gap between
// tank and skin, and in to the engine mount at the stage base. Oxidizer
// runs on the +X side, fuel on -X.
func route(sec assembly.Placement, tank assembly.TankSpan) []math.Vec3 {
	side := float32(1)
	if tank.Role == assembly.Fuel {
		side = -1
	}
	h := tank.Top - tank.Bottom
	wall := tank.Radius + (sec.BottomRadius-tank.Radius)/2
	low := sec.Base + 1.5

	pts := []math.Vec3{
		{X: side * 0.6 * tank.Radius, Y: tank.Top - 0.1*h},
		{X: side * 0.9 * tank.Radius, Y: tank.Bottom + h/2},
		{X: side * wall, Y: tank.Bottom},
	}
	if tank.Bottom-low > 2 {
		pts = append(pts, math.Vec3{X: side * wall, Y: low + 1})
	}

	end := math.Vec3{Y: sec.Base}
	if n := len(sec.EngineMounts); n > 0 {
		end = sec.EngineMounts[n-1]
	}
	return append(pts, end)
}

// Paths returns every path in stage order.
func (r *Registry) Paths() []*Path {
	return r.paths
}

// Stage returns the paths belonging to a stage.
func (r *Registry) Stage(st assembly.Stage) []*Path {
	var out []*Path
	for _, p := range r.paths {
		if p.Stage == st {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a path by id.
func (r *Registry) Lookup(id string) (*Path, bool) {
	for _, p := range r.paths {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
