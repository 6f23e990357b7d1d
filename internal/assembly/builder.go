package assembly

import (
	"fmt"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Build assembles the default vehicle.
func Build() *Assembly {
	return BuildPlan(DefaultPlan())
}

// BuildPlan assembles a vehicle from a bottom-to-top section list. It is
// deterministic: the same plan always yields the same parts in the same
// order with the same transforms. Malformed plans panic.
func BuildPlan(plan []Section) *Assembly {
	if len(plan) == 0 {
		panic("assembly: empty plan")
	}

	b := &builder{root: scene.NewNode("vehicle")}

	var base float32
	if e := plan[0].Engines; e != nil {
		base = e.Length()
	}
	b.layout.Base = base

	y := base
	for _, s := range plan {
		if !(s.Height > 0) {
			panic(fmt.Sprintf("assembly: section %q has non-positive height %v", s.Name, s.Height))
		}
		b.section(s, y)
		y += s.Height
	}
	b.layout.Height = y

	parts := b.root.Parts()
	for _, p := range parts {
		p.Shell = IsShell(p.ID)
		p.CaptureBase()
	}
	return newAssembly(b.root, parts, b.layout)
}

type builder struct {
	root   *scene.Node
	layout Layout
}

func (b *builder) section(s Section, base float32) {
	group := scene.NewNode(s.Name)
	group.Position.Y = base
	b.root.Add(group)

	placement := Placement{Name: s.Name, Stage: s.Stage, Base: base, Height: s.Height}
	if s.Shell != nil {
		placement.BottomRadius = s.Shell.BottomRadius
		placement.TopRadius = s.Shell.TopRadius

		shell := scene.NewShape(scene.ShapeCylinder,
			scene.CylinderDims(s.Shell.TopRadius, s.Shell.BottomRadius, s.Height),
			s.Shell.Color, s.Shell.ID)
		shell.Node.Position.Y = s.Height / 2
		group.Add(shell.Node)
	}

	for _, t := range s.Tanks {
		b.tank(group, s, t, base)
	}

	for _, c := range s.Components {
		b.component(group, c)
	}

	if s.Engines != nil {
		for _, m := range s.Engines.Mounts() {
			placement.EngineMounts = append(placement.EngineMounts, m.Add(math.Vec3{Y: base}))
		}
		b.engines(group, *s.Engines)
	}

	for _, y := range s.Bands {
		band := scene.NewShape(scene.ShapeTorus,
			scene.TorusDims(s.radius(y)+bandInset, bandTube), colorBand, s.BandID)
		band.Node.Position.Y = y
		group.Add(band.Node)
	}

	b.layout.Sections = append(b.layout.Sections, placement)
}

func (b *builder) tank(group *scene.Node, s Section, t Tank, base float32) {
	r := s.tankRadius()
	if !(r > 0) {
		panic(fmt.Sprintf("assembly: tank %q in section %q without shell", t.ID, s.Name))
	}

	body := scene.NewShape(scene.ShapeCylinder, scene.CylinderDims(r, r, t.Height), t.Color, t.ID)
	body.Node.Position.Y = t.Bottom + t.Height/2
	group.Add(body.Node)

	for _, upper := range []bool{false, true} {
		dome := scene.NewShape(scene.ShapeSphere, scene.DomeDims(r, upper), t.Color, t.ID)
		dome.Node.Position.Y = t.Bottom
		if upper {
			dome.Node.Position.Y += t.Height
		}
		dome.Node.Scale.Y = domeSquash
		group.Add(dome.Node)
	}

	b.layout.Tanks = append(b.layout.Tanks, TankSpan{
		ID:     t.ID,
		Stage:  s.Stage,
		Role:   t.Role,
		Bottom: base + t.Bottom,
		Top:    base + t.Bottom + t.Height,
		Radius: r,
	})
}

func (b *builder) component(group *scene.Node, c Component) {
	count := c.Count
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		angle := c.Phase + math.TwoPi*float32(i)/float32(count)
		b.place(group, c, math.Polar(c.Radius, angle, c.Y), angle)
	}
	if c.Center {
		b.place(group, c, math.Vec3{Y: c.Y}, c.Phase)
	}
}

func (b *builder) place(group *scene.Node, c Component, pos math.Vec3, angle float32) {
	p := scene.NewShape(c.Kind, c.Dims, c.Color, c.ID)
	p.Node.Position = pos
	if c.Align {
		p.Node.Rotation = math.QuatYaw(-angle)
	}
	group.Add(p.Node)
}

// engines hangs the cluster below the section base. Every chamber and
// nozzle carries the cluster id.
func (b *builder) engines(group *scene.Node, e Engine) {
	cluster := scene.NewNode(e.ID + ":cluster")
	group.Add(cluster)

	for _, m := range e.Mounts() {
		chamber := scene.NewShape(scene.ShapeCylinder,
			scene.CylinderDims(e.ChamberTop, e.ChamberBottom, e.ChamberHeight), colorChamber, e.ID)
		chamber.Node.Position = math.Vec3{X: m.X, Y: -e.ChamberHeight / 2, Z: m.Z}
		cluster.Add(chamber.Node)

		nozzle := scene.NewShape(scene.ShapeCone,
			scene.ConeDims(e.NozzleRadius, e.NozzleHeight), colorNozzle, e.ID)
		nozzle.Node.Position = math.Vec3{X: m.X, Y: -e.ChamberHeight - e.NozzleHeight/2, Z: m.Z}
		cluster.Add(nozzle.Node)
	}
}
