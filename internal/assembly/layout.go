package assembly

import "github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"

// Placement is where a section ended up in the stack. Coordinates are in the
// assembly root frame.
type Placement struct {
	Name         string
	Stage        Stage
	Base         float32
	Height       float32
	BottomRadius float32
	TopRadius    float32

	// EngineMounts are the engine positions at the section base.
	EngineMounts []math.Vec3
}

// Top is the Y of the section's upper edge.
func (p Placement) Top() float32 {
	return p.Base + p.Height
}

// TankSpan is the cylindrical part of a tank, domes excluded.
type TankSpan struct {
	ID     string
	Stage  Stage
	Role   TankRole
	Bottom float32
	Top    float32
	Radius float32
}

// Center is the midpoint of the tank on the axis.
func (t TankSpan) Center() math.Vec3 {
	return math.Vec3{Y: (t.Bottom + t.Top) / 2}
}

// Layout records the resolved stack so other components can derive
// positions from the same plan.
type Layout struct {
	// Base is the Y of the first section's bottom; the first stage's
	// nozzle exits rest on y=0.
	Base     float32
	Height   float32
	Sections []Placement
	Tanks    []TankSpan
}

// Section returns the placement with the given name.
func (l Layout) Section(name string) (Placement, bool) {
	for _, p := range l.Sections {
		if p.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// StageSection returns the propulsion section carrying the stage.
func (l Layout) StageSection(stage Stage) (Placement, bool) {
	for _, p := range l.Sections {
		if p.Stage == stage {
			return p, true
		}
	}
	return Placement{}, false
}

// Tank returns the stage's tank with the given role.
func (l Layout) Tank(stage Stage, role TankRole) (TankSpan, bool) {
	for _, t := range l.Tanks {
		if t.Stage == stage && t.Role == role {
			return t, true
		}
	}
	return TankSpan{}, false
}
