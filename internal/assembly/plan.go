package assembly

import (
	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Palette.
const (
	colorStageShell  = "#9fb0ff"
	colorUpperShell  = "#b4c2ff"
	colorStage2Shell = "#90a4ff"
	colorInterstage  = "#5567aa"
	colorFuel        = "#ffb86b"
	colorLOX         = "#7fd0ff"
	colorLH2         = "#c9f0ff"
	colorChamber     = "#3b415a"
	colorNozzle      = "#2a2f45"
	colorGimbal      = "#8aa2ff"
	colorPipe        = "#d7ddff"
	colorPump        = "#47ff9a"
	colorSeparation  = "#ff6b8a"
	colorBottle      = "#47ff9a"
	colorFin         = "#ffffff"
	colorAvionics    = "#47ff9a"
	colorBattery     = "#ff6b8a"
	colorFairing     = "#f2f5ff"
	colorNose        = "#f7d36a"
	colorBand        = "#2a2f45"
	colorHarness     = "#ff6b8a"
)

const (
	// tankRadiusFactor sizes tanks relative to the shell they sit in.
	tankRadiusFactor = 0.82
	// domeSquash flattens tank end caps to this fraction of the tank radius.
	domeSquash = 0.3
	// bandInset keeps the decorative bands just outside the skin.
	bandInset = 0.05
	bandTube  = 0.18
)

// Shell is the outer skin of a section. It spans the section's full height.
type Shell struct {
	ID           string
	Color        string
	BottomRadius float32
	TopRadius    float32
}

// Tank is a propellant tank: a cylinder with squashed domes on both ends,
// all sharing one pick id.
type Tank struct {
	ID     string
	Role   TankRole
	Bottom float32 // local Y of the cylinder bottom
	Height float32 // cylinder height, domes excluded
	Color  string
}

// Engine describes a cluster of identical engines hanging below the
// section's base. Chamber and nozzle share the cluster id.
type Engine struct {
	ID         string
	Ring       int     // engines on the ring
	RingRadius float32 // ring radius
	Phase      float32 // angle of the first ring engine
	Center     bool    // plus one on the axis

	ChamberTop    float32
	ChamberBottom float32
	ChamberHeight float32
	NozzleRadius  float32
	NozzleHeight  float32
}

// Length is the total engine length from mount to nozzle exit.
func (e Engine) Length() float32 {
	return e.ChamberHeight + e.NozzleHeight
}

// Mounts returns the engine positions in section-local XZ.
func (e Engine) Mounts() []math.Vec3 {
	mounts := radial(e.Ring, e.RingRadius, e.Phase, 0)
	if e.Center {
		mounts = append(mounts, math.Vec3{})
	}
	return mounts
}

// Component is any other internal element, repeated Count times around the
// vertical axis at Radius (Count 1 with zero Radius sits on the axis).
type Component struct {
	ID     string
	Kind   scene.ShapeKind
	Dims   scene.Dims
	Color  string
	Y      float32 // local center height
	Count  int
	Radius float32
	Phase  float32
	// Align turns each instance so its local X axis points outward.
	Align bool
	// Center adds one more instance on the axis.
	Center bool
}

// Section is one stacked slice of the vehicle.
type Section struct {
	Name   string
	Stage  Stage // empty for non-propulsion sections
	Height float32

	Shell      *Shell
	Tanks      []Tank
	Engines    *Engine
	Components []Component

	BandID string
	Bands  []float32 // local band heights
}

// radius returns the shell radius at local height y.
func (s Section) radius(y float32) float32 {
	if s.Shell == nil {
		return 0
	}
	t := math.Clamp(y/s.Height, 0, 1)
	return math.Lerp(s.Shell.BottomRadius, s.Shell.TopRadius, t)
}

// tankRadius returns the radius tanks in this section use.
func (s Section) tankRadius() float32 {
	if s.Shell == nil {
		return 0
	}
	return math32.Min(s.Shell.BottomRadius, s.Shell.TopRadius) * tankRadiusFactor
}

// radial returns n points evenly spaced around the Y axis.
func radial(n int, radius, phase, y float32) []math.Vec3 {
	pts := make([]math.Vec3, 0, n+1)
	for i := 0; i < n; i++ {
		a := phase + math.TwoPi*float32(i)/float32(n)
		pts = append(pts, math.Polar(radius, a, y))
	}
	return pts
}

// DefaultPlan returns the vehicle, bottom to top. Each call returns a fresh
// copy that callers may modify before building.
func DefaultPlan() []Section {
	const (
		r1 = 6.0 // first and second stage radius
		r3 = 4.4 // third stage radius
		rc = 2.6 // spacecraft radius
	)

	return []Section{
		{
			Name:   "s_ic",
			Stage:  StageIC,
			Height: 42,
			Shell:  &Shell{ID: "s_ic_shell", Color: colorStageShell, BottomRadius: r1, TopRadius: r1},
			Tanks: []Tank{
				{ID: "s_ic_fuel_tank", Role: Fuel, Bottom: 3, Height: 14, Color: colorFuel},
				{ID: "s_ic_lox_tank", Role: Oxidizer, Bottom: 20, Height: 18, Color: colorLOX},
			},
			Engines: &Engine{
				ID: "stage1_engines", Ring: 4, RingRadius: 3.3, Phase: math.Pi / 4, Center: true,
				ChamberTop: 0.75, ChamberBottom: 0.95, ChamberHeight: 2.3,
				NozzleRadius: 1.5, NozzleHeight: 4.2,
			},
			Components: []Component{
				{ID: "s_ic_thrust_structure", Kind: scene.ShapeTorus, Dims: scene.TorusDims(3.3, 0.45),
					Color: colorGimbal, Y: 1, Count: 1},
				{ID: "s_ic_thrust_structure", Kind: scene.ShapeBox, Dims: scene.BoxDims(3.3, 0.5, 0.5),
					Color: colorGimbal, Y: 1, Count: 4, Radius: 1.65, Phase: math.Pi / 4, Align: true},
				{ID: "s_ic_gimbals", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.3, 0.3, 0.9),
					Color: colorGimbal, Y: 0.45, Count: 4, Radius: 3.3, Phase: math.Pi / 4, Center: true},
				{ID: "s_ic_feed_lines", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.28, 0.28, 18.5),
					Color: colorPipe, Y: 10.75, Count: 4, Radius: 5.4, Phase: math.Pi / 4},
				{ID: "s_ic_valves", Kind: scene.ShapeBox, Dims: scene.BoxDims(0.8, 0.6, 0.8),
					Color: colorPump, Y: 1.2, Count: 4, Radius: 5.4, Phase: math.Pi / 4, Align: true},
				{ID: "s_ic_turbopumps", Kind: scene.ShapeBox, Dims: scene.BoxDims(0.9, 1.2, 0.9),
					Color: colorPump, Y: -1.2, Count: 4, Radius: 4.9, Phase: math.Pi / 4, Align: true},
				{ID: "s_ic_gas_generator", Kind: scene.ShapeSphere, Dims: scene.SphereDims(0.35),
					Color: colorSeparation, Y: -2.3, Count: 4, Radius: 4.9, Phase: math.Pi / 4},
				{ID: "s_ic_copv", Kind: scene.ShapeSphere, Dims: scene.SphereDims(0.6),
					Color: colorBottle, Y: 18.5, Count: 4, Radius: 5.2},
				{ID: "wiring_harness", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.15, 0.15, 40),
					Color: colorHarness, Y: 21, Count: 1, Radius: 5.6, Phase: math.Pi},
				{ID: "fins", Kind: scene.ShapeBox, Dims: scene.BoxDims(3, 6, 0.35),
					Color: colorFin, Y: 3, Count: 4, Radius: r1 + 1.5, Phase: math.Pi / 4, Align: true},
			},
			BandID: "s_ic_band",
			Bands:  []float32{0.3, 41.7},
		},
		{
			Name:   "interstage_1_2",
			Height: 6,
			Shell:  &Shell{ID: "interstage_1_2", Color: colorInterstage, BottomRadius: r1, TopRadius: r1},
			Components: []Component{
				{ID: "stage_separation", Kind: scene.ShapeTorus, Dims: scene.TorusDims(r1-0.45, 0.4),
					Color: colorSeparation, Y: 0.6, Count: 1},
			},
		},
		{
			Name:   "s_ii",
			Stage:  StageII,
			Height: 26,
			Shell:  &Shell{ID: "s_ii_shell", Color: colorStage2Shell, BottomRadius: r1, TopRadius: r1},
			Tanks: []Tank{
				{ID: "s_ii_lox_tank", Role: Oxidizer, Bottom: 1.8, Height: 5, Color: colorLOX},
				{ID: "s_ii_lh2_tank", Role: Fuel, Bottom: 10, Height: 14, Color: colorLH2},
			},
			Engines: &Engine{
				ID: "stage2_engines", Ring: 4, RingRadius: 2.6, Phase: math.Pi / 4, Center: true,
				ChamberTop: 0.45, ChamberBottom: 0.55, ChamberHeight: 1.2,
				NozzleRadius: 0.95, NozzleHeight: 2.8,
			},
			Components: []Component{
				{ID: "s_ii_feed_lines", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.22, 0.22, 9),
					Color: colorPipe, Y: 5.1, Count: 2, Radius: 5.45},
				{ID: "s_ii_copv", Kind: scene.ShapeSphere, Dims: scene.SphereDims(0.55),
					Color: colorBottle, Y: 0.9, Count: 4, Radius: 5.3, Phase: math.Pi / 4},
			},
			BandID: "s_ii_band",
			Bands:  []float32{25.7},
		},
		{
			Name:   "interstage_2_3",
			Height: 5,
			Shell:  &Shell{ID: "interstage_2_3", Color: colorInterstage, BottomRadius: r1, TopRadius: r3},
		},
		{
			Name:   "s_ivb",
			Stage:  StageIVB,
			Height: 18,
			Shell:  &Shell{ID: "s_ivb_shell", Color: colorUpperShell, BottomRadius: r3, TopRadius: r3},
			Tanks: []Tank{
				{ID: "s_ivb_lox_tank", Role: Oxidizer, Bottom: 1.4, Height: 3.2, Color: colorLOX},
				{ID: "s_ivb_lh2_tank", Role: Fuel, Bottom: 6.9, Height: 9.6, Color: colorLH2},
			},
			Engines: &Engine{
				ID: "stage3_engine", Center: true,
				ChamberTop: 0.5, ChamberBottom: 0.6, ChamberHeight: 1.3,
				NozzleRadius: 1.25, NozzleHeight: 3.0,
			},
			Components: []Component{
				{ID: "s_ivb_feed_lines", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.18, 0.18, 6),
					Color: colorPipe, Y: 3.4, Count: 2, Radius: 4.0, Phase: math.Pi / 2},
				{ID: "s_ivb_copv", Kind: scene.ShapeSphere, Dims: scene.SphereDims(0.45),
					Color: colorBottle, Y: 0.6, Count: 2, Radius: 3.9},
			},
			BandID: "s_ivb_band",
			Bands:  []float32{17.7},
		},
		{
			Name:   "instrument_unit",
			Height: 2.2,
			Shell:  &Shell{ID: "instrument_unit", Color: colorAvionics, BottomRadius: r3, TopRadius: r3},
			Components: []Component{
				{ID: "iu_imu", Kind: scene.ShapeBox, Dims: scene.BoxDims(0.8, 1.2, 1.4),
					Color: colorAvionics, Y: 1.1, Count: 1, Radius: 3.4, Align: true},
				{ID: "iu_flight_computer", Kind: scene.ShapeBox, Dims: scene.BoxDims(0.8, 1.2, 1.4),
					Color: colorPipe, Y: 1.1, Count: 1, Radius: 3.4, Phase: math.TwoPi / 3, Align: true},
				{ID: "iu_power_bus", Kind: scene.ShapeBox, Dims: scene.BoxDims(0.8, 1.2, 1.4),
					Color: colorBattery, Y: 1.1, Count: 1, Radius: 3.4, Phase: 2 * math.TwoPi / 3, Align: true},
			},
		},
		{
			Name:   "sla",
			Height: 8,
			Shell:  &Shell{ID: "sla_adapter", Color: colorFairing, BottomRadius: r3, TopRadius: rc},
		},
		{
			Name:   "service_module",
			Height: 7,
			Shell:  &Shell{ID: "service_module", Color: colorPipe, BottomRadius: rc, TopRadius: rc},
			Engines: &Engine{
				ID: "service_module", Center: true,
				ChamberTop: 0.3, ChamberBottom: 0.35, ChamberHeight: 0.5,
				NozzleRadius: 0.9, NozzleHeight: 1.7,
			},
		},
		{
			Name:   "command_module",
			Height: 3.6,
			Shell:  &Shell{ID: "command_module", Color: colorFairing, BottomRadius: rc, TopRadius: 0.7},
		},
		{
			Name:   "les",
			Height: 10,
			Components: []Component{
				{ID: "les", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.35, 1.0, 5),
					Color: colorSeparation, Y: 2.5, Count: 1},
				{ID: "les", Kind: scene.ShapeCylinder, Dims: scene.CylinderDims(0.5, 0.5, 3.4),
					Color: colorFairing, Y: 6.7, Count: 1},
				{ID: "les", Kind: scene.ShapeCone, Dims: scene.ConeDims(0.5, 1.6),
					Color: colorNose, Y: 9.2, Count: 1},
			},
		},
	}
}
