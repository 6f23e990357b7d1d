package bridge

import (
	"time"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/camera"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/debug"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/lighting"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/picking"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/scene"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/flow"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/view"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// SceneMessage describes every part at rest, in assembly order, together
// with the flow paths and camera.
func SceneMessage(a *assembly.Assembly, flows *flow.Registry, cam *camera.OrbitCamera) packets.Scene {
	msg := packets.Scene{
		Parts:  make([]packets.Part, len(a.Parts)),
		Camera: CameraMessage(cam),
	}
	for i, p := range a.Parts {
		msg.Parts[i] = partDTO(i, p, a.Root)
	}
	if flows != nil {
		for _, path := range flows.Paths() {
			msg.Flows = append(msg.Flows, packets.Flow{
				ID:      path.ID,
				Stage:   string(path.Stage),
				Color:   path.Color,
				Size:    flow.PointSize,
				Opacity: flow.Opacity,
				Count:   len(path.Points),
			})
		}
	}
	return msg
}

func partDTO(index int, p *scene.Part, root *scene.Node) packets.Part {
	// Ancestors below the root only translate, so the explode shift can be
	// taken back out along Y.
	shift := p.Node.Position.Y - p.BaseOffset
	rest := math.Translate(math.Vec3{Y: -shift}).Mul(p.Node.MatrixTo(root))

	dto := packets.Part{
		Index:     index,
		ID:        p.ID,
		Kind:      p.Kind.String(),
		Shell:     p.Shell,
		Matrix:    rest,
		Positions: make([]float32, 0, 3*len(p.Mesh.Vertices)),
		Normals:   make([]float32, 0, 3*len(p.Mesh.Vertices)),
		Indices:   p.Mesh.Indices,
		Material: packets.Material{
			Color:           p.Material.ColorHex(),
			Roughness:       p.Material.Roughness,
			Metalness:       p.Material.Metalness,
			EnvMapIntensity: p.Material.EnvMapIntensity,
		},
	}
	for _, v := range p.Mesh.Vertices {
		dto.Positions = append(dto.Positions, v.Position.X, v.Position.Y, v.Position.Z)
		dto.Normals = append(dto.Normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return dto
}

// EnvironmentMessage packs the light rig, star positions and ground grid.
// A zero-vertex grid is sent as empty lines.
func EnvironmentMessage(rig lighting.Rig, stars []math.Vec3, grid debug.Grid) packets.Environment {
	key := rig.Key.Position.Array()
	env := packets.Environment{
		Background: rig.Background,
		Exposure:   rig.Exposure,
		Ambient:    packets.Light{Color: rig.Ambient.Color, Intensity: rig.Ambient.Intensity},
		Key:        packets.Light{Color: rig.Key.Color, Intensity: rig.Key.Intensity, Position: &key},
		Fog:        packets.Fog{Color: rig.Fog.Color, Near: rig.Fog.Near, Far: rig.Fog.Far},
		Stars: packets.Points{
			Color:     lighting.StarColor,
			Size:      lighting.StarSize,
			Opacity:   lighting.StarOpacity,
			Positions: make([]float32, 0, 3*len(stars)),
		},
		Grid: packets.Lines{
			Positions: grid.Positions,
			Colors:    grid.Colors,
			Opacity:   grid.Opacity,
		},
	}
	for _, s := range stars {
		env.Stars.Positions = append(env.Stars.Positions, s.X, s.Y, s.Z)
	}
	if env.Grid.Positions == nil {
		env.Grid.Positions = []float32{}
		env.Grid.Colors = []float32{}
	}
	return env
}

// CameraMessage snapshots the orbit camera.
func CameraMessage(cam *camera.OrbitCamera) packets.Camera {
	return packets.Camera{
		FOV:      cam.FOV,
		Near:     cam.Near,
		Far:      cam.Far,
		Aspect:   cam.Aspect,
		Distance: cam.Distance,
		Pitch:    cam.Pitch,
		Yaw:      cam.Yaw,
		Target:   cam.Target.Array(),
	}
}

// FrameMessage snapshots the per-frame state after the view engine ran.
func FrameMessage(seq uint64, now time.Duration, s view.State, a *assembly.Assembly, flows *flow.Registry, sel picking.Selection) packets.Frame {
	msg := packets.Frame{
		Seq:              seq,
		Time:             now.Seconds(),
		Yaw:              a.Yaw(),
		Offsets:          make([]float32, len(a.Parts)),
		ShellOpacity:     1,
		ShellTransparent: false,
		State:            StateMessage(s),
	}

	shellSeen := false
	for i, p := range a.Parts {
		msg.Offsets[i] = p.Node.Position.Y - p.BaseOffset
		if p.Shell && !shellSeen {
			msg.ShellOpacity = p.Material.Opacity
			msg.ShellTransparent = p.Material.Transparent
			shellSeen = true
		}
	}

	if !sel.Empty() {
		msg.Highlight = sel.ID
		msg.Emissive = sel.Part.Material.EmissiveHex()
		msg.EmissiveIntensity = sel.Part.Material.EmissiveIntensity
		msg.SelectionBox = debug.SelectionBox(a.Group(sel.ID), a.Root)
	}

	msg.Flows = []packets.FlowFrame{}
	if flows != nil {
		for _, path := range flows.Paths() {
			if !path.Visible {
				continue
			}
			pts := make([]float32, 0, 3*len(path.Points))
			for _, pt := range path.Points {
				pts = append(pts, pt.X, pt.Y, pt.Z)
			}
			msg.Flows = append(msg.Flows, packets.FlowFrame{ID: path.ID, Points: pts})
		}
	}
	return msg
}

// StateMessage mirrors the view state.
func StateMessage(s view.State) packets.State {
	return packets.State{
		AutoRotate:  s.AutoRotate,
		RotateSpeed: s.RotateSpeed,
		Explode:     s.Explode,
		Cutaway:     s.Cutaway,
		Flow:        s.FlowEnabled,
		ActiveStage: string(s.ActiveStage),
	}
}

// InfoMessage converts a pick result. A cleared selection converts to an
// empty message.
func InfoMessage(info picking.Info) packets.Info {
	if info.PartID == "" {
		return packets.Info{Description: []string{}}
	}
	desc := info.Meta.Description
	if desc == nil {
		desc = []string{}
	}
	return packets.Info{
		PartID:      info.PartID,
		Name:        info.Meta.Name,
		Description: desc,
		Known:       info.Known,
	}
}
