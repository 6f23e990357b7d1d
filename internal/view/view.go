// Package view applies the per-frame view state to the assembly and flow
// paths: rotation, explode, cutaway and flow advection.
package view

import (
	"fmt"
	"time"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/flow"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Control ranges.
const (
	MaxRotateSpeed = 2 // rad/s
)

// State is the user-facing view configuration. It is passed to Apply every
// frame; nothing in this package keeps a copy.
type State struct {
	AutoRotate  bool
	RotateSpeed float32 // rad/s
	Explode     float32 // 0 assembled, 1 fully exploded
	Cutaway     float32 // 0 opaque shells, 1 most see-through
	FlowEnabled bool
	ActiveStage assembly.Stage
}

// DefaultState is the state a fresh viewer starts in.
func DefaultState() State {
	return State{
		AutoRotate:  true,
		RotateSpeed: 0.35,
		ActiveStage: assembly.StageIC,
	}
}

// Clamped returns s with every field forced into its control range. An
// unknown stage falls back to the first stage.
func (s State) Clamped() State {
	s.RotateSpeed = math.Clamp(s.RotateSpeed, 0, MaxRotateSpeed)
	s.Explode = math.Clamp(s.Explode, 0, 1)
	s.Cutaway = math.Clamp(s.Cutaway, 0, 1)
	if _, err := assembly.ParseStage(string(s.ActiveStage)); err != nil {
		s.ActiveStage = assembly.StageIC
	}
	return s
}

func (s State) String() string {
	return fmt.Sprintf("rotate=%t@%.2f explode=%.2f cutaway=%.2f flow=%t stage=%s",
		s.AutoRotate, s.RotateSpeed, s.Explode, s.Cutaway, s.FlowEnabled, s.ActiveStage)
}

// Defaults for Engine.
const (
	DefaultSpeedScale   = 0.1
	DefaultMaxFrameStep = 50 * time.Millisecond
)

// Engine maps a State onto the scene. It holds only tuning constants.
type Engine struct {
	// SpeedScale converts path speed into curve cycles per second.
	SpeedScale float64
	// MaxFrameStep caps dt so a stalled frame cannot jump the rotation.
	MaxFrameStep time.Duration
}

// NewEngine returns an engine with the default tuning.
func NewEngine() *Engine {
	return &Engine{
		SpeedScale:   DefaultSpeedScale,
		MaxFrameStep: DefaultMaxFrameStep,
	}
}

// FrameStats summarizes one Apply call.
type FrameStats struct {
	Step         time.Duration // dt after clamping
	Yaw          float32
	Moved        int // parts displaced from rest
	Shells       int
	VisiblePaths int
}

// Apply runs the four independent view steps. now is the time since the
// viewer started, dt the time since the previous frame.
func (e *Engine) Apply(s State, a *assembly.Assembly, flows *flow.Registry, now, dt time.Duration) FrameStats {
	if dt < 0 {
		dt = 0
	}
	if dt > e.MaxFrameStep {
		dt = e.MaxFrameStep
	}
	stats := FrameStats{Step: dt}

	if s.AutoRotate {
		a.SetYaw(math.WrapAngle(a.Yaw() + s.RotateSpeed*float32(dt.Seconds())))
	}
	stats.Yaw = a.Yaw()

	for _, p := range a.Parts {
		if off, ok := assembly.ExplodeOffset(p.ID); ok {
			shift := off * s.Explode
			p.Node.Position.Y = p.BaseOffset + shift
			if shift != 0 {
				stats.Moved++
			}
		}
		if p.Shell {
			p.Material.SetCutaway(s.Cutaway)
			stats.Shells++
		}
	}

	if flows != nil {
		for _, path := range flows.Paths() {
			path.Visible = s.FlowEnabled && path.Stage == s.ActiveStage
			if !path.Visible {
				continue
			}
			path.Fill(math.Wrap01(now.Seconds() * e.SpeedScale * float64(path.Speed)))
			stats.VisiblePaths++
		}
	}

	return stats
}
