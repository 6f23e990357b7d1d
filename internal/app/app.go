// Package app runs the viewer's frame loop. One goroutine owns the
// assembly, flow paths, selection, view state and camera; input arrives as
// events between frames and every tick is broadcast to renderers.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/bridge"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/config"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/camera"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/debug"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/lighting"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/picking"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/flow"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/logger"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/parts"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/view"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Broadcaster sends messages to every connected renderer. Retained
// messages are also replayed to renderers that connect later.
type Broadcaster interface {
	Broadcast(msgType string, payload any) (int, error)
	Retain(msgType string, payload any) (int, error)
}

type discard struct{}

func (discard) Broadcast(string, any) (int, error) { return 0, nil }
func (discard) Retain(string, any) (int, error)    { return 0, nil }

// App is the viewer instance.
type App struct {
	Assembly *assembly.Assembly
	Flows    *flow.Registry
	Registry *parts.Registry
	Resolver *picking.Resolver
	Camera   *camera.OrbitCamera
	State    view.State

	engine   *view.Engine
	env      packets.Environment
	out      Broadcaster
	interval time.Duration
	seq      uint64
	stats    view.FrameStats

	log      *zap.Logger
	frameLog *zap.Logger
}

// New builds the vehicle and applies the config. A nil out runs headless.
func New(cfg *config.Config, out Broadcaster) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if out == nil {
		out = discard{}
	}

	a := &App{
		Assembly: assembly.Build(),
		Registry: parts.Default(),
		Camera:   camera.NewOrbitCamera(),
		engine:   view.NewEngine(),
		out:      out,
		interval: cfg.FrameInterval(),
		log:      logger.Named("app"),
	}
	a.frameLog = logger.Sampled(logger.Named("frame"), 1, 300)
	a.Flows = flow.NewRegistry(a.Assembly.Layout, cfg.Flow.PointsPerPath)
	a.Resolver = picking.NewResolver(a.Assembly.Parts, a.Assembly, a.Registry)
	a.Resolver.OnInfo(a.publishInfo)

	var grid debug.Grid
	if cfg.Scenery.Grid {
		grid = debug.DefaultGrid()
	}
	a.env = bridge.EnvironmentMessage(lighting.DefaultRig(),
		lighting.Stars(cfg.Scenery.Stars, cfg.Scenery.StarSeed), grid)

	a.engine.SpeedScale = cfg.Flow.SpeedScale
	a.engine.MaxFrameStep = cfg.Flow.MaxFrameStep

	stage, err := assembly.ParseStage(cfg.View.ActiveStage)
	if err != nil {
		return nil, err
	}
	a.State = view.State{
		AutoRotate:  cfg.View.AutoRotate,
		RotateSpeed: cfg.View.RotateSpeed,
		Explode:     cfg.View.Explode,
		Cutaway:     cfg.View.Cutaway,
		FlowEnabled: cfg.View.Flow,
		ActiveStage: stage,
	}.Clamped()

	cc := cfg.Camera
	a.Camera.FOV = cc.FOV
	a.Camera.Near = cc.Near
	a.Camera.Far = cc.Far
	if cc.Fit {
		a.Camera.FitToBounds(a.Assembly.Bounds())
		a.Camera.SetOrbit(cc.Yaw, cc.Pitch, a.Camera.Distance)
	} else {
		a.Camera.Target = math.Vec3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]}
		a.Camera.SetOrbit(cc.Yaw, cc.Pitch, cc.Distance)
	}

	a.log.Info("vehicle assembled",
		zap.Int("parts", len(a.Assembly.Parts)),
		zap.Int("groups", len(a.Assembly.GroupIDs())),
		zap.Int("flow_paths", len(a.Flows.Paths())),
		zap.Float32("height", a.Assembly.Layout.Height))

	if _, err := a.out.Retain(packets.TypeScene, a.Scene()); err != nil {
		return nil, fmt.Errorf("publishing scene: %w", err)
	}
	a.publishCamera()
	return a, nil
}

// Scene returns the static scene description.
func (a *App) Scene() packets.Scene {
	msg := bridge.SceneMessage(a.Assembly, a.Flows, a.Camera)
	msg.Environment = a.env
	return msg
}

// Stats returns the summary of the last step.
func (a *App) Stats() view.FrameStats {
	return a.stats
}

// Handle applies one input event.
func (a *App) Handle(ev bridge.Event) {
	switch ev := ev.(type) {
	case bridge.PointerEvent:
		part := a.Resolver.Pick(ev.NDC, a.Camera)
		if part != nil {
			a.log.Debug("picked", zap.String("part", part.ID))
		} else {
			a.log.Debug("pick missed")
		}

	case bridge.ControlEvent:
		a.State = ev.Apply(a.State)
		a.log.Debug("view state", zap.Stringer("state", a.State))

	case bridge.CameraEvent:
		if ev.Aspect != nil {
			a.Camera.SetAspect(*ev.Aspect)
		}
		yaw, pitch, dist := a.Camera.Yaw, a.Camera.Pitch, a.Camera.Distance
		if ev.Yaw != nil {
			yaw = *ev.Yaw
		}
		if ev.Pitch != nil {
			pitch = *ev.Pitch
		}
		if ev.Distance != nil {
			dist = *ev.Distance
		}
		a.Camera.SetOrbit(yaw, pitch, dist)
		a.publishCamera()

	default:
		a.log.Warn("unhandled event", zap.String("type", fmt.Sprintf("%T", ev)))
	}
}

// Step advances one frame and broadcasts it. now is the time since start.
func (a *App) Step(now, dt time.Duration) packets.Frame {
	a.stats = a.engine.Apply(a.State, a.Assembly, a.Flows, now, dt)
	frame := bridge.FrameMessage(a.seq, now, a.State, a.Assembly, a.Flows, a.Resolver.Selection())
	a.seq++

	dropped, err := a.out.Broadcast(packets.TypeFrame, frame)
	if err != nil {
		a.log.Error("broadcasting frame", zap.Error(err))
	}
	a.frameLog.Debug("frame",
		zap.Uint64("seq", frame.Seq),
		zap.Duration("dt", a.stats.Step),
		zap.Float32("yaw", a.stats.Yaw),
		zap.Int("moved", a.stats.Moved),
		zap.Int("visible_paths", a.stats.VisiblePaths),
		zap.Int("dropped", dropped))
	return frame
}

// Run ticks at the configured frame rate and handles events between
// frames until ctx is cancelled.
func (a *App) Run(ctx context.Context, events <-chan bridge.Event) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	a.log.Info("frame loop started", zap.Duration("interval", a.interval))

	for {
		select {
		case <-ctx.Done():
			a.log.Info("frame loop stopped", zap.Uint64("frames", a.seq))
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			a.Handle(ev)
		case t := <-ticker.C:
			a.Step(t.Sub(start), t.Sub(last))
			last = t
		}
	}
}

func (a *App) publishInfo(info picking.Info) {
	if _, err := a.out.Retain(packets.TypeInfo, bridge.InfoMessage(info)); err != nil {
		a.log.Error("publishing info", zap.Error(err))
	}
}

func (a *App) publishCamera() {
	if _, err := a.out.Retain(packets.TypeCamera, bridge.CameraMessage(a.Camera)); err != nil {
		a.log.Error("publishing camera", zap.Error(err))
	}
}
