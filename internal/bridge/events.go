package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/view"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// Event is an inbound message decoded for the frame loop.
type Event interface {
	event()
}

// PointerEvent is a click in normalized device coordinates.
type PointerEvent struct {
	NDC math.Vec2
}

// ControlEvent sets one view state field. Only the value matching the
// field is meaningful.
type ControlEvent struct {
	Field  string
	Bool   bool
	Number float32
	Stage  assembly.Stage
}

// CameraEvent adjusts the orbit camera; nil fields are left unchanged.
type CameraEvent struct {
	Aspect   *float32
	Yaw      *float32
	Pitch    *float32
	Distance *float32
}

func (PointerEvent) event() {}
func (ControlEvent) event() {}
func (CameraEvent) event()  {}

// Apply returns s with the control applied and every field clamped into
// its control range.
func (e ControlEvent) Apply(s view.State) view.State {
	switch e.Field {
	case packets.FieldAutoRotate:
		s.AutoRotate = e.Bool
	case packets.FieldRotateSpeed:
		s.RotateSpeed = e.Number
	case packets.FieldExplode:
		s.Explode = e.Number
	case packets.FieldCutaway:
		s.Cutaway = e.Number
	case packets.FieldFlow:
		s.FlowEnabled = e.Bool
	case packets.FieldActiveStage:
		s.ActiveStage = e.Stage
	}
	return s.Clamped()
}

// DecodeEvent turns a client envelope into an event.
func DecodeEvent(env packets.Envelope) (Event, error) {
	switch env.Type {
	case packets.TypePointer:
		var p packets.Pointer
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("decoding pointer: %w", err)
		}
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("pointer out of range: (%v, %v)", p.X, p.Y)
		}
		return PointerEvent{NDC: math.Vec2{X: p.X, Y: p.Y}}, nil

	case packets.TypeControl:
		var c packets.Control
		if err := json.Unmarshal(env.Payload, &c); err != nil {
			return nil, fmt.Errorf("decoding control: %w", err)
		}
		return parseControl(c)

	case packets.TypeCamera:
		var c packets.CameraInput
		if err := json.Unmarshal(env.Payload, &c); err != nil {
			return nil, fmt.Errorf("decoding camera: %w", err)
		}
		if c.Aspect != nil && !(*c.Aspect > 0) {
			return nil, fmt.Errorf("camera aspect must be positive, got %v", *c.Aspect)
		}
		return CameraEvent{Aspect: c.Aspect, Yaw: c.Yaw, Pitch: c.Pitch, Distance: c.Distance}, nil

	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
}

func parseControl(c packets.Control) (ControlEvent, error) {
	ev := ControlEvent{Field: c.Field}
	var err error
	switch c.Field {
	case packets.FieldAutoRotate, packets.FieldFlow:
		err = json.Unmarshal(c.Value, &ev.Bool)
	case packets.FieldRotateSpeed, packets.FieldExplode, packets.FieldCutaway:
		if err = json.Unmarshal(c.Value, &ev.Number); err == nil && !finite(ev.Number) {
			err = fmt.Errorf("not finite")
		}
	case packets.FieldActiveStage:
		var name string
		if err = json.Unmarshal(c.Value, &name); err == nil {
			ev.Stage, err = assembly.ParseStage(name)
		}
	default:
		return ControlEvent{}, fmt.Errorf("unknown control field %q", c.Field)
	}
	if err != nil {
		return ControlEvent{}, fmt.Errorf("control %s: %w", c.Field, err)
	}
	return ev, nil
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
