package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/view"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

func envelope(t *testing.T, msgType string, payload any) packets.Envelope {
	t.Helper()
	data, err := packets.Encode(msgType, payload)
	require.NoError(t, err)
	env, err := packets.Decode(data)
	require.NoError(t, err)
	return env
}

func control(t *testing.T, field string, value any) packets.Envelope {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return envelope(t, packets.TypeControl, packets.Control{Field: field, Value: raw})
}

func TestDecodePointer(t *testing.T) {
	ev, err := DecodeEvent(envelope(t, packets.TypePointer, packets.Pointer{X: 0.25, Y: -0.5}))
	require.NoError(t, err)
	assert.Equal(t, PointerEvent{NDC: math.Vec2{X: 0.25, Y: -0.5}}, ev)
}

func TestDecodeCamera(t *testing.T) {
	aspect := float32(2)
	ev, err := DecodeEvent(envelope(t, packets.TypeCamera, packets.CameraInput{Aspect: &aspect}))
	require.NoError(t, err)
	cam := ev.(CameraEvent)
	require.NotNil(t, cam.Aspect)
	assert.Equal(t, float32(2), *cam.Aspect)
	assert.Nil(t, cam.Yaw)

	zero := float32(0)
	_, err = DecodeEvent(envelope(t, packets.TypeCamera, packets.CameraInput{Aspect: &zero}))
	assert.Error(t, err)
}

func TestDecodeControl(t *testing.T) {
	tests := []struct {
		field string
		value any
		want  ControlEvent
	}{
		{packets.FieldAutoRotate, false, ControlEvent{Field: packets.FieldAutoRotate}},
		{packets.FieldFlow, true, ControlEvent{Field: packets.FieldFlow, Bool: true}},
		{packets.FieldExplode, 0.5, ControlEvent{Field: packets.FieldExplode, Number: 0.5}},
		{packets.FieldCutaway, 1, ControlEvent{Field: packets.FieldCutaway, Number: 1}},
		{packets.FieldRotateSpeed, 1.25, ControlEvent{Field: packets.FieldRotateSpeed, Number: 1.25}},
		{packets.FieldActiveStage, "S-II", ControlEvent{Field: packets.FieldActiveStage, Stage: assembly.StageII}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			ev, err := DecodeEvent(control(t, tt.field, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		env  packets.Envelope
	}{
		{"unknown type", packets.Envelope{Type: "teleport"}},
		{"unknown field", control(t, "thrust", 1)},
		{"bool as number", control(t, packets.FieldExplode, true)},
		{"number as bool", control(t, packets.FieldFlow, 1)},
		{"unknown stage", control(t, packets.FieldActiveStage, "S-V")},
		{"bad pointer", packets.Envelope{Type: packets.TypePointer, Payload: json.RawMessage(`{"x":"left"}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent(tt.env)
			assert.Error(t, err)
		})
	}
}

func TestControlApplyClamps(t *testing.T) {
	s := view.DefaultState()

	s = ControlEvent{Field: packets.FieldExplode, Number: 3}.Apply(s)
	assert.Equal(t, float32(1), s.Explode)

	s = ControlEvent{Field: packets.FieldCutaway, Number: -1}.Apply(s)
	assert.Equal(t, float32(0), s.Cutaway)

	s = ControlEvent{Field: packets.FieldRotateSpeed, Number: 9}.Apply(s)
	assert.Equal(t, float32(view.MaxRotateSpeed), s.RotateSpeed)

	s = ControlEvent{Field: packets.FieldFlow, Bool: true}.Apply(s)
	assert.True(t, s.FlowEnabled)

	s = ControlEvent{Field: packets.FieldActiveStage, Stage: assembly.StageIVB}.Apply(s)
	assert.Equal(t, assembly.StageIVB, s.ActiveStage)

	s = ControlEvent{Field: packets.FieldAutoRotate}.Apply(s)
	assert.False(t, s.AutoRotate)

	// Other fields are untouched by a control.
	assert.Equal(t, float32(1), s.Explode)
	assert.True(t, s.FlowEnabled)
}
