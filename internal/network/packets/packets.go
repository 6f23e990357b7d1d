// Package packets defines the bridge wire messages. Every message travels
// as a JSON text frame wrapped in an Envelope.
package packets

import (
	"encoding/json"
	"fmt"
)

// Message types, server -> client.
const (
	TypeScene = "scene" // sent once on connect
	TypeFrame = "frame" // sent every tick
	TypeInfo  = "info"  // sent when a pick resolves
)

// Message types, client -> server.
const (
	TypePointer = "pointer"
	TypeControl = "control"
	TypeCamera  = "camera" // echoed back to every client as Camera
)

// Control fields.
const (
	FieldAutoRotate  = "autoRotate"
	FieldRotateSpeed = "rotateSpeed"
	FieldExplode     = "explode"
	FieldCutaway     = "cutaway"
	FieldFlow        = "flow"
	FieldActiveStage = "activeStage"
)

// Envelope wraps every message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode wraps payload in an envelope of the given type.
func Encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", msgType, err)
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// Decode unwraps an envelope. The payload stays raw for the caller to
// decode by type.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("envelope without type")
	}
	return env, nil
}

// Scene describes everything static: one entry per part, in part index
// order, plus the flow paths and the initial camera.
type Scene struct {
	Parts       []Part      `json:"parts"`
	Flows       []Flow      `json:"flows"`
	Camera      Camera      `json:"camera"`
	Environment Environment `json:"environment"`
}

// Environment is the non-pickable surroundings: lights, fog, the star
// backdrop and the ground grid.
type Environment struct {
	Background string  `json:"background"`
	Exposure   float32 `json:"exposure"`
	Ambient    Light   `json:"ambient"`
	Key        Light   `json:"key"`
	Fog        Fog     `json:"fog"`
	Stars      Points  `json:"stars"`
	Grid       Lines   `json:"grid"`
}

// Light is an ambient light, or a directional light when Position is set.
type Light struct {
	Color     string      `json:"color"`
	Intensity float32     `json:"intensity"`
	Position  *[3]float32 `json:"position,omitempty"`
}

// Fog is linear distance fog.
type Fog struct {
	Color string  `json:"color"`
	Near  float32 `json:"near"`
	Far   float32 `json:"far"`
}

// Points is a point cloud with packed xyz positions.
type Points struct {
	Color     string    `json:"color"`
	Size      float32   `json:"size"`
	Opacity   float32   `json:"opacity"`
	Positions []float32 `json:"positions"`
}

// Lines is a line list with per-vertex colors, both packed as triples.
type Lines struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Opacity   float32   `json:"opacity"`
}

// Part is one drawable. Matrix is the rest transform relative to the
// vehicle root, column-major.
type Part struct {
	Index     int         `json:"index"`
	ID        string      `json:"id"`
	Kind      string      `json:"kind"`
	Shell     bool        `json:"shell"`
	Matrix    [16]float32 `json:"matrix"`
	Positions []float32   `json:"positions"`
	Normals   []float32   `json:"normals"`
	Indices   []uint32    `json:"indices"`
	Material  Material    `json:"material"`
}

// Material is the static shading policy of a part.
type Material struct {
	Color           string  `json:"color"`
	Roughness       float32 `json:"roughness"`
	Metalness       float32 `json:"metalness"`
	EnvMapIntensity float32 `json:"envMapIntensity"`
}

// Flow describes a flow path's point cloud.
type Flow struct {
	ID      string  `json:"id"`
	Stage   string  `json:"stage"`
	Color   string  `json:"color"`
	Size    float32 `json:"size"`
	Opacity float32 `json:"opacity"`
	Count   int     `json:"count"`
}

// Camera is the camera state, sent in the scene and as a camera message.
// CameraInput uses the same field names.
type Camera struct {
	FOV      float32    `json:"fov"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	Aspect   float32    `json:"aspect"`
	Distance float32    `json:"distance"`
	Pitch    float32    `json:"pitch"`
	Yaw      float32    `json:"yaw"`
	Target   [3]float32 `json:"target"`
}

// Frame is the per-tick state. Offsets[i] is how far part i sits above its
// rest position; the renderer composes rotY(Yaw) * translate(0, Offsets[i], 0)
// * Parts[i].Matrix.
type Frame struct {
	Seq     uint64    `json:"seq"`
	Time    float64   `json:"time"`
	Yaw     float32   `json:"yaw"`
	Offsets []float32 `json:"offsets"`

	ShellOpacity     float32 `json:"shellOpacity"`
	ShellTransparent bool    `json:"shellTransparent"`

	// Highlight is the selected pick group, empty for none.
	Highlight         string  `json:"highlight,omitempty"`
	Emissive          string  `json:"emissive,omitempty"`
	EmissiveIntensity float32 `json:"emissiveIntensity,omitempty"`
	// SelectionBox outlines the highlighted group in the root frame as a
	// line list of packed xyz pairs.
	SelectionBox []float32 `json:"selectionBox,omitempty"`

	Flows []FlowFrame `json:"flows"`
	State State       `json:"state"`
}

// FlowFrame carries the point buffer of a visible path as packed xyz.
type FlowFrame struct {
	ID     string    `json:"id"`
	Points []float32 `json:"points"`
}

// State mirrors the view state for control surfaces.
type State struct {
	AutoRotate  bool    `json:"autoRotate"`
	RotateSpeed float32 `json:"rotateSpeed"`
	Explode     float32 `json:"explode"`
	Cutaway     float32 `json:"cutaway"`
	Flow        bool    `json:"flow"`
	ActiveStage string  `json:"activeStage"`
}

// Info is the metadata of a picked part. An empty PartID clears the panel.
type Info struct {
	PartID      string   `json:"partId"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Known       bool     `json:"known"`
}

// Pointer is a click in normalized device coordinates.
type Pointer struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Control sets one view state field. Value is a bool, a number or a stage
// name depending on the field.
type Control struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// CameraInput adjusts the camera; absent fields are left unchanged.
type CameraInput struct {
	Aspect   *float32 `json:"aspect,omitempty"`
	Yaw      *float32 `json:"yaw,omitempty"`
	Pitch    *float32 `json:"pitch,omitempty"`
	Distance *float32 `json:"distance,omitempty"`
}
