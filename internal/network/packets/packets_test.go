package packets

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(TypePointer, Pointer{X: 0.25, Y: -0.5})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	env, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if env.Type != TypePointer {
		t.Errorf("Type = %q, want %q", env.Type, TypePointer)
	}

	var p Pointer
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.X != 0.25 || p.Y != -0.5 {
		t.Errorf("payload = %+v, want {0.25 -0.5}", p)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "hello"},
		{"no type", `{"payload":{}}`},
		{"wrong shape", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := Encode(TypeFrame, make(chan int)); err == nil {
		t.Error("Encode(chan) error = nil, want error")
	}
}

func TestWireNames(t *testing.T) {
	data, err := Encode(TypeInfo, Info{PartID: "les", Name: "Launch Escape System", Known: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"type":"info"`, `"partId":"les"`, `"known":true`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded info %s missing %s", data, key)
		}
	}
}

func TestCameraInputOmitsAbsent(t *testing.T) {
	yaw := float32(1)
	data, err := json.Marshal(CameraInput{Yaw: &yaw})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"yaw":1}` {
		t.Errorf("CameraInput = %s, want {\"yaw\":1}", data)
	}
}
