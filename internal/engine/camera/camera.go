// Package camera provides the orbit camera the viewer looks through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/engine/model"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	// Target is the point the camera looks at and orbits around.
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle (radians)
	Yaw      float32 // Horizontal angle (radians), 0 looks down -Z

	// Projection
	FOV    float32 // Vertical field of view (degrees)
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera framing the full stack from the side.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		FOV:             55,
		Aspect:          16.0 / 9.0,
		Near:            0.1,
		Far:             2000,
		MinDistance:     10,
		MaxDistance:     600,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.LookFrom(math.Vec3{X: 60, Y: 45, Z: 90}, math.Vec3{Y: 45})
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := math.Vec3{
		X: c.Distance * cp * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// LookFrom places the camera at eye looking at target.
func (c *OrbitCamera) LookFrom(eye, target math.Vec3) {
	d := eye.Sub(target)
	c.Target = target
	c.Distance = d.Length()
	if c.Distance == 0 {
		return
	}
	c.Pitch = math32.Asin(math.Clamp(d.Y/c.Distance, -1, 1))
	c.Yaw = math32.Atan2(d.X, d.Z)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// SetAspect updates the aspect ratio. Non-positive values are ignored.
func (c *OrbitCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// SetOrbit sets yaw, pitch and distance, clamped to the constraints.
func (c *OrbitCamera) SetOrbit(yaw, pitch, distance float32) {
	c.Yaw = math.WrapAngle(yaw)
	c.Pitch = math.Clamp(pitch, c.MinPitch, c.MaxPitch)
	c.Distance = math.Clamp(distance, c.MinDistance, c.MaxDistance)
}

// HandleDrag updates rotation based on pointer drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds targets the center of b and backs off until its height fits
// the vertical field of view.
func (c *OrbitCamera) FitToBounds(b model.Bounds) {
	c.Target = b.Center()

	size := b.Size()
	half := size.Y / 2
	if r := math32.Max(size.X, size.Z) / 2; r > half {
		half = r
	}

	// 10% margin
	d := half / math32.Tan(math.DegToRad(c.FOV)/2) * 1.1
	c.Distance = math.Clamp(d, c.MinDistance, c.MaxDistance)
}
