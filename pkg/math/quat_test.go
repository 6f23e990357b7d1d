package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if q.ToMat4() != Identity() {
		t.Error("identity quaternion should produce identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatYawMatchesRotateY(t *testing.T) {
	for _, angle := range []float32{0, 0.35, Pi / 2, 2.5} {
		q := QuatYaw(angle).ToMat4()
		m := RotateY(angle)
		for i := range q {
			if abs(q[i]-m[i]) > 1e-5 {
				t.Fatalf("angle %v element %d: quat %f, matrix %f", angle, i, q[i], m[i])
			}
		}
	}
}

func TestQuatMulAddsAngles(t *testing.T) {
	a := QuatYaw(0.4)
	b := QuatYaw(0.6)
	got := a.Mul(b).Rotate(Vec3{1, 0, 0})
	want := QuatYaw(1.0).Rotate(Vec3{1, 0, 0})
	if got.Distance(want) > 1e-5 {
		t.Errorf("yaw(0.4)*yaw(0.6) rotated = %v, want %v", got, want)
	}
}
