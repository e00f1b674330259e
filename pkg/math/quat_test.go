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
	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); got != v {
		t.Errorf("Identity.Rotate(%v) = %v", v, got)
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

func TestQuatFromYawTurnsForwardToRight(t *testing.T) {
	q := QuatFromYaw(float32(math.Pi / 2))
	got := q.Rotate(Forward)
	if !got.ApproxEqual(Right, 0.0001) {
		t.Errorf("Yaw(90deg).Rotate(Forward) = %v, want %v", got, Right)
	}
	if yaw := q.Yaw(); math.Abs(float64(yaw)-math.Pi/2) > 0.0001 {
		t.Errorf("Yaw() = %v, want pi/2", yaw)
	}
}

func TestQuatInverseRotate(t *testing.T) {
	q := QuatFromYaw(0.7)
	v := Vec3{0.3, -1, 2}
	got := q.InverseRotate(q.Rotate(v))
	if !got.ApproxEqual(v, 0.0001) {
		t.Errorf("InverseRotate(Rotate(v)) = %v, want %v", got, v)
	}
}

func TestQuatMulComposesYaw(t *testing.T) {
	a := QuatFromYaw(0.3)
	b := QuatFromYaw(0.5)
	got := a.Mul(b).Yaw()
	if math.Abs(float64(got)-0.8) > 0.0001 {
		t.Errorf("Yaw(a*b) = %v, want 0.8", got)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
