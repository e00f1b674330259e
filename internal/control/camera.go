package control

import (
	gomath "math"

	"github.com/Faultbox/thirdperson/pkg/math"
)

// Camera is an orbit camera reduced to what camera-relative movement needs.
// Yaw 0 looks down +Z; positive pitch looks down toward the target.
type Camera struct {
	Yaw   float32 `yaml:"yaw"`   // radians
	Pitch float32 `yaml:"pitch"` // radians
}

// Forward returns the unit view direction in world space.
func (c *Camera) Forward() math.Vec3 {
	sy, cy := gomath.Sincos(float64(c.Yaw))
	sp, cp := gomath.Sincos(float64(c.Pitch))
	return math.Vec3{
		X: float32(cp * sy),
		Y: float32(-sp),
		Z: float32(cp * cy),
	}
}

// Right returns the camera's horizontal right axis.
func (c *Camera) Right() math.Vec3 {
	sy, cy := gomath.Sincos(float64(c.Yaw))
	return math.Vec3{X: float32(cy), Z: float32(-sy)}
}
