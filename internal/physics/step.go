package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/pkg/math"
)

// maxResolvePasses bounds push-out iterations per body per step.
const maxResolvePasses = 4

// Step integrates every body by dt and resolves penetration against solid
// colliders. Triggers never block movement.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt, w.gravity)
		w.resolve(b)
	}
}

// resolve pushes the body out of overlapping boxes along the axis of least
// penetration and cancels the velocity component driving it inward.
func (w *World) resolve(b *Body) {
	for pass := 0; pass < maxResolvePasses; pass++ {
		moved := false
		for _, c := range w.colliders {
			if c.Trigger {
				continue
			}
			bounds := b.capsule.Bounds(b.position)
			if !bounds.Overlaps(c.Bounds) {
				continue
			}
			push := pushOut(bounds, c.Bounds)
			b.position = b.position.Add(push)
			switch {
			case push.X != 0 && push.X*b.velocity.X < 0:
				b.velocity.X = 0
			case push.Y != 0 && push.Y*b.velocity.Y < 0:
				b.velocity.Y = 0
			case push.Z != 0 && push.Z*b.velocity.Z < 0:
				b.velocity.Z = 0
			}
			moved = true
			w.log.Debug("contact resolved",
				zap.String("collider", c.Name),
				zap.Float32("push_x", push.X),
				zap.Float32("push_y", push.Y),
				zap.Float32("push_z", push.Z),
			)
		}
		if !moved {
			return
		}
	}
}

// pushOut returns the smallest translation moving a out of b.
func pushOut(a, b AABB) math.Vec3 {
	left := b.Min.X - a.Max.X  // negative: move -X
	right := b.Max.X - a.Min.X // positive: move +X
	down := b.Min.Y - a.Max.Y
	up := b.Max.Y - a.Min.Y
	back := b.Min.Z - a.Max.Z
	front := b.Max.Z - a.Min.Z

	best := math.Vec3{Y: up}
	bestLen := up
	candidates := []math.Vec3{
		{X: left}, {X: right},
		{Y: down},
		{Z: back}, {Z: front},
	}
	for _, c := range candidates {
		l := math.Abs(c.X + c.Y + c.Z)
		if l < bestLen {
			best = c
			bestLen = l
		}
	}
	return best
}
