// Package physics provides the collision world the character controller queries:
// static box colliders, ray and sphere casts, and simple rigid bodies.
package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/logger"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Collider is a static box in the world. Object is whatever the box belongs to;
// queries hand it back untouched.
type Collider struct {
	Name    string
	Bounds  AABB
	Trigger bool
	Object  any
}

// Hit describes the first surface a ray reached.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Collider *Collider
	Object   any
}

// World owns static colliders and dynamic bodies.
type World struct {
	gravity   math.Vec3
	colliders []*Collider
	bodies    []*Body
	log       *zap.Logger
}

// NewWorld creates an empty world with the given gravity.
func NewWorld(gravity math.Vec3) *World {
	return &World{
		gravity: gravity,
		log:     logger.Named("physics"),
	}
}

// Gravity returns the global gravity vector.
func (w *World) Gravity() math.Vec3 {
	return w.gravity
}

// AddCollider registers a static collider.
func (w *World) AddCollider(c *Collider) {
	if c == nil {
		return
	}
	w.colliders = append(w.colliders, c)
	w.log.Debug("collider added",
		zap.String("name", c.Name),
		zap.Bool("trigger", c.Trigger),
	)
}

// RemoveCollider unregisters a collider. It reports whether it was present.
func (w *World) RemoveCollider(c *Collider) bool {
	for i, other := range w.colliders {
		if other == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// AddBody registers a body to be integrated by Step.
func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	w.bodies = append(w.bodies, b)
}

// Raycast returns the nearest surface along dir within maxDistance, skipping
// trigger volumes when ignoreTriggers is set. Colliders containing the origin
// are not reported.
func (w *World) Raycast(origin, dir math.Vec3, maxDistance float32, ignoreTriggers bool) (Hit, bool) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) || maxDistance <= 0 {
		return Hit{}, false
	}

	var best Hit
	found := false
	for _, c := range w.colliders {
		if ignoreTriggers && c.Trigger {
			continue
		}
		t, n, ok := intersectRay(origin, dir, c.Bounds)
		if !ok || t > maxDistance {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		best = Hit{
			Point:    origin.Add(dir.Scale(t)),
			Normal:   n,
			Distance: t,
			Collider: c,
			Object:   c.Object,
		}
		found = true
	}
	return best, found
}

// SphereCast sweeps a sphere of the given radius along dir and reports whether it
// touches any collider within maxDistance. Boxes are inflated by the radius, which
// slightly overestimates reach around box corners. Colliders the sphere already
// overlaps at the start are not reported.
func (w *World) SphereCast(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, ignoreTriggers bool) bool {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) || maxDistance <= 0 {
		return false
	}
	for _, c := range w.colliders {
		if ignoreTriggers && c.Trigger {
			continue
		}
		t, _, ok := intersectRay(origin, dir, c.Bounds.Expand(radius))
		if ok && t <= maxDistance {
			return true
		}
	}
	return false
}
