package physics

import "github.com/Faultbox/thirdperson/pkg/math"

// Capsule is a vertical capsule collider in body-local space.
type Capsule struct {
	Height float32   `yaml:"height"`
	Radius float32   `yaml:"radius"`
	Center math.Vec3 `yaml:"center"`
}

// Bounds returns the capsule's world-space bounding box for a body at pos.
func (c Capsule) Bounds(pos math.Vec3) AABB {
	center := pos.Add(c.Center)
	half := math.Vec3{X: c.Radius, Y: c.Height / 2, Z: c.Radius}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Body is a rigid body with frozen rotation axes: only its owner rotates it,
// contacts never do.
type Body struct {
	position math.Vec3
	velocity math.Vec3
	rotation math.Quat
	force    math.Vec3
	mass     float32
	capsule  Capsule

	// UseGravity applies world gravity during Step.
	UseGravity bool
}

// NewBody creates a body at position with the given collider.
// Non-positive mass is treated as 1.
func NewBody(position math.Vec3, capsule Capsule, mass float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		position:   position,
		rotation:   math.QuatIdentity(),
		mass:       mass,
		capsule:    capsule,
		UseGravity: true,
	}
}

// Position returns the body origin (base of the capsule).
func (b *Body) Position() math.Vec3 { return b.position }

// SetPosition teleports the body.
func (b *Body) SetPosition(p math.Vec3) { b.position = p }

// Velocity returns the linear velocity.
func (b *Body) Velocity() math.Vec3 { return b.velocity }

// SetVelocity replaces the linear velocity.
func (b *Body) SetVelocity(v math.Vec3) { b.velocity = v }

// AddForce accumulates a force applied during the next Step.
func (b *Body) AddForce(f math.Vec3) { b.force = b.force.Add(f) }

// PendingForce returns the force accumulated since the last Step.
func (b *Body) PendingForce() math.Vec3 { return b.force }

// Rotation returns the body orientation.
func (b *Body) Rotation() math.Quat { return b.rotation }

// SetRotation sets the body orientation.
func (b *Body) SetRotation(q math.Quat) { b.rotation = q.Normalize() }

// Capsule returns the current collider dimensions.
func (b *Body) Capsule() Capsule { return b.capsule }

// SetCapsule resizes the collider.
func (b *Body) SetCapsule(c Capsule) { b.capsule = c }

// Mass returns the body mass.
func (b *Body) Mass() float32 { return b.mass }

// integrate advances velocity and position by semi-implicit Euler and clears
// the force accumulator.
func (b *Body) integrate(dt float32, gravity math.Vec3) {
	acc := b.force.Scale(1 / b.mass)
	if b.UseGravity {
		acc = acc.Add(gravity)
	}
	b.velocity = b.velocity.Add(acc.Scale(dt))
	b.position = b.position.Add(b.velocity.Scale(dt))
	b.force = math.Vec3{}
}
