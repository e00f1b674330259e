package character

import (
	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Move runs one fixed physics tick of locomotion: ground probe, turn/forward
// resolution, the grounded or airborne branch, capsule sizing, the headroom veto
// and the animation publish, in that order.
func (c *Character) Move(in MotionIntent, dt float32) {
	if c.lockedOut() {
		in = MotionIntent{}
	}

	move := in.Move.ClampLength(1)
	move = c.body.Rotation().InverseRotate(move)
	c.CheckGround()
	move = move.ProjectOnPlane(c.groundNormal)
	c.turnAmount = math.Atan2(move.X, move.Z)
	c.forwardAmount = move.Z
	c.quickMoving = in.Quick

	c.applyExtraTurnRotation(dt)

	if c.grounded {
		c.handleGroundedMovement(in.Crouch, in.Jump)
	} else {
		c.handleAirborneMovement(in.Quick)
	}

	c.resolveCapsule(in.Crouch, c.grounded)
	c.preventStandingInLowHeadroom()

	c.publish(move, dt)
	c.quickMoving = QuickNone
}

// applyExtraTurnRotation turns the body on top of the animation's own root
// rotation. The turn amount is in radians and the turn speeds in degrees/s; their
// product is applied as degrees.
func (c *Character) applyExtraTurnRotation(dt float32) {
	turnSpeed := math.Lerp(c.tuning.StationaryTurnSpeed, c.tuning.MovingTurnSpeed, c.forwardAmount)
	deg := c.turnAmount * turnSpeed * dt
	if deg == 0 {
		return
	}
	c.body.SetRotation(math.QuatFromYaw(math.Radians(deg)).Mul(c.body.Rotation()))
}

func (c *Character) handleGroundedMovement(crouch, jump bool) {
	if !jump {
		return
	}
	clip := c.anim.CurrentClip()
	if crouch || clip != animation.ClipGrounded {
		c.log.Debug("jump refused", zap.Bool("crouch", crouch), zap.String("clip", clip))
		return
	}
	v := c.body.Velocity()
	c.body.SetVelocity(v.WithY(c.tuning.JumpSpeed))
	c.grounded = false
	c.anim.SetApplyRootMotion(false)
	c.groundCheckDistance = jumpGroundCheckDistance
	c.log.Debug("jump", zap.Float32("speed", c.tuning.JumpSpeed))
}

func (c *Character) handleAirborneMovement(quick QuickMovement) {
	// Only the extra part of gravity is added; the world already applies 1x.
	g := c.world.Gravity()
	c.body.AddForce(g.Scale(c.tuning.GravityMultiplier).Sub(g))

	if c.body.Velocity().Y < 0 {
		c.groundCheckDistance = c.origGroundCheckDistance
	} else {
		c.groundCheckDistance = ascendingGroundCheckDistance
	}

	if quick.IsDash() && c.anim.CurrentClip() != animation.ClipAirborne && c.opts.OnAirDash != nil {
		c.opts.OnAirDash(quick)
	}
}
