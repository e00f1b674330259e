package character

import (
	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/pkg/math"
)

var quickMovementTriggers = map[QuickMovement]animation.Param{
	RollForward:  animation.RollForward,
	RollBackward: animation.RollBackward,
	RollLeft:     animation.RollLeft,
	RollRight:    animation.RollRight,
	DashLeft:     animation.DashLeft,
	DashRight:    animation.DashRight,
}

// publish writes this tick's locomotion state to the animator.
func (c *Character) publish(move math.Vec3, dt float32) {
	a := c.anim
	a.SetFloat(animation.Forward, c.forwardAmount, c.tuning.DampTime, dt)
	a.SetFloat(animation.Turn, c.turnAmount, c.tuning.DampTime, dt)
	a.SetBool(animation.Crouch, c.crouching)
	a.SetBool(animation.OnGround, c.grounded)
	if !c.grounded {
		a.SetFloat(animation.Jump, c.body.Velocity().Y, 0, dt)
	}

	if p, ok := quickMovementTriggers[c.quickMoving]; ok {
		a.SetTrigger(p)
	}

	// One leg passes the other at normalized times 0.0 and 0.5 of the run
	// cycle; the trailing leg stays behind in the jump pose.
	if c.grounded {
		a.SetFloat(animation.JumpLeg, c.jumpLeg(a.NormalizedTime()), 0, dt)
	}

	// Root motion scaling only makes sense on the ground.
	if c.grounded && move.Length() > 0 {
		a.SetSpeed(c.tuning.AnimSpeedMultiplier)
	} else {
		a.SetSpeed(1)
	}
}

func (c *Character) jumpLeg(normalizedTime float32) float32 {
	runCycle := math.Repeat(normalizedTime+c.tuning.RunCycleLegOffset, 1)
	if runCycle < half {
		return c.forwardAmount
	}
	return -c.forwardAmount
}
