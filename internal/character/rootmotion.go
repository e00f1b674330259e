package character

// OnAnimatorMove replaces the animation's root motion with a body velocity. It is
// called by the driver loop after the animator evaluates. Only the horizontal
// part is taken from the animation; vertical velocity stays physics-driven.
func (c *Character) OnAnimatorMove(dt float32) {
	if !c.grounded || dt <= 0 {
		return
	}
	v := c.anim.DeltaPosition().Scale(c.tuning.MoveSpeedMultiplier / dt)
	c.body.SetVelocity(v.WithY(c.body.Velocity().Y))
}
