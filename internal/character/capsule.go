package character

import "go.uber.org/zap"

// resolveCapsule applies the crouch policy and reports the resulting crouch state.
// Crouching needs ground contact; standing up needs headroom. A blocked stand-up
// keeps the character crouching even with crouch released.
func (c *Character) resolveCapsule(crouchHeld, grounded bool) bool {
	if grounded && crouchHeld {
		if c.crouching {
			return true
		}
		capsule := c.body.Capsule()
		capsule.Height = capsule.Height * half
		capsule.Center = capsule.Center.Scale(half)
		c.body.SetCapsule(capsule)
		c.crouching = true
		c.log.Debug("crouch entered", zap.Float32("height", capsule.Height))
		return true
	}

	if !c.HasHeadroomToStand() {
		if !c.crouching {
			c.log.Debug("low headroom, forcing crouch")
		}
		c.crouching = true
		return true
	}

	capsule := c.body.Capsule()
	if c.crouching {
		c.log.Debug("crouch exited", zap.Float32("height", c.standingHeight))
	}
	capsule.Height = c.standingHeight
	capsule.Center = c.standingCenter
	c.body.SetCapsule(capsule)
	c.crouching = false
	return false
}

// preventStandingInLowHeadroom is the post-sizing veto for crouch-only zones.
func (c *Character) preventStandingInLowHeadroom() {
	if c.crouching {
		return
	}
	if !c.HasHeadroomToStand() {
		c.crouching = true
	}
}
