package character

import (
	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/pkg/math"
)

// CheckGround casts down from just above the feet. A hit grounds the character
// and enables root motion; a miss makes it airborne with an up normal. Root
// motion and the grounded flag always change together. Trigger volumes are not
// ground.
func (c *Character) CheckGround() (bool, math.Vec3) {
	origin := c.body.Position().Add(math.Up.Scale(groundProbeLift))
	hit, ok := c.world.Raycast(origin, math.Down, c.groundCheckDistance, true)
	if ok {
		c.grounded = true
		c.groundNormal = hit.Normal
		c.anim.SetApplyRootMotion(true)
	} else {
		c.grounded = false
		c.groundNormal = math.Up
		c.anim.SetApplyRootMotion(false)
	}
	if ce := c.log.Check(zap.DebugLevel, "ground probe"); ce != nil {
		ce.Write(
			zap.Bool("grounded", c.grounded),
			zap.Float32("distance", c.groundCheckDistance),
			zap.Float32("hit_distance", hit.Distance),
		)
	}
	return c.grounded, c.groundNormal
}

// HasHeadroomToStand sweeps a sphere of half the capsule radius up from the feet
// over the standing height. Trigger volumes never block standing.
func (c *Character) HasHeadroomToStand() bool {
	r := c.body.Capsule().Radius * half
	origin := c.body.Position().Add(math.Up.Scale(r))
	length := c.standingHeight - r
	return !c.world.SphereCast(origin, r, math.Up, length, true)
}
