package character

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// hitVariants is the exclusive upper bound of hit reaction variants; variants start at 1.
const hitVariants = 6

// Attack fires the attack animation and hit-scans straight ahead. The first
// surface within range takes the attack's damage if it is a DamageReceiver.
// Misses and non-receivers are silently ignored.
func (c *Character) Attack(kind AttackType) {
	if kind == AttackNone || c.lockedOut() {
		return
	}

	var damage float32
	switch kind {
	case AttackLight:
		damage = c.tuning.LightAttackDamage
		c.anim.SetTrigger(animation.LightAttack)
	case AttackHeavy:
		damage = c.tuning.HeavyAttackDamage
		c.anim.SetTrigger(animation.HeavyAttack)
	default:
		return
	}

	origin := c.body.Position()
	forward := c.body.Rotation().Rotate(math.Forward)
	hit, ok := c.world.Raycast(origin, forward, c.tuning.HitRange, true)
	if !ok {
		return
	}
	receiver, ok := hit.Object.(DamageReceiver)
	if !ok {
		return
	}
	receiver.ReceiveDamage(damage)

	name := ""
	if hit.Collider != nil {
		name = hit.Collider.Name
	}
	c.log.Debug("attack hit",
		zap.Stringer("attack", kind),
		zap.String("target", name),
		zap.Float32("damage", damage),
		zap.Float32("distance", hit.Distance),
	)
}

// Ability is an extension point; it only forwards to Options.OnAbility.
func (c *Character) Ability(a Ability) {
	if a == AbilityNone || c.opts.OnAbility == nil {
		return
	}
	c.opts.OnAbility(a)
}

// GetHit plays a random hit reaction. It has no effect on health.
func (c *Character) GetHit() {
	var v int
	if c.opts.Rand != nil {
		v = 1 + c.opts.Rand.IntN(hitVariants-1)
	} else {
		v = 1 + rand.IntN(hitVariants-1)
	}
	c.anim.SetInteger(animation.HitVariant, v)
	c.anim.SetTrigger(animation.Hit)
}

// Die sets the dead animation flag.
func (c *Character) Die() {
	c.dead = true
	c.anim.SetBool(animation.Dead, true)
	c.log.Info("character died", zap.Bool("lockout", c.tuning.LockoutWhenDead))
}

// Revive clears the dead animation flag.
func (c *Character) Revive() {
	c.dead = false
	c.anim.SetBool(animation.Dead, false)
	c.log.Info("character revived")
}
