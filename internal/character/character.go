package character

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/internal/logger"
	"github.com/Faultbox/thirdperson/internal/physics"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// World answers the geometric queries the controller needs.
type World interface {
	Raycast(origin, dir math.Vec3, maxDistance float32, ignoreTriggers bool) (physics.Hit, bool)
	SphereCast(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, ignoreTriggers bool) bool
	Gravity() math.Vec3
}

// Rigidbody is the physics handle of the character.
type Rigidbody interface {
	Position() math.Vec3
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	AddForce(f math.Vec3)
	Rotation() math.Quat
	SetRotation(q math.Quat)
	Capsule() physics.Capsule
	SetCapsule(c physics.Capsule)
}

// Animator is the animation driver the controller publishes to.
type Animator interface {
	SetFloat(p animation.Param, value, dampTime, dt float32)
	SetBool(p animation.Param, value bool)
	SetInteger(p animation.Param, value int)
	SetTrigger(p animation.Param)
	CurrentClip() string
	NormalizedTime() float32
	ApplyRootMotion() bool
	SetApplyRootMotion(v bool)
	Speed() float32
	SetSpeed(s float32)
	DeltaPosition() math.Vec3
}

// DamageReceiver is implemented by world objects that can be hurt by attacks.
type DamageReceiver interface {
	ReceiveDamage(amount float32)
}

// Construction errors.
var (
	ErrNoBody     = errors.New("character: rigid body is required")
	ErrNoWorld    = errors.New("character: physics world is required")
	ErrNoAnimator = errors.New("character: animator is required")
)

// Options carries optional hooks.
type Options struct {
	// OnAirDash is called for DashLeft/DashRight requests while airborne outside
	// the airborne clip. There is no default lateral impulse.
	OnAirDash func(q QuickMovement)
	// OnAbility is called by Ability for any slot other than AbilityNone.
	OnAbility func(a Ability)
	// Rand picks hit reaction variants. Nil uses the global source.
	Rand *rand.Rand
}

const (
	half = 0.5
	// groundProbeLift starts the ground ray inside the capsule, above the feet.
	groundProbeLift = 0.1
	// jumpGroundCheckDistance keeps the ground from being re-detected right after takeoff.
	jumpGroundCheckDistance = 0.1
	// ascendingGroundCheckDistance is used while moving up through the air.
	ascendingGroundCheckDistance = 0.01
)

// Character is one controlled humanoid. It owns its body state exclusively and
// is driven by a single fixed-step loop.
type Character struct {
	tuning Tuning
	body   Rigidbody
	world  World
	anim   Animator
	opts   Options
	log    *zap.Logger

	grounded                bool
	groundNormal            math.Vec3
	groundCheckDistance     float32
	origGroundCheckDistance float32
	standingHeight          float32
	standingCenter          math.Vec3
	crouching               bool
	turnAmount              float32
	forwardAmount           float32
	quickMoving             QuickMovement
	dead                    bool
}

// New validates the collaborators and captures the standing capsule from body.
func New(tuning Tuning, body Rigidbody, world World, anim Animator, opts Options) (*Character, error) {
	if body == nil {
		return nil, ErrNoBody
	}
	if world == nil {
		return nil, ErrNoWorld
	}
	if anim == nil {
		return nil, ErrNoAnimator
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	tuning = tuning.normalized()

	capsule := body.Capsule()
	c := &Character{
		tuning:                  tuning,
		body:                    body,
		world:                   world,
		anim:                    anim,
		opts:                    opts,
		log:                     logger.Named("character"),
		groundNormal:            math.Up,
		groundCheckDistance:     tuning.GroundCheckDistance,
		origGroundCheckDistance: tuning.GroundCheckDistance,
		standingHeight:          capsule.Height,
		standingCenter:          capsule.Center,
	}
	c.log.Debug("character created",
		zap.Float32("capsule_height", capsule.Height),
		zap.Float32("capsule_radius", capsule.Radius),
	)
	return c, nil
}

// SetTuning replaces the tuning between ticks. The ground check distance is
// reset to the new value.
func (c *Character) SetTuning(t Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}
	c.tuning = t.normalized()
	c.origGroundCheckDistance = c.tuning.GroundCheckDistance
	c.groundCheckDistance = c.tuning.GroundCheckDistance
	c.log.Info("tuning updated")
	return nil
}

// Tuning returns the active tuning.
func (c *Character) Tuning() Tuning { return c.tuning }

// Grounded reports the last ground probe result (or false right after a jump).
func (c *Character) Grounded() bool { return c.grounded }

// Crouching reports the crouch state.
func (c *Character) Crouching() bool { return c.crouching }

// Dead reports whether Die was called without a later Revive.
func (c *Character) Dead() bool { return c.dead }

// GroundNormal returns the last supporting surface normal, or up when airborne.
func (c *Character) GroundNormal() math.Vec3 { return c.groundNormal }

// GroundCheckDistance returns the current ground probe length.
func (c *Character) GroundCheckDistance() float32 { return c.groundCheckDistance }

// TurnAmount returns the last resolved turn amount in radians.
func (c *Character) TurnAmount() float32 { return c.turnAmount }

// ForwardAmount returns the last resolved forward amount.
func (c *Character) ForwardAmount() float32 { return c.forwardAmount }

// QuickMovement returns the latched quick movement. It is QuickNone between ticks.
func (c *Character) QuickMovement() QuickMovement { return c.quickMoving }

// Snapshot captures the controller state.
func (c *Character) Snapshot() Snapshot {
	return Snapshot{
		Grounded:            c.grounded,
		Crouching:           c.crouching,
		Dead:                c.dead,
		ForwardAmount:       c.forwardAmount,
		TurnAmount:          c.turnAmount,
		GroundNormal:        c.groundNormal,
		GroundCheckDistance: c.groundCheckDistance,
		CapsuleHeight:       c.body.Capsule().Height,
	}
}

func (c *Character) lockedOut() bool {
	return c.dead && c.tuning.LockoutWhenDead
}
