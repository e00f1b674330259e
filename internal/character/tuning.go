package character

import (
	"errors"

	"github.com/Faultbox/thirdperson/pkg/math"
)

// Tuning holds the designer-facing controller parameters.
type Tuning struct {
	MovingTurnSpeed     float32 `yaml:"moving_turn_speed"`     // degrees/s at full forward
	StationaryTurnSpeed float32 `yaml:"stationary_turn_speed"` // degrees/s when standing still
	JumpSpeed           float32 `yaml:"jump_speed"`
	GravityMultiplier   float32 `yaml:"gravity_multiplier"` // clamped to [1, 4]
	RunCycleLegOffset   float32 `yaml:"run_cycle_leg_offset"`
	MoveSpeedMultiplier float32 `yaml:"move_speed_multiplier"`
	AnimSpeedMultiplier float32 `yaml:"anim_speed_multiplier"`
	GroundCheckDistance float32 `yaml:"ground_check_distance"`
	HitRange            float32 `yaml:"hit_range"`
	LightAttackDamage   float32 `yaml:"light_attack_damage"`
	HeavyAttackDamage   float32 `yaml:"heavy_attack_damage"`
	DampTime            float32 `yaml:"damp_time"`
	// LockoutWhenDead stops Move and Attack from acting on input while dead.
	LockoutWhenDead bool `yaml:"lockout_when_dead"`
}

// DefaultTuning returns the stock humanoid tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MovingTurnSpeed:     360,
		StationaryTurnSpeed: 180,
		JumpSpeed:           6,
		GravityMultiplier:   2,
		RunCycleLegOffset:   0.2,
		MoveSpeedMultiplier: 1,
		AnimSpeedMultiplier: 1,
		GroundCheckDistance: 0.3,
		HitRange:            2,
		LightAttackDamage:   10,
		HeavyAttackDamage:   30,
		DampTime:            0.1,
	}
}

// Validate reports tuning values the controller cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.GroundCheckDistance <= 0 {
		errs = append(errs, errors.New("ground_check_distance must be positive"))
	}
	if t.HitRange < 0 {
		errs = append(errs, errors.New("hit_range must not be negative"))
	}
	if t.DampTime < 0 {
		errs = append(errs, errors.New("damp_time must not be negative"))
	}
	if t.LightAttackDamage < 0 || t.HeavyAttackDamage < 0 {
		errs = append(errs, errors.New("attack damage must not be negative"))
	}
	return errors.Join(errs...)
}

func (t Tuning) normalized() Tuning {
	t.GravityMultiplier = math.Clamp(t.GravityMultiplier, 1, 4)
	return t
}
