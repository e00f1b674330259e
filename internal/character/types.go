// Package character implements the third-person character controller: it turns
// per-tick motion intent and action requests into rigid body velocity, capsule
// sizing and animation parameters.
package character

import (
	"fmt"
	"strings"

	"github.com/Faultbox/thirdperson/pkg/math"
)

// QuickMovement is a one-shot locomotion burst.
type QuickMovement uint8

const (
	QuickNone QuickMovement = iota
	RollForward
	RollBackward
	RollLeft
	RollRight
	DashLeft
	DashRight
)

var quickNames = []string{"none", "roll_forward", "roll_backward", "roll_left", "roll_right", "dash_left", "dash_right"}

func (q QuickMovement) String() string {
	if int(q) < len(quickNames) {
		return quickNames[q]
	}
	return fmt.Sprintf("QuickMovement(%d)", uint8(q))
}

// IsDash reports whether q is a lateral dash.
func (q QuickMovement) IsDash() bool {
	return q == DashLeft || q == DashRight
}

// ParseQuickMovement parses the snake_case name produced by String.
func ParseQuickMovement(s string) (QuickMovement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return QuickNone, nil
	}
	for i, name := range quickNames {
		if name == s {
			return QuickMovement(i), nil
		}
	}
	return QuickNone, fmt.Errorf("unknown quick movement %q", s)
}

// AttackType selects the melee attack.
type AttackType uint8

const (
	AttackNone AttackType = iota
	AttackLight
	AttackHeavy
)

func (a AttackType) String() string {
	switch a {
	case AttackNone:
		return "none"
	case AttackLight:
		return "light"
	case AttackHeavy:
		return "heavy"
	}
	return fmt.Sprintf("AttackType(%d)", uint8(a))
}

// ParseAttackType parses "none", "light" or "heavy".
func ParseAttackType(s string) (AttackType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AttackNone, nil
	case "light":
		return AttackLight, nil
	case "heavy":
		return AttackHeavy, nil
	}
	return AttackNone, fmt.Errorf("unknown attack type %q", s)
}

// Ability identifies an ability slot. Abilities have no built-in effect.
type Ability uint8

const (
	AbilityNone Ability = iota
	Ability1
	Ability2
	Ability3
	Ability4
)

// MotionIntent is the per-tick locomotion input. It is built fresh every tick.
type MotionIntent struct {
	// Move is the desired world-space direction; magnitudes above 1 are clamped.
	Move   math.Vec3
	Crouch bool
	Jump   bool
	Quick  QuickMovement
}

// ActionRequest is the per-tick attack input.
type ActionRequest struct {
	Attack AttackType
}

// Snapshot is a read-only view of the controller state after a tick.
type Snapshot struct {
	Grounded            bool
	Crouching           bool
	Dead                bool
	ForwardAmount       float32
	TurnAmount          float32
	GroundNormal        math.Vec3
	GroundCheckDistance float32
	CapsuleHeight       float32
}
