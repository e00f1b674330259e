// Package animation implements the animation driver consumed by the character
// controller: a closed set of parameters bound to driver slots at construction,
// damped float blending, one-shot triggers, clip selection and root motion.
package animation

import "fmt"

// Param identifies an animation parameter. The set is closed; drivers bind each
// Param to a native slot once at construction.
type Param uint8

const (
	Forward Param = iota
	Turn
	Crouch
	OnGround
	Jump
	JumpLeg
	RollForward
	RollBackward
	RollLeft
	RollRight
	DashLeft
	DashRight
	LightAttack
	HeavyAttack
	HitVariant
	Hit
	Dead

	paramCount
)

// Kind is the value type of a parameter.
type Kind uint8

const (
	KindFloat Kind = iota
	KindBool
	KindInt
	KindTrigger
)

var paramNames = [paramCount]string{
	Forward:      "Forward",
	Turn:         "Turn",
	Crouch:       "Crouch",
	OnGround:     "OnGround",
	Jump:         "Jump",
	JumpLeg:      "JumpLeg",
	RollForward:  "RollForward",
	RollBackward: "RollBackward",
	RollLeft:     "RollLeft",
	RollRight:    "RollRight",
	DashLeft:     "DashLeft",
	DashRight:    "DashRight",
	LightAttack:  "LightAttack",
	HeavyAttack:  "HeavyAttack",
	HitVariant:   "HitVariant",
	Hit:          "Hit",
	Dead:         "Dead",
}

var paramKinds = [paramCount]Kind{
	Forward:      KindFloat,
	Turn:         KindFloat,
	Crouch:       KindBool,
	OnGround:     KindBool,
	Jump:         KindFloat,
	JumpLeg:      KindFloat,
	RollForward:  KindTrigger,
	RollBackward: KindTrigger,
	RollLeft:     KindTrigger,
	RollRight:    KindTrigger,
	DashLeft:     KindTrigger,
	DashRight:    KindTrigger,
	LightAttack:  KindTrigger,
	HeavyAttack:  KindTrigger,
	HitVariant:   KindInt,
	Hit:          KindTrigger,
	Dead:         KindBool,
}

// String returns the parameter name used by animation assets.
func (p Param) String() string {
	if p >= paramCount {
		return fmt.Sprintf("Param(%d)", uint8(p))
	}
	return paramNames[p]
}

// Kind returns the parameter's value type.
func (p Param) Kind() Kind {
	if p >= paramCount {
		return KindFloat
	}
	return paramKinds[p]
}

// Params returns every parameter in declaration order.
func Params() []Param {
	out := make([]Param, paramCount)
	for i := range out {
		out[i] = Param(i)
	}
	return out
}

// Clip names reported by CurrentClip.
const (
	ClipGrounded = "Grounded"
	ClipAirborne = "Airborne"
	ClipDead     = "Dead"
)
