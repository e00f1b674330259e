// Package control turns variable-rate input frames into per-tick character intents.
package control

import (
	"github.com/Faultbox/thirdperson/internal/character"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Frame is one poll of the input devices.
type Frame struct {
	Horizontal float32 // strafe axis, -1..1
	Vertical   float32 // forward axis, -1..1
	Crouch     bool    // held
	Walk       bool    // held; halves the move vector
	Jump       bool    // pressed this frame
	Quick      character.QuickMovement
	Attack     character.AttackType
}

// Latch holds one-shot requests between input polls and the next physics tick.
// Jump stays latched until consumed. Quick movement and attack are accepted only
// while none is pending; later presses are dropped, not queued.
type Latch struct {
	horizontal float32
	vertical   float32
	crouch     bool
	walk       bool

	jump   bool
	quick  character.QuickMovement
	attack character.AttackType
}

// Poll records a frame. It may be called any number of times between ticks.
func (l *Latch) Poll(f Frame) {
	l.horizontal = f.Horizontal
	l.vertical = f.Vertical
	l.crouch = f.Crouch
	l.walk = f.Walk

	if !l.jump {
		l.jump = f.Jump
	}
	if l.quick == character.QuickNone {
		l.quick = f.Quick
	}
	if l.attack == character.AttackNone {
		l.attack = f.Attack
	}
}

// Pending reports whether any one-shot request is waiting for a tick.
func (l *Latch) Pending() bool {
	return l.jump || l.quick != character.QuickNone || l.attack != character.AttackNone
}

// Take builds this tick's intents and clears the one-shot requests. Movement is
// relative to cam, or to the world axes when cam is nil.
func (l *Latch) Take(cam *Camera) (character.MotionIntent, character.ActionRequest) {
	in := character.MotionIntent{
		Move:   l.moveVector(cam),
		Crouch: l.crouch,
		Jump:   l.jump,
		Quick:  l.quick,
	}
	act := character.ActionRequest{Attack: l.attack}

	l.jump = false
	l.quick = character.QuickNone
	l.attack = character.AttackNone
	return in, act
}

func (l *Latch) moveVector(cam *Camera) math.Vec3 {
	var move math.Vec3
	if cam != nil {
		forward := cam.Forward().WithY(0).Normalize()
		move = forward.Scale(l.vertical).Add(cam.Right().Scale(l.horizontal))
	} else {
		move = math.Forward.Scale(l.vertical).Add(math.Right.Scale(l.horizontal))
	}
	if l.walk {
		move = move.Scale(0.5)
	}
	return move
}
