package control

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/thirdperson/internal/character"
	"github.com/Faultbox/thirdperson/pkg/math"
)

func TestJumpLatchedUntilTaken(t *testing.T) {
	var l Latch

	l.Poll(Frame{Jump: true})
	l.Poll(Frame{})
	l.Poll(Frame{})

	in, _ := l.Take(nil)
	if !in.Jump {
		t.Error("jump pressed between ticks was lost")
	}

	in, _ = l.Take(nil)
	if in.Jump {
		t.Error("jump fired twice")
	}
}

func TestQuickAndAttackAtMostOneInFlight(t *testing.T) {
	var l Latch

	l.Poll(Frame{Quick: character.RollLeft, Attack: character.AttackLight})
	l.Poll(Frame{Quick: character.RollRight, Attack: character.AttackHeavy})

	in, act := l.Take(nil)
	if in.Quick != character.RollLeft {
		t.Errorf("Quick = %s, want roll_left", in.Quick)
	}
	if act.Attack != character.AttackLight {
		t.Errorf("Attack = %s, want light", act.Attack)
	}

	in, act = l.Take(nil)
	if in.Quick != character.QuickNone || act.Attack != character.AttackNone {
		t.Errorf("second Take = %s/%s, want none/none", in.Quick, act.Attack)
	}
}

func TestPending(t *testing.T) {
	var l Latch
	if l.Pending() {
		t.Fatal("fresh latch reports pending")
	}
	l.Poll(Frame{Attack: character.AttackHeavy})
	if !l.Pending() {
		t.Fatal("attack not pending after poll")
	}
	l.Take(nil)
	if l.Pending() {
		t.Error("pending after Take")
	}
}

func TestHeldStateFollowsLatestFrame(t *testing.T) {
	var l Latch

	l.Poll(Frame{Crouch: true, Vertical: 1})
	l.Poll(Frame{Crouch: false, Vertical: 0.5})

	in, _ := l.Take(nil)
	if in.Crouch {
		t.Error("crouch should follow the latest frame")
	}
	if !in.Move.ApproxEqual(math.Vec3{Z: 0.5}, 1e-6) {
		t.Errorf("Move = %+v, want (0,0,0.5)", in.Move)
	}

	// Held state survives Take.
	in, _ = l.Take(nil)
	if !in.Move.ApproxEqual(math.Vec3{Z: 0.5}, 1e-6) {
		t.Errorf("Move after second Take = %+v, want (0,0,0.5)", in.Move)
	}
}

func TestMoveVector(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		cam   *Camera
		want  math.Vec3
	}{
		{"world forward", Frame{Vertical: 1}, nil, math.Vec3{Z: 1}},
		{"world right", Frame{Horizontal: 1}, nil, math.Vec3{X: 1}},
		{"walk halves", Frame{Vertical: 1, Horizontal: 1, Walk: true}, nil, math.Vec3{X: 0.5, Z: 0.5}},
		{"camera facing +Z", Frame{Vertical: 1}, &Camera{}, math.Vec3{Z: 1}},
		{"camera pitch flattened", Frame{Vertical: 1}, &Camera{Pitch: 0.6}, math.Vec3{Z: 1}},
		{"camera turned right", Frame{Vertical: 1}, &Camera{Yaw: gomath.Pi / 2}, math.Vec3{X: 1}},
		{"camera turned right strafe", Frame{Horizontal: 1}, &Camera{Yaw: gomath.Pi / 2}, math.Vec3{Z: -1}},
		{"camera behind", Frame{Vertical: 1}, &Camera{Yaw: gomath.Pi}, math.Vec3{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Latch
			l.Poll(tt.frame)
			in, _ := l.Take(tt.cam)
			if !in.Move.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Move = %+v, want %+v", in.Move, tt.want)
			}
		})
	}
}

func TestCameraAxesOrthogonal(t *testing.T) {
	for _, yaw := range []float32{0, 0.3, 1.7, -2.2} {
		c := Camera{Yaw: yaw, Pitch: 0.4}
		f := c.Forward().WithY(0).Normalize()
		if d := f.Dot(c.Right()); d > 1e-5 || d < -1e-5 {
			t.Errorf("yaw %v: forward·right = %v", yaw, d)
		}
		if l := c.Forward().Length(); l < 0.9999 || l > 1.0001 {
			t.Errorf("yaw %v: |forward| = %v", yaw, l)
		}
	}
}
