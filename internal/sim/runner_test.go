package sim

import (
	"bytes"
	"context"
	gomath "math"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/internal/config"
	"github.com/Faultbox/thirdperson/internal/control"
	"github.com/Faultbox/thirdperson/pkg/math"
)

func floor() ColliderSpec {
	return ColliderSpec{Name: "floor", Min: math.Vec3{X: -50, Y: -1, Z: -50}, Max: math.Vec3{X: 50, Y: 0, Z: 50}}
}

func at(n int) *int { return &n }

// newRunner builds a runner for sc with default config.
func newRunner(t *testing.T, sc *Scenario) *Runner {
	t.Helper()
	r, err := New(config.Default(), sc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func step(t *testing.T, r *Runner, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := r.Step(); err != nil {
			t.Fatalf("Step %d: %v", r.Tick(), err)
		}
	}
}

func TestRunnerRestsOnFloor(t *testing.T) {
	r := newRunner(t, &Scenario{Colliders: []ColliderSpec{floor()}})

	step(t, r, 50)

	if !r.Character().Grounded() {
		t.Error("character fell off a flat floor")
	}
	if y := r.Body().Position().Y; y > 0.01 || y < -0.01 {
		t.Errorf("resting height = %v, want ~0", y)
	}
	if clip := r.Animator().CurrentClip(); clip != animation.ClipGrounded {
		t.Errorf("clip = %s, want %s", clip, animation.ClipGrounded)
	}
}

func TestRunnerWalksForward(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{floor()},
		Steps:     []Step{{From: 0, To: 50, Vertical: 1}},
	})

	step(t, r, 60)

	pos := r.Body().Position()
	if pos.Z < 2 {
		t.Errorf("z = %v after walking for a second, want > 2", pos.Z)
	}
	if pos.X > 0.01 || pos.X < -0.01 {
		t.Errorf("x = %v, want ~0", pos.X)
	}
	if !r.Character().Grounded() {
		t.Error("expected grounded")
	}
}

func TestRunnerCameraRelativeTurn(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{floor()},
		Camera:    &control.Camera{Yaw: gomath.Pi / 2},
		Steps:     []Step{{From: 0, To: 100, Vertical: 1}},
	})

	step(t, r, 100)

	if yaw := r.Body().Rotation().Yaw(); gomath.Abs(float64(yaw)-gomath.Pi/2) > 0.05 {
		t.Errorf("yaw = %v, want ~pi/2", yaw)
	}
	if x := r.Body().Position().X; x < 0.5 {
		t.Errorf("x = %v, want movement toward +X", x)
	}
}

func TestRunnerJumpAndLand(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{floor()},
		Steps:     []Step{{At: at(0), Jump: true}},
	})

	var maxY float32
	sawAirborneClip := false
	for i := 0; i < 80; i++ {
		step(t, r, 1)
		if y := r.Body().Position().Y; y > maxY {
			maxY = y
		}
		if r.Animator().CurrentClip() == animation.ClipAirborne {
			sawAirborneClip = true
		}
	}

	if maxY < 0.5 {
		t.Errorf("apex = %v, want > 0.5", maxY)
	}
	if !sawAirborneClip {
		t.Error("never switched to the airborne clip")
	}
	if !r.Character().Grounded() {
		t.Error("did not land")
	}
	if clip := r.Animator().CurrentClip(); clip != animation.ClipGrounded {
		t.Errorf("clip after landing = %s, want %s", clip, animation.ClipGrounded)
	}
}

func TestRunnerAttackDamagesDummy(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{floor()},
		Dummies: []DummySpec{
			{Name: "target", Min: math.Vec3{X: -0.5, Y: -0.5, Z: 1}, Max: math.Vec3{X: 0.5, Y: 2, Z: 1.5}, Health: 25},
		},
		Steps: []Step{
			{At: at(0), Attack: "light"},
			{At: at(5), Attack: "heavy"},
		},
	})

	step(t, r, 10)

	s := r.Summary()
	if len(s.Dummies) != 1 {
		t.Fatalf("got %d dummies, want 1", len(s.Dummies))
	}
	if d := s.Dummies[0]; d.Hits != 2 || d.Health != 0 {
		t.Errorf("dummy = %+v, want 2 hits and 0 health", d)
	}
	if r.Dummies()[0].Alive() {
		t.Error("dummy should be destroyed")
	}
}

func TestRunnerCrouchUnderLedge(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{
			floor(),
			{Name: "ledge", Min: math.Vec3{X: -2, Y: 1.2, Z: 2}, Max: math.Vec3{X: 2, Y: 2, Z: 6}},
		},
		Steps: []Step{{From: 0, To: 80, Vertical: 1, Crouch: true}},
	})

	step(t, r, 100)

	if z := r.Body().Position().Z; z < 2.5 || z > 5.5 {
		t.Fatalf("z = %v, want under the ledge", z)
	}
	if !r.Character().Crouching() {
		t.Error("stood up under a ledge")
	}
	if h := r.Body().Capsule().Height; h != 0.8 {
		t.Errorf("capsule height = %v, want 0.8", h)
	}
}

func TestNewCompilesScriptedSteps(t *testing.T) {
	sc := &Scenario{
		Ticks:     50,
		Colliders: []ColliderSpec{floor()},
		Steps:     []Step{{From: 0, To: 50, Vertical: 1}},
	}
	r, err := New(config.Default(), sc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	step(t, r, 50)

	if z := r.Body().Position().Z; z < 0.5 {
		t.Errorf("z = %v, want the scripted walk to move the character forward", z)
	}
}

func TestNewRejectsInvalidScenario(t *testing.T) {
	tests := []struct {
		name string
		sc   *Scenario
	}{
		{"empty range", &Scenario{Steps: []Step{{From: 5, To: 5}}}},
		{"bad quick", &Scenario{Steps: []Step{{At: at(0), Quick: "cartwheel"}}}},
		{"dead dummy", &Scenario{Dummies: []DummySpec{{Name: "d"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(config.Default(), tt.sc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunnerHitDieRevive(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.Seed = 7
	sc := &Scenario{
		Colliders: []ColliderSpec{floor()},
		Steps: []Step{
			{At: at(0), Hit: true},
			{At: at(2), Die: true},
			{At: at(6), Revive: true},
		},
	}
	r, err := New(cfg, sc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	step(t, r, 1)
	fired := animation.FormatParams(r.Animator().Fired())
	if fired != "Hit" {
		t.Errorf("fired = %q, want Hit", fired)
	}
	if v := r.Animator().Int(animation.HitVariant); v < 1 || v > 5 {
		t.Errorf("hit variant = %d, want 1..5", v)
	}

	step(t, r, 2)
	if !r.Character().Dead() || r.Animator().CurrentClip() != animation.ClipDead {
		t.Errorf("dead = %v clip = %s, want dead", r.Character().Dead(), r.Animator().CurrentClip())
	}

	step(t, r, 4)
	if r.Character().Dead() || r.Animator().CurrentClip() != animation.ClipGrounded {
		t.Errorf("dead = %v clip = %s, want revived", r.Character().Dead(), r.Animator().CurrentClip())
	}
}

func TestRunnerHooks(t *testing.T) {
	r := newRunner(t, &Scenario{
		Spawn: math.Vec3{Y: 10},
		Steps: []Step{
			{At: at(0), Quick: "dash_left", Ability: 1},
			{At: at(3), Quick: "dash_right"},
		},
	})

	step(t, r, 5)

	s := r.Summary()
	if s.AirDashes != 1 {
		t.Errorf("air dashes = %d, want 1 (only before the airborne clip starts)", s.AirDashes)
	}
	if s.Abilities != 1 {
		t.Errorf("abilities = %d, want 1", s.Abilities)
	}
}

func TestRunRespectsScenarioLength(t *testing.T) {
	r := newRunner(t, &Scenario{Ticks: 10, Colliders: []ColliderSpec{floor()}})

	s, err := r.Run(context.Background(), 100, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Ticks != 10 {
		t.Errorf("ran %d ticks, want 10", s.Ticks)
	}

	r = newRunner(t, &Scenario{Ticks: 10, Colliders: []ColliderSpec{floor()}})
	s, _ = r.Run(context.Background(), 4, nil)
	if s.Ticks != 4 {
		t.Errorf("ran %d ticks, want 4", s.Ticks)
	}
}

func TestRunCancelled(t *testing.T) {
	r := newRunner(t, &Scenario{Colliders: []ColliderSpec{floor()}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := r.Run(ctx, 50, nil)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if s.Ticks != 0 {
		t.Errorf("ran %d ticks after cancel", s.Ticks)
	}
}

func TestRunAppliesReload(t *testing.T) {
	r := newRunner(t, &Scenario{Colliders: []ColliderSpec{floor()}})

	good := config.Default()
	good.Character.JumpSpeed = 9
	bad := config.Default()
	bad.Character.GroundCheckDistance = 0

	reload := make(chan *config.Config, 2)
	reload <- good
	reload <- bad
	if _, err := r.Run(context.Background(), 5, reload); err != nil {
		t.Fatalf("Run: %v", err)
	}

	tuning := r.Character().Tuning()
	if tuning.JumpSpeed != 9 {
		t.Errorf("jump speed = %v, want reloaded 9", tuning.JumpSpeed)
	}
	if tuning.GroundCheckDistance != 0.3 {
		t.Errorf("ground check distance = %v, invalid reload should be ignored", tuning.GroundCheckDistance)
	}
}

func TestRunWritesTrace(t *testing.T) {
	r := newRunner(t, &Scenario{
		Colliders: []ColliderSpec{floor()},
		Steps:     []Step{{At: at(1), Attack: "light"}},
	})
	var buf bytes.Buffer
	r.SetTrace(newTraceWriterTo(&buf))

	if _, err := r.Run(context.Background(), 5, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var rows []TraceRecord
	if err := gocsv.Unmarshal(&buf, &rows); err != nil {
		t.Fatalf("reading trace: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	for i, row := range rows {
		if row.Tick != i {
			t.Errorf("row %d has tick %d", i, row.Tick)
		}
		if !row.Grounded || row.Clip != animation.ClipGrounded {
			t.Errorf("row %d: grounded %v clip %s", i, row.Grounded, row.Clip)
		}
	}
	if rows[1].Attack != "light" || rows[1].Triggers != "LightAttack" {
		t.Errorf("row 1 attack %q triggers %q, want light/LightAttack", rows[1].Attack, rows[1].Triggers)
	}
	if rows[2].Attack != "none" || rows[2].Triggers != "" {
		t.Errorf("row 2 attack %q triggers %q, want none/empty", rows[2].Attack, rows[2].Triggers)
	}
}
