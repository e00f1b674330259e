package character

import (
	"testing"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/internal/physics"
	"github.com/Faultbox/thirdperson/pkg/math"
)

const tick = float32(0.02)

// fakeAnimator records what the controller publishes and lets tests pick the clip.
type fakeAnimator struct {
	floats     map[animation.Param]float32
	damps      map[animation.Param]float32
	bools      map[animation.Param]bool
	ints       map[animation.Param]int
	triggers   []animation.Param
	clip       string
	normTime   float32
	rootMotion bool
	speed      float32
	delta      math.Vec3
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{
		floats: make(map[animation.Param]float32),
		damps:  make(map[animation.Param]float32),
		bools:  make(map[animation.Param]bool),
		ints:   make(map[animation.Param]int),
		clip:   animation.ClipGrounded,
		speed:  1,
	}
}

func (f *fakeAnimator) SetFloat(p animation.Param, v, damp, dt float32) {
	f.floats[p] = v
	f.damps[p] = damp
}
func (f *fakeAnimator) SetBool(p animation.Param, v bool) { f.bools[p] = v }
func (f *fakeAnimator) SetInteger(p animation.Param, v int) { f.ints[p] = v }
func (f *fakeAnimator) SetTrigger(p animation.Param) { f.triggers = append(f.triggers, p) }
func (f *fakeAnimator) CurrentClip() string { return f.clip }
func (f *fakeAnimator) NormalizedTime() float32 { return f.normTime }
func (f *fakeAnimator) ApplyRootMotion() bool { return f.rootMotion }
func (f *fakeAnimator) SetApplyRootMotion(v bool) { f.rootMotion = v }
func (f *fakeAnimator) Speed() float32 { return f.speed }
func (f *fakeAnimator) SetSpeed(s float32) { f.speed = s }
func (f *fakeAnimator) DeltaPosition() math.Vec3 { return f.delta }
func (f *fakeAnimator) resetTriggers() { f.triggers = nil }
func (f *fakeAnimator) fired(p animation.Param) bool {
	for _, t := range f.triggers {
		if t == p {
			return true
		}
	}
	return false
}

// stubWorld wraps a real world. It can force the headroom sweep to report a hit
// and replace the normal of downward hits to fake sloped ground.
type stubWorld struct {
	*physics.World
	blockHeadroom bool
	groundNormal  math.Vec3
}

func (s *stubWorld) Raycast(origin, dir math.Vec3, maxDistance float32, ignoreTriggers bool) (physics.Hit, bool) {
	hit, ok := s.World.Raycast(origin, dir, maxDistance, ignoreTriggers)
	if ok && dir == math.Down && s.groundNormal != (math.Vec3{}) {
		hit.Normal = s.groundNormal
	}
	return hit, ok
}

func (s *stubWorld) SphereCast(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, ignoreTriggers bool) bool {
	if s.blockHeadroom {
		return true
	}
	return s.World.SphereCast(origin, radius, dir, maxDistance, ignoreTriggers)
}

// dummy is a damage receiver.
type dummy struct {
	received []float32
}

func (d *dummy) ReceiveDamage(amount float32) { d.received = append(d.received, amount) }

func (d *dummy) total() float32 {
	var sum float32
	for _, a := range d.received {
		sum += a
	}
	return sum
}

type rig struct {
	world *stubWorld
	body  *physics.Body
	anim  *fakeAnimator
	char  *Character
}

func standingCapsule() physics.Capsule {
	return physics.Capsule{Height: 1.6, Radius: 0.3, Center: math.Vec3{Y: 0.8}}
}

func floorCollider() *physics.Collider {
	return &physics.Collider{
		Name:   "floor",
		Bounds: physics.NewAABB(math.Vec3{X: -20, Y: -1, Z: -20}, math.Vec3{X: 20, Y: 0, Z: 20}),
	}
}

// newRig builds a character standing on a floor at the origin, facing +Z.
func newRig(t *testing.T, tuning Tuning, opts Options, withFloor bool) *rig {
	t.Helper()
	w := &stubWorld{World: physics.NewWorld(math.Vec3{Y: -9.81})}
	if withFloor {
		w.AddCollider(floorCollider())
	}
	body := physics.NewBody(math.Vec3{}, standingCapsule(), 1)
	w.AddBody(body)
	anim := newFakeAnimator()
	c, err := New(tuning, body, w, anim, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &rig{world: w, body: body, anim: anim, char: c}
}
