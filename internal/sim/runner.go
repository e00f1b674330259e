// Package sim drives a character through a scenario with a fixed physics step.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/internal/character"
	"github.com/Faultbox/thirdperson/internal/config"
	"github.com/Faultbox/thirdperson/internal/control"
	"github.com/Faultbox/thirdperson/internal/logger"
	"github.com/Faultbox/thirdperson/internal/physics"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Runner owns one character, its world and its animation driver.
type Runner struct {
	cfg      *config.Config
	scenario *Scenario

	world *physics.World
	body  *physics.Body
	anim  *animation.Controller
	char  *character.Character
	latch control.Latch

	dummies []*Dummy
	trace   *TraceWriter

	tick      int
	airDashes int
	abilities int

	log *zap.Logger
}

// Summary is the outcome of a run.
type Summary struct {
	Ticks     int
	Position  math.Vec3
	Final     character.Snapshot
	Dummies   []DummyStatus
	AirDashes int
	Abilities int
}

// DummyStatus is a dummy's state at the end of a run.
type DummyStatus struct {
	Name   string
	Health float32
	Hits   int
}

// New validates sc, builds the world it describes and places the character at
// its spawn. A nil scenario runs the built-in arena.
func New(cfg *config.Config, sc *Scenario) (*Runner, error) {
	if sc == nil {
		sc = DefaultScenario()
	}
	if err := sc.compile(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	r := &Runner{
		cfg:      cfg,
		scenario: sc,
		world:    physics.NewWorld(cfg.Physics.Gravity),
		log:      logger.Named("sim"),
	}

	for _, c := range sc.Colliders {
		r.world.AddCollider(&physics.Collider{
			Name:    c.Name,
			Bounds:  physics.NewAABB(c.Min, c.Max),
			Trigger: c.Trigger,
		})
	}
	for _, d := range sc.Dummies {
		dummy := NewDummy(d.Name, d.Health, r.log)
		r.dummies = append(r.dummies, dummy)
		r.world.AddCollider(&physics.Collider{
			Name:   d.Name,
			Bounds: physics.NewAABB(d.Min, d.Max),
			Object: dummy,
		})
	}

	r.body = physics.NewBody(sc.Spawn, cfg.Body.Capsule, cfg.Body.Mass)
	r.body.SetRotation(math.QuatFromYaw(math.Radians(sc.Yaw)))
	r.world.AddBody(r.body)

	anim, err := animation.NewController(animation.DefaultLayout(), cfg.Animation)
	if err != nil {
		return nil, fmt.Errorf("creating animator: %w", err)
	}
	r.anim = anim

	opts := character.Options{
		OnAirDash: r.onAirDash,
		OnAbility: r.onAbility,
	}
	if cfg.Sim.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Sim.Seed, cfg.Sim.Seed))
	}
	r.char, err = character.New(cfg.Character, r.body, r.world, r.anim, opts)
	if err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return r, nil
}

// SetTrace attaches a trace writer. A nil writer disables tracing.
func (r *Runner) SetTrace(tw *TraceWriter) { r.trace = tw }

// Character returns the simulated character.
func (r *Runner) Character() *character.Character { return r.char }

// Body returns the character's rigid body.
func (r *Runner) Body() *physics.Body { return r.body }

// Animator returns the animation driver.
func (r *Runner) Animator() *animation.Controller { return r.anim }

// Dummies returns the scenario's training dummies.
func (r *Runner) Dummies() []*Dummy { return r.dummies }

// Tick returns the number of ticks run so far.
func (r *Runner) Tick() int { return r.tick }

// Reload applies new character tuning between ticks.
func (r *Runner) Reload(cfg *config.Config) error {
	if err := r.char.SetTuning(cfg.Character); err != nil {
		return err
	}
	r.log.Info("character tuning reloaded", zap.Int("tick", r.tick))
	return nil
}

// Step runs one fixed physics tick.
func (r *Runner) Step() error {
	dt := r.cfg.TickDuration()

	r.pollScenario()
	in, act := r.latch.Take(r.scenario.Camera)

	r.char.Move(in, dt)
	r.char.Attack(act.Attack)
	r.anim.Update(dt, r.body.Rotation())
	r.char.OnAnimatorMove(dt)
	r.world.Step(dt)

	if err := r.record(act, dt); err != nil {
		return err
	}
	r.tick++
	return nil
}

// pollScenario feeds this tick's scripted input into the latch and applies
// direct calls (hit, die, revive, ability).
func (r *Runner) pollScenario() {
	var frame control.Frame
	for _, a := range r.scenario.actions {
		if !a.covers(r.tick) {
			continue
		}
		if a.frame.Horizontal != 0 {
			frame.Horizontal = a.frame.Horizontal
		}
		if a.frame.Vertical != 0 {
			frame.Vertical = a.frame.Vertical
		}
		frame.Crouch = frame.Crouch || a.frame.Crouch
		frame.Walk = frame.Walk || a.frame.Walk
		frame.Jump = frame.Jump || a.frame.Jump
		if frame.Quick == character.QuickNone {
			frame.Quick = a.frame.Quick
		}
		if frame.Attack == character.AttackNone {
			frame.Attack = a.frame.Attack
		}

		if a.hit {
			r.char.GetHit()
		}
		if a.die {
			r.char.Die()
		}
		if a.revive {
			r.char.Revive()
		}
		if a.ability != character.AbilityNone {
			r.char.Ability(a.ability)
		}
	}
	r.latch.Poll(frame)
}

func (r *Runner) record(act character.ActionRequest, dt float32) error {
	if r.trace == nil {
		return nil
	}
	snap := r.char.Snapshot()
	pos := r.body.Position()
	vel := r.body.Velocity()
	return r.trace.Write(TraceRecord{
		Tick:          r.tick,
		Time:          float32(r.tick+1) * dt,
		X:             pos.X,
		Y:             pos.Y,
		Z:             pos.Z,
		VelX:          vel.X,
		VelY:          vel.Y,
		VelZ:          vel.Z,
		Yaw:           math.Degrees(r.body.Rotation().Yaw()),
		Grounded:      snap.Grounded,
		Crouching:     snap.Crouching,
		Dead:          snap.Dead,
		Forward:       snap.ForwardAmount,
		Turn:          snap.TurnAmount,
		CapsuleHeight: snap.CapsuleHeight,
		Clip:          r.anim.CurrentClip(),
		Triggers:      animation.FormatParams(r.anim.Fired()),
		Attack:        act.Attack.String(),
	})
}

// Run steps until ticks have run, the scenario ends or ctx is cancelled.
// Configs received on reload are applied between ticks.
func (r *Runner) Run(ctx context.Context, ticks int, reload <-chan *config.Config) (Summary, error) {
	if n := r.scenario.Ticks; n > 0 && (ticks <= 0 || n < ticks) {
		ticks = n
	}

	var pace <-chan time.Time
	if r.cfg.Sim.RealTime {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.Sim.TickRate))
		defer ticker.Stop()
		pace = ticker.C
	}

	r.log.Info("scenario started",
		zap.String("scenario", r.scenario.Name),
		zap.Int("ticks", ticks),
		zap.Int("tick_rate", r.cfg.Sim.TickRate),
	)
	for r.tick < ticks {
		select {
		case <-ctx.Done():
			return r.Summary(), ctx.Err()
		case cfg, ok := <-reload:
			if ok {
				if err := r.Reload(cfg); err != nil {
					r.log.Warn("ignoring reloaded tuning", zap.Error(err))
				}
			}
		default:
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				return r.Summary(), ctx.Err()
			case <-pace:
			}
		}

		if err := r.Step(); err != nil {
			return r.Summary(), fmt.Errorf("tick %d: %w", r.tick, err)
		}
	}

	s := r.Summary()
	r.log.Info("scenario finished",
		zap.String("scenario", r.scenario.Name),
		zap.Int("ticks", s.Ticks),
		zap.Float32("x", s.Position.X),
		zap.Float32("y", s.Position.Y),
		zap.Float32("z", s.Position.Z),
		zap.Bool("dead", s.Final.Dead),
	)
	return s, nil
}

// Summary reports the current state.
func (r *Runner) Summary() Summary {
	s := Summary{
		Ticks:     r.tick,
		Position:  r.body.Position(),
		Final:     r.char.Snapshot(),
		AirDashes: r.airDashes,
		Abilities: r.abilities,
	}
	for _, d := range r.dummies {
		s.Dummies = append(s.Dummies, DummyStatus{Name: d.Name, Health: d.Health, Hits: d.Hits})
	}
	return s
}

func (r *Runner) onAirDash(q character.QuickMovement) {
	r.airDashes++
	r.log.Debug("air dash requested", zap.Stringer("quick", q), zap.Int("tick", r.tick))
}

func (r *Runner) onAbility(a character.Ability) {
	r.abilities++
	r.log.Debug("ability used", zap.Int("ability", int(a)), zap.Int("tick", r.tick))
}
