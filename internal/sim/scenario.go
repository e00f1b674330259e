package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/thirdperson/internal/character"
	"github.com/Faultbox/thirdperson/internal/control"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Scenario describes a level and a scripted input timeline.
type Scenario struct {
	Name      string          `yaml:"name"`
	Ticks     int             `yaml:"ticks"` // natural length; 0 runs until the configured tick count
	Spawn     math.Vec3       `yaml:"spawn"`
	Yaw       float32         `yaml:"yaw"` // initial facing in degrees, positive turns right
	Camera    *control.Camera `yaml:"camera"`
	Colliders []ColliderSpec  `yaml:"colliders"`
	Dummies   []DummySpec     `yaml:"dummies"`
	Steps     []Step          `yaml:"steps"`

	actions []action
}

// ColliderSpec is a static box.
type ColliderSpec struct {
	Name    string    `yaml:"name"`
	Min     math.Vec3 `yaml:"min"`
	Max     math.Vec3 `yaml:"max"`
	Trigger bool      `yaml:"trigger"`
}

// DummySpec is a training dummy occupying a box.
type DummySpec struct {
	Name   string    `yaml:"name"`
	Min    math.Vec3 `yaml:"min"`
	Max    math.Vec3 `yaml:"max"`
	Health float32   `yaml:"health"`
}

// Step is scripted input over a tick range. "at: N" is shorthand for a single
// tick; otherwise the step covers [from, to).
type Step struct {
	At   *int `yaml:"at"`
	From int  `yaml:"from"`
	To   int  `yaml:"to"`

	Horizontal float32 `yaml:"horizontal"`
	Vertical   float32 `yaml:"vertical"`
	Crouch     bool    `yaml:"crouch"`
	Walk       bool    `yaml:"walk"`
	Jump       bool    `yaml:"jump"`
	Quick      string  `yaml:"quick"`
	Attack     string  `yaml:"attack"`

	Hit     bool `yaml:"hit"`
	Die     bool `yaml:"die"`
	Revive  bool `yaml:"revive"`
	Ability int  `yaml:"ability"`
}

// action is a validated step.
type action struct {
	from, to int
	frame    control.Frame
	hit      bool
	die      bool
	revive   bool
	ability  character.Ability
}

func (a action) covers(tick int) bool {
	return tick >= a.from && tick < a.to
}

// LoadScenario reads and validates a scenario file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := sc.compile(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// compile validates the scenario and resolves steps into actions.
func (s *Scenario) compile() error {
	var errs []error
	if s.Ticks < 0 {
		errs = append(errs, errors.New("ticks must not be negative"))
	}
	for i, d := range s.Dummies {
		if d.Health <= 0 {
			errs = append(errs, fmt.Errorf("dummy %d (%s): health must be positive", i, d.Name))
		}
	}

	s.actions = s.actions[:0]
	for i, st := range s.Steps {
		a, err := st.compile()
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
			continue
		}
		s.actions = append(s.actions, a)
	}
	return errors.Join(errs...)
}

func (st Step) compile() (action, error) {
	a := action{
		from: st.From,
		to:   st.To,
		frame: control.Frame{
			Horizontal: st.Horizontal,
			Vertical:   st.Vertical,
			Crouch:     st.Crouch,
			Walk:       st.Walk,
			Jump:       st.Jump,
		},
		hit:    st.Hit,
		die:    st.Die,
		revive: st.Revive,
	}
	if st.At != nil {
		a.from, a.to = *st.At, *st.At+1
	}
	if a.from < 0 || a.to <= a.from {
		return action{}, fmt.Errorf("empty tick range [%d, %d)", a.from, a.to)
	}

	var err error
	if a.frame.Quick, err = character.ParseQuickMovement(st.Quick); err != nil {
		return action{}, err
	}
	if a.frame.Attack, err = character.ParseAttackType(st.Attack); err != nil {
		return action{}, err
	}
	if st.Ability < 0 || st.Ability > int(character.Ability4) {
		return action{}, fmt.Errorf("unknown ability %d", st.Ability)
	}
	a.ability = character.Ability(st.Ability)
	if a.die && a.revive {
		return action{}, errors.New("die and revive in the same step")
	}
	return a, nil
}

// DefaultScenario is a small arena used when no scenario file is given: walk to
// a dummy and hit it, jump, crawl under a ledge, roll, take a hit, die and revive.
func DefaultScenario() *Scenario {
	at := func(n int) *int { return &n }
	sc := &Scenario{
		Name:  "arena",
		Ticks: 400,
		Colliders: []ColliderSpec{
			{Name: "floor", Min: math.Vec3{X: -50, Y: -1, Z: -50}, Max: math.Vec3{X: 50, Y: 0, Z: 50}},
			{Name: "ledge", Min: math.Vec3{X: 2, Y: 1.2, Z: -2}, Max: math.Vec3{X: 6, Y: 1.6, Z: 2}},
			{Name: "mist", Min: math.Vec3{X: -6, Y: 0, Z: -6}, Max: math.Vec3{X: -3, Y: 3, Z: -3}, Trigger: true},
		},
		Dummies: []DummySpec{
			{Name: "dummy", Min: math.Vec3{X: -0.5, Y: -0.5, Z: 5}, Max: math.Vec3{X: 0.5, Y: 2, Z: 5.5}, Health: 100},
		},
		Steps: []Step{
			{From: 0, To: 50, Vertical: 1},
			{At: at(80), Attack: "light"},
			{At: at(110), Attack: "heavy"},
			{At: at(140), Jump: true},
			{From: 200, To: 260, Horizontal: 1, Crouch: true},
			{At: at(280), Quick: "roll_backward"},
			{At: at(310), Hit: true},
			{At: at(330), Die: true},
			{At: at(370), Revive: true},
		},
	}
	if err := sc.compile(); err != nil {
		panic(err)
	}
	return sc
}
