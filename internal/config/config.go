// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/thirdperson/internal/animation"
	"github.com/Faultbox/thirdperson/internal/character"
	"github.com/Faultbox/thirdperson/internal/physics"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Config holds all simulator settings.
type Config struct {
	Character character.Tuning   `yaml:"character"`
	Body      BodyConfig         `yaml:"body"`
	Physics   PhysicsConfig      `yaml:"physics"`
	Animation animation.Settings `yaml:"animation"`
	Sim       SimConfig          `yaml:"sim"`
	Logging   LoggingConfig      `yaml:"logging"`
}

// BodyConfig holds the character's rigid body settings.
type BodyConfig struct {
	Capsule physics.Capsule `yaml:"capsule"`
	Mass    float32         `yaml:"mass"`
}

// PhysicsConfig holds world settings.
type PhysicsConfig struct {
	Gravity math.Vec3 `yaml:"gravity"`
}

// SimConfig holds driver loop settings.
type SimConfig struct {
	TickRate  int    `yaml:"tick_rate"` // physics ticks per second
	Ticks     int    `yaml:"ticks"`     // ticks to run; scenario end wins if shorter
	Scenario  string `yaml:"scenario"`  // scenario YAML path; empty runs the built-in one
	TracePath string `yaml:"trace"`     // CSV trace output; empty disables tracing
	Watch     bool   `yaml:"watch"`     // reload character tuning when the config file changes
	RealTime  bool   `yaml:"real_time"` // pace ticks with a wall clock
	Seed      uint64 `yaml:"seed"`      // hit reaction RNG seed; 0 picks a random one
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Character: character.DefaultTuning(),
		Body: BodyConfig{
			Capsule: physics.Capsule{
				Height: 1.6,
				Radius: 0.3,
				Center: math.Vec3{Y: 0.8},
			},
			Mass: 1,
		},
		Physics: PhysicsConfig{
			Gravity: math.Vec3{Y: -9.81},
		},
		Animation: animation.DefaultSettings(),
		Sim: SimConfig{
			TickRate: 50,
			Ticks:    500,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TickDuration returns the fixed physics step in seconds.
func (c *Config) TickDuration() float32 {
	return 1 / float32(c.Sim.TickRate)
}

// Validate reports settings the simulator cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Character.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("character: %w", err))
	}
	if c.Body.Capsule.Height <= 0 || c.Body.Capsule.Radius <= 0 {
		errs = append(errs, errors.New("body: capsule height and radius must be positive"))
	}
	if c.Body.Mass <= 0 {
		errs = append(errs, errors.New("body: mass must be positive"))
	}
	if c.Sim.TickRate <= 0 {
		errs = append(errs, errors.New("sim: tick_rate must be positive"))
	}
	if c.Sim.Ticks < 0 {
		errs = append(errs, errors.New("sim: ticks must not be negative"))
	}
	return errors.Join(errs...)
}
