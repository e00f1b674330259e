package animation

import (
	gomath "math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/thirdperson/internal/logger"
	"github.com/Faultbox/thirdperson/pkg/math"
)

// Settings tunes the in-memory driver.
type Settings struct {
	// RootMotionSpeed is the horizontal speed (units/s) the locomotion clips
	// bake in at Forward = 1.
	RootMotionSpeed float32 `yaml:"root_motion_speed"`
	// CrouchSpeedFactor scales root motion while the Crouch parameter is set.
	CrouchSpeedFactor float32 `yaml:"crouch_speed_factor"`
	// ClipLengths holds clip durations in seconds at speed 1.
	ClipLengths map[string]float32 `yaml:"clip_lengths"`
}

// DefaultSettings returns settings matching the stock locomotion set.
func DefaultSettings() Settings {
	return Settings{
		RootMotionSpeed:   4,
		CrouchSpeedFactor: 0.5,
		ClipLengths: map[string]float32{
			ClipGrounded: 1.0,
			ClipAirborne: 0.8,
			ClipDead:     2.0,
		},
	}
}

// Controller is an in-memory animation driver. Parameters are written by the
// character each tick; Update evaluates the state machine once per tick.
type Controller struct {
	handles [paramCount]int

	floats   []float32
	bools    []bool
	ints     []int
	triggers []bool

	settings        Settings
	applyRootMotion bool
	speed           float32

	clip          string
	clipTime      float32 // normalized, integer part counts loops
	deltaPosition math.Vec3
	fired         []Param

	log *zap.Logger
}

// NewController binds the layout and returns a driver resting in the grounded clip.
func NewController(layout Layout, settings Settings) (*Controller, error) {
	handles, slots, err := layout.bind()
	if err != nil {
		return nil, err
	}
	return &Controller{
		handles:         handles,
		floats:          make([]float32, slots),
		bools:           make([]bool, slots),
		ints:            make([]int, slots),
		triggers:        make([]bool, slots),
		settings:        settings,
		applyRootMotion: true,
		speed:           1,
		clip:            ClipGrounded,
		log:             logger.Named("animation"),
	}, nil
}

// SetFloat moves a float parameter toward value. With a positive dampTime the
// value approaches the target exponentially, reaching ~63% after dampTime seconds.
func (c *Controller) SetFloat(p Param, value, dampTime, dt float32) {
	h := c.handles[p]
	if dampTime <= 0 || dt <= 0 {
		c.floats[h] = value
		return
	}
	k := 1 - float32(gomath.Exp(float64(-dt/dampTime)))
	c.floats[h] += (value - c.floats[h]) * k
}

// SetBool sets a bool parameter.
func (c *Controller) SetBool(p Param, value bool) {
	c.bools[c.handles[p]] = value
}

// SetInteger sets an int parameter.
func (c *Controller) SetInteger(p Param, value int) {
	c.ints[c.handles[p]] = value
}

// SetTrigger arms a one-shot trigger, consumed by the next Update.
func (c *Controller) SetTrigger(p Param) {
	c.triggers[c.handles[p]] = true
}

// Float returns the current (damped) value of a float parameter.
func (c *Controller) Float(p Param) float32 { return c.floats[c.handles[p]] }

// Bool returns a bool parameter.
func (c *Controller) Bool(p Param) bool { return c.bools[c.handles[p]] }

// Int returns an int parameter.
func (c *Controller) Int(p Param) int { return c.ints[c.handles[p]] }

// Pending reports whether a trigger is armed and not yet consumed.
func (c *Controller) Pending(p Param) bool { return c.triggers[c.handles[p]] }

// Fired returns a copy of the triggers consumed by the most recent Update.
func (c *Controller) Fired() []Param { return slices.Clone(c.fired) }

// CurrentClip returns the active clip name.
func (c *Controller) CurrentClip() string { return c.clip }

// NormalizedTime returns playback progress of the active clip.
func (c *Controller) NormalizedTime() float32 { return c.clipTime }

// ApplyRootMotion reports whether root motion drives the body.
func (c *Controller) ApplyRootMotion() bool { return c.applyRootMotion }

// SetApplyRootMotion toggles root motion application.
func (c *Controller) SetApplyRootMotion(v bool) { c.applyRootMotion = v }

// Speed returns the playback speed multiplier.
func (c *Controller) Speed() float32 { return c.speed }

// SetSpeed sets the playback speed multiplier.
func (c *Controller) SetSpeed(s float32) { c.speed = s }

// DeltaPosition returns the world-space root displacement of the last Update.
func (c *Controller) DeltaPosition() math.Vec3 { return c.deltaPosition }

// Update evaluates one tick: picks the clip from the locomotion parameters,
// advances playback, extracts root motion in the facing given by root and
// consumes armed triggers.
func (c *Controller) Update(dt float32, root math.Quat) {
	next := ClipAirborne
	switch {
	case c.Bool(Dead):
		next = ClipDead
	case c.Bool(OnGround):
		next = ClipGrounded
	}
	if next != c.clip {
		c.log.Debug("clip transition", zap.String("from", c.clip), zap.String("to", next))
		c.clip = next
		c.clipTime = 0
	}

	length := c.settings.ClipLengths[c.clip]
	if length <= 0 {
		length = 1
	}
	c.clipTime += dt * c.speed / length

	c.deltaPosition = math.Vec3{}
	if c.clip == ClipGrounded {
		speed := c.settings.RootMotionSpeed * c.Float(Forward)
		if c.Bool(Crouch) {
			speed *= c.settings.CrouchSpeedFactor
		}
		local := math.Forward.Scale(speed * dt * c.speed)
		c.deltaPosition = root.Rotate(local)
	}

	c.fired = c.fired[:0]
	for _, p := range Params() {
		if p.Kind() != KindTrigger {
			continue
		}
		h := c.handles[p]
		if c.triggers[h] {
			c.triggers[h] = false
			c.fired = append(c.fired, p)
		}
	}
	if len(c.fired) > 0 {
		c.log.Debug("triggers fired", zap.String("triggers", FormatParams(c.fired)))
	}
}

// FormatParams joins parameter names with '|'.
func FormatParams(ps []Param) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, "|")
}
