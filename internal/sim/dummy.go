package sim

import (
	"go.uber.org/zap"
)

// Dummy is a training target. It implements character.DamageReceiver.
type Dummy struct {
	Name      string
	Health    float32
	MaxHealth float32
	Hits      int

	log *zap.Logger
}

// NewDummy returns a dummy at full health.
func NewDummy(name string, health float32, log *zap.Logger) *Dummy {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dummy{Name: name, Health: health, MaxHealth: health, log: log}
}

// ReceiveDamage subtracts amount from health, stopping at zero.
func (d *Dummy) ReceiveDamage(amount float32) {
	d.Hits++
	wasAlive := d.Alive()
	d.Health -= amount
	if d.Health < 0 {
		d.Health = 0
	}
	d.log.Debug("dummy hit",
		zap.String("dummy", d.Name),
		zap.Float32("damage", amount),
		zap.Float32("health", d.Health),
	)
	if wasAlive && !d.Alive() {
		d.log.Info("dummy destroyed", zap.String("dummy", d.Name), zap.Int("hits", d.Hits))
	}
}

// Alive reports whether the dummy has health left.
func (d *Dummy) Alive() bool { return d.Health > 0 }
