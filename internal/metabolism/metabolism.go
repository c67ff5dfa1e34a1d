// Package metabolism tracks a creature's energy and health bookkeeping
// (spec.md §4.3), grounded on
// _examples/original_source/src/creature/metabolism.rs, generalized from
// an energy-only model to the energy+health pair spec.md requires.
package metabolism

// MaxHealth is the fixed health ceiling (spec.md §3).
const MaxHealth = 100.0

// Metabolism holds a creature's energy and health state. Invariants:
// 0 <= Energy <= MaxEnergy, 0 <= Health <= MaxHealth.
type Metabolism struct {
	Energy    float64
	MaxEnergy float64
	Health    float64
}

// New creates a Metabolism at the given initial energy (clamped to
// maxEnergy) and full health.
func New(initialEnergy, maxEnergy float64) Metabolism {
	energy := initialEnergy
	if energy > maxEnergy {
		energy = maxEnergy
	}
	return Metabolism{
		Energy:    energy,
		MaxEnergy: maxEnergy,
		Health:    MaxHealth,
	}
}

// IsAlive reports whether health is strictly positive. Energy may be zero
// while alive; starvation damage is applied by the tick engine on the
// following tick.
func (m Metabolism) IsAlive() bool {
	return m.Health > 0
}

// ConsumeEnergy subtracts amount if affordable and returns true; otherwise
// it zeroes energy and returns false.
func (m *Metabolism) ConsumeEnergy(amount float64) bool {
	if m.Energy >= amount {
		m.Energy -= amount
		return true
	}
	m.Energy = 0
	return false
}

// GainEnergy adds amount, clamped to MaxEnergy.
func (m *Metabolism) GainEnergy(amount float64) {
	m.Energy += amount
	if m.Energy > m.MaxEnergy {
		m.Energy = m.MaxEnergy
	}
}

// CanAfford reports whether energy covers cost.
func (m Metabolism) CanAfford(cost float64) bool {
	return m.Energy >= cost
}

// EnergyRatio returns Energy/MaxEnergy, or 0 if MaxEnergy is 0.
func (m Metabolism) EnergyRatio() float64 {
	if m.MaxEnergy <= 0 {
		return 0
	}
	return m.Energy / m.MaxEnergy
}

// HealthRatio returns Health/MaxHealth.
func (m Metabolism) HealthRatio() float64 {
	return m.Health / MaxHealth
}

// TakeDamage subtracts amount from health, clamped to [0, MaxHealth].
func (m *Metabolism) TakeDamage(amount float64) {
	m.Health -= amount
	if m.Health < 0 {
		m.Health = 0
	}
	if m.Health > MaxHealth {
		m.Health = MaxHealth
	}
}

// Heal adds amount to health, clamped to [0, MaxHealth].
func (m *Metabolism) Heal(amount float64) {
	m.Health += amount
	if m.Health > MaxHealth {
		m.Health = MaxHealth
	}
	if m.Health < 0 {
		m.Health = 0
	}
}

// PassiveHeal heals amt if health is below max and energy covers cost,
// consuming the energy cost in the same call. Returns whether healing
// occurred.
func (m *Metabolism) PassiveHeal(amt, cost float64) bool {
	if m.Health < MaxHealth && m.Energy >= cost {
		m.Heal(amt)
		m.ConsumeEnergy(cost)
		return true
	}
	return false
}
