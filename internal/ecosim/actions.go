package ecosim

import (
	"math/rand"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/neural"
)

// applyAction dispatches the chosen action for creature id at (x,y), per
// spec.md §4.8, recording any attack this tick into attacksThisTick for
// next tick's sensors.
func (s *SimulationState) applyAction(
	rng *rand.Rand,
	cfg config.Config,
	id uint64,
	x, y int,
	action neural.Action,
	attacksThisTick map[uint64][]Direction,
) {
	switch {
	case action == neural.Stay:
		s.tryEat(id, cfg)
	case action.IsMovement():
		cost := cfg.Creature.EnergyCostMove
		if action.IsSprint() {
			cost = cfg.Creature.EnergyCostSprint
		}
		s.applyMove(cfg, id, x, y, action, cost, attacksThisTick)
	case action == neural.Attack:
		s.applyAttack(cfg, id, x, y, attacksThisTick)
	case action == neural.Reproduce:
		// No-op here; attempted at step 3h of the tick loop.
	case action == neural.ShareEnergy:
		s.applyShareEnergy(cfg, id, x, y)
	case action == neural.Rest:
		s.applyRest(cfg, id)
	}
}

func (s *SimulationState) tryEat(id uint64, cfg config.Config) {
	c, ok := s.Creatures[id]
	if !ok {
		return
	}
	cell := s.World.GetMut(c.X, c.Y)
	if cell == nil || !cell.IsFood() {
		return
	}
	amount, _ := cell.ConsumeFood()
	c.Metabolism.GainEnergy(float64(amount) * cfg.Creature.EnergyPerFood)
}

func (s *SimulationState) applyMove(
	cfg config.Config,
	id uint64,
	x, y int,
	action neural.Action,
	energyCost float64,
	attacksThisTick map[uint64][]Direction,
) {
	dx, dy := action.Delta()
	newX := clampInt(x+dx, 0, s.World.Width-1)
	newY := clampInt(y+dy, 0, s.World.Height-1)

	targetID, occupied := s.CreatureAt(newX, newY)

	attacker, ok := s.Creatures[id]
	if !ok {
		return
	}
	if !attacker.Metabolism.ConsumeEnergy(energyCost) {
		return
	}

	if occupied {
		target, ok := s.Creatures[targetID]
		if !ok {
			return
		}
		target.ApplyDamage(cfg.Combat.DamagePerAttack)

		attackDir := incomingDirectionFor(action)
		attacksThisTick[targetID] = append(attacksThisTick[targetID], attackDir)
		return
	}

	cell, inBounds := s.World.Get(newX, newY)
	if !inBounds || !(cell.IsEmpty() || cell.IsFood()) {
		return
	}

	s.Spatial.Move(x, y, newX, newY, id)
	attacker.X, attacker.Y = newX, newY
	s.tryEat(id, cfg)
}

// incomingDirectionFor maps the attacker's motion to the direction the
// victim was struck from: an Up move strikes the occupant from below.
func incomingDirectionFor(action neural.Action) Direction {
	switch action {
	case neural.MoveUp, neural.SprintUp:
		return Down
	case neural.MoveDown, neural.SprintDown:
		return Up
	case neural.MoveLeft, neural.SprintLeft:
		return Right
	case neural.MoveRight, neural.SprintRight:
		return Left
	default:
		return Up
	}
}

func (s *SimulationState) applyAttack(cfg config.Config, id uint64, x, y int, attacksThisTick map[uint64][]Direction) {
	type neighbor struct {
		dx, dy int
		dir    Direction
	}
	// Each entry's dir is the direction the *victim* is struck from, the
	// opposite of the offset: the up neighbor is struck from the south.
	neighbors := []neighbor{
		{0, -1, Down},
		{0, 1, Up},
		{-1, 0, Right},
		{1, 0, Left},
	}

	for _, n := range neighbors {
		targetID, occupied := s.CreatureAt(x+n.dx, y+n.dy)
		if !occupied {
			continue
		}
		target, ok := s.Creatures[targetID]
		if !ok {
			continue
		}
		target.ApplyDamage(cfg.Combat.DamagePerStrongAttack)
		attacksThisTick[targetID] = append(attacksThisTick[targetID], n.dir)
	}
}

func (s *SimulationState) applyShareEnergy(cfg config.Config, id uint64, x, y int) {
	self, ok := s.Creatures[id]
	if !ok || self.Energy() < cfg.Creature.EnergyShareAmount {
		return
	}

	offsets := []struct{ dx, dy int }{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, o := range offsets {
		targetID, occupied := s.CreatureAt(x+o.dx, y+o.dy)
		if !occupied || targetID == id {
			continue
		}
		target, ok := s.Creatures[targetID]
		if !ok {
			continue
		}
		self.Metabolism.ConsumeEnergy(cfg.Creature.EnergyShareAmount)
		target.Metabolism.GainEnergy(cfg.Creature.EnergyShareAmount)
		return
	}
}

func (s *SimulationState) applyRest(cfg config.Config, id uint64) {
	self, ok := s.Creatures[id]
	if !ok {
		return
	}
	self.Metabolism.PassiveHeal(
		cfg.Combat.HealthRegenRate*cfg.Creature.RestHealingMultiplier,
		cfg.Combat.HealthRegenEnergyCost*cfg.Creature.RestEnergyMultiplier,
	)
	s.tryEat(id, cfg)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
