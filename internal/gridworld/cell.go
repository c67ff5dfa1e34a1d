// Package gridworld implements the dense cell grid (spec.md §4.4),
// grounded on _examples/original_source/src/world/{cell,mod,resources}.rs,
// following the teacher's flat row-major array convention from
// pkg/types/world.go (a bounds-checked single-slice grid rather than a
// slice-of-slices).
package gridworld

import "math"

// FoodKind distinguishes plant food (from initialization/regeneration)
// from meat (produced by creature death), each with its own decay clock.
type FoodKind int

const (
	Plant FoodKind = iota
	Meat
)

// Cell is the sum-type grid cell: either Empty or holding Food with an
// amount, a kind and an age in ticks. The invariant Amount > 0 whenever
// Occupied is true is maintained by every mutator below.
type Cell struct {
	Occupied bool
	Amount   uint32
	Kind     FoodKind
	Age      uint64
}

// IsEmpty reports whether the cell holds no food.
func (c Cell) IsEmpty() bool {
	return !c.Occupied
}

// IsFood reports whether the cell holds food.
func (c Cell) IsFood() bool {
	return c.Occupied
}

// FoodAmount returns the food amount, or 0 if empty.
func (c Cell) FoodAmount() uint32 {
	if !c.Occupied {
		return 0
	}
	return c.Amount
}

// AddFood applies spec.md §4.4's add_food semantics: an empty cell
// becomes food of kind at age 0; food of the same kind adds, saturating
// at max, and resets age to 0; food of the opposite kind is replaced
// entirely (new kind, age 0, amount clamped to max).
func (c *Cell) AddFood(amount, max uint32, kind FoodKind) {
	if !c.Occupied {
		c.Occupied = true
		c.Kind = kind
		c.Amount = clampU32(amount, max)
		c.Age = 0
		return
	}

	if c.Kind == kind {
		c.Amount = clampU32(c.Amount+amount, max)
		c.Age = 0
		return
	}

	c.Kind = kind
	c.Amount = clampU32(amount, max)
	c.Age = 0
}

func clampU32(v, max uint32) uint32 {
	if v > max {
		return max
	}
	return v
}

// ConsumeFood empties the cell and returns the amount and kind it held.
func (c *Cell) ConsumeFood() (amount uint32, kind FoodKind) {
	if !c.Occupied {
		return 0, Plant
	}
	amount, kind = c.Amount, c.Kind
	*c = Cell{}
	return amount, kind
}

// AgeFood increments the cell's age by one tick. A no-op on empty cells.
func (c *Cell) AgeFood() {
	if c.Occupied {
		c.Age++
	}
}

// ShouldDecay reports whether the cell's age has crossed the decay
// threshold for its kind.
func (c Cell) ShouldDecay(plantDecayTicks, meatDecayTicks uint64) bool {
	if !c.Occupied {
		return false
	}
	if c.Kind == Plant {
		return c.Age >= plantDecayTicks
	}
	return c.Age >= meatDecayTicks
}

// Decay empties the cell.
func (c *Cell) Decay() {
	*c = Cell{}
}

// MeatAmountFromEnergy converts a dying creature's remaining energy into
// a meat amount per spec.md scenario 4: ceil(energy/20).
func MeatAmountFromEnergy(energy float64) uint32 {
	if energy <= 0 {
		return 0
	}
	return uint32(math.Ceil(energy / 20.0))
}
