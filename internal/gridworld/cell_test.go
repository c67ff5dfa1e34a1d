package gridworld

import "testing"

func TestCellEmpty(t *testing.T) {
	var c Cell
	if !c.IsEmpty() || c.IsFood() {
		t.Fatal("zero-value Cell should be empty")
	}
	if c.FoodAmount() != 0 {
		t.Errorf("FoodAmount() = %d; want 0", c.FoodAmount())
	}
}

func TestAddFoodToEmpty(t *testing.T) {
	var c Cell
	c.AddFood(5, 10, Plant)
	if c.FoodAmount() != 5 || c.Kind != Plant || c.Age != 0 {
		t.Errorf("got %+v; want amount=5 kind=Plant age=0", c)
	}
}

func TestAddFoodSameKindSaturates(t *testing.T) {
	var c Cell
	c.AddFood(5, 10, Plant)
	c.Age = 7
	c.AddFood(3, 10, Plant)
	if c.FoodAmount() != 8 {
		t.Errorf("FoodAmount() = %d; want 8", c.FoodAmount())
	}
	if c.Age != 0 {
		t.Errorf("Age = %d; want reset to 0", c.Age)
	}

	c.AddFood(100, 10, Plant)
	if c.FoodAmount() != 10 {
		t.Errorf("FoodAmount() = %d; want clamped to 10", c.FoodAmount())
	}
}

func TestAddFoodOppositeKindReplaces(t *testing.T) {
	var c Cell
	c.AddFood(5, 10, Plant)
	c.AddFood(7, 10, Meat)

	if c.Kind != Meat || c.FoodAmount() != 7 || c.Age != 0 {
		t.Errorf("got %+v; want kind=Meat amount=7 age=0", c)
	}
}

func TestConsumeFood(t *testing.T) {
	var c Cell
	c.AddFood(5, 10, Plant)

	amount, kind := c.ConsumeFood()
	if amount != 5 || kind != Plant {
		t.Errorf("ConsumeFood() = (%d,%v); want (5, Plant)", amount, kind)
	}
	if !c.IsEmpty() {
		t.Error("cell should be empty after consuming")
	}

	amount, _ = c.ConsumeFood()
	if amount != 0 {
		t.Errorf("ConsumeFood() on empty cell = %d; want 0", amount)
	}
}

func TestAgeFoodNoOpWhenEmpty(t *testing.T) {
	var c Cell
	c.AgeFood()
	if c.Age != 0 {
		t.Errorf("Age = %d; want 0 on empty cell", c.Age)
	}
}

func TestShouldDecay(t *testing.T) {
	var plant Cell
	plant.AddFood(5, 10, Plant)
	plant.Age = 100

	if !plant.ShouldDecay(100, 200) {
		t.Error("plant at age 100 with plantDecayTicks=100 should decay")
	}
	if plant.ShouldDecay(101, 200) {
		t.Error("plant at age 100 with plantDecayTicks=101 should not decay yet")
	}

	var meat Cell
	meat.AddFood(5, 10, Meat)
	meat.Age = 50
	if meat.ShouldDecay(100, 51) {
		t.Error("meat decay threshold should use meatDecayTicks, not plantDecayTicks")
	}
	if !meat.ShouldDecay(100, 50) {
		t.Error("meat at age 50 with meatDecayTicks=50 should decay")
	}
}

func TestDecay(t *testing.T) {
	var c Cell
	c.AddFood(5, 10, Plant)
	c.Decay()
	if !c.IsEmpty() {
		t.Error("Decay should empty the cell")
	}
}

func TestMeatAmountFromEnergy(t *testing.T) {
	cases := []struct {
		energy float64
		want   uint32
	}{
		{0, 0},
		{-5, 0},
		{30, 2},
		{40, 2},
		{41, 3},
	}
	for _, c := range cases {
		if got := MeatAmountFromEnergy(c.energy); got != c.want {
			t.Errorf("MeatAmountFromEnergy(%v) = %d; want %d", c.energy, got, c.want)
		}
	}
}
