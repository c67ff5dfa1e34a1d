package neural

import "testing"

func TestActionDelta(t *testing.T) {
	cases := []struct {
		action Action
		dx, dy int
	}{
		{MoveUp, 0, -1},
		{MoveDown, 0, 1},
		{MoveLeft, -1, 0},
		{MoveRight, 1, 0},
		{SprintUp, 0, -1},
		{SprintRight, 1, 0},
		{Stay, 0, 0},
		{Attack, 0, 0},
		{Reproduce, 0, 0},
		{ShareEnergy, 0, 0},
		{Rest, 0, 0},
	}

	for _, c := range cases {
		dx, dy := c.action.Delta()
		if dx != c.dx || dy != c.dy {
			t.Errorf("%v.Delta() = (%d,%d); want (%d,%d)", c.action, dx, dy, c.dx, c.dy)
		}
	}
}

func TestActionIsMovement(t *testing.T) {
	movers := []Action{MoveUp, MoveDown, MoveLeft, MoveRight, SprintUp, SprintDown, SprintLeft, SprintRight}
	for _, a := range movers {
		if !a.IsMovement() {
			t.Errorf("%v.IsMovement() = false; want true", a)
		}
	}

	nonMovers := []Action{Stay, Attack, Reproduce, ShareEnergy, Rest}
	for _, a := range nonMovers {
		if a.IsMovement() {
			t.Errorf("%v.IsMovement() = true; want false", a)
		}
	}
}

func TestActionIsSprint(t *testing.T) {
	sprints := []Action{SprintUp, SprintDown, SprintLeft, SprintRight}
	for _, a := range sprints {
		if !a.IsSprint() {
			t.Errorf("%v.IsSprint() = false; want true", a)
		}
	}

	if MoveUp.IsSprint() {
		t.Error("MoveUp.IsSprint() = true; want false")
	}
}

func TestActionFromIndex(t *testing.T) {
	want := []Action{
		MoveUp, MoveDown, MoveLeft, MoveRight, Attack, Reproduce,
		ShareEnergy, SprintUp, SprintDown, SprintLeft, SprintRight, Rest,
	}
	for i, a := range want {
		if got := actionFromIndex(i); got != a {
			t.Errorf("actionFromIndex(%d) = %v; want %v", i, got, a)
		}
	}
	if got := actionFromIndex(99); got != Stay {
		t.Errorf("actionFromIndex(99) = %v; want Stay", got)
	}
}

func TestActionString(t *testing.T) {
	if MoveUp.String() != "MoveUp" {
		t.Errorf("MoveUp.String() = %q; want MoveUp", MoveUp.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("Action(999).String() = %q; want Unknown", Action(999).String())
	}
}
