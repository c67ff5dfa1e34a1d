package spatial

import "testing"

func TestNewIndexEmpty(t *testing.T) {
	idx := New(10, 10)
	if idx.IsOccupied(5, 5) {
		t.Fatal("fresh index should have no occupants")
	}
}

func TestPlaceAndGet(t *testing.T) {
	idx := New(10, 10)
	idx.Place(3, 4, 42)

	id, ok := idx.Get(3, 4)
	if !ok || id != 42 {
		t.Fatalf("Get(3,4) = (%d,%v); want (42,true)", id, ok)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	idx := New(10, 10)
	if _, ok := idx.Get(-1, 0); ok {
		t.Error("Get(-1,0) should be out of bounds")
	}
	if _, ok := idx.Get(10, 10); ok {
		t.Error("Get(10,10) should be out of bounds")
	}
}

func TestClear(t *testing.T) {
	idx := New(10, 10)
	idx.Place(1, 1, 7)
	idx.Clear(1, 1)

	if idx.IsOccupied(1, 1) {
		t.Error("cell should be unoccupied after Clear")
	}
}

func TestMoveRelocatesAtomically(t *testing.T) {
	idx := New(10, 10)
	idx.Place(1, 1, 7)
	idx.Move(1, 1, 2, 2, 7)

	if idx.IsOccupied(1, 1) {
		t.Error("old cell should be vacated after Move")
	}
	id, ok := idx.Get(2, 2)
	if !ok || id != 7 {
		t.Errorf("Get(2,2) = (%d,%v); want (7,true)", id, ok)
	}
}

func TestCountInRegion(t *testing.T) {
	idx := New(10, 10)
	idx.Place(5, 5, 1)
	idx.Place(6, 5, 2)
	idx.Place(0, 0, 3)

	if got := idx.CountInRegion(5, 5, 1); got != 2 {
		t.Errorf("CountInRegion(5,5,1) = %d; want 2", got)
	}
	if got := idx.CountInRegion(5, 5, 10); got != 3 {
		t.Errorf("CountInRegion(5,5,10) = %d; want 3", got)
	}
}

func TestCountInRegionClampsToGrid(t *testing.T) {
	idx := New(5, 5)
	idx.Place(0, 0, 1)

	if got := idx.CountInRegion(0, 0, 100); got != 1 {
		t.Errorf("CountInRegion should clamp search box to grid bounds, got %d", got)
	}
}

func TestRegionOccupants(t *testing.T) {
	idx := New(10, 10)
	idx.Place(1, 1, 10)
	idx.Place(2, 2, 20)
	idx.Place(8, 8, 30)

	occupants := idx.RegionOccupants(0, 0, 3, 3)
	if len(occupants) != 2 {
		t.Fatalf("len(occupants) = %d; want 2", len(occupants))
	}
}

func TestRegionOccupantsEmpty(t *testing.T) {
	idx := New(10, 10)
	occupants := idx.RegionOccupants(0, 0, 9, 9)
	if len(occupants) != 0 {
		t.Errorf("len(occupants) = %d; want 0", len(occupants))
	}
}
