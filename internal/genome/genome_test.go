package genome

import (
	"math/rand"
	"testing"
)

func TestRandomGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(rng, 100)

	if len(g.Genes) != 100 {
		t.Fatalf("len(Genes) = %d; want 100", len(g.Genes))
	}
	if g.Generation != 0 {
		t.Errorf("Generation = %d; want 0", g.Generation)
	}
}

func TestFromParentIncrementsGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	parent := Random(rng, 100)
	parent.Generation = 3

	child := FromParent(rng, parent, 0.5)

	if child.Generation != 4 {
		t.Errorf("child.Generation = %d; want 4", child.Generation)
	}
	if len(child.Genes) != len(parent.Genes) {
		t.Fatalf("len(child.Genes) = %d; want %d", len(child.Genes), len(parent.Genes))
	}
}

func TestFromParentMutatesSomeBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent := Random(rng, 200)

	child := FromParent(rng, parent, 1.0)

	differences := 0
	for i := range parent.Genes {
		if parent.Genes[i] != child.Genes[i] {
			differences++
		}
	}
	// At rate 1.0 nearly every byte rerolls (collisions with the same
	// value are possible but rare over 200 bytes).
	if differences < 150 {
		t.Errorf("differences = %d; want >= 150 at mutation rate 1.0", differences)
	}
}

func TestFromParentNoMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	parent := Random(rng, 50)

	child := FromParent(rng, parent, 0.0)

	for i := range parent.Genes {
		if parent.Genes[i] != child.Genes[i] {
			t.Fatalf("gene %d changed with mutation rate 0", i)
		}
	}
}

func TestGetNormalized(t *testing.T) {
	g := Genome{Genes: []byte{0, 127, 255}}

	if got := g.GetNormalized(0); got != 0.0 {
		t.Errorf("GetNormalized(0) = %v; want 0", got)
	}
	if got := g.GetNormalized(2); got != 1.0 {
		t.Errorf("GetNormalized(2) = %v; want 1", got)
	}
	if got := g.GetNormalized(10); got != 0.0 {
		t.Errorf("GetNormalized(out of range) = %v; want 0", got)
	}
	if got := g.GetNormalized(-1); got != 0.0 {
		t.Errorf("GetNormalized(-1) = %v; want 0", got)
	}
}

func TestGetTrait(t *testing.T) {
	g := Genome{Genes: []byte{0, 50, 100, 150, 200, 255}}
	trait := g.GetTrait(1, 3)

	if len(trait) != 3 {
		t.Fatalf("len(trait) = %d; want 3", len(trait))
	}
	if trait[0] <= 0 || trait[0] >= 1 {
		t.Errorf("trait[0] = %v; want in (0,1)", trait[0])
	}
}

func TestSimilarityIdentical(t *testing.T) {
	a := Genome{Genes: []byte{100, 100, 100}}
	b := Genome{Genes: []byte{100, 105, 100}}

	if s := Similarity(a, b); s <= 0.5 {
		t.Errorf("Similarity = %v; want > 0.5", s)
	}
}

func TestSimilarityLengthMismatch(t *testing.T) {
	a := Genome{Genes: []byte{1, 2, 3}}
	b := Genome{Genes: []byte{1, 2}}

	if s := Similarity(a, b); s != 0 {
		t.Errorf("Similarity(length mismatch) = %v; want 0", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(rng, 10)
	clone := g.Clone()

	clone.Genes[0] = ^g.Genes[0]

	if g.Genes[0] == clone.Genes[0] {
		t.Errorf("Clone shares underlying array with original")
	}
}
