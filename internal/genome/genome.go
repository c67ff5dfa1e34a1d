// Package genome implements the fixed-length byte-vector genome and its
// mutation model (spec.md §4.1), grounded on
// _examples/original_source/src/creature/genome.rs.
package genome

import "math/rand"

// Genome is an ordered sequence of genes plus a generation counter.
type Genome struct {
	Genes      []byte
	Generation uint64
}

// Random fills size genes from rng, generation 0.
func Random(rng *rand.Rand, size int) Genome {
	genes := make([]byte, size)
	for i := range genes {
		genes[i] = byte(rng.Intn(256))
	}
	return Genome{Genes: genes, Generation: 0}
}

// FromParent copies parent's genes and independently rerolls each byte
// with probability rate, generation = parent.Generation + 1.
func FromParent(rng *rand.Rand, parent Genome, rate float64) Genome {
	genes := make([]byte, len(parent.Genes))
	copy(genes, parent.Genes)

	for i := range genes {
		if rng.Float64() < rate {
			genes[i] = byte(rng.Intn(256))
		}
	}

	return Genome{Genes: genes, Generation: parent.Generation + 1}
}

// GetNormalized returns gene[i]/255, or 0 if i is out of range. Out-of-range
// reads are tolerated because the neural controller's gene cursor walks
// past genome length and wraps, rather than ever going truly out of range,
// but callers constructing genomes directly may still probe past the end.
func (g Genome) GetNormalized(i int) float64 {
	if i < 0 || i >= len(g.Genes) {
		return 0
	}
	return float64(g.Genes[i]) / 255.0
}

// GetTrait returns count normalized genes starting at start.
func (g Genome) GetTrait(start, count int) []float64 {
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		out[i] = g.GetNormalized(start + i)
	}
	return out
}

// Similarity returns the fraction of positions whose byte difference is
// under 10, or 0 if the genomes have different lengths.
func Similarity(a, b Genome) float64 {
	if len(a.Genes) != len(b.Genes) || len(a.Genes) == 0 {
		return 0
	}

	matching := 0
	for i := range a.Genes {
		diff := int(a.Genes[i]) - int(b.Genes[i])
		if diff < 0 {
			diff = -diff
		}
		if diff < 10 {
			matching++
		}
	}

	return float64(matching) / float64(len(a.Genes))
}

// Clone returns a deep copy of g.
func (g Genome) Clone() Genome {
	genes := make([]byte, len(g.Genes))
	copy(genes, g.Genes)
	return Genome{Genes: genes, Generation: g.Generation}
}
