// Package neural implements the genome-derived feedforward controller
// (spec.md §4.2), grounded on
// _examples/original_source/src/creature/neural_net.rs. The original keeps
// weights as Vec<Vec<f64>> and walks them with hand-written dot products;
// this reimplements the same two-layer tanh network on top of
// gonum.org/v1/gonum/mat, the same module pthm-soup already depends on
// directly (its cmd/optimize and systems/simd_bench_test.go import the
// optimize and blas32 subpackages) — mat.Dense/mat.VecDense give the
// matrix-vector product a reusable-receiver form that performs the forward
// pass with zero heap allocation per tick, which the hand-rolled slice
// version cannot do without its own scratch-buffer plumbing.
package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/evocore/ecosim/internal/genome"
)

// NeuralNetwork is a two-layer tanh feedforward controller: input -> hidden
// (tanh) -> output (tanh), followed by softmax sampling over the output
// layer to pick an Action.
type NeuralNetwork struct {
	inputSize  int
	hiddenSize int
	outputSize int

	wih *mat.Dense // hiddenSize x inputSize
	who *mat.Dense // outputSize x hiddenSize

	// Scratch buffers owned by this controller so Forward and
	// ComputeProbabilities never allocate after construction.
	inputBuf *mat.VecDense
	hidden   *mat.VecDense
	output   *mat.VecDense
	probs    []float64

	// rng is this controller's own pseudo-random stream for action
	// sampling, kept separate from the tick engine's so replaying a
	// creature's decisions never perturbs unrelated draws elsewhere in
	// the tick (movement tie-breaks, spawn placement, culling).
	rng *rand.Rand
}

// FromGenome builds a controller by walking the genome's genes as a
// cursor that wraps around when exhausted, exactly as the original's
// from_genome does: each weight is genome.GetNormalized(idx)*2-1, mapping
// the genome's [0,1] range onto [-1,1]. seed draws one value from the
// caller's rng to seed the controller's own action-sampling stream.
func FromGenome(g genome.Genome, inputSize, hiddenSize, outputSize int, seed *rand.Rand) *NeuralNetwork {
	idx := 0
	nextWeight := func() float64 {
		w := g.GetNormalized(idx)*2.0 - 1.0
		idx++
		if len(g.Genes) > 0 && idx >= len(g.Genes) {
			idx = 0
		}
		return w
	}

	ihData := make([]float64, hiddenSize*inputSize)
	for h := 0; h < hiddenSize; h++ {
		for i := 0; i < inputSize; i++ {
			ihData[h*inputSize+i] = nextWeight()
		}
	}

	hoData := make([]float64, outputSize*hiddenSize)
	for o := 0; o < outputSize; o++ {
		for h := 0; h < hiddenSize; h++ {
			hoData[o*hiddenSize+h] = nextWeight()
		}
	}

	return &NeuralNetwork{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		outputSize: outputSize,
		wih:        mat.NewDense(hiddenSize, inputSize, ihData),
		who:        mat.NewDense(outputSize, hiddenSize, hoData),
		inputBuf:   mat.NewVecDense(inputSize, nil),
		hidden:     mat.NewVecDense(hiddenSize, nil),
		output:     mat.NewVecDense(outputSize, nil),
		probs:      make([]float64, outputSize),
		rng:        rand.New(rand.NewSource(seed.Int63())),
	}
}

// InputSize, HiddenSize and OutputSize report the controller's fixed
// topology.
func (nn *NeuralNetwork) InputSize() int  { return nn.inputSize }
func (nn *NeuralNetwork) HiddenSize() int { return nn.hiddenSize }
func (nn *NeuralNetwork) OutputSize() int { return nn.outputSize }

// Forward runs the network on inputs and returns the raw (post-tanh)
// output layer activations. The returned slice aliases an internal
// buffer owned by nn and is only valid until the next call to Forward.
// Panics if len(inputs) != InputSize, matching the original's
// assert_eq!(inputs.len(), self.input_size, "Input size mismatch").
func (nn *NeuralNetwork) Forward(inputs []float64) []float64 {
	if len(inputs) != nn.inputSize {
		panic("neural: input size mismatch")
	}

	copy(nn.inputBuf.RawVector().Data, inputs)

	nn.hidden.MulVec(nn.wih, nn.inputBuf)
	applyTanh(nn.hidden)

	nn.output.MulVec(nn.who, nn.hidden)
	applyTanh(nn.output)

	return nn.output.RawVector().Data
}

func applyTanh(v *mat.VecDense) {
	data := v.RawVector().Data
	for i, x := range data {
		data[i] = math.Tanh(x)
	}
}

// ComputeProbabilities converts raw output activations into a softmax
// distribution, writing into an internal buffer (no allocation). If the
// exponentials underflow to a zero sum the distribution falls back to
// uniform rather than producing NaNs.
func (nn *NeuralNetwork) ComputeProbabilities(outputs []float64) []float64 {
	maxOut := math.Inf(-1)
	for _, v := range outputs {
		if v > maxOut {
			maxOut = v
		}
	}

	sum := 0.0
	for i, v := range outputs {
		e := math.Exp(v - maxOut)
		nn.probs[i] = e
		sum += e
	}

	if sum <= 0 {
		uniform := 1.0 / float64(len(nn.probs))
		for i := range nn.probs {
			nn.probs[i] = uniform
		}
		return nn.probs
	}

	for i := range nn.probs {
		nn.probs[i] /= sum
	}
	return nn.probs
}

// DecideAction runs Forward, converts the result to a softmax
// distribution and samples an Action from the controller's own
// pseudo-random stream, matching the original's decide_action
// cumulative-probability sampling.
func (nn *NeuralNetwork) DecideAction(inputs []float64) Action {
	outputs := nn.Forward(inputs)
	probs := nn.ComputeProbabilities(outputs)

	roll := nn.rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if roll < cumulative {
			return actionFromIndex(i)
		}
	}
	return Stay
}

// Weights exposes the hidden-layer and output-layer weight matrices.
// Checkpoints do not store them; brains are rebuilt from genomes on load.
// Callers must not mutate the returned matrices.
func (nn *NeuralNetwork) Weights() (wih, who *mat.Dense) {
	return nn.wih, nn.who
}
