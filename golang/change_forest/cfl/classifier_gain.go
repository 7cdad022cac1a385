package cfl

import (
	"fmt"
	"math"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// approxGainResultsForModelSelection is the number of approximate fits the
// permutation test expects, one per ApproxSearch guess.
const approxGainResultsForModelSelection = 3

//ClassifierGain scores splits by the likelihoods of an external classifier.
type ClassifierGain struct {
	Classifier Classifier
}

func NewClassifierGain(classifier Classifier) *ClassifierGain {
	return &ClassifierGain{Classifier: classifier}
}

//N returns the total number of observations.
func (g *ClassifierGain) N() int {
	return g.Classifier.N()
}

func (g *ClassifierGain) Control() Control {
	return g.Classifier.Control()
}

//Gain returns the classifier likelihood of splitting [start, stop) at split.
func (g *ClassifierGain) Gain(start, stop, split int) float64 {
	if split == start || split == stop {
		return 0
	}
	predictions := g.Classifier.Predict(start, stop, split)
	return g.Classifier.SingleLikelihood(predictions, start, stop, split)
}

func (g *ClassifierGain) GainFull(start, stop int, splitCandidates []int) *FullGainResult {
	return gainFull(g, start, stop, splitCandidates)
}

//GainApprox approximates the gain of every split of [start, stop) from a single
//fit with the split at guess.
func (g *ClassifierGain) GainApprox(start, stop, guess int, _ []int) *ApproxGainResult {
	predictions := g.Classifier.Predict(start, stop, guess)
	likelihoods := g.Classifier.FullLikelihood(predictions, start, stop, guess)

	return &ApproxGainResult{
		Start:       start,
		Stop:        stop,
		Guess:       guess,
		Gain:        GainFromLikelihoods(likelihoods),
		Likelihoods: likelihoods,
		Predictions: predictions,
	}
}

//GainFromLikelihoods turns a 2×m likelihood table into the gain curve
//gain[k] = sum(likelihoods[0][:k]) + sum(likelihoods[1][k:]).
func GainFromLikelihoods(likelihoods *mat.Dense) []float64 {
	_, n := likelihoods.Dims()
	gain := make([]float64, n)
	if n == 0 {
		return gain
	}

	row0 := likelihoods.RawRowView(0)
	row1 := likelihoods.RawRowView(1)

	// Move everything one to the right.
	delta := make([]float64, n-1)
	floats.SubTo(delta, row0[:n-1], row1[:n-1])
	floats.CumSum(gain[1:], delta)

	floats.AddConst(floats.Sum(row1), gain)
	return gain
}

//approxGainResults extracts the approximate fits model selection works on.
//Anything but exactly three approximate results with a maximal gain means the
//optimizer and the gain are mismatched.
func approxGainResults(result OptimizerResult) []*ApproxGainResult {
	if len(result.GainResults) != approxGainResultsForModelSelection {
		panic(fmt.Sprintf("model selection expects %d approximate gain results, got %d",
			approxGainResultsForModelSelection, len(result.GainResults)))
	}

	approx := make([]*ApproxGainResult, 0, approxGainResultsForModelSelection)
	for jdx, gainResult := range result.GainResults {
		switch current := gainResult.(type) {
		case *ApproxGainResult:
			if current.MaxGain == nil {
				panic(fmt.Sprintf("approximate gain result %d has no maximal gain", jdx))
			}
			approx = append(approx, current)
		case *FullGainResult:
			panic(fmt.Sprintf("gain result %d is a full gain result, model selection needs approximate ones", jdx))
		default:
			panic(fmt.Sprintf("gain result %d has unknown type %T", jdx, gainResult))
		}
	}
	return approx
}

//permutationEvidence stacks the likelihood tables of the approximate fits into
//3×m tensors. It returns the row-major differences before-after, the starting
//value sum(after) of every curve and the largest maximal gain M of the fits.
func permutationEvidence(approx []*ApproxGainResult, segmentLength int) (deltas, likelihood0 []float64, maxGain float64) {
	before := make([]float64, 0, len(approx)*segmentLength)
	after := make([]float64, 0, len(approx)*segmentLength)
	maxGain = math.Inf(-1)

	for jdx, current := range approx {
		if _, width := current.Likelihoods.Dims(); width != segmentLength {
			panic(fmt.Sprintf("approximate gain result %d covers %d rows, the segment has %d", jdx, width, segmentLength))
		}
		before = append(before, current.Likelihoods.RawRowView(0)...)
		after = append(after, current.Likelihoods.RawRowView(1)...)
		if *current.MaxGain > maxGain {
			maxGain = *current.MaxGain
		}
	}

	shape := tensor.WithShape(len(approx), segmentLength)
	beforeTensor := tensor.New(shape, tensor.WithBacking(before))
	afterTensor := tensor.New(shape, tensor.WithBacking(after))

	evidence, err := tensor.Sub(beforeTensor, afterTensor)
	if err != nil {
		panic(err)
	}
	baseline, err := tensor.Sum(afterTensor, 1)
	if err != nil {
		panic(err)
	}
	return evidence.Data().([]float64), baseline.Data().([]float64), maxGain
}

//ModelSelection runs a permutation test on the three approximate gain curves of
//result. A trial counts when, walking the rows in random order and adding their
//likelihood differences to any of the three curves, the running value reaches M,
//the largest maximal gain of the three fits. result.MaxGain is not consulted.
func (g *ClassifierGain) ModelSelection(result OptimizerResult) ModelSelectionResult {
	control := g.Control()
	approx := approxGainResults(result)
	segmentLength := result.Stop - result.Start

	deltas, likelihood0, maxGain := permutationEvidence(approx, segmentLength)

	rng := NewRand(control.Seed)
	values := make([]float64, approxGainResultsForModelSelection)
	extreme := 0

	for trial := 0; trial < modelSelectionNPermutations; trial++ {
		copy(values, likelihood0)
	walk:
		for _, idx := range rng.Perm(segmentLength) {
			for jdx := range values {
				values[jdx] += deltas[jdx*segmentLength+idx]
				if values[jdx] >= maxGain {
					extreme++
					break walk
				}
			}
		}
	}

	pValue := float64(1+extreme) / float64(1+modelSelectionNPermutations)
	isSignificant := pValue < control.ModelSelectionAlpha

	grip.Debug(message.Fields{
		"message":        "permutation test",
		"start":          result.Start,
		"stop":           result.Stop,
		"max_gain":       maxGain,
		"extreme_trials": extreme,
		"p_value":        pValue,
		"is_significant": isSignificant,
	})

	return ModelSelectionResult{
		IsSignificant: isSignificant,
		PValue:        &pValue,
	}
}
