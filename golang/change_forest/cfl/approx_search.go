package cfl

import (
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// approxSearchQuantiles place the guessed splits of ApproxSearch inside the segment.
var approxSearchQuantiles = [approxGainResultsForModelSelection]float64{0.25, 0.5, 0.75}

//ApproxSearch fits the classifier once at each of three guessed splits spread
//over the segment and takes the best split of the resulting approximate gain
//curves. Its result is what ClassifierGain.ModelSelection expects.
type ApproxSearch struct {
	gain    ApproxGain
	control Control
}

func NewApproxSearch(gain ApproxGain, control Control) *ApproxSearch {
	return &ApproxSearch{gain: gain, control: control}
}

func (optimizer *ApproxSearch) N() int {
	return optimizer.gain.N()
}

func (optimizer *ApproxSearch) Control() Control {
	return optimizer.control
}

//Guesses returns the splits at which ApproxSearch fits, clamped to the candidates.
func (optimizer *ApproxSearch) Guesses(start, stop int, splitCandidates []int) []int {
	first, last := splitCandidates[0], splitCandidates[len(splitCandidates)-1]
	guesses := make([]int, 0, len(approxSearchQuantiles))
	for _, quantile := range approxSearchQuantiles {
		guess := start + int(quantile*float64(stop-start))
		if guess < first {
			guess = first
		}
		if guess > last {
			guess = last
		}
		guesses = append(guesses, guess)
	}
	return guesses
}

func (optimizer *ApproxSearch) FindBestSplit(start, stop int) (OptimizerResult, error) {
	splitCandidates, err := validatedCandidates(optimizer.control, optimizer.N(), start, stop)
	if err != nil {
		return OptimizerResult{}, err
	}

	result := OptimizerResult{
		Start:       start,
		Stop:        stop,
		GainResults: make([]GainResult, 0, len(approxSearchQuantiles)),
	}

	for jdx, guess := range optimizer.Guesses(start, stop, splitCandidates) {
		approx := optimizer.gain.GainApprox(start, stop, guess, splitCandidates)
		bestSplit, maxGain := argMax(approx.Gain, start, splitCandidates)
		approx.BestSplit = &bestSplit
		approx.MaxGain = &maxGain

		if jdx == 0 || maxGain > result.MaxGain {
			result.BestSplit = bestSplit
			result.MaxGain = maxGain
		}
		result.GainResults = append(result.GainResults, approx)

		grip.Debug(message.Fields{
			"message":    "approximate fit",
			"start":      start,
			"stop":       stop,
			"guess":      guess,
			"best_split": bestSplit,
			"max_gain":   maxGain,
		})
	}

	return result, nil
}

func (optimizer *ApproxSearch) ModelSelection(result OptimizerResult) ModelSelectionResult {
	return optimizer.gain.ModelSelection(result)
}

func (optimizer *ApproxSearch) IsSignificant(result OptimizerResult) bool {
	return optimizer.ModelSelection(result).IsSignificant
}
