package cfl

import (
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

//GridSearch evaluates the gain at every split candidate and keeps the first maximum.
type GridSearch struct {
	gain    Gain
	control Control
}

func NewGridSearch(gain Gain, control Control) *GridSearch {
	return &GridSearch{gain: gain, control: control}
}

func (optimizer *GridSearch) N() int {
	return optimizer.gain.N()
}

func (optimizer *GridSearch) Control() Control {
	return optimizer.control
}

//FindBestSplit scans all split candidates of [start, stop). It fails with
//ErrSegmentTooSmall when there are none.
func (optimizer *GridSearch) FindBestSplit(start, stop int) (OptimizerResult, error) {
	splitCandidates, err := validatedCandidates(optimizer.control, optimizer.N(), start, stop)
	if err != nil {
		return OptimizerResult{}, err
	}

	fullGain := optimizer.gain.GainFull(start, stop, splitCandidates)
	bestSplit, maxGain := argMax(fullGain.Gain, start, splitCandidates)

	grip.Debug(message.Fields{
		"message":    "grid search",
		"start":      start,
		"stop":       stop,
		"candidates": len(splitCandidates),
		"best_split": bestSplit,
		"max_gain":   maxGain,
	})

	return OptimizerResult{
		Start:       start,
		Stop:        stop,
		BestSplit:   bestSplit,
		MaxGain:     maxGain,
		GainResults: []GainResult{fullGain},
	}, nil
}

func (optimizer *GridSearch) ModelSelection(result OptimizerResult) ModelSelectionResult {
	return optimizer.gain.ModelSelection(result)
}

func (optimizer *GridSearch) IsSignificant(result OptimizerResult) bool {
	return optimizer.ModelSelection(result).IsSignificant
}
