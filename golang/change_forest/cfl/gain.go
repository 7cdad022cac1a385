package cfl

//Gain scores a single split of a segment.
type Gain interface {
	//N is the total number of observations.
	N() int
	Control() Control
	//Gain is the improvement from splitting [start, stop) at split. It is zero
	//when split equals start or stop.
	Gain(start, stop, split int) float64
	//GainFull evaluates Gain for every split candidate.
	GainFull(start, stop int, splitCandidates []int) *FullGainResult
	//ModelSelection decides whether the best split of an optimizer result is significant.
	ModelSelection(result OptimizerResult) ModelSelectionResult
}

//ApproxGain approximates the gain curve of a segment from a single fit at guess.
type ApproxGain interface {
	Gain
	GainApprox(start, stop, guess int, splitCandidates []int) *ApproxGainResult
}

//gainFull evaluates gain.Gain split by split.
func gainFull(gain Gain, start, stop int, splitCandidates []int) *FullGainResult {
	result := &FullGainResult{Start: start, Stop: stop, Gain: make([]float64, stop-start)}
	for _, split := range splitCandidates {
		result.Gain[split-start] = gain.Gain(start, stop, split)
	}
	return result
}
