package cfl

import (
	"github.com/pkg/errors"
)

var (
	// ErrSegmentTooSmall indicates that no split of a segment leaves both sides
	// at least the minimal segment length long outside the forbidden segments.
	ErrSegmentTooSmall = errors.New("segment too small")
	// ErrInvalidSegment indicates a segment outside [0, n) or with start >= stop.
	ErrInvalidSegment = errors.New("invalid segment")
)

//Optimizer searches the best split of a segment.
type Optimizer interface {
	N() int
	Control() Control
	FindBestSplit(start, stop int) (OptimizerResult, error)
	ModelSelection(result OptimizerResult) ModelSelectionResult
	IsSignificant(result OptimizerResult) bool
}

//SplitCandidates lists the splits of [start, stop) that leave at least the minimal
//segment length on both sides and do not fall into a forbidden segment.
func SplitCandidates(control Control, start, stop int) []int {
	minimalSegmentLength := control.minimalSegmentLength(stop - start)
	candidates := Collect(NewRange(start+minimalSegmentLength, stop-minimalSegmentLength+1, 1))
	if len(control.ForbiddenSegments) == 0 {
		return candidates
	}

	allowed := candidates[:0]
	for _, split := range candidates {
		if !control.isForbidden(split) {
			allowed = append(allowed, split)
		}
	}
	return allowed
}

//ValidateSegment checks that [start, stop) is a non-empty segment of n observations.
func ValidateSegment(n, start, stop int) error {
	if start < 0 || stop > n || start >= stop {
		return errors.Wrapf(ErrInvalidSegment, "segment [%d, %d) with %d observations", start, stop, n)
	}
	return nil
}

//validatedCandidates checks the segment against n and returns its split candidates.
func validatedCandidates(control Control, n, start, stop int) ([]int, error) {
	if err := ValidateSegment(n, start, stop); err != nil {
		return nil, err
	}
	splitCandidates := SplitCandidates(control, start, stop)
	if len(splitCandidates) == 0 {
		return nil, errors.Wrapf(ErrSegmentTooSmall, "segment [%d, %d)", start, stop)
	}
	return splitCandidates, nil
}

//argMax returns the first candidate with the largest gain[candidate-start].
func argMax(gain []float64, start int, splitCandidates []int) (bestSplit int, maxGain float64) {
	firstIter := true
	for _, split := range splitCandidates {
		if firstIter || gain[split-start] > maxGain {
			firstIter = false
			bestSplit = split
			maxGain = gain[split-start]
		}
	}
	return
}
