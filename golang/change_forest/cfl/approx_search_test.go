package cfl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproxSearchGuesses(t *testing.T) {
	classifier := &oracleClassifier{probabilities: stepProbabilities(100, 50, 0.2, 0.8), control: DefaultControl()}
	approxSearch := NewApproxSearch(NewClassifierGain(classifier), DefaultControl())

	for _, testCase := range []struct {
		start, stop int
		candidates  []int
		expected    []int
	}{
		{0, 100, []int{10, 90}, []int{25, 50, 75}},
		{20, 60, []int{21, 59}, []int{30, 40, 50}},
		{0, 4, []int{1, 2, 3}, []int{1, 2, 3}},
		{0, 100, []int{40, 45}, []int{40, 45, 45}},
		{0, 100, []int{60, 70}, []int{60, 60, 70}},
	} {
		assert.Equal(t, testCase.expected, approxSearch.Guesses(testCase.start, testCase.stop, testCase.candidates),
			"segment [%d, %d)", testCase.start, testCase.stop)
	}
}

func TestApproxSearchFindBestSplit(t *testing.T) {
	control := DefaultControl().WithMinimalRelativeSegmentLength(0.1)
	classifier := &oracleClassifier{probabilities: stepProbabilities(100, 50, 0.1, 0.9), control: control}
	approxSearch := NewApproxSearch(NewClassifierGain(classifier), control)

	result, err := approxSearch.FindBestSplit(0, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, classifier.predictCalls)
	assert.Equal(t, 0, result.Start)
	assert.Equal(t, 100, result.Stop)
	assert.Equal(t, 50, result.BestSplit)
	require.Len(t, result.GainResults, 3)

	best := result.MaxGain
	for jdx, gainResult := range result.GainResults {
		approx, ok := gainResult.(*ApproxGainResult)
		require.True(t, ok)
		assert.Equal(t, []int{25, 50, 75}[jdx], approx.Guess)
		require.NotNil(t, approx.BestSplit)
		require.NotNil(t, approx.MaxGain)
		assert.Len(t, approx.Curve(), 100)
		assert.Len(t, approx.Predictions, 100)
		assert.Equal(t, approx.Gain[*approx.BestSplit], *approx.MaxGain)
		assert.LessOrEqual(t, *approx.MaxGain, best)
		assert.GreaterOrEqual(t, *approx.BestSplit, 10)
		assert.LessOrEqual(t, *approx.BestSplit, 90)
	}
	assert.Equal(t, result.GainResults[2], result.LastGainResult())
}

func TestApproxSearchErrors(t *testing.T) {
	control := DefaultControl().WithMinimalRelativeSegmentLength(0.4)
	classifier := &oracleClassifier{probabilities: stepProbabilities(10, 5, 0.2, 0.8), control: control}
	approxSearch := NewApproxSearch(NewClassifierGain(classifier), control)

	_, err := approxSearch.FindBestSplit(4, 7)
	assert.ErrorIs(t, err, ErrSegmentTooSmall)

	_, err = approxSearch.FindBestSplit(3, 11)
	assert.ErrorIs(t, err, ErrInvalidSegment)
	assert.Equal(t, 0, classifier.predictCalls)
}
