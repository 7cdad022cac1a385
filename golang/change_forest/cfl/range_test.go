package cfl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Collect(NewRange(0, 5, 1)))
	assert.Equal(t, []int{4, 3, 2, 1, 0}, Collect(NewRange(4, -1, -1)))
	assert.Equal(t, []int{1, 3, 5}, Collect(NewRange(1, 6, 2)))
	assert.Empty(t, Collect(NewRange(3, 3, 1)))
	assert.Empty(t, Collect(NewRange(4, 2, 1)))
}

func TestSplitCandidates(t *testing.T) {
	control := DefaultControl().WithMinimalRelativeSegmentLength(0.1)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, SplitCandidates(control, 0, 7))
	assert.Equal(t, []int{2, 3, 4}, SplitCandidates(control, 1, 5))
	assert.Equal(t, Collect(NewRange(3, 28, 1)), SplitCandidates(control, 0, 30))
	assert.Empty(t, SplitCandidates(control, 3, 4))

	wide := DefaultControl().WithMinimalRelativeSegmentLength(0.4)
	assert.Empty(t, SplitCandidates(wide, 0, 3))
	assert.Equal(t, []int{4}, SplitCandidates(wide, 0, 8))
}

func TestSplitCandidatesForbiddenSegments(t *testing.T) {
	base := DefaultControl().WithMinimalRelativeSegmentLength(0.1)

	for _, test := range []struct {
		name        string
		forbidden   [][2]int
		start, stop int
		expected    []int
	}{
		{name: "None", start: 0, stop: 10, expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "Inner", forbidden: [][2]int{{3, 5}}, start: 0, stop: 10, expected: []int{1, 2, 6, 7, 8, 9}},
		{name: "SinglePoint", forbidden: [][2]int{{4, 4}}, start: 0, stop: 10, expected: []int{1, 2, 3, 5, 6, 7, 8, 9}},
		{name: "Overlapping", forbidden: [][2]int{{0, 2}, {2, 3}, {8, 20}}, start: 0, stop: 10, expected: []int{4, 5, 6, 7}},
		{name: "OutsideSegment", forbidden: [][2]int{{20, 30}}, start: 0, stop: 10, expected: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "CoversSegment", forbidden: [][2]int{{0, 49}}, start: 0, stop: 50, expected: []int{}},
		{name: "Shifted", forbidden: [][2]int{{49, 101}}, start: 48, stop: 150, expected: Collect(NewRange(102, 140, 1))},
	} {
		t.Run(test.name, func(t *testing.T) {
			control := base.WithForbiddenSegments(test.forbidden...)
			assert.Equal(t, test.expected, SplitCandidates(control, test.start, test.stop))
		})
	}
}
