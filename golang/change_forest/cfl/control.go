package cfl

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// modelSelectionNPermutations is the number of permutation trials in the
// classifier based significance test.
const modelSelectionNPermutations = 99

// segmentLengthTolerance pulls fractional minimal segment lengths that sit on an
// integer back onto it, so that 0.1*30 admits segments of length 3.
const segmentLengthTolerance = 1e-9

//Control holds the tuning parameters shared by gains, optimizers and model selection.
type Control struct {
	Seed                         uint64   `yaml:"seed" json:"seed"`
	ModelSelectionAlpha          float64  `yaml:"model_selection_alpha" json:"model_selection_alpha"`
	MinimalRelativeSegmentLength float64  `yaml:"minimal_relative_segment_length" json:"minimal_relative_segment_length"`
	MinimalGainToSplit           *float64 `yaml:"minimal_gain_to_split,omitempty" json:"minimal_gain_to_split,omitempty"`
	//ForbiddenSegments are closed ranges [a, b] of rows no split may land in.
	ForbiddenSegments [][2]int `yaml:"forbidden_segments,omitempty" json:"forbidden_segments,omitempty"`
}

//DefaultControl returns the parameters used when nothing is configured.
func DefaultControl() Control {
	return Control{
		Seed:                         0,
		ModelSelectionAlpha:          0.02,
		MinimalRelativeSegmentLength: 0.01,
	}
}

func (control Control) WithSeed(seed uint64) Control {
	control.Seed = seed
	return control
}

func (control Control) WithModelSelectionAlpha(alpha float64) Control {
	control.ModelSelectionAlpha = alpha
	return control
}

func (control Control) WithMinimalRelativeSegmentLength(length float64) Control {
	control.MinimalRelativeSegmentLength = length
	return control
}

func (control Control) WithMinimalGainToSplit(gain float64) Control {
	control.MinimalGainToSplit = &gain
	return control
}

//WithForbiddenSegments appends closed ranges [a, b] in which no split is placed.
func (control Control) WithForbiddenSegments(segments ...[2]int) Control {
	forbidden := make([][2]int, 0, len(control.ForbiddenSegments)+len(segments))
	forbidden = append(forbidden, control.ForbiddenSegments...)
	control.ForbiddenSegments = append(forbidden, segments...)
	return control
}

//isForbidden reports whether split lies inside one of the forbidden segments.
func (control Control) isForbidden(split int) bool {
	for _, segment := range control.ForbiddenSegments {
		if segment[0] <= split && split <= segment[1] {
			return true
		}
	}
	return false
}

//Validate checks that every parameter lies in its admissible range.
func (control Control) Validate() error {
	if !(control.ModelSelectionAlpha > 0 && control.ModelSelectionAlpha < 1) {
		return errors.Errorf("model_selection_alpha must be in (0, 1), got %g", control.ModelSelectionAlpha)
	}
	if !(control.MinimalRelativeSegmentLength > 0 && control.MinimalRelativeSegmentLength < 0.5) {
		return errors.Errorf("minimal_relative_segment_length must be in (0, 0.5), got %g", control.MinimalRelativeSegmentLength)
	}
	if control.MinimalGainToSplit != nil {
		if math.IsNaN(*control.MinimalGainToSplit) || math.IsInf(*control.MinimalGainToSplit, 0) {
			return errors.Errorf("minimal_gain_to_split must be finite, got %g", *control.MinimalGainToSplit)
		}
	}
	for _, segment := range control.ForbiddenSegments {
		if segment[0] < 0 || segment[0] > segment[1] {
			return errors.Errorf("forbidden segment [%d, %d] must satisfy 0 <= a <= b", segment[0], segment[1])
		}
	}
	return nil
}

//minimalSegmentLength returns the smallest admissible length of either side of a split
//inside a segment with segmentLength rows.
func (control Control) minimalSegmentLength(segmentLength int) int {
	length := int(math.Ceil(control.MinimalRelativeSegmentLength*float64(segmentLength) - segmentLengthTolerance))
	if length < 1 {
		return 1
	}
	return length
}

//LoadControl reads a YAML file on top of DefaultControl and validates the result.
func LoadControl(fileName string) (Control, error) {
	control := DefaultControl()

	content, err := os.ReadFile(fileName)
	if err != nil {
		return control, errors.Wrapf(err, "reading control file '%s'", fileName)
	}
	if err = yaml.Unmarshal(content, &control); err != nil {
		return control, errors.Wrapf(err, "decoding control file '%s'", fileName)
	}
	if err = control.Validate(); err != nil {
		return control, errors.Wrapf(err, "invalid control file '%s'", fileName)
	}
	return control, nil
}
