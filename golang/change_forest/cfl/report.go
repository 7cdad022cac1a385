package cfl

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

//Report is the serializable summary of one split search and its model selection.
type Report struct {
	Start         int       `json:"start"`
	Stop          int       `json:"stop"`
	BestSplit     int       `json:"best_split"`
	MaxGain       float64   `json:"max_gain"`
	IsSignificant bool      `json:"is_significant"`
	PValue        *float64  `json:"p_value,omitempty"`
	Gain          []float64 `json:"gain"`
}

//NewReport combines an optimizer result with its model selection. Gain is the
//curve of the last gain result.
func NewReport(result OptimizerResult, selection ModelSelectionResult) Report {
	report := Report{
		Start:         result.Start,
		Stop:          result.Stop,
		BestSplit:     result.BestSplit,
		MaxGain:       result.MaxGain,
		IsSignificant: selection.IsSignificant,
		PValue:        selection.PValue,
	}
	if last := result.LastGainResult(); last != nil {
		report.Gain = append([]float64(nil), last.Curve()...)
	}
	return report
}

func (report Report) Save(fileName string) error {
	reportByteRepr, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	return errors.Wrapf(os.WriteFile(fileName, reportByteRepr, 0644), "writing report '%s'", fileName)
}

func LoadReport(fileName string) (report Report, err error) {
	source, err := os.Open(fileName)
	if err != nil {
		return report, errors.Wrapf(err, "opening report '%s'", fileName)
	}
	defer func() { _ = source.Close() }()

	decoder := json.NewDecoder(source)
	err = errors.Wrapf(decoder.Decode(&report), "decoding report '%s'", fileName)
	return
}

//DumpGainCurve writes the gain curve as a one dimensional npy array.
func (report Report) DumpGainCurve(fileName string) error {
	return WriteNpy(fileName, report.Gain)
}
