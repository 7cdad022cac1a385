package cfl

import (
	"gonum.org/v1/gonum/mat"
)

//GainResult is either a *FullGainResult or an *ApproxGainResult. The set of
//variants is closed; consumers switch over both and panic on anything else.
type GainResult interface {
	//Curve returns the gain for every split of the segment, Curve()[k] belongs to split Start+k.
	Curve() []float64
	isGainResult()
}

//FullGainResult holds the exact gain for every split candidate of [Start, Stop).
//Entries of non candidates are zero.
type FullGainResult struct {
	Start int
	Stop  int
	Gain  []float64
}

func (result *FullGainResult) Curve() []float64 { return result.Gain }

func (*FullGainResult) isGainResult() {}

//ApproxGainResult is the gain curve derived from a single classifier fit at Guess.
type ApproxGainResult struct {
	Start       int
	Stop        int
	Guess       int
	Gain        []float64
	BestSplit   *int
	MaxGain     *float64
	Likelihoods *mat.Dense
	Predictions []float64
}

func (result *ApproxGainResult) Curve() []float64 { return result.Gain }

func (*ApproxGainResult) isGainResult() {}

//OptimizerResult packages the outcome of a split search over [Start, Stop).
type OptimizerResult struct {
	Start       int
	Stop        int
	BestSplit   int
	MaxGain     float64
	GainResults []GainResult
}

//LastGainResult returns the gain result produced last during the search.
func (result OptimizerResult) LastGainResult() GainResult {
	if len(result.GainResults) == 0 {
		return nil
	}
	return result.GainResults[len(result.GainResults)-1]
}

//ModelSelectionResult is the accept/reject decision for a split.
type ModelSelectionResult struct {
	IsSignificant bool
	PValue        *float64
}
