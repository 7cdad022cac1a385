package cfl

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// probabilityClip keeps predicted probabilities and priors away from 0 and 1.
const probabilityClip = 1e-6

//Classifier is an external model that, fitted on [start, stop) with the labels
//given by split, predicts for every row of the segment how strongly it belongs
//after the split.
type Classifier interface {
	N() int
	Control() Control
	Predict(start, stop, split int) []float64
	SingleLikelihood(predictions []float64, start, stop, split int) float64
	//FullLikelihood returns a 2×(stop-start) table. Row 0 holds the log-likelihood
	//of every row under the "before split" model, row 1 under the "after split" model.
	FullLikelihood(predictions []float64, start, stop, split int) *mat.Dense
}

//ProbabilityLikelihood derives likelihoods from predictions that are probabilities
//of belonging to [split, stop). Embed it to get SingleLikelihood and FullLikelihood.
type ProbabilityLikelihood struct{}

func clip(value float64) float64 {
	return math.Min(math.Max(value, probabilityClip), 1-probabilityClip)
}

func priors(start, stop, split int) (prior0, prior1 float64) {
	prior0 = clip(float64(split-start) / float64(stop-start))
	prior1 = clip(float64(stop-split) / float64(stop-start))
	return
}

func (ProbabilityLikelihood) FullLikelihood(predictions []float64, start, stop, split int) *mat.Dense {
	prior0, prior1 := priors(start, stop, split)
	likelihoods := mat.NewDense(2, stop-start, nil)
	for ind, prediction := range predictions[:stop-start] {
		p := clip(prediction)
		likelihoods.Set(0, ind, math.Log((1-p)/prior0))
		likelihoods.Set(1, ind, math.Log(p/prior1))
	}
	return likelihoods
}

func (ProbabilityLikelihood) SingleLikelihood(predictions []float64, start, stop, split int) float64 {
	if split == start || split == stop {
		return 0
	}
	prior0, prior1 := priors(start, stop, split)
	likelihood := 0.0
	for ind, prediction := range predictions[:stop-start] {
		p := clip(prediction)
		if start+ind < split {
			likelihood += math.Log((1 - p) / prior0)
		} else {
			likelihood += math.Log(p / prior1)
		}
	}
	return likelihood
}
