package cfl

import (
	"math"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//ChangeInMean scores a split by the reduction of the sum of squares obtained when
//both sides get their own mean. The prefix sums of the data are built once by
//NewChangeInMean and never change afterwards, so one instance may be shared
//between goroutines.
type ChangeInMean struct {
	x       mat.Matrix
	control Control
	cumsum  *mat.Dense
}

//NewChangeInMean borrows x for the lifetime of the gain and builds its prefix sums.
func NewChangeInMean(x mat.Matrix, control Control) *ChangeInMean {
	return &ChangeInMean{
		x:       x,
		control: control,
		cumsum:  calculateCumsum(x),
	}
}

//calculateCumsum returns the (n+1)×p table whose row i is the column-wise sum of x[0..i).
func calculateCumsum(x mat.Matrix) *mat.Dense {
	h, w := x.Dims()
	cumsum := mat.NewDense(h+1, w, nil)
	row := make([]float64, w)
	for p := 0; p < h; p++ {
		mat.Row(row, p, x)
		floats.AddTo(cumsum.RawRowView(p+1), cumsum.RawRowView(p), row)
	}
	return cumsum
}

//CumSum exposes the prefix-sum table. Callers must not modify it.
func (g *ChangeInMean) CumSum() *mat.Dense {
	return g.cumsum
}

func (g *ChangeInMean) N() int {
	h, _ := g.x.Dims()
	return h
}

func (g *ChangeInMean) Control() Control {
	return g.control
}

func (g *ChangeInMean) Gain(start, stop, split int) float64 {
	if split == start || split == stop {
		return 0
	}

	s1 := float64(split - start)
	s2 := float64(stop - split)
	s := s1 + s2

	rowStart := g.cumsum.RawRowView(start)
	rowSplit := g.cumsum.RawRowView(split)
	rowStop := g.cumsum.RawRowView(stop)

	result := 0.0
	for idx := range rowStop {
		term := s1*rowStop[idx] + s2*rowStart[idx] - s*rowSplit[idx]
		result += term * term
	}
	return result / (s * s1 * s2 * float64(g.N()))
}

func (g *ChangeInMean) GainFull(start, stop int, splitCandidates []int) *FullGainResult {
	return gainFull(g, start, stop, splitCandidates)
}

//MinimalGainToSplit is the threshold a maximal gain has to exceed. Without an
//explicit value in Control it is p*ln(n)/n.
func (g *ChangeInMean) MinimalGainToSplit() float64 {
	if g.control.MinimalGainToSplit != nil {
		return *g.control.MinimalGainToSplit
	}
	h, w := g.x.Dims()
	return float64(w) * math.Log(float64(h)) / float64(h)
}

//ModelSelection compares the maximal gain against MinimalGainToSplit. There is no p-value.
func (g *ChangeInMean) ModelSelection(result OptimizerResult) ModelSelectionResult {
	threshold := g.MinimalGainToSplit()
	isSignificant := result.MaxGain > threshold

	grip.Debug(message.Fields{
		"message":        "change in mean model selection",
		"start":          result.Start,
		"stop":           result.Stop,
		"max_gain":       result.MaxGain,
		"threshold":      threshold,
		"is_significant": isSignificant,
	})

	return ModelSelectionResult{IsSignificant: isSignificant}
}
