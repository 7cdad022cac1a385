// SPDX-License-Identifier: Apache-2.0

package main

import (
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/change_forest/golang/change_forest/cfl"
)

//registry hands out handles to change in mean gains living on the Go side.
type registry struct {
	mu            sync.Mutex
	nextHandle    uint64
	changeInMeans map[uint64]*cfl.ChangeInMean
}

func newRegistry() *registry {
	return &registry{nextHandle: 1, changeInMeans: make(map[uint64]*cfl.ChangeInMean)}
}

func (r *registry) store(changeInMean *cfl.ChangeInMean) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle := r.nextHandle
	r.changeInMeans[handle] = changeInMean
	r.nextHandle++
	return handle
}

func (r *registry) fetch(handle uint64) (*cfl.ChangeInMean, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changeInMean, ok := r.changeInMeans[handle]
	if !ok {
		return nil, errors.Errorf("invalid change in mean handle %d", handle)
	}
	return changeInMean, nil
}

func (r *registry) free(handle uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.changeInMeans, handle)
}

//errorSlot keeps the message of the last failed call for GetLastError.
type errorSlot struct {
	mu      sync.Mutex
	message string
}

func (s *errorSlot) set(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = ""
	if err != nil {
		s.message = err.Error()
	}
}

func (s *errorSlot) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

//register copies a row-major rows×cols matrix and stores its change in mean gain.
func (r *registry) register(data []float64, rows, cols int, control cfl.Control) (uint64, error) {
	if err := control.Validate(); err != nil {
		return 0, err
	}
	if rows <= 0 || cols <= 0 {
		return 0, errors.Errorf("invalid matrix dimensions %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return 0, errors.Errorf("got %d values for a %dx%d matrix", len(data), rows, cols)
	}

	x := mat.NewDense(rows, cols, append([]float64(nil), data...))
	return r.store(cfl.NewChangeInMean(x, control)), nil
}

//splitSummary is what FindBestSplit reports back over the C boundary.
type splitSummary struct {
	BestSplit     int
	MaxGain       float64
	IsSignificant bool
}

func (r *registry) gridSearch(handle uint64, start, stop int) (*cfl.GridSearch, cfl.OptimizerResult, error) {
	changeInMean, err := r.fetch(handle)
	if err != nil {
		return nil, cfl.OptimizerResult{}, err
	}
	gridSearch := cfl.NewGridSearch(changeInMean, changeInMean.Control())
	result, err := gridSearch.FindBestSplit(start, stop)
	return gridSearch, result, err
}

func (r *registry) findBestSplit(handle uint64, start, stop int) (splitSummary, error) {
	gridSearch, result, err := r.gridSearch(handle, start, stop)
	if err != nil {
		return splitSummary{}, err
	}
	return splitSummary{
		BestSplit:     result.BestSplit,
		MaxGain:       result.MaxGain,
		IsSignificant: gridSearch.IsSignificant(result),
	}, nil
}

//gainCurve returns stop-start gains. Entries outside the split candidates are zero.
func (r *registry) gainCurve(handle uint64, start, stop int) ([]float64, error) {
	_, result, err := r.gridSearch(handle, start, stop)
	if err != nil {
		return nil, err
	}
	return result.LastGainResult().Curve(), nil
}
