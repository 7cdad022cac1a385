// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"

	"github.com/tarstars/change_forest/golang/change_forest/cfl"
)

var (
	handles   = newRegistry()
	lastError errorSlot

	logSilenceOnce sync.Once
)

func silenceLogging() {
	logSilenceOnce.Do(func() {
		sender := grip.GetSender()
		lvl := sender.Level()
		lvl.Threshold = level.Critical
		grip.Warning(sender.SetLevel(lvl))
	})
}

//doubles views length C doubles starting at ptr without copying.
func doubles(ptr *C.double, length int) ([]float64, error) {
	if length <= 0 {
		return nil, errors.Errorf("invalid length %d", length)
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty buffer")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

//RegisterChangeInMean copies a row-major rows×cols matrix, builds its prefix sums and
//returns a handle to it. Zero means failure, see GetLastError.
//
//export RegisterChangeInMean
func RegisterChangeInMean(
	dataPtr *C.double,
	rows C.int,
	cols C.int,
	seed C.ulonglong,
	modelSelectionAlpha C.double,
	minimalRelativeSegmentLength C.double,
) C.ulonglong {
	lastError.set(nil)
	silenceLogging()

	data, err := doubles(dataPtr, int(rows)*int(cols))
	if err != nil {
		lastError.set(err)
		return 0
	}

	control := cfl.DefaultControl().
		WithSeed(uint64(seed)).
		WithModelSelectionAlpha(float64(modelSelectionAlpha)).
		WithMinimalRelativeSegmentLength(float64(minimalRelativeSegmentLength))
	handle, err := handles.register(data, int(rows), int(cols), control)
	if err != nil {
		lastError.set(err)
		return 0
	}
	return C.ulonglong(handle)
}

//export FreeChangeInMean
func FreeChangeInMean(handle C.ulonglong) {
	handles.free(uint64(handle))
}

//export FindBestSplit
func FindBestSplit(
	handle C.ulonglong,
	start C.int,
	stop C.int,
	bestSplitPtr *C.int,
	maxGainPtr *C.double,
	isSignificantPtr *C.int,
) C.int {
	lastError.set(nil)
	if bestSplitPtr == nil || maxGainPtr == nil || isSignificantPtr == nil {
		lastError.set(errors.New("null output pointer"))
		return 1
	}

	summary, err := handles.findBestSplit(uint64(handle), int(start), int(stop))
	if err != nil {
		lastError.set(err)
		return 2
	}

	*bestSplitPtr = C.int(summary.BestSplit)
	*maxGainPtr = C.double(summary.MaxGain)
	*isSignificantPtr = 0
	if summary.IsSignificant {
		*isSignificantPtr = 1
	}
	return 0
}

//GainCurve writes stop-start gains into outputPtr. Entries outside the split candidates are zero.
//
//export GainCurve
func GainCurve(handle C.ulonglong, start, stop C.int, outputPtr *C.double) C.int {
	lastError.set(nil)
	curve, err := handles.gainCurve(uint64(handle), int(start), int(stop))
	if err != nil {
		lastError.set(err)
		return 1
	}

	outSlice, err := doubles(outputPtr, len(curve))
	if err != nil {
		lastError.set(err)
		return 2
	}
	copy(outSlice, curve)
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	message := lastError.get()
	if message == "" {
		return nil
	}
	return C.CString(message)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
