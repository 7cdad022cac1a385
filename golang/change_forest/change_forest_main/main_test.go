package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/change_forest/golang/change_forest/cfl"
)

func writeData(t *testing.T, dir string) string {
	fileName := filepath.Join(dir, "x.npy")
	x := mat.NewDense(7, 2, []float64{
		0, 1,
		0, 1,
		1, -1,
		1, -1,
		-1, -1,
		-1, -1,
		-1, -1,
	})
	require.NoError(t, cfl.WriteNpy(fileName, x))
	return fileName
}

func TestLoggingSetup(t *testing.T) {
	assert.NoError(t, loggingSetup("change_forest_test", "debug"))
	assert.NoError(t, loggingSetup("change_forest_test", "info"))
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)
	reportFile := filepath.Join(dir, "report.json")
	curveFile := filepath.Join(dir, "gain.npy")

	err := buildApp().Run([]string{"change_forest", "--level", "warning", "split",
		"--data", data, "--report", reportFile, "--gain-curve", curveFile})
	require.NoError(t, err)

	report, err := cfl.LoadReport(reportFile)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Start)
	assert.Equal(t, 7, report.Stop)
	assert.Equal(t, 2, report.BestSplit)
	assert.True(t, report.IsSignificant)
	assert.Len(t, report.Gain, 7)

	f, err := os.Open(curveFile)
	require.NoError(t, err)
	defer f.Close()
	var curve []float64
	require.NoError(t, npyio.Read(f, &curve))
	assert.Equal(t, report.Gain, curve)
}

func TestSplitCommandSegment(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)
	config := filepath.Join(dir, "control.yaml")
	reportFile := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(config, []byte("minimal_gain_to_split: 100\n"), 0644))

	err := buildApp().Run([]string{"change_forest", "--level", "warning", "split",
		"--data", data, "--config", config, "--start", "1", "--stop", "6", "--report", reportFile})
	require.NoError(t, err)

	report, err := cfl.LoadReport(reportFile)
	require.NoError(t, err)
	assert.Equal(t, 4, report.BestSplit)
	assert.False(t, report.IsSignificant)
}

func TestSplitCommandErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)

	for name, args := range map[string][]string{
		"NoData":          {"split"},
		"MissingData":     {"split", "--data", filepath.Join(dir, "missing.npy")},
		"InvalidSegment":  {"split", "--data", data, "--stop", "8"},
		"TooSmall":        {"split", "--data", data, "--start", "3", "--stop", "4"},
		"InvalidControl":  {"split", "--data", data, "--minimal-relative-segment-length", "0.7"},
		"MissingConfig":   {"split", "--data", data, "--config", filepath.Join(dir, "missing.yaml")},
		"CandidatesRange": {"candidates", "--data", data, "--start", "5", "--stop", "2"},
		"BadForbidden":    {"split", "--data", data, "--forbidden-segment", "2-3"},
		"AllForbidden":    {"split", "--data", data, "--forbidden-segment", "0:7"},
	} {
		t.Run(name, func(t *testing.T) {
			err := buildApp().Run(append([]string{"change_forest", "--level", "critical"}, args...))
			assert.Error(t, err)
		})
	}
}

func TestCandidatesCommand(t *testing.T) {
	data := writeData(t, t.TempDir())
	err := buildApp().Run([]string{"change_forest", "--level", "warning", "candidates",
		"--data", data, "--minimal-relative-segment-length", "0.3"})
	assert.NoError(t, err)
}

func TestSplitCommandForbiddenSegment(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)
	reportFile := filepath.Join(dir, "report.json")

	err := buildApp().Run([]string{"change_forest", "--level", "warning", "split",
		"--data", data, "--forbidden-segment", "2:3", "--report", reportFile})
	require.NoError(t, err)

	report, err := cfl.LoadReport(reportFile)
	require.NoError(t, err)
	assert.Equal(t, 4, report.BestSplit)
}

func TestParseForbiddenSegment(t *testing.T) {
	segment, err := parseForbiddenSegment("49:101")
	require.NoError(t, err)
	assert.Equal(t, [2]int{49, 101}, segment)

	segment, err = parseForbiddenSegment(" 3 : 3 ")
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 3}, segment)

	for _, value := range []string{"", "3", "1:2:3", "a:4", "4:b"} {
		_, err = parseForbiddenSegment(value)
		assert.Error(t, err, "value %q", value)
	}
}
