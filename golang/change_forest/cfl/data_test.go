package cfl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNpyRoundTrip(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "x.npy")
	x := randomMatrix(12, 3, 5)

	require.NoError(t, WriteNpy(fileName, x))
	loaded, err := ReadNpy(fileName)
	require.NoError(t, err)
	assert.True(t, mat.Equal(x, loaded))
}

func TestReadNpyErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadNpy(filepath.Join(dir, "missing.npy"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.npy")
	require.NoError(t, os.WriteFile(garbage, []byte("not a npy file"), 0644))
	_, err = ReadNpy(garbage)
	assert.Error(t, err)
}

func TestWriteNpyErrors(t *testing.T) {
	err := WriteNpy(filepath.Join(t.TempDir(), "no", "such", "dir.npy"), []float64{1})
	assert.Error(t, err)
}
