package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToXDp(t *testing.T) {
	tests := []struct {
		in   float64
		dp   uint8
		want float64
	}{
		{41.2972, 1, 41.3},
		{17.1656, 1, 17.2},
		{0.125, 2, 0.13},
		{-2.5, 0, -3},
		{3, 2, 3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundToXDp(tt.in, tt.dp), 1e-9, "%v to %d dp", tt.in, tt.dp)
	}
}

func TestNextAvailableFilename(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "scene.svg"), NextAvailableFilename(dir, "scene", ".svg"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.svg"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "scene_1.svg"), NextAvailableFilename(dir, "scene", ".svg"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene_1.svg"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "scene_2.svg"), NextAvailableFilename(dir, "scene", ".svg"))
}
