package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrolly/scenes"
	"scrolly/store"
)

func TestLoadEmbedded(t *testing.T) {
	a, err := Load(context.Background(), Options{LoadTimeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Registry.Len())
	_, ok := a.Store.SharedScale()
	assert.True(t, ok)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	story := []byte(`
datasets:
  - {name: annual, kind: timeseries, location: annual.csv}
scenes:
  - {key: only, kind: line, dataset: annual}
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.yaml"), story, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "annual.csv"), []byte("year,annual_co2_emissions\n2000,1\n2001,2\n"), 0o644))

	a, err := Load(context.Background(), Options{StoryPath: filepath.Join(dir, "story.yaml"), DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Registry.Len())
}

func TestLoadReportsMissingData(t *testing.T) {
	_, err := Load(context.Background(), Options{DataDir: t.TempDir()})
	var loadErr *store.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadRejectsAnnotationsOutsideData(t *testing.T) {
	dir := t.TempDir()
	story := []byte(`
datasets:
  - {name: annual, kind: timeseries, location: annual.csv}
scenes:
  - key: only
    kind: line
    dataset: annual
    annotations: [{year: 1999, title: Missing}]
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.yaml"), story, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "annual.csv"), []byte("year,annual_co2_emissions\n2000,1\n2001,2\n"), 0o644))

	_, err := Load(context.Background(), Options{StoryPath: filepath.Join(dir, "story.yaml"), DataDir: dir})
	assert.ErrorIs(t, err, scenes.ErrInvalidScene)
}
