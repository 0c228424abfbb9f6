package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scrolly", flag.ContinueOnError)
	flags, err := ParseFlags(fs, nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", flags.Addr)
	assert.Equal(t, "", flags.StoryPath)
	assert.Equal(t, "", flags.DataDir)
	assert.Equal(t, 10*time.Second, flags.LoadTimeout)
	assert.Equal(t, 1024, flags.Sessions)
	assert.Equal(t, "info", flags.LogLevel)
}

func TestParseFlagsEnvThenFlags(t *testing.T) {
	t.Setenv("SCROLLY_ADDR", ":9000")
	t.Setenv("SCROLLY_LOAD_TIMEOUT", "3s")
	t.Setenv("SCROLLY_DATA_DIR", "/srv/data")

	fs := flag.NewFlagSet("scrolly", flag.ContinueOnError)
	flags, err := ParseFlags(fs, []string{"-addr", ":7000", "-sessions", "8"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", flags.Addr)
	assert.Equal(t, 3*time.Second, flags.LoadTimeout)
	assert.Equal(t, "/srv/data", flags.DataDir)
	assert.Equal(t, 8, flags.Sessions)
}

func TestParseFlagsRejectsBadValues(t *testing.T) {
	fs := flag.NewFlagSet("scrolly", flag.ContinueOnError)
	_, err := ParseFlags(fs, []string{"-load-timeout", "0s"})
	assert.Error(t, err)

	t.Setenv("SCROLLY_SESSIONS", "lots")
	fs = flag.NewFlagSet("scrolly", flag.ContinueOnError)
	_, err = ParseFlags(fs, nil)
	assert.ErrorContains(t, err, "parse env")
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SCROLLY_STORY", "/srv/story.yaml")
	t.Setenv("SCROLLY_LOAD_TIMEOUT", "250ms")

	defaults, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/srv/story.yaml", defaults.StoryPath)
	assert.Equal(t, 250*time.Millisecond, defaults.LoadTimeout)
	assert.Equal(t, 1024, defaults.Sessions)

	t.Setenv("SCROLLY_LOAD_TIMEOUT", "soon")
	_, err = LoadEnv()
	assert.Error(t, err)
}
