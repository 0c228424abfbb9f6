package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--no-color"))
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestInspectEmbeddedStory(t *testing.T) {
	out := execute(t, "inspect")

	for _, want := range []string{"Datasets", "annual", "by-type", "1750-2023", "Shared scale", "pre-rise", "post-rise", "by group"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "shared")
	assert.Contains(t, out, "World, ")
}

func TestExportNeverOverwrites(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, "export", "--out", dir)
	assert.Contains(t, out, "[OK] pre-rise")
	for _, key := range []string{"pre-rise", "post-rise", "by-type"} {
		data, err := os.ReadFile(filepath.Join(dir, key+".svg"))
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "<svg"), key)
	}

	execute(t, "export", "--out", dir, "--group", "China")
	_, err := os.Stat(filepath.Join(dir, "by-type_1.svg"))
	assert.NoError(t, err)
}

func TestExportUnknownGroup(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"export", "--out", t.TempDir(), "--group", "Atlantis", "--no-color"})
	assert.ErrorContains(t, cmd.Execute(), "Atlantis")
}

func TestRootFlagsDefaultFromEnvironment(t *testing.T) {
	t.Setenv("SCROLLY_STORY", "")
	t.Setenv("SCROLLY_DATA_DIR", "/srv/data")
	t.Setenv("SCROLLY_LOAD_TIMEOUT", "3s")

	flags := newRootCmd().PersistentFlags()
	assert.Equal(t, "/srv/data", flags.Lookup("data-dir").DefValue)
	assert.Equal(t, "3s", flags.Lookup("load-timeout").DefValue)
	assert.Equal(t, "", flags.Lookup("story").DefValue)
}

func TestRootRejectsBadEnvironment(t *testing.T) {
	t.Setenv("SCROLLY_LOAD_TIMEOUT", "soon")

	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"inspect", "--no-color"})
	assert.ErrorContains(t, cmd.Execute(), "parse env")
}
