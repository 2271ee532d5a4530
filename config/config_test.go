package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTempConfigHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir redirection uses XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadCreatesDefaults(t *testing.T) {
	dir := setTempConfigHome(t)

	conf, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)

	// The defaults were persisted.
	_, err = os.Stat(filepath.Join(dir, configDirName, configFile))
	assert.NoError(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	setTempConfigHome(t)

	want := Config{
		WindowWidth:  1920,
		WindowHeight: 1080,
		ShowFPS:      true,
		VSync:        false,
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := setTempConfigHome(t)

	path := filepath.Join(dir, configDirName, configFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load()
	assert.Error(t, err)
}
