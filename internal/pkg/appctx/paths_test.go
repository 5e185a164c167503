package appctx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := NewPaths(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, paths.BaseDir)
	assert.Equal(t, filepath.Join(tmpDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(tmpDir, ".env"), paths.EnvFile)
	assert.Equal(t, filepath.Join(paths.LogDir, "pulse.log"), paths.LogFile)
}

func TestPaths_Directories(t *testing.T) {
	paths, err := NewPaths(t.TempDir())
	require.NoError(t, err)

	assert.DirExists(t, paths.ConfigDir)
	assert.DirExists(t, paths.LogDir)
}

func TestPaths_RelativeBase(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	paths, err := NewPaths("work")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.BaseDir))
	assert.Equal(t, "work", filepath.Base(paths.BaseDir))
}
