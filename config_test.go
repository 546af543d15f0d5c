package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
display = 'Waveshare 4.2"'
grid_snap = true
grid_size = 0
save_directory = "~/layouts"
code_target = "c"
driver_module = "epd4in2b_V2"
pixel_pitch_mm = 0.2
confirmations = false
`)
	c, err := loadConfigFile(path)
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "layouts"), c.SaveDirectory)
	assert.True(t, c.GridSnap)
	assert.Equal(t, defaultGridSize, c.GridSize)
	assert.Equal(t, "c", c.CodeTarget)
	assert.Equal(t, 0.2, c.PixelPitchMM)
	assert.False(t, c.Confirmations)

	w, h, err := c.DisplaySize()
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, "epd4in2b_V2", c.Driver(w, h))
}

func TestLoadConfigFileKeepsDefaults(t *testing.T) {
	c, err := loadConfigFile(writeConfig(t, "debug = true\n"))
	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.Equal(t, defaultConfig().Display, c.Display)
	assert.Equal(t, string(TargetPython), c.CodeTarget)
	assert.True(t, c.Confirmations)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, os.IsNotExist(err))

	_, err = loadConfigFile(writeConfig(t, "grid_size = [\n"))
	assert.Error(t, err)
}

func TestDisplaySize(t *testing.T) {
	c := defaultConfig()
	w, h, err := c.DisplaySize()
	require.NoError(t, err)
	assert.Equal(t, displayPresets[0].Width, w)
	assert.Equal(t, displayPresets[0].Height, h)

	c.Display = "Unknown panel"
	w, _, err = c.DisplaySize()
	require.NoError(t, err)
	assert.Equal(t, displayPresets[0].Width, w)

	c.Width, c.Height = 1300, 100
	_, _, err = c.DisplaySize()
	var re *RangeError
	assert.ErrorAs(t, err, &re)
}

func TestDriverFallsBackToPreset(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "epd7in5_V2", c.Driver(800, 480))
	assert.Equal(t, displayPresets[0].Driver, c.Driver(123, 456))
}

func TestGetSavePath(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "a.epd", c.GetSavePath("a.epd"))

	c.SaveDirectory = filepath.Join(t.TempDir(), "out")
	assert.Equal(t, filepath.Join(c.SaveDirectory, "a.epd"), c.GetSavePath("a.epd"))
	assert.DirExists(t, c.SaveDirectory)

	abs := filepath.Join(t.TempDir(), "b.epd")
	assert.Equal(t, abs, c.GetSavePath(abs))
}
