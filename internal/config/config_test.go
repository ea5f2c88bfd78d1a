package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pitchgraph/internal/config"
	"github.com/f3rmion/pitchgraph/internal/kana"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.StyleFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultStyleIsValid(t *testing.T) {
	assert.NoError(t, config.DefaultStyle().Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.StyleFile)
	style := config.DefaultStyle()
	style.XStep = 60
	style.NoText = true
	style.ConvertReading = kana.ModeHiragana

	require.NoError(t, config.SaveStyle(path, style))
	got, err := config.LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, style, got)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x_step: 40\nconvert_reading: Hiragana\n")

	got, err := config.LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.XStep)
	assert.Equal(t, kana.ModeHiragana, got.ConvertReading)
	assert.Equal(t, config.DefaultStyle().GraphHeight, got.GraphHeight)
}

func TestLoadRejectsInvalidStyle(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{
		"x_step: 0\n",
		"graph_height: -1\n",
		"circle_radius: -2\n",
		"font_size: 0\n",
		"convert_reading: romaji\n",
	} {
		_, err := config.LoadStyle(writeFile(t, dir, content))
		assert.ErrorIs(t, err, config.ErrInvalidStyle, content)
	}
}

func TestLoadParseError(t *testing.T) {
	_, err := config.LoadStyle(writeFile(t, t.TempDir(), "x_step: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing style file")
}

func TestLoadDir(t *testing.T) {
	got, err := config.LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStyle(), got)

	dir := t.TempDir()
	writeFile(t, dir, "font_size: 30\n")
	got, err = config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.FontSize)
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, config.EnsureConfigDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
