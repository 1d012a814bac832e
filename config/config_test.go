package config

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".jpg", cfg.ImageExtension)
	assert.Equal(t, "Annotations", cfg.AnnotationDir)
}

func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ImageExtension = "JPG"
	cfg.RectThickness = 0
	cfg.TickMs = -5
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".jpg", cfg.ImageExtension)
	assert.Equal(t, 2, cfg.RectThickness)
	assert.Equal(t, 30, cfg.TickMs)
}

func TestValidateRejectsBadKeyBinding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NextKey = "next"
	assert.Error(t, cfg.Validate())
}

func TestColorParsing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RectColor = "#FF8000"
	assert.Equal(t, color.RGBA{R: 255, G: 128, A: 255}, cfg.Color())

	cfg.RectColor = "chartreuse"
	assert.Equal(t, color.RGBA{G: 255, A: 255}, cfg.Color(), "malformed colors fall back to green")
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.RectColor = "#FF0000"
	cfg.RectThickness = 4
	cfg.ImageExtension = ".png"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
