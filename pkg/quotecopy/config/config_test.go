package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, EngineAuto, cfg.Export.Engine)
	assert.Equal(t, "F35", cfg.Layout.TotalCell)
	assert.True(t, cfg.Assets.Fallback)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg, info, err := LoadWithInfo(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.False(t, info.Found)
	assert.Equal(t, filepath.Join(dir, "config.json"), cfg.Numbering.Path)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := `
[numbering]
path = "state/numbers.json"

[layout]
label_cell = "A4"
item_count = 10

[export]
engine = "native"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, info, err := LoadWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.Equal(t, filepath.Join(dir, "state", "numbers.json"), cfg.Numbering.Path)
	assert.Equal(t, "A4", cfg.Layout.LabelCell)
	assert.Equal(t, 10, cfg.Layout.ItemCount)
	assert.Equal(t, "F35", cfg.Layout.TotalCell, "unset keys keep their defaults")
	assert.Equal(t, EngineNative, cfg.Export.Engine)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvExportEngine, EngineNone)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvNumberingPath, "/var/lib/quotecopy/next.json")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, EngineNone, cfg.Export.Engine)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/quotecopy/next.json", cfg.Numbering.Path)
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[layout\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Numbering.Path = "/tmp/n.json"
	cfg.Layout.FixedCells[2] = "C8"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Layout, got.Layout)
	assert.Equal(t, cfg.Assets.Extensions, got.Assets.Extensions)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AppConfig)
	}{
		{"bad label cell", func(c *AppConfig) { c.Layout.LabelCell = "5A" }},
		{"bad fixed cell", func(c *AppConfig) { c.Layout.FixedCells[1] = "" }},
		{"bad column", func(c *AppConfig) { c.Layout.ItemColumns[3] = "1" }},
		{"no items", func(c *AppConfig) { c.Layout.ItemCount = 0 }},
		{"bad print area", func(c *AppConfig) { c.Layout.PrintArea = "A1" }},
		{"unknown engine", func(c *AppConfig) { c.Export.Engine = "win32" }},
		{"zero timeout", func(c *AppConfig) { c.Export.TimeoutSeconds = 0 }},
		{"no numbering path", func(c *AppConfig) { c.Numbering.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
