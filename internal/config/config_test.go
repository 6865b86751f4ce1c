package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PILOT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "62", cfg.UI.AccentColor)
	require.InDelta(t, 0.5, cfg.UI.SheetDetent, 1e-9)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[ui]\naccent_color = \"205\"\nsheet_detent = 0.8\n\n[log]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("PILOT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "205", cfg.UI.AccentColor)
	require.InDelta(t, 0.8, cfg.UI.SheetDetent, 1e-9)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadDetent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nsheet_detent = 1.7\n"), 0o644))
	t.Setenv("PILOT_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PILOT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PILOT_LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
}
