package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService()

	want := &Config{
		Version:   1,
		OutputDir: "/tmp/snaps",
		Sampling:  Sampling{SpacingSeconds: 12},
		UISettings: UISettings{PageSize: 20},
	}
	require.NoError(t, svc.SaveToPath(want, path))

	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadAppliesDefaultsToSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir = \"/tmp/snaps\"\n"), 0644))

	svc := NewConfigService()
	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	require.Equal(t, "/tmp/snaps", got.OutputDir)
	require.Equal(t, 5, got.Sampling.SpacingSeconds)
	require.Equal(t, 10, got.UISettings.PageSize)
}

func TestLoadFromPathRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("= not toml ="), 0644))

	svc := NewConfigService()
	_, err := svc.LoadFromPath(path)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1, cfg.Version)
	require.NotEmpty(t, cfg.OutputDir)
	require.Equal(t, 5, cfg.Sampling.SpacingSeconds)
	require.Equal(t, 10, cfg.UISettings.PageSize)
}
