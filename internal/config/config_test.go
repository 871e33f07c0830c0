package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PFENNIG_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, PolicyLenient, cfg.Learning.Policy)
	require.True(t, cfg.Ingest.Preassign)
	require.NotEmpty(t, cfg.Database.Path)
	require.NotEmpty(t, cfg.Database.MigrationsPath)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("PFENNIG_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PFENNIG_LEARNING_POLICY", "yolo")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "learning.policy")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("PFENNIG_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/p.db", MigrationsPath: "/tmp/migrations"},
		Learning: LearningConfig{Policy: PolicyStrict},
		Ingest:   IngestConfig{Preassign: false},
	}
	require.NoError(t, Save(want))

	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
