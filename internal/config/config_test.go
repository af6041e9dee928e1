package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	// The engine scoring constants are design-fixed.
	assert.Equal(t, 0.95, cfg.Normalization.EquipmentPriorityBase)
	assert.Equal(t, 0.85, cfg.Normalization.VendorPriorityBase)
	assert.Equal(t, 0.70, cfg.Normalization.ManualReviewThreshold)
	assert.Equal(t, 0.40, cfg.Matching.PatternWeight)
	assert.Equal(t, 0.95, cfg.AutoMap.ExactThreshold)
	assert.Equal(t, 0.60, cfg.AutoMap.SuggestedThreshold)
	assert.Equal(t, 0.70, cfg.Application.DefaultConfidence)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\nstorage:\n  database_path: /tmp/x.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DatabasePath)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.70, cfg.Matching.ConfidenceThreshold)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bacmap", cfg.Name)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.PatternWeight = 0.9
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.AutoMap.SuggestedThreshold = 0.96
	assert.Error(t, cfg.Validate())
}
