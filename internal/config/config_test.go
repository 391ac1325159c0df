package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Analysis.SampleRows)
	assert.Equal(t, 1000, cfg.Analysis.StreamRows)
	assert.Equal(t, 1000, cfg.Analysis.MaxFormulaCheck)
	assert.True(t, cfg.Analysis.EnableCrossSheet)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
analysis:
  sample_rows: 50
  max_formula_check: 200
  enable_cross_sheet_analysis: false
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Analysis.SampleRows)
	assert.Equal(t, 200, cfg.Analysis.MaxFormulaCheck)
	assert.False(t, cfg.Analysis.EnableCrossSheet)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
