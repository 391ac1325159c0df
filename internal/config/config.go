// Package config loads analyzer settings from a YAML file and the
// environment. Environment variables override file values.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// AnalysisConfig tunes the sampling and budget knobs of a run.
type AnalysisConfig struct {
	SampleRows       int  `yaml:"sample_rows" env:"EXPLORER_SAMPLE_ROWS" env-default:"100"`
	StreamRows       int  `yaml:"stream_rows" env:"EXPLORER_STREAM_ROWS" env-default:"1000"`
	MaxFormulaCheck  int  `yaml:"max_formula_check" env:"EXPLORER_MAX_FORMULA_CHECK" env-default:"1000"`
	// EnableCrossSheet defaults to true; the default is applied in Load
	// so an explicit false in the file is preserved.
	EnableCrossSheet bool `yaml:"enable_cross_sheet_analysis" env:"EXPLORER_CROSS_SHEET"`
}

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"EXPLORER_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"EXPLORER_LOG_FORMAT" env-default:"console"`
}

// Config is the full application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads configuration from path when given, otherwise from the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config
	cfg.Analysis.EnableCrossSheet = true
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}
