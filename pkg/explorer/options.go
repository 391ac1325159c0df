// Package explorer analyzes Excel workbooks: structure, data quality,
// formulas, visuals, security posture, and cross-sheet relationships.
// Each analysis module runs in isolation; one module failing degrades
// the report instead of aborting the run.
package explorer

import (
	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

// Options configures an analysis run.
type Options struct {
	// SampleRows is the base row window for data profiling. Large sheets
	// shrink it further. Zero means 100.
	SampleRows int
	// StreamRows caps the coarse streaming pass over rows beyond the
	// sample window. Zero means 1000.
	StreamRows int
	// MaxFormulaCheck bounds how many cells the formula and dependency
	// analyses examine per sheet. Zero means 1000.
	MaxFormulaCheck int
	// CrossSheet enables the dependency and relationship analyses.
	// If nil, defaults to true.
	CrossSheet *bool
	// Logger receives run diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
	// OnModule, when set, is called after each module finishes, giving
	// callers coarse progress reporting.
	OnModule func(models.ModuleExecution)
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{}
}

// EffectiveSampleRows returns the sample window with defaults applied.
func (o Options) EffectiveSampleRows() int {
	if o.SampleRows > 0 {
		return o.SampleRows
	}
	return 100
}

// EffectiveStreamRows returns the streaming cap with defaults applied.
func (o Options) EffectiveStreamRows() int {
	if o.StreamRows > 0 {
		return o.StreamRows
	}
	return 1000
}

// EffectiveMaxFormulaCheck returns the formula budget with defaults
// applied.
func (o Options) EffectiveMaxFormulaCheck() int {
	if o.MaxFormulaCheck > 0 {
		return o.MaxFormulaCheck
	}
	return 1000
}

// ShouldAnalyzeCrossSheet returns whether the cross-sheet modules run.
func (o Options) ShouldAnalyzeCrossSheet() bool {
	if o.CrossSheet != nil {
		return *o.CrossSheet
	}
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
