package explorer

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/engine"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// Analyze runs the full module pipeline over the workbook at path and
// returns the compiled report. Only an unreadable file fails the call;
// individual module failures degrade the report instead.
func Analyze(path string, opts Options) (*models.Report, error) {
	log := opts.logger()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	view, err := workbook.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer view.Close()

	facts, err := workbook.InspectArchive(path)
	if err != nil {
		log.Warn("archive inspection failed, structural facts unavailable",
			zap.String("path", path), zap.Error(err))
		facts = nil
	}

	eng := engine.New(engine.Config{
		SampleRows:      opts.EffectiveSampleRows(),
		StreamRows:      opts.EffectiveStreamRows(),
		MaxFormulaCheck: opts.EffectiveMaxFormulaCheck(),
		CrossSheet:      opts.ShouldAnalyzeCrossSheet(),
		OnModule:        opts.OnModule,
	}, log)

	report := eng.Run(view, facts)
	return &report, nil
}
