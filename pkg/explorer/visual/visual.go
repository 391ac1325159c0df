// Package visual catalogs charts, images, and conditional formatting.
package visual

import (
	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// Cataloger counts the workbook's visual elements.
type Cataloger struct {
	log *zap.Logger
}

func NewCataloger(log *zap.Logger) *Cataloger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cataloger{log: log}
}

// Catalog counts charts, embedded images, and conditional formatting
// rules. Chart counts come from archive facts and read as zero when
// facts are nil.
func (c *Cataloger) Catalog(view *workbook.View, facts *workbook.ArchiveFacts) (models.VisualReport, error) {
	var report models.VisualReport

	for _, sheet := range view.Sheets() {
		report.TotalImages += sheet.PictureCount()
		report.ConditionalFormattingRules += sheet.ConditionalFormattingCount()
	}
	if facts != nil {
		for _, n := range facts.Charts {
			report.TotalCharts += n
		}
	}

	report.HasVisualContent = report.TotalCharts > 0 || report.TotalImages > 0 ||
		report.ConditionalFormattingRules > 0
	report.ComplexityScore = visualComplexity(report)

	c.log.Debug("visuals cataloged",
		zap.Int("charts", report.TotalCharts),
		zap.Int("images", report.TotalImages),
		zap.Int("conditional_rules", report.ConditionalFormattingRules))
	return report, nil
}

// visualComplexity is the element count scaled to [0,1], saturating at
// ten elements.
func visualComplexity(report models.VisualReport) float64 {
	n := report.TotalCharts + report.TotalImages + report.ConditionalFormattingRules
	score := float64(n) / 10
	if score > 1 {
		score = 1
	}
	return score
}
