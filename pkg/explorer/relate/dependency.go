// Package relate derives cross-sheet structure: the formula dependency
// matrix and header-based relationship proposals. Both analyses are
// skippable for very large workbooks.
package relate

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// sheetRefPattern matches sheet names before a "!" in formula text,
// quoted or bare.
var sheetRefPattern = regexp.MustCompile(`'?([A-Za-z0-9 _]+)'?!`)

// DependencyMapper builds the sheet-to-sheet formula reference matrix.
type DependencyMapper struct {
	maxCheck int
	log      *zap.Logger
}

func NewDependencyMapper(maxCheck int, log *zap.Logger) *DependencyMapper {
	if maxCheck <= 0 {
		maxCheck = 1000
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DependencyMapper{maxCheck: maxCheck, log: log}
}

// Map counts formula references from each sheet to every other sheet,
// examining at most maxCheck cells per sheet. Circularity is flagged
// when any two sheets reference each other.
func (m *DependencyMapper) Map(view *workbook.View) (models.DependencyReport, error) {
	report := models.DependencyReport{Matrix: make(map[string]map[string]int)}

	known := make(map[string]struct{})
	for _, sheet := range view.Sheets() {
		known[sheet.Name] = struct{}{}
	}

	for _, sheet := range view.Sheets() {
		err := sheet.Cells(m.maxCheck, func(cell workbook.Cell) bool {
			if cell.Formula == "" {
				return true
			}
			for _, match := range sheetRefPattern.FindAllStringSubmatch(cell.Formula, -1) {
				target := strings.TrimSpace(match[1])
				if target == sheet.Name {
					continue
				}
				if _, ok := known[target]; !ok {
					continue
				}
				if report.Matrix[sheet.Name] == nil {
					report.Matrix[sheet.Name] = make(map[string]int)
				}
				report.Matrix[sheet.Name][target]++
			}
			return true
		})
		if err != nil {
			return models.DependencyReport{}, err
		}
	}

	report.HasCircular = hasCircular(report.Matrix)
	m.log.Debug("dependencies mapped",
		zap.Int("referencing_sheets", len(report.Matrix)),
		zap.Bool("circular", report.HasCircular))
	return report, nil
}

// hasCircular reports whether any sheet pair references each other.
func hasCircular(matrix map[string]map[string]int) bool {
	for src, targets := range matrix {
		for target := range targets {
			if back, ok := matrix[target]; ok {
				if _, ok := back[src]; ok {
					return true
				}
			}
		}
	}
	return false
}
