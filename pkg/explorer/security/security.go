// Package security scores workbook exposure: macros, external
// references, sensitive-data patterns, and missing protection.
package security

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

// Deduction weights applied to the 10.0 baseline score.
const (
	macroDeduction       = 3.0
	externalRefDeduction = 2.0
	patternDeduction     = 1.5
	noProtectionDeduct   = 1.0
	largeFileDeduction   = 0.5
	largeFileMB          = 50.0
)

// Risk tier thresholds on the final score.
const (
	lowRiskFloor    = 8.0
	mediumRiskFloor = 6.0
)

// patternFamilyCap bounds each family's contribution to the risk score.
const patternFamilyCap = 5.0

// patternFamily is one sensitive-data detector.
type patternFamily struct {
	name   string
	weight float64
	re     *regexp.Regexp
}

var patternFamilies = []patternFamily{
	{"ssn", 3.0, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"credit_cards", 3.0, regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`)},
	{"account_numbers", 2.0, regexp.MustCompile(`\b\d{8,12}\b`)},
	{"email", 1.0, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"phone", 1.0, regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"financial_amounts", 0.5, regexp.MustCompile(`\$[\d,]+\.?\d*`)},
}

// Inspector evaluates workbook security from already-computed module
// outputs. It never re-reads cells.
type Inspector struct {
	log *zap.Logger
}

func NewInspector(log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{log: log}
}

// Inspect scores the workbook. fileSizeMB may be zero when the size is
// unknown.
func (i *Inspector) Inspect(structure models.StructureReport, data models.DataReport, formulas models.FormulaReport, fileSizeMB float64) (models.SecurityReport, error) {
	report := models.SecurityReport{
		Score:           10.0,
		Threats:         []string{},
		Recommendations: []string{},
		Patterns:        ScanSamples(data),
	}

	if structure.Features.HasMacros {
		report.Score -= macroDeduction
		report.Threats = append(report.Threats, "Workbook contains VBA macros")
		report.Recommendations = append(report.Recommendations,
			"Review macro code before enabling content")
	}
	if formulas.HasExternalRefs {
		report.Score -= externalRefDeduction
		report.Threats = append(report.Threats, "Formulas reference external workbooks")
		report.Recommendations = append(report.Recommendations,
			"Verify external workbook sources are trusted")
	}
	if report.Patterns.Found {
		report.Score -= patternDeduction
		report.Threats = append(report.Threats, "Sensitive data patterns detected in cell values")
		report.Recommendations = append(report.Recommendations,
			"Remove or mask sensitive data before sharing")
	}
	if !structure.Protection.WorkbookProtected && len(structure.Protection.ProtectedSheets) == 0 {
		report.Score -= noProtectionDeduct
		report.Threats = append(report.Threats, "No workbook or sheet protection")
		report.Recommendations = append(report.Recommendations,
			"Protect sheets that should not be edited")
	}
	if fileSizeMB > largeFileMB {
		report.Score -= largeFileDeduction
		report.Threats = append(report.Threats, "Unusually large file size")
	}

	if report.Score < 0 {
		report.Score = 0
	}
	report.RiskLevel = riskLevel(report.Score)

	i.log.Debug("security inspected",
		zap.Float64("score", report.Score),
		zap.String("risk_level", report.RiskLevel),
		zap.Int("threats", len(report.Threats)))
	return report, nil
}

// ScanSamples runs the pattern families over the sample values the data
// profiler retained.
func ScanSamples(data models.DataReport) models.PatternMatches {
	matches := models.PatternMatches{Counts: make(map[string]int)}

	for _, family := range patternFamilies {
		count := 0
		for _, sheet := range data.Sheets {
			for _, col := range sheet.Columns {
				for _, value := range col.SampleValues {
					count += len(family.re.FindAllString(value, -1))
				}
			}
		}
		if count == 0 {
			continue
		}
		matches.Found = true
		matches.Counts[family.name] = count
		contribution := float64(count) * family.weight
		if contribution > patternFamilyCap {
			contribution = patternFamilyCap
		}
		matches.RiskScore += contribution
	}
	return matches
}

func riskLevel(score float64) string {
	switch {
	case score >= lowRiskFloor:
		return "Low"
	case score >= mediumRiskFloor:
		return "Medium"
	default:
		return "High"
	}
}
