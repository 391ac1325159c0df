// Package formula analyzes workbook formulas: complexity scoring,
// function usage, external-reference and circular-reference heuristics,
// and an overall recalculation impact assessment.
package formula

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

const (
	// complexThreshold marks a formula as complex.
	complexThreshold = 0.7
	// maxComplexRetained caps the complex-formula listing.
	maxComplexRetained = 10
	// formulaExcerptLen truncates retained formula text.
	formulaExcerptLen = 100
)

// functionPattern matches worksheet function names directly before an
// opening parenthesis.
var functionPattern = regexp.MustCompile(`([A-Z]+(?:[A-Z0-9_]*[A-Z0-9])?)\s*\(`)

// heavyFunctions are volatile or scan-heavy functions that dominate
// recalculation cost.
var heavyFunctions = []string{"SUMPRODUCT", "INDIRECT", "OFFSET", "EVALUATE", "VLOOKUP", "INDEX"}

// Analyzer walks cell formulas sheet by sheet. Each sheet contributes at
// most maxCheck examined cells, so one dense sheet cannot starve the
// rest of the workbook.
type Analyzer struct {
	maxCheck int
	log      *zap.Logger
}

// NewAnalyzer returns an Analyzer that examines at most maxCheck cells
// per sheet. Non-positive means 1000.
func NewAnalyzer(maxCheck int, log *zap.Logger) *Analyzer {
	if maxCheck <= 0 {
		maxCheck = 1000
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{maxCheck: maxCheck, log: log}
}

// Analyze builds the formula report for the workbook.
func (a *Analyzer) Analyze(view *workbook.View) (models.FormulaReport, error) {
	report := models.FormulaReport{
		FunctionUsage:      make(map[string]int),
		CircularReferences: []models.CircularCandidate{},
		ComplexFormulas:    []models.ComplexFormula{},
		SheetStatistics:    make(map[string]models.SheetFormulaStats),
	}

	var complexScoreSum float64
	complexCount := 0

	for _, sheet := range view.Sheets() {
		count := 0
		var sheetScore float64

		err := sheet.Cells(a.maxCheck, func(cell workbook.Cell) bool {
			if cell.Formula == "" {
				return true
			}
			count++

			score, issues := Complexity(cell.Formula)
			sheetScore += score

			if score > complexThreshold {
				complexCount++
				complexScoreSum += score
				if len(report.ComplexFormulas) < maxComplexRetained {
					report.ComplexFormulas = append(report.ComplexFormulas, models.ComplexFormula{
						Sheet:           sheet.Name,
						Cell:            cell.Coord,
						Formula:         excerpt(cell.Formula),
						ComplexityScore: score,
						Issues:          issues,
					})
				}
			}
			for _, fn := range Functions(cell.Formula) {
				report.FunctionUsage[fn]++
			}
			if strings.Contains(cell.Formula, "[") && strings.Contains(cell.Formula, "]") {
				report.HasExternalRefs = true
			}
			if strings.Contains(strings.ToUpper(cell.Formula), cell.Coord) {
				report.CircularReferences = append(report.CircularReferences, models.CircularCandidate{
					Sheet:   sheet.Name,
					Cell:    cell.Coord,
					Formula: excerpt(cell.Formula),
				})
			}
			return true
		})
		if err != nil {
			return models.FormulaReport{}, err
		}

		if count > 0 {
			stats := models.SheetFormulaStats{
				FormulaCount:      count,
				AverageComplexity: sheetScore / float64(count),
			}
			if cells := sheet.MaxRow * sheet.MaxCol; cells > 0 {
				stats.FormulaDensity = float64(count) / float64(cells)
			}
			report.SheetStatistics[sheet.Name] = stats
		}
		report.TotalFormulas += count
	}

	// Aggregate score: the complex-formula share times their mean score.
	if report.TotalFormulas > 0 && complexCount > 0 {
		ratio := float64(complexCount) / float64(report.TotalFormulas)
		report.ComplexityScore = ratio * (complexScoreSum / float64(complexCount))
	}
	report.FunctionDiversity = len(report.FunctionUsage)
	report.PerformanceImpact = performanceImpact(report, complexCount)

	a.log.Debug("formulas analyzed",
		zap.Int("total", report.TotalFormulas),
		zap.Int("complex", len(report.ComplexFormulas)),
		zap.Int("functions", report.FunctionDiversity))
	return report, nil
}

// Complexity scores one formula in [0,1] and names the factors that
// contributed.
func Complexity(formula string) (float64, []string) {
	score := 0.0
	var issues []string

	switch n := len(formula); {
	case n > 100:
		score += 0.3
		issues = append(issues, "very long formula")
	case n > 50:
		score += 0.1
		issues = append(issues, "long formula")
	}

	switch parens := strings.Count(formula, "("); {
	case parens > 5:
		score += 0.4
		issues = append(issues, "deeply nested")
	case parens > 3:
		score += 0.2
		issues = append(issues, "nested")
	}

	switch funcs := len(Functions(formula)); {
	case funcs > 5:
		score += 0.3
		issues = append(issues, "many distinct functions")
	case funcs > 3:
		score += 0.1
		issues = append(issues, "several distinct functions")
	}

	if strings.Contains(formula, "{") {
		score += 0.4
		issues = append(issues, "array formula")
	}
	if strings.Count(formula, "!") > 2 {
		score += 0.2
		issues = append(issues, "multiple sheet references")
	}
	for _, fn := range heavyFunctions {
		if strings.Contains(formula, fn) {
			score += 0.2
			issues = append(issues, "expensive function: "+fn)
			break
		}
	}

	if score > 1 {
		score = 1
	}
	return score, issues
}

// Functions extracts the distinct worksheet function names used in a
// formula, in first-occurrence order. Single-letter matches are dropped
// to avoid cell references.
func Functions(formula string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range functionPattern.FindAllStringSubmatch(formula, -1) {
		name := m[1]
		if len(name) <= 1 {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// performanceImpact assesses recalculation cost from the aggregate
// formula figures. complexCount is the uncapped count of formulas above
// the complexity threshold.
func performanceImpact(report models.FormulaReport, complexCount int) models.PerformanceImpact {
	impact := models.PerformanceImpact{Recommendations: []string{}}

	if report.TotalFormulas > 1000 {
		impact.ImpactScore += 0.3
		impact.Recommendations = append(impact.Recommendations,
			"High formula count may slow recalculation; consider converting static results to values")
	}
	if report.TotalFormulas > 0 &&
		float64(complexCount) > float64(report.TotalFormulas)*0.1 {
		impact.ImpactScore += 0.4
		impact.Recommendations = append(impact.Recommendations,
			"Many complex formulas detected; consider splitting them into helper columns")
	}
	if report.HasExternalRefs {
		impact.ImpactScore += 0.3
		impact.Recommendations = append(impact.Recommendations,
			"External workbook references slow opening and recalculation")
	}

	switch {
	case impact.ImpactScore > 0.7:
		impact.ImpactLevel = "High"
	case impact.ImpactScore > 0.4:
		impact.ImpactLevel = "Medium"
	default:
		impact.ImpactLevel = "Low"
	}
	return impact
}

func excerpt(formula string) string {
	if len(formula) <= formulaExcerptLen {
		return formula
	}
	return formula[:formulaExcerptLen]
}
