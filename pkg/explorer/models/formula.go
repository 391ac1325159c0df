package models

// ComplexFormula is one retained high-complexity formula excerpt.
type ComplexFormula struct {
	Sheet string `json:"sheet"`
	Cell  string `json:"cell"`
	// Formula is truncated to 100 characters for display.
	Formula         string   `json:"formula"`
	ComplexityScore float64  `json:"complexity_score"`
	Issues          []string `json:"issues"`
}

// CircularCandidate is a cell whose formula text contains its own
// coordinate. This is a textual heuristic, not a reference-graph solve;
// multi-hop cycles are not detected.
type CircularCandidate struct {
	Sheet   string `json:"sheet"`
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
}

// SheetFormulaStats holds per-sheet formula aggregates.
type SheetFormulaStats struct {
	FormulaCount      int     `json:"formula_count"`
	AverageComplexity float64 `json:"average_complexity"`
	FormulaDensity    float64 `json:"formula_density"`
}

// PerformanceImpact assesses the recalculation cost of the formula set.
type PerformanceImpact struct {
	ImpactScore     float64  `json:"impact_score"`
	ImpactLevel     string   `json:"impact_level"`
	Recommendations []string `json:"recommendations"`
}

// FormulaReport is the formula_analyzer module output.
type FormulaReport struct {
	TotalFormulas int `json:"total_formulas"`
	// ComplexFormulas lists up to 10 formulas scoring above 0.7, in
	// encounter order.
	ComplexFormulas    []ComplexFormula             `json:"complex_formulas"`
	HasExternalRefs    bool                         `json:"has_external_refs"`
	CircularReferences []CircularCandidate          `json:"circular_references"`
	ComplexityScore    float64                      `json:"formula_complexity_score"`
	FunctionUsage      map[string]int               `json:"function_usage"`
	FunctionDiversity  int                          `json:"function_diversity"`
	SheetStatistics    map[string]SheetFormulaStats `json:"sheet_statistics"`
	PerformanceImpact  PerformanceImpact            `json:"performance_impact"`
}

// VisualReport is the visual_cataloger module output.
type VisualReport struct {
	TotalCharts                int     `json:"total_charts"`
	TotalImages                int     `json:"total_images"`
	ConditionalFormattingRules int     `json:"conditional_formatting_rules"`
	HasVisualContent           bool    `json:"has_visual_content"`
	ComplexityScore            float64 `json:"visual_complexity_score"`
}
