package formula

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

func TestFunctionsExtraction(t *testing.T) {
	fns := Functions("=SUM(A1:A5)+VLOOKUP(B1,Data!A:B,2,FALSE)+SUM(C1:C5)")
	assert.Equal(t, []string{"SUM", "VLOOKUP"}, fns)
}

func TestFunctionsFiltersSingleLetters(t *testing.T) {
	// N( looks like a function call but single letters are cell-ref noise.
	fns := Functions("=N(A1)+IF(B1,1,0)")
	assert.Equal(t, []string{"IF"}, fns)
}

func TestComplexitySimpleFormula(t *testing.T) {
	score, issues := Complexity("=A1+B1")
	assert.Equal(t, 0.0, score)
	assert.Empty(t, issues)
}

func TestComplexityHeavyFormula(t *testing.T) {
	formula := "=SUMPRODUCT((Data!A:A=B2)*(Data!B:B=C2)*(Data!C:C))+IF(AND(D2>0,E2>0),VLOOKUP(F2,Lookup!A:B,2,FALSE),OFFSET(G2,1,1))"
	score, issues := Complexity(formula)
	assert.Equal(t, 1.0, score)
	assert.NotEmpty(t, issues)
}

func TestComplexityArrayFormula(t *testing.T) {
	score, issues := Complexity("={1,2,3}")
	assert.InDelta(t, 0.4, score, 1e-9)
	assert.Contains(t, issues, "array formula")
}

func TestAnalyzeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 10)
	f.SetCellValue("Sheet1", "A2", 20)
	require.NoError(t, f.SetCellFormula("Sheet1", "B1", "SUM(A1:A2)"))
	require.NoError(t, f.SetCellFormula("Sheet1", "B2", "A1*2"))
	view := workbook.Wrap(f, "")

	a := NewAnalyzer(1000, nil)
	report, err := a.Analyze(view)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFormulas)
	assert.Equal(t, 1, report.FunctionUsage["SUM"])
	assert.Equal(t, 1, report.FunctionDiversity)
	assert.False(t, report.HasExternalRefs)
	assert.Empty(t, report.CircularReferences)

	stats, ok := report.SheetStatistics["Sheet1"]
	require.True(t, ok)
	assert.Equal(t, 2, stats.FormulaCount)
}

func TestAnalyzeExternalAndCircular(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellFormula("Sheet1", "A1", "A1+1"))
	require.NoError(t, f.SetCellFormula("Sheet1", "B1", "[Book2.xlsx]Sheet1!A1"))
	view := workbook.Wrap(f, "")

	a := NewAnalyzer(1000, nil)
	report, err := a.Analyze(view)
	require.NoError(t, err)

	assert.True(t, report.HasExternalRefs)
	require.Len(t, report.CircularReferences, 1)
	assert.Equal(t, "A1", report.CircularReferences[0].Cell)
}

func TestAnalyzeRespectsBudget(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellFormula("Sheet1", "A1", "1+1"))
	require.NoError(t, f.SetCellFormula("Sheet1", "A2", "2+2"))
	require.NoError(t, f.SetCellFormula("Sheet1", "A3", "3+3"))
	view := workbook.Wrap(f, "")

	a := NewAnalyzer(2, nil)
	report, err := a.Analyze(view)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalFormulas)
}

func TestAnalyzeBudgetCountsExaminedCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for col := 'A'; col <= 'J'; col++ {
		f.SetCellValue("Sheet1", fmt.Sprintf("%c1", col), 1)
	}
	require.NoError(t, f.SetCellFormula("Sheet1", "K1", "A1+B1"))
	view := workbook.Wrap(f, "")

	// The scan stops after 5 examined cells, before reaching the formula.
	a := NewAnalyzer(5, nil)
	report, err := a.Analyze(view)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalFormulas)
}

func TestAnalyzeBudgetIsPerSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellFormula("Sheet1", "A1", "1+1"))
	require.NoError(t, f.SetCellFormula("Sheet1", "A2", "2+2"))
	require.NoError(t, f.SetCellFormula("Sheet1", "A3", "3+3"))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellFormula("Other", "A1", "4+4"))
	view := workbook.Wrap(f, "")

	// A dense first sheet exhausts its own budget without starving the
	// second sheet.
	a := NewAnalyzer(2, nil)
	report, err := a.Analyze(view)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalFormulas)
	assert.Equal(t, 2, report.SheetStatistics["Sheet1"].FormulaCount)
	assert.Equal(t, 1, report.SheetStatistics["Other"].FormulaCount)
}

func TestPerformanceImpactLevels(t *testing.T) {
	low := performanceImpact(models.FormulaReport{TotalFormulas: 10}, 0)
	assert.Equal(t, "Low", low.ImpactLevel)
	assert.Equal(t, 0.0, low.ImpactScore)

	medium := performanceImpact(models.FormulaReport{
		TotalFormulas:   2000,
		HasExternalRefs: true,
	}, 0)
	assert.Equal(t, "Medium", medium.ImpactLevel)
	assert.InDelta(t, 0.6, medium.ImpactScore, 1e-9)

	high := performanceImpact(models.FormulaReport{
		TotalFormulas:   2000,
		HasExternalRefs: true,
	}, 300)
	assert.Equal(t, "High", high.ImpactLevel)
	assert.InDelta(t, 1.0, high.ImpactScore, 1e-9)
}
