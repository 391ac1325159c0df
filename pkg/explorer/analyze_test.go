package explorer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestAnalyzeInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := Analyze(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "A2", "alpha")
	f.SetCellValue("Sheet1", "A3", "beta")
	require.NoError(t, f.SetCellFormula("Sheet1", "B2", "LEN(A2)"))
	path := filepath.Join(t.TempDir(), "wb.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	report, err := Analyze(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "wb.xlsx", report.FileInfo.Name)
	assert.Equal(t, "xlsx", report.FileInfo.Format)
	assert.Greater(t, report.FileInfo.SizeBytes, int64(0))
	assert.Equal(t, 1, report.Structure.TotalSheets)
	assert.Equal(t, 1, report.Formulas.TotalFormulas)
	assert.Equal(t, 1.0, report.Execution.SuccessRate)
	assert.NotEmpty(t, report.Metadata.RunID)
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 100, opts.EffectiveSampleRows())
	assert.Equal(t, 1000, opts.EffectiveStreamRows())
	assert.Equal(t, 1000, opts.EffectiveMaxFormulaCheck())
	assert.True(t, opts.ShouldAnalyzeCrossSheet())

	off := false
	opts.CrossSheet = &off
	opts.SampleRows = 25
	assert.Equal(t, 25, opts.EffectiveSampleRows())
	assert.False(t, opts.ShouldAnalyzeCrossSheet())
}
