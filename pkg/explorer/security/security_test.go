package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

func protectedStructure() models.StructureReport {
	return models.StructureReport{
		Protection: models.ProtectionInfo{WorkbookProtected: true},
	}
}

func dataWithSamples(values ...string) models.DataReport {
	return models.DataReport{Sheets: map[string]models.SheetProfile{
		"Sheet1": {Columns: []models.ColumnProfile{{SampleValues: values}}},
	}}
}

func TestInspectCleanWorkbook(t *testing.T) {
	i := NewInspector(nil)
	report, err := i.Inspect(protectedStructure(), models.DataReport{}, models.FormulaReport{}, 1)
	require.NoError(t, err)

	assert.Equal(t, 10.0, report.Score)
	assert.Equal(t, "Low", report.RiskLevel)
	assert.Empty(t, report.Threats)
}

func TestInspectMacroAndUnprotected(t *testing.T) {
	structure := models.StructureReport{}
	structure.Features.HasMacros = true

	i := NewInspector(nil)
	report, err := i.Inspect(structure, models.DataReport{}, models.FormulaReport{}, 1)
	require.NoError(t, err)

	// 10 - 3 (macros) - 1 (no protection) = 6.0, the Medium floor.
	assert.Equal(t, 6.0, report.Score)
	assert.Equal(t, "Medium", report.RiskLevel)
	assert.Len(t, report.Threats, 2)
}

func TestInspectEverythingFires(t *testing.T) {
	structure := models.StructureReport{}
	structure.Features.HasMacros = true
	formulas := models.FormulaReport{HasExternalRefs: true}
	data := dataWithSamples("123-45-6789")

	i := NewInspector(nil)
	report, err := i.Inspect(structure, data, formulas, 100)
	require.NoError(t, err)

	assert.Equal(t, 2.0, report.Score)
	assert.Equal(t, "High", report.RiskLevel)
	assert.NotEmpty(t, report.Recommendations)
}

func TestInspectScoreClampedAtZero(t *testing.T) {
	i := NewInspector(nil)
	structure := models.StructureReport{}
	structure.Features.HasMacros = true

	report, err := i.Inspect(structure, dataWithSamples("123-45-6789", "a@b.com"),
		models.FormulaReport{HasExternalRefs: true}, 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Score, 0.0)
}

func TestScanSamplesSSN(t *testing.T) {
	matches := ScanSamples(dataWithSamples("123-45-6789", "hello"))
	assert.True(t, matches.Found)
	assert.Equal(t, 1, matches.Counts["ssn"])
	assert.InDelta(t, 3.0, matches.RiskScore, 1e-9)
}

func TestScanSamplesFamilyCap(t *testing.T) {
	matches := ScanSamples(dataWithSamples(
		"123-45-6789", "234-56-7890", "345-67-8901", "456-78-9012"))
	assert.Equal(t, 4, matches.Counts["ssn"])
	// 4 x 3.0 would be 12; each family contributes at most 5.0.
	assert.InDelta(t, 5.0, matches.RiskScore, 1e-9)
}

func TestScanSamplesEmail(t *testing.T) {
	matches := ScanSamples(dataWithSamples("contact: john@example.com"))
	assert.Equal(t, 1, matches.Counts["email"])
}

func TestScanSamplesNothing(t *testing.T) {
	matches := ScanSamples(dataWithSamples("plain text", "42"))
	assert.False(t, matches.Found)
	assert.Empty(t, matches.Counts)
	assert.Equal(t, 0.0, matches.RiskScore)
}
