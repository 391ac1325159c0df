package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

func TestMapSheetInventory(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Hidden")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetVisible("Hidden", false))
	f.SetCellValue("Sheet1", "A1", "x")
	view := workbook.Wrap(f, "")

	m := NewMapper(nil)
	report, err := m.Map(view, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalSheets)
	assert.Equal(t, []string{"Sheet1"}, report.VisibleSheets)
	assert.Equal(t, []string{"Hidden"}, report.HiddenSheets)
	assert.True(t, report.HasHiddenContent)
	require.Len(t, report.SheetDetails, 2)
	assert.Equal(t, "visible", report.SheetDetails[0].State)
	assert.Equal(t, "hidden", report.SheetDetails[1].State)
}

func TestMapNamedRanges(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "MyRange",
		RefersTo: "Sheet1!$A$1:$B$2",
	}))
	view := workbook.Wrap(f, "")

	m := NewMapper(nil)
	report, err := m.Map(view, nil)
	require.NoError(t, err)

	require.Equal(t, 1, report.NamedRangeCount)
	assert.Equal(t, "MyRange", report.NamedRanges[0].Name)
	assert.Equal(t, "Workbook", report.NamedRanges[0].Scope)
}

func TestMapArchiveFacts(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	view := workbook.Wrap(f, "")

	facts := &workbook.ArchiveFacts{
		HasMacros:         true,
		WorkbookProtected: true,
		Hyperlinks:        map[string]int{"Sheet1": 3},
		Charts:            map[string]int{"Sheet1": 2},
		Protection: map[string]workbook.SheetProtectionFacts{
			"Sheet1": {Protected: true, Password: true},
		},
	}

	m := NewMapper(nil)
	report, err := m.Map(view, facts)
	require.NoError(t, err)

	assert.True(t, report.Features.HasMacros)
	assert.Equal(t, 3, report.Features.Hyperlinks)
	assert.Equal(t, 2, report.Features.Charts)
	assert.True(t, report.Protection.WorkbookProtected)
	require.Len(t, report.Protection.ProtectedSheets, 1)
	assert.True(t, report.Protection.ProtectedSheets[0].Password)
}

func TestSizeClass(t *testing.T) {
	assert.Equal(t, "Empty", sizeClass(0))
	assert.Equal(t, "Small", sizeClass(999))
	assert.Equal(t, "Small", sizeClass(5000))
	assert.Equal(t, "Small", sizeClass(10000))
	assert.Equal(t, "Medium", sizeClass(10001))
	assert.Equal(t, "Medium", sizeClass(100000))
	assert.Equal(t, "Large", sizeClass(100001))
}
