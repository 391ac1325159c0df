package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrapDeclaredBounds(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "a")
	f.SetCellValue("Sheet1", "C4", "b")
	view := Wrap(f, "")

	require.Len(t, view.Sheets(), 1)
	sheet := view.Sheets()[0]
	assert.Equal(t, 4, sheet.MaxRow)
	assert.Equal(t, 3, sheet.MaxCol)
}

func TestWrapEmptySheetBounds(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	view := Wrap(f, "")

	sheet := view.Sheets()[0]
	assert.Equal(t, 0, sheet.MaxRow)
	assert.Equal(t, 0, sheet.MaxCol)
}

func TestRowIterPadsAndTruncates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "a")
	f.SetCellValue("Sheet1", "E2", "wide")
	view := Wrap(f, "")

	iter, err := view.Sheets()[0].Rows(10, 3)
	require.NoError(t, err)
	defer iter.Close()

	require.True(t, iter.Next())
	assert.Equal(t, []string{"a", "", ""}, iter.Values())
	require.True(t, iter.Next())
	// Row 2 has data only in column E, which sits past the cap.
	assert.Equal(t, []string{"", "", ""}, iter.Values())
}

func TestRowIterRowCap(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for row := 1; row <= 5; row++ {
		f.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), row)
	}
	view := Wrap(f, "")

	iter, err := view.Sheets()[0].Rows(2, 1)
	require.NoError(t, err)
	defer iter.Close()

	count := 0
	for iter.Next() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestCellsFormulaPrefix(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 1)
	require.NoError(t, f.SetCellFormula("Sheet1", "B1", "A1*2"))
	view := Wrap(f, "")

	var formulas []string
	err := view.Sheets()[0].Cells(0, func(cell Cell) bool {
		if cell.Formula != "" {
			formulas = append(formulas, cell.Formula)
		}
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"=A1*2"}, formulas)
}

func TestCellsBudget(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 1)
	f.SetCellValue("Sheet1", "B1", 2)
	f.SetCellValue("Sheet1", "C1", 3)
	view := Wrap(f, "")

	seen := 0
	err := view.Sheets()[0].Cells(2, func(Cell) bool {
		seen++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestInspectArchivePlainWorkbook(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "x")
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	facts, err := InspectArchive(path)
	require.NoError(t, err)
	assert.False(t, facts.HasMacros)
	assert.False(t, facts.WorkbookProtected)
	assert.Empty(t, facts.Charts)
}

func TestInspectArchiveNotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := InspectArchive(path)
	assert.Error(t, err)
}
