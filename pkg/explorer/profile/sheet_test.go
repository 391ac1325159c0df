package profile

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

func testWorkbook(t *testing.T) *workbook.View {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	f.SetCellValue("Sheet1", "A1", "ID")
	f.SetCellValue("Sheet1", "B1", "Amount")
	for i := 0; i < 10; i++ {
		row := i + 2
		f.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), i+1)
		if i != 4 {
			f.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), (i+1)*100)
		}
		f.SetCellValue("Sheet1", fmt.Sprintf("C%d", row), "note")
	}
	return workbook.Wrap(f, "")
}

func TestProfileSheetColumns(t *testing.T) {
	view := testWorkbook(t)
	p := New(100, 1000, nil)

	report, err := p.ProfileWorkbook(view, nil)
	require.NoError(t, err)

	profile, ok := report.Sheets["Sheet1"]
	require.True(t, ok)
	require.Len(t, profile.Columns, 3)
	assert.Equal(t, "11x3", profile.Dimensions)
	assert.True(t, profile.HasData)
	assert.False(t, profile.IsEstimated)
	assert.Nil(t, profile.StreamStats)

	id := profile.Columns[0]
	assert.Equal(t, "ID", id.Header)
	assert.False(t, id.HeaderMissing)
	assert.Equal(t, "A", id.Letter)
	assert.Equal(t, "A1:A11", id.Range)
	assert.Equal(t, "numeric", id.DataType)
	assert.Equal(t, 10, id.UniqueValues)
	assert.Equal(t, 0, id.Nulls)
	assert.InDelta(t, 1.0, id.FillRate, 1e-9)

	amount := profile.Columns[1]
	assert.Equal(t, 1, amount.Nulls)
	assert.InDelta(t, 0.9, amount.FillRate, 1e-9)

	notes := profile.Columns[2]
	assert.True(t, notes.HeaderMissing)
	assert.Equal(t, "Column C", notes.Header)
	assert.Equal(t, "text", notes.DataType)
	assert.Equal(t, 1, notes.UniqueValues)
	assert.Equal(t, 9, notes.Duplicates)
}

func TestProfileSheetTypeCountsSumToSample(t *testing.T) {
	view := testWorkbook(t)
	p := New(100, 1000, nil)

	profile, err := p.ProfileSheet(view.Sheets()[0], view, nil)
	require.NoError(t, err)

	for _, col := range profile.Columns {
		total := 0
		for _, n := range col.TypeCounts {
			total += n
		}
		assert.Equal(t, 11, total, "column %s", col.Letter)
	}
}

func TestProfileSheetPotentialKeys(t *testing.T) {
	view := testWorkbook(t)
	p := New(100, 1000, nil)

	profile, err := p.ProfileSheet(view.Sheets()[0], view, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, profile.PotentialKeys)
}

func TestProfileEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Blank")
	require.NoError(t, err)
	view := workbook.Wrap(f, "")

	p := New(100, 1000, nil)
	report, err := p.ProfileWorkbook(view, nil)
	require.NoError(t, err)

	profile, ok := report.Sheets["Blank"]
	require.True(t, ok, "empty sheet must still get a profile")
	assert.Equal(t, "0x0", profile.Dimensions)
	assert.Equal(t, "A1:A1", profile.UsedRange)
	assert.False(t, profile.HasData)
	assert.Equal(t, 0, profile.EstimatedDataCells)
	assert.Empty(t, profile.Columns)
}

func TestProfileLargeSheetEstimates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Value")
	for row := 2; row <= 21; row++ {
		f.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), row)
	}
	view := workbook.Wrap(f, "")

	p := New(5, 10, nil)
	profile, err := p.ProfileSheet(view.Sheets()[0], view, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, profile.SampleRows)
	assert.True(t, profile.IsEstimated)
	assert.Equal(t, 21, profile.EstimatedDataCells)

	// The streaming pass covers the first ten rows: the header lands in
	// the text bucket, the nine values below it in the numeric bucket.
	require.NotNil(t, profile.StreamStats)
	assert.Equal(t, 10, profile.StreamStats.RowsScanned)
	assert.Equal(t, 9, profile.StreamStats.Numeric)
	assert.Equal(t, 1, profile.StreamStats.Text)
}

func TestProfileDuplicateRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "A2", "alpha")
	f.SetCellValue("Sheet1", "A3", "alpha")
	f.SetCellValue("Sheet1", "A4", "alpha")
	f.SetCellValue("Sheet1", "A5", "beta")
	view := workbook.Wrap(f, "")

	p := New(100, 1000, nil)
	profile, err := p.ProfileSheet(view.Sheets()[0], view, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.DuplicateRows.Count)
	// 2 duplicates over the 5-row sample window.
	assert.InDelta(t, 40.0, profile.DuplicateRows.Percentage, 1e-9)
}

func TestProfileBudgetExhaustedPropagates(t *testing.T) {
	view := testWorkbook(t)
	p := New(100, 1000, nil)
	p.BudgetFor = func(int) time.Duration { return 0 }

	_, err := p.ProfileWorkbook(view, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBudget))
}

func TestRetryWindowClampsToFloor(t *testing.T) {
	next, ok := retryWindow(100)
	assert.True(t, ok)
	assert.Equal(t, 50, next)

	// Windows between 11 and 19 still get one retry at the floor.
	next, ok = retryWindow(11)
	assert.True(t, ok)
	assert.Equal(t, 10, next)
	next, ok = retryWindow(19)
	assert.True(t, ok)
	assert.Equal(t, 10, next)

	_, ok = retryWindow(10)
	assert.False(t, ok)
	_, ok = retryWindow(7)
	assert.False(t, ok)
}

func TestSampleWindowPolicy(t *testing.T) {
	p := New(100, 1000, nil)
	assert.Equal(t, 100, p.sampleWindow(5000, 10))
	assert.Equal(t, 75, p.sampleWindow(20000, 10))
	assert.Equal(t, 75, p.sampleWindow(5000, 60))
	assert.Equal(t, 50, p.sampleWindow(200000, 10))
	assert.Equal(t, 50, p.sampleWindow(5000, 150))
	assert.Equal(t, 7, p.sampleWindow(7, 3))
}
