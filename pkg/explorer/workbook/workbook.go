// Package workbook wraps an excelize file behind the read-only view the
// analysis modules consume: an ordered sheet list with declared bounds,
// restartable bounded row traversal, and fault-tolerant feature probes.
package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// View is a read-only handle over an open workbook. It is owned by the
// caller; the engine never mutates the underlying file.
type View struct {
	f      *excelize.File
	path   string
	sheets []Sheet
}

// Open opens the workbook at path. A failure here is fatal to the whole
// analysis; callers surface it unchanged.
func Open(path string) (*View, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return Wrap(f, path), nil
}

// Wrap builds a View over an already-open excelize file. Used by tests
// that construct workbooks in memory.
func Wrap(f *excelize.File, path string) *View {
	v := &View{f: f, path: path}
	for _, name := range f.GetSheetList() {
		visible, err := f.GetSheetVisible(name)
		if err != nil {
			visible = true
		}
		rows, cols := declaredBounds(f, name)
		v.sheets = append(v.sheets, Sheet{
			f:       f,
			Name:    name,
			Visible: visible,
			MaxRow:  rows,
			MaxCol:  cols,
		})
	}
	return v
}

// Close releases the underlying file.
func (v *View) Close() error { return v.f.Close() }

// Path returns the on-disk path the view was opened from; empty for
// in-memory workbooks.
func (v *View) Path() string { return v.path }

// Sheets returns the ordered sheet list.
func (v *View) Sheets() []Sheet { return v.sheets }

// SheetNames returns the ordered sheet names.
func (v *View) SheetNames() []string {
	names := make([]string, len(v.sheets))
	for i, s := range v.sheets {
		names[i] = s.Name
	}
	return names
}

// File exposes the underlying excelize handle for probe helpers.
func (v *View) File() *excelize.File { return v.f }

// declaredBounds resolves a sheet's declared row and column extents from
// its dimension reference, falling back to a streaming scan when the
// dimension is missing or degenerate.
func declaredBounds(f *excelize.File, sheet string) (rows, cols int) {
	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		parts := strings.Split(dim, ":")
		if c, r, err := excelize.CellNameToCoordinates(parts[len(parts)-1]); err == nil {
			rows, cols = r, c
		}
	}
	if rows > 1 || cols > 1 {
		return rows, cols
	}

	// Dimension absent or "A1"; scan to find the true extent.
	iter, err := f.Rows(sheet)
	if err != nil {
		return rows, cols
	}
	defer iter.Close()
	scanRows, scanCols := 0, 0
	for iter.Next() {
		scanRows++
		row, err := iter.Columns()
		if err != nil {
			continue
		}
		if len(row) > scanCols {
			scanCols = len(row)
		}
	}
	if scanRows == 0 || scanCols == 0 {
		// Keep whatever the dimension said; a single-cell sheet with a
		// value still reports 1x1.
		if rows == 1 && cols == 1 && cellHasValue(f, sheet, "A1") {
			return 1, 1
		}
		return 0, 0
	}
	return scanRows, scanCols
}

func cellHasValue(f *excelize.File, sheet, cell string) bool {
	val, err := f.GetCellValue(sheet, cell)
	return err == nil && val != ""
}
