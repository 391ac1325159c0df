package workbook

import (
	"github.com/xuri/excelize/v2"
)

// Sheet is one tab of the workbook with its declared extents. Traversal
// methods start a fresh forward-only pass each call; passes are
// restartable but a single pass must not be shared across consumers.
type Sheet struct {
	f       *excelize.File
	Name    string
	Visible bool
	// MaxRow and MaxCol are the declared bounds, which may exceed the
	// true non-empty extent.
	MaxRow int
	MaxCol int
}

// File exposes the underlying excelize handle for probes that need it.
func (s Sheet) File() *excelize.File { return s.f }

// Rows starts a values-only pass capped at maxRow rows and maxCol
// columns. Zero or negative caps mean unbounded. Rows are padded to
// maxCol cells so every column sees one value per row.
func (s Sheet) Rows(maxRow, maxCol int) (*RowIter, error) {
	inner, err := s.f.Rows(s.Name)
	if err != nil {
		return nil, err
	}
	return &RowIter{inner: inner, maxRow: maxRow, maxCol: maxCol}, nil
}

// RowIter is a bounded forward-only pass over a sheet's rows.
type RowIter struct {
	inner  *excelize.Rows
	maxRow int
	maxCol int
	row    int
}

// Next advances to the next row within the pass bounds.
func (it *RowIter) Next() bool {
	if it.maxRow > 0 && it.row >= it.maxRow {
		return false
	}
	if !it.inner.Next() {
		return false
	}
	it.row++
	return true
}

// Row returns the current row number (1-based).
func (it *RowIter) Row() int { return it.row }

// Values returns the current row's cell values, truncated and padded to
// the column cap. Blank cells read as empty strings.
func (it *RowIter) Values() []string {
	cells, err := it.inner.Columns()
	if err != nil {
		cells = nil
	}
	if it.maxCol > 0 {
		if len(cells) > it.maxCol {
			cells = cells[:it.maxCol]
		}
		for len(cells) < it.maxCol {
			cells = append(cells, "")
		}
	}
	return cells
}

// Close releases the pass.
func (it *RowIter) Close() error { return it.inner.Close() }

// Cell is one cell in a cell-object pass, exposing the coordinate, the
// cached value and the formula text (prefixed with "=" when present).
type Cell struct {
	Coord   string
	Value   string
	Formula string
}

// Cells starts a cell-object pass bounded by maxCells examined cells per
// sheet. The callback receives each cell in row-major order; returning
// false stops the pass early.
func (s Sheet) Cells(maxCells int, fn func(Cell) bool) error {
	iter, err := s.f.Rows(s.Name)
	if err != nil {
		return err
	}
	defer iter.Close()

	checked := 0
	rowNum := 0
	for iter.Next() {
		rowNum++
		cells, err := iter.Columns()
		if err != nil {
			continue
		}
		for colIdx, value := range cells {
			if maxCells > 0 && checked >= maxCells {
				return nil
			}
			checked++
			coord, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				continue
			}
			formula, _ := s.f.GetCellFormula(s.Name, coord)
			if formula != "" {
				formula = "=" + formula
			}
			if !fn(Cell{Coord: coord, Value: value, Formula: formula}) {
				return nil
			}
		}
		if maxCells > 0 && checked >= maxCells {
			return nil
		}
	}
	return nil
}
