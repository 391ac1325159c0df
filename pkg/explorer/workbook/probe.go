package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Feature probes. Every probe returns a zero value when the underlying
// attribute is absent or the library reports an error; a missing feature
// must never abort collection of the others.

// MergedCellCount returns the number of merged ranges on the sheet.
func (s Sheet) MergedCellCount() int {
	merged, err := s.f.GetMergeCells(s.Name)
	if err != nil {
		return 0
	}
	return len(merged)
}

// FreezePanes returns the frozen top-left cell reference, or "" when the
// sheet has no frozen panes.
func (s Sheet) FreezePanes() string {
	panes, err := s.f.GetPanes(s.Name)
	if err != nil || !panes.Freeze {
		return ""
	}
	return panes.TopLeftCell
}

// ConditionalFormattingCount returns the total conditional formatting
// rule count on the sheet.
func (s Sheet) ConditionalFormattingCount() int {
	formats, err := s.f.GetConditionalFormats(s.Name)
	if err != nil {
		return 0
	}
	total := 0
	for _, rules := range formats {
		total += len(rules)
	}
	return total
}

// DataValidationCount returns the number of validation rules on the sheet.
func (s Sheet) DataValidationCount() int {
	validations, err := s.f.GetDataValidations(s.Name)
	if err != nil {
		return 0
	}
	return len(validations)
}

// CommentCount returns the number of cell comments on the sheet.
func (s Sheet) CommentCount() int {
	comments, err := s.f.GetComments(s.Name)
	if err != nil {
		return 0
	}
	return len(comments)
}

// PictureCount returns the number of cells with embedded pictures.
func (s Sheet) PictureCount() int {
	cells, err := s.f.GetPictureCells(s.Name)
	if err != nil {
		return 0
	}
	return len(cells)
}

// TabColor returns the sheet tab color as an RGB string, or "".
func (s Sheet) TabColor() string {
	props, err := s.f.GetSheetProps(s.Name)
	if err != nil || props.TabColorRGB == nil {
		return ""
	}
	return *props.TabColorRGB
}

// Tables returns the declared tables on the sheet.
func (s Sheet) Tables() []excelize.Table {
	tables, err := s.f.GetTables(s.Name)
	if err != nil {
		return nil
	}
	return tables
}

// builtinNamePrefix marks reserved defined names (print areas, titles).
const builtinNamePrefix = "_xlnm."

// NamedRanges returns user-defined names, excluding reserved built-ins.
func (v *View) NamedRanges() []excelize.DefinedName {
	var out []excelize.DefinedName
	for _, dn := range v.f.GetDefinedName() {
		if strings.HasPrefix(dn.Name, builtinNamePrefix) {
			continue
		}
		out = append(out, dn)
	}
	return out
}

// PrintArea returns the print area expression declared for the sheet,
// or "" when none is set.
func (v *View) PrintArea(sheet string) string {
	for _, dn := range v.f.GetDefinedName() {
		if dn.Name == builtinNamePrefix+"Print_Area" && dn.Scope == sheet {
			return dn.RefersTo
		}
	}
	return ""
}

// PrintAreaCount returns the number of sheets with a declared print area.
func (v *View) PrintAreaCount() int {
	count := 0
	for _, dn := range v.f.GetDefinedName() {
		if dn.Name == builtinNamePrefix+"Print_Area" {
			count++
		}
	}
	return count
}
