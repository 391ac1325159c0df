// Package structure maps workbook anatomy: the sheet inventory, named
// ranges, tables, feature counts, and protection state.
package structure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// maxNamedRanges caps the named-range listing; the full count is still
// reported.
const maxNamedRanges = 20

// Size classification thresholds by declared cell count.
const (
	mediumSheetCells = 10000
	largeSheetCells  = 100000
)

// Mapper builds the structure report for a workbook.
type Mapper struct {
	log *zap.Logger
}

func NewMapper(log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mapper{log: log}
}

// Map inventories the workbook's sheets, names, tables, features, and
// protection. Archive facts may be nil for in-memory workbooks; the
// affected fields then read as zero.
func (m *Mapper) Map(view *workbook.View, facts *workbook.ArchiveFacts) (models.StructureReport, error) {
	report := models.StructureReport{
		VisibleSheets: []string{},
		HiddenSheets:  []string{},
	}

	for _, sheet := range view.Sheets() {
		state := "visible"
		if sheet.Visible {
			report.VisibleSheets = append(report.VisibleSheets, sheet.Name)
		} else {
			state = "hidden"
			report.HiddenSheets = append(report.HiddenSheets, sheet.Name)
		}

		summary := models.SheetSummary{
			Name:       sheet.Name,
			State:      state,
			MaxRow:     sheet.MaxRow,
			MaxColumn:  sheet.MaxCol,
			Dimensions: fmt.Sprintf("%dx%d", sheet.MaxRow, sheet.MaxCol),
			Status:     sizeClass(sheet.MaxRow * sheet.MaxCol),
			TabColor:   sheet.TabColor(),
		}
		if facts != nil {
			summary.Protected = facts.Protection[sheet.Name].Protected
		}
		report.SheetDetails = append(report.SheetDetails, summary)

		report.Features.DataValidationRules += sheet.DataValidationCount()
		report.Features.ConditionalFormattingRules += sheet.ConditionalFormattingCount()
		report.Features.Comments += sheet.CommentCount()
		report.Features.Images += sheet.PictureCount()
		if sheet.FreezePanes() != "" {
			report.Features.FreezePanes++
		}

		for _, table := range sheet.Tables() {
			style := table.StyleName
			if style == "" {
				style = "None"
			}
			report.Tables = append(report.Tables, models.TableInfo{
				Name:  table.Name,
				Sheet: sheet.Name,
				Range: table.Range,
				Style: style,
			})
		}
	}

	report.TotalSheets = len(view.Sheets())
	report.TableCount = len(report.Tables)
	report.HasHiddenContent = len(report.HiddenSheets) > 0
	report.Features.PrintAreas = view.PrintAreaCount()

	names := view.NamedRanges()
	report.NamedRangeCount = len(names)
	for i, name := range names {
		if i >= maxNamedRanges {
			break
		}
		scope := "Workbook"
		if name.Scope != "" {
			scope = name.Scope
		}
		report.NamedRanges = append(report.NamedRanges, models.NamedRange{
			Name:     name.Name,
			RefersTo: name.RefersTo,
			Scope:    scope,
		})
	}

	if facts != nil {
		report.Features.HasMacros = facts.HasMacros
		report.Protection.WorkbookProtected = facts.WorkbookProtected
		report.Protection.PasswordProtected = facts.WorkbookPassword
		for _, sheet := range view.Sheets() {
			prot, ok := facts.Protection[sheet.Name]
			if !ok || !prot.Protected {
				continue
			}
			report.Protection.ProtectedSheets = append(report.Protection.ProtectedSheets, models.SheetProtection{
				Sheet:               sheet.Name,
				Password:            prot.Password,
				SelectLockedCells:   prot.SelectLockedCells,
				SelectUnlockedCells: prot.SelectUnlockedCells,
			})
		}
		for _, n := range facts.Hyperlinks {
			report.Features.Hyperlinks += n
		}
		for _, n := range facts.Charts {
			report.Features.Charts += n
		}
	}

	m.log.Debug("structure mapped",
		zap.Int("sheets", report.TotalSheets),
		zap.Int("named_ranges", report.NamedRangeCount),
		zap.Int("tables", report.TableCount))
	return report, nil
}

// sizeClass buckets a sheet by declared cell count.
func sizeClass(cells int) string {
	switch {
	case cells == 0:
		return "Empty"
	case cells > largeSheetCells:
		return "Large"
	case cells > mediumSheetCells:
		return "Medium"
	default:
		return "Small"
	}
}
