// Package models defines the report data structures produced by the
// analysis engine. All types are plain JSON-serializable values with no
// cyclic references.
package models

// SheetSummary is one entry in the structure report's per-sheet list.
type SheetSummary struct {
	Name       string `json:"name"`
	State      string `json:"state"`
	MaxRow     int    `json:"max_row"`
	MaxColumn  int    `json:"max_column"`
	Dimensions string `json:"dimensions"`
	// Status classifies the sheet by cell count: Empty, Small, Medium or
	// Large.
	Status    string `json:"status"`
	Protected bool   `json:"has_protection"`
	TabColor  string `json:"tab_color,omitempty"`
}

// NamedRange describes one defined name.
type NamedRange struct {
	Name     string `json:"name"`
	RefersTo string `json:"refers_to"`
	// Scope is the owning sheet name, or "Workbook" for global names.
	Scope string `json:"scope"`
}

// TableInfo describes one declared table.
type TableInfo struct {
	Name  string `json:"name"`
	Sheet string `json:"sheet"`
	Range string `json:"range"`
	Style string `json:"style"`
}

// WorkbookFeatures holds workbook-level feature counts. Every probe
// behind these counts tolerates the underlying attribute being absent;
// a missing feature reads as zero or false.
type WorkbookFeatures struct {
	HasMacros                  bool `json:"has_macros"`
	DataValidationRules        int  `json:"data_validation_rules"`
	ConditionalFormattingRules int  `json:"conditional_formatting_rules"`
	PrintAreas                 int  `json:"print_areas_count"`
	FreezePanes                int  `json:"freeze_panes_count"`
	Hyperlinks                 int  `json:"hyperlinks_count"`
	Comments                   int  `json:"comments_count"`
	Images                     int  `json:"images_count"`
	Charts                     int  `json:"charts_count"`
}

// SheetProtection summarizes protection flags for one protected sheet.
type SheetProtection struct {
	Sheet               string `json:"sheet"`
	Password            bool   `json:"password"`
	SelectLockedCells   bool   `json:"select_locked_cells"`
	SelectUnlockedCells bool   `json:"select_unlocked_cells"`
}

// ProtectionInfo summarizes workbook and sheet protection state.
type ProtectionInfo struct {
	WorkbookProtected bool              `json:"workbook_protected"`
	PasswordProtected bool              `json:"password_protected"`
	ProtectedSheets   []SheetProtection `json:"protected_sheets"`
}

// StructureReport is the structure_mapper module output.
type StructureReport struct {
	TotalSheets      int              `json:"total_sheets"`
	VisibleSheets    []string         `json:"visible_sheets"`
	HiddenSheets     []string         `json:"hidden_sheets"`
	SheetDetails     []SheetSummary   `json:"sheet_details"`
	NamedRangeCount  int              `json:"named_ranges_count"`
	// NamedRanges is capped at 20 entries for output size control.
	NamedRanges      []NamedRange     `json:"named_ranges_list"`
	TableCount       int              `json:"table_count"`
	Tables           []TableInfo      `json:"table_details"`
	HasHiddenContent bool             `json:"has_hidden_content"`
	Features         WorkbookFeatures `json:"workbook_features"`
	Protection       ProtectionInfo   `json:"protection_info"`
}
