package models

// ColumnProfile holds per-column quality statistics computed over the
// sampled row window.
type ColumnProfile struct {
	// Number is the 1-based column index.
	Number int `json:"number"`
	// Letter is the Excel-style column label (A, B, ..., AA).
	Letter string `json:"letter"`
	// Range is the full column range in A1 notation, e.g. "B1:B500".
	Range string `json:"range"`
	// DataType is the dominant semantic type among sampled cells.
	DataType string `json:"data_type"`
	// Header is the detected header name, or a generated placeholder.
	Header string `json:"header"`
	// HeaderMissing reports whether the first-row cell was blank.
	HeaderMissing bool `json:"header_missing"`
	// FillRate is the fraction of sampled data rows that are non-blank.
	FillRate float64 `json:"fill_rate"`
	// UniqueValues is the distinct non-blank value count in the sample.
	UniqueValues int `json:"unique_values"`
	// Nulls is the blank cell count in the sample.
	Nulls int `json:"nulls"`
	// Duplicates is sampled rows minus unique minus nulls, floored at zero.
	Duplicates int `json:"duplicates"`
	// QualityIssues counts cells matching the error-token vocabulary.
	QualityIssues int `json:"data_quality_issues"`
	// ConsistencyScore is the dominant-type share of non-blank samples.
	ConsistencyScore float64 `json:"consistency_score"`
	// SampleValues holds up to 10 truncated example values.
	SampleValues []string `json:"sample_values"`
	// TypeCounts maps type tag to occurrence count; the counts sum to the
	// number of sampled rows for the column.
	TypeCounts map[string]int `json:"type_distribution"`
	// Outliers holds up to 5 IQR outliers among numeric samples.
	Outliers []float64 `json:"outliers"`
}

// Boundaries describes declared versus true data extents plus range
// metadata collected outside the sample window.
type Boundaries struct {
	DeclaredRange string `json:"declared_range"`
	TrueRange     string `json:"true_range"`
	FreezePanes   string `json:"freeze_panes"`
	MergedCells   int    `json:"merged_cells"`
	Hyperlinks    int    `json:"hyperlinks"`
	PrintArea     string `json:"print_area"`
	AutoFilter    bool   `json:"auto_filter"`
}

// SheetProperties holds protection and formatting metadata for a sheet.
type SheetProperties struct {
	Protected                  bool   `json:"protected"`
	PasswordProtected          bool   `json:"password_protected"`
	SelectLockedCells          bool   `json:"select_locked_cells"`
	SelectUnlockedCells        bool   `json:"select_unlocked_cells"`
	ConditionalFormattingRules int    `json:"conditional_formatting_rules"`
	DataValidationRules        int    `json:"data_validation_count"`
	TabColor                   string `json:"tab_color,omitempty"`
	Visibility                 string `json:"visibility"`
}

// QualityMetrics aggregates column quality figures at sheet level.
type QualityMetrics struct {
	AverageFillRate    float64 `json:"average_fill_rate"`
	MinFillRate        float64 `json:"min_fill_rate"`
	MaxFillRate        float64 `json:"max_fill_rate"`
	AverageConsistency float64 `json:"average_consistency"`
	ColumnsWithIssues  int     `json:"columns_with_issues"`
	TotalQualityIssues int     `json:"total_quality_issues"`
	// HeaderConsistency is the share of columns with a real header.
	HeaderConsistency float64 `json:"header_consistency"`
}

// DuplicateRows reports duplicate data rows found within the sample window.
type DuplicateRows struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StreamStats holds the coarse streaming counts computed for sheets whose
// row count exceeds the sample window.
type StreamStats struct {
	RowsScanned int `json:"rows_scanned"`
	Numeric     int `json:"numeric"`
	Text        int `json:"text"`
}

// SheetProfile is the full profiling result for one sheet. A sheet with
// zero declared rows or columns still gets a profile (the empty sentinel),
// never an absent entry.
type SheetProfile struct {
	// Dimensions is "rowsxcols" from the declared bounds, e.g. "120x8".
	Dimensions string `json:"dimensions"`
	UsedRange  string `json:"used_range"`
	// EstimatedDataCells extrapolates the sampled data-cell count to the
	// declared row count. When IsEstimated is true this is an estimate,
	// not an exact count.
	EstimatedDataCells int  `json:"estimated_data_cells"`
	IsEstimated        bool `json:"is_estimated"`
	EmptyCells         int  `json:"empty_cells"`
	HasData            bool `json:"has_data"`
	DataDensity        float64 `json:"data_density"`
	// SampleRows is the row window actually scanned, after any
	// timeout-driven halving.
	SampleRows int `json:"sample_rows"`

	Boundaries    Boundaries      `json:"boundaries"`
	Properties    SheetProperties `json:"sheet_properties"`
	Columns       []ColumnProfile `json:"columns"`
	Quality       QualityMetrics  `json:"data_quality_metrics"`
	DuplicateRows DuplicateRows   `json:"duplicate_rows"`
	// StreamStats is present only for sheets larger than the sample window.
	StreamStats *StreamStats `json:"stream_stats,omitempty"`
	// PotentialKeys lists column letters with near-complete, near-unique
	// values, used by the relationship analyzer.
	PotentialKeys []string `json:"potential_keys"`
}

// DataReport is the data_profiler module output.
type DataReport struct {
	Sheets             map[string]SheetProfile `json:"sheet_analysis"`
	TotalCells         int                     `json:"total_cells"`
	TotalDataCells     int                     `json:"total_data_cells"`
	// IsEstimated is set when any sheet's totals were extrapolated from a
	// sample, or when the whole report is a module-failure fallback.
	IsEstimated        bool            `json:"is_estimated"`
	OverallDataDensity float64         `json:"overall_data_density"`
	DataQualityScore   float64         `json:"data_quality_score"`
	TypeDistribution   map[string]int  `json:"data_type_distribution"`
}
