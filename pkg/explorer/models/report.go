package models

// ModuleStatus is the terminal state of one module execution.
type ModuleStatus string

const (
	StatusSuccess ModuleStatus = "success"
	StatusFailed  ModuleStatus = "failed"
	// StatusSkipped marks modules bypassed by configuration; they are
	// excluded from the success-rate denominator.
	StatusSkipped ModuleStatus = "skipped"
)

// FileInfo holds basic metadata about the analyzed file.
type FileInfo struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	SizeBytes  int64    `json:"size_bytes"`
	SizeMB     float64  `json:"size_mb"`
	Modified   string   `json:"modified"`
	Format     string   `json:"format"`
	SheetCount int      `json:"sheet_count"`
	Sheets     []string `json:"sheets"`
}

// ModuleExecution records one module's outcome and wall-clock duration.
// Duration is recorded regardless of outcome, up to the failure point for
// failed modules.
type ModuleExecution struct {
	Module          string       `json:"module"`
	Status          ModuleStatus `json:"status"`
	DurationSeconds float64      `json:"duration_seconds"`
	Error           string       `json:"error,omitempty"`
	// Err carries the underlying failure for programmatic inspection;
	// the serialized report only shows the Error text.
	Err error `json:"-"`
}

// ExecutionSummary enumerates every module's status so a caller can tell
// a clean run from a degraded one.
type ExecutionSummary struct {
	TotalModules      int                     `json:"total_modules"`
	SuccessfulModules int                     `json:"successful_modules"`
	FailedModules     int                     `json:"failed_modules"`
	SkippedModules    int                     `json:"skipped_modules"`
	SuccessRate       float64                 `json:"success_rate"`
	Modules           []ModuleExecution       `json:"modules"`
	Statuses          map[string]ModuleStatus `json:"module_statuses"`
	TotalModuleTime   float64                 `json:"total_module_time"`
}

// Metadata is the analysis-level metadata block of the compiled report.
type Metadata struct {
	RunID                string  `json:"run_id"`
	Timestamp            string  `json:"timestamp"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	SuccessRate          float64 `json:"success_rate"`
	QualityScore         float64 `json:"quality_score"`
	// SecurityScore is the inspector's 0-10 score normalized to [0, 1].
	SecurityScore   float64  `json:"security_score"`
	ModulesExecuted []string `json:"modules_executed"`
}

// Report is the compiled analysis result. Every section is always
// present: a failed module contributes its documented fallback value
// rather than an absent key.
type Report struct {
	FileInfo        FileInfo           `json:"file_info"`
	Metadata        Metadata           `json:"analysis_metadata"`
	Structure       StructureReport    `json:"structure_mapper"`
	Data            DataReport         `json:"data_profiler"`
	Formulas        FormulaReport      `json:"formula_analyzer"`
	Visuals         VisualReport       `json:"visual_cataloger"`
	Security        SecurityReport     `json:"security_inspector"`
	Dependencies    DependencyReport   `json:"dependency_mapper"`
	Relationships   RelationshipReport `json:"relationship_analyzer"`
	Performance     PerformanceReport  `json:"performance_monitor"`
	Execution       ExecutionSummary   `json:"execution_summary"`
	Recommendations []string           `json:"recommendations"`
}
