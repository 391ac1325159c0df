package models

// PatternMatches reports sensitive-data pattern hits over the sampled
// column values collected by the data profiler. The inspector never
// re-scans raw cells.
type PatternMatches struct {
	Found bool `json:"patterns_found"`
	// Counts maps pattern family name to match count.
	Counts map[string]int `json:"pattern_counts"`
	// RiskScore sums count x family weight, capped at 5.0 per family.
	RiskScore float64 `json:"risk_score"`
}

// SecurityReport is the security_inspector module output.
type SecurityReport struct {
	// Score starts at 10.0 and loses points per detected exposure,
	// clamped to [0, 10].
	Score float64 `json:"overall_score"`
	// Threats lists the deductions that fired, in evaluation order.
	Threats []string `json:"threats"`
	// RiskLevel is Low (>= 8.0), Medium (>= 6.0) or High.
	RiskLevel       string         `json:"risk_level"`
	Patterns        PatternMatches `json:"patterns_detected"`
	Recommendations []string       `json:"recommendations"`
}

// DependencyReport is the dependency_mapper module output: a sheet to
// referenced-sheet formula-reference count matrix.
type DependencyReport struct {
	Matrix map[string]map[string]int `json:"dependency_matrix"`
	// HasCircular is true when any sheet pair references each other.
	HasCircular bool `json:"has_circular"`
	Skipped     bool `json:"skipped,omitempty"`
}

// Relationship is one proposed cross-sheet join based on shared column
// headers, not on verified data overlap.
type Relationship struct {
	SourceSheet string `json:"source_sheet"`
	TargetSheet string `json:"target_sheet"`
	Type        string `json:"relationship_type"`
	// KeyColumns lists shared headers, key-like names first.
	KeyColumns []string `json:"key_columns"`
	// MatchRate is |shared headers| / |union of both header sets|.
	MatchRate float64 `json:"match_rate"`
}

// RelationshipReport is the relationship_analyzer module output.
type RelationshipReport struct {
	Relationships []Relationship `json:"relationships_found"`
	Skipped       bool           `json:"skipped,omitempty"`
}

// PerformanceReport is the performance_monitor module output.
type PerformanceReport struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	MemoryAllocMB  float64 `json:"memory_alloc_mb"`
	MemorySysMB    float64 `json:"memory_sys_mb"`
	Score          float64 `json:"performance_score"`
}
