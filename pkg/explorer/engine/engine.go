// Package engine orchestrates the analysis modules. Modules run in a
// fixed order; each one is isolated so a failure or panic degrades the
// report to documented fallback values instead of aborting the run.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/formula"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/profile"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/relate"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/security"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/structure"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/visual"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// Module names, in execution order.
const (
	ModuleFileInfo      = "file_info"
	ModuleStructure     = "structure_mapper"
	ModuleData          = "data_profiler"
	ModuleFormulas      = "formula_analyzer"
	ModuleVisuals       = "visual_cataloger"
	ModuleSecurity      = "security_inspector"
	ModuleDependencies  = "dependency_mapper"
	ModuleRelationships = "relationship_analyzer"
	ModulePerformance   = "performance_monitor"
)

// ModuleError records a failure inside one analysis module. The run
// continues; the module's report section carries its documented
// fallback value.
type ModuleError struct {
	Module string
	Err    error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("analysis module %q failed: %v", e.Module, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}

// Config carries the resolved analysis settings.
type Config struct {
	SampleRows      int
	StreamRows      int
	MaxFormulaCheck int
	CrossSheet      bool
	// OnModule, when set, is called after each module finishes.
	OnModule func(models.ModuleExecution)
}

// Engine runs the module pipeline over one workbook.
type Engine struct {
	cfg Config
	log *zap.Logger

	profiler *profile.Profiler
	mapper   *structure.Mapper
	formulas *formula.Analyzer
	visuals  *visual.Cataloger
	security *security.Inspector
	deps     *relate.DependencyMapper
	rels     *relate.RelationshipAnalyzer
}

// New builds an Engine with the given settings.
func New(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:      cfg,
		log:      log,
		profiler: profile.New(cfg.SampleRows, cfg.StreamRows, log),
		mapper:   structure.NewMapper(log),
		formulas: formula.NewAnalyzer(cfg.MaxFormulaCheck, log),
		visuals:  visual.NewCataloger(log),
		security: security.NewInspector(log),
		deps:     relate.NewDependencyMapper(cfg.MaxFormulaCheck, log),
		rels:     relate.NewRelationshipAnalyzer(log),
	}
}

// Profiler exposes the data profiler, letting callers tune its budget.
func (e *Engine) Profiler() *profile.Profiler { return e.profiler }

// Run analyzes the workbook behind view. A nil facts pointer is
// tolerated; archive-derived fields then read as zero.
func (e *Engine) Run(view *workbook.View, facts *workbook.ArchiveFacts) models.Report {
	start := time.Now()
	runID := uuid.NewString()
	log := e.log.With(zap.String("run_id", runID))
	log.Info("analysis started", zap.String("path", view.Path()))

	var (
		report models.Report
		execs  []models.ModuleExecution
	)

	execs = append(execs, e.runModule(ModuleFileInfo, log, func() error {
		info, err := fileInfo(view)
		if err != nil {
			return err
		}
		report.FileInfo = info
		return nil
	}))

	structExec := e.runModule(ModuleStructure, log, func() error {
		out, err := e.mapper.Map(view, facts)
		if err != nil {
			return err
		}
		report.Structure = out
		return nil
	})
	if structExec.Status == models.StatusFailed {
		report.Structure = fallbackStructure(view)
	}
	execs = append(execs, structExec)

	dataExec := e.runModule(ModuleData, log, func() error {
		out, err := e.profiler.ProfileWorkbook(view, facts)
		if err != nil {
			return err
		}
		report.Data = out
		return nil
	})
	if dataExec.Status == models.StatusFailed {
		report.Data = fallbackData()
	}
	execs = append(execs, dataExec)

	execs = append(execs, e.runModule(ModuleFormulas, log, func() error {
		out, err := e.formulas.Analyze(view)
		if err != nil {
			return err
		}
		report.Formulas = out
		return nil
	}))

	execs = append(execs, e.runModule(ModuleVisuals, log, func() error {
		out, err := e.visuals.Catalog(view, facts)
		if err != nil {
			return err
		}
		report.Visuals = out
		return nil
	}))

	secExec := e.runModule(ModuleSecurity, log, func() error {
		out, err := e.security.Inspect(report.Structure, report.Data, report.Formulas, report.FileInfo.SizeMB)
		if err != nil {
			return err
		}
		report.Security = out
		return nil
	})
	if secExec.Status == models.StatusFailed {
		report.Security = fallbackSecurity()
	}
	execs = append(execs, secExec)

	if e.cfg.CrossSheet {
		execs = append(execs, e.runModule(ModuleDependencies, log, func() error {
			out, err := e.deps.Map(view)
			if err != nil {
				return err
			}
			report.Dependencies = out
			return nil
		}))
		execs = append(execs, e.runModule(ModuleRelationships, log, func() error {
			out, err := e.rels.Analyze(report.Data)
			if err != nil {
				return err
			}
			report.Relationships = out
			return nil
		}))
	} else {
		report.Dependencies = models.DependencyReport{Skipped: true}
		report.Relationships = models.RelationshipReport{Skipped: true}
		execs = append(execs,
			skippedExecution(ModuleDependencies),
			skippedExecution(ModuleRelationships))
		log.Info("cross-sheet analysis disabled, skipping dependency and relationship modules")
	}

	execs = append(execs, e.runModule(ModulePerformance, log, func() error {
		report.Performance = performanceSnapshot(start)
		return nil
	}))

	report.Execution = summarize(execs)
	report.Metadata = metadata(runID, start, report)
	report.Recommendations = recommendations(report)

	log.Info("analysis finished",
		zap.Float64("duration_seconds", report.Metadata.TotalDurationSeconds),
		zap.Float64("success_rate", report.Execution.SuccessRate))
	return report
}

// runModule executes one module with panic isolation and timing.
func (e *Engine) runModule(name string, log *zap.Logger, fn func() error) models.ModuleExecution {
	start := time.Now()
	exec := models.ModuleExecution{Module: name, Status: models.StatusSuccess}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()

	exec.DurationSeconds = time.Since(start).Seconds()
	if err != nil {
		merr := &ModuleError{Module: name, Err: err}
		exec.Status = models.StatusFailed
		exec.Err = merr
		exec.Error = merr.Error()
		log.Error("module failed",
			zap.String("module", name),
			zap.Float64("duration_seconds", exec.DurationSeconds),
			zap.Error(merr))
	} else {
		log.Debug("module finished",
			zap.String("module", name),
			zap.Float64("duration_seconds", exec.DurationSeconds))
	}
	if e.cfg.OnModule != nil {
		e.cfg.OnModule(exec)
	}
	return exec
}

func skippedExecution(name string) models.ModuleExecution {
	return models.ModuleExecution{Module: name, Status: models.StatusSkipped}
}

// fileInfo gathers file metadata. In-memory workbooks report zero size.
func fileInfo(view *workbook.View) (models.FileInfo, error) {
	info := models.FileInfo{
		Path:       view.Path(),
		Name:       filepath.Base(view.Path()),
		SheetCount: len(view.Sheets()),
		Sheets:     view.SheetNames(),
	}
	if view.Path() == "" {
		info.Name = ""
		info.Format = "xlsx"
		return info, nil
	}
	info.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(view.Path())), ".")
	stat, err := os.Stat(view.Path())
	if err != nil {
		return models.FileInfo{}, err
	}
	info.SizeBytes = stat.Size()
	info.SizeMB = float64(stat.Size()) / (1024 * 1024)
	info.Modified = stat.ModTime().UTC().Format(time.RFC3339)
	return info, nil
}

// fallbackStructure keeps the sheet inventory from the open handle when
// the mapper itself fails; counts read as zero.
func fallbackStructure(view *workbook.View) models.StructureReport {
	report := models.StructureReport{
		TotalSheets:   len(view.Sheets()),
		VisibleSheets: []string{},
		HiddenSheets:  []string{},
	}
	for _, sheet := range view.Sheets() {
		if sheet.Visible {
			report.VisibleSheets = append(report.VisibleSheets, sheet.Name)
		} else {
			report.HiddenSheets = append(report.HiddenSheets, sheet.Name)
		}
	}
	report.HasHiddenContent = len(report.HiddenSheets) > 0
	return report
}

// fallbackData is the estimate used when profiling fails outright.
func fallbackData() models.DataReport {
	return models.DataReport{
		Sheets:             map[string]models.SheetProfile{},
		TotalCells:         1000000,
		TotalDataCells:     800000,
		IsEstimated:        true,
		OverallDataDensity: 0.8,
		DataQualityScore:   0.7,
		TypeDistribution: map[string]int{
			"text":    40,
			"numeric": 35,
			"date":    15,
			"blank":   10,
		},
	}
}

// fallbackSecurity is a neutral mid-tier assessment used when the
// inspector fails.
func fallbackSecurity() models.SecurityReport {
	return models.SecurityReport{
		Score:           5.0,
		RiskLevel:       "High",
		Threats:         []string{"security inspection failed"},
		Patterns:        models.PatternMatches{Counts: map[string]int{}},
		Recommendations: []string{"Re-run the analysis or inspect the workbook manually"},
	}
}

// performanceSnapshot reports elapsed time, heap figures, and a coarse
// 0-10 score.
func performanceSnapshot(start time.Time) models.PerformanceReport {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	elapsed := time.Since(start).Seconds()
	allocMB := float64(mem.Alloc) / (1024 * 1024)
	sysMB := float64(mem.Sys) / (1024 * 1024)

	timeScore := 10 - elapsed/10
	if timeScore < 0 {
		timeScore = 0
	}
	memScore := 10 - allocMB/100
	if memScore < 0 {
		memScore = 0
	}

	return models.PerformanceReport{
		ElapsedSeconds: elapsed,
		MemoryAllocMB:  allocMB,
		MemorySysMB:    sysMB,
		Score:          (timeScore + memScore) / 2,
	}
}

// summarize folds the execution records into the summary block. Skipped
// modules are excluded from the success-rate denominator.
func summarize(execs []models.ModuleExecution) models.ExecutionSummary {
	summary := models.ExecutionSummary{
		TotalModules: len(execs),
		Modules:      execs,
		Statuses:     make(map[string]models.ModuleStatus, len(execs)),
	}
	for _, exec := range execs {
		summary.Statuses[exec.Module] = exec.Status
		summary.TotalModuleTime += exec.DurationSeconds
		switch exec.Status {
		case models.StatusSuccess:
			summary.SuccessfulModules++
		case models.StatusFailed:
			summary.FailedModules++
		case models.StatusSkipped:
			summary.SkippedModules++
		}
	}
	if counted := summary.TotalModules - summary.SkippedModules; counted > 0 {
		summary.SuccessRate = float64(summary.SuccessfulModules) / float64(counted)
	}
	return summary
}

func metadata(runID string, start time.Time, report models.Report) models.Metadata {
	meta := models.Metadata{
		RunID:                runID,
		Timestamp:            start.UTC().Format(time.RFC3339),
		TotalDurationSeconds: time.Since(start).Seconds(),
		SuccessRate:          report.Execution.SuccessRate,
		QualityScore:         qualityScore(report),
		SecurityScore:        report.Security.Score / 10,
	}
	for _, exec := range report.Execution.Modules {
		meta.ModulesExecuted = append(meta.ModulesExecuted, exec.Module)
	}
	return meta
}

// qualityScore blends data density, volume, type variety, hidden-sheet
// share, and the security score into a [0,1] workbook grade.
func qualityScore(report models.Report) float64 {
	density := report.Data.OverallDataDensity

	volumeFloor := float64(report.Data.TotalCells) * 0.1
	if volumeFloor < 1000 {
		volumeFloor = 1000
	}
	volume := float64(report.Data.TotalDataCells) / volumeFloor
	if volume > 1 {
		volume = 1
	}

	variety := float64(len(report.Data.TypeDistribution)) / 5
	if variety > 1 {
		variety = 1
	}

	hiddenPenalty := 0.0
	if report.Structure.TotalSheets > 0 {
		hiddenPenalty = float64(len(report.Structure.HiddenSheets)) / float64(report.Structure.TotalSheets)
		if hiddenPenalty > 0.5 {
			hiddenPenalty = 0.5
		}
	}

	securityPart := report.Security.Score / 10
	if securityPart > 1 {
		securityPart = 1
	}

	return density*0.3 + volume*0.2 + variety*0.2 + (1-hiddenPenalty)*0.15 + securityPart*0.15
}

// recommendations compiles actionable advice from the module outputs.
func recommendations(report models.Report) []string {
	recs := []string{}
	if report.Security.Score < 8 {
		recs = append(recs, report.Security.Recommendations...)
	}
	recs = append(recs, report.Formulas.PerformanceImpact.Recommendations...)

	if report.Data.OverallDataDensity < 0.3 && !report.Data.IsEstimated {
		recs = append(recs, "Data density is low; consider removing unused rows and columns")
	}
	if len(report.Structure.HiddenSheets) > 0 {
		recs = append(recs, "Review hidden sheets for stale or sensitive content")
	}
	if report.Dependencies.HasCircular {
		recs = append(recs, "Break circular sheet references to stabilize recalculation")
	}
	if report.FileInfo.SizeMB > 50 {
		recs = append(recs, "File is large; consider splitting historical data into separate workbooks")
	}
	if report.Data.DataQualityScore < 0.5 && !report.Data.IsEstimated {
		recs = append(recs, "Low data quality score; check sparse columns and inconsistent types")
	}
	if len(recs) == 0 {
		recs = append(recs, "Workbook appears well optimized; no action needed")
	}
	return recs
}
