// Package profile samples sheet contents and derives per-column quality
// statistics, duplicate-row counts, and workbook-level data totals. Large
// sheets are never profiled in full: a bounded sample window feeds the
// column statistics and a coarse streaming pass counts the leading rows.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/classify"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/workbook"
)

// ErrBudget is returned when a column-statistics pass exceeds its time
// budget. The profiler retries with a halved window before giving up.
var ErrBudget = errors.New("column statistics budget exceeded")

const (
	// maxProfiledColumns bounds the per-column work on very wide sheets.
	maxProfiledColumns = 200
	// minRetryRows is the smallest window the budget retry will attempt.
	minRetryRows = 10
	// sampleValueLimit truncates example values kept in the profile.
	sampleValueLimit = 50
	// sampleValueCount caps example values per column.
	sampleValueCount = 10
	// trueRangeColumnRows is how many leading rows contribute to the true
	// column extent.
	trueRangeColumnRows = 200
	// rowJoinSep separates cell values when hashing a row for duplicate
	// detection. Unlikely to occur inside cell text.
	rowJoinSep = "\x1f"
)

// Profiler computes data profiles for every sheet of a workbook.
type Profiler struct {
	sampleRows int
	streamRows int
	log        *zap.Logger

	// BudgetFor overrides the per-sheet statistics budget; tests use it
	// to force the retry path.
	BudgetFor func(declaredRows int) time.Duration
}

// New returns a Profiler with the given base sample window and streaming
// row cap. Non-positive arguments fall back to 100 and 1000.
func New(sampleRows, streamRows int, log *zap.Logger) *Profiler {
	if sampleRows <= 0 {
		sampleRows = 100
	}
	if streamRows <= 0 {
		streamRows = 1000
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Profiler{sampleRows: sampleRows, streamRows: streamRows, log: log}
}

// ProfileWorkbook profiles every sheet and aggregates workbook totals.
// A sheet-level failure aborts the whole report.
func (p *Profiler) ProfileWorkbook(view *workbook.View, facts *workbook.ArchiveFacts) (models.DataReport, error) {
	report := models.DataReport{
		Sheets:           make(map[string]models.SheetProfile),
		TypeDistribution: make(map[string]int),
	}

	for _, sheet := range view.Sheets() {
		profile, err := p.ProfileSheet(sheet, view, facts)
		if err != nil {
			return models.DataReport{}, fmt.Errorf("profile sheet %s: %w", sheet.Name, err)
		}
		report.Sheets[sheet.Name] = profile
		report.TotalCells += sheet.MaxRow * sheet.MaxCol
		report.TotalDataCells += profile.EstimatedDataCells
		if profile.IsEstimated {
			report.IsEstimated = true
		}
		for _, col := range profile.Columns {
			for tag, n := range col.TypeCounts {
				if n > 0 {
					report.TypeDistribution[tag] += n
				}
			}
		}
	}

	if report.TotalCells > 0 {
		report.OverallDataDensity = float64(report.TotalDataCells) / float64(report.TotalCells)
	}
	report.DataQualityScore = overallQualityScore(report)
	return report, nil
}

// overallQualityScore blends density, data volume, and type variety into
// a single [0,1] figure.
func overallQualityScore(report models.DataReport) float64 {
	volume := 1.0
	if report.TotalDataCells <= 1000 {
		volume = float64(report.TotalDataCells) / 1000.0
	}
	variety := 0.5
	if len(report.TypeDistribution) > 1 {
		variety = 0.8
	}
	score := report.OverallDataDensity*0.4 + volume*0.3 + variety*0.3
	if score > 1 {
		score = 1
	}
	return score
}

// ProfileSheet profiles a single sheet. Sheets with no declared extent
// get an explicit empty profile rather than an absent entry.
func (p *Profiler) ProfileSheet(sheet workbook.Sheet, view *workbook.View, facts *workbook.ArchiveFacts) (models.SheetProfile, error) {
	if sheet.MaxRow == 0 || sheet.MaxCol == 0 {
		return p.emptyProfile(sheet, view, facts), nil
	}

	cols := sheet.MaxCol
	if cols > maxProfiledColumns {
		cols = maxProfiledColumns
	}
	window := p.sampleWindow(sheet.MaxRow, sheet.MaxCol)
	budget := p.budget(sheet.MaxRow)

	counts, dataCells, scanned, err := p.columnStats(sheet, window, cols, budget)
	for err != nil {
		if !errors.Is(err, ErrBudget) {
			return models.SheetProfile{}, err
		}
		next, ok := retryWindow(window)
		if !ok {
			return models.SheetProfile{}, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		p.log.Warn("column statistics over budget, retrying with smaller window",
			zap.String("sheet", sheet.Name),
			zap.Int("window", window),
			zap.Int("retry_window", next))
		window = next
		counts, dataCells, scanned, err = p.columnStats(sheet, window, cols, budget)
	}

	headers, samples, err := p.headersAndSamples(sheet, cols)
	if err != nil {
		return models.SheetProfile{}, err
	}
	accums, rowsChecked, dupCount, err := p.qualityPass(sheet, window, cols)
	if err != nil {
		return models.SheetProfile{}, err
	}

	profile := models.SheetProfile{
		Dimensions: fmt.Sprintf("%dx%d", sheet.MaxRow, sheet.MaxCol),
		UsedRange:  rangeRef(sheet.MaxRow, sheet.MaxCol),
		HasData:    dataCells > 0,
		SampleRows: window,
	}

	for i := 0; i < cols; i++ {
		letter, _ := excelize.ColumnNumberToName(i + 1)
		colCounts := counts[i]
		if colCounts == nil {
			colCounts = emptyTypeCounts()
		}
		nulls, unique, duplicates, issues, fillRate, outliers := accums[i].finish(rowsChecked)
		header := headers[i]
		missing := header == ""
		if missing {
			header = "Column " + letter
		}
		profile.Columns = append(profile.Columns, models.ColumnProfile{
			Number:           i + 1,
			Letter:           letter,
			Range:            columnRange(letter, sheet.MaxRow),
			DataType:         dominantType(colCounts),
			Header:           header,
			HeaderMissing:    missing,
			FillRate:         fillRate,
			UniqueValues:     unique,
			Nulls:            nulls,
			Duplicates:       duplicates,
			QualityIssues:    issues,
			ConsistencyScore: consistencyScore(colCounts),
			SampleValues:     samples[i],
			TypeCounts:       colCounts,
			Outliers:         outliers,
		})
	}

	profile.Quality = qualityMetrics(profile.Columns)
	profile.PotentialKeys = potentialKeys(profile.Columns)
	profile.DuplicateRows = models.DuplicateRows{
		Count:      dupCount,
		Percentage: float64(dupCount) / float64(max(1, window)) * 100,
	}

	trueRange, stream, err := p.extentAndStreamPass(sheet, cols, window, sheet.MaxRow)
	if err != nil {
		return models.SheetProfile{}, err
	}
	profile.StreamStats = stream
	profile.Boundaries = boundaries(sheet, view, facts, trueRange)
	profile.Properties = properties(sheet, facts)

	totalCells := sheet.MaxRow * sheet.MaxCol
	estimated := dataCells
	if sheet.MaxRow > scanned && scanned > 0 {
		estimated = dataCells * sheet.MaxRow / scanned
		profile.IsEstimated = true
	}
	if estimated > totalCells {
		estimated = totalCells
	}
	profile.EstimatedDataCells = estimated
	profile.EmptyCells = totalCells - estimated
	profile.DataDensity = float64(estimated) / float64(totalCells)

	return profile, nil
}

// retryWindow halves the sample window after a budget overrun, clamped
// to the floor of minRetryRows. ok is false once the floor itself has
// been tried.
func retryWindow(window int) (next int, ok bool) {
	if window <= minRetryRows {
		return 0, false
	}
	next = window / 2
	if next < minRetryRows {
		next = minRetryRows
	}
	return next, true
}

// sampleWindow applies the size-tiered sampling policy.
func (p *Profiler) sampleWindow(declRows, declCols int) int {
	window := p.sampleRows
	switch {
	case declRows > 100000 || declCols > 100:
		if window > 50 {
			window = 50
		}
	case declRows > 10000 || declCols > 50:
		if window > 75 {
			window = 75
		}
	}
	if window > declRows {
		window = declRows
	}
	return window
}

// budget returns the column-statistics time budget for a sheet.
func (p *Profiler) budget(declRows int) time.Duration {
	if p.BudgetFor != nil {
		return p.BudgetFor(declRows)
	}
	if declRows > 100000 {
		return 10 * time.Second
	}
	return 30 * time.Second
}

// columnStats walks the sample window (header row included) and counts
// cell types per column. It reports the non-blank cell count, the number
// of rows actually scanned, and ErrBudget when the pass overruns.
func (p *Profiler) columnStats(sheet workbook.Sheet, window, cols int, budget time.Duration) (map[int]map[string]int, int, int, error) {
	iter, err := sheet.Rows(window, cols)
	if err != nil {
		return nil, 0, 0, err
	}
	defer iter.Close()

	start := time.Now()
	counts := make(map[int]map[string]int, cols)
	for i := 0; i < cols; i++ {
		counts[i] = emptyTypeCounts()
	}

	dataCells, scanned := 0, 0
	for iter.Next() {
		if time.Since(start) > budget {
			return nil, 0, 0, ErrBudget
		}
		scanned++
		for i, value := range iter.Values() {
			tag := classify.Classify(value)
			counts[i][string(tag)]++
			if tag != classify.Blank {
				dataCells++
			}
		}
	}
	return counts, dataCells, scanned, nil
}

// headersAndSamples reads the header row and up to 10 example values per
// column from the rows directly below it.
func (p *Profiler) headersAndSamples(sheet workbook.Sheet, cols int) ([]string, [][]string, error) {
	iter, err := sheet.Rows(sampleValueCount+1, cols)
	if err != nil {
		return nil, nil, err
	}
	defer iter.Close()

	headers := make([]string, cols)
	samples := make([][]string, cols)
	for iter.Next() {
		values := iter.Values()
		if iter.Row() == 1 {
			for i, v := range values {
				headers[i] = strings.TrimSpace(v)
			}
			continue
		}
		for i, v := range values {
			if classify.Classify(v) == classify.Blank || len(samples[i]) >= sampleValueCount {
				continue
			}
			samples[i] = append(samples[i], truncateSample(v, sampleValueLimit))
		}
	}
	return headers, samples, nil
}

// qualityPass accumulates per-column quality signals and duplicate-row
// counts over the data rows of the sample window.
func (p *Profiler) qualityPass(sheet workbook.Sheet, window, cols int) ([]*columnAccum, int, int, error) {
	iter, err := sheet.Rows(window+1, cols)
	if err != nil {
		return nil, 0, 0, err
	}
	defer iter.Close()

	accums := make([]*columnAccum, cols)
	for i := range accums {
		accums[i] = newColumnAccum()
	}

	seen := make(map[string]int)
	rowsChecked, dupCount := 0, 0
	for iter.Next() {
		values := iter.Values()
		if iter.Row() == 1 {
			continue
		}
		rowsChecked++
		for i, v := range values {
			accums[i].observe(v)
		}
		key := strings.Join(values, rowJoinSep)
		if blankRowKey(values) {
			continue
		}
		seen[key]++
		if seen[key] > 1 {
			dupCount++
		}
	}
	return accums, rowsChecked, dupCount, nil
}

func blankRowKey(values []string) bool {
	for _, v := range values {
		if classify.Classify(v) != classify.Blank {
			return false
		}
	}
	return true
}

// extentAndStreamPass streams the whole sheet once to find the true data
// extent, and on sheets larger than the sample window also gathers coarse
// type counts over the leading streamRows rows. Non-blank values that are
// not numeric all land in the text bucket.
func (p *Profiler) extentAndStreamPass(sheet workbook.Sheet, cols, window, declRows int) (string, *models.StreamStats, error) {
	iter, err := sheet.Rows(0, cols)
	if err != nil {
		return "", nil, err
	}
	defer iter.Close()

	var stream *models.StreamStats
	if declRows > window {
		stream = &models.StreamStats{}
	}

	lastDataRow, maxDataCol := 0, 0
	for iter.Next() {
		row := iter.Row()
		values := iter.Values()
		rowHasData := false
		for i, v := range values {
			if classify.Classify(v) == classify.Blank {
				continue
			}
			rowHasData = true
			if row <= trueRangeColumnRows && i+1 > maxDataCol {
				maxDataCol = i + 1
			}
		}
		if rowHasData && row > lastDataRow {
			lastDataRow = row
		}
		if stream != nil && row <= p.streamRows {
			stream.RowsScanned++
			for _, v := range values {
				switch classify.Classify(v) {
				case classify.Blank:
				case classify.Numeric:
					stream.Numeric++
				default:
					stream.Text++
				}
			}
		}
	}

	if lastDataRow == 0 || maxDataCol == 0 {
		return "A1:A1", stream, nil
	}
	return rangeRef(lastDataRow, maxDataCol), stream, nil
}

// boundaries assembles range metadata from probes and archive facts.
func boundaries(sheet workbook.Sheet, view *workbook.View, facts *workbook.ArchiveFacts, trueRange string) models.Boundaries {
	declared := "A1:A1"
	if sheet.MaxRow > 0 && sheet.MaxCol > 0 {
		declared = rangeRef(sheet.MaxRow, sheet.MaxCol)
	}
	b := models.Boundaries{
		DeclaredRange: declared,
		TrueRange:     trueRange,
		FreezePanes:   sheet.FreezePanes(),
		MergedCells:   sheet.MergedCellCount(),
		PrintArea:     view.PrintArea(sheet.Name),
	}
	if facts != nil {
		b.Hyperlinks = facts.Hyperlinks[sheet.Name]
		b.AutoFilter = facts.AutoFilter[sheet.Name]
	}
	return b
}

// properties assembles protection and formatting metadata.
func properties(sheet workbook.Sheet, facts *workbook.ArchiveFacts) models.SheetProperties {
	props := models.SheetProperties{
		ConditionalFormattingRules: sheet.ConditionalFormattingCount(),
		DataValidationRules:        sheet.DataValidationCount(),
		TabColor:                   sheet.TabColor(),
		Visibility:                 visibility(sheet.Visible),
	}
	if facts != nil {
		prot := facts.Protection[sheet.Name]
		props.Protected = prot.Protected
		props.PasswordProtected = prot.Password
		props.SelectLockedCells = prot.SelectLockedCells
		props.SelectUnlockedCells = prot.SelectUnlockedCells
	}
	return props
}

func visibility(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

// qualityMetrics aggregates column figures at sheet level.
func qualityMetrics(columns []models.ColumnProfile) models.QualityMetrics {
	if len(columns) == 0 {
		return models.QualityMetrics{}
	}
	m := models.QualityMetrics{MinFillRate: 1}
	withHeader := 0
	var fillSum, consSum float64
	for _, col := range columns {
		fillSum += col.FillRate
		consSum += col.ConsistencyScore
		if col.FillRate < m.MinFillRate {
			m.MinFillRate = col.FillRate
		}
		if col.FillRate > m.MaxFillRate {
			m.MaxFillRate = col.FillRate
		}
		if col.QualityIssues > 0 {
			m.ColumnsWithIssues++
		}
		m.TotalQualityIssues += col.QualityIssues
		if !col.HeaderMissing {
			withHeader++
		}
	}
	n := float64(len(columns))
	m.AverageFillRate = fillSum / n
	m.AverageConsistency = consSum / n
	m.HeaderConsistency = float64(withHeader) / n
	return m
}

// emptyProfile is the sentinel profile for a sheet with no declared
// extent. It still carries real property metadata.
func (p *Profiler) emptyProfile(sheet workbook.Sheet, view *workbook.View, facts *workbook.ArchiveFacts) models.SheetProfile {
	return models.SheetProfile{
		Dimensions: "0x0",
		UsedRange:  "A1:A1",
		HasData:    false,
		Columns:    []models.ColumnProfile{},
		Boundaries: boundaries(sheet, view, facts, "A1:A1"),
		Properties: properties(sheet, facts),
	}
}

// rangeRef renders "A1:<col><row>" for a 1-based extent.
func rangeRef(rows, cols int) string {
	letter, _ := excelize.ColumnNumberToName(cols)
	return fmt.Sprintf("A1:%s%d", letter, rows)
}
