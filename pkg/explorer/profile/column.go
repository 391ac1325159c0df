package profile

import (
	"fmt"
	"sort"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/classify"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

// maxOutliersReported caps the outlier list at the most extreme values.
const maxOutliersReported = 5

// minOutlierSamples is the minimum numeric sample size for the IQR rule.
const minOutlierSamples = 5

// columnAccum accumulates per-column quality signals over one sample pass.
type columnAccum struct {
	nulls   int
	values  map[string]struct{}
	numeric []float64
	issues  int
}

func newColumnAccum() *columnAccum {
	return &columnAccum{values: make(map[string]struct{})}
}

func (a *columnAccum) observe(value string) {
	tag := classify.Classify(value)
	if tag == classify.Blank {
		a.nulls++
		return
	}
	a.values[value] = struct{}{}
	if n, ok := classify.ParseNumeric(value); ok && tag == classify.Numeric {
		a.numeric = append(a.numeric, n)
	}
	if classify.IsError(value) {
		a.issues++
	}
}

// finish folds the accumulated signals into the profile fragment for a
// column sampled over rowsChecked data rows.
func (a *columnAccum) finish(rowsChecked int) (nulls, unique, duplicates, issues int, fillRate float64, outliers []float64) {
	nulls = a.nulls
	unique = len(a.values)
	duplicates = rowsChecked - unique - nulls
	if duplicates < 0 {
		duplicates = 0
	}
	issues = a.issues
	fillRate = 1.0
	if rowsChecked > 0 {
		fillRate = 1.0 - float64(nulls)/float64(rowsChecked)
	}
	outliers = Outliers(a.numeric)
	return
}

// Outliers applies the IQR rule to a numeric sample: Q1 and Q3 are taken
// at the floor indices n/4 and 3n/4 of the sorted sample, and values
// outside [Q1-1.5*IQR, Q3+1.5*IQR] are reported, capped to the 5 most
// extreme. Samples smaller than 5 yield no outliers.
func Outliers(values []float64) []float64 {
	if len(values) < minOutlierSamples {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := sorted[len(sorted)/4]
	q3 := sorted[3*len(sorted)/4]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	var out []float64
	for _, v := range values {
		if v < lower || v > upper {
			out = append(out, v)
		}
	}
	if len(out) > maxOutliersReported {
		distance := func(v float64) float64 {
			if v < lower {
				return lower - v
			}
			return v - upper
		}
		sort.Slice(out, func(i, j int) bool { return distance(out[i]) > distance(out[j]) })
		out = out[:maxOutliersReported]
	}
	return out
}

// dominantType returns the type tag with the highest count. Ties break
// deterministically by tag name.
func dominantType(counts map[string]int) string {
	best, bestCount := string(classify.Blank), -1
	for _, tag := range typeTags {
		if c := counts[tag]; c > bestCount {
			best, bestCount = tag, c
		}
	}
	return best
}

// consistencyScore is the dominant-type share of non-blank samples.
func consistencyScore(counts map[string]int) float64 {
	nonBlank, maxCount := 0, 0
	for _, tag := range typeTags {
		if tag == string(classify.Blank) {
			continue
		}
		c := counts[tag]
		nonBlank += c
		if c > maxCount {
			maxCount = c
		}
	}
	if nonBlank == 0 {
		return 0
	}
	return float64(maxCount) / float64(nonBlank)
}

// typeTags is the fixed tag order used for deterministic iteration.
var typeTags = []string{
	string(classify.Numeric),
	string(classify.Date),
	string(classify.Text),
	string(classify.Boolean),
	string(classify.Blank),
	string(classify.Formula),
	string(classify.Error),
}

func emptyTypeCounts() map[string]int {
	counts := make(map[string]int, len(typeTags))
	for _, tag := range typeTags {
		counts[tag] = 0
	}
	return counts
}

// potentialKeys lists column letters whose sample is near-complete and
// near-unique, making them candidate join keys.
func potentialKeys(columns []models.ColumnProfile) []string {
	var keys []string
	for _, col := range columns {
		if col.FillRate <= 0.95 || col.UniqueValues == 0 {
			continue
		}
		ratio := float64(col.UniqueValues) / float64(max(1, col.UniqueValues+col.Duplicates))
		if ratio > 0.9 {
			keys = append(keys, col.Letter)
		}
	}
	return keys
}

// truncateSample shortens a sample value for the profile's example list.
func truncateSample(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}

// columnRange renders the full column range in A1 notation.
func columnRange(letter string, maxRow int) string {
	return fmt.Sprintf("%s1:%s%d", letter, letter, maxRow)
}
