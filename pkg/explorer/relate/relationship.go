package relate

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

// keyKeywords mark headers that look like join keys.
var keyKeywords = []string{"id", "key", "code", "number", "name", "contractor", "client"}

// RelationshipAnalyzer proposes cross-sheet joins from shared column
// headers in the data profile.
type RelationshipAnalyzer struct {
	log *zap.Logger
}

func NewRelationshipAnalyzer(log *zap.Logger) *RelationshipAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &RelationshipAnalyzer{log: log}
}

// Analyze compares header sets for every ordered pair of distinct
// sheets. A pair with shared headers yields one directed potential-join
// record each way. Match rate is shared over the union of both header
// sets.
func (r *RelationshipAnalyzer) Analyze(data models.DataReport) (models.RelationshipReport, error) {
	report := models.RelationshipReport{Relationships: []models.Relationship{}}

	names := make([]string, 0, len(data.Sheets))
	for name := range data.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make(map[string]map[string]struct{}, len(names))
	for _, name := range names {
		headers[name] = headerSet(data.Sheets[name])
	}

	for i := 0; i < len(names); i++ {
		for j := 0; j < len(names); j++ {
			if i == j {
				continue
			}
			src, dst := names[i], names[j]
			rel, ok := relate(src, dst, headers[src], headers[dst])
			if ok {
				report.Relationships = append(report.Relationships, rel)
			}
		}
	}

	r.log.Debug("relationships analyzed", zap.Int("found", len(report.Relationships)))
	return report, nil
}

func headerSet(sheet models.SheetProfile) map[string]struct{} {
	set := make(map[string]struct{})
	for _, col := range sheet.Columns {
		if col.HeaderMissing {
			continue
		}
		set[strings.ToLower(strings.TrimSpace(col.Header))] = struct{}{}
	}
	return set
}

func relate(src, dst string, a, b map[string]struct{}) (models.Relationship, bool) {
	var shared []string
	for header := range a {
		if _, ok := b[header]; ok {
			shared = append(shared, header)
		}
	}
	if len(shared) == 0 {
		return models.Relationship{}, false
	}

	// Key-like headers lead the list, each group alphabetical.
	sort.Slice(shared, func(i, j int) bool {
		ki, kj := isKeyLike(shared[i]), isKeyLike(shared[j])
		if ki != kj {
			return ki
		}
		return shared[i] < shared[j]
	})

	union := len(a) + len(b) - len(shared)
	rate := 0.0
	if union > 0 {
		rate = float64(len(shared)) / float64(union)
	}
	return models.Relationship{
		SourceSheet: src,
		TargetSheet: dst,
		Type:        "potential_join",
		KeyColumns:  shared,
		MatchRate:   rate,
	}, true
}

func isKeyLike(header string) bool {
	for _, kw := range keyKeywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}
