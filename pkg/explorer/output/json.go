// Package output serializes compiled reports.
package output

import (
	"encoding/json"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/models"
)

// ToJSON serializes a report, optionally indented.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// SummaryToJSON serializes only the execution summary block, for callers
// that want a cheap health check of a run.
func SummaryToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report.Execution, "", "  ")
	}
	return json.Marshal(report.Execution)
}
