// Package classify assigns a semantic type tag to a single cell value.
// Classification is total and deterministic: every input maps to exactly
// one tag and nothing here can fail.
package classify

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type is the semantic tag assigned to a cell value.
type Type string

const (
	Blank   Type = "blank"
	Numeric Type = "numeric"
	Date    Type = "date"
	Boolean Type = "boolean"
	Text    Type = "text"
	Formula Type = "formula"
	Error   Type = "error"
)

// errorTokens is the fixed vocabulary of spreadsheet error literals,
// matched case-insensitively.
var errorTokens = []string{
	"#N/A", "#ERROR", "#REF!", "#VALUE!", "#DIV/0!", "#NAME?", "#NUM!", "#NULL!",
}

// datePatterns matches common date-like string layouts: D/D/Y, Y/M/D and
// D/Mon/Y with "/" or "-" separators.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
	regexp.MustCompile(`^\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	regexp.MustCompile(`^\d{1,2}[/-][A-Za-z]{3}[/-]\d{2,4}`),
}

// Classify maps a cell value to its semantic type. Natively typed values
// take priority; strings fall through the textual rules in order: blank,
// formula, error token, boolean literal, date-like, numeric-like, text.
func Classify(value any) Type {
	switch v := value.(type) {
	case nil:
		return Blank
	case bool:
		return Boolean
	case int, int32, int64, float32, float64:
		return Numeric
	case time.Time:
		return Date
	case string:
		return classifyString(v)
	default:
		return Text
	}
}

func classifyString(s string) Type {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Blank
	}
	if strings.HasPrefix(trimmed, "=") {
		return Formula
	}
	upper := strings.ToUpper(trimmed)
	for _, token := range errorTokens {
		if upper == token {
			return Error
		}
	}
	switch upper {
	case "TRUE", "FALSE":
		return Boolean
	}
	if IsDateString(trimmed) {
		return Date
	}
	if IsNumericString(trimmed) {
		return Numeric
	}
	return Text
}

// IsError reports whether the value contains one of the fixed error
// tokens anywhere, so annotated cells like "total: #REF!" count too.
func IsError(value string) bool {
	upper := strings.ToUpper(value)
	for _, token := range errorTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}

// IsDateString reports whether the string looks like a date.
func IsDateString(s string) bool {
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsNumericString reports whether the string parses as a number after
// stripping thousands separators, a currency symbol and a percent sign.
func IsNumericString(s string) bool {
	cleaned := strings.NewReplacer(",", "", "$", "", "%", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return false
	}
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

// ParseNumeric extracts the numeric value from a cell string, using the
// same cleaning rules as IsNumericString. The second return is false for
// non-numeric input.
func ParseNumeric(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "$", "", "%", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
