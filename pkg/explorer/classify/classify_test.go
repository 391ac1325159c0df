package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStrings(t *testing.T) {
	cases := []struct {
		value string
		want  Type
	}{
		{"", Blank},
		{"   ", Blank},
		{"=SUM(A1:A5)", Formula},
		{"#N/A", Error},
		{"#DIV/0!", Error},
		{"#REF!", Error},
		{"TRUE", Boolean},
		{"false", Boolean},
		{"12/31/2024", Date},
		{"2024-01-15", Date},
		{"15-Jan-24", Date},
		{"42", Numeric},
		{"-3.14", Numeric},
		{"1,234.56", Numeric},
		{"$1,200", Numeric},
		{"85%", Numeric},
		{"hello", Text},
		{"12 Main St", Text},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.value), "value %q", tc.value)
	}
}

func TestClassifyNativeTypes(t *testing.T) {
	assert.Equal(t, Blank, Classify(nil))
	assert.Equal(t, Boolean, Classify(true))
	assert.Equal(t, Numeric, Classify(42))
	assert.Equal(t, Numeric, Classify(3.14))
	assert.Equal(t, Date, Classify(time.Now()))
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError("#VALUE!"))
	assert.True(t, IsError("#NAME?"))
	// Annotated cells containing an error token count too.
	assert.True(t, IsError("total: #REF!"))
	assert.True(t, IsError("see #div/0! above"))
	assert.False(t, IsError("N/A"))
	assert.False(t, IsError("error"))
	assert.False(t, IsError("reference"))
}

func TestParseNumeric(t *testing.T) {
	v, ok := ParseNumeric("1,234.5")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)

	v, ok = ParseNumeric("$99")
	assert.True(t, ok)
	assert.Equal(t, 99.0, v)

	_, ok = ParseNumeric("abc")
	assert.False(t, ok)
}
