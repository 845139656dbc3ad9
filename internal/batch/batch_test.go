package batch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// Test Plan for batch decoding:
// - JSON batches decode with records kept verbatim
// - YAML batches decode to the same shape
// - Empty input and malformed shapes are rejected
// - Template lists are only checked to be lists
// - Recombine returns the original file's records, unknown fields included
// - Diagnostics converts records into typed values

const jsonBatch = `[
  [{"ruleId":"quotes","severity":2,"message":"Strings must use singlequote.","line":1,"column":9,"fix":{"range":[12,18],"text":"'bar'"},"custom":{"kept":true}}],
  [{"ruleId":"@angular-eslint/template/banana-in-box","severity":2,"message":"Invalid binding syntax.","line":2,"column":3}]
]`

const yamlBatch = `
- - ruleId: quotes
    severity: 2
    message: Strings must use singlequote.
    line: 1
    column: 9
- []
`

func TestDecode_JSON(t *testing.T) {
	t.Parallel()

	// Test: JSON input keeps every record as raw bytes
	b, err := Decode([]byte(jsonBatch))
	require.NoError(t, err)
	require.Len(t, b, 2)
	require.Len(t, b[0], 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(b[0][0], &record))
	assert.Equal(t, map[string]any{"kept": true}, record["custom"])
}

func TestDecode_YAML(t *testing.T) {
	t.Parallel()

	// Test: YAML input is converted and validated like JSON
	b, err := Decode([]byte(yamlBatch))
	require.NoError(t, err)
	require.Len(t, b, 2)
	assert.Len(t, b[0], 1)
	assert.Empty(t, b[1])

	diags, err := b.Diagnostics()
	require.NoError(t, err)
	assert.Equal(t, "quotes", diags[0][0].RuleID)
	assert.Equal(t, 9, diags[0][0].Column)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"line": 1}`},
		{"flat list", `[{"line": 1, "column": 1, "severity": 2}]`},
		{"missing line", `[[{"column": 1, "severity": 2}]]`},
		{"string severity", `[[{"line": 1, "column": 1, "severity": "error"}]]`},
		{"severity out of range", `[[{"line": 1, "column": 1, "severity": 3}]]`},
		{"bad fix range", `[[{"line": 1, "column": 1, "severity": 2, "fix": {"range": [1], "text": ""}}]]`},
		{"truncated json", `[[{"line": 1`},
		{"template list not a list", `[[], {"line": 1}]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Test: shape violations surface as ErrInvalidBatch
			_, err := Decode([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidBatch)
		})
	}
}

func TestDecode_LenientTemplateLists(t *testing.T) {
	t.Parallel()

	// Test: malformed records in a template list do not reject the batch
	input := `[
  [{"ruleId":"quotes","severity":2,"message":"m","line":1,"column":9}],
  [{"severity":"bad"}, "not even an object"]
]`
	b, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, b, 2)

	out := b.Recombine("test.component.ts")
	require.Len(t, out, 1)
	assert.JSONEq(t, `{"ruleId":"quotes","severity":2,"message":"m","line":1,"column":9}`, string(out[0]))

	// Test: typed conversion skips the unconvertible template list
	diags, err := b.Diagnostics()
	require.NoError(t, err)
	require.Len(t, diags, 2)
	require.Len(t, diags[0], 1)
	assert.Equal(t, "quotes", diags[0][0].RuleID)
	assert.Nil(t, diags[1])
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	// Test: whitespace-only input is reported separately
	_, err := Decode([]byte("  \n"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBatch_Recombine(t *testing.T) {
	t.Parallel()

	// Test: only the original document's records survive, byte for byte
	b, err := Decode([]byte(jsonBatch))
	require.NoError(t, err)

	out := b.Recombine("test.component.ts")
	require.Len(t, out, 1)
	assert.JSONEq(t,
		`{"ruleId":"quotes","severity":2,"message":"Strings must use singlequote.","line":1,"column":9,"fix":{"range":[12,18],"text":"'bar'"},"custom":{"kept":true}}`,
		string(out[0]))
}

func TestBatch_Diagnostics(t *testing.T) {
	t.Parallel()

	// Test: typed conversion keeps the fix and severity
	b, err := Decode([]byte(jsonBatch))
	require.NoError(t, err)

	diags, err := b.Diagnostics()
	require.NoError(t, err)
	require.Len(t, diags, 2)

	first := diags[0][0]
	assert.Equal(t, processor.SeverityError, first.Severity)
	require.NotNil(t, first.Fix)
	assert.Equal(t, [2]int{12, 18}, first.Fix.Range)
	assert.Equal(t, "'bar'", first.Fix.Text)
	assert.Equal(t, "@angular-eslint/template/banana-in-box", diags[1][0].RuleID)
}
