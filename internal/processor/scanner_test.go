package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Scanner:
// - Decorators inside comments and strings are ignored
// - Quotes inside regular expression literals do not open strings
// - A decorator must be followed by a class (modifiers and other decorators allowed)
// - Template key is only matched in key position at depth one
// - Spread elements are never taken as keys
// - Quoted keys, block comments and nested objects before the key are handled
// - Escapes inside the literal are kept verbatim
// - Substituted template literals and concatenations are not extracted
// - Unterminated literals do not produce a template
// - Spans point exactly between the delimiters

func locateOne(t *testing.T, source string) Occurrence {
	t.Helper()
	occs, err := NewScanner().Locate(source)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	return occs[0]
}

func templateText(t *testing.T, source string) (string, bool) {
	t.Helper()
	occ := locateOne(t, source)
	if occ.Template == nil {
		return "", false
	}
	return occ.Template.Text(source), true
}

func TestScanner_IgnoresDecoratorsInCommentsAndStrings(t *testing.T) {
	t.Parallel()

	// Test: only real decorators are counted
	source := `
// @Component({ template: 'a' }) class X {}
/* @Component({ template: 'b' }) class Y {} */
const s = "@Component({ template: 'c' }) class Z {}";
const u = ` + bt + `@Component({}) class W {}` + bt + `;
@Component({ template: 'real' })
export class Real {}
`
	text, ok := templateText(t, source)
	require.True(t, ok)
	assert.Equal(t, "real", text)
}

func TestScanner_RegexLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"backtick in regex", "const re = /" + bt + "/;\n@Component({ template: '<a></a>' })\nexport class A {}"},
		{"quote in class", "const re = /['\"]/g;\n@Component({ template: '<a></a>' })\nexport class A {}"},
		{"escaped slash", "f(/a\\/'/);\n@Component({ template: '<a></a>' })\nexport class A {}"},
		{"after return", "function f() { return /'/.test(x); }\n@Component({ template: '<a></a>' })\nexport class A {}"},
		{"division", "const half = total / 2; const q = 'x';\n@Component({ template: '<a></a>' })\nexport class A {}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Test: the decorator after the regex is found with its template
			text, ok := templateText(t, tt.source)
			require.True(t, ok)
			assert.Equal(t, "<a></a>", text)
		})
	}
}

func TestScanner_DecoratorMustDecorateClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		count  int
	}{
		{"export class", "@Component({}) export class A {}", 1},
		{"bare class", "@Component({})\nclass A {}", 1},
		{"export default abstract", "@Component({}) export default abstract class A {}", 1},
		{"stacked decorators", "@Component({})\n@Injectable()\n@ns.Marker\nexport class A {}", 1},
		{"comment between", "@Component({}) // trailing\n/* block */ export class A {}", 1},
		{"not a class", "@Component({}) function f() {}", 0},
		{"no call", "@Component export class A {}", 0},
		{"other decorator", "@ComponentLike({}) export class A {}", 0},
		{"unbalanced", "@Component({ template: 'x' ", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Test: decorator counting follows the class check
			occs, err := NewScanner().Locate(tt.source)
			require.NoError(t, err)
			assert.Len(t, occs, tt.count)
		})
	}
}

func TestScanner_KeyDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		expected string
		found    bool
	}{
		{
			name:     "quoted key",
			source:   "@Component({ 'template': `<a></a>` }) class A {}",
			expected: "<a></a>",
			found:    true,
		},
		{
			name:     "double quoted value",
			source:   `@Component({ template: "<a title='x'></a>" }) class A {}`,
			expected: "<a title='x'></a>",
			found:    true,
		},
		{
			name:     "block comment before key",
			source:   "@Component({ /* note */ template /* x */ : `<b></b>` }) class A {}",
			expected: "<b></b>",
			found:    true,
		},
		{
			name:     "nested object before key",
			source:   "@Component({ host: { '(click)': 'go({a: 1})', template: 'no' }, template: `<c></c>` }) class A {}",
			expected: "<c></c>",
			found:    true,
		},
		{
			name:     "array before key",
			source:   "@Component({ providers: [{ provide: X, useValue: { template: 'no' } }], template: '<d></d>' }) class A {}",
			expected: "<d></d>",
			found:    true,
		},
		{
			name:   "template as value",
			source: "@Component({ selector: template, other: 'x' }) class A {}",
			found:  false,
		},
		{
			name:   "templateUrl only",
			source: "@Component({ templateUrl: './a.html' }) class A {}",
			found:  false,
		},
		{
			name:   "shorthand property",
			source: "@Component({ template, selector: 'a' }) class A {}",
			found:  false,
		},
		{
			name:   "identifier value",
			source: "@Component({ template: TEMPLATE }) class A {}",
			found:  false,
		},
		{
			name:   "concatenation",
			source: "@Component({ template: '<a>' + x }) class A {}",
			found:  false,
		},
		{
			name:   "substitution",
			source: "@Component({ template: `<a>${x}</a>` }) class A {}",
			found:  false,
		},
		{
			name:   "non-object argument",
			source: "@Component(config) class A {}",
			found:  false,
		},
		{
			name:     "spread before key",
			source:   "@Component({ ...template, template: '<a></a>' }) class A {}",
			expected: "<a></a>",
			found:    true,
		},
		{
			name:   "spread only",
			source: "@Component({ ...template }) class A {}",
			found:  false,
		},
		{
			name:     "trailing comma and comment",
			source:   "@Component({\n  template: `<e></e>`, // done\n}) class A {}",
			expected: "<e></e>",
			found:    true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Test: only a literal value of the depth-one template key is extracted
			text, ok := templateText(t, tt.source)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, text)
			}
		})
	}
}

func TestScanner_EscapesAreVerbatim(t *testing.T) {
	t.Parallel()

	// Test: escaped delimiters stay in the extracted text unchanged
	source := "@Component({ template: `<p>\\`tick\\` and \\${not}</p>` }) class A {}"
	text, ok := templateText(t, source)
	require.True(t, ok)
	assert.Equal(t, "<p>\\`tick\\` and \\${not}</p>", text)
}

func TestScanner_BracesInsideTemplate(t *testing.T) {
	t.Parallel()

	// Test: braces and parentheses inside the literal do not affect nesting
	tmpl := "\n  <div *ngIf=\"a) { b\">{{ (x | y) }}</div>\n  <span>}}}</span>\n"
	source := "@Component({\n  selector: 'a',\n  template: `" + tmpl + "`,\n  styles: [`:host { display: block }`]\n})\nexport class A {}\n"
	text, ok := templateText(t, source)
	require.True(t, ok)
	assert.Equal(t, tmpl, text)
}

func TestScanner_UnterminatedLiteral(t *testing.T) {
	t.Parallel()

	// Test: a missing closing delimiter means no decorator call can be matched
	occs, err := NewScanner().Locate("@Component({ template: `<a>\n }) class A {}")
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestScanner_SpanBoundaries(t *testing.T) {
	t.Parallel()

	// Test: spans exclude the delimiters and the decorator span covers the call
	source := "@Component({ template: '<x/>' }) class A {}"
	occ := locateOne(t, source)
	require.NotNil(t, occ.Template)
	assert.Equal(t, byte('\''), occ.Delimiter)
	assert.Equal(t, "<x/>", source[occ.Template.Start:occ.Template.End])
	assert.Equal(t, 4, occ.Template.Len())
	assert.Equal(t, "@Component({ template: '<x/>' })", occ.Decorator.Text(source))
}

func TestScanner_CustomNames(t *testing.T) {
	t.Parallel()

	// Test: decorator and key names are configurable
	s := &Scanner{Decorator: "Page", TemplateKey: "markup"}
	source := "@Page({ template: 'no', markup: '<m></m>' }) class P {}"
	occs, err := s.Locate(source)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	require.NotNil(t, occs[0].Template)
	assert.Equal(t, "<m></m>", occs[0].Template.Text(source))
}
