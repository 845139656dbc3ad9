package processor

// VirtualDocument is one lintable view of a source file.
// The first document returned by a Splitter is always the original file.
type VirtualDocument struct {
	Text     string `json:"text" yaml:"text"`
	Filename string `json:"filename" yaml:"filename"`
}

// Span is a half-open byte range [Start, End) in a source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the bytes of source covered by the span.
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

// Occurrence is a decorated class found in a source file.
type Occurrence struct {
	// Decorator covers the decorator from '@' through the closing parenthesis.
	Decorator Span

	// Template covers the template text strictly between the literal's
	// delimiters. Nil when the metadata has no inline template.
	Template *Span

	// Delimiter is the quote character that opened the template literal.
	Delimiter byte
}

// Locator finds decorated classes in host-language source text.
type Locator interface {
	Locate(source string) ([]Occurrence, error)
}

// Fix is an autofix attached to a diagnostic.
type Fix struct {
	Range [2]int `json:"range" yaml:"range"`
	Text  string `json:"text" yaml:"text"`
}

// Diagnostic is a single lint finding as produced by the host engine.
// The processor never inspects diagnostics; the type exists for rendering.
type Diagnostic struct {
	RuleID    string `json:"ruleId,omitempty" yaml:"ruleId,omitempty"`
	Severity  int    `json:"severity" yaml:"severity"`
	Message   string `json:"message" yaml:"message"`
	Line      int    `json:"line" yaml:"line"`
	Column    int    `json:"column" yaml:"column"`
	NodeType  string `json:"nodeType,omitempty" yaml:"nodeType,omitempty"`
	MessageID string `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	EndLine   int    `json:"endLine,omitempty" yaml:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty" yaml:"endColumn,omitempty"`
	Fix       *Fix   `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// Severity levels used by the host engine.
const (
	SeverityOff     = 0
	SeverityWarning = 1
	SeverityError   = 2
)

// SeverityName returns the textual name of a severity level.
func SeverityName(severity int) string {
	switch severity {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "off"
	}
}
