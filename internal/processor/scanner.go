package processor

import "strings"

const (
	// DefaultDecorator is the decorator marking a component class.
	DefaultDecorator = "Component"

	// DefaultTemplateKey is the metadata key holding an inline template.
	// The sibling key "templateUrl" references an external file and is never extracted.
	DefaultTemplateKey = "template"
)

type scanState int

const (
	seekingDecorator scanState = iota
	seekingKey
	inLiteral
	done
)

// Scanner locates decorated classes and their inline templates with a
// linear scan. It tracks comments, string literals and bracket nesting but
// never builds a syntax tree.
type Scanner struct {
	Decorator   string
	TemplateKey string
}

// NewScanner creates a scanner for @Component({ template: ... }).
func NewScanner() *Scanner {
	return &Scanner{
		Decorator:   DefaultDecorator,
		TemplateKey: DefaultTemplateKey,
	}
}

// Locate implements Locator.
func (s *Scanner) Locate(source string) ([]Occurrence, error) {
	var occurrences []Occurrence

	state := seekingDecorator
	// regexAllowed is true where a '/' would start a regular expression
	// literal rather than divide.
	regexAllowed := true
	i := 0
	for state == seekingDecorator && i < len(source) {
		c := source[i]
		switch {
		case c == '/' && peek(source, i+1) == '/':
			i = skipLineComment(source, i)
		case c == '/' && peek(source, i+1) == '*':
			i = skipBlockComment(source, i)
		case c == '/' && regexAllowed:
			i = skipRegex(source, i)
			regexAllowed = false
		case isQuote(c):
			i, _, _ = skipLiteral(source, i)
			regexAllowed = false
		case c == '@':
			occ, end, ok := s.decoratorAt(source, i)
			if !ok {
				i++
				continue
			}
			occurrences = append(occurrences, occ)
			i = end
			regexAllowed = false
		case isIdentStart(c):
			end := readIdent(source, i)
			regexAllowed = regexKeywords[source[i:end]]
			i = end
		case isSpace(c):
			i++
		default:
			regexAllowed = strings.IndexByte("(,=:[!&|?{};+-*%<>~^/", c) >= 0
			i++
		}
	}

	return occurrences, nil
}

// decoratorAt matches "@<Decorator>(...)" at i and checks that it decorates a class.
// It returns the occurrence and the offset just past the closing parenthesis.
func (s *Scanner) decoratorAt(src string, i int) (Occurrence, int, bool) {
	nameStart := i + 1
	nameEnd := readIdent(src, nameStart)
	if src[nameStart:nameEnd] != s.Decorator {
		return Occurrence{}, 0, false
	}

	open := skipTrivia(src, nameEnd)
	if peek(src, open) != '(' {
		return Occurrence{}, 0, false
	}

	end := skipBalanced(src, open)
	if end < 0 {
		return Occurrence{}, 0, false
	}

	if !followedByClass(src, end) {
		return Occurrence{}, 0, false
	}

	occ := Occurrence{Decorator: Span{Start: i, End: end}}

	arg := skipTrivia(src, open+1)
	if peek(src, arg) == '{' {
		if span, delim, ok := s.scanMetadata(src[:end], arg); ok {
			occ.Template = &span
			occ.Delimiter = delim
		}
	}

	return occ, end, true
}

// scanMetadata walks the metadata object literal starting at the '{' at
// open, looking for the template key at depth one. Once the key is found the
// value must be a single string literal without substitutions.
func (s *Scanner) scanMetadata(src string, open int) (Span, byte, bool) {
	state := seekingKey
	depth := 0
	expectKey := false

	i := open
	for state == seekingKey && i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == '/' && peek(src, i+1) == '/':
			i = skipLineComment(src, i)
		case c == '/' && peek(src, i+1) == '*':
			i = skipBlockComment(src, i)
		case c == '{' || c == '(' || c == '[':
			depth++
			expectKey = depth == 1 && c == '{'
			i++
		case c == '}' || c == ')' || c == ']':
			depth--
			i++
			if depth <= 0 {
				state = done
			}
		case c == '.' && peek(src, i+1) == '.' && peek(src, i+2) == '.':
			// A spread element is never a key.
			if depth == 1 {
				expectKey = false
			}
			i += 3
		case c == ',':
			if depth == 1 {
				expectKey = true
			}
			i++
		case isQuote(c):
			end, ok, _ := skipLiteral(src, i)
			if !ok {
				state = done
				break
			}
			if depth == 1 && expectKey {
				expectKey = false
				if src[i+1:end-1] == s.TemplateKey {
					i = end
					state = inLiteral
					break
				}
			}
			i = end
		case isIdentStart(c):
			end := readIdent(src, i)
			if depth == 1 && expectKey {
				expectKey = false
				if src[i:end] == s.TemplateKey {
					i = end
					state = inLiteral
					break
				}
			}
			i = end
		default:
			i++
		}
	}

	if state != inLiteral {
		return Span{}, 0, false
	}

	// Key found: the value decides extraction and nothing after it matters.
	colon := skipTrivia(src, i)
	if peek(src, colon) != ':' {
		return Span{}, 0, false
	}
	q := skipTrivia(src, colon+1)
	if !isQuote(peek(src, q)) {
		return Span{}, 0, false
	}
	end, ok, substituted := skipLiteral(src, q)
	if !ok || substituted {
		return Span{}, 0, false
	}
	if next := peek(src, skipTrivia(src, end)); next != ',' && next != '}' {
		return Span{}, 0, false
	}

	return Span{Start: q + 1, End: end - 1}, src[q], true
}

// followedByClass reports whether a class declaration follows pos, allowing
// further decorators and declaration modifiers in between.
func followedByClass(src string, pos int) bool {
	i := skipTrivia(src, pos)
	for i < len(src) {
		if src[i] == '@' {
			j := readQualifiedIdent(src, i+1)
			if j == i+1 {
				return false
			}
			if k := skipTrivia(src, j); peek(src, k) == '(' {
				if j = skipBalanced(src, k); j < 0 {
					return false
				}
			}
			i = skipTrivia(src, j)
			continue
		}

		j := readIdent(src, i)
		switch src[i:j] {
		case "export", "default", "abstract", "declare":
			i = skipTrivia(src, j)
		case "class":
			return true
		default:
			return false
		}
	}
	return false
}

// skipLiteral skips the string or template literal opening at i.
// It returns the offset after the closing delimiter, whether the literal was
// terminated, and whether a template literal contained ${} substitutions.
// Escapes are stepped over, never interpreted.
func skipLiteral(src string, i int) (int, bool, bool) {
	q := src[i]
	substituted := false
	j := i + 1
	for j < len(src) {
		c := src[j]
		switch {
		case c == '\\':
			j += 2
		case c == q:
			return j + 1, true, substituted
		case q == '`' && c == '$' && peek(src, j+1) == '{':
			substituted = true
			end := skipBalanced(src, j+1)
			if end < 0 {
				return len(src), false, substituted
			}
			j = end
		case q != '`' && c == '\n':
			return j, false, substituted
		default:
			j++
		}
	}
	return len(src), false, substituted
}

// skipBalanced returns the offset after the bracket matching the one at
// open, or -1 if the text ends first. Comments and literals are opaque.
func skipBalanced(src string, open int) int {
	depth := 0
	i := open
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && peek(src, i+1) == '/':
			i = skipLineComment(src, i)
		case c == '/' && peek(src, i+1) == '*':
			i = skipBlockComment(src, i)
		case isQuote(c):
			end, ok, _ := skipLiteral(src, i)
			if !ok {
				return -1
			}
			i = end
		case c == '(' || c == '{' || c == '[':
			depth++
			i++
		case c == ')' || c == '}' || c == ']':
			depth--
			i++
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// regexKeywords are the words after which a '/' starts a regular expression.
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

// skipRegex skips the regular expression literal opening at i, flags
// included. A literal cannot span lines, so when none closes on this line
// only the slash is skipped.
func skipRegex(src string, i int) int {
	inClass := false
	for j := i + 1; j < len(src); j++ {
		switch c := src[j]; {
		case c == '\\':
			j++
		case c == '\n':
			return i + 1
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			j++
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			return j
		}
	}
	return i + 1
}

func skipLineComment(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(src string, i int) int {
	for j := i + 2; j+1 < len(src); j++ {
		if src[j] == '*' && src[j+1] == '/' {
			return j + 2
		}
	}
	return len(src)
}

// skipTrivia skips whitespace and comments.
func skipTrivia(src string, i int) int {
	for i < len(src) {
		switch {
		case isSpace(src[i]):
			i++
		case src[i] == '/' && peek(src, i+1) == '/':
			i = skipLineComment(src, i)
		case src[i] == '/' && peek(src, i+1) == '*':
			i = skipBlockComment(src, i)
		default:
			return i
		}
	}
	return i
}

func readIdent(src string, i int) int {
	if i >= len(src) || !isIdentStart(src[i]) {
		return i
	}
	i++
	for i < len(src) && isIdentPart(src[i]) {
		i++
	}
	return i
}

func readQualifiedIdent(src string, i int) int {
	end := readIdent(src, i)
	for end > i && peek(src, end) == '.' {
		next := readIdent(src, end+1)
		if next == end+1 {
			break
		}
		end = next
	}
	return end
}

func peek(src string, i int) byte {
	if i < 0 || i >= len(src) {
		return 0
	}
	return src[i]
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
