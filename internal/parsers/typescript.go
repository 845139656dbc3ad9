package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// TypeScriptLocator finds decorated component classes with the tree-sitter
// TypeScript grammar. It reports the same occurrences as processor.Scanner.
type TypeScriptLocator struct {
	*treeSitterParser
	decorator   string
	templateKey string
}

// NewTypeScriptLocator creates a locator for @Component({ template: ... }).
func NewTypeScriptLocator() *TypeScriptLocator {
	lang := sitter.NewLanguage(typescript.LanguageTypescript())
	return &TypeScriptLocator{
		treeSitterParser: newTreeSitterParser(lang, "typescript"),
		decorator:        processor.DefaultDecorator,
		templateKey:      processor.DefaultTemplateKey,
	}
}

// Locate implements processor.Locator.
func (l *TypeScriptLocator) Locate(source string) ([]processor.Occurrence, error) {
	src := []byte(source)
	var occurrences []processor.Occurrence

	err := l.parse(src, func(root *sitter.Node) error {
		walkTree(root, func(n *sitter.Node) bool {
			if n.Kind() != "decorator" {
				return true
			}
			if occ, ok := l.occurrence(n, src); ok {
				occurrences = append(occurrences, occ)
			}
			return false
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return occurrences, nil
}

// occurrence converts a decorator node into an occurrence when it is a
// call of the component decorator attached to a class.
func (l *TypeScriptLocator) occurrence(decorator *sitter.Node, src []byte) (processor.Occurrence, bool) {
	if !decoratesClass(decorator) {
		return processor.Occurrence{}, false
	}

	call := findChildByType(decorator, "call_expression")
	if call == nil {
		return processor.Occurrence{}, false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || extractNodeText(fn, src) != l.decorator {
		return processor.Occurrence{}, false
	}

	occ := processor.Occurrence{
		Decorator: processor.Span{Start: int(decorator.StartByte()), End: int(decorator.EndByte())},
	}
	if span, ok := l.templateSpan(call, src); ok {
		occ.Template = &span
		occ.Delimiter = src[span.Start-1]
	}
	return occ, true
}

// templateSpan returns the text span of the template property's literal value.
func (l *TypeScriptLocator) templateSpan(call *sitter.Node, src []byte) (processor.Span, bool) {
	args := call.ChildByFieldName("arguments")
	obj := firstNamedChild(args)
	if obj == nil || obj.Kind() != "object" {
		return processor.Span{}, false
	}

	for _, pair := range findChildrenByType(obj, "pair") {
		if propertyName(pair.ChildByFieldName("key"), src) != l.templateKey {
			continue
		}

		value := pair.ChildByFieldName("value")
		if value == nil {
			return processor.Span{}, false
		}
		switch value.Kind() {
		case "string":
		case "template_string":
			if findChildByType(value, "template_substitution") != nil {
				return processor.Span{}, false
			}
		default:
			return processor.Span{}, false
		}
		return processor.Span{Start: int(value.StartByte()) + 1, End: int(value.EndByte()) - 1}, true
	}

	return processor.Span{}, false
}

// decoratesClass reports whether a decorator node is attached to a class declaration.
func decoratesClass(decorator *sitter.Node) bool {
	parent := decorator.Parent()
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "class_declaration", "abstract_class_declaration", "class":
		return true
	case "export_statement":
		for _, field := range []string{"declaration", "value"} {
			if decl := parent.ChildByFieldName(field); decl != nil && isClassKind(decl.Kind()) {
				return true
			}
		}
	}
	return false
}

func isClassKind(kind string) bool {
	return kind == "class_declaration" || kind == "abstract_class_declaration" || kind == "class"
}

// propertyName returns the name of an object key, unquoting string keys.
func propertyName(key *sitter.Node, src []byte) string {
	if key == nil {
		return ""
	}
	text := extractNodeText(key, src)
	switch key.Kind() {
	case "property_identifier":
		return text
	case "string":
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}
	}
	return ""
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child != nil && child.Kind() != "comment" {
			return child
		}
	}
	return nil
}
