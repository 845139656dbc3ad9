package processor

import (
	"fmt"
	"sort"
	"sync"
)

// ExtractInlineHTML is the registered name of the inline template processor.
const ExtractInlineHTML = "extract-inline-html"

// Processor pairs a Splitter with the recombination step, matching the
// preprocess/postprocess contract of the host lint engine.
type Processor struct {
	Name     string
	splitter *Splitter
}

// New creates a named processor.
func New(name string, opts Options) (*Processor, error) {
	splitter, err := NewSplitter(opts)
	if err != nil {
		return nil, err
	}
	return &Processor{Name: name, splitter: splitter}, nil
}

// Preprocess splits text into virtual documents.
func (p *Processor) Preprocess(text, filename string) ([]VirtualDocument, error) {
	return p.splitter.Split(text, filename)
}

// Postprocess collapses per-document diagnostics to those of the original file.
func (p *Processor) Postprocess(batch [][]Diagnostic, filename string) []Diagnostic {
	return Recombine(batch, filename)
}

// SupportsAutofix reports whether fixes from virtual documents can be applied
// to the original file. Extracted templates are reported separately, so no.
func (p *Processor) SupportsAutofix() bool {
	return false
}

// Splitter returns the underlying splitter.
func (p *Processor) Splitter() *Splitter {
	return p.splitter
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Processor{}
)

// Register makes p available through Lookup. It fails if the name is taken.
func Register(p *Processor) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[p.Name]; exists {
		return fmt.Errorf("processor %q already registered", p.Name)
	}
	registry[p.Name] = p
	return nil
}

// Lookup returns the processor registered under name.
func Lookup(name string) (*Processor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// Names returns the registered processor names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	p, err := New(ExtractInlineHTML, DefaultOptions())
	if err != nil {
		panic(err)
	}
	if err := Register(p); err != nil {
		panic(err)
	}
}
