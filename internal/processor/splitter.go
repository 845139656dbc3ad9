package processor

import "fmt"

const (
	// PluginName identifies the plugin in fatal errors.
	PluginName = "@angular-eslint/eslint-plugin-template"

	// ProcessorName identifies the processor in advisory notices.
	ProcessorName = "@angular-eslint/template/extract-inline-html"

	// TemplateFilename is the synthesized filename of every extracted template.
	TemplateFilename = "inline-template.component.html"

	// DefaultMaxComponents is the number of decorated classes allowed per file.
	DefaultMaxComponents = 1
)

// Options configures a Splitter. Zero values fall back to defaults.
type Options struct {
	PluginName       string
	ProcessorName    string
	TemplateFilename string
	Suffixes         []string
	MaxComponents    int
	Locator          Locator
	Notifier         Notifier
}

// DefaultOptions returns the options used by the registered processor.
func DefaultOptions() Options {
	return Options{
		PluginName:       PluginName,
		ProcessorName:    ProcessorName,
		TemplateFilename: TemplateFilename,
		Suffixes:         append([]string(nil), DefaultSuffixes...),
		MaxComponents:    DefaultMaxComponents,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PluginName == "" {
		o.PluginName = d.PluginName
	}
	if o.ProcessorName == "" {
		o.ProcessorName = d.ProcessorName
	}
	if o.TemplateFilename == "" {
		o.TemplateFilename = d.TemplateFilename
	}
	if len(o.Suffixes) == 0 {
		o.Suffixes = d.Suffixes
	}
	if o.MaxComponents <= 0 {
		o.MaxComponents = d.MaxComponents
	}
	if o.Locator == nil {
		o.Locator = NewScanner()
	}
	if o.Notifier == nil {
		o.Notifier = NewLogNotifier(nil)
	}
	return o
}

// Splitter turns one source file into its virtual documents.
// A Splitter holds no per-file state and may be shared across goroutines.
type Splitter struct {
	opts        Options
	eligibility *Eligibility
}

// NewSplitter creates a Splitter from opts.
func NewSplitter(opts Options) (*Splitter, error) {
	opts = opts.withDefaults()

	eligibility, err := NewEligibility(opts.ProcessorName, opts.Suffixes)
	if err != nil {
		return nil, err
	}

	return &Splitter{
		opts:        opts,
		eligibility: eligibility,
	}, nil
}

// Eligible reports whether filename may hold an inline template.
func (s *Splitter) Eligible(filename string) bool {
	return s.eligibility.Matches(filename)
}

// Split returns the virtual documents for text. The first document is
// always text itself under filename. An extracted template, if any, follows
// under the synthesized template filename.
//
// Files that declare more decorated classes than allowed fail with a
// *LimitError; nothing is silently dropped.
func (s *Splitter) Split(text, filename string) ([]VirtualDocument, error) {
	original := VirtualDocument{Text: text, Filename: filename}

	if !s.eligibility.Matches(filename) {
		for _, line := range s.eligibility.Warning(filename) {
			s.opts.Notifier.Warn(line)
		}
		return []VirtualDocument{original}, nil
	}

	occurrences, err := s.opts.Locator.Locate(text)
	if err != nil {
		return nil, fmt.Errorf("failed to locate components in %s: %w", filename, err)
	}

	if len(occurrences) > s.opts.MaxComponents {
		return nil, &LimitError{
			Plugin:   s.opts.PluginName,
			Limit:    s.opts.MaxComponents,
			Found:    len(occurrences),
			Filename: filename,
		}
	}

	docs := []VirtualDocument{original}
	for _, occ := range occurrences {
		if occ.Template == nil {
			continue
		}
		if occ.Template.Start < 0 || occ.Template.End > len(text) || occ.Template.Start > occ.Template.End {
			s.opts.Notifier.Warn(fmt.Sprintf("Warning: locator returned out-of-range template span %v for %s", *occ.Template, filename))
			continue
		}
		docs = append(docs, VirtualDocument{
			Text:     occ.Template.Text(text),
			Filename: s.opts.TemplateFilename,
		})
	}

	return docs, nil
}
