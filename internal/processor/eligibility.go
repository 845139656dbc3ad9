package processor

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultSuffixes are the filename suffixes whose files follow the
// decorated-component convention. Order is significant for the warning text.
var DefaultSuffixes = []string{
	".component.ts",
	".page.ts",
	".dialog.ts",
	".modal.ts",
	".popover.ts",
	".bottomsheet.ts",
	".snackbar.ts",
}

const explanationURL = "https://github.com/angular-eslint/angular-eslint/issues/157#issuecomment-708235861"

// compiledSuffix holds both the suffix and its compiled glob.
type compiledSuffix struct {
	suffix string
	glob   glob.Glob
}

// Eligibility decides from a filename alone whether a file may hold an
// inline component template.
type Eligibility struct {
	processor string
	suffixes  []compiledSuffix
}

// NewEligibility compiles suffixes into base-name globs.
func NewEligibility(processorName string, suffixes []string) (*Eligibility, error) {
	e := &Eligibility{processor: processorName}
	for _, suffix := range suffixes {
		if suffix == "" {
			return nil, fmt.Errorf("%w: empty suffix", ErrInvalidPattern)
		}
		g, err := glob.Compile("*"+suffix, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, suffix, err)
		}
		e.suffixes = append(e.suffixes, compiledSuffix{suffix: suffix, glob: g})
	}
	return e, nil
}

// Matches reports whether filename ends with one of the allowed suffixes.
func (e *Eligibility) Matches(filename string) bool {
	base := path.Base(filepath.ToSlash(filename))
	for _, cs := range e.suffixes {
		if cs.glob.Match(base) {
			return true
		}
	}
	return false
}

// Suffixes returns the configured suffixes in order.
func (e *Eligibility) Suffixes() []string {
	out := make([]string, len(e.suffixes))
	for i, cs := range e.suffixes {
		out[i] = cs.suffix
	}
	return out
}

// Warning returns the four lines announced for an unsupported file.
func (e *Eligibility) Warning(filename string) []string {
	return []string{
		fmt.Sprintf("\nWARNING: You have configured the %s processor to run on an unsupported file, it will do nothing.", e.processor),
		fmt.Sprintf("\n- The file: %s", filename),
		fmt.Sprintf("- Supported file extensions for inline Component template extraction are: %s", strings.Join(e.Suffixes(), ", ")),
		fmt.Sprintf("\nSee this comment for further explanation: %s\n", explanationURL),
	}
}
