package cli

import (
	"fmt"

	"github.com/mvp-joe/ngx-extract/internal/config"
	"github.com/mvp-joe/ngx-extract/internal/parsers"
	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// newLocator returns the locator named in the processor config.
func newLocator(name string) (processor.Locator, error) {
	switch name {
	case "", config.LocatorScanner:
		return processor.NewScanner(), nil
	case config.LocatorTreeSitter:
		return parsers.NewTypeScriptLocator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLocator, name)
	}
}
