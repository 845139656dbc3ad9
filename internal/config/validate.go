package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptySuffixes indicates no eligible filename suffixes are configured
	ErrEmptySuffixes = errors.New("empty suffix list")

	// ErrInvalidSuffix indicates a malformed filename suffix
	ErrInvalidSuffix = errors.New("invalid suffix")

	// ErrInvalidLocator indicates an unsupported locator
	ErrInvalidLocator = errors.New("invalid locator")

	// ErrInvalidLimit indicates a non-positive component limit
	ErrInvalidLimit = errors.New("invalid component limit")

	// ErrEmptyTemplateFilename indicates a missing template filename
	ErrEmptyTemplateFilename = errors.New("empty template filename")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidJobs indicates a non-positive worker count
	ErrInvalidJobs = errors.New("invalid jobs")

	// ErrInvalidWatchSettings indicates invalid watch configuration
	ErrInvalidWatchSettings = errors.New("invalid watch settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateProcessor(&cfg.Processor); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateProcessor(cfg *ProcessorConfig) error {
	var errs []error

	if len(cfg.Suffixes) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one suffix required", ErrEmptySuffixes))
	}
	for _, suffix := range cfg.Suffixes {
		if !strings.HasPrefix(suffix, ".") || strings.ContainsAny(suffix, "/\\") {
			errs = append(errs, fmt.Errorf("%w: %q must start with '.' and contain no path separators", ErrInvalidSuffix, suffix))
		}
	}

	if strings.TrimSpace(cfg.TemplateFilename) == "" {
		errs = append(errs, fmt.Errorf("%w: template_filename is required", ErrEmptyTemplateFilename))
	}

	if cfg.MaxComponentsPerFile <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_components_per_file must be positive, got %d", ErrInvalidLimit, cfg.MaxComponentsPerFile))
	}

	locator := strings.ToLower(cfg.Locator)
	if locator != LocatorScanner && locator != LocatorTreeSitter {
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidLocator, LocatorScanner, LocatorTreeSitter, cfg.Locator))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	for _, pattern := range append(append([]string(nil), cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Format) {
	case FormatJSON, FormatYAML, FormatText:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s', '%s' or '%s', got '%s'", ErrInvalidFormat, FormatJSON, FormatYAML, FormatText, cfg.Format))
	}

	if cfg.Jobs <= 0 {
		errs = append(errs, fmt.Errorf("%w: jobs must be positive, got %d", ErrInvalidJobs, cfg.Jobs))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	var errs []error

	if cfg.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidWatchSettings, cfg.DebounceMS))
	}

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidWatchSettings, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
