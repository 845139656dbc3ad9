package config

import (
	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// Config represents the complete ngx-extract configuration.
// It can be loaded from .ngx-extract/config.yml with environment variable overrides.
type Config struct {
	Processor ProcessorConfig `yaml:"processor" mapstructure:"processor"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
}

// ProcessorConfig configures template extraction.
type ProcessorConfig struct {
	Suffixes             []string `yaml:"suffixes" mapstructure:"suffixes"`                               // filename suffixes eligible for extraction
	TemplateFilename     string   `yaml:"template_filename" mapstructure:"template_filename"`             // filename of extracted templates
	MaxComponentsPerFile int      `yaml:"max_components_per_file" mapstructure:"max_components_per_file"` // decorated classes allowed per file
	Locator              string   `yaml:"locator" mapstructure:"locator"`                                 // "scanner" or "treesitter"
	PluginName           string   `yaml:"plugin_name" mapstructure:"plugin_name"`                         // named in fatal errors
	ProcessorName        string   `yaml:"processor_name" mapstructure:"processor_name"`                   // named in warnings
}

// PathsConfig defines which files to split when a directory is given.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for candidate files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// OutputConfig defines how results are written.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json", "yaml" or "text"
	Jobs   int    `yaml:"jobs" mapstructure:"jobs"`     // files split concurrently
	Dir    string `yaml:"dir" mapstructure:"dir"`       // write virtual documents here when set
}

// WatchConfig defines watch mode behavior.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-splitting
	CacheSize  int `yaml:"cache_size" mapstructure:"cache_size"`   // split results remembered
}

// Locator names.
const (
	LocatorScanner    = "scanner"
	LocatorTreeSitter = "treesitter"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Processor: ProcessorConfig{
			Suffixes:             append([]string(nil), processor.DefaultSuffixes...),
			TemplateFilename:     processor.TemplateFilename,
			MaxComponentsPerFile: processor.DefaultMaxComponents,
			Locator:              LocatorScanner,
			PluginName:           processor.PluginName,
			ProcessorName:        processor.ProcessorName,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.ts",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				".angular/**",
				".git/**",
				"**/*.spec.ts",
				"**/*.d.ts",
			},
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Jobs:   4,
			Dir:    "",
		},
		Watch: WatchConfig{
			DebounceMS: 300,
			CacheSize:  10_000,
		},
	}
}

// SplitterOptions maps the processor section onto processor.Options.
// Locator and notifier are supplied by the caller.
func (c *Config) SplitterOptions(locator processor.Locator, notifier processor.Notifier) processor.Options {
	return processor.Options{
		PluginName:       c.Processor.PluginName,
		ProcessorName:    c.Processor.ProcessorName,
		TemplateFilename: c.Processor.TemplateFilename,
		Suffixes:         append([]string(nil), c.Processor.Suffixes...),
		MaxComponents:    c.Processor.MaxComponentsPerFile,
		Locator:          locator,
		Notifier:         notifier,
	}
}
