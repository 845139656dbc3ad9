package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigDirName is the per-project configuration directory.
const ConfigDirName = ".ngx-extract"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching the project directory.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (NGX_EXTRACT_*)
// 2. Config file (.ngx-extract/config.yml or .ngx-extract/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ConfigDirName))
	}

	// NGX_EXTRACT_PROCESSOR_LOCATOR etc.
	v.SetEnvPrefix("NGX_EXTRACT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("processor.suffixes")
	v.BindEnv("processor.template_filename")
	v.BindEnv("processor.max_components_per_file")
	v.BindEnv("processor.locator")
	v.BindEnv("processor.plugin_name")
	v.BindEnv("processor.processor_name")

	v.BindEnv("output.format")
	v.BindEnv("output.jobs")
	v.BindEnv("output.dir")

	v.BindEnv("watch.debounce_ms")
	v.BindEnv("watch.cache_size")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("processor.suffixes", defaults.Processor.Suffixes)
	v.SetDefault("processor.template_filename", defaults.Processor.TemplateFilename)
	v.SetDefault("processor.max_components_per_file", defaults.Processor.MaxComponentsPerFile)
	v.SetDefault("processor.locator", defaults.Processor.Locator)
	v.SetDefault("processor.plugin_name", defaults.Processor.PluginName)
	v.SetDefault("processor.processor_name", defaults.Processor.ProcessorName)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.jobs", defaults.Output.Jobs)
	v.SetDefault("output.dir", defaults.Output.Dir)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	v.SetDefault("watch.cache_size", defaults.Watch.CacheSize)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
