package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Detector names
const (
	DetectorStale     = "stale"
	DetectorDuplicate = "duplicate"
	DetectorEmpty     = "empty"
)

// AllDetectors lists every analysis in report order
var AllDetectors = []string{DetectorStale, DetectorDuplicate, DetectorEmpty}

// DefaultThresholdDays is the staleness threshold used when nothing else is configured
const DefaultThresholdDays = 30

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	ThresholdDays    int      `mapstructure:"threshold_days"`     // staleness threshold in days
	Workers          int      `mapstructure:"workers"`            // number of fingerprinting goroutines
	Exclude          []string `mapstructure:"exclude"`            // directory names to skip
	MinDuplicateSize string   `mapstructure:"min_duplicate_size"` // smallest file considered for duplicates

	// Detector settings
	Detectors []string `mapstructure:"detectors"` // enabled detectors (empty = all)
	Disable   []string `mapstructure:"disable"`   // disabled detectors

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // console, text, json, yaml, md, html
	OutputFile   string `mapstructure:"output_file"`   // output file path
	NoColor      bool   `mapstructure:"no_color"`      // disable console colors
}

// Default returns the built-in configuration without reading files or environment
func Default() *Config {
	return &Config{
		ThresholdDays:    DefaultThresholdDays,
		Workers:          runtime.NumCPU() * 2,
		Exclude:          defaultExclude(),
		MinDuplicateSize: "0",
	}
}

func defaultExclude() []string {
	return []string{".git", "node_modules", "vendor", ".svn", ".hg"}
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// DIRHOUND_* environment variables. An empty path searches the working
// directory and $HOME/.config/dirhound for dirhound.yaml.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("threshold_days", DefaultThresholdDays)
	v.SetDefault("workers", runtime.NumCPU()*2)
	v.SetDefault("exclude", defaultExclude())
	v.SetDefault("min_duplicate_size", "0")
	v.SetDefault("detectors", []string{})
	v.SetDefault("disable", []string{})
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("no_color", false)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dirhound")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dirhound"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("DIRHOUND")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be corrected silently
func (c *Config) Validate() error {
	if c.ThresholdDays < 0 {
		return fmt.Errorf("threshold_days must be zero or more (got: %d)", c.ThresholdDays)
	}
	if _, err := ParseSize(c.MinDuplicateSize); err != nil {
		return fmt.Errorf("min_duplicate_size: %w", err)
	}
	for _, name := range append(append([]string{}, c.Detectors...), c.Disable...) {
		if !isKnownDetector(name) {
			return fmt.Errorf("unknown detector %q (valid: stale, duplicate, empty)", name)
		}
	}
	return nil
}

// IsDetectorEnabled reports whether the named analysis should run
func (c *Config) IsDetectorEnabled(name string) bool {
	for _, d := range c.Disable {
		if d == name {
			return false
		}
	}
	if len(c.Detectors) == 0 {
		return true
	}
	for _, d := range c.Detectors {
		if d == name {
			return true
		}
	}
	return false
}

// EnabledDetectors returns the enabled detector names in report order
func (c *Config) EnabledDetectors() []string {
	var enabled []string
	for _, name := range AllDetectors {
		if c.IsDetectorEnabled(name) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// MinDuplicateBytes returns MinDuplicateSize in bytes, 0 if it does not parse
func (c *Config) MinDuplicateBytes() int64 {
	size, err := ParseSize(c.MinDuplicateSize)
	if err != nil {
		return 0
	}
	return size
}

func isKnownDetector(name string) bool {
	for _, d := range AllDetectors {
		if d == name {
			return true
		}
	}
	return false
}
