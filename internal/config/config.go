package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/IvanShishkin/datahound/internal/platform"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Report formats understood by the report generator
const (
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatYAML     = "yaml"
	FormatMarkdown = "md"
)

// ValidFormats lists every accepted report format
var ValidFormats = []string{FormatJSON, FormatText, FormatYAML, FormatMarkdown}

// Config represents the scanner configuration
type Config struct {
	// Scan settings
	Roots       []string `mapstructure:"roots"`        // directories to scan
	Exclude     []string `mapstructure:"exclude"`      // path fragments to exclude
	Workers     int      `mapstructure:"workers"`      // file workers per root
	RootWorkers int      `mapstructure:"root_workers"` // roots scanned concurrently
	ScanEmail   bool     `mapstructure:"scan_email"`   // enumerate local mail profiles

	// Report settings
	OutputDir string   `mapstructure:"output_dir"` // directory receiving reports
	Formats   []string `mapstructure:"formats"`    // json, txt, yaml, md
}

// LoadConfig loads configuration from defaults, an optional config file,
// an optional .env file and DATAHOUND_* environment variables. When
// configFile is empty, datahound.yaml is looked up in the working directory
// and in $HOME/.config/datahound.
func LoadConfig(defaults platform.DefaultRootsProvider, configFile string) (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults
	v.SetDefault("roots", defaults.DefaultRoots())
	v.SetDefault("exclude", defaults.DefaultExclusions())
	v.SetDefault("workers", runtime.NumCPU()*2)
	v.SetDefault("root_workers", runtime.NumCPU())
	v.SetDefault("scan_email", true)
	v.SetDefault("output_dir", defaultOutputDir())
	v.SetDefault("formats", []string{FormatJSON, FormatText})

	// Read config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("datahound")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "datahound"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("DATAHOUND")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// defaultOutputDir returns $HOME/file_scanner_results, or a relative
// directory when no home is known
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "file_scanner_results"
	}
	return filepath.Join(home, "file_scanner_results")
}

// Validate checks value ranges and report formats
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got: %d)", c.Workers)
	}
	if c.RootWorkers < 0 {
		return fmt.Errorf("root_workers must not be negative (got: %d)", c.RootWorkers)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	for _, f := range c.Formats {
		if !IsValidFormat(f) {
			return fmt.Errorf("format must be one of: %s (got: %s)", strings.Join(ValidFormats, ", "), f)
		}
	}
	return nil
}

// GetWorkers returns the per-root worker count, defaulting to CPU cores * 2
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU() * 2
	}
	return c.Workers
}

// GetRootWorkers returns how many roots are scanned at once, defaulting to
// the number of CPU cores
func (c *Config) GetRootWorkers() int {
	if c.RootWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.RootWorkers
}

// IsValidFormat checks if a report format is supported
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
