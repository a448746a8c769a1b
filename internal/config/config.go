// Package config loads clerk's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ilawal010/Clerk/internal/memo"
)

// DefaultPath is where clerk looks for its config when --config is unset.
const DefaultPath = "clerk.yaml"

// Config holds all clerk configuration.
type Config struct {
	// Root for memos/scanned, memos/attachments and memos/records
	DataDir string `yaml:"data_dir"`

	// SQLite record file; empty means memos/records/memos.db under DataDir
	DatabasePath string `yaml:"database_path"`

	// Reference number prefix, e.g. NITT/DG
	NumberPrefix string `yaml:"number_prefix"`

	// Departments memos can be addressed and forwarded to
	Departments []string `yaml:"departments"`

	// Stamp the reference number onto scanned PDFs
	StampPDFs bool `yaml:"stamp_pdfs"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      ".",
		NumberPrefix: memo.DefaultNumberPrefix,
		Departments:  append([]string(nil), memo.DefaultDepartments...),
		StampPDFs:    true,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("CLERK_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if path := os.Getenv("CLERK_DB"); path != "" {
		c.DatabasePath = path
	}
	if prefix := os.Getenv("CLERK_NUMBER_PREFIX"); prefix != "" {
		c.NumberPrefix = prefix
	}
	if level := os.Getenv("CLERK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// DatabaseFile returns the record file path, resolved against DataDir.
func (c *Config) DatabaseFile() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, "memos", "records", "memos.db")
}

// ValidLogFormats lists the supported log encodings.
var ValidLogFormats = []string{"json", "console"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir must be set")
	}
	if strings.Trim(c.NumberPrefix, "/ ") == "" {
		return fmt.Errorf("number_prefix must be set")
	}

	seen := make(map[string]bool, len(c.Departments))
	for _, d := range c.Departments {
		key := strings.ToLower(strings.TrimSpace(d))
		if key == "" {
			return fmt.Errorf("departments: empty name")
		}
		if seen[key] {
			return fmt.Errorf("departments: duplicate %q", d)
		}
		seen[key] = true
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	validFormat := false
	for _, f := range ValidLogFormats {
		if c.Logging.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}

	return nil
}
