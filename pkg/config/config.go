// Package config handles pilotdeck configuration loading.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Proposal ProposalConfig `yaml:"proposal"`
	Layout   report.Layout  `yaml:"layout"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// CORSOrigins lists allowed browser origins. Empty disables CORS
	// handling entirely.
	CORSOrigins []string `yaml:"cors_origins"`

	// EnableLogging turns on per-request log lines.
	EnableLogging bool `yaml:"enable_logging"`
}

// ProposalConfig holds the proposal identity settings that live
// outside the assumption set.
type ProposalConfig struct {
	// WatermarkText is stamped diagonally on every rendered page.
	WatermarkText string `yaml:"watermark_text"`

	// AssumptionsFile is the YAML file holding the editable
	// assumptions. Empty means start from the built-in defaults.
	AssumptionsFile string `yaml:"assumptions_file"`
}

// ExportConfig holds render artifact settings.
type ExportConfig struct {
	// OutputDir is where renders land when no explicit path is given.
	OutputDir string `yaml:"output_dir"`

	// Compress enables zlib compression of PDF content streams.
	Compress bool `yaml:"compress"`

	// WriteManifest writes a provenance manifest JSON next to each
	// rendered PDF.
	WriteManifest bool `yaml:"write_manifest"`
}

// LoggingConfig holds CLI logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// JSON switches the logger from console lines to JSON output.
	JSON bool `yaml:"json"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "localhost",
			Port:          8099,
			EnableLogging: true,
		},
		Proposal: ProposalConfig{
			WatermarkText: proposal.WatermarkText,
		},
		Layout: report.DefaultLayout(),
		Export: ExportConfig{
			OutputDir:     ".",
			Compress:      true,
			WriteManifest: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.OutOfRange("server.port", float64(c.Server.Port), 0, 65535)
	}
	if c.Layout.WrapWidth < 1 {
		return errors.OutOfRange("layout.wrap_width", float64(c.Layout.WrapWidth), 1, 1000)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Configf(errors.ErrConfigInvalid,
			"logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
	return nil
}

// Renderer builds a report renderer from the layout and export
// settings.
func (c *Config) Renderer() *report.Renderer {
	r := report.NewRenderer()
	r.Layout = c.Layout
	r.Compress = c.Export.Compress
	return r
}

// Load loads configuration from a file. Fields absent from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigWrapf(err, errors.ErrConfigNotFound,
				"config file %s does not exist", path)
		}
		return nil, errors.IOWrapf(err, errors.ErrIOReadFailed, "read config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigWrapf(err, errors.ErrConfigParseFailed,
			"parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default when
// path is empty or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save saves configuration to a file, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.ConfigWrapf(err, errors.ErrConfigInitFailed,
			"create config directory %s", dir)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.ConfigWrap(err, errors.ErrConfigWriteFailed, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigWrapf(err, errors.ErrConfigWriteFailed,
			"write config file %s", path)
	}
	return nil
}

// DefaultConfigPath returns the default config file path: a
// pilotdeck.yaml in the working directory wins, otherwise the
// per-user config directory.
func DefaultConfigPath() string {
	if _, err := os.Stat("pilotdeck.yaml"); err == nil {
		return "pilotdeck.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pilotdeck.yaml"
	}
	return filepath.Join(home, ".config", "pilotdeck", "config.yaml")
}

// InitConfig creates a default config file if it doesn't exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists
	}
	return Default().Save(path)
}
