package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application-level configuration
type Config struct {
	// Paths
	InputDir   string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ArchiveExt string `yaml:"archive_ext" envconfig:"ARCHIVE_EXT"`
	TableExt   string `yaml:"table_ext" envconfig:"TABLE_EXT"`

	// Logging
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Optional sinks; empty disables them
	DatabaseURL  string `yaml:"database_url" envconfig:"DATABASE_URL"`
	WorkbookPath string `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`

	// Optional SFTP publication of the CSV outputs
	SFTPHost       string `yaml:"sftp_host" envconfig:"SFTP_HOST"`
	SFTPPort       int    `yaml:"sftp_port" envconfig:"SFTP_PORT"`
	SFTPUser       string `yaml:"sftp_user" envconfig:"SFTP_USER"`
	SFTPPass       string `yaml:"sftp_pass" envconfig:"SFTP_PASS"`
	SFTPDir        string `yaml:"sftp_dir" envconfig:"SFTP_DIR"`
	SFTPKnownHosts string `yaml:"sftp_known_hosts" envconfig:"SFTP_KNOWN_HOSTS"` // empty skips host key checks

	// Retries for network sinks only; the transform itself never retries
	MaxRetries int `yaml:"max_retries" envconfig:"MAX_RETRIES"`
}

// Load reads configuration in order of precedence: environment variables
// (including a local .env file), then the YAML file named by CONFIG_FILE,
// then defaults.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Unset variables leave file values in place
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) applyDefaults() {
	c.InputDir = orDefault(c.InputDir, "files/input")
	c.OutputDir = orDefault(c.OutputDir, "files/output")
	c.ArchiveExt = orDefault(c.ArchiveExt, ".zip")
	c.TableExt = orDefault(c.TableExt, ".csv")
	c.LogLevel = orDefault(strings.ToLower(c.LogLevel), "info")
	c.SFTPDir = orDefault(c.SFTPDir, "/inbound")
	if c.SFTPPort <= 0 {
		c.SFTPPort = 22
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
}

// Validate checks the loaded configuration for inconsistent values
func (c *Config) Validate() error {
	for name, ext := range map[string]string{
		"ARCHIVE_EXT": c.ArchiveExt,
		"TABLE_EXT":   c.TableExt,
	} {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%s must start with '.', got %q", name, ext)
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.SFTPEnabled() && (c.SFTPUser == "" || c.SFTPPass == "") {
		return fmt.Errorf("SFTP_HOST is set but SFTP_USER / SFTP_PASS are missing")
	}
	return nil
}

// PostgresEnabled reports whether clean data should also go to PostgreSQL
func (c *Config) PostgresEnabled() bool {
	return c.DatabaseURL != ""
}

// WorkbookEnabled reports whether an .xlsx copy should be written
func (c *Config) WorkbookEnabled() bool {
	return c.WorkbookPath != ""
}

// SFTPEnabled reports whether outputs should be uploaded
func (c *Config) SFTPEnabled() bool {
	return c.SFTPHost != ""
}

func orDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}
