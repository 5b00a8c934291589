package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Mail        MailConfig      `toml:"mail"`
	Storage     StorageConfig   `toml:"storage"`
	Ingest      IngestConfig    `toml:"ingest"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

// MailConfig holds IMAP connection settings for the mailbox source
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port" validate:"gte=0,lte=65535"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	UseTLS   bool   `toml:"use_tls"`
	Folder   string `toml:"folder"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// IngestConfig controls attachment staging and extraction
type IngestConfig struct {
	TempDir        string `toml:"temp_dir"`                                      // Staging root for attachment files (default: os temp)
	ExtractTimeout string `toml:"extract_timeout" validate:"omitempty,duration"` // Per-attachment extraction bound, e.g. "30s"
}

// SchedulerConfig controls periodic ingestion while serving
type SchedulerConfig struct {
	Enabled      bool   `toml:"enabled"`
	Schedule     string `toml:"schedule"`                       // Cron schedule format (with seconds field)
	LookbackDays int    `toml:"lookback_days" validate:"gte=0"` // Window size for scheduled runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in archivo.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Mail: MailConfig{
			Port:   993, // IMAP over TLS
			UseTLS: true,
			Folder: "INBOX",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Ingest: IngestConfig{
			TempDir:        "",
			ExtractTimeout: "30s",
		},
		Scheduler: SchedulerConfig{
			Enabled:      false,           // User must explicitly opt-in
			Schedule:     "0 0 */6 * * *", // Every 6 hours
			LookbackDays: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct validation tags
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})

	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ExtractTimeoutDuration returns the parsed extraction timeout, or zero when unset
func (c *Config) ExtractTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Ingest.ExtractTimeout)
	if err != nil {
		return 0
	}
	return d
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ARCHIVO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("ARCHIVO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("ARCHIVO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Mailbox configuration
	if host := os.Getenv("ARCHIVO_MAIL_HOST"); host != "" {
		config.Mail.Host = host
	}
	if port := os.Getenv("ARCHIVO_MAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Mail.Port = p
		}
	}
	if username := os.Getenv("ARCHIVO_MAIL_USERNAME"); username != "" {
		config.Mail.Username = username
	}
	if password := os.Getenv("ARCHIVO_MAIL_PASSWORD"); password != "" {
		config.Mail.Password = password
	}
	if useTLS := os.Getenv("ARCHIVO_MAIL_USE_TLS"); useTLS != "" {
		if b, err := strconv.ParseBool(useTLS); err == nil {
			config.Mail.UseTLS = b
		}
	}
	if folder := os.Getenv("ARCHIVO_MAIL_FOLDER"); folder != "" {
		config.Mail.Folder = folder
	}

	// Storage configuration
	if badgerPath := os.Getenv("ARCHIVO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Ingest configuration
	if tempDir := os.Getenv("ARCHIVO_INGEST_TEMP_DIR"); tempDir != "" {
		config.Ingest.TempDir = tempDir
	}
	if timeout := os.Getenv("ARCHIVO_INGEST_EXTRACT_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err == nil {
			config.Ingest.ExtractTimeout = timeout
		}
	}

	// Logging configuration
	if level := os.Getenv("ARCHIVO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
