package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "READTRACK"
	DefaultBaseURL = "http://localhost:8000"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Reader   ReaderConfig   `mapstructure:"reader"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig holds tracker backend configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url" validate:"required,http_url"` // Base URL, e.g. http://localhost:8000
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`         // Per-request timeout
}

// ReaderConfig identifies whose projects are listed
type ReaderConfig struct {
	Name string `mapstructure:"name"` // Empty lists every reader's projects
}

// MetadataConfig holds the book catalog lookup configuration
type MetadataConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"omitempty,http_url"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	RememberProject bool `mapstructure:"remember_project"` // Restore last picked project on start
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"` // "json" (default) or "text"
}

// CacheConfig holds local store configuration
type CacheConfig struct {
	Dir         string        `mapstructure:"dir"`                           // Empty keeps everything in memory
	MetadataTTL time.Duration `mapstructure:"metadata_ttl" validate:"gte=0"` // Zero never expires
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Metadata: MetadataConfig{
			Enabled: true,
			URL:     "https://openlibrary.org",
		},
		UI: UIConfig{
			RememberProject: true,
		},
		Logging: LoggingConfig{
			File:   defaultLogPath(),
			Level:  "INFO",
			Format: "json",
		},
		Cache: CacheConfig{
			Dir:         defaultCachePath(),
			MetadataTTL: 7 * 24 * time.Hour,
		},
	}
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("reader.name", cfg.Reader.Name)
	v.SetDefault("metadata.enabled", cfg.Metadata.Enabled)
	v.SetDefault("metadata.url", cfg.Metadata.URL)
	v.SetDefault("ui.remember_project", cfg.UI.RememberProject)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.metadata_ttl", cfg.Cache.MetadataTTL)
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "readtrack", "readtrack.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "readtrack", "readtrack.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "readtrack")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "readtrack")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "readtrack", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "readtrack", "cache")
	}
}

// LoadConfig loads configuration from .env, the config file and environment.
// configFile overrides the search path when non-empty.
func LoadConfig(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// READTRACK_SERVER_URL overrides server.url
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Server.URL = strings.TrimRight(cfg.Server.URL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their config key rather than Go name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// Validate checks values that would otherwise fail later in odd ways
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// describeFieldError turns "Config.server.url" + "http_url" into a readable line
func describeFieldError(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "http_url":
		return fmt.Sprintf("%s must start with http:// or https://, got %q", key, fe.Value())
	case "gte":
		return key + " must not be negative"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

// ConfigFilePath returns the default config file location
func ConfigFilePath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigAs(cfg, ConfigFilePath())
}

// SaveConfigAs writes the configuration as YAML to path
func SaveConfigAs(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("reader.name", cfg.Reader.Name)
	v.Set("metadata.enabled", cfg.Metadata.Enabled)
	v.Set("metadata.url", cfg.Metadata.URL)
	v.Set("ui.remember_project", cfg.UI.RememberProject)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.metadata_ttl", cfg.Cache.MetadataTTL.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
