// Package config provides configuration loading and validation for autograde.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel     = errors.New("invalid logging level")
	ErrInvalidLogFormat    = errors.New("invalid logging format")
	ErrInvalidReportFormat = errors.New("invalid report format")
	ErrInvalidTheme        = errors.New("invalid report theme")
)

// Report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Report themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Default configuration values.
const (
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultReportFormat = FormatTable
	DefaultReportTheme  = ThemeLight
)

// EnvPrefix prefixes every environment override, e.g. AUTOGRADE_REPORT_FORMAT.
const EnvPrefix = "AUTOGRADE"

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"json", "text"}
	reportFormats = []string{FormatTable, FormatJSON}
	reportThemes  = []string{ThemeLight, ThemeDark}
)

// Config holds all configuration for autograde.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Report  ReportConfig  `mapstructure:"report"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig controls how grading results are rendered.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	// HTML is the path of the chart page to write. Empty disables it.
	HTML  string `mapstructure:"html"`
	Theme string `mapstructure:"theme"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("autograde")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	config.normalize()

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("report.format", DefaultReportFormat)
	viperCfg.SetDefault("report.html", "")
	viperCfg.SetDefault("report.theme", DefaultReportTheme)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Report.Format = strings.ToLower(c.Report.Format)
	c.Report.Theme = strings.ToLower(c.Report.Theme)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if !slices.Contains(logLevels, config.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(logFormats, config.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if !slices.Contains(reportFormats, config.Report.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidReportFormat, config.Report.Format)
	}

	if !slices.Contains(reportThemes, config.Report.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Report.Theme)
	}

	return nil
}
