// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/cert-archive/internal/catalog"
	"fjacquet/cert-archive/internal/dateutils"
	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/pdftext"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "CERTARCHIVE"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Archive struct {
		Root        string `mapstructure:"root" yaml:"root"`
		DefaultYear string `mapstructure:"default_year" yaml:"default_year"`
		Provider    string `mapstructure:"provider" yaml:"provider"`
	} `mapstructure:"archive" yaml:"archive"`

	Index struct {
		Output string `mapstructure:"output" yaml:"output"`
	} `mapstructure:"index" yaml:"index"`

	PDF struct {
		Backends      []string `mapstructure:"backends" yaml:"backends"`
		PdftotextPath string   `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Extract struct {
		XMPFallback bool `mapstructure:"xmp_fallback" yaml:"xmp_fallback"`
	} `mapstructure:"extract" yaml:"extract"`

	Domains struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"domains" yaml:"domains"`

	Export struct {
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig loads defaults, then the config file, then environment
// variables. configFile, when set, replaces the search path and must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.cert-archive")
		v.AddConfigPath(".cert-archive")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Plain LOG_LEVEL / LOG_FORMAT are honored when the prefixed ones are unset.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level: %w", err)
	}
	if err := v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind log format: %w", err)
	}

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("archive.root", "archived")
	v.SetDefault("archive.default_year", catalog.DefaultYear)
	v.SetDefault("archive.provider", models.DefaultProvider)

	v.SetDefault("index.output", "js/learning-data.json")

	v.SetDefault("pdf.backends", pdftext.KnownBackends)
	v.SetDefault("pdf.pdftotext_path", pdftext.BackendPdftotext)

	v.SetDefault("extract.xmp_fallback", false)

	v.SetDefault("domains.file", "")

	v.SetDefault("export.csv_delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !dateutils.IsYearName(config.Archive.DefaultYear) {
		return fmt.Errorf("archive.default_year must be four digits, got: %q", config.Archive.DefaultYear)
	}

	if strings.TrimSpace(config.Archive.Provider) == "" {
		return fmt.Errorf("archive.provider must not be empty")
	}

	for _, b := range config.PDF.Backends {
		if !slices.Contains(pdftext.KnownBackends, b) {
			return fmt.Errorf("unknown pdf backend: %s (known: %s)", b, strings.Join(pdftext.KnownBackends, ", "))
		}
	}

	if utf8.RuneCountInString(config.Export.CSVDelimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Export.CSVDelimiter)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.CSVDelimiter)
	return r
}

// ConfigureLoggingFromConfig builds the application logger from the Config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
