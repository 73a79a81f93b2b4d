package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "sentipulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Charts   ChartsConfig   `yaml:"charts" envconfig:"CHARTS"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/sentiment-report.log"`
}

// AnalysisConfig contains knobs for the aggregation step
type AnalysisConfig struct {
	TopTraders int `yaml:"top_traders" envconfig:"TOP_TRADERS" default:"10" validate:"min=1"`
}

// ChartsConfig contains chart rendering configuration
type ChartsConfig struct {
	Width  int `yaml:"width" envconfig:"WIDTH" default:"1024" validate:"min=64"`
	Height int `yaml:"height" envconfig:"HEIGHT" default:"640" validate:"min=64"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED" default:"false"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (SENTIPULSE_ prefix) take precedence over the
// optional sentipulse.yaml next to the executable.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SENTIPULSE", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Analysis.TopTraders == 0 {
		envConfig.Analysis.TopTraders = fileConfig.Analysis.TopTraders
	}
	if envConfig.Charts.Width == 0 {
		envConfig.Charts.Width = fileConfig.Charts.Width
	}
	if envConfig.Charts.Height == 0 {
		envConfig.Charts.Height = fileConfig.Charts.Height
	}
	if fileConfig.Tracing.Enabled {
		envConfig.Tracing.Enabled = true
	}

	return envConfig
}

// getConfigFilePath returns the path of the optional YAML config file,
// resolved next to the executable like every other application path.
func getConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "sentipulse.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "sentipulse.yaml")
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/sentiment-report.log",
		},
		Analysis: AnalysisConfig{TopTraders: 10},
		Charts:   ChartsConfig{Width: 1024, Height: 640},
	}
}

// String implements fmt.Stringer without leaking anything sensitive.
func (c *Config) String() string {
	return fmt.Sprintf("Config{logging: %s/%s, top_traders: %d, charts: %dx%d, tracing: %t}",
		c.Logging.Level, c.Logging.Output, c.Analysis.TopTraders,
		c.Charts.Width, c.Charts.Height, c.Tracing.Enabled)
}
