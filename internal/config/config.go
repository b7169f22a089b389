// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/dps-tool/dps/internal/errors"
	"github.com/dps-tool/dps/internal/render"
)

// Config represents the application configuration. Everything here is a
// default; explicit command-line flags always win.
type Config struct {
	Docker DockerConfig `mapstructure:"docker"`
	Output OutputConfig `mapstructure:"output"`

	// ConfigFilePath stores the path to the loaded config file (not
	// unmarshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// DockerConfig contains runtime invocation settings
type DockerConfig struct {
	Binary string `mapstructure:"binary"` // runtime binary to invoke
}

// OutputConfig contains table presentation defaults
type OutputConfig struct {
	Style       string   `mapstructure:"style"`
	ShowLines   bool     `mapstructure:"show_lines"`
	NoTrunc     bool     `mapstructure:"no_trunc"`
	HideColumns []string `mapstructure:"hide_columns"` // columns hidden by default
}

// Load reads configuration from file and environment variables. A missing
// config file is fine; the defaults stand on their own.
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dps")
		v.AddConfigPath("/etc/dps")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &apperrors.ConfigurationError{ConfigPath: configFileForError(v, configPath), Err: err}
		}
		// Config file not found; using defaults and env vars
	}

	// Environment variable support
	v.SetEnvPrefix("DPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: configFileForError(v, configPath), Err: err}
	}

	cfg.ConfigFilePath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, &apperrors.ConfigurationError{ConfigPath: configFileForError(v, configPath), Err: err}
	}

	return &cfg, nil
}

// Default returns the built-in configuration, used when loading fails or is
// skipped.
func Default() *Config {
	return &Config{
		Docker: DockerConfig{Binary: "docker"},
		Output: OutputConfig{Style: string(render.StyleRounded)},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Docker.Binary == "" {
		return fmt.Errorf("docker.binary must not be empty")
	}
	if _, err := render.ParseStyle(c.Output.Style); err != nil {
		return fmt.Errorf("output.style: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("docker.binary", "docker")

	v.SetDefault("output.style", string(render.StyleRounded))
	v.SetDefault("output.show_lines", false)
	v.SetDefault("output.no_trunc", false)
	v.SetDefault("output.hide_columns", []string{})
}

func configFileForError(v *viper.Viper, configPath string) string {
	if f := v.ConfigFileUsed(); f != "" {
		return f
	}
	if configPath != "" {
		return configPath
	}
	return "(using defaults and environment variables)"
}
