package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Output    string `mapstructure:"output"`
	Database  string `mapstructure:"database"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load initializes and loads configuration from file
func Load(cfgFile string) (*Config, error) {
	// Set defaults
	viper.SetDefault("output", "out")
	viper.SetDefault("database", "rres.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	// Config file handling
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName("rrestool")
		viper.SetConfigType("yaml")
	}

	// Read config file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateLogSettings(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}

	return &cfg, nil
}

func validateLogSettings(level, format string) error {
	switch level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}

	switch format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}

	return nil
}
