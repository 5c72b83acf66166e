// Package config also provides Viper-based hierarchical configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Extract struct {
		MaxScriptMatches  int    `mapstructure:"max_script_matches" yaml:"max_script_matches"`
		DescriptionMaxLen int    `mapstructure:"description_max_len" yaml:"description_max_len"`
		DedupPrefixLen    int    `mapstructure:"dedup_prefix_len" yaml:"dedup_prefix_len"`
		PhrasesFile       string `mapstructure:"phrases_file" yaml:"phrases_file"`
	} `mapstructure:"extract" yaml:"extract"`

	API struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		Token          string `mapstructure:"token" yaml:"-"` // Never serialize the token
	} `mapstructure:"api" yaml:"api"`

	Store struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then config file, then BANKINTER_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bankinter-csv")
	v.AddConfigPath(".bankinter-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BANKINTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars when the file is broken
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The backend token always comes from the environment, unprefixed.
	if err := v.BindEnv("api.token", "BACKEND_API_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind BACKEND_API_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("extract.max_script_matches", 15)
	v.SetDefault("extract.description_max_len", 100)
	v.SetDefault("extract.dedup_prefix_len", 20)
	v.SetDefault("extract.phrases_file", "")

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_seconds", 30)

	v.SetDefault("store.path", "movements.db")
}

func validateConfig(config *Config) error {
	switch config.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", config.Log.Level)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Extract.MaxScriptMatches < 1 {
		return fmt.Errorf("extract.max_script_matches must be positive")
	}
	if config.Extract.DescriptionMaxLen < 1 {
		return fmt.Errorf("extract.description_max_len must be positive")
	}
	if config.Extract.DedupPrefixLen < 1 {
		return fmt.Errorf("extract.dedup_prefix_len must be positive")
	}
	if config.API.TimeoutSeconds < 1 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}

	return nil
}
