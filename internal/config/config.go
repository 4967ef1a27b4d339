package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kimuray/pcs-gen/internal/decoder"
	"github.com/kimuray/pcs-gen/internal/sqlgen"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from app.env in the config directory or from
// environment variables, which take precedence.
type Config struct {
	DBSource       string `mapstructure:"DB_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	InputEncoding  string `mapstructure:"INPUT_ENCODING"`
	InputHeader    bool   `mapstructure:"INPUT_HEADER"`
	SQLDialect     string `mapstructure:"SQL_DIALECT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
}

var defaults = map[string]any{
	"DB_SOURCE":        "",
	"SERVER_ADDRESS":   ":8080",
	"INPUT_ENCODING":   string(decoder.EncodingUTF8),
	"INPUT_HEADER":     false,
	"SQL_DIALECT":      string(sqlgen.DialectPostgres),
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "console",
	"MAX_UPLOAD_BYTES": 32 << 20,
}

// LoadConfig reads configuration from path/app.env and the environment.
// A missing app.env is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var errs []string

	if _, err := decoder.ParseEncoding(c.InputEncoding); err != nil {
		errs = append(errs, fmt.Sprintf("INPUT_ENCODING (%q) must be utf-8 or shift_jis", c.InputEncoding))
	}
	if _, err := sqlgen.ParseDialect(c.SQLDialect); err != nil {
		errs = append(errs, fmt.Sprintf("SQL_DIALECT (%q) must be postgres or standard", c.SQLDialect))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, warning, error", c.LogLevel))
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: console, json", c.LogFormat))
	}

	if c.MaxUploadBytes <= 0 {
		errs = append(errs, "MAX_UPLOAD_BYTES must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
