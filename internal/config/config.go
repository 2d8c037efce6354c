// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Generation GenerationConfig `mapstructure:"generation"`
	Study      StudyConfig      `mapstructure:"study"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`

	// AuthTokens maps bearer tokens to user IDs. Development-only stand-in
	// for a real identity provider, which is outside this service.
	AuthTokens map[string]string `mapstructure:"auth_tokens"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite3"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenRouterConfig struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	BaseURL          string `mapstructure:"base_url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type GenerationConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Limit         int `mapstructure:"limit" validate:"min=1"`
	WindowMinutes int `mapstructure:"window_minutes" validate:"min=1"`
}

type StudyConfig struct {
	// DefaultSessionLimit is used when a session request carries no limit.
	// MaxSessionLimit caps the limit a client may request.
	DefaultSessionLimit int `mapstructure:"default_session_limit" validate:"min=1"`
	MaxSessionLimit     int `mapstructure:"max_session_limit" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cardlearn")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join("data", "cardlearn.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "cardlearn")
	v.SetDefault("database.username", "cardlearn")
	v.SetDefault("openrouter.model", "openai/gpt-4o-mini")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.timeout_seconds", 30)
	v.SetDefault("openrouter.max_retry_attempts", 3)
	v.SetDefault("generation.rate_limit.limit", 10)
	v.SetDefault("generation.rate_limit.window_minutes", 60)
	v.SetDefault("study.default_session_limit", 20)
	v.SetDefault("study.max_session_limit", 50)

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENROUTER_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openrouter.model", "OPENROUTER_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENROUTER_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
