// Package config loads runtime configuration from docflow.yml and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig selects the backing database
type DatabaseConfig struct {
	// URL is a postgres connection string or a sqlite path such as
	// "sqlite://docflow.db". DATABASE_URL overrides it.
	URL string `mapstructure:"url"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AuthConfig configures identity extraction
type AuthConfig struct {
	// JWTSecret enables bearer token verification when set. Without it,
	// identity comes from forwarded headers.
	JWTSecret string `mapstructure:"jwt_secret"`
}

// RedisConfig enables the rate limiter when Addr is set
type RedisConfig struct {
	Addr        string `mapstructure:"addr"`
	RateLimit   int    `mapstructure:"rate_limit"`
	RateWindows int    `mapstructure:"rate_window_seconds"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads docflow.yml from the given directory (or the working directory
// when dir is empty), applies defaults, and layers DOCFLOW_* environment
// variables on top.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.url", "sqlite://docflow.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.rate_limit", 100)
	v.SetDefault("redis.rate_window_seconds", 60)
	v.SetDefault("log.level", "info")

	v.SetConfigName("docflow")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DOCFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// DATABASE_URL wins over both file and prefixed env, matching the
	// convention most deploy platforms set.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", config.Server.Port)
	}

	return &config, nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
