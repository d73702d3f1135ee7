package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when no Gemini credential can be resolved.
// The service refuses to start without one; there is no degraded mode.
var ErrMissingAPIKey = errors.New("gemini api key not configured (set GEMINI_API_KEY or gemini.api_key)")

// Config holds all runtime configuration for the service.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Mail    MailConfig    `mapstructure:"mail"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// GeminiConfig configures the external generative capability.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MailConfig configures the simulated mail handoff.
type MailConfig struct {
	// SimulatedDelay stands in for a real send; the handler sleeps this long
	// before answering.
	SimulatedDelay time.Duration `mapstructure:"simulated_delay"`
}

// LoadConfig reads configuration from an optional yaml file, the environment
// (MARKETANLY_ prefix) and a local .env, in that order of increasing
// precedence for the environment sources.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.log_file", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("server.address", ":8090")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", 120*time.Second)
	v.SetDefault("mail.simulated_delay", 1500*time.Millisecond)

	v.SetEnvPrefix("MARKETANLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// GEMINI_API_KEY without the prefix is the conventional spelling and
	// takes precedence over file values.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on configuration the service cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = 120 * time.Second
	}
	if c.Mail.SimulatedDelay < 0 {
		return fmt.Errorf("mail.simulated_delay cannot be negative")
	}
	return nil
}
