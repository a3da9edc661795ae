// Package config loads the financemcp configuration from an optional YAML
// file, a .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/seenimoa/financemcp/internal/providers/fmp"
	"github.com/seenimoa/financemcp/internal/providers/newsapi"
)

// EnvPrefix prefixes every environment override, e.g. FINANCEMCP_FMP_API_KEY.
const EnvPrefix = "FINANCEMCP"

// Legacy secret variables, still honored when the prefixed ones are unset.
const (
	LegacyFMPKeyEnv  = "API_KEY"
	LegacyNewsKeyEnv = "NEWS_API_KEY"
)

// Config represents the complete application configuration.
type Config struct {
	FMP     ProviderConfig `mapstructure:"fmp"     yaml:"fmp"`
	NewsAPI ProviderConfig `mapstructure:"newsapi" yaml:"newsapi"`
	Fetch   FetchConfig    `mapstructure:"fetch"   yaml:"fetch"`
	API     APIConfig      `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ProviderConfig locates one upstream REST provider.
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"  yaml:"api_key"`
}

// FetchConfig bounds outbound calls.
type FetchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"     yaml:"timeout"     validate:"gt=0"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency" validate:"gte=1"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         validate:"gte=1,lte=65535"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr is the listen address.
func (a APIConfig) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// Load reads the configuration from file and environment variables.
// A .env file in the working directory is applied to the environment first.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.financemcp/config.yaml
//  3. /etc/financemcp/config.yaml
//
// Environment variables override config file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".financemcp"))
	v.AddConfigPath("/etc/financemcp")

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return build(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// setDefaults sets defaults for all config values. API keys default to
// empty so AutomaticEnv can bind them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("fmp.base_url", fmp.BaseURL)
	v.SetDefault("fmp.api_key", "")
	v.SetDefault("newsapi.base_url", newsapi.BaseURL)
	v.SetDefault("newsapi.api_key", "")

	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.concurrency", 5)

	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads the API keys from environment variables.
// Prefixed names win over the legacy ones.
func overrideFromEnv(cfg *Config) {
	if key := firstEnv(fmpKeyEnv, LegacyFMPKeyEnv); key != "" {
		cfg.FMP.APIKey = key
	}
	if key := firstEnv(newsKeyEnv, LegacyNewsKeyEnv); key != "" {
		cfg.NewsAPI.APIKey = key
	}
}

const (
	fmpKeyEnv  = EnvPrefix + "_FMP_API_KEY"
	newsKeyEnv = EnvPrefix + "_NEWSAPI_API_KEY"
)

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
