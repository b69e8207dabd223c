// Package config resolves the application configuration from defaults, an
// optional config file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/repo-insights/internal/gateway"
	"github.com/spf13/viper"
)

// Output formats.
const (
	JSONOut  = "json"
	TableOut = "table"
)

// Defaults.
const (
	DefaultBaseURL             = "https://api.github.com/"
	DefaultTimeout             = 15 * time.Second
	DefaultBatchSize           = 5
	DefaultBatchDelay          = 100 * time.Millisecond
	DefaultRetryAttempts       = 2
	DefaultRetryWait           = time.Second
	DefaultRateLimitWait       = 2 * time.Second
	DefaultSecondarySleepLimit = time.Hour
	DefaultProfileRepos        = 30
)

// Config is the validated configuration shared by all commands.
type Config struct {
	BaseURL             string        `mapstructure:"base-url"`
	GraphQLURL          string        `mapstructure:"graphql-url"`
	Token               string        `mapstructure:"token"`
	Timeout             time.Duration `mapstructure:"timeout"`
	BatchSize           int           `mapstructure:"batch-size"`
	BatchDelay          time.Duration `mapstructure:"batch-delay"`
	RetryAttempts       int           `mapstructure:"retry-attempts"`
	RetryWait           time.Duration `mapstructure:"retry-wait"`
	RateLimitWait       time.Duration `mapstructure:"rate-limit-wait"`
	SecondarySleepLimit time.Duration `mapstructure:"secondary-rate-limit-sleep"`
	GraphQLCounts       bool          `mapstructure:"graphql-counts"`
	ProfileRepos        int           `mapstructure:"profile-repos"`
	Output              string        `mapstructure:"output"`
	Color               bool          `mapstructure:"color"`
	Verbose             bool          `mapstructure:"verbose"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base-url", DefaultBaseURL)
	v.SetDefault("graphql-url", "")
	v.SetDefault("token", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("batch-size", DefaultBatchSize)
	v.SetDefault("batch-delay", DefaultBatchDelay)
	v.SetDefault("retry-attempts", DefaultRetryAttempts)
	v.SetDefault("retry-wait", DefaultRetryWait)
	v.SetDefault("rate-limit-wait", DefaultRateLimitWait)
	v.SetDefault("secondary-rate-limit-sleep", DefaultSecondarySleepLimit)
	v.SetDefault("graphql-counts", false)
	v.SetDefault("profile-repos", DefaultProfileRepos)
	v.SetDefault("output", JSONOut)
	v.SetDefault("color", true)
	v.SetDefault("verbose", false)
}

// Load reads the config file (if any) and environment into a validated Config.
// A missing config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".repo-insights")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	v.SetEnvPrefix("REPO_INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// GITHUB_TOKEN is honoured as well, as every GitHub tool does.
	if err := v.BindEnv("token", "REPO_INSIGHTS_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.BatchSize <= 0:
		return fmt.Errorf("batch-size must be positive, got %d", c.BatchSize)
	case c.BatchDelay < 0:
		return fmt.Errorf("batch-delay must not be negative, got %s", c.BatchDelay)
	case c.RetryAttempts <= 0:
		return fmt.Errorf("retry-attempts must be positive, got %d", c.RetryAttempts)
	case c.RetryWait < 0 || c.RateLimitWait < 0:
		return errors.New("retry waits must not be negative")
	case c.ProfileRepos <= 0 || c.ProfileRepos > 100:
		return fmt.Errorf("profile-repos must be between 1 and 100, got %d", c.ProfileRepos)
	}
	if c.Output != JSONOut && c.Output != TableOut {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, JSONOut, TableOut)
	}
	return nil
}

// Gateway returns the client construction settings.
func (c *Config) Gateway() gateway.Config {
	return gateway.Config{
		BaseURL:             c.BaseURL,
		GraphQLURL:          c.GraphQLURL,
		Token:               c.Token,
		Timeout:             c.Timeout,
		SecondarySleepLimit: c.SecondarySleepLimit,
	}
}
