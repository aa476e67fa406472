package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":    true,
	"anthropic": true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// Default values applied when the config file leaves fields unset
const (
	DefaultMaxTokens   = 2000
	DefaultMaxDiffSize = 4000
)

// Env variable conventionally holding the API key, per provider
var providerKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// Config represents the application configuration
type Config struct {
	Provider    string `yaml:"provider" mapstructure:"provider"`
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxDiffSize int    `yaml:"max_diff_size" mapstructure:"max_diff_size"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4o",
		MaxTokens:   DefaultMaxTokens,
		MaxDiffSize: DefaultMaxDiffSize,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[c.Provider] {
		return fmt.Errorf("unsupported provider: %s (supported: %s)",
			c.Provider, strings.Join(SupportedProviders(), ", "))
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if c.MaxDiffSize < 0 {
		return fmt.Errorf("max_diff_size must be non-negative")
	}
	return nil
}

// applyDefaults fills in defaults for unset values
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Provider == "" {
		c.Provider = defaults.Provider
	}
	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaults.MaxTokens
	}
	if c.MaxDiffSize <= 0 {
		c.MaxDiffSize = defaults.MaxDiffSize
	}
}

// ResolveAPIKey returns the API key to use.
// Priority: CLI flag > config file value > provider env variable.
// An empty result means the caller should prompt interactively.
func (c *Config) ResolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if key := expandEnv(c.APIKey); key != "" {
		return key
	}
	if env, ok := providerKeyEnv[c.Provider]; ok {
		return os.Getenv(env)
	}
	return ""
}

// KeyEnvName returns the conventional env variable name for the provider's key
func (c *Config) KeyEnvName() string {
	return providerKeyEnv[c.Provider]
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envName := s[2 : len(s)-1]
		return os.Getenv(envName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// ConfigFileName is the name of the config file looked up in the
// current directory and the home directory.
const ConfigFileName = ".bicommit.yaml"

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory .bicommit.yaml
// 3. Home directory ~/.bicommit.yaml
// 4. Built-in defaults if no file is found
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	if cfg, err := LoadFromFile(ConfigFileName); err == nil {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		homePath := filepath.Join(homeDir, ConfigFileName)
		if cfg, err := LoadFromFile(homePath); err == nil {
			return cfg, nil
		}
	}

	// No config file is not an error; the tool works with defaults
	// plus env variables or CLI flags for the API key.
	return Default(), nil
}
