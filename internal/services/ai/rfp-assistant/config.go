// internal/services/ai/rfp-assistant/config.go
package rfpassistant

import (
	"fmt"
	"time"
)

type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		Timeout:     60 * time.Second,
		MaxRetries:  2,
		MaxTokens:   8192,
		Temperature: 0.2,
	}
}

// IsConfigured reports whether completions can be requested at all.
func (c *Config) IsConfigured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("llm max_retries cannot be negative")
	}
	return nil
}
