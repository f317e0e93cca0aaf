// internal/services/rfp/rfp-management/config.go
package rfpmanagement

import (
	"fmt"
	"time"
)

type Config struct {
	SearchLimit int `mapstructure:"search_limit"`
	// NotifyTimeout bounds index writes and assignment e-mails.
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"`
	DashboardURL  string        `mapstructure:"dashboard_url"`
}

func DefaultConfig() *Config {
	return &Config{
		SearchLimit:   20,
		NotifyTimeout: 5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify_timeout must be positive")
	}
	return nil
}
