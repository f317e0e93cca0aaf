// internal/services/crm/dynamics-sync/config.go
package dynamicssync

import (
	"fmt"
	"time"
)

type Config struct {
	LedgerPrefix string        `mapstructure:"ledger_prefix"`
	LedgerTTL    time.Duration `mapstructure:"ledger_ttl"`

	// SideEffectTimeout bounds ledger writes and event publishing.
	SideEffectTimeout time.Duration `mapstructure:"side_effect_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		LedgerPrefix:      "dynamics:sync:",
		LedgerTTL:         0,
		SideEffectTimeout: 5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.LedgerPrefix == "" {
		return fmt.Errorf("ledger_prefix is required")
	}
	if c.LedgerTTL < 0 {
		return fmt.Errorf("ledger_ttl must not be negative")
	}
	if c.SideEffectTimeout <= 0 {
		return fmt.Errorf("side_effect_timeout must be positive")
	}
	return nil
}
