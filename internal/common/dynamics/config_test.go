package dynamics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rfp-dashboard/internal/common/config"
)

func TestConfigFromApp(t *testing.T) {
	cfg := ConfigFromApp(config.Dynamics365Config{
		Enabled:        true,
		TenantID:       "tenant",
		ClientID:       "client",
		ClientSecret:   "secret",
		EnvironmentURL: "https://org.crm.dynamics.com/",
		Timeout:        5000,
	})

	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "https://org.crm.dynamics.com/api/data/v9.2", cfg.APIURL())
	assert.Equal(t, "https://login.microsoftonline.com/tenant/oauth2/v2.0/token", cfg.TokenURL())
	assert.Equal(t, "https://org.crm.dynamics.com/.default", cfg.Scope())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfig_IsEnabled(t *testing.T) {
	full := Config{Enabled: true, TenantID: "t", ClientID: "c", ClientSecret: "s", EnvironmentURL: "https://e"}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   bool
	}{
		{name: "flag and credentials", mutate: func(c *Config) {}, want: true},
		{name: "flag off", mutate: func(c *Config) { c.Enabled = false }, want: false},
		{name: "missing tenant", mutate: func(c *Config) { c.TenantID = "" }, want: false},
		{name: "missing client", mutate: func(c *Config) { c.ClientID = "" }, want: false},
		{name: "missing secret", mutate: func(c *Config) { c.ClientSecret = "" }, want: false},
		{name: "missing environment", mutate: func(c *Config) { c.EnvironmentURL = "" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)
			assert.Equal(t, tt.want, cfg.IsEnabled())
		})
	}
}

func TestConfig_CustomAPIVersion(t *testing.T) {
	cfg := Config{EnvironmentURL: "https://org.crm4.dynamics.com", APIVersion: "v9.1"}
	assert.Equal(t, "https://org.crm4.dynamics.com/api/data/v9.1", cfg.APIURL())
}
