package dynamics

import (
	"fmt"
	"strings"
	"time"

	"rfp-dashboard/internal/common/config"
)

const (
	DefaultAPIVersion    = "v9.2"
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	defaultTimeout       = 30 * time.Second
)

// Config carries the credentials and endpoints for one Dynamics 365 environment.
type Config struct {
	Enabled        bool
	TenantID       string
	ClientID       string
	ClientSecret   string
	EnvironmentURL string
	APIVersion     string
	// AuthorityHost overrides the Azure AD host, mainly for tests.
	AuthorityHost string
	Timeout       time.Duration
}

// ConfigFromApp converts the application configuration section.
func ConfigFromApp(c config.Dynamics365Config) Config {
	cfg := Config{
		Enabled:        c.Enabled,
		TenantID:       c.TenantID,
		ClientID:       c.ClientID,
		ClientSecret:   c.ClientSecret,
		EnvironmentURL: c.EnvironmentURL,
		APIVersion:     c.APIVersion,
		Timeout:        config.GetDuration(c.Timeout),
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.AuthorityHost == "" {
		c.AuthorityHost = DefaultAuthorityHost
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// HasCredentials reports whether all four required values are present.
func (c Config) HasCredentials() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != "" && c.EnvironmentURL != ""
}

// IsEnabled is true only when the feature flag is on and the credentials are complete.
func (c Config) IsEnabled() bool {
	return c.Enabled && c.HasCredentials()
}

// APIURL returns the Web API base, e.g. https://org.crm.dynamics.com/api/data/v9.2.
func (c Config) APIURL() string {
	return fmt.Sprintf("%s/api/data/%s", strings.TrimSuffix(c.EnvironmentURL, "/"), c.withDefaults().APIVersion)
}

// TokenURL returns the tenant's v2.0 token endpoint.
func (c Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimSuffix(c.withDefaults().AuthorityHost, "/"), c.TenantID)
}

// Scope is the client-credentials scope for the environment.
func (c Config) Scope() string {
	return strings.TrimSuffix(c.EnvironmentURL, "/") + "/.default"
}

func (c Config) cacheKey() string {
	return c.TenantID + ":" + c.ClientID
}
