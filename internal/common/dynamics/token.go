package dynamics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/metrics"
)

// defaultTokenLifetime applies when the identity provider omits an expiry.
const defaultTokenLifetime = time.Hour

// Token is an access token with its absolute expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Acquirer exchanges client credentials for an access token.
type Acquirer interface {
	Acquire(ctx context.Context, cfg Config) (*Token, error)
}

// ClientCredentialsAcquirer performs the OAuth2 client-credentials grant
// against Azure AD.
type ClientCredentialsAcquirer struct {
	httpClient *http.Client
	now        func() time.Time
}

func NewClientCredentialsAcquirer(httpClient *http.Client) *ClientCredentialsAcquirer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &ClientCredentialsAcquirer{httpClient: httpClient, now: time.Now}
}

func (a *ClientCredentialsAcquirer) Acquire(ctx context.Context, cfg Config) (*Token, error) {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
		Scopes:       []string{cfg.Scope()},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	tok, err := cc.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("identity provider returned an empty access token")
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = a.now().Add(defaultTokenLifetime)
	}
	return &Token{AccessToken: tok.AccessToken, ExpiresAt: expiresAt}, nil
}

// TokenProvider serves tokens from the cache and fetches on a miss. Concurrent
// misses for the same credentials share one fetch.
type TokenProvider struct {
	cfg      Config
	cache    *TokenCache
	acquirer Acquirer
	group    singleflight.Group
	logger   logger.Logger
}

func NewTokenProvider(cfg Config, cache *TokenCache, acquirer Acquirer, log logger.Logger) *TokenProvider {
	if cache == nil {
		cache = NewTokenCache()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &TokenProvider{
		cfg:      cfg.withDefaults(),
		cache:    cache,
		acquirer: acquirer,
		logger:   log,
	}
}

// AccessToken returns a usable bearer token. The error is a StandardError with
// code CRM_NOT_CONFIGURED or CRM_AUTH_FAILED.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if !p.cfg.HasCredentials() {
		return "", errors.NewCRMNotConfiguredError()
	}

	if token, ok := p.cache.Get(p.cfg.TenantID, p.cfg.ClientID); ok {
		return token, nil
	}

	// The shared fetch must not inherit one caller's cancellation; each
	// caller still stops waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(p.cfg.cacheKey(), func() (interface{}, error) {
		// another caller may have filled the cache while we waited
		if token, ok := p.cache.Get(p.cfg.TenantID, p.cfg.ClientID); ok {
			return token, nil
		}

		acquireCtx, cancel := context.WithTimeout(fetchCtx, p.cfg.Timeout)
		defer cancel()

		tok, err := p.acquirer.Acquire(acquireCtx, p.cfg)
		if err != nil {
			metrics.CRMTokenAcquisitions.WithLabelValues(metrics.Outcome(false)).Inc()
			p.logger.Error("Error acquiring Dynamics 365 access token", map[string]interface{}{
				"tenantId": p.cfg.TenantID,
				"error":    err.Error(),
			})
			return "", errors.NewCRMAuthFailedError(err)
		}

		metrics.CRMTokenAcquisitions.WithLabelValues(metrics.Outcome(true)).Inc()
		p.cache.Put(p.cfg.TenantID, p.cfg.ClientID, tok.AccessToken, tok.ExpiresAt)
		p.logger.Debug("Acquired Dynamics 365 access token", map[string]interface{}{
			"tenantId":  p.cfg.TenantID,
			"expiresAt": tok.ExpiresAt,
		})
		return tok.AccessToken, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", errors.NewCRMAuthFailedError(ctx.Err())
	}
}

// Cache exposes the underlying cache so callers can clear it when
// credentials rotate.
func (p *TokenProvider) Cache() *TokenCache {
	return p.cache
}
