package dynamics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
)

func testConfig(authority string) Config {
	return Config{
		Enabled:        true,
		TenantID:       "tenant-1",
		ClientID:       "client-1",
		ClientSecret:   "secret",
		EnvironmentURL: "https://org.crm.dynamics.com",
		AuthorityHost:  authority,
	}.withDefaults()
}

// ==========================================
// Acquirer
// ==========================================

func TestClientCredentialsAcquirer_Acquire(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenant-1/oauth2/v2.0/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":    r.PostForm.Get("grant_type"),
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"scope":         r.PostForm.Get("scope"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"abc","token_type":"Bearer","expires_in":3599}`)
	}))
	defer server.Close()

	acquirer := NewClientCredentialsAcquirer(server.Client())
	tok, err := acquirer.Acquire(context.Background(), testConfig(server.URL))
	require.NoError(t, err)

	assert.Equal(t, "abc", tok.AccessToken)
	assert.WithinDuration(t, time.Now().Add(3599*time.Second), tok.ExpiresAt, 5*time.Second)
	assert.Equal(t, "client_credentials", gotForm["grant_type"])
	assert.Equal(t, "client-1", gotForm["client_id"])
	assert.Equal(t, "secret", gotForm["client_secret"])
	assert.Equal(t, "https://org.crm.dynamics.com/.default", gotForm["scope"])
}

func TestClientCredentialsAcquirer_DefaultsMissingExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"abc","token_type":"Bearer"}`)
	}))
	defer server.Close()

	fixed := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	acquirer := NewClientCredentialsAcquirer(server.Client())
	acquirer.now = func() time.Time { return fixed }

	tok, err := acquirer.Acquire(context.Background(), testConfig(server.URL))
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), tok.ExpiresAt)
}

func TestClientCredentialsAcquirer_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client","error_description":"bad secret"}`)
	}))
	defer server.Close()

	acquirer := NewClientCredentialsAcquirer(server.Client())
	_, err := acquirer.Acquire(context.Background(), testConfig(server.URL))
	require.Error(t, err)
}

// ==========================================
// Provider
// ==========================================

type countingAcquirer struct {
	calls   int32
	delay   time.Duration
	token   string
	expires time.Time
	err     error
}

func (a *countingAcquirer) Acquire(ctx context.Context, cfg Config) (*Token, error) {
	atomic.AddInt32(&a.calls, 1)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	if a.err != nil {
		return nil, a.err
	}
	return &Token{AccessToken: a.token, ExpiresAt: a.expires}, nil
}

func TestTokenProvider_CachesToken(t *testing.T) {
	acq := &countingAcquirer{token: "tok", expires: time.Now().Add(time.Hour)}
	provider := NewTokenProvider(testConfig(""), NewTokenCache(), acq, logger.NewTestLogger(t))

	for i := 0; i < 3; i++ {
		token, err := provider.AccessToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&acq.calls))
}

func TestTokenProvider_RefetchesInsideBuffer(t *testing.T) {
	acq := &countingAcquirer{token: "tok", expires: time.Now().Add(30 * time.Second)}
	provider := NewTokenProvider(testConfig(""), NewTokenCache(), acq, logger.NewNoOpLogger())

	_, err := provider.AccessToken(context.Background())
	require.NoError(t, err)
	_, err = provider.AccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&acq.calls))
}

func TestTokenProvider_ConcurrentMissesShareOneFetch(t *testing.T) {
	acq := &countingAcquirer{token: "tok", expires: time.Now().Add(time.Hour), delay: 50 * time.Millisecond}
	provider := NewTokenProvider(testConfig(""), NewTokenCache(), acq, logger.NewNoOpLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.AccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&acq.calls))
}

func TestTokenProvider_MissingCredentials(t *testing.T) {
	cfg := testConfig("")
	cfg.ClientSecret = ""
	acq := &countingAcquirer{}
	provider := NewTokenProvider(cfg, nil, acq, nil)

	_, err := provider.AccessToken(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCRMNotConfigured))
	assert.Equal(t, "Dynamics 365 configuration is not available", errors.AsStandardError(err).Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&acq.calls))
}

func TestTokenProvider_AcquireFailureIsWrapped(t *testing.T) {
	acq := &countingAcquirer{err: fmt.Errorf("invalid_client")}
	cache := NewTokenCache()
	provider := NewTokenProvider(testConfig(""), cache, acq, logger.NewNoOpLogger())

	_, err := provider.AccessToken(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCRMAuthFailed))
	assert.Equal(t, "Failed to authenticate with Dynamics 365: invalid_client", errors.AsStandardError(err).Message)
	assert.Equal(t, 0, cache.Len())
}

type blockingAcquirer struct {
	calls   int32
	started chan struct{}
	release chan struct{}
}

func (a *blockingAcquirer) Acquire(ctx context.Context, cfg Config) (*Token, error) {
	if atomic.AddInt32(&a.calls, 1) == 1 {
		close(a.started)
	}
	select {
	case <-a.release:
		return &Token{AccessToken: "shared", ExpiresAt: time.Now().Add(time.Hour)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestTokenProvider_CancelledCallerDoesNotFailOthers(t *testing.T) {
	acq := &blockingAcquirer{started: make(chan struct{}), release: make(chan struct{})}
	provider := NewTokenProvider(testConfig(""), NewTokenCache(), acq, logger.NewNoOpLogger())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := provider.AccessToken(firstCtx)
		firstErr <- err
	}()
	<-acq.started

	type result struct {
		token string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		token, err := provider.AccessToken(context.Background())
		second <- result{token, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCRMAuthFailed, errors.AsStandardError(err).Code)

	close(acq.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "shared", got.token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&acq.calls))
}
