package datasource

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/four-factors/internal/config"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout                time.Duration
	MaxRetries             int
	RetryWaitMin           time.Duration
	RetryWaitMax           time.Duration
	MinInterval            time.Duration // minimum spacing between consecutive requests
	CircuitBreakerMax      int           // max consecutive failures before circuit break
	CircuitBreakerCooldown time.Duration // open time before a single trial request
}

// DefaultHTTPClientConfig returns recommended defaults
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:                30 * time.Second,
		MaxRetries:             3,
		RetryWaitMin:           1 * time.Second,
		RetryWaitMax:           10 * time.Second,
		MinInterval:            600 * time.Millisecond,
		CircuitBreakerMax:      5,
		CircuitBreakerCooldown: 30 * time.Second,
	}
}

// HTTPClientConfigFromConfig builds the client configuration from the stats provider settings
func HTTPClientConfigFromConfig(cfg *config.StatsProviderConfig) HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:                cfg.RequestTimeout(),
		MaxRetries:             cfg.RetryAttempts,
		RetryWaitMin:           cfg.RetryWaitMin(),
		RetryWaitMax:           cfg.RetryWaitMax(),
		MinInterval:            cfg.MinRequestInterval(),
		CircuitBreakerMax:      cfg.CircuitBreakerMax,
		CircuitBreakerCooldown: cfg.CircuitBreakerCooldown(),
	}
}

// RateLimitedHTTPClient wraps retryablehttp.Client with rate limiting and circuit breaker
type RateLimitedHTTPClient struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	circuitBreakerMax int
	cooldown          time.Duration

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	trialInFlight     bool
	lastError         error

	logger *logrus.Entry
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	entry := logger.WithField("component", "http_client")

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = customRetryPolicy()
	retryClient.Logger = &leveledLogger{entry: entry}

	// Retries count as requests too; keep them behind the same limiter.
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			_ = limiter.Wait(req.Context())
		}
	}

	circuitMax := cfg.CircuitBreakerMax
	if circuitMax <= 0 {
		circuitMax = DefaultHTTPClientConfig().CircuitBreakerMax
	}
	cooldown := cfg.CircuitBreakerCooldown
	if cooldown <= 0 {
		cooldown = DefaultHTTPClientConfig().CircuitBreakerCooldown
	}

	return &RateLimitedHTTPClient{
		client:            retryClient,
		limiter:           limiter,
		circuitBreakerMax: circuitMax,
		cooldown:          cooldown,
		logger:            entry,
	}
}

// Do executes an HTTP request with rate limiting and circuit breaker.
// An open breaker refuses requests until the cooldown has passed, then lets
// one trial request through: success closes it, failure re-opens it.
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	trial, err := c.admit()
	if err != nil {
		return nil, err
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		c.abandonTrial(trial)
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		c.abandonTrial(trial)
		return nil, fmt.Errorf("failed to wrap request: %w", err)
	}

	// Execute request
	resp, err := c.client.Do(retryReq)

	c.mu.Lock()
	defer c.mu.Unlock()
	if trial {
		c.trialInFlight = false
	}

	// Update circuit breaker state
	if err != nil {
		c.recordFailure(err, trial)
		return nil, err
	}

	if resp.StatusCode < 500 {
		if c.isOpen {
			c.logger.Info("Circuit breaker closed after successful trial request")
		}
		c.consecutiveErrors = 0
		c.isOpen = false
	} else if trial {
		c.recordFailure(fmt.Errorf("trial request returned status %d", resp.StatusCode), trial)
	}

	return resp, nil
}

// admit decides whether a request may be sent and whether it is the half-open trial
func (c *RateLimitedHTTPClient) admit() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return false, nil
	}
	if c.trialInFlight || time.Since(c.openedAt) < c.cooldown {
		return false, fmt.Errorf("circuit breaker open: %w", c.lastError)
	}

	c.trialInFlight = true
	c.logger.Info("Circuit breaker half-open, sending trial request")
	return true, nil
}

func (c *RateLimitedHTTPClient) abandonTrial(trial bool) {
	if !trial {
		return
	}
	c.mu.Lock()
	c.trialInFlight = false
	c.mu.Unlock()
}

// recordFailure must be called with c.mu held
func (c *RateLimitedHTTPClient) recordFailure(err error, trial bool) {
	c.consecutiveErrors++
	c.lastError = err
	if trial || c.consecutiveErrors >= c.circuitBreakerMax {
		c.isOpen = true
		c.openedAt = time.Now()
		c.logger.WithError(err).Errorf("Circuit breaker opened after %d consecutive errors", c.consecutiveErrors)
	}
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// customRetryPolicy defines which HTTP responses should trigger a retry
func customRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil {
			// Retry on network errors
			return true, err
		}

		// Retry on rate limit (429), server errors (500, 502, 503, 504), and gateway errors
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}

		return false, nil
	}
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger
type leveledLogger struct {
	entry *logrus.Entry
}

func (l *leveledLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
