package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/config"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client is the typed HTTP client for the clinic backend. One method per
// backend operation; every request carries the bearer token from the session
// token source and a generated request ID.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
	log        zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration

	// invoked once per unauthorized response so the session layer can
	// clear stored credentials
	onUnauthorized func()
}

type Option func(*Client)

// WithRedisCache enables caching of lookup (input-search) responses.
func WithRedisCache(client *redis.Client, ttl time.Duration) Option {
	return func(c *Client) {
		c.redis = client
		c.cacheTTL = ttl
	}
}

// WithUnauthorizedHook registers a callback fired on USER_NOT_AUTHORIZED.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func NewClient(cfg config.BackendConfig, tokens oauth2.TokenSource, logger *zerolog.Logger, opts ...Option) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	clientLogger := logging.Component(logger, "api-client")

	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		tokens:     tokens,
		limiter:    limiter,
		log:        clientLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) doGet(ctx context.Context, operation, endpoint string, out any) error {
	return c.do(ctx, operation, http.MethodGet, endpoint, nil, out)
}

func (c *Client) doJSON(ctx context.Context, operation, method, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s body: %w", operation, err)
	}
	return c.do(ctx, operation, method, endpoint, bytes.NewReader(data), out)
}

func (c *Client) do(ctx context.Context, operation, method, endpoint string, body io.Reader, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.addHeaders(req); err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(started)
	if err != nil {
		metrics.ObserveRequest(operation, "network_error", elapsed)
		c.log.Error().Err(err).Str("operation", operation).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := c.decodeError(operation, resp)
		metrics.ObserveRequest(operation, "error", elapsed)
		return apiErr
	}

	metrics.ObserveRequest(operation, "ok", elapsed)
	c.log.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request done")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) decodeError(operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)

	if body.Message == messageUserNotAuthorized || resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn().Str("operation", operation).Msg("session no longer authorized")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	message := body.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message, Operation: operation}
}

func (c *Client) addHeaders(req *http.Request) error {
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")

	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token()
	if err != nil {
		// No stored session yet: the login call is the one request that
		// legitimately goes out bare. Anything else gets a 401 back.
		if errors.Is(err, ErrNoToken) {
			return nil
		}
		return err
	}
	token.SetAuthHeader(req)
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
