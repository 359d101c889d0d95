package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olgasafonova/mediawiki-delete-category/metrics"
	"github.com/olgasafonova/mediawiki-delete-category/tracing"
	"golang.org/x/time/rate"
)

// Client handles communication with the MediaWiki API.
// A Client holds one authenticated session and is used sequentially.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter

	// Authentication state
	mu        sync.RWMutex
	loggedIn  bool
	csrfToken string
}

// NewClient creates a new MediaWiki API client
func NewClient(config *Config, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Jar:       jar,
			Transport: transport,
		},
		logger:  logger,
		limiter: newLimiter(config.RateLimit),
	}
}

// newLimiter paces requests to perSecond with no burst. Zero or less disables pacing.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// BaseURL returns the API endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// apiRequest makes a single API call, retrying up to MaxRetries times on
// transport errors and 5xx/429 responses. MediaWiki error objects are never
// retried. A delete is only retried after a 429, since any other failure may
// have happened after the server removed the page.
func (c *Client) apiRequest(ctx context.Context, params url.Values) (map[string]interface{}, error) {
	action := actionLabel(params)

	ctx, span := tracing.StartSpan(ctx, "wiki.api."+action)
	defer span.End()
	tracing.AddWikiAttributes(span, action, pageTitle(params))

	start := time.Now()
	result, err := c.doRequest(ctx, action, params)
	duration := time.Since(start).Seconds()

	errorCode := ""
	if apiErr, ok := err.(*APIError); ok {
		errorCode = apiErr.Code
	}
	metrics.RecordAPICall(action, duration, err == nil, errorCode)
	tracing.RecordError(span, err)

	return result, err
}

func (c *Client) doRequest(ctx context.Context, action string, params url.Values) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	params.Set("format", "json")
	body := params.Encode()
	idempotent := action != "delete"

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.APIRetries.WithLabelValues(action).Inc()
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("User-Agent", c.config.UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("API request failed",
				"action", action,
				"attempt", attempt+1,
				"max_retries", c.config.MaxRetries,
				"error", err)
			if !idempotent {
				return nil, lastErr
			}
			continue
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			if !idempotent {
				return nil, lastErr
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// Client errors other than rate limiting are not worth repeating
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, fmt.Errorf("client error %d: %s", resp.StatusCode, string(data))
			}

			if resp.StatusCode == http.StatusTooManyRequests && attempt < c.config.MaxRetries {
				if seconds, parseErr := strconv.Atoi(resp.Header.Get("Retry-After")); parseErr == nil {
					c.logger.Warn("Rate limited, waiting", "retry_after", seconds, "attempt", attempt+1)
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, fmt.Errorf("context cancelled during rate limit wait: %w", ctx.Err())
					}
				}
			}

			lastErr = fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
			c.logger.Warn("API returned non-OK status", "action", action, "status", resp.StatusCode, "attempt", attempt+1)
			if !idempotent && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			continue
		}

		var result map[string]interface{}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		if errObj := getMap(result["error"]); errObj != nil {
			return nil, &APIError{Code: getString(errObj["code"]), Info: getString(errObj["info"])}
		}

		c.logger.Debug("API request completed", "action", action, "attempt", attempt+1)
		return result, nil
	}

	return nil, lastErr
}

// Login authenticates with the wiki using the configured bot password.
// Calling Login on an authenticated client is a no-op.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loggedIn {
		return nil
	}

	if !c.config.HasCredentials() {
		metrics.AuthFailures.WithLabelValues("missing_credentials").Inc()
		return &AuthenticationError{Code: AuthCodeMissingCredentials, Operation: "login"}
	}

	loginToken, err := c.fetchToken(ctx, "login")
	if err != nil {
		metrics.AuthFailures.WithLabelValues("token").Inc()
		return err
	}

	params := url.Values{}
	params.Set("action", "login")
	params.Set("lgname", c.config.Username)
	params.Set("lgpassword", c.config.Password)
	params.Set("lgtoken", loginToken)

	resp, err := c.apiRequest(ctx, params)
	if err != nil {
		metrics.AuthFailures.WithLabelValues("request").Inc()
		return fmt.Errorf("login failed: %w", err)
	}

	login := getMap(resp["login"])
	if login == nil {
		metrics.AuthFailures.WithLabelValues("response").Inc()
		return fmt.Errorf("unexpected login response")
	}

	if result := getString(login["result"]); result != "Success" {
		metrics.AuthFailures.WithLabelValues("rejected").Inc()
		reason := getString(login["reason"])
		if reason == "" {
			reason = result
		}
		return &AuthenticationError{
			Code:      AuthCodeInvalidCredentials,
			Operation: "login",
			Reason:    reason,
		}
	}

	c.loggedIn = true
	c.logger.Info("Successfully logged in", "username", c.config.Username, "wiki_url", c.config.BaseURL)
	return nil
}

// fetchToken requests a token of the given type ("login" or "csrf")
func (c *Client) fetchToken(ctx context.Context, tokenType string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", tokenType)

	resp, err := c.apiRequest(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to get %s token: %w", tokenType, err)
	}

	tokens := getMap(getMap(resp["query"])["tokens"])
	token := getString(tokens[tokenType+"token"])
	if token == "" {
		return "", &AuthenticationError{
			Code:      AuthCodeTokenMissing,
			Operation: tokenType + " token",
			Reason:    "no token in response",
		}
	}
	return token, nil
}

// getCSRFToken returns the session's CSRF token, logging in first if needed
func (c *Client) getCSRFToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	token := c.csrfToken
	c.mu.RUnlock()
	if token != "" {
		return token, nil
	}

	if err := c.Login(ctx); err != nil {
		return "", err
	}

	token, err := c.fetchToken(ctx, "csrf")
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.csrfToken = token
	c.mu.Unlock()
	return token, nil
}

// actionLabel names a request for metrics and spans: "query:backlinks", "delete", ...
func actionLabel(params url.Values) string {
	action := params.Get("action")
	if action != "query" {
		return action
	}
	if list := params.Get("list"); list != "" {
		return "query:" + list
	}
	if meta := params.Get("meta"); meta != "" {
		return "query:" + meta
	}
	return action
}

// pageTitle returns the title a request is about, if any
func pageTitle(params url.Values) string {
	for _, key := range []string{"title", "cmtitle", "bltitle", "iutitle"} {
		if v := params.Get(key); v != "" {
			return v
		}
	}
	return ""
}
