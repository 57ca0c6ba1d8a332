package moodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RESTPath is the REST server below the Moodle base URL.
	RESTPath = "/webservice/rest/server.php"

	// UploadPath is the draft file upload endpoint below the base URL.
	UploadPath = "/webservice/upload.php"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Ensure Client implements the interface.
var _ driven.RemoteService = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// BaseURL is the Moodle site, without /webservice/rest/server.php.
	BaseURL string

	// Token is the web service token.
	Token string

	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit throttles requests. Zero values mean DefaultRateLimit.
	RateLimit RateLimitConfig

	// HTTPClient replaces the default client, for tests.
	HTTPClient *http.Client
}

// Client calls Moodle web service functions.
type Client struct {
	baseURL     string
	token       string
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a client. BaseURL and Token are required.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%w: Moodle base URL (--base-url or MOODLE_BASE_URL)", domain.ErrNotConfigured)
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %v", domain.ErrInvalidInput, cfg.BaseURL, err)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: Moodle token (--token or MOODLE_TOKEN)", domain.ErrNotConfigured)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:     base,
		token:       cfg.Token,
		http:        httpClient,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
	}, nil
}

// BaseURL returns the normalised site URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post calls a web service function and decodes the JSON result into out.
func (c *Client) Post(ctx context.Context, function string, params map[string]any, out any) error {
	form := url.Values{}
	if err := encodeParams(form, params); err != nil {
		return err
	}
	form.Set("wstoken", c.token)
	form.Set("wsfunction", function)
	form.Set("moodlewsrestformat", "json")

	logger.Debug("POST %s", function)
	body, err := c.do(ctx, c.baseURL+RESTPath, "application/x-www-form-urlencoded",
		func() io.Reader { return strings.NewReader(form.Encode()) })
	if err != nil {
		return fmt.Errorf("%s: %w", function, err)
	}

	if apiErr := parseException(function, body); apiErr != nil {
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrRemoteCall, function, err)
	}
	return nil
}

// do sends one request after waiting for the rate limiter.
func (c *Client) do(ctx context.Context, endpoint, contentType string, body func() io.Reader) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body())
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrRemoteCall, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get(HeaderRetryAfter))
		c.rateLimiter.RecordRateLimitError(retryAfter)
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: endpoint}
	}
	return data, nil
}

// parseException returns an APIError when body is an exception object.
func parseException(function string, body []byte) *APIError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var payload struct {
		Exception string `json:"exception"`
		ErrorCode string `json:"errorcode"`
		Message   string `json:"message"`
		Error     string `json:"error"`
		DebugInfo string `json:"debuginfo"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil
	}

	switch {
	case payload.Exception != "":
		return &APIError{
			Function:  function,
			Exception: payload.Exception,
			ErrorCode: payload.ErrorCode,
			Message:   payload.Message,
			DebugInfo: payload.DebugInfo,
		}
	case payload.Error != "" && payload.ErrorCode != "":
		// upload.php reports failures as {"error": ..., "errorcode": ...}
		return &APIError{
			Function:  function,
			ErrorCode: payload.ErrorCode,
			Message:   payload.Error,
			DebugInfo: payload.DebugInfo,
		}
	default:
		return nil
	}
}

func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
