package utilityapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://utilityapi.com/api"

	maxJSONResponseBytes = 32 << 20
	maxFileResponseBytes = 512 << 20
)

var ErrAccessTokenRequired = errors.New("access token is required")

// Config is everything a Connection needs. Only AccessToken is required.
type Config struct {
	BaseURL     string
	AccessToken string
	HTTPClient  *http.Client
	// RequestTimeout bounds a single HTTP exchange when ctx has no deadline.
	// Zero leaves requests unbounded.
	RequestTimeout time.Duration
	// RateLimit paces outgoing requests per second. Zero disables pacing.
	RateLimit float64
	RateBurst int
	Logger    logrus.FieldLogger
	Metrics   *Metrics
}

// Connection issues authenticated requests against the API and maps every
// non-success status to a *domain.HTTPError before the body is decoded.
type Connection struct {
	baseURL        *url.URL
	token          string
	httpClient     *http.Client
	requestTimeout time.Duration
	limiter        *rate.Limiter
	logger         logrus.FieldLogger
	metrics        *Metrics
}

type request struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	limit     int64
}

func NewConnection(cfg Config) (*Connection, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, ErrAccessTokenRequired
	}

	rawBase := cfg.BaseURL
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	baseURL, err := url.Parse(rawBase)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if baseURL.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Connection{
		baseURL:        baseURL,
		token:          cfg.AccessToken,
		httpClient:     httpClient,
		requestTimeout: cfg.RequestTimeout,
		limiter:        limiter,
		logger:         logger,
		metrics:        cfg.Metrics,
	}, nil
}

func (c *Connection) BaseURL() string {
	return c.baseURL.String()
}

func (c *Connection) getJSON(ctx context.Context, operation string, path string, query url.Values, out any) error {
	data, err := c.do(ctx, request{operation: operation, method: http.MethodGet, path: path, query: query, limit: maxJSONResponseBytes})
	if err != nil {
		return err
	}
	return decodeBody(operation, data, out)
}

func (c *Connection) postJSON(ctx context.Context, operation string, path string, body any, out any) error {
	data, err := c.do(ctx, request{operation: operation, method: http.MethodPost, path: path, body: body, limit: maxJSONResponseBytes})
	if err != nil {
		return err
	}
	return decodeBody(operation, data, out)
}

func (c *Connection) getRaw(ctx context.Context, operation string, path string) ([]byte, error) {
	return c.do(ctx, request{operation: operation, method: http.MethodGet, path: path, limit: maxFileResponseBytes})
}

func (c *Connection) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: wait for rate limiter: %w", r.method, r.path, err)
		}
	}

	endpoint := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", r.operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, r.method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", r.operation, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry := c.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"operation":  r.operation,
		"method":     r.method,
		"path":       r.path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(r.operation, "error", time.Since(start))
		entry.WithError(err).WithField("duration", time.Since(start)).Debug("utilityapi request failed")
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, r.limit))
	elapsed := time.Since(start)
	c.metrics.observe(r.operation, strconv.Itoa(resp.StatusCode), elapsed)
	entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": elapsed,
	}).Debug("utilityapi request")

	if err := checkStatus(r.method, r.path, resp.StatusCode, data); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, fmt.Errorf("read %s response: %w", r.operation, readErr)
	}

	return data, nil
}

func (c *Connection) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || c.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

func decodeBody(operation string, data []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

// resourcePath escapes each segment and joins them with "/".
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return strings.Join(escaped, "/")
}
