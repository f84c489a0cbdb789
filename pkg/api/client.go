package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/config"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/logger"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/monitoring"
	"github.com/bharatblyrgithub/hms-frontend-for-6-sem/pkg/types"
)

// TokenSource supplies the bearer credential current at dispatch time.
// Each request reads the source once when it is built, so a credential
// cleared mid-flight never affects requests already dispatched.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource returning a fixed string. Used in tests.
type StaticToken string

// Token implements TokenSource
func (s StaticToken) Token() string { return string(s) }

// Client is the typed client for the HMS backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *logger.Logger

	// onUnauthorized is the single global hook fired on any
	// 401-equivalent response, independent of the calling component.
	onUnauthorized func()
}

// NewClient creates a new backend API client
func NewClient(cfg *config.APIConfig, tokens TokenSource, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		tokens: tokens,
		logger: log,
	}
}

// SetUnauthorizedHook registers the global authorization-failure hook.
// At most one hook is held; the session manager owns it.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// request describes one call to the backend
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}

	// skipAuth suppresses the Authorization header. Login and register
	// must not carry a leftover credential.
	skipAuth bool
}

// envelope is the standard response wrapper used by the backend
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do executes the request and decodes the data portion of the envelope
// into out. A nil out discards the data.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	requestID := uuid.New().String()
	ctx, span := monitoring.StartClientSpan(ctx, req.method, req.path, requestID)
	defer span.End()

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			monitoring.SpanError(span, err)
			return types.NewTransportError("ENCODE_FAILED", "failed to encode request body", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		monitoring.SpanError(span, err)
		return types.NewTransportError("BAD_REQUEST", "failed to build request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if !req.skipAuth {
		// Capture the credential value once at dispatch time.
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	monitoring.InjectTraceContext(ctx, httpReq.Header)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		monitoring.SpanError(span, err)
		c.logger.WithRequestID(requestID).WithError(err).
			Errorf("%s %s failed", req.method, req.path)
		return types.NewTransportError("REQUEST_FAILED", "request to backend failed", err)
	}
	defer resp.Body.Close()

	monitoring.SpanStatus(span, resp.StatusCode)
	monitoring.RecordAPIRequest(req.method, req.path, resp.StatusCode, duration)
	c.logger.WithRequestID(requestID).
		Debugf("%s %s -> %d in %s", req.method, req.path, resp.StatusCode, duration)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.NewTransportError("READ_FAILED", "failed to read response", err)
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status code still decides.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		monitoring.RecordAuthFailure()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return types.NewAuthorizationError("UNAUTHORIZED", env.Message)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		code := fmt.Sprintf("HTTP_%d", resp.StatusCode)
		if env.Message != "" {
			return types.NewBusinessError(code, env.Message)
		}
		return types.NewTransportError(code, fmt.Sprintf("backend returned status %d", resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	data := env.Data
	if data == nil {
		// Some endpoints respond without the envelope.
		data = raw
	}
	if err := json.Unmarshal(data, out); err != nil {
		return types.NewTransportError("DECODE_FAILED", "failed to decode response", err)
	}
	return nil
}

// getList fetches a list endpoint and returns the decoded data slice
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var items []T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// getOne fetches a single-resource endpoint
func getOne[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	var item T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
