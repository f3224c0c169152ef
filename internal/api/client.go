// internal/api/client.go

// Package api implements the authenticated HTTP client for the Workers
// Globe REST backend. Every outbound request picks up the current bearer
// token from the TokenSource; any 401 response fires the unauthorized
// handler so the session layer can tear down global state. In-flight
// requests are never cancelled by a logout; late responses simply fail
// with SESSION_EXPIRED when they come back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"workersglobe/internal/common/config"
	apierrors "workersglobe/internal/common/errors"
	"workersglobe/internal/common/logger"
	"workersglobe/internal/common/metrics"
	"workersglobe/internal/common/observability"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for outbound requests. An empty
// string means "no session": the Authorization header is omitted entirely.
type TokenSource interface {
	Token() string
}

// Client is the shared REST transport.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         logger.Logger
	tokens         TokenSource
	onUnauthorized func()
	obs            *observability.Observability
}

type Option func(*Client)

// WithTokenSource attaches the session token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler registers the hook invoked on any 401 response.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithObservability enables OTel request metrics.
func WithObservability(obs *observability.Observability) Option {
	return func(c *Client) { c.obs = obs }
}

// NewClient creates the transport with the client-wide timeout from config.
func NewClient(cfg config.APIConfig, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the token provider after construction. The session
// owner needs the client to exist before it can be built, so this runs
// during startup wiring, before any request is issued.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHandler wires the 401 hook after construction.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Request describes one backend call.
type Request struct {
	Method    string
	Path      string
	Operation string // metrics label, e.g. "jobs.list"
	Query     url.Values
	Body      interface{}
	Out       interface{}
	Token     string // overrides the TokenSource token when set
}

// Do executes the request and decodes the JSON response into req.Out.
// Transport failures come back as NETWORK_FAILURE; HTTP error statuses are
// classified into the standard taxonomy.
func (c *Client) Do(ctx context.Context, req *Request) error {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return apierrors.NewValidationError("request body could not be encoded: " + err.Error())
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bodyReader)
	if err != nil {
		return apierrors.NewNetworkFailureError(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	token := req.Token
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.record(ctx, req, "network_error", elapsed)
		c.logger.Warn("request failed", map[string]interface{}{
			"operation": req.Operation,
			"path":      req.Path,
			"error":     err.Error(),
		})
		return apierrors.NewNetworkFailureError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		c.record(ctx, req, "network_error", elapsed)
		return apierrors.NewNetworkFailureError(err)
	}

	c.record(ctx, req, strconv.Itoa(resp.StatusCode), elapsed)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apierrors.NewSessionExpiredError(extractDetail(respBody))
	}

	if resp.StatusCode >= 400 {
		return apierrors.FromStatus(resp.StatusCode, extractDetail(respBody))
	}

	if req.Out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, req.Out); err != nil {
			return apierrors.NewServerError(resp.StatusCode, "unparseable response body: "+err.Error())
		}
	}

	return nil
}

func (c *Client) record(ctx context.Context, req *Request, status string, elapsed time.Duration) {
	metrics.APIRequestsTotal.WithLabelValues(req.Method, req.Operation, status).Inc()
	metrics.APIRequestDuration.WithLabelValues(req.Method, req.Operation).Observe(elapsed.Seconds())
	if c.obs != nil {
		c.obs.RecordRequest(ctx, req.Operation, status)
		c.obs.RecordRequestDuration(ctx, elapsed, req.Operation)
	}
}

// extractDetail pulls the backend's {"detail": "..."} error text. Falls
// back to the raw body so no diagnostic is lost on odd payloads.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil {
			return text
		}
		return string(envelope.Detail)
	}

	return strings.TrimSpace(string(body))
}
