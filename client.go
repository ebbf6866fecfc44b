package sdk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/headers"
)

const defaultBaseURL = "https://api.ledgerdesk.io/v1"
const defaultUserAgent = "ledgerdesk-go/" + Version

// HTTPDoer is the transport the client sends requests through. *http.Client
// satisfies it. Retries, TLS and connection pooling belong to the transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides typed access to the LedgerDesk API. It is immutable after
// construction and safe for concurrent use when its HTTPDoer is.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	auth       authChain
	telemetry  TelemetryHooks
	logger     *slog.Logger
	userAgent  string
	timeout    time.Duration
	mode       codec.Mode

	// Grouped service clients.
	Auth      *AuthClient
	Invoices  *InvoicesClient
	Quotes    *QuotesClient
	Purchases *PurchasesClient
	Absences  *AbsencesClient
	Products  *ProductsClient
	Companies *CompaniesClient
	Users     *UsersClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
// Blank BaseURL, AppID, AppSecret and Timeout fall back to the LEDGERDESK_*
// environment variables unless cfg.DisableEnv is set.
func NewClient(cfg Config) (*Client, error) {
	cfg, err := cfg.withEnvDefaults()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("sdk: timeout must be non-negative")
	}
	var httpClient HTTPDoer = http.DefaultClient
	if cfg.HTTPClient != nil {
		httpClient = cfg.HTTPClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	mode := codec.Lenient
	if cfg.StrictDecoding {
		mode = codec.Strict
	}
	client := &Client{
		baseURL:    normalized,
		httpClient: httpClient,
		auth:       buildAuthChain(cfg),
		telemetry:  cfg.Telemetry,
		logger:     logger,
		userAgent:  ua,
		timeout:    cfg.Timeout,
		mode:       mode,
	}
	client.Auth = &AuthClient{client: client}
	client.Invoices = &InvoicesClient{client: client, lines: invoiceLines(client)}
	client.Quotes = &QuotesClient{client: client, lines: quoteLines(client)}
	client.Purchases = &PurchasesClient{client: client}
	client.Absences = &AbsencesClient{client: client}
	client.Products = &ProductsClient{client: client}
	client.Companies = &CompaniesClient{client: client}
	client.Users = &UsersClient{client: client}
	return client, nil
}

// NewClientWithOptions builds a client from functional options.
func NewClientWithOptions(opts ...Option) (*Client, error) {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return NewClient(cfg)
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("sdk: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("sdk: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("sdk: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("sdk: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

// Do sends a loosely-typed request. body may be nil, a map, or any value
// goccy/go-json can marshal. Parameter types are validated first and, like
// models, marshal through their codecs. When out is non-nil the response body
// is unmarshaled into it; a model pointer decodes in the client's mode, other
// values decode with goccy/go-json.
func (c *Client) Do(ctx context.Context, method, path string, body any, out any, opts ...RequestOption) error {
	if v, ok := body.(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	resp, req, err := c.call(ctx, method, path, nil, body, opts)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if m, ok := out.(modeDecoder); ok {
		if err := m.decodeMode(resp.body, c.mode); err != nil {
			return &DecodeError{Model: fmt.Sprintf("%T", out), Method: req.Method, URL: req.URL.Redacted(), Err: err}
		}
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("sdk: decode response: %w", err)
	}
	return nil
}

// rawResponse is a fully read 2xx response.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// call runs one request/response exchange.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload any, opts []RequestOption) (*rawResponse, *http.Request, error) {
	ro := c.resolveOptions(opts)
	if ro.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.timeout)
		defer cancel()
	}
	req, err := c.newJSONRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, nil, err
	}
	ro.apply(req)
	resp, err := c.send(req)
	return resp, req, err
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sdk: encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	target := c.buildURL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set(headers.ContentType, "application/json")
	}
	req.Header.Set(headers.Accept, "application/json")
	injectTraceContext(ctx, req)
	return req, nil
}

func (c *Client) prepare(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set(headers.UserAgent, c.userAgent)
	}
	if req.Header.Get(headers.RequestID) == "" {
		req.Header.Set(headers.RequestID, uuid.NewString())
	}
	c.auth.Apply(req)
}

func (c *Client) send(req *http.Request) (*rawResponse, error) {
	c.prepare(req)
	ctx := req.Context()
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(ctx, req)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(ctx, req, resp, err, latency)
	}
	c.telemetry.metric(ctx, "sdk_http_request_latency_ms", float64(latency.Milliseconds()), map[string]string{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	if err != nil {
		connErr := newConnectionError(req, err)
		c.logger.ErrorContext(ctx, "http_request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("request_id", req.Header.Get(headers.RequestID)),
			slog.Bool("timeout", connErr.Timeout),
			slog.Any("error", err),
		)
		return nil, connErr
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectionError(req, err)
	}
	c.logger.DebugContext(ctx, "http_request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("request_id", req.Header.Get(headers.RequestID)),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", latency),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(req, resp, data)
	}
	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
