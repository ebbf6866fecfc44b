package sdk

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-go/headers"
)

// RequestOption customizes a single API call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	timeout        time.Duration
	headers        http.Header
	bearer         string
	idempotencyKey string
	requestID      string
}

// WithTimeout bounds this call, overriding Config.Timeout. The context
// deadline still applies when it is earlier.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.timeout = d }
}

// WithHeader adds a header to this call. Blank keys or values are ignored.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
			return
		}
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Add(key, value)
	}
}

// WithBearerToken sends Authorization: Bearer <token> on this call. Tokens
// come from AuthClient.Login; the client never attaches them on its own.
func WithBearerToken(token string) RequestOption {
	return func(o *requestOptions) { o.bearer = normalizeBearer(token) }
}

// WithIdempotencyKey sets the Idempotency-Key header.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = strings.TrimSpace(key) }
}

// WithAutoIdempotencyKey generates a random Idempotency-Key for this call.
func WithAutoIdempotencyKey() RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = uuid.NewString() }
}

// WithRequestID overrides the generated X-Request-Id.
func WithRequestID(id string) RequestOption {
	return func(o *requestOptions) { o.requestID = strings.TrimSpace(id) }
}

func (c *Client) resolveOptions(opts []RequestOption) requestOptions {
	ro := requestOptions{timeout: c.timeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&ro)
		}
	}
	return ro
}

func (o requestOptions) apply(req *http.Request) {
	for k, vals := range o.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if o.bearer != "" {
		req.Header.Set(headers.Authorization, "Bearer "+o.bearer)
	}
	if o.idempotencyKey != "" {
		req.Header.Set(headers.IdempotencyKey, o.idempotencyKey)
	}
	if o.requestID != "" {
		req.Header.Set(headers.RequestID, o.requestID)
	}
}
