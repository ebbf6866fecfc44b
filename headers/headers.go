// Package headers defines the HTTP header names sent and read by the SDK.
package headers

const (
	// AppID identifies the calling application.
	AppID = "X-APP-ID"

	// AppSecret authenticates the calling application.
	AppSecret = "X-APP-SECRET" //nolint:gosec // This is a header name, not a credential

	// RequestID correlates a request with server-side logs. A fresh value is
	// generated per request unless the caller supplies one.
	RequestID = "X-Request-Id"

	// IdempotencyKey lets the server deduplicate retried writes.
	IdempotencyKey = "Idempotency-Key"

	// RetryAfter is read from rate-limited responses.
	RetryAfter = "Retry-After"

	// Authorization carries the bearer token obtained from /auth/login when
	// the caller attaches it.
	Authorization = "Authorization"

	ContentType = "Content-Type"
	Accept      = "Accept"
	UserAgent   = "User-Agent"

	// Traceparent and Tracestate propagate W3C trace context.
	Traceparent = "Traceparent"
	Tracestate  = "Tracestate"
)
