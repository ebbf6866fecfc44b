package sdk

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ledgerdesk/ledgerdesk-go/headers"
)

// Kind sentinels matched by errors.Is against *APIError.
var (
	ErrBadRequest          = errors.New("sdk: bad request")
	ErrAuthentication      = errors.New("sdk: authentication failed")
	ErrPermissionDenied    = errors.New("sdk: permission denied")
	ErrNotFound            = errors.New("sdk: not found")
	ErrUnprocessableEntity = errors.New("sdk: unprocessable entity")
	ErrRateLimit           = errors.New("sdk: rate limited")
	// ErrAPIStatus matches every *APIError regardless of status.
	ErrAPIStatus = errors.New("sdk: api status error")
)

// Transport sentinels matched by errors.Is against *ConnectionError.
var (
	ErrConnection = errors.New("sdk: connection error")
	ErrTimeout    = errors.New("sdk: request timed out")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status     int
	Kind       error // one of the Err* kind sentinels
	Code       string
	Message    string
	RequestID  string
	Fields     []FieldError
	RetryAfter time.Duration
	// Body is the decoded JSON error body, nil when it was not JSON.
	Body    any
	RawBody []byte
	Method  string
	URL     string
}

// FieldError represents a validation failure for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "sdk: %s %s: %d", e.Method, e.URL, e.Status)
	if e.Code != "" {
		fmt.Fprintf(b, " %s", e.Code)
	}
	if msg != "" {
		fmt.Fprintf(b, ": %s", msg)
	}
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", f.Field, f.Message)
		if i == len(e.Fields)-1 {
			b.WriteString(")")
		}
	}
	return b.String()
}

// Is matches the error's kind sentinel and ErrAPIStatus.
func (e *APIError) Is(target error) bool {
	return target == ErrAPIStatus || (e.Kind != nil && target == e.Kind)
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusForbidden:
		return ErrPermissionDenied
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrUnprocessableEntity
	case http.StatusTooManyRequests:
		return ErrRateLimit
	default:
		return ErrAPIStatus
	}
}

func decodeAPIError(req *http.Request, resp *http.Response, data []byte) error {
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Kind:      kindForStatus(resp.StatusCode),
		RequestID: resp.Header.Get(headers.RequestID),
		RawBody:   data,
		Method:    req.Method,
		URL:       req.URL.Redacted(),
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = req.Header.Get(headers.RequestID)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get(headers.RetryAfter), time.Now())
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}
	var body any
	if !isJSONMediaType(resp.Header.Get(headers.ContentType)) {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Body = body
	fillFromBody(apiErr, body)
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

// fillFromBody understands both {"error":{"code","message","fields"}} and
// flat {"code","message","errors":{field: msg}} bodies.
func fillFromBody(apiErr *APIError, body any) {
	m, ok := body.(map[string]any)
	if !ok {
		return
	}
	if nested, ok := m["error"].(map[string]any); ok {
		m = nested
	} else if s, ok := m["error"].(string); ok {
		apiErr.Message = s
	}
	if s, ok := m["code"].(string); ok {
		apiErr.Code = s
	}
	if s, ok := m["message"].(string); ok {
		apiErr.Message = s
	}
	switch fields := m["fields"].(type) {
	case []any:
		for _, f := range fields {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			name, _ := fm["field"].(string)
			msg, _ := fm["message"].(string)
			apiErr.Fields = append(apiErr.Fields, FieldError{Field: name, Message: msg})
		}
	}
	if errs, ok := m["errors"].(map[string]any); ok {
		for _, k := range sortedKeys(errs) {
			apiErr.Fields = append(apiErr.Fields, FieldError{Field: k, Message: fmt.Sprint(errs[k])})
		}
	}
}

func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}

// ConnectionError reports a request that never produced an HTTP response.
type ConnectionError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *ConnectionError) Error() string {
	what := "connection failed"
	if e.Timeout {
		what = "timed out"
	}
	return fmt.Sprintf("sdk: %s %s: %s: %v", e.Method, e.URL, what, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is matches ErrConnection, and ErrTimeout for timeouts.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection || (e.Timeout && target == ErrTimeout)
}

func newConnectionError(req *http.Request, err error) *ConnectionError {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
	return &ConnectionError{Method: req.Method, URL: req.URL.Redacted(), Timeout: timeout, Err: err}
}

// ValidationError is returned before any request is sent when parameters
// are incomplete or malformed.
type ValidationError struct {
	Params string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("sdk: invalid %s: %s", e.Params, strings.Join(parts, "; "))
}

// DecodeError reports a response body that does not match its model.
type DecodeError struct {
	Model  string
	Method string
	URL    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sdk: decode %s from %s %s: %v", e.Model, e.Method, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 APIError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsRateLimited reports whether err is a 429 APIError.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimit) }

// IsAuthentication reports whether err is a 401 APIError.
func IsAuthentication(err error) bool { return errors.Is(err, ErrAuthentication) }

// IsPermissionDenied reports whether err is a 403 APIError.
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// IsValidation reports whether err was raised by client-side validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
