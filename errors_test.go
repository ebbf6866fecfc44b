package sdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/testutil"
)

func TestAPIErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   error
		check  func(error) bool
	}{
		{http.StatusBadRequest, ErrBadRequest, nil},
		{http.StatusUnauthorized, ErrAuthentication, IsAuthentication},
		{http.StatusForbidden, ErrPermissionDenied, IsPermissionDenied},
		{http.StatusNotFound, ErrNotFound, IsNotFound},
		{http.StatusUnprocessableEntity, ErrUnprocessableEntity, nil},
		{http.StatusTooManyRequests, ErrRateLimit, IsRateLimited},
		{http.StatusInternalServerError, ErrAPIStatus, nil},
		{http.StatusBadGateway, ErrAPIStatus, nil},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			mock := NewMockTransport().WithJSON(tc.status, `{"error":{"code":"oops","message":"went wrong"}}`)
			client := newMockClient(t, mock)
			_, err := client.Invoices.Get(context.Background(), "inv-1")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T %v", err, err)
			}
			if apiErr.Status != tc.status || apiErr.Code != "oops" || apiErr.Message != "went wrong" {
				t.Fatalf("unexpected api error: %+v", apiErr)
			}
			if !errors.Is(err, tc.kind) || !errors.Is(err, ErrAPIStatus) {
				t.Fatalf("expected errors.Is(%v) and ErrAPIStatus", tc.kind)
			}
			if tc.check != nil && !tc.check(err) {
				t.Fatalf("helper did not match %d", tc.status)
			}
			if errors.Is(err, ErrConnection) {
				t.Fatalf("api errors are not connection errors")
			}
			if apiErr.Method != http.MethodGet || !strings.HasSuffix(apiErr.URL, "/invoice/inv-1") {
				t.Fatalf("unexpected request info: %s %s", apiErr.Method, apiErr.URL)
			}
		})
	}
}

func TestAPIErrorFieldsAndRetryAfter(t *testing.T) {
	rec := newRecorder(t, func(testutil.Exchange) testutil.Reply {
		return testutil.Reply{
			Status:  http.StatusTooManyRequests,
			Headers: map[string]string{"Retry-After": "7", "X-Request-Id": "srv-req-1"},
			Body:    `{"code":"rate_limited","message":"slow down","errors":{"z":"last","a":"first"}}`,
		}
	})
	client := newTestClient(t, rec.Server)
	_, err := client.Users.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.RetryAfter != 7*time.Second {
		t.Fatalf("expected retry after 7s, got %v", apiErr.RetryAfter)
	}
	if apiErr.RequestID != "srv-req-1" {
		t.Fatalf("expected server request id, got %q", apiErr.RequestID)
	}
	if len(apiErr.Fields) != 2 || apiErr.Fields[0].Field != "a" || apiErr.Fields[1].Field != "z" {
		t.Fatalf("expected sorted field errors, got %+v", apiErr.Fields)
	}
	if !strings.Contains(apiErr.Error(), "429 rate_limited: slow down (a: first; z: last)") {
		t.Fatalf("unexpected message: %s", apiErr.Error())
	}
	if len(rec.Exchanges()) != 1 {
		t.Fatalf("errors must not be retried, got %d requests", len(rec.Exchanges()))
	}
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/html")
	mock := NewMockTransport().WithResponse(http.StatusBadGateway, h, []byte("<html>bad gateway</html>"))
	client := newMockClient(t, mock)
	_, err := client.Products.Get(context.Background(), "prd-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Body != nil || apiErr.Message != "<html>bad gateway</html>" || string(apiErr.RawBody) != "<html>bad gateway</html>" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := parseRetryAfter("30", now); got != 30*time.Second {
		t.Fatalf("seconds: got %v", got)
	}
	date := now.Add(90 * time.Second).Format(http.TimeFormat)
	if got := parseRetryAfter(date, now); got != 90*time.Second {
		t.Fatalf("http date: got %v", got)
	}
	for _, v := range []string{"", "-1", "soon", now.Add(-time.Minute).Format(http.TimeFormat)} {
		if got := parseRetryAfter(v, now); got != 0 {
			t.Fatalf("%q: expected 0, got %v", v, got)
		}
	}
}

func TestConnectionError(t *testing.T) {
	mock := NewMockTransport().WithError(errors.New("connection refused"))
	client := newMockClient(t, mock)
	_, err := client.Companies.Get(context.Background(), "cmp-1")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if IsTimeout(err) {
		t.Fatalf("refused connection is not a timeout")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) || !strings.HasSuffix(connErr.URL, "/company/cmp-1") {
		t.Fatalf("unexpected connection error: %+v", connErr)
	}
}

func TestCanceledContextIsConnectionError(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, `{}`)
	client := newMockClient(t, mock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Users.Me(ctx)
	if !errors.Is(err, ErrConnection) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
	if mock.Pending() != 1 {
		t.Fatalf("queued response must not be consumed")
	}
}

func TestDecodeErrorNamesModelAndPath(t *testing.T) {
	body := `{"id":"inv-1","status":"draft","company_id":"cmp-1","date":"2024-03-01","lines":[
		{"id":"l0","label":"a"},
		{"id":"l1","label":"b"},
		{"id":"l2","label":"c","price_ht":"ten"}
	]}`
	mock := NewMockTransport().WithJSON(http.StatusOK, body)
	client := newMockClient(t, mock)
	_, err := client.Invoices.Get(context.Background(), "inv-1")

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T %v", err, err)
	}
	if decErr.Model != "Invoice" || decErr.Method != http.MethodGet {
		t.Fatalf("unexpected decode error: %+v", decErr)
	}
	cerr, ok := codec.AsDecodeError(err)
	if !ok {
		t.Fatalf("expected wrapped codec error, got %v", err)
	}
	if cerr.Path != "lines.2.price_ht" || cerr.Model != "DocumentLine" || cerr.Field != "price_ht" || cerr.Code != codec.CodeInvalidType {
		t.Fatalf("unexpected codec error: %+v", cerr)
	}
}

func TestDecodeErrorOnUnexpectedContentType(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	mock := NewMockTransport().WithResponse(http.StatusOK, h, []byte(`{"id":"usr-1"}`))
	client := newMockClient(t, mock)
	_, err := client.Users.Me(context.Background())
	var decErr *DecodeError
	if !errors.As(err, &decErr) || !strings.Contains(err.Error(), "unexpected content type") {
		t.Fatalf("expected content type decode error, got %v", err)
	}
}

func TestIsJSONMediaType(t *testing.T) {
	for _, ok := range []string{"", "application/json", "application/json; charset=utf-8", "application/problem+json"} {
		if !isJSONMediaType(ok) {
			t.Fatalf("%q should be JSON", ok)
		}
	}
	for _, bad := range []string{"text/html", "text/json", "application/xml", "garbage"} {
		if isJSONMediaType(bad) {
			t.Fatalf("%q should not be JSON", bad)
		}
	}
}
