package sdk

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ledgerdesk/ledgerdesk-go/testutil"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithAppCredentials("app-id", "app-secret"),
		WithoutEnv(),
	}
	client, err := NewClientWithOptions(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new test client: %v", err)
	}
	return client
}

func newMockClient(t *testing.T, mock *MockTransport, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithBaseURL("https://api.test/v1"),
		WithHTTPClient(mock),
		WithAppCredentials("app-id", "app-secret"),
		WithoutEnv(),
	}
	client, err := NewClientWithOptions(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new mock client: %v", err)
	}
	return client
}

func newRecorder(t *testing.T, reply func(testutil.Exchange) testutil.Reply) *testutil.Recorder {
	t.Helper()
	rec := testutil.NewRecorder(reply)
	t.Cleanup(rec.Close)
	return rec
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal body %q: %v", raw, err)
	}
	return out
}

func assertBody(t *testing.T, raw []byte, want string) {
	t.Helper()
	var expected map[string]any
	if err := json.Unmarshal([]byte(want), &expected); err != nil {
		t.Fatalf("bad expectation %q: %v", want, err)
	}
	got := decodeBody(t, raw)
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("body mismatch\n got: %s\nwant: %s", raw, want)
	}
}

const invoiceJSON = `{
	"id": "inv-1",
	"number": "F-2024-001",
	"status": "pending",
	"company_id": "cmp-1",
	"date": "2024-03-01",
	"due_date": "2024-03-31",
	"currency": "EUR",
	"total_ht": 100,
	"total_vat": 20,
	"total_ttc": 120,
	"lines": [
		{"id": "line-1", "label": "Consulting", "quantity": 1, "price_ht": 100, "vat_rate": 20}
	],
	"created_at": "2024-03-01T10:00:00Z"
}`
