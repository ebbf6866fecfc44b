package sdk

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
)

// MockTransport is an in-memory HTTPDoer for unit tests. Responses are
// served in the order they were queued and every request is recorded.
type MockTransport struct {
	mu       sync.Mutex
	queue    []mockResult
	requests []RecordedRequest
}

// MockTransportError is returned when no response is queued.
type MockTransportError struct {
	Reason string
}

func (e MockTransportError) Error() string { return "mock transport: " + e.Reason }

// RecordedRequest is a request seen by MockTransport, with its body read.
// Path keeps its percent-encoding.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type mockResult struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// WithJSON queues a response with status and body marshaled as JSON. A
// []byte or string body is sent verbatim.
func (m *MockTransport) WithJSON(status int, body any) *MockTransport {
	var data []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		data = append([]byte(nil), b...)
	case string:
		data = []byte(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return m.WithError(err)
		}
		data = encoded
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	m.enqueue(mockResult{status: status, header: h, body: data})
	return m
}

// WithResponse queues a response with explicit headers.
func (m *MockTransport) WithResponse(status int, header http.Header, body []byte) *MockTransport {
	m.enqueue(mockResult{status: status, header: header.Clone(), body: append([]byte(nil), body...)})
	return m
}

// WithError queues a transport error.
func (m *MockTransport) WithError(err error) *MockTransport {
	m.enqueue(mockResult{err: err})
	return m
}

func (m *MockTransport) enqueue(r mockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, r)
}

func (m *MockTransport) dequeue() (mockResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return mockResult{}, MockTransportError{Reason: "no responses configured"}
	}
	res := m.queue[0]
	m.queue = m.queue[1:]
	return res, nil
}

// Do implements HTTPDoer.
func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		Path:   req.URL.EscapedPath(),
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		rec.Body = data
	}
	m.mu.Lock()
	m.requests = append(m.requests, rec)
	m.mu.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	res, err := m.dequeue()
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		return nil, res.err
	}
	header := res.header
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: res.status,
		Status:     http.StatusText(res.status),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(res.body)),
		Request:    req,
	}, nil
}

// Requests returns a copy of every recorded request.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// Pending reports how many queued responses were not consumed.
func (m *MockTransport) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
