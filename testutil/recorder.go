// Package testutil provides helpers for SDK tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Exchange is one request captured by a Recorder.
type Exchange struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Reply describes the response a Recorder sends for a request.
type Reply struct {
	Status  int
	Headers map[string]string
	Body    string
}

// Recorder is an httptest server that captures requests and answers them
// with a handler-chosen Reply.
type Recorder struct {
	*httptest.Server

	mu        sync.Mutex
	exchanges []Exchange
}

// NewRecorder starts a server answering every request through reply.
func NewRecorder(reply func(Exchange) Reply) *Recorder {
	rec := &Recorder{}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ex := Exchange{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		}
		rec.mu.Lock()
		rec.exchanges = append(rec.exchanges, ex)
		rec.mu.Unlock()

		out := reply(ex)
		status := out.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		for k, v := range out.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out.Body)
	}))
	return rec
}

// JSON answers every request with status and body.
func JSON(status int, body string) func(Exchange) Reply {
	return func(Exchange) Reply { return Reply{Status: status, Body: body} }
}

// Exchanges returns a copy of the captured requests.
func (r *Recorder) Exchanges() []Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Exchange(nil), r.exchanges...)
}

// Last returns the most recent request. ok is false when none arrived.
func (r *Recorder) Last() (Exchange, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.exchanges) == 0 {
		return Exchange{}, false
	}
	return r.exchanges[len(r.exchanges)-1], true
}
