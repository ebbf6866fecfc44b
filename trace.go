package sdk

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/ledgerdesk/ledgerdesk-go/headers"
)

// injectTraceContext writes W3C trace headers for the span in ctx, if any.
func injectTraceContext(ctx context.Context, req *http.Request) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return
	}
	flags := "00"
	if sc.IsSampled() {
		flags = "01"
	}
	req.Header.Set(headers.Traceparent, fmt.Sprintf("00-%s-%s-%s", sc.TraceID(), sc.SpanID(), flags))
	if ts := sc.TraceState().String(); ts != "" {
		req.Header.Set(headers.Tracestate, ts)
	}
}
