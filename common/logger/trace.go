package logger

import (
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
)

// WithTrace builds the log fields that tie an entry to its APM trace so
// Datadog can cross-link logs and traces.
func WithTrace(sc *tracer.SpanContext) []Field {
	if sc == nil {
		return nil
	}
	return []Field{
		String("dd.trace_id", sc.TraceID()),
		Uint64("dd.span_id", sc.SpanID()),
	}
}
