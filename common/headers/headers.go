package headers

import (
	"maps"
	"net/http"
	"strings"
)

// Request Identification Headers
const (
	// HeaderXRequestID is used to uniquely identify individual HTTP requests
	// for logging, debugging, and tracking purposes across the application
	HeaderXRequestID = "x-request-id"
)

// Authentication Headers
const (
	// HeaderAuthorization is the standard HTTP header used to carry authentication
	// credentials such as Bearer tokens, Basic auth, or API keys
	// Format examples: "Bearer <token>", "Basic <base64-encoded-credentials>"
	HeaderAuthorization = "authorization"

	// HeaderJWT carries a raw JWT for mesh-level auth policies
	HeaderJWT = "jwt"
)

// ForwardList is the exact set of headers forwarded between service hops.
// It covers the trace-context headers understood by the common tracing
// backends (Datadog, W3C, OpenTracing, Google Cloud, SkyWalking) plus the
// auth passthrough headers. Nothing outside this list is ever forwarded.
//
// Names are kept lowercase. Inbound lookup goes through http.Header.Get,
// which canonicalizes, so matching is case-insensitive; outbound writes use
// Set with the lowercase name and Go re-canonicalizes on the wire.
func ForwardList() []string {
	return []string{
		HeaderXRequestID,
		"x-ot-span-context",
		"x-datadog-trace-id",
		"x-datadog-parent-id",
		"x-datadog-sampling-priority",
		"traceparent",
		"tracestate",
		"x-cloud-trace-context",
		"grpc-trace-bin",
		"sw8",
		"user-agent",
		"cookie",
		HeaderAuthorization,
		HeaderJWT,
	}
}

// ForwardedHeaderSet holds the subset of ForwardList headers present on a
// request or response, keyed by lowercase header name. A header absent from
// the source is omitted, never stored as an empty value.
type ForwardedHeaderSet map[string]string

// Extract reads the forwardable headers from h. Values are copied verbatim.
func Extract(h http.Header) ForwardedHeaderSet {
	fwd := make(ForwardedHeaderSet)
	for _, name := range ForwardList() {
		if v := h.Get(name); v != "" {
			fwd[name] = v
		}
	}
	return fwd
}

// Merge overlays extra on top of base and returns a new set. Keys in extra
// always win over propagated values; base is left untouched. Keys are
// lowercased so an explicit "Authorization" replaces a forwarded
// "authorization".
func Merge(base ForwardedHeaderSet, extra map[string]string) ForwardedHeaderSet {
	merged := base.Clone()
	for k, v := range extra {
		if k == "" || v == "" {
			continue
		}
		merged[strings.ToLower(k)] = v
	}
	return merged
}

// Apply writes the set onto h, replacing any existing values for the same
// names. The target is typically an outbound request or this service's own
// response, so downstream hops can chain the headers onward.
func (f ForwardedHeaderSet) Apply(h http.Header) {
	for name, value := range f {
		h.Set(name, value)
	}
}

// Clone returns a copy of the set. A nil receiver yields an empty set.
func (f ForwardedHeaderSet) Clone() ForwardedHeaderSet {
	if f == nil {
		return make(ForwardedHeaderSet)
	}
	return maps.Clone(f)
}

// Get returns the value for a header name, case-insensitively.
func (f ForwardedHeaderSet) Get(name string) string {
	return f[strings.ToLower(name)]
}
