package headers

import (
	"context"
)

type forwardedKey struct{}

// ContextWithForwarded stores the forwarded header set in the context so
// handlers and downstream clients can reach it without threading it through
// every signature.
func ContextWithForwarded(ctx context.Context, fwd ForwardedHeaderSet) context.Context {
	return context.WithValue(ctx, forwardedKey{}, fwd)
}

// FromContext extracts the forwarded header set from the context, or an
// empty set if none was stored.
func FromContext(ctx context.Context) ForwardedHeaderSet {
	if fwd, ok := ctx.Value(forwardedKey{}).(ForwardedHeaderSet); ok && fwd != nil {
		return fwd
	}
	return make(ForwardedHeaderSet)
}
