package clients

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Failure taxonomy for calls to sibling services. Transport failures,
// application-level rejections and undecodable bodies are kept distinct so
// callers can choose different fallbacks for each.
var (
	// ErrUnreachable marks transport-level failures where no response was
	// received at all. Never to be confused with an empty result.
	ErrUnreachable = errors.New("service unreachable")

	// ErrDecode marks responses whose body could not be parsed.
	ErrDecode = errors.New("malformed response body")

	// ErrConflict marks a create that was rejected because the resource
	// already exists (duplicate username or email).
	ErrConflict = errors.New("resource already exists")
)

// RemoteError is a non-2xx application response from a sibling service.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote rejected request: status %d", e.Status)
}

// IsUnreachable reports whether err is a transport-level connection failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsConflict reports whether err is a duplicate-resource rejection.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// AsRemote unwraps err into target if it carries a RemoteError.
func AsRemote(err error, target **RemoteError) bool {
	return errors.As(err, target)
}
