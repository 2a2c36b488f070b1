package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication means the credential was rejected upstream (401).
	// Never worth retrying.
	ErrAuthentication = errors.New("authentication failed: invalid API key")

	// ErrModelNotFound means the requested model id is unknown to the
	// provider (404). Never worth retrying.
	ErrModelNotFound = errors.New("model not found")

	// ErrMalformedResponse means the endpoint answered 2xx but the body
	// lacks the expected completion field. A hard failure, never silently
	// defaulted.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrEmptyPrompt rejects generation requests without a prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// TransportError wraps network-level failures, including timeouts. The
// caller may retry with backoff; the client itself never does.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is of a kind a caller may reasonably
// retry. Auth, unknown-model and malformed-response failures are not.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
