package backend

import (
	"errors"
	"fmt"
)

// BackendError means the service answered, but with a non-2xx status or a
// payload carrying an "error" field.
type BackendError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// TransportError means no usable response arrived: the request failed on the
// network or the body could not be decoded.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage renders err the way it is shown to the user in a banner or
// an assistant reply.
func UserMessage(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return "❌ Error: " + be.Message
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "❌ Network error: " + te.Err.Error()
	}
	return "❌ Error: " + err.Error()
}
