package gateway

import "fmt"

// ErrorKind classifies a normalized network failure
type ErrorKind string

// Error kinds. Every upstream failure collapses into one of these three.
const (
	ErrorTimeout   ErrorKind = "timeout"
	ErrorStatus    ErrorKind = "status"
	ErrorTransport ErrorKind = "transport"
)

// NetworkError is the single error type the gateway produces. Timeout,
// non-2xx status and transport failures all normalize into it.
type NetworkError struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case ErrorStatus:
		return fmt.Sprintf("gateway: %s returned status %d", e.Endpoint, e.StatusCode)
	case ErrorTimeout:
		return fmt.Sprintf("gateway: %s timed out: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("gateway: %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }
