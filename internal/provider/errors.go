package provider

import "errors"

var (
	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("routing provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("routing request timed out")

	// ErrNoRoute indicates the provider answered but found no route.
	ErrNoRoute = errors.New("no route found")

	// ErrNotConfigured indicates a provider with no endpoint or API key.
	ErrNotConfigured = errors.New("routing provider not configured")

	// ErrRejected indicates the provider refused the request (quota,
	// invalid key, malformed query).
	ErrRejected = errors.New("routing request rejected")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("routing retry attempts exhausted")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNoRoute):
		return "NO_ROUTE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	default:
		return "UNKNOWN"
	}
}
