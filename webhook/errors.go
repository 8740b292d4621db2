package webhook

import "fmt"

// TransportError is returned for every failed exchange: a non-2xx status,
// a network failure, or a reply body that is not JSON.
type TransportError struct {
	// StatusCode is set when the endpoint answered with a non-2xx status.
	StatusCode int
	// Err is the underlying cause for network and parse failures.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors.Cause walk through a TransportError.
func (e *TransportError) Cause() error {
	return e.Err
}
