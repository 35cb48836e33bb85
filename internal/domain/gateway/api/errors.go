package api

import "fmt"

// ProviderError is returned when the provider answered with a non-success status.
type ProviderError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: provider returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: provider returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// TransportError is returned when no response was received from the provider.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
