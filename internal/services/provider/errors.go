package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderRejected is returned when the provider answers with a non-2xx status
	ErrProviderRejected = errors.New("provider rejected request")
	// ErrNetwork is returned when the provider could not be reached
	ErrNetwork = errors.New("network error while connecting to AI provider")
	// ErrEmptyGeneration is returned when a successful response carries no text
	ErrEmptyGeneration = errors.New("provider returned no generated text")
	// ErrUnsupportedProvider is returned for a provider tag with no adapter
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// UpstreamError describes a failed provider call. Kind is one of the
// sentinels above and is matched by errors.Is.
type UpstreamError struct {
	Kind       error
	Provider   string
	StatusCode int
	Message    string
	// Payload is the provider's error body, kept verbatim
	Payload string
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s: %s returned status %d: %s", e.Kind, e.Provider, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: %s returned status %d", e.Kind, e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Provider)
	}
}

func (e *UpstreamError) Is(target error) bool {
	return target == e.Kind
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func rejected(provider string, status int, body []byte) *UpstreamError {
	return &UpstreamError{
		Kind:       ErrProviderRejected,
		Provider:   provider,
		StatusCode: status,
		Message:    extractErrorMessage(body),
		Payload:    string(body),
	}
}

func networkFailure(provider string, err error) *UpstreamError {
	return &UpstreamError{Kind: ErrNetwork, Provider: provider, Err: err}
}

func emptyGeneration(provider string, status int) *UpstreamError {
	return &UpstreamError{Kind: ErrEmptyGeneration, Provider: provider, StatusCode: status}
}
