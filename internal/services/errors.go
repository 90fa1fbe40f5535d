package services

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ConfigurationError means a required credential is absent. Routes that
// need it cannot run at all.
type ConfigurationError struct{ Key string }

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server is missing %s env variable", e.Key)
}

// UpstreamError is a non-success response or transport failure from a
// third-party API. StatusCode is 0 for transport failures.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// GenerationError is a failed text-generation call. It never reaches the
// HTTP client as an error status; see GenerationResult.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// upstreamFromGoogle converts a google-api-go error into an UpstreamError.
func upstreamFromGoogle(service string, err error) *UpstreamError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return &UpstreamError{Service: service, StatusCode: apiErr.Code, Body: body, Err: err}
	}
	return &UpstreamError{Service: service, Err: err}
}

// ValidationError is bad caller input. Fields maps the offending input to
// a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for _, msg := range e.Fields {
			return msg
		}
	}
	return "Validation error"
}
