package gcs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrInvalidResourceURL = errors.New("invalid resource url")
	ErrAuth               = errors.New("acquiring credentials failed")
	ErrTransport          = errors.New("transport failure")
	ErrHTTPStatus         = errors.New("unexpected http status")
	ErrApplication        = errors.New("api error")
	ErrSerialization      = errors.New("serialization failure")
	ErrInvalidURI         = errors.New("invalid resource uri")
	ErrUnknownEnumValue   = errors.New("unknown enum value")
	ErrNoMoreItems        = errors.New("no more items")
	ErrBucketRequired     = errors.New("bucket name is required")
	ErrObjectRequired     = errors.New("object name is required")
	ErrProjectRequired    = errors.New("project is required")
	ErrMissingErrorObject = errors.New("error body has no error object")
)

// InvalidResourceURLError reports that a target URL could not be built.
type InvalidResourceURLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *InvalidResourceURLError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidResourceURL, e.Reason)
	}

	return fmt.Sprintf("%s %q: %s", ErrInvalidResourceURL, e.URL, e.Reason)
}

func (e *InvalidResourceURLError) Unwrap() error { return e.Err }

// Is matches ErrInvalidResourceURL.
func (e *InvalidResourceURLError) Is(target error) bool { return target == ErrInvalidResourceURL }

// AuthError wraps a failure of the credential provider.
type AuthError struct {
	Scope Scope
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s for scope %s: %v", ErrAuth, e.Scope, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches ErrAuth.
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// TransportError is a failure before any HTTP status was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrTransport, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError is a non-2xx response whose body was not a structured error.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

const maxErrorBodyInMessage = 256

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s %d %s: %s %s", ErrHTTPStatus, e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.URL)

	if len(e.Body) > 0 {
		body := e.Body
		if len(body) > maxErrorBodyInMessage {
			body = body[:maxErrorBodyInMessage]
		}

		msg += ": " + string(body)
	}

	return msg
}

// Is matches ErrHTTPStatus.
func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// ErrorDetail is one entry of the "errors" list of an error envelope.
type ErrorDetail struct {
	Domain       string `json:"domain,omitempty"       yaml:"domain,omitempty"`
	Location     string `json:"location,omitempty"     yaml:"location,omitempty"`
	LocationType string `json:"locationType,omitempty" yaml:"locationType,omitempty"`
	Message      string `json:"message,omitempty"      yaml:"message,omitempty"`
	Reason       string `json:"reason,omitempty"       yaml:"reason,omitempty"`
}

// APIError is a non-2xx response carrying a decoded error envelope.
type APIError struct {
	Code    int           `json:"code"             yaml:"code"`
	Message string        `json:"message"          yaml:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Filled in by the dispatcher.
	StatusCode int    `json:"-" yaml:"-"`
	Method     string `json:"-" yaml:"-"`
	URL        string `json:"-" yaml:"-"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (code: %d)", e.Message, e.Code)

	if first := e.FirstError(); first != nil && first.Reason != "" {
		msg += ", reason: " + first.Reason
	}

	return msg
}

// Is matches ErrApplication.
func (e *APIError) Is(target error) bool { return target == ErrApplication }

// FirstError returns the first detail or nil.
func (e *APIError) FirstError() *ErrorDetail {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// SerializationError wraps a failure to encode a request body or decode a
// response body.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSerialization, e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Is matches ErrSerialization.
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// URIError reports a malformed short-form resource URI.
type URIError struct {
	URI    string
	Reason string
}

func (e *URIError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidURI, e.URI, e.Reason)
}

// Is matches ErrInvalidURI.
func (e *URIError) Is(target error) bool { return target == ErrInvalidURI }

// ParseResponseError decodes an error envelope of the form
// {"error": {"code": ..., "message": ..., "errors": [...]}}.
func ParseResponseError(data []byte) (*APIError, error) {
	var envelope struct {
		Error *APIError `json:"error"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	if envelope.Error == nil {
		return nil, ErrMissingErrorObject
	}

	return envelope.Error, nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode != 0 {
			return apiErr.StatusCode
		}

		return apiErr.Code
	}

	statusErr := &HTTPStatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsPreconditionFailed reports a failed generation or metageneration match.
func IsPreconditionFailed(err error) bool {
	return StatusCode(err) == http.StatusPreconditionFailed
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
