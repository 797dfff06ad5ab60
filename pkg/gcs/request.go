package gcs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
)

// Scope is the authorization breadth an operation needs.
type Scope string

const (
	ScopeReadOnly    Scope = "https://www.googleapis.com/auth/devstorage.read_only"
	ScopeReadWrite   Scope = "https://www.googleapis.com/auth/devstorage.read_write"
	ScopeFullControl Scope = "https://www.googleapis.com/auth/devstorage.full_control"
)

// DefaultScope returns read-only for GET and read-write for everything else.
func DefaultScope(method string) Scope {
	if method == http.MethodGet {
		return ScopeReadOnly
	}

	return ScopeReadWrite
}

// Scoper is implemented by requests that need more than DefaultScope grants.
type Scoper interface {
	Scope() Scope
}

// ScopeOf returns the scope req is sent with.
func ScopeOf(req Request) Scope {
	if s, ok := req.(Scoper); ok {
		return s.Scope()
	}

	return DefaultScope(req.Method())
}

// HeaderProvider yields the authorization headers for a scope. Implementations
// must be safe for concurrent use.
type HeaderProvider interface {
	Headers(ctx context.Context, scope Scope) (http.Header, error)
}

// Request describes a single API call.
//
// Method is fixed per request type and decides the scope unless the request
// implements Scoper. URL computes the target from the API base URL and only
// reads required identifiers. Assemble consumes the
// optional fields: it returns the query pairs and the body (nil, a value to be
// JSON encoded, or *Media) and resets what it returned, so a second call yields
// an empty query and a nil body.
type Request interface {
	Method() string
	URL(base *url.URL) (*url.URL, error)
	Header() http.Header
	Assemble() (Query, any)
}

// Call is a Request with a declared response shape.
type Call[R any] interface {
	Request
	NewResponse() *R
}

// Empty is the response of calls that return no body.
type Empty struct{}

// Media is a raw request body sent as is instead of being JSON encoded.
type Media struct {
	ContentType string
	Data        []byte
}

// RawResponse is a successful HTTP response before decoding.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Dispatcher sends one request and classifies the response. A non-nil error is
// one of *InvalidResourceURLError, *AuthError, *TransportError,
// *HTTPStatusError, *APIError or *SerializationError.
type Dispatcher interface {
	Send(ctx context.Context, req Request) (*RawResponse, error)
}

// Invoke sends call through d and decodes the response body into the call's
// response shape.
func Invoke[R any](ctx context.Context, d Dispatcher, call Call[R]) (*R, error) {
	raw, err := d.Send(ctx, call)
	if err != nil {
		return nil, err
	}

	return decodeInto(raw, call.NewResponse())
}

func decodeInto[R any](raw *RawResponse, out *R) (*R, error) {
	if len(bytes.TrimSpace(raw.Body)) == 0 {
		return out, nil
	}

	err := json.Unmarshal(raw.Body, out)
	if err != nil {
		return nil, &SerializationError{Op: "decoding response body", Err: err}
	}

	return out, nil
}

// call supplies the methods most requests share.
type call[R any] struct{}

func (call[R]) Header() http.Header { return nil }

func (call[R]) NewResponse() *R { return new(R) }

// EncryptionKey is a customer-supplied AES-256 key.
type EncryptionKey []byte

func (k EncryptionKey) header(prefix string) http.Header {
	if len(k) == 0 {
		return nil
	}

	sum := sha256.Sum256(k)

	h := http.Header{}
	h.Set(prefix+"-Algorithm", "AES256")
	h.Set(prefix+"-Key", base64.StdEncoding.EncodeToString(k))
	h.Set(prefix+"-Key-Sha256", base64.StdEncoding.EncodeToString(sum[:]))

	return h
}

const (
	encryptionHeaderPrefix           = "X-Goog-Encryption"
	copySourceEncryptionHeaderPrefix = "X-Goog-Copy-Source-Encryption"
)

func mergeHeaders(headers ...http.Header) http.Header {
	var merged http.Header

	for _, h := range headers {
		for key, values := range h {
			if merged == nil {
				merged = http.Header{}
			}

			merged[key] = append(merged[key], values...)
		}
	}

	return merged
}
