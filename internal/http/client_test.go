package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	gcshttp "github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

var errNoCredentials = errors.New("no credentials")

// headerProvider returns fixed headers, or err.
type headerProvider struct {
	mu     sync.Mutex
	token  string
	err    error
	scopes []gcs.Scope
}

func (p *headerProvider) Headers(_ context.Context, scope gcs.Scope) (http.Header, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scopes = append(p.scopes, scope)

	if p.err != nil {
		return nil, p.err
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+p.token)

	return h, nil
}

// MockLogger records log calls.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }

func (l *MockLogger) Info(msg string, fields map[string]interface{}) { l.record("info", msg, fields) }

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) { l.record("warn", msg, fields) }

func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...gcshttp.Option) (*gcshttp.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gcshttp.NewClient(server.URL+"/storage/v1/", &headerProvider{token: "test-token"}, opts...)
	require.NoError(t, err)

	return client, server
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Send(t *testing.T) {
	t.Parallel()

	t.Run("get decodes the response", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/storage/v1/b/bkt/o/dir%2Fa%20b.txt", r.URL.EscapedPath())
			assert.Equal(t, "generation=5&projection=full", r.URL.RawQuery)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "gcs-client/1.0", r.Header.Get("User-Agent"))
			assert.Empty(t, r.Header.Get("Content-Type"))

			writeJSON(w, http.StatusOK, map[string]interface{}{"bucket": "bkt", "name": "dir/a b.txt", "size": "12"})
		})

		req := gcs.NewGetObjectRequest("bkt", "dir/a b.txt")
		req.Generation = 5
		req.Projection = gcs.ProjectionFull

		obj, err := gcs.Invoke[gcs.Object](context.Background(), client, req)
		require.NoError(t, err)
		assert.Equal(t, "dir/a b.txt", obj.Name)
		assert.Equal(t, "bkt", obj.Bucket)
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/storage/v1/b", r.URL.Path)
			assert.Equal(t, "project=my-project&predefinedAcl=private", r.URL.RawQuery)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "new-bucket", body["name"])

			writeJSON(w, http.StatusOK, body)
		})

		req := gcs.NewInsertBucketRequest("my-project", &gcs.Bucket{Name: "new-bucket"})
		req.PredefinedACL = gcs.PredefinedBucketACLPrivate

		bucket, err := gcs.Invoke[gcs.Bucket](context.Background(), client, req)
		require.NoError(t, err)
		assert.Equal(t, "new-bucket", bucket.Name)
	})

	t.Run("media upload", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/upload/storage/v1/b/bkt/o", r.URL.Path)
			assert.Equal(t, "media", r.URL.Query().Get("uploadType"))
			assert.Equal(t, "notes/today.txt", r.URL.Query().Get("name"))
			assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

			data, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Equal(t, "hello", string(data))

			writeJSON(w, http.StatusOK, map[string]interface{}{"name": "notes/today.txt", "size": "5"})
		})

		req := gcs.NewInsertObjectRequest("bkt", "notes/today.txt", "text/plain", []byte("hello"))

		obj, err := gcs.Invoke[gcs.Object](context.Background(), client, req)
		require.NoError(t, err)
		assert.Equal(t, "notes/today.txt", obj.Name)
	})

	t.Run("empty media upload still sends a body", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "media", r.URL.Query().Get("uploadType"))
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

			data, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Empty(t, data)

			writeJSON(w, http.StatusOK, map[string]interface{}{"name": "empty", "size": "0"})
		})

		obj, err := gcs.Invoke[gcs.Object](context.Background(), client, gcs.NewInsertObjectRequest("bkt", "empty", "", nil))
		require.NoError(t, err)
		assert.Equal(t, "empty", obj.Name)
	})

	t.Run("download accepts any content type", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/storage/v1/b/bkt/o/report.csv", r.URL.EscapedPath())
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			assert.Equal(t, "*/*", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("a,b\n"))
		})

		resp, err := client.Send(context.Background(), gcs.NewDownloadObjectRequest("bkt", "report.csv"))
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", string(resp.Body))
	})

	t.Run("missing bucket never reaches the server", func(t *testing.T) {
		t.Parallel()

		var hits int

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits++

			w.WriteHeader(http.StatusNoContent)
		})

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest(""))
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
		require.ErrorIs(t, err, gcs.ErrBucketRequired)
		assert.Zero(t, hits)
	})

	t.Run("empty body decodes to zero value", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := gcs.Invoke[gcs.Empty](context.Background(), client, gcs.NewDeleteBucketRequest("bkt"))
		require.NoError(t, err)
	})

	t.Run("scope is passed to the provider", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(server.Close)

		provider := &headerProvider{token: "t"}
		client, err := gcshttp.NewClient(server.URL+"/storage/v1/", provider)
		require.NoError(t, err)

		_, err = client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.NoError(t, err)
		_, err = client.Send(context.Background(), gcs.NewDeleteBucketRequest("bkt"))
		require.NoError(t, err)
		_, err = client.Send(context.Background(), gcs.NewCreateHMACKeyRequest("p", "sa@p.iam.gserviceaccount.com"))
		require.NoError(t, err)

		assert.Equal(t, []gcs.Scope{gcs.ScopeReadOnly, gcs.ScopeReadWrite, gcs.ScopeFullControl}, provider.scopes)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "gcs-cli/2.0", r.Header.Get("User-Agent"))
			w.WriteHeader(http.StatusNoContent)
		}, gcshttp.WithUserAgent("gcs-cli/2.0"))

		_, err := client.Send(context.Background(), gcs.NewDeleteBucketRequest("bkt"))
		require.NoError(t, err)
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	t.Run("error envelope", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"error": map[string]interface{}{
					"code":    404,
					"message": "No such object: bkt/missing",
					"errors":  []map[string]string{{"domain": "global", "reason": "notFound", "message": "No such object"}},
				},
			})
		})

		_, err := gcs.Invoke[gcs.Object](context.Background(), client, gcs.NewGetObjectRequest("bkt", "missing"))
		require.Error(t, err)
		require.ErrorIs(t, err, gcs.ErrApplication)

		var apiErr *gcs.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, http.MethodGet, apiErr.Method)
		assert.Contains(t, apiErr.URL, "/b/bkt/o/missing")
		assert.Equal(t, "notFound", apiErr.FirstError().Reason)
		assert.True(t, gcs.IsNotFound(err))
	})

	t.Run("plain status", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("upstream unavailable"))
		})

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.ErrorIs(t, err, gcs.ErrHTTPStatus)

		var statusErr *gcs.HTTPStatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, "upstream unavailable", string(statusErr.Body))
	})

	t.Run("undecodable success body", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})

		_, err := gcs.Invoke[gcs.Bucket](context.Background(), client, gcs.NewGetBucketRequest("bkt"))
		require.ErrorIs(t, err, gcs.ErrSerialization)
	})

	t.Run("auth failure sends nothing", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		t.Cleanup(server.Close)

		client, err := gcshttp.NewClient(server.URL, &headerProvider{err: errNoCredentials})
		require.NoError(t, err)

		_, err = client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.ErrorIs(t, err, gcs.ErrAuth)
		require.ErrorIs(t, err, errNoCredentials)

		var authErr *gcs.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, gcs.ScopeReadOnly, authErr.Scope)
		assert.Zero(t, hits.Load())
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client, err := gcshttp.NewClient(baseURL, nil)
		require.NoError(t, err)

		_, err = client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.ErrorIs(t, err, gcs.ErrTransport)
		assert.Zero(t, gcs.StatusCode(err))
	})
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"", "storage/v1", "mailto:someone@example.com", "://bad"} {
		_, err := gcshttp.NewClient(baseURL, nil)
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL, baseURL)
	}
}

func TestClient_BaseURLIsACopy(t *testing.T) {
	t.Parallel()

	client, err := gcshttp.NewClient(constants.DefaultBaseURL, nil)
	require.NoError(t, err)

	u := client.BaseURL()
	u.Host = "elsewhere.example.com"

	assert.Equal(t, "storage.googleapis.com", client.BaseURL().Host)
}

func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.Error(t, err)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("retries server errors when enabled", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			writeJSON(w, http.StatusOK, map[string]string{"name": "bkt"})
		}, gcshttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		bucket, err := gcs.Invoke[gcs.Bucket](context.Background(), client, gcs.NewGetBucketRequest("bkt"))
		require.NoError(t, err)
		assert.Equal(t, "bkt", bucket.Name)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusPreconditionFailed)
		}, gcshttp.WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		assert.True(t, gcs.IsPreconditionFailed(err))
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	t.Run("request and response interceptors", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "tests", r.Header.Get("X-Goog-User-Project"))
			assert.NotEmpty(t, r.Header.Get(gcs.RequestIDHeader))
			w.WriteHeader(http.StatusNoContent)
		}, gcshttp.WithInterceptors(func() *gcs.InterceptorChain {
			chain := gcs.NewInterceptorChain()
			chain.AddRequestInterceptor(gcs.HeaderInterceptor(map[string]string{"X-Goog-User-Project": "tests"}))
			chain.AddRequestInterceptor(gcs.RequestIDInterceptor())

			return chain
		}()))

		_, err := client.Send(context.Background(), gcs.NewDeleteBucketRequest("bkt"))
		require.NoError(t, err)
	})

	t.Run("response interceptor sees the status", func(t *testing.T) {
		t.Parallel()

		var seen atomic.Int32

		chain := gcs.NewInterceptorChain()
		chain.AddResponseInterceptor(func(_ context.Context, req *gcs.InterceptedRequest, resp *gcs.InterceptedResponse) error {
			assert.Equal(t, http.MethodGet, req.Method)
			seen.Store(int32(resp.StatusCode))

			return nil
		})

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, gcshttp.WithInterceptors(chain))

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		assert.True(t, gcs.IsForbidden(err))
		assert.Equal(t, int32(http.StatusForbidden), seen.Load())
	})

	t.Run("failing request interceptor aborts", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		chain := gcs.NewInterceptorChain()
		chain.AddRequestInterceptor(func(context.Context, *gcs.InterceptedRequest) error {
			return errNoCredentials
		})

		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}, gcshttp.WithInterceptors(chain))

		_, err := client.Send(context.Background(), gcs.NewGetBucketRequest("bkt"))
		require.ErrorIs(t, err, gcs.ErrTransport)
		require.ErrorIs(t, err, errNoCredentials)
		assert.Zero(t, hits.Load())
	})
}

func TestClient_DebugLoggingRedactsSecrets(t *testing.T) {
	t.Parallel()

	logger := &MockLogger{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": map[string]interface{}{"code": 404, "message": "gone"}})
	}, gcshttp.WithLogger(logger), gcshttp.WithDebug(true))

	req := gcs.NewGetObjectRequest("bkt", "obj")
	req.EncryptionKey = gcs.EncryptionKey(make([]byte, 32))

	_, err := client.Send(context.Background(), req)
	require.Error(t, err)

	logger.mu.Lock()
	defer logger.mu.Unlock()

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])

	fields, ok := logger.logs[0]["fields"].(map[string]interface{})
	require.True(t, ok)

	headers, ok := fields["headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, constants.MaskedSecret, headers["Authorization"])
	assert.Equal(t, constants.MaskedSecret, headers["X-Goog-Encryption-Key"])
	assert.Equal(t, "AES256", headers["X-Goog-Encryption-Algorithm"])

	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])

	fields, ok = logger.logs[1]["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, fields["status"])
	assert.Contains(t, fields["body"], "gone")
}
