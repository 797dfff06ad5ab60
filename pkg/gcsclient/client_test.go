package gcsclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
	"github.com/fivetwenty-io/gcs-client/pkg/gcsclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := gcsclient.New(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := gcsclient.New(context.Background(), &gcs.Config{
			BaseURL:     "https://storage.example.com/storage/v1",
			AccessToken: "token",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects relative base url", func(t *testing.T) {
		t.Parallel()

		_, err := gcsclient.New(context.Background(), &gcs.Config{BaseURL: "storage/v1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
	})
}

func TestNewAnonymous(t *testing.T) {
	t.Parallel()

	client, err := gcsclient.NewAnonymous(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/storage/v1/b/public", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gcs.Bucket{Name: "public"})
	}))
	defer server.Close()

	client, err := gcsclient.New(context.Background(), &gcs.Config{
		BaseURL:     server.URL + "/storage/v1/",
		AccessToken: "test-token",
	})
	require.NoError(t, err)

	bucket, err := client.Buckets().Get(context.Background(), gcs.NewGetBucketRequest("public"))
	require.NoError(t, err)
	assert.Equal(t, "public", bucket.Name)
}

func TestNewWithCredentialsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	good := filepath.Join(dir, "adc.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"type":"authorized_user","client_id":"id","client_secret":"s","refresh_token":"r"}`), 0o600))

	client, err := gcsclient.NewWithCredentialsFile(context.Background(), good)
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = gcsclient.NewWithCredentialsFile(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

//nolint:paralleltest // modifies the process environment
func TestNew_EmulatorHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/b/local", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gcs.Bucket{Name: "local"})
	}))
	defer server.Close()

	t.Setenv(gcsclient.EmulatorHostEnv, strings.TrimPrefix(server.URL, "http://"))

	client, err := gcsclient.NewAnonymous(context.Background())
	require.NoError(t, err)

	bucket, err := client.Buckets().Get(context.Background(), gcs.NewGetBucketRequest("local"))
	require.NoError(t, err)
	assert.Equal(t, "local", bucket.Name)
}
