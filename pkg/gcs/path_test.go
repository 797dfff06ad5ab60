package gcs_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

const testBaseURL = "https://storage.googleapis.com/storage/v1/"

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		normal string
		slash  string
	}{
		{"simple", "simple", "simple"},
		{"a b", "a%20b", "a%20b"},
		{"dir/file.txt", "dir/file.txt", "dir%2Ffile.txt"},
		{"100%", "100%25", "100%25"},
		{"a?b#c", "a%3Fb%23c", "a%3Fb%23c"},
		{"x+y=z", "x%2By%3Dz", "x%2By%3Dz"},
		{"user-a@example.com", "user-a%40example.com", "user-a%40example.com"},
		{"a~b-c_d.e", "a~b-c_d.e", "a~b-c_d.e"},
		{"ü", "%C3%BC", "%C3%BC"},
		{"tab\there", "tab%09here", "tab%09here"},
		{"", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.normal, gcs.Escape(tt.in, gcs.EscapeNormal), tt.in)
		assert.Equal(t, tt.slash, gcs.Escape(tt.in, gcs.EscapeSlash), tt.in)
	}
}

func TestAppendSegment(t *testing.T) {
	t.Parallel()

	t.Run("adds a separator when missing", func(t *testing.T) {
		t.Parallel()

		u, err := gcs.AppendSegment(mustParse(t, "https://example.com/storage/v1"), "b", gcs.EscapeNormal)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/storage/v1/b", u.String())
	})

	t.Run("keeps existing escapes verbatim", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/root%2Fdir/")

		u, err := gcs.AppendSegment(base, "a/b", gcs.EscapeSlash)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/root%2Fdir/a%2Fb", u.String())
		assert.Equal(t, "/root/dir/a/b", u.Path)
	})

	t.Run("drops query and fragment", func(t *testing.T) {
		t.Parallel()

		u, err := gcs.AppendSegment(mustParse(t, "https://example.com/v1/?alt=json#top"), "b", gcs.EscapeNormal)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/v1/b", u.String())
	})

	t.Run("does not modify the base", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, testBaseURL)

		_, err := gcs.AppendSegment(base, "b", gcs.EscapeNormal)
		require.NoError(t, err)
		assert.Equal(t, testBaseURL, base.String())
	})

	t.Run("rejects unusable bases", func(t *testing.T) {
		t.Parallel()

		_, err := gcs.AppendSegment(nil, "b", gcs.EscapeNormal)
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)

		_, err = gcs.AppendSegment(mustParse(t, "mailto:someone@example.com"), "b", gcs.EscapeNormal)
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)

		_, err = gcs.AppendSegments(mustParse(t, testBaseURL), gcs.EscapeNormal)
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
	})

	t.Run("rejects empty segments", func(t *testing.T) {
		t.Parallel()

		u, err := gcs.AppendSegment(mustParse(t, testBaseURL), "", gcs.EscapeNormal)
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
		assert.Nil(t, u)

		_, err = gcs.AppendSegments(mustParse(t, testBaseURL), gcs.EscapeNormal, "b", "", "o")
		require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
	})
}

func TestResourceURLs(t *testing.T) {
	t.Parallel()

	base := mustParse(t, testBaseURL)

	bucket, err := gcs.BucketURL(base, "bkt")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"b/bkt", bucket.String())

	object, err := gcs.ObjectURL(base, "bkt", "photos/2026/cat.jpg", gcs.EscapeSlash)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"b/bkt/o/photos%2F2026%2Fcat.jpg", object.String())

	object, err = gcs.ObjectURL(base, "bkt", "photos/2026/cat.jpg", gcs.EscapeNormal)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"b/bkt/o/photos/2026/cat.jpg", object.String())

	project, err := gcs.ProjectURL(base, "my-project")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"projects/my-project", project.String())

	hmac, err := gcs.ProjectURL(base, "my-project", "hmacKeys", "GOOG1EXAMPLE")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"projects/my-project/hmacKeys/GOOG1EXAMPLE", hmac.String())
}

func TestResourceURLs_RequireNames(t *testing.T) {
	t.Parallel()

	base := mustParse(t, testBaseURL)

	tests := []struct {
		name  string
		build func() (*url.URL, error)
		cause error
	}{
		{"bucket", func() (*url.URL, error) { return gcs.BucketURL(base, "") }, gcs.ErrBucketRequired},
		{"bucket with trailing segments", func() (*url.URL, error) { return gcs.BucketURL(base, "", "o") }, gcs.ErrBucketRequired},
		{"object", func() (*url.URL, error) { return gcs.ObjectURL(base, "bkt", "", gcs.EscapeSlash) }, gcs.ErrObjectRequired},
		{"object bucket", func() (*url.URL, error) { return gcs.ObjectURL(base, "", "a.txt", gcs.EscapeSlash) }, gcs.ErrBucketRequired},
		{"project", func() (*url.URL, error) { return gcs.ProjectURL(base, "") }, gcs.ErrProjectRequired},
		{"bucket trailing segment", func() (*url.URL, error) { return gcs.BucketURL(base, "bkt", "acl", "") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := tt.build()
			require.ErrorIs(t, err, gcs.ErrInvalidResourceURL)
			assert.Nil(t, u)

			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}
