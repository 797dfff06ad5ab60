package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

func TestObjectsClient_Get_EscapesSlashes(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{
		"name":       "dir/file.txt",
		"bucket":     "b",
		"size":       "42",
		"generation": "1700000000000000",
	})
	objects := NewObjectsClient(svc.httpClient())

	obj, err := objects.Get(context.Background(), gcs.NewGetObjectRequest("b", "dir/file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "dir/file.txt", obj.Name)
	assert.Equal(t, uint64(42), obj.Size)

	assert.Equal(t, "/storage/v1/b/b/o/dir%2Ffile.txt", svc.request(0).Path)
}

func TestObjectsClient_Download(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, []byte("hello, world"))
	objects := NewObjectsClient(svc.httpClient())

	req := gcs.NewDownloadObjectRequest("b", "greeting.txt")
	req.Generation = 7

	data, err := objects.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello, world"), data)

	sent := svc.request(0)
	assert.Equal(t, "/storage/v1/b/b/o/greeting.txt", sent.Path)
	assert.Equal(t, "alt=media&generation=7", sent.Query)
}

func TestObjectsClient_Insert(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{"name": "notes/a.txt", "bucket": "b"})
	objects := NewObjectsClient(svc.httpClient())

	req := gcs.NewInsertObjectRequest("b", "notes/a.txt", "text/plain", []byte("abc"))
	req.IfGenerationMatch = gcs.Int64(0)

	obj, err := objects.Insert(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "notes/a.txt", obj.Name)

	sent := svc.request(0)
	assert.Equal(t, http.MethodPost, sent.Method)
	assert.Equal(t, "/upload/storage/v1/b/b/o", sent.Path)
	assert.Equal(t, "uploadType=media&name=notes%2Fa.txt&ifGenerationMatch=0", sent.Query)
	assert.Equal(t, "text/plain", sent.Header.Get("Content-Type"))
	assert.Equal(t, []byte("abc"), sent.Body)
}

func TestObjectsClient_Compose(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{"name": "all.log"})
	objects := NewObjectsClient(svc.httpClient())

	_, err := objects.Compose(context.Background(), gcs.NewComposeObjectRequest("b", "all.log", "part-1", "part-2"))
	require.NoError(t, err)

	sent := svc.request(0)
	assert.Equal(t, "/storage/v1/b/b/o/all.log/compose", sent.Path)

	body := decodeBody(t, sent.Body)
	assert.Equal(t, "storage#composeRequest", body["kind"])
	assert.Len(t, body["sourceObjects"], 2)
}

func TestObjectsClient_Copy(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{"name": "copy/of/x"})
	objects := NewObjectsClient(svc.httpClient())

	_, err := objects.Copy(context.Background(), gcs.NewCopyObjectRequest("src", "a/x", "dst", "copy/of/x"))
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/b/src/o/a%2Fx/copyTo/b/dst/o/copy/of/x", svc.request(0).Path)
}

func TestObjectsClient_RewriteUntilDone(t *testing.T) {
	t.Parallel()

	t.Run("follows tokens until done", func(t *testing.T) {
		t.Parallel()

		svc := newFakeService(t).
			reply(http.StatusOK, map[string]interface{}{"done": false, "rewriteToken": "tok-1", "totalBytesRewritten": "10"}).
			reply(http.StatusOK, map[string]interface{}{"done": false, "rewriteToken": "tok-2", "totalBytesRewritten": "20"}).
			reply(http.StatusOK, map[string]interface{}{"done": true, "resource": map[string]interface{}{"name": "big.bin"}})
		objects := NewObjectsClient(svc.httpClient())

		req := gcs.NewRewriteObjectRequest("src", "big.bin", "dst", "big.bin")
		req.MaxBytesRewrittenPerCall = 1048576

		obj, err := objects.RewriteUntilDone(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "big.bin", obj.Name)

		require.Equal(t, 3, svc.count())
		assert.Equal(t, "/storage/v1/b/src/o/big.bin/rewriteTo/b/dst/o/big.bin", svc.request(0).Path)
		assert.Equal(t, "maxBytesRewrittenPerCall=1048576", svc.request(0).Query)
		assert.Equal(t, "maxBytesRewrittenPerCall=1048576&rewriteToken=tok-1", svc.request(1).Query)
		assert.Equal(t, "maxBytesRewrittenPerCall=1048576&rewriteToken=tok-2", svc.request(2).Query)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{"done": false})
		objects := NewObjectsClient(svc.httpClient())

		_, err := objects.RewriteUntilDone(context.Background(), gcs.NewRewriteObjectRequest("s", "o", "d", "o"))
		assert.ErrorIs(t, err, ErrRewriteNoToken)
	})

	t.Run("times out", func(t *testing.T) {
		t.Parallel()

		svc := newFakeService(t)
		for range 100 {
			svc.reply(http.StatusOK, map[string]interface{}{"done": false, "rewriteToken": "again"})
		}

		objects := NewObjectsClient(svc.httpClient())
		objects.rewriteTimeout = time.Nanosecond

		_, err := objects.RewriteUntilDone(context.Background(), gcs.NewRewriteObjectRequest("s", "o", "d", "o"))
		assert.ErrorIs(t, err, constants.ErrRewriteTimeout)
	})
}

func TestObjectsClient_Delete_PreconditionFailed(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusPreconditionFailed, map[string]interface{}{
		"error": map[string]interface{}{"code": 412, "message": "At least one of the pre-conditions you specified did not hold."},
	})
	objects := NewObjectsClient(svc.httpClient())

	req := gcs.NewDeleteObjectRequest("b", "o")
	req.IfGenerationMatch = gcs.Int64(5)

	err := objects.Delete(context.Background(), req)
	require.Error(t, err)
	assert.True(t, gcs.IsPreconditionFailed(err))
	assert.Equal(t, "ifGenerationMatch=5", svc.request(0).Query)
}

func TestObjectsClient_List_Prefixes(t *testing.T) {
	t.Parallel()

	svc := newFakeService(t).reply(http.StatusOK, map[string]interface{}{
		"items":    []map[string]interface{}{{"name": "top.txt"}},
		"prefixes": []string{"dir/"},
	})
	objects := NewObjectsClient(svc.httpClient())

	req := gcs.NewListObjectsRequest("b")
	req.Delimiter = "/"

	items, err := objects.List(context.Background(), req).All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "top.txt", items[0].Name)
	assert.Equal(t, "delimiter=%2F", svc.request(0).Query)
}
