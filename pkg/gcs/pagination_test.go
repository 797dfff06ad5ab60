package gcs_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

var errPageFailed = errors.New("page failed")

// pagedDispatcher serves object listings keyed by page token.
type pagedDispatcher struct {
	pages   map[string]gcs.ListObjectsResponse
	failOn  string
	queries []string
}

func (d *pagedDispatcher) Send(_ context.Context, req gcs.Request) (*gcs.RawResponse, error) {
	q, _ := req.Assemble()
	d.queries = append(d.queries, q.Encode())

	token := q.Get(gcs.ParamPageToken)
	if d.failOn != "" && token == d.failOn {
		return nil, &gcs.TransportError{Method: req.Method(), Err: errPageFailed}
	}

	body, err := json.Marshal(d.pages[token])
	if err != nil {
		return nil, err
	}

	return &gcs.RawResponse{StatusCode: 200, Body: body}, nil
}

func objects(names ...string) []gcs.Object {
	out := make([]gcs.Object, 0, len(names))
	for _, name := range names {
		out = append(out, gcs.Object{Name: name})
	}

	return out
}

func names(objs []gcs.Object) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name)
	}

	return out
}

func threePages() *pagedDispatcher {
	return &pagedDispatcher{pages: map[string]gcs.ListObjectsResponse{
		"":   {Items: objects("a", "b"), NextPageToken: "p2"},
		"p2": {NextPageToken: "p3"},
		"p3": {Items: objects("c")},
	}}
}

func TestIterator_All(t *testing.T) {
	t.Parallel()

	d := threePages()

	req := gcs.NewListObjectsRequest("bkt")
	req.Prefix = "logs/"

	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, req)

	all, err := it.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(all))
	assert.Equal(t, 3, it.Pages())

	assert.Equal(t, []string{
		"prefix=logs%2F",
		"pageToken=p2&prefix=logs%2F",
		"pageToken=p3&prefix=logs%2F",
	}, d.queries)

	assert.Equal(t, "logs/", req.Prefix, "the caller's request is not consumed")
	assert.Empty(t, req.PageToken)
}

func TestIterator_NextAfterEnd(t *testing.T) {
	t.Parallel()

	d := &pagedDispatcher{pages: map[string]gcs.ListObjectsResponse{"": {Items: objects("only")}}}
	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"))

	item, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "only", item.Name)

	_, err = it.Next()
	require.ErrorIs(t, err, gcs.ErrNoMoreItems)
	assert.False(t, it.HasNext())
	assert.Len(t, d.queries, 1)
}

func TestIterator_ErrorKeepsItemsRead(t *testing.T) {
	t.Parallel()

	d := threePages()
	d.failOn = "p2"

	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"))

	all, err := it.All()
	require.ErrorIs(t, err, errPageFailed)
	assert.Equal(t, []string{"a", "b"}, names(all))

	_, err = it.Next()
	require.ErrorIs(t, err, gcs.ErrTransport)
	require.ErrorIs(t, it.Err(), errPageFailed)
	assert.Len(t, d.queries, 2, "a failed page is not retried")
}

func TestIterator_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := threePages()
	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](ctx, d, gcs.NewListObjectsRequest("bkt"))

	assert.False(t, it.HasNext())
	require.ErrorIs(t, it.Err(), context.Canceled)
	assert.Empty(t, d.queries)
}

func TestIterator_SeqStopsEarly(t *testing.T) {
	t.Parallel()

	d := threePages()
	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"))

	var seen []string

	for obj, err := range it.Seq() {
		require.NoError(t, err)

		seen = append(seen, obj.Name)
		if len(seen) == 1 {
			break
		}
	}

	assert.Equal(t, []string{"a"}, seen)
	assert.Len(t, d.queries, 1)
}

func TestIterator_SeqYieldsError(t *testing.T) {
	t.Parallel()

	d := threePages()
	d.failOn = "p3"

	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"))

	var (
		seen    []string
		lastErr error
	)

	for obj, err := range it.Seq() {
		if err != nil {
			lastErr = err

			continue
		}

		seen = append(seen, obj.Name)
	}

	assert.Equal(t, []string{"a", "b"}, seen)
	require.ErrorIs(t, lastErr, errPageFailed)
}

func TestIterator_ForEach(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")

	d := threePages()
	it := gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"))

	var seen []string

	err := it.ForEach(func(o gcs.Object) error {
		seen = append(seen, o.Name)
		if o.Name == "b" {
			return stop
		}

		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Len(t, d.queries, 1)
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	t.Run("every page", func(t *testing.T) {
		t.Parallel()

		d := threePages()

		all, err := gcs.FetchAllPages[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(all))
	})

	t.Run("page limit", func(t *testing.T) {
		t.Parallel()

		d := threePages()

		all, err := gcs.FetchAllPages[gcs.ListObjectsResponse, gcs.Object](
			context.Background(), d, gcs.NewListObjectsRequest("bkt"), &gcs.PaginationOptions{MaxPages: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, names(all))
		assert.Len(t, d.queries, 1)
	})

	t.Run("error returns the items so far", func(t *testing.T) {
		t.Parallel()

		d := threePages()
		d.failOn = "p3"

		all, err := gcs.FetchAllPages[gcs.ListObjectsResponse, gcs.Object](context.Background(), d, gcs.NewListObjectsRequest("bkt"), nil)
		require.ErrorIs(t, err, errPageFailed)
		assert.Equal(t, []string{"a", "b"}, names(all))
	})
}
