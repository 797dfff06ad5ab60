package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/gcs-client/internal/http"
)

// recordedRequest is what the fake service saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeService answers each request with the next queued response.
type fakeService struct {
	t        *testing.T
	mutex    sync.Mutex
	requests []recordedRequest
	replies  []fakeReply
	server   *httptest.Server
}

type fakeReply struct {
	status int
	body   interface{}
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()

	f := &fakeService{t: t}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)

	return f
}

func (f *fakeService) reply(status int, body interface{}) *fakeService {
	f.replies = append(f.replies, fakeReply{status: status, body: body})

	return f
}

func (f *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mutex.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})

	reply := fakeReply{status: http.StatusNotFound, body: map[string]interface{}{
		"error": map[string]interface{}{"code": 404, "message": "no reply queued"},
	}}
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	f.mutex.Unlock()

	switch b := reply.body.(type) {
	case nil:
		w.WriteHeader(reply.status)
	case []byte:
		w.WriteHeader(reply.status)
		_, _ = w.Write(b)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.status)
		_ = json.NewEncoder(w).Encode(b)
	}
}

func (f *fakeService) request(i int) recordedRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	require.Greater(f.t, len(f.requests), i, "request %d was not sent", i)

	return f.requests[i]
}

func (f *fakeService) count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return len(f.requests)
}

// httpClient returns a dispatcher rooted at /storage/v1/ on the fake service.
func (f *fakeService) httpClient() *internalhttp.Client {
	c, err := internalhttp.NewClient(f.server.URL+"/storage/v1/", nil)
	require.NoError(f.t, err)

	return c
}

// decodeBody unmarshals a recorded JSON body.
func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))

	return out
}
