package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// seenRequest is a request received by the fake service.
type seenRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// fakeService answers requests by "METHOD /escaped/path" route.
type fakeService struct {
	mutex    sync.Mutex
	routes   map[string]func(r *http.Request) (int, interface{})
	requests []seenRequest
	server   *httptest.Server
}

func (f *fakeService) handle(method, path string, fn func(r *http.Request) (int, interface{})) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.routes[method+" "+path] = fn
}

func (f *fakeService) json(method, path string, status int, body interface{}) {
	f.handle(method, path, func(*http.Request) (int, interface{}) { return status, body })
}

func (f *fakeService) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mutex.Lock()
	f.requests = append(f.requests, seenRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	fn, ok := f.routes[r.Method+" "+r.URL.EscapedPath()]
	f.mutex.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))

		return
	}

	status, reply := fn(r)

	switch b := reply.(type) {
	case nil:
		w.WriteHeader(status)
	case []byte:
		w.WriteHeader(status)
		_, _ = w.Write(b)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(b)
	}
}

func (f *fakeService) seen() []seenRequest {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return append([]seenRequest(nil), f.requests...)
}

// setupCLI resets viper and points the CLI at a fake service with a config
// file in a temporary directory. Tests using it must not run in parallel.
func setupCLI(t *testing.T) *fakeService {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	f := &fakeService{routes: map[string]func(r *http.Request) (int, interface{}){}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)

	viper.Set(keyConfig, filepath.Join(t.TempDir(), "config.yml"))
	viper.Set(keyBaseURL, f.server.URL+"/storage/v1/")
	viper.Set(keyToken, "test-token")
	viper.Set(keyOutput, OutputFormatJSON)

	return f
}

// runCommand executes cmd with args and returns what it wrote.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

// decodeOutput parses JSON command output into v.
func decodeOutput(t *testing.T, out string, v interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

// withTerminal makes confirmation prompts readable for the test.
func withTerminal(t *testing.T, isTerminal bool) {
	t.Helper()

	previous := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTerminal }

	t.Cleanup(func() { stdinIsTerminal = previous })
}

func viperSetProject(t *testing.T, project string) {
	t.Helper()

	viper.Set(keyProject, project)
}

func viperSetOutput(t *testing.T, output string) {
	t.Helper()

	viper.Set(keyOutput, output)
}

// findCommand finds a subcommand by name.
func findCommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
