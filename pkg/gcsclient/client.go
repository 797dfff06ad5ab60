// Package gcsclient provides the main entry point for creating Cloud Storage clients
package gcsclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/gcs-client/internal/client"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// EmulatorHostEnv names the variable that points clients at a local emulator.
const EmulatorHostEnv = "STORAGE_EMULATOR_HOST"

// New creates a new Cloud Storage client. config is not modified.
func New(ctx context.Context, config *gcs.Config) (gcs.Client, error) {
	if config == nil {
		return nil, client.ErrConfigRequired
	}

	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = emulatorBaseURL()
	}

	c, err := client.New(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// emulatorBaseURL returns the JSON API root of the emulator named by
// STORAGE_EMULATOR_HOST, or "" when it is unset.
func emulatorBaseURL() string {
	host := strings.TrimSuffix(os.Getenv(EmulatorHostEnv), "/")
	if host == "" {
		return ""
	}

	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}

	return host + "/storage/v1/"
}

// NewAnonymous creates a client that sends no credentials. It can read public
// buckets only.
func NewAnonymous(ctx context.Context) (gcs.Client, error) {
	return New(ctx, &gcs.Config{})
}

// NewWithToken creates a client that sends token with every request.
func NewWithToken(ctx context.Context, token string) (gcs.Client, error) {
	return New(ctx, &gcs.Config{
		AccessToken: token,
	})
}

// NewWithCredentialsFile creates a client from a service account key or an
// authorized user file.
func NewWithCredentialsFile(ctx context.Context, path string) (gcs.Client, error) {
	return New(ctx, &gcs.Config{
		CredentialsFile: path,
	})
}
