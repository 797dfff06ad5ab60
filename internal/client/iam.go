package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// IAMClient implements gcs.IAMClient.
type IAMClient struct {
	httpClient *http.Client
}

// NewIAMClient creates a new IAM client.
func NewIAMClient(httpClient *http.Client) *IAMClient {
	return &IAMClient{
		httpClient: httpClient,
	}
}

// GetPolicy implements gcs.IAMClient.GetPolicy.
func (c *IAMClient) GetPolicy(ctx context.Context, req *gcs.GetIAMPolicyRequest) (*gcs.Policy, error) {
	policy, err := gcs.Invoke[gcs.Policy](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting IAM policy: %w", err)
	}

	return policy, nil
}

// SetPolicy implements gcs.IAMClient.SetPolicy.
func (c *IAMClient) SetPolicy(ctx context.Context, req *gcs.SetIAMPolicyRequest) (*gcs.Policy, error) {
	policy, err := gcs.Invoke[gcs.Policy](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("setting IAM policy: %w", err)
	}

	return policy, nil
}

// TestPermissions implements gcs.IAMClient.TestPermissions. It returns the
// subset of the requested permissions the caller holds.
func (c *IAMClient) TestPermissions(ctx context.Context, req *gcs.TestIAMPermissionsRequest) ([]string, error) {
	resp, err := gcs.Invoke[gcs.TestIAMPermissionsResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("testing IAM permissions: %w", err)
	}

	return resp.Permissions, nil
}
