package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// HMACKeysClient implements gcs.HMACKeysClient.
type HMACKeysClient struct {
	httpClient *http.Client
}

// NewHMACKeysClient creates a new HMAC keys client.
func NewHMACKeysClient(httpClient *http.Client) *HMACKeysClient {
	return &HMACKeysClient{
		httpClient: httpClient,
	}
}

// Create implements gcs.HMACKeysClient.Create. The secret is only returned
// here.
func (c *HMACKeysClient) Create(ctx context.Context, req *gcs.CreateHMACKeyRequest) (*gcs.HMACKey, error) {
	key, err := gcs.Invoke[gcs.HMACKey](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("creating HMAC key: %w", err)
	}

	return key, nil
}

// List implements gcs.HMACKeysClient.List.
func (c *HMACKeysClient) List(ctx context.Context, req *gcs.ListHMACKeysRequest) *gcs.Iterator[gcs.HMACKeyMetadata] {
	return gcs.Paginate[gcs.ListHMACKeysResponse, gcs.HMACKeyMetadata](ctx, c.httpClient, req)
}

// Get implements gcs.HMACKeysClient.Get.
func (c *HMACKeysClient) Get(ctx context.Context, req *gcs.GetHMACKeyRequest) (*gcs.HMACKeyMetadata, error) {
	key, err := gcs.Invoke[gcs.HMACKeyMetadata](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting HMAC key: %w", err)
	}

	return key, nil
}

// Update implements gcs.HMACKeysClient.Update.
func (c *HMACKeysClient) Update(ctx context.Context, req *gcs.UpdateHMACKeyRequest) (*gcs.HMACKeyMetadata, error) {
	key, err := gcs.Invoke[gcs.HMACKeyMetadata](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating HMAC key: %w", err)
	}

	return key, nil
}

// Delete implements gcs.HMACKeysClient.Delete. Only inactive keys can be
// deleted.
func (c *HMACKeysClient) Delete(ctx context.Context, req *gcs.DeleteHMACKeyRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("deleting HMAC key: %w", err)
	}

	return nil
}
