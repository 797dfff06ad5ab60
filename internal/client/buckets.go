package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// BucketsClient implements gcs.BucketsClient.
type BucketsClient struct {
	httpClient *http.Client
}

// NewBucketsClient creates a new buckets client.
func NewBucketsClient(httpClient *http.Client) *BucketsClient {
	return &BucketsClient{
		httpClient: httpClient,
	}
}

// List implements gcs.BucketsClient.List.
func (c *BucketsClient) List(ctx context.Context, req *gcs.ListBucketsRequest) *gcs.Iterator[gcs.Bucket] {
	return gcs.Paginate[gcs.ListBucketsResponse, gcs.Bucket](ctx, c.httpClient, req)
}

// Insert implements gcs.BucketsClient.Insert.
func (c *BucketsClient) Insert(ctx context.Context, req *gcs.InsertBucketRequest) (*gcs.Bucket, error) {
	bucket, err := gcs.Invoke[gcs.Bucket](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return bucket, nil
}

// Get implements gcs.BucketsClient.Get.
func (c *BucketsClient) Get(ctx context.Context, req *gcs.GetBucketRequest) (*gcs.Bucket, error) {
	bucket, err := gcs.Invoke[gcs.Bucket](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting bucket: %w", err)
	}

	return bucket, nil
}

// Update implements gcs.BucketsClient.Update.
func (c *BucketsClient) Update(ctx context.Context, req *gcs.UpdateBucketRequest) (*gcs.Bucket, error) {
	bucket, err := gcs.Invoke[gcs.Bucket](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating bucket: %w", err)
	}

	return bucket, nil
}

// Patch implements gcs.BucketsClient.Patch.
func (c *BucketsClient) Patch(ctx context.Context, req *gcs.PatchBucketRequest) (*gcs.Bucket, error) {
	bucket, err := gcs.Invoke[gcs.Bucket](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("patching bucket: %w", err)
	}

	return bucket, nil
}

// Delete implements gcs.BucketsClient.Delete.
func (c *BucketsClient) Delete(ctx context.Context, req *gcs.DeleteBucketRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("deleting bucket: %w", err)
	}

	return nil
}
