package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// BucketACLClient implements gcs.BucketACLClient.
type BucketACLClient struct {
	httpClient *http.Client
}

// NewBucketACLClient creates a new bucket ACL client.
func NewBucketACLClient(httpClient *http.Client) *BucketACLClient {
	return &BucketACLClient{
		httpClient: httpClient,
	}
}

// List implements gcs.BucketACLClient.List.
func (c *BucketACLClient) List(ctx context.Context, req *gcs.ListBucketACLRequest) ([]gcs.BucketAccessControl, error) {
	list, err := gcs.Invoke[gcs.ListBucketAccessControlsResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("listing bucket ACL: %w", err)
	}

	return list.Items, nil
}

// Get implements gcs.BucketACLClient.Get.
func (c *BucketACLClient) Get(ctx context.Context, req *gcs.GetBucketACLRequest) (*gcs.BucketAccessControl, error) {
	acl, err := gcs.Invoke[gcs.BucketAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting bucket ACL entry: %w", err)
	}

	return acl, nil
}

// Insert implements gcs.BucketACLClient.Insert.
func (c *BucketACLClient) Insert(ctx context.Context, req *gcs.InsertBucketACLRequest) (*gcs.BucketAccessControl, error) {
	acl, err := gcs.Invoke[gcs.BucketAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("adding bucket ACL entry: %w", err)
	}

	return acl, nil
}

// Update implements gcs.BucketACLClient.Update.
func (c *BucketACLClient) Update(ctx context.Context, req *gcs.UpdateBucketACLRequest) (*gcs.BucketAccessControl, error) {
	acl, err := gcs.Invoke[gcs.BucketAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating bucket ACL entry: %w", err)
	}

	return acl, nil
}

// Patch implements gcs.BucketACLClient.Patch.
func (c *BucketACLClient) Patch(ctx context.Context, req *gcs.PatchBucketACLRequest) (*gcs.BucketAccessControl, error) {
	acl, err := gcs.Invoke[gcs.BucketAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("patching bucket ACL entry: %w", err)
	}

	return acl, nil
}

// Delete implements gcs.BucketACLClient.Delete.
func (c *BucketACLClient) Delete(ctx context.Context, req *gcs.DeleteBucketACLRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("removing bucket ACL entry: %w", err)
	}

	return nil
}

// DefaultObjectACLClient implements gcs.DefaultObjectACLClient.
type DefaultObjectACLClient struct {
	httpClient *http.Client
}

// NewDefaultObjectACLClient creates a new default object ACL client.
func NewDefaultObjectACLClient(httpClient *http.Client) *DefaultObjectACLClient {
	return &DefaultObjectACLClient{
		httpClient: httpClient,
	}
}

// List implements gcs.DefaultObjectACLClient.List.
func (c *DefaultObjectACLClient) List(ctx context.Context, req *gcs.ListDefaultObjectACLRequest) ([]gcs.ObjectAccessControl, error) {
	list, err := gcs.Invoke[gcs.ListObjectAccessControlsResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("listing default object ACL: %w", err)
	}

	return list.Items, nil
}

// Get implements gcs.DefaultObjectACLClient.Get.
func (c *DefaultObjectACLClient) Get(ctx context.Context, req *gcs.GetDefaultObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting default object ACL entry: %w", err)
	}

	return acl, nil
}

// Insert implements gcs.DefaultObjectACLClient.Insert.
func (c *DefaultObjectACLClient) Insert(ctx context.Context, req *gcs.InsertDefaultObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("adding default object ACL entry: %w", err)
	}

	return acl, nil
}

// Update implements gcs.DefaultObjectACLClient.Update.
func (c *DefaultObjectACLClient) Update(ctx context.Context, req *gcs.UpdateDefaultObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating default object ACL entry: %w", err)
	}

	return acl, nil
}

// Patch implements gcs.DefaultObjectACLClient.Patch.
func (c *DefaultObjectACLClient) Patch(ctx context.Context, req *gcs.PatchDefaultObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("patching default object ACL entry: %w", err)
	}

	return acl, nil
}

// Delete implements gcs.DefaultObjectACLClient.Delete.
func (c *DefaultObjectACLClient) Delete(ctx context.Context, req *gcs.DeleteDefaultObjectACLRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("removing default object ACL entry: %w", err)
	}

	return nil
}

// ObjectACLClient implements gcs.ObjectACLClient.
type ObjectACLClient struct {
	httpClient *http.Client
}

// NewObjectACLClient creates a new object ACL client.
func NewObjectACLClient(httpClient *http.Client) *ObjectACLClient {
	return &ObjectACLClient{
		httpClient: httpClient,
	}
}

// List implements gcs.ObjectACLClient.List.
func (c *ObjectACLClient) List(ctx context.Context, req *gcs.ListObjectACLRequest) ([]gcs.ObjectAccessControl, error) {
	list, err := gcs.Invoke[gcs.ListObjectAccessControlsResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("listing object ACL: %w", err)
	}

	return list.Items, nil
}

// Get implements gcs.ObjectACLClient.Get.
func (c *ObjectACLClient) Get(ctx context.Context, req *gcs.GetObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting object ACL entry: %w", err)
	}

	return acl, nil
}

// Insert implements gcs.ObjectACLClient.Insert.
func (c *ObjectACLClient) Insert(ctx context.Context, req *gcs.InsertObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("adding object ACL entry: %w", err)
	}

	return acl, nil
}

// Update implements gcs.ObjectACLClient.Update.
func (c *ObjectACLClient) Update(ctx context.Context, req *gcs.UpdateObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating object ACL entry: %w", err)
	}

	return acl, nil
}

// Patch implements gcs.ObjectACLClient.Patch.
func (c *ObjectACLClient) Patch(ctx context.Context, req *gcs.PatchObjectACLRequest) (*gcs.ObjectAccessControl, error) {
	acl, err := gcs.Invoke[gcs.ObjectAccessControl](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("patching object ACL entry: %w", err)
	}

	return acl, nil
}

// Delete implements gcs.ObjectACLClient.Delete.
func (c *ObjectACLClient) Delete(ctx context.Context, req *gcs.DeleteObjectACLRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("removing object ACL entry: %w", err)
	}

	return nil
}
