package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// Static errors for err113 compliance.
var (
	ErrRewriteNoToken = errors.New("rewrite not done but no rewrite token returned")
)

// ObjectsClient implements gcs.ObjectsClient.
type ObjectsClient struct {
	httpClient     *http.Client
	rewriteTimeout time.Duration
}

// NewObjectsClient creates a new objects client.
func NewObjectsClient(httpClient *http.Client) *ObjectsClient {
	return &ObjectsClient{
		httpClient:     httpClient,
		rewriteTimeout: constants.DefaultRewriteTimeout,
	}
}

// List implements gcs.ObjectsClient.List.
func (c *ObjectsClient) List(ctx context.Context, req *gcs.ListObjectsRequest) *gcs.Iterator[gcs.Object] {
	return gcs.Paginate[gcs.ListObjectsResponse, gcs.Object](ctx, c.httpClient, req)
}

// Get implements gcs.ObjectsClient.Get.
func (c *ObjectsClient) Get(ctx context.Context, req *gcs.GetObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}

	return object, nil
}

// Download implements gcs.ObjectsClient.Download.
func (c *ObjectsClient) Download(ctx context.Context, req *gcs.DownloadObjectRequest) ([]byte, error) {
	resp, err := c.httpClient.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("downloading object: %w", err)
	}

	return resp.Body, nil
}

// Insert implements gcs.ObjectsClient.Insert.
func (c *ObjectsClient) Insert(ctx context.Context, req *gcs.InsertObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("uploading object: %w", err)
	}

	return object, nil
}

// Update implements gcs.ObjectsClient.Update.
func (c *ObjectsClient) Update(ctx context.Context, req *gcs.UpdateObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("updating object: %w", err)
	}

	return object, nil
}

// Patch implements gcs.ObjectsClient.Patch.
func (c *ObjectsClient) Patch(ctx context.Context, req *gcs.PatchObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("patching object: %w", err)
	}

	return object, nil
}

// Delete implements gcs.ObjectsClient.Delete.
func (c *ObjectsClient) Delete(ctx context.Context, req *gcs.DeleteObjectRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}

	return nil
}

// Compose implements gcs.ObjectsClient.Compose.
func (c *ObjectsClient) Compose(ctx context.Context, req *gcs.ComposeObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("composing object: %w", err)
	}

	return object, nil
}

// Copy implements gcs.ObjectsClient.Copy.
func (c *ObjectsClient) Copy(ctx context.Context, req *gcs.CopyObjectRequest) (*gcs.Object, error) {
	object, err := gcs.Invoke[gcs.Object](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("copying object: %w", err)
	}

	return object, nil
}

// Rewrite implements gcs.ObjectsClient.Rewrite.
func (c *ObjectsClient) Rewrite(ctx context.Context, req *gcs.RewriteObjectRequest) (*gcs.RewriteResponse, error) {
	resp, err := gcs.Invoke[gcs.RewriteResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("rewriting object: %w", err)
	}

	return resp, nil
}

// RewriteUntilDone implements gcs.ObjectsClient.RewriteUntilDone.
// It repeats the rewrite with the returned token until the service reports
// done, and gives up after the rewrite timeout.
func (c *ObjectsClient) RewriteUntilDone(ctx context.Context, req *gcs.RewriteObjectRequest) (*gcs.Object, error) {
	rewriteCtx, cancel := context.WithTimeout(ctx, c.rewriteTimeout)
	defer cancel()

	template := req.Clone()
	current := req

	for {
		resp, err := c.Rewrite(rewriteCtx, current)
		if err != nil {
			if rewriteCtx.Err() != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("%w: %w", constants.ErrRewriteTimeout, err)
			}

			return nil, err
		}

		if resp.Done {
			if resp.Resource == nil {
				return &gcs.Object{}, nil
			}

			return resp.Resource, nil
		}

		if resp.RewriteToken == "" {
			return nil, ErrRewriteNoToken
		}

		current = template.Clone()
		current.RewriteToken = resp.RewriteToken
	}
}
