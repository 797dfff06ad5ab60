package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// NotificationsClient implements gcs.NotificationsClient.
type NotificationsClient struct {
	httpClient *http.Client
}

// NewNotificationsClient creates a new notifications client.
func NewNotificationsClient(httpClient *http.Client) *NotificationsClient {
	return &NotificationsClient{
		httpClient: httpClient,
	}
}

// Insert implements gcs.NotificationsClient.Insert.
func (c *NotificationsClient) Insert(ctx context.Context, req *gcs.InsertNotificationRequest) (*gcs.Notification, error) {
	notification, err := gcs.Invoke[gcs.Notification](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	return notification, nil
}

// List implements gcs.NotificationsClient.List.
func (c *NotificationsClient) List(ctx context.Context, req *gcs.ListNotificationsRequest) ([]gcs.Notification, error) {
	list, err := gcs.Invoke[gcs.ListNotificationsResponse](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return list.Items, nil
}

// Get implements gcs.NotificationsClient.Get.
func (c *NotificationsClient) Get(ctx context.Context, req *gcs.GetNotificationRequest) (*gcs.Notification, error) {
	notification, err := gcs.Invoke[gcs.Notification](ctx, c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return notification, nil
}

// Delete implements gcs.NotificationsClient.Delete.
func (c *NotificationsClient) Delete(ctx context.Context, req *gcs.DeleteNotificationRequest) error {
	_, err := gcs.Invoke[gcs.Empty](ctx, c.httpClient, req)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}

	return nil
}
