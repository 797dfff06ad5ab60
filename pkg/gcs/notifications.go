package gcs

import (
	"net/http"
	"net/url"
)

// Notification payload formats.
const (
	PayloadFormatJSON = "JSON_API_V1"
	PayloadFormatNone = "NONE"
)

func notificationsURL(base *url.URL, bucket string, id ...string) (*url.URL, error) {
	return BucketURL(base, bucket, append([]string{"notificationConfigs"}, id...)...)
}

// InsertNotificationRequest creates a Pub/Sub notification config on a bucket.
type InsertNotificationRequest struct {
	call[Notification]
	CommonParams

	Bucket       string
	UserProject  string
	Notification *Notification
}

// NewInsertNotificationRequest publishes changes of bucket to topic.
func NewInsertNotificationRequest(bucket string, n *Notification) *InsertNotificationRequest {
	return &InsertNotificationRequest{Bucket: bucket, Notification: n}
}

func (*InsertNotificationRequest) Method() string { return http.MethodPost }

func (r *InsertNotificationRequest) URL(base *url.URL) (*url.URL, error) {
	return notificationsURL(base, r.Bucket)
}

func (r *InsertNotificationRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Notification)
}

// ListNotificationsRequest lists the notification configs of a bucket.
type ListNotificationsRequest struct {
	call[ListNotificationsResponse]
	CommonParams

	Bucket      string
	UserProject string
}

func (*ListNotificationsRequest) Method() string { return http.MethodGet }

func (r *ListNotificationsRequest) URL(base *url.URL) (*url.URL, error) {
	return notificationsURL(base, r.Bucket)
}

func (r *ListNotificationsRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// GetNotificationRequest fetches one notification config.
type GetNotificationRequest struct {
	call[Notification]
	CommonParams

	Bucket       string
	Notification string
	UserProject  string
}

func (*GetNotificationRequest) Method() string { return http.MethodGet }

func (r *GetNotificationRequest) URL(base *url.URL) (*url.URL, error) {
	return notificationsURL(base, r.Bucket, r.Notification)
}

func (r *GetNotificationRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// DeleteNotificationRequest deletes one notification config.
type DeleteNotificationRequest struct {
	call[Empty]
	CommonParams

	Bucket       string
	Notification string
	UserProject  string
}

func (*DeleteNotificationRequest) Method() string { return http.MethodDelete }

func (r *DeleteNotificationRequest) URL(base *url.URL) (*url.URL, error) {
	return notificationsURL(base, r.Bucket, r.Notification)
}

func (r *DeleteNotificationRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}
