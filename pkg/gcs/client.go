package gcs

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

// BucketsClient manages buckets.
type BucketsClient interface {
	List(ctx context.Context, req *ListBucketsRequest) *Iterator[Bucket]
	Insert(ctx context.Context, req *InsertBucketRequest) (*Bucket, error)
	Get(ctx context.Context, req *GetBucketRequest) (*Bucket, error)
	Update(ctx context.Context, req *UpdateBucketRequest) (*Bucket, error)
	Patch(ctx context.Context, req *PatchBucketRequest) (*Bucket, error)
	Delete(ctx context.Context, req *DeleteBucketRequest) error
}

// ObjectsClient manages objects and their content.
type ObjectsClient interface {
	List(ctx context.Context, req *ListObjectsRequest) *Iterator[Object]
	Get(ctx context.Context, req *GetObjectRequest) (*Object, error)
	Download(ctx context.Context, req *DownloadObjectRequest) ([]byte, error)
	Insert(ctx context.Context, req *InsertObjectRequest) (*Object, error)
	Update(ctx context.Context, req *UpdateObjectRequest) (*Object, error)
	Patch(ctx context.Context, req *PatchObjectRequest) (*Object, error)
	Delete(ctx context.Context, req *DeleteObjectRequest) error
	Compose(ctx context.Context, req *ComposeObjectRequest) (*Object, error)
	Copy(ctx context.Context, req *CopyObjectRequest) (*Object, error)
	Rewrite(ctx context.Context, req *RewriteObjectRequest) (*RewriteResponse, error)
	RewriteUntilDone(ctx context.Context, req *RewriteObjectRequest) (*Object, error)
}

// BucketACLClient manages the access control list of buckets.
type BucketACLClient interface {
	List(ctx context.Context, req *ListBucketACLRequest) ([]BucketAccessControl, error)
	Get(ctx context.Context, req *GetBucketACLRequest) (*BucketAccessControl, error)
	Insert(ctx context.Context, req *InsertBucketACLRequest) (*BucketAccessControl, error)
	Update(ctx context.Context, req *UpdateBucketACLRequest) (*BucketAccessControl, error)
	Patch(ctx context.Context, req *PatchBucketACLRequest) (*BucketAccessControl, error)
	Delete(ctx context.Context, req *DeleteBucketACLRequest) error
}

// DefaultObjectACLClient manages the ACL given to new objects of a bucket.
type DefaultObjectACLClient interface {
	List(ctx context.Context, req *ListDefaultObjectACLRequest) ([]ObjectAccessControl, error)
	Get(ctx context.Context, req *GetDefaultObjectACLRequest) (*ObjectAccessControl, error)
	Insert(ctx context.Context, req *InsertDefaultObjectACLRequest) (*ObjectAccessControl, error)
	Update(ctx context.Context, req *UpdateDefaultObjectACLRequest) (*ObjectAccessControl, error)
	Patch(ctx context.Context, req *PatchDefaultObjectACLRequest) (*ObjectAccessControl, error)
	Delete(ctx context.Context, req *DeleteDefaultObjectACLRequest) error
}

// ObjectACLClient manages the access control list of objects.
type ObjectACLClient interface {
	List(ctx context.Context, req *ListObjectACLRequest) ([]ObjectAccessControl, error)
	Get(ctx context.Context, req *GetObjectACLRequest) (*ObjectAccessControl, error)
	Insert(ctx context.Context, req *InsertObjectACLRequest) (*ObjectAccessControl, error)
	Update(ctx context.Context, req *UpdateObjectACLRequest) (*ObjectAccessControl, error)
	Patch(ctx context.Context, req *PatchObjectACLRequest) (*ObjectAccessControl, error)
	Delete(ctx context.Context, req *DeleteObjectACLRequest) error
}

// HMACKeysClient manages HMAC keys for the XML API.
type HMACKeysClient interface {
	Create(ctx context.Context, req *CreateHMACKeyRequest) (*HMACKey, error)
	List(ctx context.Context, req *ListHMACKeysRequest) *Iterator[HMACKeyMetadata]
	Get(ctx context.Context, req *GetHMACKeyRequest) (*HMACKeyMetadata, error)
	Update(ctx context.Context, req *UpdateHMACKeyRequest) (*HMACKeyMetadata, error)
	Delete(ctx context.Context, req *DeleteHMACKeyRequest) error
}

// NotificationsClient manages Pub/Sub notification configs.
type NotificationsClient interface {
	Insert(ctx context.Context, req *InsertNotificationRequest) (*Notification, error)
	List(ctx context.Context, req *ListNotificationsRequest) ([]Notification, error)
	Get(ctx context.Context, req *GetNotificationRequest) (*Notification, error)
	Delete(ctx context.Context, req *DeleteNotificationRequest) error
}

// IAMClient manages bucket IAM policies.
type IAMClient interface {
	GetPolicy(ctx context.Context, req *GetIAMPolicyRequest) (*Policy, error)
	SetPolicy(ctx context.Context, req *SetIAMPolicyRequest) (*Policy, error)
	TestPermissions(ctx context.Context, req *TestIAMPermissionsRequest) ([]string, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Buckets() BucketsClient
	Objects() ObjectsClient
	BucketACLs() BucketACLClient
	DefaultObjectACLs() DefaultObjectACLClient
	ObjectACLs() ObjectACLClient
	HMACKeys() HMACKeysClient
	Notifications() NotificationsClient
	IAM() IAMClient
}

// Client is the full API client.
type Client interface {
	ResourceClients

	// Dispatcher sends requests defined outside this package.
	Dispatcher() Dispatcher
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a gcs.Client.
//
// # Authentication precedence
//
// The header provider is chosen by gcsclient.New in this order:
//  1. HeaderProvider: used as is.
//  2. AccessToken: sent as a static Bearer token for every scope.
//  3. TokenSource: tokens are taken from it and reused until they expire.
//  4. CredentialsJSON, then CredentialsFile: a service account key or an
//     authorized user file, as written by gcloud.
//  5. Nothing: requests are sent without authentication, which works for
//     public buckets only.
//
// # Retries
//
// Each call performs exactly one HTTP exchange unless RetryMax is set. Retries
// use the backoff of go-retryablehttp between RetryWaitMin and RetryWaitMax.
type Config struct {
	// BaseURL is the JSON API root. Defaults to
	// https://storage.googleapis.com/storage/v1/. A trailing slash is added
	// when missing. Uploads go to the same host with /upload prefixed to the
	// path.
	BaseURL string

	// Authentication options (provide at most one)
	HeaderProvider  HeaderProvider
	AccessToken     string
	TokenSource     oauth2.TokenSource
	CredentialsJSON []byte
	CredentialsFile string

	// HTTPClient is the transport. Defaults to a client with HTTPTimeout.
	HTTPClient *http.Client
	// HTTPTimeout applies when HTTPClient is nil.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	// Interceptors run around every exchange.
	Interceptors *InterceptorChain
	// MetricsRegisterer, when set, receives request metrics.
	MetricsRegisterer prometheus.Registerer
	// TracerProvider, when set, is used to trace every exchange.
	TracerProvider trace.TracerProvider
}
