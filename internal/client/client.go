package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fivetwenty-io/gcs-client/internal/auth"
	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/internal/http"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Client implements the gcs.Client interface.
type Client struct {
	httpClient *http.Client
	provider   gcs.HeaderProvider
	projectID  string
	metrics    *gcs.MetricsCollector

	// Resource clients
	buckets           gcs.BucketsClient
	objects           gcs.ObjectsClient
	bucketACLs        gcs.BucketACLClient
	defaultObjectACLs gcs.DefaultObjectACLClient
	objectACLs        gcs.ObjectACLClient
	hmacKeys          gcs.HMACKeysClient
	notifications     gcs.NotificationsClient
	iam               gcs.IAMClient
}

// createProvider picks the header provider from config. The second return is
// the project named by a credentials file, if any.
func createProvider(ctx context.Context, config *gcs.Config) (gcs.HeaderProvider, string, error) {
	switch {
	case config.HeaderProvider != nil:
		return config.HeaderProvider, "", nil
	case config.AccessToken != "":
		return auth.NewStaticToken(config.AccessToken), "", nil
	case config.TokenSource != nil:
		return auth.NewTokenSource(config.TokenSource), "", nil
	case len(config.CredentialsJSON) > 0:
		creds, err := auth.FromCredentialsJSON(ctx, config.CredentialsJSON)
		if err != nil {
			return nil, "", err
		}

		return creds.Provider, creds.ProjectID, nil
	case config.CredentialsFile != "":
		creds, err := auth.FromCredentialsFile(ctx, config.CredentialsFile)
		if err != nil {
			return nil, "", err
		}

		return creds.Provider, creds.ProjectID, nil
	default:
		return auth.NoAuth{}, "", nil
	}
}

// normalizeBaseURL applies the default root and ensures a trailing slash, so
// that relative segments resolve under it.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		return baseURL + "/"
	}

	return baseURL
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *gcs.Config, chain *gcs.InterceptorChain) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	} else if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if !chain.Empty() {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	if config.TracerProvider != nil {
		httpOpts = append(httpOpts, http.WithTracerProvider(config.TracerProvider))
	}

	return httpOpts
}

// interceptorChain copies the configured interceptors and appends the metrics
// interceptor, so the caller's chain is never modified.
func interceptorChain(config *gcs.Config, metrics *gcs.MetricsCollector) *gcs.InterceptorChain {
	chain := config.Interceptors.Clone()

	if metrics != nil {
		chain.AddResponseInterceptor(gcs.MetricsResponseInterceptor(metrics))
	}

	return chain
}

// New creates a new Cloud Storage client.
func New(ctx context.Context, config *gcs.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	provider, projectID, err := createProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating credentials: %w", err)
	}

	var metrics *gcs.MetricsCollector
	if config.MetricsRegisterer != nil {
		metrics, err = gcs.NewMetricsCollector(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}
	}

	httpOpts := createHTTPClientOptions(config, interceptorChain(config, metrics))

	httpClient, err := http.NewClient(normalizeBaseURL(config.BaseURL), provider, httpOpts...)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: httpClient,
		provider:   provider,
		projectID:  projectID,
		metrics:    metrics,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenSource creates a client that takes tokens from src.
func NewWithTokenSource(ctx context.Context, config *gcs.Config, src oauth2.TokenSource) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	cfg := *config
	cfg.HeaderProvider = auth.NewTokenSource(src)

	return New(ctx, &cfg)
}

func (c *Client) initializeResourceClients() {
	c.buckets = NewBucketsClient(c.httpClient)
	c.objects = NewObjectsClient(c.httpClient)
	c.bucketACLs = NewBucketACLClient(c.httpClient)
	c.defaultObjectACLs = NewDefaultObjectACLClient(c.httpClient)
	c.objectACLs = NewObjectACLClient(c.httpClient)
	c.hmacKeys = NewHMACKeysClient(c.httpClient)
	c.notifications = NewNotificationsClient(c.httpClient)
	c.iam = NewIAMClient(c.httpClient)
}

// HeaderProvider returns the credentials used by this client.
func (c *Client) HeaderProvider() gcs.HeaderProvider {
	return c.provider
}

// ProjectID returns the project named by the credentials file, or "".
func (c *Client) ProjectID() string {
	return c.projectID
}

// Metrics returns the collector registered with Config.MetricsRegisterer, or nil.
func (c *Client) Metrics() *gcs.MetricsCollector {
	return c.metrics
}

// Dispatcher implements gcs.Client.Dispatcher.
func (c *Client) Dispatcher() gcs.Dispatcher {
	return c.httpClient
}

// Resource client accessors

// Buckets implements gcs.Client.Buckets.
func (c *Client) Buckets() gcs.BucketsClient {
	return c.buckets
}

// Objects implements gcs.Client.Objects.
func (c *Client) Objects() gcs.ObjectsClient {
	return c.objects
}

// BucketACLs implements gcs.Client.BucketACLs.
func (c *Client) BucketACLs() gcs.BucketACLClient {
	return c.bucketACLs
}

// DefaultObjectACLs implements gcs.Client.DefaultObjectACLs.
func (c *Client) DefaultObjectACLs() gcs.DefaultObjectACLClient {
	return c.defaultObjectACLs
}

// ObjectACLs implements gcs.Client.ObjectACLs.
func (c *Client) ObjectACLs() gcs.ObjectACLClient {
	return c.objectACLs
}

// HMACKeys implements gcs.Client.HMACKeys.
func (c *Client) HMACKeys() gcs.HMACKeysClient {
	return c.hmacKeys
}

// Notifications implements gcs.Client.Notifications.
func (c *Client) Notifications() gcs.NotificationsClient {
	return c.notifications
}

// IAM implements gcs.Client.IAM.
func (c *Client) IAM() gcs.IAMClient {
	return c.iam
}
