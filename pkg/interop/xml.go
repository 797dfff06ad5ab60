// Package interop reaches the S3 compatible XML API of Cloud Storage with an
// HMAC key, for tools that only speak S3.
package interop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/logging"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// Static errors for err113 compliance.
var (
	ErrNoSecret      = errors.New("HMAC key has no secret; secrets are only returned on creation")
	ErrNoAccessID    = errors.New("HMAC key has no access id")
	ErrInactiveKey   = errors.New("HMAC key is not active")
	ErrInvalidExpiry = errors.New("presign expiry must be positive")
)

// XMLConfig selects the endpoint and key of an XMLClient.
type XMLConfig struct {
	// Endpoint defaults to https://storage.googleapis.com.
	Endpoint  string
	AccessID  string
	Secret    string
	UserAgent string
}

// XMLClient talks to the XML API with SigV4 signatures made from an HMAC key.
type XMLClient struct {
	client  *s3.Client
	presign *s3.PresignClient
}

// ObjectSummary is one entry of an XML API listing.
type ObjectSummary struct {
	Key          string    `json:"key"          yaml:"key"`
	Size         int64     `json:"size"         yaml:"size"`
	ETag         string    `json:"etag"         yaml:"etag"`
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`
}

// NewXMLClient creates a client from cfg.
func NewXMLClient(cfg XMLConfig) (*XMLClient, error) {
	if cfg.AccessID == "" {
		return nil, ErrNoAccessID
	}

	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = constants.XMLAPIEndpoint
	}

	opts := s3.Options{
		Region:       constants.XMLAPIRegion,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.Secret, ""),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Logger:       logging.Nop{},
	}

	if cfg.UserAgent != "" {
		opts.AppID = cfg.UserAgent
	}

	client := s3.New(opts)

	return &XMLClient{
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// NewXMLClientFromKey creates a client from a freshly created HMAC key.
func NewXMLClientFromKey(key *gcs.HMACKey, endpoint string) (*XMLClient, error) {
	if key == nil || key.Metadata == nil {
		return nil, ErrNoAccessID
	}

	if key.Metadata.State != "" && key.Metadata.State != gcs.HMACKeyStateActive {
		return nil, fmt.Errorf("%w: %s", ErrInactiveKey, key.Metadata.State)
	}

	return NewXMLClient(XMLConfig{
		Endpoint: endpoint,
		AccessID: key.Metadata.AccessID,
		Secret:   key.Secret,
	})
}

// ListKeys lists the objects of bucket under prefix, following continuation
// tokens until the listing is complete.
func (c *XMLClient) ListKeys(ctx context.Context, bucket, prefix string) ([]ObjectSummary, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}

	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var out []ObjectSummary

	paginator := s3.NewListObjectsV2Paginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects over XML API: %w", err)
		}

		for _, obj := range page.Contents {
			out = append(out, ObjectSummary{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				ETag:         aws.ToString(obj.ETag),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return out, nil
}

// PresignGet returns a V4 signed URL that allows anyone holding it to
// download bucket/key until expiry passes.
func (c *XMLClient) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		return "", ErrInvalidExpiry
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presigning %s/%s: %w", bucket, key, err)
	}

	return req.URL, nil
}
