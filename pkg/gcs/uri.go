package gcs

import (
	"strings"
)

const uriPrefix = "gs://"

// URI is a parsed short-form resource URI, gs://bucket[/object].
type URI struct {
	Bucket string
	Object string
}

// ParseURI splits gs://bucket/object. Everything after the first slash that
// follows the bucket is the object name, including further slashes.
func ParseURI(s string) (URI, error) {
	rest, ok := strings.CutPrefix(s, uriPrefix)
	if !ok {
		return URI{}, &URIError{URI: s, Reason: "scheme must be gs"}
	}

	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return URI{}, &URIError{URI: s, Reason: "missing bucket name"}
	}

	return URI{Bucket: bucket, Object: object}, nil
}

func (u URI) String() string {
	if u.Object == "" {
		return uriPrefix + u.Bucket
	}

	return uriPrefix + u.Bucket + "/" + u.Object
}

func parseObjectURI(s string) (URI, error) {
	u, err := ParseURI(s)
	if err != nil {
		return URI{}, err
	}

	if u.Object == "" {
		return URI{}, &URIError{URI: s, Reason: "missing object name"}
	}

	return u, nil
}

// NewGetBucketRequestFromURI fetches the bucket of gs://bucket. An object part
// is ignored.
func NewGetBucketRequestFromURI(s string) (*GetBucketRequest, error) {
	u, err := ParseURI(s)
	if err != nil {
		return nil, err
	}

	return NewGetBucketRequest(u.Bucket), nil
}

// NewDeleteBucketRequestFromURI deletes the bucket of gs://bucket.
func NewDeleteBucketRequestFromURI(s string) (*DeleteBucketRequest, error) {
	u, err := ParseURI(s)
	if err != nil {
		return nil, err
	}

	return NewDeleteBucketRequest(u.Bucket), nil
}

// NewListObjectsRequestFromURI lists gs://bucket/prefix. The object part
// becomes the listing prefix.
func NewListObjectsRequestFromURI(s string) (*ListObjectsRequest, error) {
	u, err := ParseURI(s)
	if err != nil {
		return nil, err
	}

	r := NewListObjectsRequest(u.Bucket)
	r.Prefix = u.Object

	return r, nil
}

// NewGetObjectRequestFromURI fetches the metadata of gs://bucket/object.
func NewGetObjectRequestFromURI(s string) (*GetObjectRequest, error) {
	u, err := parseObjectURI(s)
	if err != nil {
		return nil, err
	}

	return NewGetObjectRequest(u.Bucket, u.Object), nil
}

// NewDownloadObjectRequestFromURI downloads gs://bucket/object.
func NewDownloadObjectRequestFromURI(s string) (*DownloadObjectRequest, error) {
	u, err := parseObjectURI(s)
	if err != nil {
		return nil, err
	}

	return NewDownloadObjectRequest(u.Bucket, u.Object), nil
}

// NewDeleteObjectRequestFromURI deletes gs://bucket/object.
func NewDeleteObjectRequestFromURI(s string) (*DeleteObjectRequest, error) {
	u, err := parseObjectURI(s)
	if err != nil {
		return nil, err
	}

	return NewDeleteObjectRequest(u.Bucket, u.Object), nil
}
