package gcs

import "fmt"

// Projection controls how much of a resource is returned.
type Projection int

const (
	ProjectionUnspecified Projection = iota
	ProjectionNoACL
	ProjectionFull
)

var projectionValues = map[Projection]string{
	ProjectionNoACL: "noAcl",
	ProjectionFull:  "full",
}

// QueryValue implements Enum.
func (p Projection) QueryValue() string { return projectionValues[p] }

func (p Projection) String() string { return enumString(p.QueryValue()) }

// PredefinedBucketACL is a canned ACL applied to a bucket.
type PredefinedBucketACL int

const (
	PredefinedBucketACLUnspecified PredefinedBucketACL = iota
	PredefinedBucketACLAuthenticatedRead
	PredefinedBucketACLPrivate
	PredefinedBucketACLProjectPrivate
	PredefinedBucketACLPublicRead
	PredefinedBucketACLPublicReadWrite
)

var predefinedBucketACLValues = map[PredefinedBucketACL]string{
	PredefinedBucketACLAuthenticatedRead: "authenticatedRead",
	PredefinedBucketACLPrivate:           "private",
	PredefinedBucketACLProjectPrivate:    "projectPrivate",
	PredefinedBucketACLPublicRead:        "publicRead",
	PredefinedBucketACLPublicReadWrite:   "publicReadWrite",
}

// QueryValue implements Enum.
func (a PredefinedBucketACL) QueryValue() string { return predefinedBucketACLValues[a] }

func (a PredefinedBucketACL) String() string { return enumString(a.QueryValue()) }

// PredefinedObjectACL is a canned ACL applied to an object.
type PredefinedObjectACL int

const (
	PredefinedObjectACLUnspecified PredefinedObjectACL = iota
	PredefinedObjectACLAuthenticatedRead
	PredefinedObjectACLBucketOwnerFullControl
	PredefinedObjectACLBucketOwnerRead
	PredefinedObjectACLPrivate
	PredefinedObjectACLProjectPrivate
	PredefinedObjectACLPublicRead
)

var predefinedObjectACLValues = map[PredefinedObjectACL]string{
	PredefinedObjectACLAuthenticatedRead:      "authenticatedRead",
	PredefinedObjectACLBucketOwnerFullControl: "bucketOwnerFullControl",
	PredefinedObjectACLBucketOwnerRead:        "bucketOwnerRead",
	PredefinedObjectACLPrivate:                "private",
	PredefinedObjectACLProjectPrivate:         "projectPrivate",
	PredefinedObjectACLPublicRead:             "publicRead",
}

// QueryValue implements Enum.
func (a PredefinedObjectACL) QueryValue() string { return predefinedObjectACLValues[a] }

func (a PredefinedObjectACL) String() string { return enumString(a.QueryValue()) }

func enumString(v string) string {
	if v == "" {
		return "unspecified"
	}

	return v
}

// ParseProjection maps a wire value back to a Projection.
func ParseProjection(s string) (Projection, error) {
	return parseEnum(s, projectionValues)
}

// ParsePredefinedBucketACL maps a wire value back to a PredefinedBucketACL.
func ParsePredefinedBucketACL(s string) (PredefinedBucketACL, error) {
	return parseEnum(s, predefinedBucketACLValues)
}

// ParsePredefinedObjectACL maps a wire value back to a PredefinedObjectACL.
func ParsePredefinedObjectACL(s string) (PredefinedObjectACL, error) {
	return parseEnum(s, predefinedObjectACLValues)
}

func parseEnum[E comparable](s string, table map[E]string) (E, error) {
	var zero E

	if s == "" {
		return zero, nil
	}

	for variant, value := range table {
		if value == s {
			return variant, nil
		}
	}

	return zero, fmt.Errorf("%w: %q", ErrUnknownEnumValue, s)
}
