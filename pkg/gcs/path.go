package gcs

import (
	"net/url"
	"strings"
)

// EscapeClass selects which bytes are percent-encoded when a name is placed in a
// URL path.
type EscapeClass int

const (
	// EscapeNormal encodes the reserved delimiters but leaves '/' alone, so a
	// name containing slashes spans several path segments.
	EscapeNormal EscapeClass = iota
	// EscapeSlash additionally encodes '/', keeping the name a single opaque
	// segment.
	EscapeSlash
)

const upperhex = "0123456789ABCDEF"

func shouldEscape(c byte, class EscapeClass) bool {
	if c < 0x20 || c >= 0x7f {
		return true
	}

	switch c {
	case '/':
		return class == EscapeSlash
	case '!', '#', '$', '&', '\'', '(', ')', '*', '+', ',', ':', ';', '=', '?', '@', '[', ']':
		return true
	case ' ', '"', '%', '<', '>', '\\', '^', '`', '{', '|', '}':
		return true
	}

	return false
}

// Escape percent-encodes s under the given class.
func Escape(s string, class EscapeClass) string {
	hex := 0

	for i := range len(s) {
		if shouldEscape(s[i], class) {
			hex++
		}
	}

	if hex == 0 {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + 2*hex)

	for i := range len(s) {
		c := s[i]
		if shouldEscape(c, class) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])

			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// AppendSegment returns a copy of base with segment escaped and appended as
// exactly one new path segment. Segments already present in base are kept
// verbatim. An empty segment is rejected rather than collapsed.
func AppendSegment(base *url.URL, segment string, class EscapeClass) (*url.URL, error) {
	if base == nil {
		return nil, &InvalidResourceURLError{Reason: "no base url"}
	}

	if segment == "" {
		return nil, &InvalidResourceURLError{URL: base.String(), Reason: "empty path segment"}
	}

	if base.Opaque != "" {
		return nil, &InvalidResourceURLError{URL: base.String(), Reason: "url cannot host path segments"}
	}

	escaped := base.EscapedPath()
	if !strings.HasSuffix(escaped, "/") {
		escaped += "/"
	}

	escaped += Escape(segment, class)

	path, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, &InvalidResourceURLError{URL: base.String(), Reason: err.Error()}
	}

	target := *base
	target.Path = path
	target.RawPath = escaped
	target.RawQuery = ""
	target.Fragment = ""

	return &target, nil
}

// AppendSegments appends each segment in order using the same class.
func AppendSegments(base *url.URL, class EscapeClass, segments ...string) (*url.URL, error) {
	if len(segments) == 0 {
		return nil, &InvalidResourceURLError{Reason: "no path segments"}
	}

	target := base

	for _, segment := range segments {
		next, err := AppendSegment(target, segment, class)
		if err != nil {
			return nil, err
		}

		target = next
	}

	return target, nil
}

// BucketURL returns {base}/b/{bucket} followed by segments.
func BucketURL(base *url.URL, bucket string, segments ...string) (*url.URL, error) {
	if bucket == "" {
		return nil, missingName(base, ErrBucketRequired)
	}

	return AppendSegments(base, EscapeNormal, append([]string{"b", bucket}, segments...)...)
}

// ObjectURL returns {base}/b/{bucket}/o/{object} with the object name escaped
// under class. Single-object calls pass EscapeSlash so a name stays one
// segment; EscapeNormal keeps its slashes literal.
func ObjectURL(base *url.URL, bucket, object string, class EscapeClass) (*url.URL, error) {
	objectsURL, err := BucketURL(base, bucket, "o")
	if err != nil {
		return nil, err
	}

	if object == "" {
		return nil, missingName(base, ErrObjectRequired)
	}

	return AppendSegment(objectsURL, object, class)
}

// ProjectURL returns {base}/projects/{project} followed by segments.
func ProjectURL(base *url.URL, project string, segments ...string) (*url.URL, error) {
	if project == "" {
		return nil, missingName(base, ErrProjectRequired)
	}

	return AppendSegments(base, EscapeNormal, append([]string{"projects", project}, segments...)...)
}

func missingName(base *url.URL, err error) error {
	e := &InvalidResourceURLError{Reason: err.Error(), Err: err}
	if base != nil {
		e.URL = base.String()
	}

	return e
}

// objectToObjectURL builds the path shared by copy and rewrite. The source name
// is a single opaque segment; the destination keeps its slashes literal.
func objectToObjectURL(base *url.URL, srcBucket, srcObject, action, dstBucket, dstObject string) (*url.URL, error) {
	source, err := ObjectURL(base, srcBucket, srcObject, EscapeSlash)
	if err != nil {
		return nil, err
	}

	switch {
	case dstBucket == "":
		return nil, missingName(base, ErrBucketRequired)
	case dstObject == "":
		return nil, missingName(base, ErrObjectRequired)
	}

	return AppendSegments(source, EscapeNormal, action, "b", dstBucket, "o", dstObject)
}

// uploadBase derives the media upload base from an API base URL by prefixing
// its path with /upload.
func uploadBase(base *url.URL) (*url.URL, error) {
	if base == nil {
		return nil, &InvalidResourceURLError{Reason: "no base url"}
	}

	if base.Opaque != "" {
		return nil, &InvalidResourceURLError{URL: base.String(), Reason: "url cannot host path segments"}
	}

	upload := *base
	upload.Path = "/upload" + base.Path

	if base.RawPath != "" {
		upload.RawPath = "/upload" + base.RawPath
	}

	return &upload, nil
}
