package gcs

import (
	"net/http"
	"net/url"
	"slices"
)

// objectPreconditions are the generation guards shared by single-object calls.
type objectPreconditions struct {
	IfGenerationMatch        *int64
	IfGenerationNotMatch     *int64
	IfMetagenerationMatch    *int64
	IfMetagenerationNotMatch *int64
}

func (p *objectPreconditions) take(q *Query) {
	q.TakeOptional(ParamIfGenerationMatch, &p.IfGenerationMatch)
	q.TakeOptional(ParamIfGenerationNotMatch, &p.IfGenerationNotMatch)
	q.TakeOptional(ParamIfMetagenerationMatch, &p.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &p.IfMetagenerationNotMatch)
}

// sourcePreconditions guard the source object of a copy or rewrite.
type sourcePreconditions struct {
	IfSourceGenerationMatch        *int64
	IfSourceGenerationNotMatch     *int64
	IfSourceMetagenerationMatch    *int64
	IfSourceMetagenerationNotMatch *int64
}

func (p *sourcePreconditions) take(q *Query) {
	q.TakeOptional(ParamIfSourceGenerationMatch, &p.IfSourceGenerationMatch)
	q.TakeOptional(ParamIfSourceGenerationNotMatch, &p.IfSourceGenerationNotMatch)
	q.TakeOptional(ParamIfSourceMetagenerationMatch, &p.IfSourceMetagenerationMatch)
	q.TakeOptional(ParamIfSourceMetagenerationNotMatch, &p.IfSourceMetagenerationNotMatch)
}

// ListObjectsRequest lists the objects of a bucket.
type ListObjectsRequest struct {
	call[ListObjectsResponse]
	CommonParams

	Bucket                   string
	Delimiter                string
	IncludeTrailingDelimiter bool
	MaxResults               int64
	PageToken                string
	Prefix                   string
	Projection               Projection
	Versions                 bool
	UserProject              string
}

// NewListObjectsRequest lists the objects of bucket.
func NewListObjectsRequest(bucket string) *ListObjectsRequest {
	return &ListObjectsRequest{Bucket: bucket}
}

func (*ListObjectsRequest) Method() string { return http.MethodGet }

func (r *ListObjectsRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket, "o")
}

func (r *ListObjectsRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamDelimiter, &r.Delimiter)
	q.TakeBool(ParamIncludeTrailingDelimiter, &r.IncludeTrailingDelimiter)
	q.TakeInt64(ParamMaxResults, &r.MaxResults)
	q.TakeString(ParamPageToken, &r.PageToken)
	q.TakeString(ParamPrefix, &r.Prefix)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeBool(ParamVersions, &r.Versions)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// Page implements Pageable.
func (*ListObjectsRequest) Page(resp *ListObjectsResponse) ([]Object, string) {
	return resp.Items, resp.NextPageToken
}

// Clone implements Pageable.
func (r *ListObjectsRequest) Clone() Pageable[ListObjectsResponse, Object] {
	c := *r
	c.Fields = slices.Clone(r.Fields)

	return &c
}

// SetPageToken implements Pageable.
func (r *ListObjectsRequest) SetPageToken(token string) { r.PageToken = token }

// GetObjectRequest fetches object metadata.
type GetObjectRequest struct {
	call[Object]
	CommonParams
	objectPreconditions

	Bucket        string
	Object        string
	Generation    int64
	Projection    Projection
	UserProject   string
	EncryptionKey EncryptionKey
}

// NewGetObjectRequest fetches the metadata of bucket/object.
func NewGetObjectRequest(bucket, object string) *GetObjectRequest {
	return &GetObjectRequest{Bucket: bucket, Object: object}
}

func (*GetObjectRequest) Method() string { return http.MethodGet }

func (r *GetObjectRequest) Header() http.Header {
	return r.EncryptionKey.header(encryptionHeaderPrefix)
}

func (r *GetObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return ObjectURL(base, r.Bucket, r.Object, EscapeSlash)
}

func (r *GetObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	r.objectPreconditions.take(&q)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// DownloadObjectRequest fetches object content. It is not a Call: the
// response body is returned as raw bytes.
type DownloadObjectRequest struct {
	CommonParams
	objectPreconditions

	Bucket        string
	Object        string
	Generation    int64
	UserProject   string
	EncryptionKey EncryptionKey

	assembled bool
}

// NewDownloadObjectRequest downloads the content of bucket/object.
func NewDownloadObjectRequest(bucket, object string) *DownloadObjectRequest {
	return &DownloadObjectRequest{Bucket: bucket, Object: object}
}

func (*DownloadObjectRequest) Method() string { return http.MethodGet }

func (r *DownloadObjectRequest) Header() http.Header {
	return mergeHeaders(http.Header{"Accept": {"*/*"}}, r.EncryptionKey.header(encryptionHeaderPrefix))
}

func (r *DownloadObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return ObjectURL(base, r.Bucket, r.Object, EscapeSlash)
}

func (r *DownloadObjectRequest) Assemble() (Query, any) {
	var q Query

	if !r.assembled {
		q.Add(ParamAlt, "media")
		r.assembled = true
	}

	q.TakeInt64(ParamGeneration, &r.Generation)
	r.objectPreconditions.take(&q)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// InsertObjectRequest stores Data as a new object with a simple media upload.
type InsertObjectRequest struct {
	call[Object]
	CommonParams
	objectPreconditions

	Bucket        string
	Name          string
	ContentType   string
	Data          []byte
	KMSKeyName    string
	PredefinedACL PredefinedObjectACL
	Projection    Projection
	UserProject   string
	EncryptionKey EncryptionKey

	assembled bool
}

// NewInsertObjectRequest uploads data to bucket/name.
func NewInsertObjectRequest(bucket, name, contentType string, data []byte) *InsertObjectRequest {
	return &InsertObjectRequest{Bucket: bucket, Name: name, ContentType: contentType, Data: data}
}

func (*InsertObjectRequest) Method() string { return http.MethodPost }

func (r *InsertObjectRequest) Header() http.Header {
	return r.EncryptionKey.header(encryptionHeaderPrefix)
}

func (r *InsertObjectRequest) URL(base *url.URL) (*url.URL, error) {
	upload, err := uploadBase(base)
	if err != nil {
		return nil, err
	}

	return BucketURL(upload, r.Bucket, "o")
}

func (r *InsertObjectRequest) Assemble() (Query, any) {
	var (
		q    Query
		body any
	)

	if !r.assembled {
		contentType := r.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		data := r.Data
		if data == nil {
			data = []byte{}
		}

		body = &Media{ContentType: contentType, Data: data}
		q.Add(ParamUploadType, "media")

		r.Data = nil
		r.ContentType = ""
		r.assembled = true
	}

	q.TakeString(ParamName, &r.Name)
	r.objectPreconditions.take(&q)
	q.TakeString(ParamKMSKeyName, &r.KMSKeyName)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, body
}

// UpdateObjectRequest replaces the mutable metadata of an object.
type UpdateObjectRequest struct {
	call[Object]
	CommonParams
	objectPreconditions

	Bucket        string
	Object        string
	Generation    int64
	PredefinedACL PredefinedObjectACL
	Projection    Projection
	UserProject   string
	Metadata      *Object
}

// NewUpdateObjectRequestFrom builds a full replacement of o guarded by its
// current metageneration.
func NewUpdateObjectRequestFrom(o *Object) *UpdateObjectRequest {
	r := &UpdateObjectRequest{Bucket: o.Bucket, Object: o.Name, Metadata: o}
	if o.Metageneration != 0 {
		r.IfMetagenerationMatch = Int64(o.Metageneration)
	}

	return r
}

func (*UpdateObjectRequest) Method() string { return http.MethodPut }

func (r *UpdateObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return ObjectURL(base, r.Bucket, r.Object, EscapeSlash)
}

func (r *UpdateObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	r.objectPreconditions.take(&q)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Metadata)
}

// PatchObjectRequest merges the non-empty fields of Patch into an object.
type PatchObjectRequest struct {
	call[Object]
	CommonParams
	objectPreconditions

	Bucket        string
	Object        string
	Generation    int64
	PredefinedACL PredefinedObjectACL
	Projection    Projection
	UserProject   string
	Patch         *Object
}

// NewPatchObjectRequest merges patch into bucket/object.
func NewPatchObjectRequest(bucket, object string, patch *Object) *PatchObjectRequest {
	return &PatchObjectRequest{Bucket: bucket, Object: object, Patch: patch}
}

func (*PatchObjectRequest) Method() string { return http.MethodPatch }

func (r *PatchObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return ObjectURL(base, r.Bucket, r.Object, EscapeSlash)
}

func (r *PatchObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	r.objectPreconditions.take(&q)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Patch)
}

// DeleteObjectRequest deletes an object, or one generation of it.
type DeleteObjectRequest struct {
	call[Empty]
	CommonParams
	objectPreconditions

	Bucket      string
	Object      string
	Generation  int64
	UserProject string
}

// NewDeleteObjectRequest deletes bucket/object.
func NewDeleteObjectRequest(bucket, object string) *DeleteObjectRequest {
	return &DeleteObjectRequest{Bucket: bucket, Object: object}
}

func (*DeleteObjectRequest) Method() string { return http.MethodDelete }

func (r *DeleteObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return ObjectURL(base, r.Bucket, r.Object, EscapeSlash)
}

func (r *DeleteObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	r.objectPreconditions.take(&q)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

type composeBody struct {
	Kind          string          `json:"kind"`
	SourceObjects []ComposeSource `json:"sourceObjects"`
	Destination   *Object         `json:"destination,omitempty"`
}

// ComposeObjectRequest concatenates objects of one bucket into a destination
// object of the same bucket.
type ComposeObjectRequest struct {
	call[Object]
	CommonParams

	DestinationBucket        string
	DestinationObject        string
	SourceObjects            []ComposeSource
	Destination              *Object
	DestinationPredefinedACL PredefinedObjectACL
	IfGenerationMatch        *int64
	IfMetagenerationMatch    *int64
	KMSKeyName               string
	UserProject              string
	EncryptionKey            EncryptionKey
}

// NewComposeObjectRequest composes sources into bucket/object.
func NewComposeObjectRequest(bucket, object string, sources ...string) *ComposeObjectRequest {
	r := &ComposeObjectRequest{DestinationBucket: bucket, DestinationObject: object}
	for _, name := range sources {
		r.SourceObjects = append(r.SourceObjects, ComposeSource{Name: name})
	}

	return r
}

func (*ComposeObjectRequest) Method() string { return http.MethodPost }

func (r *ComposeObjectRequest) Header() http.Header {
	return r.EncryptionKey.header(encryptionHeaderPrefix)
}

func (r *ComposeObjectRequest) URL(base *url.URL) (*url.URL, error) {
	u, err := ObjectURL(base, r.DestinationBucket, r.DestinationObject, EscapeSlash)
	if err != nil {
		return nil, err
	}

	return AppendSegment(u, "compose", EscapeNormal)
}

func (r *ComposeObjectRequest) Assemble() (Query, any) {
	var (
		q    Query
		body any
	)

	TakeEnum(&q, ParamDestinationPredefinedACL, &r.DestinationPredefinedACL)
	q.TakeOptional(ParamIfGenerationMatch, &r.IfGenerationMatch)
	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeString(ParamKMSKeyName, &r.KMSKeyName)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	if r.SourceObjects != nil || r.Destination != nil {
		body = &composeBody{
			Kind:          "storage#composeRequest",
			SourceObjects: r.SourceObjects,
			Destination:   r.Destination,
		}
		r.SourceObjects = nil
		r.Destination = nil
	}

	return q, body
}

// CopyObjectRequest copies an object, optionally overriding its metadata.
type CopyObjectRequest struct {
	call[Object]
	CommonParams
	objectPreconditions
	sourcePreconditions

	SourceBucket             string
	SourceObject             string
	DestinationBucket        string
	DestinationObject        string
	DestinationKMSKeyName    string
	DestinationPredefinedACL PredefinedObjectACL
	Projection               Projection
	SourceGeneration         int64
	UserProject              string
	Metadata                 *Object
	SourceEncryptionKey      EncryptionKey
	EncryptionKey            EncryptionKey
}

// NewCopyObjectRequest copies srcBucket/srcObject to dstBucket/dstObject.
func NewCopyObjectRequest(srcBucket, srcObject, dstBucket, dstObject string) *CopyObjectRequest {
	return &CopyObjectRequest{
		SourceBucket:      srcBucket,
		SourceObject:      srcObject,
		DestinationBucket: dstBucket,
		DestinationObject: dstObject,
	}
}

func (*CopyObjectRequest) Method() string { return http.MethodPost }

func (r *CopyObjectRequest) Header() http.Header {
	return mergeHeaders(
		r.SourceEncryptionKey.header(copySourceEncryptionHeaderPrefix),
		r.EncryptionKey.header(encryptionHeaderPrefix),
	)
}

func (r *CopyObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return objectToObjectURL(base, r.SourceBucket, r.SourceObject, "copyTo", r.DestinationBucket, r.DestinationObject)
}

func (r *CopyObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamDestinationKMSKeyName, &r.DestinationKMSKeyName)
	TakeEnum(&q, ParamDestinationPredefinedACL, &r.DestinationPredefinedACL)
	r.objectPreconditions.take(&q)
	r.sourcePreconditions.take(&q)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeInt64(ParamSourceGeneration, &r.SourceGeneration)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Metadata)
}

// RewriteObjectRequest copies an object in one or more calls. Each call returns
// a RewriteResponse; while Done is false, the call is repeated with
// RewriteToken set to the returned token.
type RewriteObjectRequest struct {
	call[RewriteResponse]
	CommonParams
	objectPreconditions
	sourcePreconditions

	SourceBucket             string
	SourceObject             string
	DestinationBucket        string
	DestinationObject        string
	DestinationKMSKeyName    string
	DestinationPredefinedACL PredefinedObjectACL
	MaxBytesRewrittenPerCall int64
	Projection               Projection
	RewriteToken             string
	SourceGeneration         int64
	UserProject              string
	Metadata                 *Object
	SourceEncryptionKey      EncryptionKey
	EncryptionKey            EncryptionKey
}

// NewRewriteObjectRequest rewrites srcBucket/srcObject to dstBucket/dstObject.
func NewRewriteObjectRequest(srcBucket, srcObject, dstBucket, dstObject string) *RewriteObjectRequest {
	return &RewriteObjectRequest{
		SourceBucket:      srcBucket,
		SourceObject:      srcObject,
		DestinationBucket: dstBucket,
		DestinationObject: dstObject,
	}
}

func (*RewriteObjectRequest) Method() string { return http.MethodPost }

func (r *RewriteObjectRequest) Header() http.Header {
	return mergeHeaders(
		r.SourceEncryptionKey.header(copySourceEncryptionHeaderPrefix),
		r.EncryptionKey.header(encryptionHeaderPrefix),
	)
}

func (r *RewriteObjectRequest) URL(base *url.URL) (*url.URL, error) {
	return objectToObjectURL(base, r.SourceBucket, r.SourceObject, "rewriteTo", r.DestinationBucket, r.DestinationObject)
}

func (r *RewriteObjectRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamDestinationKMSKeyName, &r.DestinationKMSKeyName)
	TakeEnum(&q, ParamDestinationPredefinedACL, &r.DestinationPredefinedACL)
	r.objectPreconditions.take(&q)
	r.sourcePreconditions.take(&q)
	q.TakeInt64(ParamMaxBytesRewrittenPerCall, &r.MaxBytesRewrittenPerCall)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamRewriteToken, &r.RewriteToken)
	q.TakeInt64(ParamSourceGeneration, &r.SourceGeneration)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Metadata)
}

// Clone returns a copy that can be sent again with a different token.
func (r *RewriteObjectRequest) Clone() *RewriteObjectRequest {
	c := *r
	c.Fields = slices.Clone(r.Fields)

	return &c
}
