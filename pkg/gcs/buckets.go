package gcs

import (
	"net/http"
	"net/url"
	"slices"
)

// Int64 returns a pointer to v, for precondition fields.
func Int64(v int64) *int64 { return &v }

// takeBody moves *v out of the request. A nil pointer yields a nil interface.
func takeBody[T any](v **T) any {
	if *v == nil {
		return nil
	}

	body := *v
	*v = nil

	return body
}

// ListBucketsRequest lists the buckets of a project.
type ListBucketsRequest struct {
	call[ListBucketsResponse]
	CommonParams

	Project     string
	MaxResults  int64
	PageToken   string
	Prefix      string
	Projection  Projection
	UserProject string
}

// NewListBucketsRequest creates a listing of the buckets of project.
func NewListBucketsRequest(project string) *ListBucketsRequest {
	return &ListBucketsRequest{Project: project}
}

func (*ListBucketsRequest) Method() string { return http.MethodGet }

func (*ListBucketsRequest) URL(base *url.URL) (*url.URL, error) {
	return AppendSegment(base, "b", EscapeNormal)
}

func (r *ListBucketsRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamProject, &r.Project)
	q.TakeInt64(ParamMaxResults, &r.MaxResults)
	q.TakeString(ParamPageToken, &r.PageToken)
	q.TakeString(ParamPrefix, &r.Prefix)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// Page implements Pageable.
func (*ListBucketsRequest) Page(resp *ListBucketsResponse) ([]Bucket, string) {
	return resp.Items, resp.NextPageToken
}

// Clone implements Pageable.
func (r *ListBucketsRequest) Clone() Pageable[ListBucketsResponse, Bucket] {
	c := *r
	c.Fields = slices.Clone(r.Fields)

	return &c
}

// SetPageToken implements Pageable.
func (r *ListBucketsRequest) SetPageToken(token string) { r.PageToken = token }

// InsertBucketRequest creates a bucket.
type InsertBucketRequest struct {
	call[Bucket]
	CommonParams

	Project                    string
	PredefinedACL              PredefinedBucketACL
	PredefinedDefaultObjectACL PredefinedObjectACL
	Projection                 Projection
	UserProject                string
	Bucket                     *Bucket
}

// NewInsertBucketRequest creates bucket in project.
func NewInsertBucketRequest(project string, bucket *Bucket) *InsertBucketRequest {
	return &InsertBucketRequest{Project: project, Bucket: bucket}
}

func (*InsertBucketRequest) Method() string { return http.MethodPost }

func (*InsertBucketRequest) URL(base *url.URL) (*url.URL, error) {
	return AppendSegment(base, "b", EscapeNormal)
}

func (r *InsertBucketRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamProject, &r.Project)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamPredefinedDefaultObjectACL, &r.PredefinedDefaultObjectACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Bucket)
}

// GetBucketRequest fetches bucket metadata.
type GetBucketRequest struct {
	call[Bucket]
	CommonParams

	Bucket                   string
	IfMetagenerationMatch    *int64
	IfMetagenerationNotMatch *int64
	Projection               Projection
	UserProject              string
}

// NewGetBucketRequest fetches the named bucket.
func NewGetBucketRequest(bucket string) *GetBucketRequest {
	return &GetBucketRequest{Bucket: bucket}
}

func (*GetBucketRequest) Method() string { return http.MethodGet }

func (r *GetBucketRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket)
}

func (r *GetBucketRequest) Assemble() (Query, any) {
	var q Query

	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &r.IfMetagenerationNotMatch)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// UpdateBucketRequest replaces the mutable metadata of a bucket. Fields left
// empty in Metadata are reset to their defaults.
type UpdateBucketRequest struct {
	call[Bucket]
	CommonParams

	Bucket                     string
	IfMetagenerationMatch      *int64
	IfMetagenerationNotMatch   *int64
	PredefinedACL              PredefinedBucketACL
	PredefinedDefaultObjectACL PredefinedObjectACL
	Projection                 Projection
	UserProject                string
	Metadata                   *Bucket
}

// NewUpdateBucketRequestFrom builds a full replacement of b guarded by its
// current metageneration, so a concurrent change makes the update fail with
// 412 instead of being overwritten.
func NewUpdateBucketRequestFrom(b *Bucket) *UpdateBucketRequest {
	r := &UpdateBucketRequest{Bucket: b.Name, Metadata: b}
	if b.Metageneration != 0 {
		r.IfMetagenerationMatch = Int64(b.Metageneration)
	}

	return r
}

func (*UpdateBucketRequest) Method() string { return http.MethodPut }

func (r *UpdateBucketRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket)
}

func (r *UpdateBucketRequest) Assemble() (Query, any) {
	var q Query

	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &r.IfMetagenerationNotMatch)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamPredefinedDefaultObjectACL, &r.PredefinedDefaultObjectACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Metadata)
}

// PatchBucketRequest merges the non-empty fields of Patch into a bucket.
type PatchBucketRequest struct {
	call[Bucket]
	CommonParams

	Bucket                     string
	IfMetagenerationMatch      *int64
	IfMetagenerationNotMatch   *int64
	PredefinedACL              PredefinedBucketACL
	PredefinedDefaultObjectACL PredefinedObjectACL
	Projection                 Projection
	UserProject                string
	Patch                      *Bucket
}

// NewPatchBucketRequest merges patch into the named bucket.
func NewPatchBucketRequest(bucket string, patch *Bucket) *PatchBucketRequest {
	return &PatchBucketRequest{Bucket: bucket, Patch: patch}
}

func (*PatchBucketRequest) Method() string { return http.MethodPatch }

func (r *PatchBucketRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket)
}

func (r *PatchBucketRequest) Assemble() (Query, any) {
	var q Query

	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &r.IfMetagenerationNotMatch)
	TakeEnum(&q, ParamPredefinedACL, &r.PredefinedACL)
	TakeEnum(&q, ParamPredefinedDefaultObjectACL, &r.PredefinedDefaultObjectACL)
	TakeEnum(&q, ParamProjection, &r.Projection)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Patch)
}

// DeleteBucketRequest deletes an empty bucket.
type DeleteBucketRequest struct {
	call[Empty]
	CommonParams

	Bucket                   string
	IfMetagenerationMatch    *int64
	IfMetagenerationNotMatch *int64
	UserProject              string
}

// NewDeleteBucketRequest deletes the named bucket.
func NewDeleteBucketRequest(bucket string) *DeleteBucketRequest {
	return &DeleteBucketRequest{Bucket: bucket}
}

func (*DeleteBucketRequest) Method() string { return http.MethodDelete }

func (r *DeleteBucketRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket)
}

func (r *DeleteBucketRequest) Assemble() (Query, any) {
	var q Query

	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &r.IfMetagenerationNotMatch)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}
