package gcs

import (
	"net/http"
	"net/url"
)

// Entity names have the form user-{email}, group-{id}, domain-{domain},
// project-{team}-{id}, allUsers or allAuthenticatedUsers.
const (
	EntityAllUsers              = "allUsers"
	EntityAllAuthenticatedUsers = "allAuthenticatedUsers"
)

// ACL roles.
const (
	RoleOwner  = "OWNER"
	RoleReader = "READER"
	RoleWriter = "WRITER"
)

// bucketACLURL addresses the collection, or one entry of it when an entity is
// given.
func bucketACLURL(base *url.URL, bucket, collection string, entity ...string) (*url.URL, error) {
	return BucketURL(base, bucket, append([]string{collection}, entity...)...)
}

func objectACLURL(base *url.URL, bucket, object string, entity ...string) (*url.URL, error) {
	u, err := ObjectURL(base, bucket, object, EscapeSlash)
	if err != nil {
		return nil, err
	}

	return AppendSegments(u, EscapeNormal, append([]string{"acl"}, entity...)...)
}

// ListBucketACLRequest lists the access control entries of a bucket.
type ListBucketACLRequest struct {
	call[ListBucketAccessControlsResponse]
	CommonParams

	Bucket      string
	UserProject string
}

func (*ListBucketACLRequest) Method() string { return http.MethodGet }

func (r *ListBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl")
}

func (r *ListBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// GetBucketACLRequest fetches the entry of one entity on a bucket.
type GetBucketACLRequest struct {
	call[BucketAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
}

func (*GetBucketACLRequest) Method() string { return http.MethodGet }

func (r *GetBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl", r.Entity)
}

func (r *GetBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// InsertBucketACLRequest adds an entry to a bucket ACL.
type InsertBucketACLRequest struct {
	call[BucketAccessControl]
	CommonParams

	Bucket      string
	UserProject string
	ACL         *BucketAccessControl
}

func (*InsertBucketACLRequest) Method() string { return http.MethodPost }

func (*InsertBucketACLRequest) Scope() Scope { return ScopeFullControl }

func (r *InsertBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl")
}

func (r *InsertBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// UpdateBucketACLRequest replaces the entry of one entity on a bucket.
type UpdateBucketACLRequest struct {
	call[BucketAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
	ACL         *BucketAccessControl
}

func (*UpdateBucketACLRequest) Method() string { return http.MethodPut }

func (*UpdateBucketACLRequest) Scope() Scope { return ScopeFullControl }

func (r *UpdateBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl", r.Entity)
}

func (r *UpdateBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// PatchBucketACLRequest merges into the entry of one entity on a bucket.
type PatchBucketACLRequest struct {
	call[BucketAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
	ACL         *BucketAccessControl
}

func (*PatchBucketACLRequest) Method() string { return http.MethodPatch }

func (*PatchBucketACLRequest) Scope() Scope { return ScopeFullControl }

func (r *PatchBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl", r.Entity)
}

func (r *PatchBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// DeleteBucketACLRequest removes the entry of one entity from a bucket.
type DeleteBucketACLRequest struct {
	call[Empty]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
}

func (*DeleteBucketACLRequest) Method() string { return http.MethodDelete }

func (*DeleteBucketACLRequest) Scope() Scope { return ScopeFullControl }

func (r *DeleteBucketACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "acl", r.Entity)
}

func (r *DeleteBucketACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// ListDefaultObjectACLRequest lists the ACL applied to new objects of a bucket.
type ListDefaultObjectACLRequest struct {
	call[ListObjectAccessControlsResponse]
	CommonParams

	Bucket                   string
	IfMetagenerationMatch    *int64
	IfMetagenerationNotMatch *int64
	UserProject              string
}

func (*ListDefaultObjectACLRequest) Method() string { return http.MethodGet }

func (r *ListDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl")
}

func (r *ListDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeOptional(ParamIfMetagenerationMatch, &r.IfMetagenerationMatch)
	q.TakeOptional(ParamIfMetagenerationNotMatch, &r.IfMetagenerationNotMatch)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// GetDefaultObjectACLRequest fetches one default object ACL entry.
type GetDefaultObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
}

func (*GetDefaultObjectACLRequest) Method() string { return http.MethodGet }

func (r *GetDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl", r.Entity)
}

func (r *GetDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// InsertDefaultObjectACLRequest adds a default object ACL entry.
type InsertDefaultObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	UserProject string
	ACL         *ObjectAccessControl
}

func (*InsertDefaultObjectACLRequest) Method() string { return http.MethodPost }

func (*InsertDefaultObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *InsertDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl")
}

func (r *InsertDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// UpdateDefaultObjectACLRequest replaces one default object ACL entry.
type UpdateDefaultObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
	ACL         *ObjectAccessControl
}

func (*UpdateDefaultObjectACLRequest) Method() string { return http.MethodPut }

func (*UpdateDefaultObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *UpdateDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl", r.Entity)
}

func (r *UpdateDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// PatchDefaultObjectACLRequest merges into one default object ACL entry.
type PatchDefaultObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
	ACL         *ObjectAccessControl
}

func (*PatchDefaultObjectACLRequest) Method() string { return http.MethodPatch }

func (*PatchDefaultObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *PatchDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl", r.Entity)
}

func (r *PatchDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// DeleteDefaultObjectACLRequest removes one default object ACL entry.
type DeleteDefaultObjectACLRequest struct {
	call[Empty]
	CommonParams

	Bucket      string
	Entity      string
	UserProject string
}

func (*DeleteDefaultObjectACLRequest) Method() string { return http.MethodDelete }

func (*DeleteDefaultObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *DeleteDefaultObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return bucketACLURL(base, r.Bucket, "defaultObjectAcl", r.Entity)
}

func (r *DeleteDefaultObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// ListObjectACLRequest lists the access control entries of an object.
type ListObjectACLRequest struct {
	call[ListObjectAccessControlsResponse]
	CommonParams

	Bucket      string
	Object      string
	Generation  int64
	UserProject string
}

func (*ListObjectACLRequest) Method() string { return http.MethodGet }

func (r *ListObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object)
}

func (r *ListObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// GetObjectACLRequest fetches the entry of one entity on an object.
type GetObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Object      string
	Entity      string
	Generation  int64
	UserProject string
}

func (*GetObjectACLRequest) Method() string { return http.MethodGet }

func (r *GetObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object, r.Entity)
}

func (r *GetObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// InsertObjectACLRequest adds an entry to an object ACL.
type InsertObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Object      string
	Generation  int64
	UserProject string
	ACL         *ObjectAccessControl
}

func (*InsertObjectACLRequest) Method() string { return http.MethodPost }

func (*InsertObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *InsertObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object)
}

func (r *InsertObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// UpdateObjectACLRequest replaces the entry of one entity on an object.
type UpdateObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Object      string
	Entity      string
	Generation  int64
	UserProject string
	ACL         *ObjectAccessControl
}

func (*UpdateObjectACLRequest) Method() string { return http.MethodPut }

func (*UpdateObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *UpdateObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object, r.Entity)
}

func (r *UpdateObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// PatchObjectACLRequest merges into the entry of one entity on an object.
type PatchObjectACLRequest struct {
	call[ObjectAccessControl]
	CommonParams

	Bucket      string
	Object      string
	Entity      string
	Generation  int64
	UserProject string
	ACL         *ObjectAccessControl
}

func (*PatchObjectACLRequest) Method() string { return http.MethodPatch }

func (*PatchObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *PatchObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object, r.Entity)
}

func (r *PatchObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.ACL)
}

// DeleteObjectACLRequest removes the entry of one entity from an object.
type DeleteObjectACLRequest struct {
	call[Empty]
	CommonParams

	Bucket      string
	Object      string
	Entity      string
	Generation  int64
	UserProject string
}

func (*DeleteObjectACLRequest) Method() string { return http.MethodDelete }

func (*DeleteObjectACLRequest) Scope() Scope { return ScopeFullControl }

func (r *DeleteObjectACLRequest) URL(base *url.URL) (*url.URL, error) {
	return objectACLURL(base, r.Bucket, r.Object, r.Entity)
}

func (r *DeleteObjectACLRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamGeneration, &r.Generation)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}
