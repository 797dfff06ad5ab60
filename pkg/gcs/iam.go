package gcs

import (
	"net/http"
	"net/url"
)

// GetIAMPolicyRequest fetches the IAM policy of a bucket.
type GetIAMPolicyRequest struct {
	call[Policy]
	CommonParams

	Bucket                        string
	OptionsRequestedPolicyVersion int64
	UserProject                   string
}

func (*GetIAMPolicyRequest) Method() string { return http.MethodGet }

func (r *GetIAMPolicyRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket, "iam")
}

func (r *GetIAMPolicyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamOptionsRequestedPolicyVersion, &r.OptionsRequestedPolicyVersion)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// SetIAMPolicyRequest replaces the IAM policy of a bucket. Set Policy.Etag to
// the value read to reject concurrent changes.
type SetIAMPolicyRequest struct {
	call[Policy]
	CommonParams

	Bucket      string
	UserProject string
	Policy      *Policy
}

func (*SetIAMPolicyRequest) Method() string { return http.MethodPut }

func (*SetIAMPolicyRequest) Scope() Scope { return ScopeFullControl }

func (r *SetIAMPolicyRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket, "iam")
}

func (r *SetIAMPolicyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Policy)
}

// TestIAMPermissionsRequest reports which of Permissions the caller holds on a
// bucket.
type TestIAMPermissionsRequest struct {
	call[TestIAMPermissionsResponse]
	CommonParams

	Bucket      string
	Permissions []string
	UserProject string
}

func (*TestIAMPermissionsRequest) Method() string { return http.MethodGet }

func (r *TestIAMPermissionsRequest) URL(base *url.URL) (*url.URL, error) {
	return BucketURL(base, r.Bucket, "iam", "testPermissions")
}

func (r *TestIAMPermissionsRequest) Assemble() (Query, any) {
	var q Query

	q.TakeStrings(ParamPermissions, &r.Permissions)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}
