package gcs

import (
	"net/http"
	"net/url"
	"slices"
)

func hmacKeysURL(base *url.URL, project string, accessID ...string) (*url.URL, error) {
	return ProjectURL(base, project, append([]string{"hmacKeys"}, accessID...)...)
}

// CreateHMACKeyRequest creates an HMAC key for a service account. The secret is
// only returned by this call.
type CreateHMACKeyRequest struct {
	call[HMACKey]
	CommonParams

	Project             string
	ServiceAccountEmail string
	UserProject         string
}

// NewCreateHMACKeyRequest creates a key for serviceAccountEmail in project.
func NewCreateHMACKeyRequest(project, serviceAccountEmail string) *CreateHMACKeyRequest {
	return &CreateHMACKeyRequest{Project: project, ServiceAccountEmail: serviceAccountEmail}
}

func (*CreateHMACKeyRequest) Method() string { return http.MethodPost }

func (*CreateHMACKeyRequest) Scope() Scope { return ScopeFullControl }

func (r *CreateHMACKeyRequest) URL(base *url.URL) (*url.URL, error) {
	return hmacKeysURL(base, r.Project)
}

func (r *CreateHMACKeyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamServiceAccountEmail, &r.ServiceAccountEmail)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// ListHMACKeysRequest lists the HMAC keys of a project.
type ListHMACKeysRequest struct {
	call[ListHMACKeysResponse]
	CommonParams

	Project             string
	MaxResults          int64
	PageToken           string
	ServiceAccountEmail string
	ShowDeletedKeys     bool
	UserProject         string
}

// NewListHMACKeysRequest lists the keys of project.
func NewListHMACKeysRequest(project string) *ListHMACKeysRequest {
	return &ListHMACKeysRequest{Project: project}
}

func (*ListHMACKeysRequest) Method() string { return http.MethodGet }

func (r *ListHMACKeysRequest) URL(base *url.URL) (*url.URL, error) {
	return hmacKeysURL(base, r.Project)
}

func (r *ListHMACKeysRequest) Assemble() (Query, any) {
	var q Query

	q.TakeInt64(ParamMaxResults, &r.MaxResults)
	q.TakeString(ParamPageToken, &r.PageToken)
	q.TakeString(ParamServiceAccountEmail, &r.ServiceAccountEmail)
	q.TakeBool(ParamShowDeletedKeys, &r.ShowDeletedKeys)
	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// Page implements Pageable.
func (*ListHMACKeysRequest) Page(resp *ListHMACKeysResponse) ([]HMACKeyMetadata, string) {
	return resp.Items, resp.NextPageToken
}

// Clone implements Pageable.
func (r *ListHMACKeysRequest) Clone() Pageable[ListHMACKeysResponse, HMACKeyMetadata] {
	c := *r
	c.Fields = slices.Clone(r.Fields)

	return &c
}

// SetPageToken implements Pageable.
func (r *ListHMACKeysRequest) SetPageToken(token string) { r.PageToken = token }

// GetHMACKeyRequest fetches the metadata of one HMAC key.
type GetHMACKeyRequest struct {
	call[HMACKeyMetadata]
	CommonParams

	Project     string
	AccessID    string
	UserProject string
}

func (*GetHMACKeyRequest) Method() string { return http.MethodGet }

func (r *GetHMACKeyRequest) URL(base *url.URL) (*url.URL, error) {
	return hmacKeysURL(base, r.Project, r.AccessID)
}

func (r *GetHMACKeyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}

// UpdateHMACKeyRequest changes the state of an HMAC key. Only State and Etag of
// Metadata are read by the server.
type UpdateHMACKeyRequest struct {
	call[HMACKeyMetadata]
	CommonParams

	Project     string
	AccessID    string
	UserProject string
	Metadata    *HMACKeyMetadata
}

// NewUpdateHMACKeyStateRequest moves a key to state.
func NewUpdateHMACKeyStateRequest(project, accessID, state string) *UpdateHMACKeyRequest {
	return &UpdateHMACKeyRequest{
		Project:  project,
		AccessID: accessID,
		Metadata: &HMACKeyMetadata{State: state},
	}
}

func (*UpdateHMACKeyRequest) Method() string { return http.MethodPut }

func (*UpdateHMACKeyRequest) Scope() Scope { return ScopeFullControl }

func (r *UpdateHMACKeyRequest) URL(base *url.URL) (*url.URL, error) {
	return hmacKeysURL(base, r.Project, r.AccessID)
}

func (r *UpdateHMACKeyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, takeBody(&r.Metadata)
}

// DeleteHMACKeyRequest deletes an inactive HMAC key.
type DeleteHMACKeyRequest struct {
	call[Empty]
	CommonParams

	Project     string
	AccessID    string
	UserProject string
}

func (*DeleteHMACKeyRequest) Method() string { return http.MethodDelete }

func (*DeleteHMACKeyRequest) Scope() Scope { return ScopeFullControl }

func (r *DeleteHMACKeyRequest) URL(base *url.URL) (*url.URL, error) {
	return hmacKeysURL(base, r.Project, r.AccessID)
}

func (r *DeleteHMACKeyRequest) Assemble() (Query, any) {
	var q Query

	q.TakeString(ParamUserProject, &r.UserProject)
	r.CommonParams.take(&q)

	return q, nil
}
