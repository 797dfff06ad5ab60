package gcs

import (
	"net/url"
	"strconv"
	"strings"
)

// Query string keys understood by the JSON API.
const (
	ParamAlt                            = "alt"
	ParamDelimiter                      = "delimiter"
	ParamDestinationKMSKeyName          = "destinationKmsKeyName"
	ParamDestinationPredefinedACL       = "destinationPredefinedAcl"
	ParamFields                         = "fields"
	ParamGeneration                     = "generation"
	ParamIfGenerationMatch              = "ifGenerationMatch"
	ParamIfGenerationNotMatch           = "ifGenerationNotMatch"
	ParamIfMetagenerationMatch          = "ifMetagenerationMatch"
	ParamIfMetagenerationNotMatch       = "ifMetagenerationNotMatch"
	ParamIfSourceGenerationMatch        = "ifSourceGenerationMatch"
	ParamIfSourceGenerationNotMatch     = "ifSourceGenerationNotMatch"
	ParamIfSourceMetagenerationMatch    = "ifSourceMetagenerationMatch"
	ParamIfSourceMetagenerationNotMatch = "ifSourceMetagenerationNotMatch"
	ParamIncludeTrailingDelimiter       = "includeTrailingDelimiter"
	ParamKMSKeyName                     = "kmsKeyName"
	ParamMaxBytesRewrittenPerCall       = "maxBytesRewrittenPerCall"
	ParamMaxResults                     = "maxResults"
	ParamName                           = "name"
	ParamOptionsRequestedPolicyVersion  = "optionsRequestedPolicyVersion"
	ParamPageToken                      = "pageToken"
	ParamPermissions                    = "permissions"
	ParamPredefinedACL                  = "predefinedAcl"
	ParamPredefinedDefaultObjectACL     = "predefinedDefaultObjectAcl"
	ParamPrefix                         = "prefix"
	ParamProject                        = "project"
	ParamProjection                     = "projection"
	ParamQuotaUser                      = "quotaUser"
	ParamRewriteToken                   = "rewriteToken"
	ParamServiceAccountEmail            = "serviceAccountEmail"
	ParamShowDeletedKeys                = "showDeletedKeys"
	ParamSourceGeneration               = "sourceGeneration"
	ParamUploadType                     = "uploadType"
	ParamUserProject                    = "userProject"
	ParamVersions                       = "versions"
)

// Param is a single query string pair.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query string pairs. The order is kept on the
// wire, which is why url.Values (sorted on encode) is not used.
type Query []Param

// Add appends a pair.
func (q *Query) Add(key, value string) {
	*q = append(*q, Param{Key: key, Value: value})
}

// Get returns the first value stored under key.
func (q Query) Get(key string) string {
	for _, p := range q {
		if p.Key == key {
			return p.Value
		}
	}

	return ""
}

// Encode renders the pairs as a URL query string in insertion order.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	var b strings.Builder

	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}

	return b.String()
}

// The Take helpers move a field into the query and reset it, so a field is
// never read twice and never leaks into a request body as well.

// TakeString adds key=*v when *v is not empty.
func (q *Query) TakeString(key string, v *string) {
	if *v == "" {
		return
	}

	q.Add(key, *v)
	*v = ""
}

// TakeInt64 adds key=*v when *v is not zero.
func (q *Query) TakeInt64(key string, v *int64) {
	if *v == 0 {
		return
	}

	q.Add(key, strconv.FormatInt(*v, 10))
	*v = 0
}

// TakeOptional adds key=**v when *v is set. Used for preconditions, where
// zero is a meaningful value.
func (q *Query) TakeOptional(key string, v **int64) {
	if *v == nil {
		return
	}

	q.Add(key, strconv.FormatInt(**v, 10))
	*v = nil
}

// TakeBool adds key=true when *v is set.
func (q *Query) TakeBool(key string, v *bool) {
	if !*v {
		return
	}

	q.Add(key, "true")
	*v = false
}

// TakeStrings adds one pair per element, in order.
func (q *Query) TakeStrings(key string, v *[]string) {
	for _, s := range *v {
		q.Add(key, s)
	}

	*v = nil
}

// TakeJoined adds the elements as a single comma separated value.
func (q *Query) TakeJoined(key string, v *[]string) {
	if len(*v) == 0 {
		*v = nil

		return
	}

	q.Add(key, strings.Join(*v, ","))
	*v = nil
}

// Enum is a closed selector whose zero value means "unspecified". QueryValue
// returns "" for the zero value.
type Enum interface {
	comparable
	QueryValue() string
}

// TakeEnum adds key=QueryValue() unless *v is unspecified.
func TakeEnum[E Enum](q *Query, key string, v *E) {
	var zero E

	value := (*v).QueryValue()
	*v = zero

	if value == "" {
		return
	}

	q.Add(key, value)
}

// CommonParams are accepted by every JSON API method.
type CommonParams struct {
	// Fields restricts the response to a partial resource.
	Fields []string
	// QuotaUser attributes quota to an arbitrary user string.
	QuotaUser string
}

func (p *CommonParams) take(q *Query) {
	q.TakeJoined(ParamFields, &p.Fields)
	q.TakeString(ParamQuotaUser, &p.QuotaUser)
}
