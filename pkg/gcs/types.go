package gcs

import "time"

// Owner identifies the owner of a bucket or object.
type Owner struct {
	Entity   string `json:"entity,omitempty"   yaml:"entity,omitempty"`
	EntityID string `json:"entityId,omitempty" yaml:"entityId,omitempty"`
}

// ProjectTeam identifies a project team in an ACL entry.
type ProjectTeam struct {
	ProjectNumber string `json:"projectNumber,omitempty" yaml:"projectNumber,omitempty"`
	Team          string `json:"team,omitempty"          yaml:"team,omitempty"`
}

// BucketAccessControl is one entry of a bucket ACL.
type BucketAccessControl struct {
	Kind        string       `json:"kind,omitempty"        yaml:"kind,omitempty"`
	ID          string       `json:"id,omitempty"          yaml:"id,omitempty"`
	SelfLink    string       `json:"selfLink,omitempty"    yaml:"selfLink,omitempty"`
	Bucket      string       `json:"bucket,omitempty"      yaml:"bucket,omitempty"`
	Entity      string       `json:"entity,omitempty"      yaml:"entity,omitempty"`
	Role        string       `json:"role,omitempty"        yaml:"role,omitempty"`
	Email       string       `json:"email,omitempty"       yaml:"email,omitempty"`
	EntityID    string       `json:"entityId,omitempty"    yaml:"entityId,omitempty"`
	Domain      string       `json:"domain,omitempty"      yaml:"domain,omitempty"`
	ProjectTeam *ProjectTeam `json:"projectTeam,omitempty" yaml:"projectTeam,omitempty"`
	Etag        string       `json:"etag,omitempty"        yaml:"etag,omitempty"`
}

// ObjectAccessControl is one entry of an object ACL or of a bucket's default
// object ACL.
type ObjectAccessControl struct {
	Kind        string       `json:"kind,omitempty"              yaml:"kind,omitempty"`
	ID          string       `json:"id,omitempty"                yaml:"id,omitempty"`
	SelfLink    string       `json:"selfLink,omitempty"          yaml:"selfLink,omitempty"`
	Bucket      string       `json:"bucket,omitempty"            yaml:"bucket,omitempty"`
	Object      string       `json:"object,omitempty"            yaml:"object,omitempty"`
	Generation  int64        `json:"generation,string,omitempty" yaml:"generation,omitempty"`
	Entity      string       `json:"entity,omitempty"            yaml:"entity,omitempty"`
	Role        string       `json:"role,omitempty"              yaml:"role,omitempty"`
	Email       string       `json:"email,omitempty"             yaml:"email,omitempty"`
	EntityID    string       `json:"entityId,omitempty"          yaml:"entityId,omitempty"`
	Domain      string       `json:"domain,omitempty"            yaml:"domain,omitempty"`
	ProjectTeam *ProjectTeam `json:"projectTeam,omitempty"       yaml:"projectTeam,omitempty"`
	Etag        string       `json:"etag,omitempty"              yaml:"etag,omitempty"`
}

// BucketVersioning toggles object versioning.
type BucketVersioning struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// BucketWebsite configures static website serving.
type BucketWebsite struct {
	MainPageSuffix string `json:"mainPageSuffix,omitempty" yaml:"mainPageSuffix,omitempty"`
	NotFoundPage   string `json:"notFoundPage,omitempty"   yaml:"notFoundPage,omitempty"`
}

// BucketLogging configures access logs.
type BucketLogging struct {
	LogBucket       string `json:"logBucket,omitempty"       yaml:"logBucket,omitempty"`
	LogObjectPrefix string `json:"logObjectPrefix,omitempty" yaml:"logObjectPrefix,omitempty"`
}

// BucketCORS is one CORS rule.
type BucketCORS struct {
	Origin         []string `json:"origin,omitempty"         yaml:"origin,omitempty"`
	Method         []string `json:"method,omitempty"         yaml:"method,omitempty"`
	ResponseHeader []string `json:"responseHeader,omitempty" yaml:"responseHeader,omitempty"`
	MaxAgeSeconds  int64    `json:"maxAgeSeconds,omitempty"  yaml:"maxAgeSeconds,omitempty"`
}

// LifecycleRule is an action applied when its condition matches.
type LifecycleRule struct {
	Action struct {
		Type         string `json:"type"                   yaml:"type"`
		StorageClass string `json:"storageClass,omitempty" yaml:"storageClass,omitempty"`
	} `json:"action" yaml:"action"`
	Condition struct {
		Age                 int64    `json:"age,omitempty"                 yaml:"age,omitempty"`
		CreatedBefore       string   `json:"createdBefore,omitempty"       yaml:"createdBefore,omitempty"`
		IsLive              *bool    `json:"isLive,omitempty"              yaml:"isLive,omitempty"`
		MatchesStorageClass []string `json:"matchesStorageClass,omitempty" yaml:"matchesStorageClass,omitempty"`
		NumNewerVersions    int64    `json:"numNewerVersions,omitempty"    yaml:"numNewerVersions,omitempty"`
		MatchesPrefix       []string `json:"matchesPrefix,omitempty"       yaml:"matchesPrefix,omitempty"`
	} `json:"condition" yaml:"condition"`
}

// BucketLifecycle holds the lifecycle rules of a bucket.
type BucketLifecycle struct {
	Rule []LifecycleRule `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// BucketRetentionPolicy is the minimum retention of objects in a bucket.
type BucketRetentionPolicy struct {
	RetentionPeriod int64      `json:"retentionPeriod,string,omitempty" yaml:"retentionPeriod,omitempty"`
	EffectiveTime   *time.Time `json:"effectiveTime,omitempty"          yaml:"effectiveTime,omitempty"`
	IsLocked        bool       `json:"isLocked,omitempty"               yaml:"isLocked,omitempty"`
}

// BucketIAMConfiguration controls uniform bucket-level access.
type BucketIAMConfiguration struct {
	UniformBucketLevelAccess *UniformBucketLevelAccess `json:"uniformBucketLevelAccess,omitempty" yaml:"uniformBucketLevelAccess,omitempty"`
	PublicAccessPrevention   string                    `json:"publicAccessPrevention,omitempty"   yaml:"publicAccessPrevention,omitempty"`
}

// UniformBucketLevelAccess disables object ACLs when enabled.
type UniformBucketLevelAccess struct {
	Enabled    bool       `json:"enabled"              yaml:"enabled"`
	LockedTime *time.Time `json:"lockedTime,omitempty" yaml:"lockedTime,omitempty"`
}

// Bucket is a bucket resource.
type Bucket struct {
	Kind                  string                  `json:"kind,omitempty"                  yaml:"kind,omitempty"`
	ID                    string                  `json:"id,omitempty"                    yaml:"id,omitempty"`
	SelfLink              string                  `json:"selfLink,omitempty"              yaml:"selfLink,omitempty"`
	ProjectNumber         uint64                  `json:"projectNumber,string,omitempty"  yaml:"projectNumber,omitempty"`
	Name                  string                  `json:"name,omitempty"                  yaml:"name,omitempty"`
	TimeCreated           *time.Time              `json:"timeCreated,omitempty"           yaml:"timeCreated,omitempty"`
	Updated               *time.Time              `json:"updated,omitempty"               yaml:"updated,omitempty"`
	DefaultEventBasedHold bool                    `json:"defaultEventBasedHold,omitempty" yaml:"defaultEventBasedHold,omitempty"`
	RetentionPolicy       *BucketRetentionPolicy  `json:"retentionPolicy,omitempty"       yaml:"retentionPolicy,omitempty"`
	Metageneration        int64                   `json:"metageneration,string,omitempty" yaml:"metageneration,omitempty"`
	ACL                   []BucketAccessControl   `json:"acl,omitempty"                   yaml:"acl,omitempty"`
	DefaultObjectACL      []ObjectAccessControl   `json:"defaultObjectAcl,omitempty"      yaml:"defaultObjectAcl,omitempty"`
	IAMConfiguration      *BucketIAMConfiguration `json:"iamConfiguration,omitempty"      yaml:"iamConfiguration,omitempty"`
	Owner                 *Owner                  `json:"owner,omitempty"                 yaml:"owner,omitempty"`
	Location              string                  `json:"location,omitempty"              yaml:"location,omitempty"`
	LocationType          string                  `json:"locationType,omitempty"          yaml:"locationType,omitempty"`
	Website               *BucketWebsite          `json:"website,omitempty"               yaml:"website,omitempty"`
	Logging               *BucketLogging          `json:"logging,omitempty"               yaml:"logging,omitempty"`
	Versioning            *BucketVersioning       `json:"versioning,omitempty"            yaml:"versioning,omitempty"`
	CORS                  []BucketCORS            `json:"cors,omitempty"                  yaml:"cors,omitempty"`
	Lifecycle             *BucketLifecycle        `json:"lifecycle,omitempty"             yaml:"lifecycle,omitempty"`
	Labels                map[string]string       `json:"labels,omitempty"                yaml:"labels,omitempty"`
	StorageClass          string                  `json:"storageClass,omitempty"          yaml:"storageClass,omitempty"`
	Billing               *BucketBilling          `json:"billing,omitempty"               yaml:"billing,omitempty"`
	Encryption            *BucketEncryption       `json:"encryption,omitempty"            yaml:"encryption,omitempty"`
	Etag                  string                  `json:"etag,omitempty"                  yaml:"etag,omitempty"`
}

// BucketBilling holds the requester pays setting.
type BucketBilling struct {
	RequesterPays bool `json:"requesterPays" yaml:"requesterPays"`
}

// BucketEncryption holds the default KMS key of a bucket.
type BucketEncryption struct {
	DefaultKMSKeyName string `json:"defaultKmsKeyName,omitempty" yaml:"defaultKmsKeyName,omitempty"`
}

// CustomerEncryption describes a customer-supplied key used on an object.
type CustomerEncryption struct {
	EncryptionAlgorithm string `json:"encryptionAlgorithm,omitempty" yaml:"encryptionAlgorithm,omitempty"`
	KeySha256           string `json:"keySha256,omitempty"           yaml:"keySha256,omitempty"`
}

// Object is an object resource.
type Object struct {
	Kind                    string                `json:"kind,omitempty"                    yaml:"kind,omitempty"`
	ID                      string                `json:"id,omitempty"                      yaml:"id,omitempty"`
	SelfLink                string                `json:"selfLink,omitempty"                yaml:"selfLink,omitempty"`
	MediaLink               string                `json:"mediaLink,omitempty"               yaml:"mediaLink,omitempty"`
	Name                    string                `json:"name,omitempty"                    yaml:"name,omitempty"`
	Bucket                  string                `json:"bucket,omitempty"                  yaml:"bucket,omitempty"`
	Generation              int64                 `json:"generation,string,omitempty"       yaml:"generation,omitempty"`
	Metageneration          int64                 `json:"metageneration,string,omitempty"   yaml:"metageneration,omitempty"`
	ContentType             string                `json:"contentType,omitempty"             yaml:"contentType,omitempty"`
	StorageClass            string                `json:"storageClass,omitempty"            yaml:"storageClass,omitempty"`
	Size                    uint64                `json:"size,string,omitempty"             yaml:"size,omitempty"`
	MD5Hash                 string                `json:"md5Hash,omitempty"                 yaml:"md5Hash,omitempty"`
	CRC32C                  string                `json:"crc32c,omitempty"                  yaml:"crc32c,omitempty"`
	ContentEncoding         string                `json:"contentEncoding,omitempty"         yaml:"contentEncoding,omitempty"`
	ContentDisposition      string                `json:"contentDisposition,omitempty"      yaml:"contentDisposition,omitempty"`
	ContentLanguage         string                `json:"contentLanguage,omitempty"         yaml:"contentLanguage,omitempty"`
	CacheControl            string                `json:"cacheControl,omitempty"            yaml:"cacheControl,omitempty"`
	Metadata                map[string]string     `json:"metadata,omitempty"                yaml:"metadata,omitempty"`
	ACL                     []ObjectAccessControl `json:"acl,omitempty"                     yaml:"acl,omitempty"`
	Owner                   *Owner                `json:"owner,omitempty"                   yaml:"owner,omitempty"`
	ComponentCount          int                   `json:"componentCount,omitempty"          yaml:"componentCount,omitempty"`
	Etag                    string                `json:"etag,omitempty"                    yaml:"etag,omitempty"`
	TimeCreated             *time.Time            `json:"timeCreated,omitempty"             yaml:"timeCreated,omitempty"`
	Updated                 *time.Time            `json:"updated,omitempty"                 yaml:"updated,omitempty"`
	TimeDeleted             *time.Time            `json:"timeDeleted,omitempty"             yaml:"timeDeleted,omitempty"`
	TimeStorageClassUpdated *time.Time            `json:"timeStorageClassUpdated,omitempty" yaml:"timeStorageClassUpdated,omitempty"`
	TemporaryHold           bool                  `json:"temporaryHold,omitempty"           yaml:"temporaryHold,omitempty"`
	EventBasedHold          *bool                 `json:"eventBasedHold,omitempty"          yaml:"eventBasedHold,omitempty"`
	RetentionExpirationTime *time.Time            `json:"retentionExpirationTime,omitempty" yaml:"retentionExpirationTime,omitempty"`
	KMSKeyName              string                `json:"kmsKeyName,omitempty"              yaml:"kmsKeyName,omitempty"`
	CustomerEncryption      *CustomerEncryption   `json:"customerEncryption,omitempty"      yaml:"customerEncryption,omitempty"`
}

// HMACKeyMetadata describes an HMAC key without its secret.
type HMACKeyMetadata struct {
	Kind                string     `json:"kind,omitempty"                yaml:"kind,omitempty"`
	ID                  string     `json:"id,omitempty"                  yaml:"id,omitempty"`
	SelfLink            string     `json:"selfLink,omitempty"            yaml:"selfLink,omitempty"`
	AccessID            string     `json:"accessId,omitempty"            yaml:"accessId,omitempty"`
	ProjectID           string     `json:"projectId,omitempty"           yaml:"projectId,omitempty"`
	ServiceAccountEmail string     `json:"serviceAccountEmail,omitempty" yaml:"serviceAccountEmail,omitempty"`
	State               string     `json:"state,omitempty"               yaml:"state,omitempty"`
	TimeCreated         *time.Time `json:"timeCreated,omitempty"         yaml:"timeCreated,omitempty"`
	Updated             *time.Time `json:"updated,omitempty"             yaml:"updated,omitempty"`
	Etag                string     `json:"etag,omitempty"                yaml:"etag,omitempty"`
}

// HMAC key states.
const (
	HMACKeyStateActive   = "ACTIVE"
	HMACKeyStateInactive = "INACTIVE"
	HMACKeyStateDeleted  = "DELETED"
)

// HMACKey is returned once, on creation, and carries the secret.
type HMACKey struct {
	Kind     string           `json:"kind,omitempty"     yaml:"kind,omitempty"`
	Metadata *HMACKeyMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Secret   string           `json:"secret,omitempty"   yaml:"secret,omitempty"`
}

// Notification is a Pub/Sub notification configuration of a bucket.
type Notification struct {
	Kind             string            `json:"kind,omitempty"             yaml:"kind,omitempty"`
	ID               string            `json:"id,omitempty"               yaml:"id,omitempty"`
	SelfLink         string            `json:"selfLink,omitempty"         yaml:"selfLink,omitempty"`
	Topic            string            `json:"topic,omitempty"            yaml:"topic,omitempty"`
	EventTypes       []string          `json:"event_types,omitempty"      yaml:"eventTypes,omitempty"`
	CustomAttributes map[string]string `json:"custom_attributes,omitempty" yaml:"customAttributes,omitempty"`
	PayloadFormat    string            `json:"payload_format,omitempty"   yaml:"payloadFormat,omitempty"`
	ObjectNamePrefix string            `json:"object_name_prefix,omitempty" yaml:"objectNamePrefix,omitempty"`
	Etag             string            `json:"etag,omitempty"             yaml:"etag,omitempty"`
}

// Expr is a CEL condition attached to a policy binding.
type Expr struct {
	Expression  string `json:"expression,omitempty"  yaml:"expression,omitempty"`
	Title       string `json:"title,omitempty"       yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Location    string `json:"location,omitempty"    yaml:"location,omitempty"`
}

// PolicyBinding grants a role to a set of members.
type PolicyBinding struct {
	Role      string   `json:"role"                yaml:"role"`
	Members   []string `json:"members"             yaml:"members"`
	Condition *Expr    `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Policy is the IAM policy of a bucket.
type Policy struct {
	Kind       string          `json:"kind,omitempty"       yaml:"kind,omitempty"`
	ResourceID string          `json:"resourceId,omitempty" yaml:"resourceId,omitempty"`
	Version    int             `json:"version,omitempty"    yaml:"version,omitempty"`
	Etag       string          `json:"etag,omitempty"       yaml:"etag,omitempty"`
	Bindings   []PolicyBinding `json:"bindings"             yaml:"bindings"`
}

// TestIAMPermissionsResponse lists the permissions the caller holds.
type TestIAMPermissionsResponse struct {
	Kind        string   `json:"kind,omitempty"        yaml:"kind,omitempty"`
	Permissions []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// RewriteResponse reports the progress of a rewrite.
type RewriteResponse struct {
	Kind                string  `json:"kind,omitempty"                       yaml:"kind,omitempty"`
	TotalBytesRewritten int64   `json:"totalBytesRewritten,string,omitempty" yaml:"totalBytesRewritten,omitempty"`
	ObjectSize          int64   `json:"objectSize,string,omitempty"          yaml:"objectSize,omitempty"`
	Done                bool    `json:"done"                                 yaml:"done"`
	RewriteToken        string  `json:"rewriteToken,omitempty"               yaml:"rewriteToken,omitempty"`
	Resource            *Object `json:"resource,omitempty"                   yaml:"resource,omitempty"`
}

// ComposeSource is one input of a compose call.
type ComposeSource struct {
	Name                string               `json:"name"                          yaml:"name"`
	Generation          int64                `json:"generation,string,omitempty"   yaml:"generation,omitempty"`
	ObjectPreconditions *ObjectPreconditions `json:"objectPreconditions,omitempty" yaml:"objectPreconditions,omitempty"`
}

// ObjectPreconditions guards a compose source.
type ObjectPreconditions struct {
	IfGenerationMatch int64 `json:"ifGenerationMatch,string" yaml:"ifGenerationMatch"`
}

// ListBucketsResponse is one page of buckets.
type ListBucketsResponse struct {
	Kind          string   `json:"kind,omitempty"          yaml:"kind,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	Items         []Bucket `json:"items,omitempty"         yaml:"items,omitempty"`
}

// ListObjectsResponse is one page of objects.
type ListObjectsResponse struct {
	Kind          string   `json:"kind,omitempty"          yaml:"kind,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	Prefixes      []string `json:"prefixes,omitempty"      yaml:"prefixes,omitempty"`
	Items         []Object `json:"items,omitempty"         yaml:"items,omitempty"`
}

// ListHMACKeysResponse is one page of HMAC key metadata.
type ListHMACKeysResponse struct {
	Kind          string            `json:"kind,omitempty"          yaml:"kind,omitempty"`
	NextPageToken string            `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	Items         []HMACKeyMetadata `json:"items,omitempty"         yaml:"items,omitempty"`
}

// ListBucketAccessControlsResponse is the full ACL of a bucket.
type ListBucketAccessControlsResponse struct {
	Kind  string                `json:"kind,omitempty"  yaml:"kind,omitempty"`
	Items []BucketAccessControl `json:"items,omitempty" yaml:"items,omitempty"`
}

// ListObjectAccessControlsResponse is the full ACL of an object, or the
// default object ACL of a bucket.
type ListObjectAccessControlsResponse struct {
	Kind  string                `json:"kind,omitempty"  yaml:"kind,omitempty"`
	Items []ObjectAccessControl `json:"items,omitempty" yaml:"items,omitempty"`
}

// ListNotificationsResponse lists the notification configurations of a bucket.
type ListNotificationsResponse struct {
	Kind  string         `json:"kind,omitempty"  yaml:"kind,omitempty"`
	Items []Notification `json:"items,omitempty" yaml:"items,omitempty"`
}
