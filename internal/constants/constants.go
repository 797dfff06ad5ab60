package constants

import "time"

// API endpoints.
const (
	// DefaultBaseURL is the JSON API root.
	DefaultBaseURL = "https://storage.googleapis.com/storage/v1/"

	// XMLAPIEndpoint is the S3 compatible XML API host.
	XMLAPIEndpoint = "https://storage.googleapis.com"

	// XMLAPIRegion is the signing region accepted by the XML API.
	XMLAPIRegion = "auto"

	// GoogleTokenURL is the OAuth2 token endpoint for refresh tokens and JWT grants.
	GoogleTokenURL = "https://oauth2.googleapis.com/token" // #nosec G101 -- public endpoint, not a credential

	// URIScheme is the scheme of short-form resource URIs.
	URIScheme = "gs"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for uploads and rewrites.
	ExtendedHTTPTimeout = 5 * time.Minute
)

// Retry limits. The dispatcher sends exactly one request unless RetryMax is
// configured.
const (
	// DefaultRetryMax is the number of retries the client performs by default.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 8

	// DefaultBatchOperationTimeout bounds one batch operation.
	DefaultBatchOperationTimeout = 30 * time.Second
)

// Rewrite polling.
const (
	// DefaultRewriteTimeout bounds RewriteUntilDone.
	DefaultRewriteTimeout = 30 * time.Minute
)

// Display.
const (
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// MaxErrorBodyLog is how much of an error body is logged.
	MaxErrorBodyLog = 1024

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Confirmation constants.
const (
	// ConfirmationYes for positive confirmations.
	ConfirmationYes = "yes"
)
