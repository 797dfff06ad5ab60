package constants

import "errors"

// Configuration errors.
var (
	ErrNoProject            = errors.New("no project configured, use --project or GCS_PROJECT")
	ErrUnknownCredentials   = errors.New("unknown credentials type")
	ErrMissingCredentialKey = errors.New("credentials file is missing a required field")
)

// CLI errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrConfirmationNeeded  = errors.New("refusing to delete without confirmation, pass --force")
	ErrAborted             = errors.New("aborted")
	ErrNotAnObjectURI      = errors.New("expected gs://bucket/object")
	ErrNotABucketURI       = errors.New("expected gs://bucket")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)

// Rewrite errors.
var (
	ErrRewriteTimeout = errors.New("rewrite did not complete in time")
)
