package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

const (
	defaultTokenURL    = constants.GoogleTokenURL
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	typeServiceAccount = "service_account"
	typeAuthorizedUser = "authorized_user"
)

// ServiceAccountKey is the JSON key file of a service account.
type ServiceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// AuthorizedUserCredentials is the file written by `gcloud auth
// application-default login`.
type AuthorizedUserCredentials struct {
	Type           string `json:"type"`
	ClientID       string `json:"client_id"`
	ClientSecret   string `json:"client_secret"`
	RefreshToken   string `json:"refresh_token"`
	QuotaProjectID string `json:"quota_project_id"`
	TokenURI       string `json:"token_uri"`
}

// Credentials is a provider built from a credentials file together with the
// project it names, if any.
type Credentials struct {
	Provider  gcs.HeaderProvider
	ProjectID string
}

// FromCredentialsJSON builds a provider from the contents of a service account
// key or an authorized user file.
func FromCredentialsJSON(_ context.Context, data []byte) (*Credentials, error) {
	var head struct {
		Type string `json:"type"`
	}

	err := json.Unmarshal(data, &head)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	switch head.Type {
	case typeServiceAccount:
		var key ServiceAccountKey

		err = json.Unmarshal(data, &key)
		if err != nil {
			return nil, fmt.Errorf("parsing service account key: %w", err)
		}

		err = requireFields(map[string]string{
			"client_email": key.ClientEmail,
			"private_key":  key.PrivateKey,
		})
		if err != nil {
			return nil, err
		}

		return &Credentials{Provider: NewServiceAccount(&key), ProjectID: key.ProjectID}, nil
	case typeAuthorizedUser:
		var creds AuthorizedUserCredentials

		err = json.Unmarshal(data, &creds)
		if err != nil {
			return nil, fmt.Errorf("parsing authorized user credentials: %w", err)
		}

		err = requireFields(map[string]string{
			"client_id":     creds.ClientID,
			"client_secret": creds.ClientSecret,
			"refresh_token": creds.RefreshToken,
		})
		if err != nil {
			return nil, err
		}

		return &Credentials{Provider: NewAuthorizedUser(&creds), ProjectID: creds.QuotaProjectID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnknownCredentials, head.Type)
	}
}

// FromCredentialsFile reads path and calls FromCredentialsJSON.
func FromCredentialsFile(ctx context.Context, path string) (*Credentials, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	return FromCredentialsJSON(ctx, data)
}

func requireFields(fields map[string]string) error {
	var missing []string

	for name, value := range fields {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)

	return fmt.Errorf("%w: %s", constants.ErrMissingCredentialKey, strings.Join(missing, ", "))
}

func splitScopes(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ' ' || r == ','
	})
}
