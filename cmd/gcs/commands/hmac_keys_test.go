package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/internal/constants"
	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

const hmacKeysPath = "/storage/v1/projects/my-project/hmacKeys"

func TestNewHMACKeysCommand(t *testing.T) {
	t.Parallel()

	cmd := NewHMACKeysCommand()
	assert.Equal(t, "hmac-keys", cmd.Use)

	for _, name := range []string{"list", "get", "create", "activate", "deactivate", "delete"} {
		assert.NotNil(t, findCommand(cmd, name), "subcommand %s should exist", name)
	}

	assert.Equal(t, "Set an HMAC key Inactive", findCommand(cmd, "deactivate").Short)
}

func TestHMACKeysListCommand(t *testing.T) {
	f := setupCLI(t)
	viperSetProject(t, "my-project")

	f.json(http.MethodGet, hmacKeysPath, http.StatusOK, map[string]interface{}{
		"items": []map[string]interface{}{
			{"accessId": "GOOG1A", "state": "ACTIVE", "serviceAccountEmail": "sa@p.iam.gserviceaccount.com"},
			{"accessId": "GOOG1B", "state": "DELETED"},
		},
	})

	out, err := runCommand(t, NewHMACKeysCommand(), "list", "--show-deleted", "--service-account", "sa@p.iam.gserviceaccount.com")
	require.NoError(t, err)

	var keys []gcs.HMACKeyMetadata
	decodeOutput(t, out, &keys)
	require.Len(t, keys, 2)
	assert.Equal(t, "GOOG1B", keys[1].AccessID)

	seen := f.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "true", seen[0].Query["showDeletedKeys"][0])
	assert.Equal(t, "sa@p.iam.gserviceaccount.com", seen[0].Query["serviceAccountEmail"][0])
}

func TestHMACKeysCreateShowsSecret(t *testing.T) {
	f := setupCLI(t)
	viperSetProject(t, "my-project")
	viperSetOutput(t, OutputFormatTable)

	f.json(http.MethodPost, hmacKeysPath, http.StatusOK, map[string]interface{}{
		"secret":   "s3cr3t-value",
		"metadata": map[string]interface{}{"accessId": "GOOG1NEW", "state": "ACTIVE"},
	})

	out, err := runCommand(t, NewHMACKeysCommand(), "create", "sa@p.iam.gserviceaccount.com")
	require.NoError(t, err)
	assert.Contains(t, out, "GOOG1NEW")
	assert.Contains(t, out, "s3cr3t-value")
	assert.Contains(t, out, "Active")
}

func TestHMACKeysDeactivateCommand(t *testing.T) {
	f := setupCLI(t)
	viperSetProject(t, "my-project")

	f.json(http.MethodPut, hmacKeysPath+"/GOOG1A", http.StatusOK, map[string]interface{}{
		"accessId": "GOOG1A", "state": "INACTIVE",
	})

	_, err := runCommand(t, NewHMACKeysCommand(), "deactivate", "GOOG1A")
	require.NoError(t, err)

	seen := f.seen()
	require.Len(t, seen, 1)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(seen[0].Body, &body))
	assert.Equal(t, "INACTIVE", body["state"])
}

func TestHMACKeysDeleteCommand(t *testing.T) {
	t.Run("active key needs force", func(t *testing.T) {
		f := setupCLI(t)
		viperSetProject(t, "my-project")

		f.json(http.MethodGet, hmacKeysPath+"/GOOG1A", http.StatusOK, map[string]interface{}{
			"accessId": "GOOG1A", "state": "ACTIVE",
		})

		_, err := runCommand(t, NewHMACKeysCommand(), "delete", "GOOG1A")
		require.ErrorIs(t, err, ErrActiveKey)
		assert.Len(t, f.seen(), 1)
	})

	t.Run("force deactivates first", func(t *testing.T) {
		f := setupCLI(t)
		viperSetProject(t, "my-project")

		f.json(http.MethodGet, hmacKeysPath+"/GOOG1A", http.StatusOK, map[string]interface{}{
			"accessId": "GOOG1A", "state": "ACTIVE",
		})
		f.json(http.MethodPut, hmacKeysPath+"/GOOG1A", http.StatusOK, map[string]interface{}{
			"accessId": "GOOG1A", "state": "INACTIVE",
		})
		f.json(http.MethodDelete, hmacKeysPath+"/GOOG1A", http.StatusNoContent, nil)

		_, err := runCommand(t, NewHMACKeysCommand(), "delete", "--force", "GOOG1A")
		require.NoError(t, err)

		seen := f.seen()
		require.Len(t, seen, 3)
		assert.Equal(t, http.MethodPut, seen[1].Method)
		assert.Equal(t, http.MethodDelete, seen[2].Method)
	})

	t.Run("inactive key is deleted directly", func(t *testing.T) {
		f := setupCLI(t)
		viperSetProject(t, "my-project")

		f.json(http.MethodGet, hmacKeysPath+"/GOOG1A", http.StatusOK, map[string]interface{}{
			"accessId": "GOOG1A", "state": "INACTIVE",
		})
		f.json(http.MethodDelete, hmacKeysPath+"/GOOG1A", http.StatusNoContent, nil)

		_, err := runCommand(t, NewHMACKeysCommand(), "delete", "GOOG1A")
		require.NoError(t, err)
		assert.Len(t, f.seen(), 2)
	})
}

func TestHMACKeysRequireProject(t *testing.T) {
	setupCLI(t)

	for _, args := range [][]string{{"list"}, {"get", "X"}, {"create", "sa"}, {"activate", "X"}, {"delete", "X"}} {
		_, err := runCommand(t, NewHMACKeysCommand(), args...)
		require.ErrorIs(t, err, constants.ErrNoProject, args)
	}
}
