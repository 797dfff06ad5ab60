package commands

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

func TestNotificationsCreateCommand(t *testing.T) {
	f := setupCLI(t)

	f.json(http.MethodPost, "/storage/v1/b/bkt/notificationConfigs", http.StatusOK, map[string]interface{}{
		"id":             "7",
		"topic":          "//pubsub.googleapis.com/projects/p/topics/uploads",
		"payload_format": "JSON_API_V1",
	})

	out, err := runCommand(t, NewNotificationsCommand(), "create", "gs://bkt",
		"--topic", "projects/p/topics/uploads", "-e", "OBJECT_FINALIZE", "-a", "source=cli", "--prefix", "in/")
	require.NoError(t, err)

	var created gcs.Notification
	decodeOutput(t, out, &created)
	assert.Equal(t, "7", created.ID)

	seen := f.seen()
	require.Len(t, seen, 1)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(seen[0].Body, &body))
	assert.Equal(t, "//pubsub.googleapis.com/projects/p/topics/uploads", body["topic"])
	assert.Equal(t, []interface{}{"OBJECT_FINALIZE"}, body["event_types"])
	assert.Equal(t, map[string]interface{}{"source": "cli"}, body["custom_attributes"])
	assert.Equal(t, "JSON_API_V1", body["payload_format"])
	assert.Equal(t, "in/", body["object_name_prefix"])
}

func TestNotificationsCreateRequiresTopic(t *testing.T) {
	f := setupCLI(t)

	_, err := runCommand(t, NewNotificationsCommand(), "create", "bkt")
	require.Error(t, err)
	assert.Empty(t, f.seen())
}

func TestNotificationsListAndDelete(t *testing.T) {
	f := setupCLI(t)

	f.json(http.MethodGet, "/storage/v1/b/bkt/notificationConfigs", http.StatusOK, map[string]interface{}{
		"items": []map[string]interface{}{{"id": "1", "topic": "t1"}, {"id": "2", "topic": "t2"}},
	})
	f.json(http.MethodDelete, "/storage/v1/b/bkt/notificationConfigs/2", http.StatusNoContent, nil)

	out, err := runCommand(t, NewNotificationsCommand(), "list", "bkt")
	require.NoError(t, err)

	var listed []gcs.Notification
	decodeOutput(t, out, &listed)
	require.Len(t, listed, 2)

	_, err = runCommand(t, NewNotificationsCommand(), "delete", "bkt", "2")
	require.NoError(t, err)

	seen := f.seen()
	require.Len(t, seen, 2)
	assert.Equal(t, http.MethodDelete, seen[1].Method)
}
