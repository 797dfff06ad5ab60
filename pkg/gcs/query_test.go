package gcs_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

func TestQuery_EncodeKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	var q gcs.Query
	q.Add("z", "1")
	q.Add("a", "two words")
	q.Add("z", "a&b")

	assert.Equal(t, "z=1&a=two+words&z=a%26b", q.Encode())
	assert.Equal(t, "1", q.Get("z"))
	assert.Empty(t, q.Get("missing"))

	parsed, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)
	assert.Equal(t, url.Values{"z": {"1", "a&b"}, "a": {"two words"}}, parsed)

	assert.Empty(t, gcs.Query(nil).Encode())
}

func TestQuery_TakeHelpers(t *testing.T) {
	t.Parallel()

	var (
		q       gcs.Query
		empty   string
		name    = "obj"
		zero    int64
		size    int64 = 10
		unset   *int64
		gen           = gcs.Int64(0)
		off     bool
		on      = true
		none    []string
		perms   = []string{"a", "b"}
		fields  = []string{"name", "size"}
		noField []string
	)

	q.TakeString("empty", &empty)
	q.TakeString(gcs.ParamName, &name)
	q.TakeInt64("zero", &zero)
	q.TakeInt64(gcs.ParamMaxResults, &size)
	q.TakeOptional("unset", &unset)
	q.TakeOptional(gcs.ParamIfGenerationMatch, &gen)
	q.TakeBool("off", &off)
	q.TakeBool(gcs.ParamVersions, &on)
	q.TakeStrings("none", &none)
	q.TakeStrings(gcs.ParamPermissions, &perms)
	q.TakeJoined(gcs.ParamFields, &fields)
	q.TakeJoined("nofield", &noField)

	assert.Equal(t, "name=obj&maxResults=10&ifGenerationMatch=0&versions=true&permissions=a&permissions=b&fields=name%2Csize", q.Encode())

	assert.Empty(t, name)
	assert.Zero(t, size)
	assert.Nil(t, gen)
	assert.False(t, on)
	assert.Nil(t, perms)
	assert.Nil(t, fields)
}

func TestTakeEnum(t *testing.T) {
	t.Parallel()

	var q gcs.Query

	unspecified := gcs.ProjectionUnspecified
	full := gcs.ProjectionFull

	gcs.TakeEnum(&q, gcs.ParamProjection, &unspecified)
	gcs.TakeEnum(&q, gcs.ParamProjection, &full)

	assert.Equal(t, "projection=full", q.Encode())
	assert.Equal(t, gcs.ProjectionUnspecified, full)
}

func TestCommonParams(t *testing.T) {
	t.Parallel()

	req := gcs.NewGetBucketRequest("bkt")
	req.Fields = []string{"name", "labels"}
	req.QuotaUser = "batch-job"

	q, _ := req.Assemble()
	assert.Equal(t, "fields=name%2Clabels&quotaUser=batch-job", q.Encode())
	assert.Nil(t, req.Fields)
	assert.Empty(t, req.QuotaUser)
}

func TestListObjectsQueryPairs(t *testing.T) {
	t.Parallel()

	req := gcs.NewListObjectsRequest("bkt")
	req.Versions = true
	req.Prefix = "logs/"
	req.Delimiter = "/"
	req.MaxResults = 100
	req.Projection = gcs.ProjectionNoACL
	req.QuotaUser = "q"

	q, body := req.Assemble()
	assert.Nil(t, body)

	want := gcs.Query{
		{Key: "delimiter", Value: "/"},
		{Key: "maxResults", Value: "100"},
		{Key: "prefix", Value: "logs/"},
		{Key: "projection", Value: "noAcl"},
		{Key: "versions", Value: "true"},
		{Key: "quotaUser", Value: "q"},
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("query pairs mismatch (-want +got):\n%s", diff)
	}

	again, _ := req.Assemble()
	if diff := cmp.Diff(gcs.Query(nil), again); diff != "" {
		t.Errorf("second assembly is not empty (-want +got):\n%s", diff)
	}
}
