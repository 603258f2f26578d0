package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	for _, s := range []string{"", "   "} {
		f := Parse(s)
		assert.Empty(t, f.Conditions)
		assert.False(t, f.CachedOnly)
		assert.False(t, f.HasConditions())
	}
}

func TestParse_ConditionsInOrder(t *testing.T) {
	f := Parse("visibility:eq:public,gated:eq:true")

	require.Len(t, f.Conditions, 2)
	assert.Equal(t, Condition{Field: "visibility", Op: OpEQ, Value: "public"}, f.Conditions[0])
	assert.Equal(t, Condition{Field: "gated", Op: OpEQ, Value: "true"}, f.Conditions[1])
}

func TestParse_FieldAndOperatorLowercased(t *testing.T) {
	f := Parse("Visibility:EQ:Public")

	require.Len(t, f.Conditions, 1)
	assert.Equal(t, "visibility", f.Conditions[0].Field)
	assert.Equal(t, OpEQ, f.Conditions[0].Op)
	// Values stay verbatim.
	assert.Equal(t, "Public", f.Conditions[0].Value)
}

func TestParse_ShorthandSearch(t *testing.T) {
	f := Parse("llama")

	require.Len(t, f.Conditions, 1)
	assert.Equal(t, Parse("name:like:llama").Conditions, f.Conditions)
}

func TestParse_CachedOnly(t *testing.T) {
	cases := []struct {
		in         string
		conditions int
	}{
		{"cached_only", 0},
		{"CACHED_ONLY", 0},
		{"cached_only,gated:eq:true", 1},
		{"gated:eq:true,cached_only", 1},
	}

	for _, tc := range cases {
		f := Parse(tc.in)
		assert.True(t, f.CachedOnly, "input %q", tc.in)
		assert.Len(t, f.Conditions, tc.conditions, "input %q", tc.in)
	}
}

func TestParse_UnknownOperatorDropped(t *testing.T) {
	f := Parse("name:gt:llama,gated:eq:true")

	require.Len(t, f.Conditions, 1)
	assert.Equal(t, "gated", f.Conditions[0].Field)
}

func TestParse_MalformedClauseDropped(t *testing.T) {
	f := Parse("justafield:eq,gated:eq:true, ,")

	require.Len(t, f.Conditions, 1)
	assert.Equal(t, "gated", f.Conditions[0].Field)
}

func TestHubParams_SearchFirstWins(t *testing.T) {
	f := Parse("name:like:llama,id:like:mistral")

	params := f.HubParams()
	assert.Equal(t, "llama", params.Search)

	// The second LIKE is demoted to a local condition, the first is not
	// duplicated there.
	local := f.LocalConditions()
	require.Len(t, local, 1)
	assert.Equal(t, Condition{Field: "id", Op: OpLike, Value: "mistral"}, local[0])
}

func TestHubParams_TagsAllSurvive(t *testing.T) {
	f := Parse("tags:in:text-generation,tags:in:llama")

	params := f.HubParams()
	assert.Equal(t, []string{"text-generation", "llama"}, params.Tags)
	assert.Empty(t, f.LocalConditions())
}

func TestHubParams_AuthorFirstWins(t *testing.T) {
	f := Parse("author:eq:meta-llama,author:eq:mistralai")

	params := f.HubParams()
	assert.Equal(t, "meta-llama", params.Author)
	assert.Empty(t, f.LocalConditions())
}

func TestLocalConditions_KeepOrder(t *testing.T) {
	f := Parse("visibility:eq:public,name:like:llama,gated:eq:true,id:eq:org/model,tags:ne:x,author:like:meta")

	local := f.LocalConditions()
	require.Len(t, local, 5)
	assert.Equal(t, "visibility", local[0].Field)
	assert.Equal(t, "gated", local[1].Field)
	assert.Equal(t, "id", local[2].Field)
	assert.Equal(t, "tags", local[3].Field)
	assert.Equal(t, "author", local[4].Field)

	// The first name:like went upstream and is not duplicated locally.
	for _, c := range local {
		assert.NotEqual(t, "name", c.Field)
	}
}

func TestLocalConditions_AuthorNonEQStaysLocal(t *testing.T) {
	f := Parse("author:ne:meta-llama")

	assert.Empty(t, f.HubParams().Author)
	require.Len(t, f.LocalConditions(), 1)
	assert.Equal(t, OpNE, f.LocalConditions()[0].Op)
}
