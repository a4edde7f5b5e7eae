package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, s any) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestInferScalars(t *testing.T) {
	tests := []struct {
		name string
		body string
		typ  string
	}{
		{"string", `"hello"`, "string"},
		{"integer", `42`, "integer"},
		{"float", `3.14`, "number"},
		{"bool", `true`, "boolean"},
		{"null", `null`, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Infer([]byte(tt.body))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.typ, result.Schema.Type)
			assert.Equal(t, 1, result.SampleCount)
			assert.True(t, result.AllMatch)
		})
	}
}

func TestInferObjectWithRequired(t *testing.T) {
	result, err := Infer([]byte(`{"id": 1, "name": "a", "tags": ["x"]}`))
	require.NoError(t, err)
	require.NotNil(t, result)

	schema := result.Schema
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"id", "name", "tags"}, schema.Required)

	id, ok := schema.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "integer", id.Type)

	tags, ok := schema.Properties.Get("tags")
	require.True(t, ok)
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)
}

func TestInferMergesSamples(t *testing.T) {
	result, err := Infer(
		[]byte(`{"id": 1, "name": "a"}`),
		[]byte(`{"id": 2, "email": "b@c"}`),
	)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.SampleCount)
	assert.False(t, result.AllMatch)

	// Only fields present in every sample are required.
	assert.Equal(t, []string{"id"}, result.Schema.Required)
	_, hasName := result.Schema.Properties.Get("name")
	_, hasEmail := result.Schema.Properties.Get("email")
	assert.True(t, hasName)
	assert.True(t, hasEmail)
}

func TestInferNullableFieldNotRequired(t *testing.T) {
	result, err := Infer(
		[]byte(`{"id": 1, "note": null}`),
		[]byte(`{"id": 2, "note": "x"}`),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, result.Schema.Required)
}

func TestInferMixedTypesUseAnyOf(t *testing.T) {
	result, err := Infer([]byte(`{"v": 1}`), []byte(`{"v": "s"}`))
	require.NoError(t, err)

	v, ok := result.Schema.Properties.Get("v")
	require.True(t, ok)
	require.Len(t, v.AnyOf, 2)
	assert.Equal(t, "integer", v.AnyOf[0].Type)
	assert.Equal(t, "string", v.AnyOf[1].Type)
}

func TestInferNestedRequired(t *testing.T) {
	result, err := Infer(
		[]byte(`{"user": {"id": 1, "name": "a"}}`),
		[]byte(`{"user": {"id": 2}}`),
	)
	require.NoError(t, err)

	user, ok := result.Schema.Properties.Get("user")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, user.Required)
}

func TestInferArrayOfObjects(t *testing.T) {
	result, err := Infer([]byte(`{"items": [{"sku": "a", "qty": 1}, {"sku": "b"}]}`))
	require.NoError(t, err)

	items, ok := result.Schema.Properties.Get("items")
	require.True(t, ok)
	require.Equal(t, "array", items.Type)
	assert.Equal(t, []string{"sku"}, items.Items.Required)
}

func TestInferSkipsUnparseableSamples(t *testing.T) {
	result, err := Infer([]byte(`not json`), []byte(`{"id": 1}`))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.SampleCount)

	result, err = Infer([]byte(`not json`))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestInferAdditionalProperties(t *testing.T) {
	strict := false
	opts := &InferOptions{StrictRequired: true, NullableOptional: true, AdditionalProperties: &strict}

	result, err := InferWithOptions(opts, []byte(`{"a": {"b": 1}}`))
	require.NoError(t, err)

	assert.Contains(t, marshal(t, result.Schema), `"additionalProperties":false`)
}
