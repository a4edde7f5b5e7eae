package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestRunSingleInput(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(
		[]any{parse(t, `{"users":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`)},
		nil, ".users[].name", false, 0,
	)
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, result.Values)
	assert.Equal(t, 2, result.RawCount)
	assert.Empty(t, result.Errors)
}

func TestRunMultipleInputsWithLabels(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(
		[]any{parse(t, `{"id":1}`), parse(t, `{"id":2}`), parse(t, `{"id":1}`)},
		[]string{"1", "2", "10"}, ".id", false, 0,
	)
	require.NoError(t, err)

	assert.Equal(t, []any{1, 2, 1}, toInts(result.Values))
	assert.Equal(t, map[string]int{"1": 1, "2": 1, "10": 1}, result.LabelCounts)
}

// gojq normalizes numbers; compare as ints regardless of concrete type.
func toInts(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case float64:
			out[i] = int(n)
		case int:
			out[i] = n
		default:
			out[i] = v
		}
	}
	return out
}

func TestRunDeduplicates(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(
		[]any{parse(t, `["x","y","x"]`), parse(t, `["y","z"]`)},
		nil, ".[]", true, 0,
	)
	require.NoError(t, err)

	assert.Equal(t, []any{"x", "y", "z"}, result.Values)
	assert.Equal(t, 5, result.RawCount)
}

func TestRunMaxResults(t *testing.T) {
	e := NewEngine()

	result, err := e.Run([]any{parse(t, `[1,2,3,4,5]`)}, nil, ".[]", false, 3)
	require.NoError(t, err)
	assert.Len(t, result.Values, 3)
}

func TestRunRuntimeErrorIsCollectedPerLabel(t *testing.T) {
	e := NewEngine()

	result, err := e.Run(
		[]any{parse(t, `{"a":1}`), parse(t, `{"items":[1]}`)},
		[]string{"3", "7"}, ".items[]", false, 0,
	)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "3:")
	assert.Equal(t, []any{1}, toInts(result.Values))
}

func TestRunNilValuesSkipped(t *testing.T) {
	e := NewEngine()

	result, err := e.Run([]any{parse(t, `{"a":null}`)}, nil, ".a", false, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
	assert.Zero(t, result.RawCount)
}

func TestValidateExpression(t *testing.T) {
	e := NewEngine()

	assert.NoError(t, e.ValidateExpression(".users[].name"))
	assert.Error(t, e.ValidateExpression(".users[“"))
}
