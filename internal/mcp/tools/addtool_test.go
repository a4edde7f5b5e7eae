package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema_panicsOnNilSlice(t *testing.T) {
	type BadOutput struct {
		Items []string `json:"items"` // no omitzero → nil → null → schema expects array
	}
	assert.Panics(t, func() {
		CheckOutputSchema[BadOutput]("test_bad_tool")
	})
}

func TestCheckOutputSchema_okWithOmitzero(t *testing.T) {
	type GoodOutput struct {
		Items []string `json:"items,omitzero"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[GoodOutput]("test_good_tool")
	})
}

func TestCheckOutputSchema_okWithNoSlices(t *testing.T) {
	type SimpleOutput struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	assert.NotPanics(t, func() {
		CheckOutputSchema[SimpleOutput]("test_simple_tool")
	})
}

func TestCheckOutputSchema_okWithAny(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[any]("test_any_tool")
	})
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	// The registered tool output types must pass the startup check.
	assert.NotPanics(t, func() {
		CheckOutputSchema[LoadOutput]("saz_load")
		CheckOutputSchema[ListSessionsOutput]("saz_list_sessions")
		CheckOutputSchema[GetSessionOutput]("saz_get_session")
		CheckOutputSchema[GetBodyOutput]("saz_get_body")
		CheckOutputSchema[SearchSessionsOutput]("saz_search_sessions")
		CheckOutputSchema[QueryBodyOutput]("saz_query_body")
		CheckOutputSchema[InferSchemaOutput]("saz_infer_schema")
		CheckOutputSchema[ValidateBodyOutput]("saz_validate_body")
	})
}
