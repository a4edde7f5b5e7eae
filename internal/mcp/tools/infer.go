package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/pkg/jsonschema"
	"github.com/usestring/saz-mcp/pkg/types"
)

// InferSchemaInput is the input for saz_infer_schema.
type InferSchemaInput struct {
	SessionIDs     []string `json:"session_ids,omitempty" jsonschema:"Session ids to sample (default: every session in the archive)"`
	Target         string   `json:"target,omitempty" jsonschema:"Which body: request or response (default: response)"`
	StrictRequired *bool    `json:"strict_required,omitempty" jsonschema:"Mark fields present in every sample as required (default: true)"`
}

// InferSchemaOutput is the output for saz_infer_schema.
type InferSchemaOutput struct {
	Schema      any    `json:"schema,omitempty"`
	SampleCount int    `json:"sample_count"`
	AllMatch    bool   `json:"all_match"`
	Skipped     int    `json:"skipped,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// ToolInferSchema infers a merged JSON Schema from session bodies.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}
		sessions, err := resolveSessions(loaded, input.SessionIDs, d.Config.MaxInferSessions)
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}

		values, _, skipped, err := jsonBodies(d, loaded, sessions, input.Target)
		if err != nil {
			return nil, InferSchemaOutput{}, err
		}
		if len(values) == 0 {
			return nil, InferSchemaOutput{
				Skipped: skipped,
				Hint:    "No JSON bodies found; check the target side or filter with saz_search_sessions first.",
			}, nil
		}

		opts := jsonschema.DefaultInferOptions()
		if input.StrictRequired != nil {
			opts.StrictRequired = *input.StrictRequired
		}

		// Bodies come back parsed from the cache; re-encode for the sample
		// based inference entry point.
		samples := make([][]byte, 0, len(values))
		for _, v := range values {
			b, err := json.Marshal(v)
			if err != nil {
				skipped++
				continue
			}
			samples = append(samples, b)
		}

		inferred, err := jsonschema.InferWithOptions(opts, samples...)
		if err != nil || inferred == nil {
			return nil, InferSchemaOutput{}, ErrInvalidInput("could not infer a schema from the selected bodies")
		}

		schemaValue, err := types.ToAny(inferred.Schema)
		if err != nil {
			return nil, InferSchemaOutput{}, fmt.Errorf("encoding inferred schema: %w", err)
		}

		hint := skippedHint(skipped)
		if !inferred.AllMatch && hint == "" {
			hint = "Samples disagreed on structure; optional fields reflect the differences."
		}

		return nil, InferSchemaOutput{
			Schema:      schemaValue,
			SampleCount: inferred.SampleCount,
			AllMatch:    inferred.AllMatch,
			Skipped:     skipped,
			Hint:        hint,
		}, nil
	}
}
