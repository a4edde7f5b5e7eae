package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryBodyInput is the input for saz_query_body.
type QueryBodyInput struct {
	SessionIDs  []string `json:"session_ids,omitempty" jsonschema:"Session ids to query (default: every session in the archive)"`
	Target      string   `json:"target,omitempty" jsonschema:"Which body: request or response (default: response)"`
	Expression  string   `json:"expression" jsonschema:"JQ expression, e.g. '.items[].id'"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Drop duplicate values across sessions"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Stop after this many values (default from config)"`
}

// QueryBodyOutput is the output for saz_query_body.
type QueryBodyOutput struct {
	Values        []any          `json:"values,omitzero"`
	Errors        []string       `json:"errors,omitzero"`
	RawCount      int            `json:"raw_count"`
	SessionCounts map[string]int `json:"session_counts,omitempty"`
	Skipped       int            `json:"skipped,omitempty"`
	Hint          string         `json:"hint,omitempty"`
}

// ToolQueryBody runs a JQ expression over session JSON bodies.
func ToolQueryBody(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryBodyInput) (*sdkmcp.CallToolResult, QueryBodyOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryBodyInput) (*sdkmcp.CallToolResult, QueryBodyOutput, error) {
		if input.Expression == "" {
			return nil, QueryBodyOutput{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QueryBodyOutput{}, ErrInvalidInput(err.Error())
		}

		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, QueryBodyOutput{}, err
		}
		sessions, err := resolveSessions(loaded, input.SessionIDs, d.Config.MaxQuerySessions)
		if err != nil {
			return nil, QueryBodyOutput{}, err
		}

		values, labels, skipped, err := jsonBodies(d, loaded, sessions, input.Target)
		if err != nil {
			return nil, QueryBodyOutput{}, err
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = d.Config.DefaultQueryLimit
		}

		result, err := d.Query.Run(values, labels, input.Expression, input.Deduplicate, maxResults)
		if err != nil {
			return nil, QueryBodyOutput{}, ErrInvalidInput(err.Error())
		}

		hint := skippedHint(skipped)
		if len(result.Values) == 0 && hint == "" {
			hint = "Expression produced no values; saz_infer_schema shows the body structure."
		}

		return nil, QueryBodyOutput{
			Values:        result.Values,
			Errors:        result.Errors,
			RawCount:      result.RawCount,
			SessionCounts: result.LabelCounts,
			Skipped:       skipped,
			Hint:          hint,
		}, nil
	}
}
