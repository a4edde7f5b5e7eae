package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/internal/schema"
)

// ValidateBodyInput is the input for saz_validate_body.
type ValidateBodyInput struct {
	SessionIDs []string `json:"session_ids,omitempty" jsonschema:"Session ids to validate (default: every session in the archive)"`
	Target     string   `json:"target,omitempty" jsonschema:"Which body: request or response (default: response)"`
	Schema     string   `json:"schema" jsonschema:"JSON Schema document to validate against"`
}

// SessionValidation is one session's validation outcome.
type SessionValidation struct {
	SessionID string   `json:"session_id"`
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors,omitzero"`
}

// ValidateBodyOutput is the output for saz_validate_body.
type ValidateBodyOutput struct {
	Results []SessionValidation `json:"results,omitzero"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
	Skipped int                 `json:"skipped,omitempty"`
	Hint    string              `json:"hint,omitempty"`
}

// ToolValidateBody validates session bodies against a JSON Schema.
func ToolValidateBody(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateBodyInput) (*sdkmcp.CallToolResult, ValidateBodyOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateBodyInput) (*sdkmcp.CallToolResult, ValidateBodyOutput, error) {
		if input.Schema == "" {
			return nil, ValidateBodyOutput{}, ErrInvalidInput("schema is required")
		}
		validator, err := schema.NewValidator([]byte(input.Schema))
		if err != nil {
			return nil, ValidateBodyOutput{}, ErrInvalidInput(err.Error())
		}

		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, ValidateBodyOutput{}, err
		}
		sessions, err := resolveSessions(loaded, input.SessionIDs, d.Config.MaxQuerySessions)
		if err != nil {
			return nil, ValidateBodyOutput{}, err
		}

		out := ValidateBodyOutput{Results: make([]SessionValidation, 0, len(sessions))}
		for _, session := range sessions {
			value, ok, err := d.ParsedJSONBody(loaded, session, input.Target)
			if err != nil {
				return nil, ValidateBodyOutput{}, err
			}
			if !ok {
				out.Skipped++
				continue
			}

			result := validator.ValidateValue(value)
			if result.Valid {
				out.Valid++
			} else {
				out.Invalid++
			}
			out.Results = append(out.Results, SessionValidation{
				SessionID: session.ID,
				Valid:     result.Valid,
				Errors:    result.Errors,
			})
		}

		hint := skippedHint(out.Skipped)
		if out.Invalid > 0 && hint == "" {
			hint = fmt.Sprintf("%d bodies failed validation; see per-session errors.", out.Invalid)
		}
		out.Hint = hint

		return nil, out, nil
	}
}
