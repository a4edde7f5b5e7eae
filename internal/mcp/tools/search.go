package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/pkg/types"
)

// SearchSessionsInput is the input for saz_search_sessions.
type SearchSessionsInput struct {
	Query   string                 `json:"query,omitempty" jsonschema:"Free text search across URLs and header fields. Tokens are ANDed: all terms must match somewhere."`
	Filters *SearchSessionsFilters `json:"filters,omitempty" jsonschema:"Structured filters"`
	Limit   int                    `json:"limit,omitempty" jsonschema:"Max results (default: 20, max: 100)"`
	Offset  int                    `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// SearchSessionsFilters contains filter criteria for search.
type SearchSessionsFilters struct {
	Host           string `json:"host,omitempty" jsonschema:"Filter by host. Prefix with '*.' to include subdomains: '*.example.com' matches example.com, api.example.com, etc."`
	Method         string `json:"method,omitempty" jsonschema:"HTTP method"`
	Status         int    `json:"status,omitempty" jsonschema:"HTTP status code"`
	HTTPVersion    string `json:"http_version,omitempty" jsonschema:"HTTP version, e.g. HTTP/1.1"`
	URLContains    string `json:"url_contains,omitempty" jsonschema:"URL substring match"`
	PathContains   string `json:"path_contains,omitempty" jsonschema:"Path substring match"`
	HeaderName     string `json:"header_name,omitempty" jsonschema:"Filter by header presence (name only, e.g. authorization)"`
	HeaderContains string `json:"header_contains,omitempty" jsonschema:"Substring match on header fields (searches name and value, e.g. 'bearer')"`
}

// SearchSessionsOutput is the output for saz_search_sessions.
type SearchSessionsOutput struct {
	Results   []types.SearchResult `json:"results,omitzero"`
	TotalHint int                  `json:"total_hint,omitempty"`
	Hint      string               `json:"hint,omitempty"`
}

// ToolSearchSessions searches sessions in the loaded archive.
func ToolSearchSessions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSessionsInput) (*sdkmcp.CallToolResult, SearchSessionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchSessionsInput) (*sdkmcp.CallToolResult, SearchSessionsOutput, error) {
		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, SearchSessionsOutput{}, err
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}

		searchReq := &types.SearchRequest{
			Query:  input.Query,
			Limit:  limit,
			Offset: input.Offset,
		}
		if input.Filters != nil {
			searchReq.Filters = &types.SearchFilters{
				Host:           input.Filters.Host,
				Method:         input.Filters.Method,
				Status:         input.Filters.Status,
				HTTPVersion:    input.Filters.HTTPVersion,
				URLContains:    input.Filters.URLContains,
				PathContains:   input.Filters.PathContains,
				HeaderName:     input.Filters.HeaderName,
				HeaderContains: input.Filters.HeaderContains,
			}
		}

		resp := loaded.Search.Search(searchReq)

		var hint string
		switch {
		case len(resp.Results) == 0:
			hint = "No matches. Loosen filters, or check the host with saz_list_sessions."
		case resp.TotalHint > input.Offset+len(resp.Results):
			hint = fmt.Sprintf("Showing %d of %d. Use offset=%d for the next page.",
				len(resp.Results), resp.TotalHint, input.Offset+len(resp.Results))
		case len(resp.Results) == 1:
			hint = fmt.Sprintf("Single match. Use saz_get_session(session_id=%q) for details.",
				resp.Results[0].Summary.SessionID)
		}

		return nil, SearchSessionsOutput{
			Results:   resp.Results,
			TotalHint: resp.TotalHint,
			Hint:      hint,
		}, nil
	}
}
