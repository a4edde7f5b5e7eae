package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/pkg/contenttype"
	"github.com/usestring/saz-mcp/pkg/types"
)

// ListSessionsInput is the input for saz_list_sessions.
type ListSessionsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"Max results (default from config, max 500)"`
	Offset int `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// ListSessionsOutput is the output for saz_list_sessions.
type ListSessionsOutput struct {
	Sessions []types.SessionSummary `json:"sessions,omitzero"`
	Total    int                    `json:"total"`
	// IncompleteIDs lists ids discovered in the archive that lacked one of
	// their two fragments and produced no session.
	IncompleteIDs []string `json:"incomplete_ids,omitzero"`
	Hint          string   `json:"hint,omitempty"`
}

// maxListLimit caps a single list page.
const maxListLimit = 500

// ToolListSessions lists sessions in archive order.
func ToolListSessions(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSessionsInput) (*sdkmcp.CallToolResult, ListSessionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSessionsInput) (*sdkmcp.CallToolResult, ListSessionsOutput, error) {
		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, ListSessionsOutput{}, err
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		total := loaded.Indexer.DocCount()
		summaries := make([]types.SessionSummary, 0, limit)
		for docID := input.Offset; docID < total && len(summaries) < limit; docID++ {
			if meta := loaded.Indexer.GetMeta(uint32(docID)); meta != nil {
				summaries = append(summaries, *meta.ToSummary())
			}
		}

		var incomplete []string
		for _, id := range loaded.Archive.Order {
			if loaded.Archive.Get(id) == nil {
				incomplete = append(incomplete, id)
			}
		}

		hint := ""
		if input.Offset+len(summaries) < total {
			hint = "More sessions available; increase offset, or use saz_search_sessions to narrow."
		}

		return nil, ListSessionsOutput{
			Sessions:      summaries,
			Total:         total,
			IncompleteIDs: incomplete,
			Hint:          hint,
		}, nil
	}
}

// HeaderPair is one header in wire order.
type HeaderPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MessageDetail describes one side of a session.
type MessageDetail struct {
	StartLine   string       `json:"start_line"`
	Headers     []HeaderPair `json:"headers,omitzero"`
	BodyBytes   int          `json:"body_bytes"`
	ContentType string       `json:"content_type,omitempty"`
}

// GetSessionInput is the input for saz_get_session.
type GetSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"Session id from saz_list_sessions or saz_search_sessions"`
}

// GetSessionOutput is the output for saz_get_session.
type GetSessionOutput struct {
	Summary     *types.SessionSummary `json:"summary"`
	Request     *MessageDetail        `json:"request"`
	Response    *MessageDetail        `json:"response"`
	DefaultView string                `json:"default_view"`
	Hint        string                `json:"hint,omitempty"`
}

// ToolGetSession returns the full detail of one session.
func ToolGetSession(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSessionInput) (*sdkmcp.CallToolResult, GetSessionOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSessionInput) (*sdkmcp.CallToolResult, GetSessionOutput, error) {
		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, GetSessionOutput{}, err
		}
		session, err := d.Session(loaded, input.SessionID)
		if err != nil {
			return nil, GetSessionOutput{}, err
		}

		meta := loaded.Indexer.GetMetaBySessionID(session.ID)
		if meta == nil {
			return nil, GetSessionOutput{}, ErrNotFound("session", input.SessionID)
		}

		respContentType := session.Response.Headers.Get("content-type")
		view := contenttype.DefaultView(respContentType, len(session.Response.BodyBytes))

		return nil, GetSessionOutput{
			Summary: meta.ToSummary(),
			Request: &MessageDetail{
				StartLine:   session.Request.StartLine,
				Headers:     headerPairs(session.Request.Headers.Pairs()),
				BodyBytes:   len(session.Request.BodyBytes),
				ContentType: session.Request.Headers.Get("content-type"),
			},
			Response: &MessageDetail{
				StartLine:   session.Response.StartLine,
				Headers:     headerPairs(session.Response.Headers.Pairs()),
				BodyBytes:   len(session.Response.BodyBytes),
				ContentType: respContentType,
			},
			DefaultView: string(view),
			Hint:        "Use saz_get_body to read the request or response body.",
		}, nil
	}
}

func headerPairs(pairs [][2]string) []HeaderPair {
	out := make([]HeaderPair, len(pairs))
	for i, p := range pairs {
		out[i] = HeaderPair{Name: p[0], Value: p[1]}
	}
	return out
}
