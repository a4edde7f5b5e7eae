package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_load",
		Description: "Load a Fiddler .saz capture archive from a filesystem path. Replaces any previously loaded archive. Incomplete sessions (missing the request or response fragment) are dropped and counted.",
	}, ToolLoad(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_list_sessions",
		Description: "List sessions of the loaded archive in capture order, with method, URL, status, and body sizes. Also reports the ids of incomplete sessions that were dropped during assembly.",
	}, ToolListSessions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_get_session",
		Description: "Get one session's full detail: request and response start lines, headers in wire order, body sizes, and the default inspector view. Use saz_get_body for body content.",
	}, ToolGetSession(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_get_body",
		Description: "Read a session's request or response body. Text bodies are returned verbatim; binary bodies come back as a hex dump. Large bodies are truncated to max_bytes.",
	}, ToolGetBody(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_search_sessions",
		Description: "Search sessions with free text and structured filters. Free-text tokens are ANDed across URLs and header fields. Use filters.host with a '*.' prefix to include subdomains, header_name for header presence, header_contains for header substring matching.",
	}, ToolSearchSessions(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_query_body",
		Description: "Extract values from session JSON bodies with a JQ expression, across one or many sessions. Returns a values array plus per-session counts. Sessions without a parseable JSON body are skipped.",
	}, ToolQueryBody(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_infer_schema",
		Description: "Infer a merged JSON Schema (Draft 2020-12) from session JSON bodies. Fields present in every sample are marked required; fields that can be null stay optional.",
	}, ToolInferSchema(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "saz_validate_body",
		Description: "Validate session JSON bodies against a caller-supplied JSON Schema. Returns per-session validity and error messages.",
	}, ToolValidateBody(d))
}
