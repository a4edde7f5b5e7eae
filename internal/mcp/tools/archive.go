package tools

import (
	"context"
	"fmt"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoadInput is the input for saz_load.
type LoadInput struct {
	Path string `json:"path" jsonschema:"Filesystem path to the .saz archive to load"`
}

// LoadOutput is the output for saz_load.
type LoadOutput struct {
	Path       string `json:"path"`
	Sessions   int    `json:"sessions"`
	References int    `json:"references"`
	Dropped    int    `json:"dropped"`
	LoadedAtMs int64  `json:"loaded_at_ms"`
	Hint       string `json:"hint,omitempty"`
}

// ToolLoad loads a .saz archive from disk, replacing any previously loaded
// archive.
func ToolLoad(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoadInput) (*sdkmcp.CallToolResult, LoadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input LoadInput) (*sdkmcp.CallToolResult, LoadOutput, error) {
		if input.Path == "" {
			return nil, LoadOutput{}, ErrInvalidInput("path is required")
		}

		data, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, LoadOutput{}, WrapArchiveError(err)
		}

		loaded, err := d.Store.Load(input.Path, data)
		if err != nil {
			return nil, LoadOutput{}, WrapArchiveError(err)
		}

		dropped := len(loaded.Archive.Order) - loaded.Archive.Len()
		hint := "Use saz_list_sessions or saz_search_sessions to explore the capture."
		if dropped > 0 {
			hint = fmt.Sprintf("%d of %d sessions were incomplete and dropped. %s",
				dropped, len(loaded.Archive.Order), hint)
		}

		return nil, LoadOutput{
			Path:       loaded.Path,
			Sessions:   loaded.Archive.Len(),
			References: len(loaded.Archive.Order),
			Dropped:    dropped,
			LoadedAtMs: loaded.LoadedAt.UnixMilli(),
			Hint:       hint,
		}, nil
	}
}
