package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/saz-mcp/pkg/contenttype"
)

// GetBodyInput is the input for saz_get_body.
type GetBodyInput struct {
	SessionID string `json:"session_id" jsonschema:"Session id"`
	Target    string `json:"target,omitempty" jsonschema:"Which body: request or response (default: response)"`
	MaxBytes  int    `json:"max_bytes,omitempty" jsonschema:"Truncate the body after this many bytes (default from config)"`
}

// GetBodyOutput is the output for saz_get_body.
type GetBodyOutput struct {
	Body        string `json:"body"`
	Encoding    string `json:"encoding"` // "text" or "hex"
	ContentType string `json:"content_type,omitempty"`
	Category    string `json:"category"`
	TotalBytes  int    `json:"total_bytes"`
	Truncated   bool   `json:"truncated"`
	Hint        string `json:"hint,omitempty"`
}

// ToolGetBody returns a session body, hex-dumped when binary.
func ToolGetBody(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetBodyInput) (*sdkmcp.CallToolResult, GetBodyOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetBodyInput) (*sdkmcp.CallToolResult, GetBodyOutput, error) {
		loaded, err := d.CurrentArchive()
		if err != nil {
			return nil, GetBodyOutput{}, err
		}
		session, err := d.Session(loaded, input.SessionID)
		if err != nil {
			return nil, GetBodyOutput{}, err
		}
		body, contentType, err := d.Body(session, input.Target)
		if err != nil {
			return nil, GetBodyOutput{}, err
		}

		maxBytes := input.MaxBytes
		if maxBytes <= 0 {
			maxBytes = d.Config.ToolMaxBodyBytes
		}

		total := len(body)
		truncated := total > maxBytes
		if truncated {
			body = body[:maxBytes]
		}

		out := GetBodyOutput{
			ContentType: contentType,
			Category:    string(contenttype.Classify(contentType)),
			TotalBytes:  total,
			Truncated:   truncated,
		}

		if contenttype.IsBinary(contentType, body) {
			out.Encoding = "hex"
			out.Body = hexDump(body)
		} else {
			out.Encoding = "text"
			out.Body = string(body)
		}

		if truncated {
			out.Hint = fmt.Sprintf("Body truncated to %d of %d bytes; raise max_bytes to see more.", maxBytes, total)
		} else if total == 0 {
			out.Hint = "Body is empty; use saz_get_session for headers."
		}

		return nil, out, nil
	}
}

// hexDump renders bytes in the classic 16-per-line offset/hex/ASCII layout.
func hexDump(data []byte) string {
	var b strings.Builder
	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[offset:end]

		fmt.Fprintf(&b, "%08x  ", offset)
		for i := range 16 {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
