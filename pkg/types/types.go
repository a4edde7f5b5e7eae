// Package types provides shared types for saz-mcp tool surfaces.
// These types are used across multiple packages and are designed for
// external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SessionSummary holds the display fields a session list renders.
type SessionSummary struct {
	SessionID       string `json:"session_id"`
	Method          string `json:"method"`
	URL             string `json:"url"`
	Host            string `json:"host,omitempty"`
	Path            string `json:"path,omitempty"`
	Status          int    `json:"status"`
	StatusText      string `json:"status_text,omitempty"`
	HTTPVersion     string `json:"http_version,omitempty"`
	ContentType     string `json:"content_type,omitempty"`
	ContentCategory string `json:"content_category,omitempty"`
	ReqBodyBytes    int    `json:"req_body_bytes"`
	RespBodyBytes   int    `json:"resp_body_bytes"`
}
