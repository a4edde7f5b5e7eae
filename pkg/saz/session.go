package saz

import "github.com/usestring/saz-mcp/pkg/rawhttp"

// Session is one reconstructed request/response exchange. It is created
// atomically once both fragments of its id are present and never mutated
// afterwards, so consumers may share it freely across goroutines.
type Session struct {
	// ID is the numeric-string fragment prefix, kept in its original form.
	ID string

	// RawClient and RawServer hold the fragment text verbatim (Latin-1
	// decoded, so rawhttp.EncodeLatin1 recovers the exact archive bytes).
	RawClient string
	RawServer string

	Request  *rawhttp.Request
	Response *rawhttp.Response

	// URL is absolute (https://<host><target>) when the request carried a
	// Host header, otherwise the raw request-target unchanged.
	URL string

	// Method mirrors Request.Method for display callers.
	Method string
}

// Archive is the immutable result of assembling a capture archive.
type Archive struct {
	// Sessions maps id to the reconstructed session. Ids that were
	// discovered with only one fragment side are absent here.
	Sessions map[string]*Session

	// Order lists every discovered id, complete or not, sorted ascending
	// by numeric value.
	Order []string
}

// Get returns the session for an id, or nil when the id is unknown or was
// discovered with only one fragment side.
func (a *Archive) Get(id string) *Session {
	return a.Sessions[id]
}

// Len returns the number of complete sessions.
func (a *Archive) Len() int {
	return len(a.Sessions)
}
