// Package indexer provides session metadata and bitmap indexing over an
// assembled archive.
package indexer

import (
	"net/url"
	"strings"

	"github.com/usestring/saz-mcp/pkg/contenttype"
	"github.com/usestring/saz-mcp/pkg/saz"
	"github.com/usestring/saz-mcp/pkg/types"
)

// SessionMeta holds the searchable fields of one session. Bodies are not
// stored; only metadata needed for indexing, filtering, and summaries.
type SessionMeta struct {
	DocID       uint32
	SessionID   string
	Method      string
	URL         string
	Host        string
	Path        string
	Status      int
	StatusText  string
	HTTPVersion string

	ReqContentType  string
	RespContentType string

	ReqBodyBytes  int
	RespBodyBytes int

	// HeaderNames are the lower-cased header names of both sides, deduped.
	HeaderNames []string
	// HeaderFields are lower-cased "name: value" strings of both sides,
	// used for substring filters and free-text tokens.
	HeaderFields []string
}

// FromSession extracts the indexable metadata of a session.
func FromSession(s *saz.Session) *SessionMeta {
	meta := &SessionMeta{
		SessionID:       s.ID,
		Method:          s.Method,
		URL:             s.URL,
		Status:          s.Response.StatusCode,
		StatusText:      s.Response.StatusText,
		HTTPVersion:     s.Request.HTTPVersion,
		ReqContentType:  s.Request.Headers.Get("content-type"),
		RespContentType: s.Response.Headers.Get("content-type"),
		ReqBodyBytes:    len(s.Request.BodyBytes),
		RespBodyBytes:   len(s.Response.BodyBytes),
	}

	meta.Host, meta.Path = splitURL(s.URL)

	seen := make(map[string]bool)
	for _, pairs := range [][][2]string{s.Request.Headers.Pairs(), s.Response.Headers.Pairs()} {
		for _, p := range pairs {
			if !seen[p[0]] {
				seen[p[0]] = true
				meta.HeaderNames = append(meta.HeaderNames, p[0])
			}
			meta.HeaderFields = append(meta.HeaderFields, p[0]+": "+strings.ToLower(p[1]))
		}
	}

	return meta
}

// splitURL extracts host and path for display and filtering. Relative
// request-targets (sessions without a Host header) have no host; the whole
// target counts as the path. Host names are case-insensitive, so the index
// key is lower-cased.
func splitURL(raw string) (host, path string) {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() {
		return "", raw
	}
	return strings.ToLower(parsed.Host), parsed.Path
}

// ToSummary converts SessionMeta to a SessionSummary for tool responses.
func (m *SessionMeta) ToSummary() *types.SessionSummary {
	return &types.SessionSummary{
		SessionID:       m.SessionID,
		Method:          m.Method,
		URL:             m.URL,
		Host:            m.Host,
		Path:            m.Path,
		Status:          m.Status,
		StatusText:      m.StatusText,
		HTTPVersion:     m.HTTPVersion,
		ContentType:     m.RespContentType,
		ContentCategory: string(contenttype.Classify(m.RespContentType)),
		ReqBodyBytes:    m.ReqBodyBytes,
		RespBodyBytes:   m.RespBodyBytes,
	}
}
