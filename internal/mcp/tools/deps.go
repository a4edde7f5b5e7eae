// Package tools contains the MCP tool implementations.
package tools

import (
	"encoding/json"

	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/query"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/contenttype"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Store  *store.Store
	Config *config.Config
	Query  *query.Engine
}

// Body targets.
const (
	TargetRequest  = "request"
	TargetResponse = "response"
)

// canonicalTarget maps the optional target input to one of the two sides.
// The empty string means response, so it shares the response's cache slot.
func canonicalTarget(target string) (string, error) {
	switch target {
	case "", TargetResponse:
		return TargetResponse, nil
	case TargetRequest:
		return TargetRequest, nil
	default:
		return "", ErrInvalidInput("target must be \"request\" or \"response\"")
	}
}

// CurrentArchive returns the loaded archive state or a NO_ARCHIVE error.
func (d *Deps) CurrentArchive() (*store.Loaded, error) {
	loaded, ok := d.Store.Current()
	if !ok {
		return nil, ErrNoArchive()
	}
	return loaded, nil
}

// Session resolves a session id in the loaded archive.
func (d *Deps) Session(loaded *store.Loaded, sessionID string) (*saz.Session, error) {
	session := loaded.Archive.Get(sessionID)
	if session == nil {
		return nil, ErrNotFound("session", sessionID)
	}
	return session, nil
}

// Body returns the body bytes and content type for one side of a session.
func (d *Deps) Body(session *saz.Session, target string) ([]byte, string, error) {
	target, err := canonicalTarget(target)
	if err != nil {
		return nil, "", err
	}
	if target == TargetRequest {
		return session.Request.BodyBytes, session.Request.Headers.Get("content-type"), nil
	}
	return session.Response.BodyBytes, session.Response.Headers.Get("content-type"), nil
}

// ParsedJSONBody returns the parsed JSON body for a session side, consulting
// the archive's LRU cache first. Non-JSON content types and unparseable
// bodies return ok=false without error.
func (d *Deps) ParsedJSONBody(loaded *store.Loaded, session *saz.Session, target string) (any, bool, error) {
	target, err := canonicalTarget(target)
	if err != nil {
		return nil, false, err
	}

	if cached, ok := loaded.Bodies.Get(session.ID, target); ok {
		return cached, true, nil
	}

	body, contentType, err := d.Body(session, target)
	if err != nil {
		return nil, false, err
	}
	if len(body) == 0 || !contenttype.IsJSON(contentType) {
		return nil, false, nil
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, false, nil
	}

	loaded.Bodies.Put(session.ID, target, value)
	return value, true, nil
}
