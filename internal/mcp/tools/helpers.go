package tools

import (
	"fmt"

	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/saz"
)

// resolveSessions returns the sessions named by ids, or every complete
// session in archive order when ids is empty. The count is capped to keep a
// single tool call bounded.
func resolveSessions(loaded *store.Loaded, ids []string, limit int) ([]*saz.Session, error) {
	explicit := len(ids) > 0
	if !explicit {
		ids = loaded.Archive.Order
	}

	sessions := make([]*saz.Session, 0, len(ids))
	for _, id := range ids {
		session := loaded.Archive.Get(id)
		if session == nil {
			// Explicit ids must exist; Order may name dropped sessions.
			if explicit {
				return nil, ErrNotFound("session", id)
			}
			continue
		}
		sessions = append(sessions, session)
		if limit > 0 && len(sessions) >= limit {
			break
		}
	}
	return sessions, nil
}

// jsonBodies collects the parsed JSON bodies of the given sessions for one
// target side. Sessions without a parseable JSON body are counted as skipped
// rather than failing the whole call.
func jsonBodies(d *Deps, loaded *store.Loaded, sessions []*saz.Session, target string) (values []any, labels []string, skipped int, err error) {
	for _, session := range sessions {
		value, ok, err := d.ParsedJSONBody(loaded, session, target)
		if err != nil {
			return nil, nil, 0, err
		}
		if !ok {
			skipped++
			continue
		}
		values = append(values, value)
		labels = append(labels, session.ID)
	}
	return values, labels, skipped, nil
}

// skippedHint phrases a skipped-session count for tool hints.
func skippedHint(skipped int) string {
	if skipped == 0 {
		return ""
	}
	return fmt.Sprintf("%d sessions had no parseable JSON body and were skipped.", skipped)
}
