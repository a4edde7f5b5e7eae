// Package search executes filtered and free-text queries over the session
// index.
package search

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/pkg/types"
)

// MaxLimit caps the page size of any search.
const MaxLimit = 100

// Engine answers search requests from a session index. Results come back
// in document-id order, which follows the archive's numeric session order,
// so identical requests always return identical pages.
type Engine struct {
	idx *indexer.Indexer
}

// New creates a search engine over an index.
func New(idx *indexer.Indexer) *Engine {
	return &Engine{idx: idx}
}

// Search applies bitmap filters and free-text tokens, then paginates.
// Substring filters that have no bitmap (URL/path/header contains) are
// checked against candidate metadata after the bitmap intersection.
func (e *Engine) Search(req *types.SearchRequest) *types.SearchResponse {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	candidates := e.idx.AllDocIDs()

	// Free-text tokens are ANDed: every term must match somewhere in the
	// URL or header fields.
	for _, token := range indexer.Tokenize(req.Query) {
		candidates = intersect(candidates, e.idx.GetBitmapForToken(token))
	}

	if f := req.Filters; f != nil {
		if f.Host != "" {
			candidates = intersect(candidates, e.idx.GetBitmapForHost(f.Host))
		}
		if f.Method != "" {
			candidates = intersect(candidates, e.idx.GetBitmapForMethod(strings.ToUpper(f.Method)))
		}
		if f.Status != 0 {
			candidates = intersect(candidates, e.idx.GetBitmapForStatus(f.Status))
		}
		if f.HTTPVersion != "" {
			candidates = intersect(candidates, e.idx.GetBitmapForHTTPVersion(f.HTTPVersion))
		}
		if f.HeaderName != "" {
			candidates = intersect(candidates, e.idx.GetBitmapForHeaderName(f.HeaderName))
		}
	}

	matched := e.applyMetaFilters(candidates, req.Filters)

	resp := &types.SearchResponse{
		Results:   make([]types.SearchResult, 0, limit),
		TotalHint: len(matched),
	}
	for i := req.Offset; i < len(matched) && len(resp.Results) < limit; i++ {
		resp.Results = append(resp.Results, types.SearchResult{
			Summary: matched[i].ToSummary(),
		})
	}
	return resp
}

// applyMetaFilters walks candidates in ascending doc-id order and keeps the
// ones passing the substring filters.
func (e *Engine) applyMetaFilters(candidates *roaring.Bitmap, f *types.SearchFilters) []*indexer.SessionMeta {
	var matched []*indexer.SessionMeta

	it := candidates.Iterator()
	for it.HasNext() {
		meta := e.idx.GetMeta(it.Next())
		if meta == nil {
			continue
		}
		if f != nil {
			if f.URLContains != "" && !strings.Contains(strings.ToLower(meta.URL), strings.ToLower(f.URLContains)) {
				continue
			}
			if f.PathContains != "" && !strings.Contains(strings.ToLower(meta.Path), strings.ToLower(f.PathContains)) {
				continue
			}
			if f.HeaderContains != "" && !headerFieldsContain(meta.HeaderFields, f.HeaderContains) {
				continue
			}
		}
		matched = append(matched, meta)
	}
	return matched
}

// headerFieldsContain reports whether any "name: value" field contains the
// needle, case-insensitively.
func headerFieldsContain(fields []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(field, needle) {
			return true
		}
	}
	return false
}

// intersect ANDs a candidate bitmap with a term bitmap. A nil term bitmap
// means no session matches that term.
func intersect(candidates, term *roaring.Bitmap) *roaring.Bitmap {
	if term == nil {
		return roaring.New()
	}
	return roaring.And(candidates, term)
}
