package types

// SearchRequest contains parameters for a session search.
type SearchRequest struct {
	Query   string         // Free text query over URLs and header fields
	Filters *SearchFilters // Optional structured filters
	Limit   int            // Default from config, capped at 100
	Offset  int            // Pagination offset
}

// SearchFilters contains structured filter criteria. Every set field must
// match for a session to be returned.
type SearchFilters struct {
	Host           string // exact host, or "*.domain" to include subdomains
	Method         string
	Status         int
	HTTPVersion    string
	URLContains    string
	PathContains   string
	HeaderName     string // header presence, name only
	HeaderContains string // substring over "name: value" header fields
}

// SearchResult is a single matching session.
type SearchResult struct {
	Summary    *SessionSummary `json:"summary"`
	Highlights []string        `json:"highlights,omitempty"`
}

// SearchResponse contains a page of search results. TotalHint counts all
// matches before pagination.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	TotalHint int            `json:"total_hint,omitempty"`
}
